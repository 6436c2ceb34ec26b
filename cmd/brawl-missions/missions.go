package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"brawl-missions/internal/app"
	missiondomain "brawl-missions/internal/domain/mission"
)

var statusColors = map[missiondomain.Status]*color.Color{
	missiondomain.StatusOpen:       color.New(color.FgCyan),
	missiondomain.StatusInProgress: color.New(color.FgYellow),
	missiondomain.StatusCompleted:  color.New(color.FgGreen),
	missiondomain.StatusFailed:     color.New(color.FgRed),
}

func newMissionsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "missions",
		Short: "Inspect the mission board",
	}

	var status, name string
	list := &cobra.Command{
		Use:   "list",
		Short: "List missions with their crew counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := missiondomain.Filter{Name: name}
			if status != "" {
				parsed, err := missiondomain.ParseStatus(status)
				if err != nil {
					return err
				}
				filter.Status = &parsed
			}

			application, err := app.New(opts.cfg, opts.log)
			if err != nil {
				return err
			}
			defer application.Close()

			views, err := application.Services().Viewing.GetAll(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printMissions(cmd.OutOrStdout(), views)
		},
	}
	list.Flags().StringVar(&status, "status", "", "only missions in this status (Open, InProgress, Completed, Failed)")
	list.Flags().StringVar(&name, "name", "", "case-insensitive name filter")

	cmd.AddCommand(list)
	return cmd
}

func printMissions(out io.Writer, views []missiondomain.MissionView) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tCHIEF\tCREW")
	for _, view := range views {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", view.ID, view.Name, colorStatus(view.Status), view.ChiefID, view.CrewCount)
	}
	return w.Flush()
}

func colorStatus(status missiondomain.Status) string {
	c, ok := statusColors[status]
	if !ok {
		return status.String()
	}
	return c.Sprint(status.String())
}
