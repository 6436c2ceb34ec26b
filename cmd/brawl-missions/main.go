package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"brawl-missions/internal/config"
	"brawl-missions/pkg/logger"
)

type rootOptions struct {
	log logger.Logger
	cfg config.Config
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "brawl-missions",
		Short:         "Mission board for brawler crews",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.log = logger.NewFromEnv()
			cfg, err := config.Load(opts.log)
			if err != nil {
				opts.log.Critical("app: invalid config", "err", err)
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newMissionsCommand(opts),
		newBrawlersCommand(opts),
	)
	return cmd
}
