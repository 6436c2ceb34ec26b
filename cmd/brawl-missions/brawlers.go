package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"brawl-missions/internal/app"
	brawlerdomain "brawl-missions/internal/domain/brawler"
)

func newBrawlersCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brawlers",
		Short: "Manage brawler accounts",
	}

	var input brawlerdomain.RegisterInput
	register := &cobra.Command{
		Use:   "register",
		Short: "Create a brawler account and print its token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(opts.cfg, opts.log)
			if err != nil {
				return err
			}
			defer application.Close()

			passport, err := application.Services().Brawlers.Register(cmd.Context(), input)
			if errors.Is(err, brawlerdomain.ErrUsernameTaken) {
				return fmt.Errorf("username %q is already taken", input.Username)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("registered"), passport.DisplayName)
			fmt.Fprintln(cmd.OutOrStdout(), passport.Token)
			return nil
		},
	}
	register.Flags().StringVar(&input.Username, "username", "", "login name")
	register.Flags().StringVar(&input.Password, "password", "", "password")
	register.Flags().StringVar(&input.DisplayName, "display-name", "", "name shown to other brawlers")
	_ = register.MarkFlagRequired("username")
	_ = register.MarkFlagRequired("password")
	_ = register.MarkFlagRequired("display-name")

	cmd.AddCommand(register)
	return cmd
}
