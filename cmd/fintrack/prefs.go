package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func prefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prefs",
		Aliases: []string{"settings"},
		Short:   "Show and change display preferences",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.printer.Preferences(a.prefs.Load(cmd.Context()))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "theme light|dark",
		Short:     "Set the color theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.prefs.SetTheme(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Success("Theme set to %s", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between the light and dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			theme, err := a.prefs.ToggleTheme(cmd.Context())
			if err != nil {
				return err
			}
			a.printer.Success("Theme set to %s", theme)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "name NAME",
		Short: "Set the name used in greetings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if err := a.prefs.SetDisplayName(cmd.Context(), name); err != nil {
				return err
			}
			a.printer.Success("Name set to %s", name)
			return nil
		},
	})

	return cmd
}
