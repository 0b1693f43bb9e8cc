package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amitrahman1026/personal-site/internal/localstore"
	"github.com/amitrahman1026/personal-site/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:       "theme [toggle]",
	Short:     "Show or toggle the stored theme preference",
	Long:      `Prints the theme kept in the local store, or flips it between light and dark with "toggle".`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := localstore.Open(cfg.LocalStore)
		if err != nil {
			return err
		}
		defer store.Close()

		pref := theme.NewPreference(store)
		current, err := pref.Load()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			if current, err = pref.Toggle(); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), current)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
