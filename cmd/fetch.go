package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amitrahman1026/personal-site/internal/fetch"
	"github.com/amitrahman1026/personal-site/internal/logging"
	"github.com/amitrahman1026/personal-site/internal/panel"
)

var fetchOrigin string

var fetchCmd = &cobra.Command{
	Use:   "fetch <resource-path>",
	Short: "Load a markdown resource through the panel pipeline",
	Long: `Fetches a root-relative resource such as /bloglist.md from the content origin,
renders it and prints the resulting panel state. A failed fetch leaves the
panel loading and exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		origin := fetchOrigin
		debug := verbose
		if origin == "" {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			origin = cfg.ContentOrigin
			debug = cfg.Debug
		}

		p := panel.New(fetch.New(origin), panel.WithLogger(logging.New(os.Stderr, debug)))
		err := p.Load(cmd.Context(), args[0])

		st := p.State()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "url:    %s\n", st.URL)
		fmt.Fprintf(out, "status: %s\n\n", st.Status)
		fmt.Fprintln(out, st.Content)
		return err
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchOrigin, "origin", "", "content origin, e.g. https://example.com/personal-website (defaults to content_origin)")
	rootCmd.AddCommand(fetchCmd)
}
