package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/amitrahman1026/personal-site/internal/highlight"
	"github.com/amitrahman1026/personal-site/internal/markdown"
)

var renderHighlight bool

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a markdown file to HTML",
	Long:  `Renders a markdown file, or stdin when no file is given, exactly as the markdown panel does and prints the HTML.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := io.Reader(cmd.InOrStdin())
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()
			in = f
		}

		src, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("reading markdown: %w", err)
		}

		out := markdown.Render(string(src))
		if renderHighlight {
			out = highlight.New().Apply(out)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderHighlight, "highlight", false, "colour fenced code blocks with chroma")
	rootCmd.AddCommand(renderCmd)
}
