package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/aretw0/waypoint/pkg/urltemplate"
	"github.com/aretw0/waypoint/pkg/urlvalue"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var asURL bool

	cmd := &cobra.Command{
		Use:   "parse <template>",
		Short: "Print the tokens of a URL template",
		Long: `Tokenizes a route template such as "/users/{id}?tab={}" and prints one
token per line. With --url the input is read as a concrete URL, where braces
are plain characters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parse := urltemplate.Parse
			if asURL {
				parse = urltemplate.ParseURL
			}
			t, err := parse(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			styles := tui.NewStyles(w)
			for i, tok := range t.Tokens() {
				fmt.Fprintf(w, "%3d  %s\n", i, styles.Accent(tok.String()))
			}
			fmt.Fprintf(w, "%s %s\n", styles.Muted("canonical:"), t.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asURL, "url", false, "Tokenize the input as a concrete URL")
	return cmd
}

func newRenderCmd(g *globals) *cobra.Command {
	var (
		sets     []string
		sitePath string
		page     string
	)

	cmd := &cobra.Command{
		Use:   "render [template]",
		Short: "Render a URL from a template and values",
		Long: `Substitutes --set name=value pairs into a template. The template is given
as an argument, or taken from a page of a site file with --site and --page.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseSets(sets)
			if err != nil {
				return err
			}

			var out string
			switch {
			case len(args) == 1:
				t, err := urltemplate.Parse(args[0])
				if err != nil {
					return err
				}
				out, err = urlvalue.Render(t, values)
				if err != nil {
					return err
				}
			case sitePath != "" && page != "":
				site, err := waypoint.LoadSite(sitePath, waypoint.WithLogger(g.logger))
				if err != nil {
					return err
				}
				out, err = site.URL(page, values...)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("render needs a template argument or --site with --page")
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Value to substitute, as name=value (repeatable)")
	cmd.Flags().StringVar(&sitePath, "site", "", "Site file to take the page template from")
	cmd.Flags().StringVar(&page, "page", "", "Page name inside --site")
	return cmd
}

func parseSets(sets []string) ([]urlvalue.Value, error) {
	values := make([]urlvalue.Value, 0, len(sets))
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", s)
		}
		values = append(values, urlvalue.String(name, value))
	}
	return values, nil
}
