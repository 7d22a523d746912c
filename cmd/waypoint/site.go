package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/presentation/graph"
	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func addSiteFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVar(path, "site", "site.yaml", "Site file listing the pages (YAML or JSON)")
}

func newMatchCmd(g *globals) *cobra.Command {
	var sitePath string

	cmd := &cobra.Command{
		Use:   "match <url>",
		Short: "Resolve a URL against the pages of a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := waypoint.LoadSite(sitePath, waypoint.WithLogger(g.logger))
			if err != nil {
				return err
			}
			res, err := site.Resolve(args[0])
			if err != nil {
				return err
			}
			if !res.Found {
				return fmt.Errorf("no page matches %q", args[0])
			}
			if _, err := res.Page.Values(res.Captures); err != nil {
				return fmt.Errorf("page %s: %w", res.Page.Name, err)
			}

			w := cmd.OutOrStdout()
			styles := tui.NewStyles(w)
			fmt.Fprintf(w, "page: %s\n", styles.Success(res.Page.Name))
			if res.Page.Title != "" {
				fmt.Fprintf(w, "title: %s\n", res.Page.Title)
			}
			for _, c := range res.Captures {
				fmt.Fprintf(w, "  %s = %s\n", styles.Accent(c.Name), c.Value)
			}
			return nil
		},
	}

	addSiteFlag(cmd, &sitePath)
	return cmd
}

func newTreeCmd(g *globals) *cobra.Command {
	var sitePath string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Export the decision tree of a site",
		Long:  `Loads the site and outputs a Mermaid diagram (graph TD) of the decision tree used to match URLs.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := waypoint.LoadSite(sitePath, waypoint.WithLogger(g.logger))
			if err != nil {
				return err
			}
			output := graph.GenerateTreeMermaid(site.Matcher(), func(p *waypoint.Page) string { return p.Name })
			fmt.Fprint(cmd.OutOrStdout(), output)
			return nil
		},
	}

	addSiteFlag(cmd, &sitePath)
	return cmd
}

func newRoutesCmd(g *globals) *cobra.Command {
	var (
		sitePath string
		style    string
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the pages of a site as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := waypoint.LoadSite(sitePath, waypoint.WithLogger(g.logger))
			if err != nil {
				return err
			}
			render, err := tui.NewRenderer(style)
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			out, err := render(routesMarkdown(site))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	addSiteFlag(cmd, &sitePath)
	cmd.Flags().StringVar(&style, "style", "auto", "Glamour style (auto, dark, light, notty)")
	return cmd
}

func routesMarkdown(site *waypoint.Site) string {
	var sb strings.Builder
	sb.WriteString("| Page | Template | Title |\n|---|---|---|\n")
	for _, p := range site.Pages() {
		fmt.Fprintf(&sb, "| %s | `%s` | %s |\n", p.Name, p.Template.Raw(), p.Title)
	}
	return sb.String()
}
