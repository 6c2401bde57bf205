package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stangrad/wayfind/pkg/export"
	"github.com/stangrad/wayfind/pkg/pipeline"
)

// exportCommand creates the export command for rendering a computed map.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format  string
		output  string
		titles  bool
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "export [map.json]",
		Short: "Render a computed map as Graphviz DOT or SVG",
		Long: `Render a computed map as Graphviz DOT or SVG.

This is a debugging aid for inspecting the layout solver's output without
starting a server: the DOT output pins every node to its computed position,
so the neato engine reproduces the map geometry exactly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "dot" && format != "svg" {
				return fmt.Errorf("invalid format: %q (must be dot or svg)", format)
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts.MapPath = args[0]
			opts.Logger = c.Logger
			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("compute layout: %w", err)
			}

			dot := export.ToDOT(result.Model, result.Layout, export.Options{Titles: titles})
			data := []byte(dot)
			if format == "svg" {
				if data, err = export.RenderSVG(dot); err != nil {
					return fmt.Errorf("render svg: %w", err)
				}
			}

			outputPath := output
			if outputPath == "" {
				base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
				outputPath = base + "." + format
			}
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return fmt.Errorf("write output %s: %w", outputPath, err)
			}

			printSuccess("Export complete")
			printFile(outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().BoolVar(&titles, "titles", false, "label nodes with titles instead of ids")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (default: fixed)")

	return cmd
}
