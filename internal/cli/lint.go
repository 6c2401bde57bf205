package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stangrad/wayfind/pkg/graph"
)

// lintCommand creates the lint command for document validation.
func (c *CLI) lintCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint [map.json]",
		Short: "Report structural issues in a walk-graph document",
		Long: `Report structural issues in a walk-graph document.

Findings cover duplicate node ids, connections referencing unknown ids, and
one-way links. One-way links are legal (stairwell exits, camera gaps) and
reported as informational; pass --strict to fail on warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := graph.ReadDocumentFile(args[0])
			if err != nil {
				return fmt.Errorf("load map %s: %w", args[0], err)
			}
			m, err := graph.NewModel(doc)
			if err != nil {
				return fmt.Errorf("build model: %w", err)
			}

			findings := m.Lint()
			if len(findings) == 0 {
				printSuccess("No issues found")
				return nil
			}

			warnings := 0
			for _, f := range findings {
				where := f.NodeID
				if f.Ref != "" {
					where += " " + iconArrow + " " + f.Ref
				}
				switch f.Severity {
				case graph.SeverityWarning:
					warnings++
					printWarning("%s: %s", where, f.Message)
				default:
					printInfo("%s: %s", where, f.Message)
				}
			}
			printNewline()
			printDetail("%d findings (%d warnings)", len(findings), warnings)

			if strict && warnings > 0 {
				return fmt.Errorf("lint found %d warnings", warnings)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero on warnings")

	return cmd
}
