package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stangrad/wayfind/pkg/graph"
	"github.com/stangrad/wayfind/pkg/nav"
)

// routeCommand creates the route command for path planning.
func (c *CLI) routeCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "route [map.json]",
		Short: "Plan the shortest path between two nodes",
		Long: `Plan the shortest path between two nodes.

The search runs breadth-first over each node's own connections, so one-way
links are honored: a path that exists lobby → lab may not exist lab → lobby.
An unreachable destination is reported, not an error.`,
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

			tracker := newProgress(c.Logger)
			path := nav.Route(m, from, to)
			tracker.done(fmt.Sprintf("Searched %d nodes", m.NodeCount()))

			if path == nil {
				printWarning("No route from %s to %s", from, to)
				return nil
			}

			printSuccess("Route found (%d stops)", len(path))
			names := make([]string, len(path))
			for i, id := range path {
				// Identity routes echo the requested id even when it is
				// not part of the graph.
				names[i] = id
				if n, ok := m.Node(id); ok {
					names[i] = n.DisplayTitle()
				}
			}
			printDetail("%s", strings.Join(names, " "+iconArrow+" "))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start node id")
	cmd.Flags().StringVar(&to, "to", "", "destination node id")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
