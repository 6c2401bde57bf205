package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/stangrad/wayfind/pkg/nav"
	"github.com/stangrad/wayfind/pkg/pipeline"
)

// walkCommand creates the walk command for interactive navigation.
func (c *CLI) walkCommand() *cobra.Command {
	var (
		start   string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "walk [map.json]",
		Short: "Navigate a map interactively in the terminal",
		Long: `Navigate a map interactively in the terminal.

Movement is relative to your current heading: forward/right/back/left pick
neighbors by their bearing, and repeating a direction cycles through every
neighbor in that quadrant. Next/previous follow the authored tour order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts.MapPath = args[0]
			opts.Logger = c.Logger
			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("load map: %w", err)
			}

			startID := start
			if startID == "" {
				startID = result.Model.Root().ID
			}
			model, err := NewWalkModel(result.Session, startID)
			if err != nil {
				return err
			}

			prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = prog.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start node id (default: first node)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (default: fixed)")

	return cmd
}

// Walk styles
var (
	walkActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	walkLabelStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(9)
	walkEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// WalkModel is the bubbletea model for interactive map walking.
type WalkModel struct {
	Session *nav.Session
	Status  string
}

// NewWalkModel creates a walk model positioned at the given start node.
func NewWalkModel(s *nav.Session, startID string) (WalkModel, error) {
	if err := s.SetPose(startID, defaultHeading(s, startID)); err != nil {
		return WalkModel{}, fmt.Errorf("start node %q: %w", startID, err)
	}
	return WalkModel{Session: s}, nil
}

// defaultHeading picks the node's authored default view yaw, or 0.
func defaultHeading(s *nav.Session, id string) float64 {
	if n, ok := s.Model().Node(id); ok && n.DefaultView != nil {
		return n.DefaultView.Yaw
	}
	return 0
}

func (m WalkModel) Init() tea.Cmd {
	return nil
}

func (m WalkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "w":
		return m.move(nav.DirectionForward), nil
	case "right", "d":
		return m.move(nav.DirectionRight), nil
	case "down", "s":
		return m.move(nav.DirectionBack), nil
	case "left", "a":
		return m.move(nav.DirectionLeft), nil
	case "n":
		return m.step(1), nil
	case "p":
		return m.step(-1), nil
	}
	return m, nil
}

// move advances through the quadrant's bucket and walks to the chosen
// neighbor, facing the direction of travel.
func (m WalkModel) move(d nav.Direction) WalkModel {
	choice, ok := m.Session.Advance(d)
	if !ok {
		m.Status = fmt.Sprintf("nothing %s from here", d)
		return m
	}
	if err := m.Session.SetPose(choice.NeighborID, choice.ViewerYaw); err != nil {
		m.Status = err.Error()
		return m
	}
	m.Status = fmt.Sprintf("went %s to %s", d, choice.NeighborID)
	return m
}

// step follows the authored tour order.
func (m WalkModel) step(dir int) WalkModel {
	label := "next"
	if dir < 0 {
		label = "previous"
	}
	next, ok := m.Session.Step(m.Session.ActiveID(), dir)
	if !ok {
		m.Status = fmt.Sprintf("no %s stop", label)
		return m
	}
	wb, _ := m.Session.ViewerBearing(m.Session.ActiveID(), next)
	if err := m.Session.SetPose(next, wb); err != nil {
		m.Status = err.Error()
		return m
	}
	m.Status = fmt.Sprintf("stepped to %s", next)
	return m
}

func (m WalkModel) View() string {
	var b strings.Builder

	active, _ := m.Session.Model().Node(m.Session.ActiveID())

	b.WriteString(StyleTitle.Render("Wayfind"))
	b.WriteString("\n")
	b.WriteString(walkEmptyStyle.Render("↑→↓← move  n/p tour order  q quit"))
	b.WriteString("\n\n")

	b.WriteString(walkActiveStyle.Render(active.DisplayTitle()))
	if active.Type != "" {
		b.WriteString("  " + walkEmptyStyle.Render(active.Type))
	}
	b.WriteString("\n")
	if active.Description != "" {
		b.WriteString(StyleDim.Render(active.Description))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("heading %.0f°", m.Session.Heading())))
	b.WriteString("\n\n")

	buckets := m.Session.Buckets()
	for d := nav.DirectionForward; d <= nav.DirectionLeft; d++ {
		b.WriteString(walkLabelStyle.Render(d.String()))
		choices := buckets.Get(d)
		if len(choices) == 0 {
			b.WriteString(walkEmptyStyle.Render("—"))
		} else {
			names := make([]string, len(choices))
			for i, ch := range choices {
				names[i] = fmt.Sprintf("%s (%+.0f°)", ch.NeighborID, ch.Delta)
			}
			b.WriteString(StyleValue.Render(strings.Join(names, "  ")))
		}
		b.WriteString("\n")
	}

	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(StyleHighlight.Render(m.Status))
		b.WriteString("\n")
	}
	return b.String()
}
