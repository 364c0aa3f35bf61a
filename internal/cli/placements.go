package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/floatplace/pkg/geom"
)

// placementsCommand lists the valid placements with their axes.
func (c *CLI) placementsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "placements",
		Short: "List valid placements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := lipgloss.NewStyle().Width(14)
			for _, p := range geom.Placements {
				align := string(p.Alignment())
				if align == "" {
					align = "center"
				}
				fmt.Fprintf(c.Out, "%s %s\n",
					name.Render(string(p)),
					StyleDim.Render(fmt.Sprintf("main=%s cross=%s align=%s", p.MainAxis(), p.CrossAxis(), align)))
			}
			return nil
		},
	}
}
