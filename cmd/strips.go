package cmd

import (
	"fmt"

	"github.com/bloodmagesoftware/sectorgeo/strip"
	"github.com/spf13/cobra"
)

var stripsThickness float64

var stripsCmd = &cobra.Command{
	Use:   "strips {map}",
	Short: "Print the wall strip polygons of a map",
	Long:  `Computes the textured wall strip quad of every wall and prints its corner points.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMap(args[0])
		if err != nil {
			return err
		}
		config, err := loadConfig()
		if err != nil {
			return err
		}

		thickness := config.Strip.Thickness
		if cmd.Flags().Changed("thickness") {
			thickness = stripsThickness
		}

		out := cmd.OutOrStdout()
		polys := strip.Compute(m, thickness, config.StripOptions())
		for _, p := range polys {
			source := "fallback"
			if p.FromLoop {
				source = "loop"
			}
			fmt.Fprintf(out, "wall %d (%s):", p.Wall, source)
			for _, pt := range p.Points {
				fmt.Fprintf(out, " (%.4g, %.4g)", pt[0], pt[1])
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%d strips for %d walls\n", len(polys), len(m.Walls))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stripsCmd)
	stripsCmd.Flags().Float64Var(&stripsThickness, "thickness", 0, "Strip thickness in world units (default from config)")
}
