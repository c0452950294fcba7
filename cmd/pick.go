package cmd

import (
	"fmt"

	"github.com/bloodmagesoftware/sectorgeo/geom"
	"github.com/bloodmagesoftware/sectorgeo/pick"
	"github.com/bloodmagesoftware/sectorgeo/strip"
	"github.com/spf13/cobra"
)

var (
	pickX      float64
	pickY      float64
	pickScreen bool
	pickScale  float64
)

var pickCmd = &cobra.Command{
	Use:   "pick {map}",
	Short: "Resolve what a click at a point selects",
	Long: `Resolves the map element selected by a click. Coordinates are world units,
or preview image pixels with --screen.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMap(args[0])
		if err != nil {
			return err
		}
		config, err := loadConfig()
		if err != nil {
			return err
		}
		mode, err := config.Mode()
		if err != nil {
			return err
		}

		point := geom.V(pickX, pickY)
		scale := config.ViewScale
		if pickScreen {
			view := previewOptions(config).View(m)
			point = view.ScreenToWorld(point)
			scale = view.Scale()
		}
		if cmd.Flags().Changed("scale") {
			scale = pickScale
		}

		q := pick.Query{
			Point:       point,
			ViewScale:   scale,
			Mode:        mode,
			HitRadiusPx: config.Pick.HitRadiusPx,
			Epsilon:     config.Epsilon,
		}
		if mode == pick.Textured {
			q.Strips = strip.Compute(m, config.Strip.Thickness, config.StripOptions())
		}

		out := cmd.OutOrStdout()
		sel, ok := pick.Pick(m, q)
		if !ok {
			fmt.Fprintln(out, "nothing")
			return nil
		}
		fmt.Fprintln(out, sel)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pickCmd)
	pickCmd.Flags().Float64Var(&pickX, "x", 0, "X coordinate")
	pickCmd.Flags().Float64Var(&pickY, "y", 0, "Y coordinate")
	pickCmd.Flags().BoolVar(&pickScreen, "screen", false, "Interpret coordinates as preview image pixels")
	pickCmd.Flags().Float64Var(&pickScale, "scale", 0, "World-to-screen ratio (default from config or preview view)")
}
