package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bloodmagesoftware/sectorgeo/geom"
	"github.com/bloodmagesoftware/sectorgeo/placement"
	"github.com/bloodmagesoftware/sectorgeo/preview"
	"github.com/spf13/cobra"
)

var (
	placeRoom    string
	placeScale   float64
	placePreview string
)

var placeCmd = &cobra.Command{
	Use:   "place {map}",
	Short: "Validate a candidate room against a map",
	Long: `Classifies a candidate room polygon as seed, nested, adjacent or invalid.
Adjacent rooms report the snapped outline and the portal opening.`,
	Example: `  sectorgeo place levels/e1m1.yaml --room "3,-2 7,-2 7,0 3,0"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMap(args[0])
		if err != nil {
			return err
		}
		room, err := parseRoom(placeRoom)
		if err != nil {
			return err
		}
		config, err := loadConfig()
		if err != nil {
			return err
		}

		scale := config.ViewScale
		if cmd.Flags().Changed("scale") {
			scale = placeScale
		}

		res := placement.Validate(m, room, config.PlacementParams(scale))
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, res)
		switch res.State {
		case placement.Nested:
			fmt.Fprintf(out, "enclosing sector: %d\n", res.EnclosingSectorID)
		case placement.Adjacent:
			plan := res.Plan
			fmt.Fprintf(out, "target wall: %d (room edge %d)\n", res.TargetWallIndex, plan.EdgeIndex)
			fmt.Fprintf(out, "offset: (%g, %g)\n", plan.Offset[0], plan.Offset[1])
			fmt.Fprintf(out, "portal: (%g, %g) - (%g, %g)\n", plan.PortalStart[0], plan.PortalStart[1], plan.PortalEnd[0], plan.PortalEnd[1])
			fmt.Fprintf(out, "snapped: %s\n", formatRoom(plan.Snapped))
		case placement.Invalid:
			if res.TargetWallIndex >= 0 {
				fmt.Fprintf(out, "wall: %d\n", res.TargetWallIndex)
			}
		}

		if placePreview != "" {
			opts := previewOptions(config)
			opts.Room = room
			if res.Plan != nil {
				opts.Room = res.Plan.Snapped
			}
			opts.RoomValid = res.Valid()
			img, err := preview.Render(m, opts)
			if err != nil {
				return err
			}
			if err := preview.Write(placePreview, img); err != nil {
				return err
			}
		}
		return nil
	},
}

// parseRoom parses "x,y x,y ..." into a polygon.
func parseRoom(s string) ([]geom.Vec2, error) {
	fields := strings.Fields(s)
	room := make([]geom.Vec2, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("invalid room point %q: expected x,y", f)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid room point %q: %w", f, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid room point %q: %w", f, err)
		}
		room = append(room, geom.V(x, y))
	}
	return room, nil
}

func formatRoom(room []geom.Vec2) string {
	parts := make([]string, len(room))
	for i, p := range room {
		parts[i] = strconv.FormatFloat(p[0], 'g', -1, 64) + "," + strconv.FormatFloat(p[1], 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

func init() {
	rootCmd.AddCommand(placeCmd)
	placeCmd.Flags().StringVar(&placeRoom, "room", "", `Room polygon as "x,y x,y ..."`)
	placeCmd.Flags().Float64Var(&placeScale, "scale", 0, "World-to-screen ratio (default from config)")
	placeCmd.Flags().StringVar(&placePreview, "preview", "", "Write a preview with the room to this .png or .qoi file")
	_ = placeCmd.MarkFlagRequired("room")
}
