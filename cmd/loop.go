package cmd

import (
	"fmt"
	"strconv"

	"github.com/bloodmagesoftware/sectorgeo/boundary"
	"github.com/spf13/cobra"
)

var loopCmd = &cobra.Command{
	Use:   "loop {map} {sector-id}",
	Short: "Print the boundary loop of a sector",
	Long:  `Extracts the ordered boundary loop of a sector and prints each vertex with the wall leaving it.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMap(args[0])
		if err != nil {
			return err
		}
		sectorID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid sector id %q: %w", args[1], err)
		}

		config, err := loadConfig()
		if err != nil {
			return err
		}

		loop, err := boundary.NewExtractor(config.Epsilon).Extract(m, sectorID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "sector %d: %d edges\n", loop.SectorID, loop.Len())
		for i := 0; i < loop.Len(); i++ {
			p := loop.Polygon[i]
			fmt.Fprintf(out, "  v%-4d (%g, %g)  wall %d\n", loop.VertexIndices[i], p[0], p[1], loop.WallIndices[i])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loopCmd)
}
