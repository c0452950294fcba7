package cmd

import (
	"fmt"

	"github.com/bloodmagesoftware/sectorgeo/preview"
	"github.com/bloodmagesoftware/sectorgeo/project"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview {map} {output}",
	Short: "Render a map to a PNG or QOI image",
	Long:  `Renders sectors, walls, doors and markers of a map. The output format follows the file extension (.png or .qoi).`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMap(args[0])
		if err != nil {
			return err
		}
		config, err := loadConfig()
		if err != nil {
			return err
		}

		img, err := preview.Render(m, previewOptions(config))
		if err != nil {
			return err
		}
		if err := preview.Write(args[1], img); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Preview written to %s\n", args[1])
		return nil
	},
}

func previewOptions(config *project.Config) preview.Options {
	// Validate already rejected unknown modes.
	mode, _ := config.Mode()
	return preview.Options{
		Width:     config.Preview.Width,
		Height:    config.Preview.Height,
		CellSize:  config.Preview.CellSize,
		Mode:      mode,
		Thickness: config.Strip.Thickness,
		Strip:     config.StripOptions(),
	}
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
