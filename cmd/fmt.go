package cmd

import (
	"github.com/bloodmagesoftware/sectorgeo/formatter"
	"github.com/spf13/cobra"
)

var (
	fmtCheck bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [path]",
	Short: "Format map files",
	Long: `Rewrites map files in canonical YAML form. Without arguments the project's
levels directory is formatted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			dir, err := levelsDir()
			if err != nil {
				return err
			}
			path = dir
		}

		if fmtCheck {
			return formatter.Check(path)
		}

		return formatter.Format(path)
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Check formatting without modifying files")
}
