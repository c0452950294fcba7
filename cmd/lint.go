package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bloodmagesoftware/sectorgeo/level"
	"github.com/bloodmagesoftware/sectorgeo/linter"
	"github.com/bloodmagesoftware/sectorgeo/project"
	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint [map...]",
	Short: "Lint map files for malformed references",
	Long: `Checks map files for walls and doors with missing references, duplicate
sector ids and sectors whose boundary cannot be extracted. Without arguments
all maps in the project's levels directory are checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files := args
		if len(files) == 0 {
			dir, err := levelsDir()
			if err != nil {
				return err
			}
			files, err = filepath.Glob(filepath.Join(dir, "*.yaml"))
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "🔍 Linting maps...")

		violationCount := 0
		for _, arg := range files {
			path, err := resolveMapPath(arg)
			if err != nil {
				return err
			}
			m, err := level.Load(path)
			if err != nil {
				return fmt.Errorf("checking file %s: %w", path, err)
			}
			violations := linter.Lint(m)
			linter.Report(out, path, violations)
			violationCount += len(violations)
		}

		if violationCount > 0 {
			return fmt.Errorf("linter failed: found %d violations", violationCount)
		}

		fmt.Fprintf(out, "✅ Linter Passed: %d maps, no violations found.\n", len(files))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

// levelsDir returns the levels directory of the enclosing project.
func levelsDir() (string, error) {
	projectRoot, err := project.FindProjectRoot()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(projectRoot, "levels")
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("no levels directory in %s", projectRoot)
	}
	return dir, nil
}
