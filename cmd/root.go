package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bloodmagesoftware/sectorgeo/level"
	"github.com/bloodmagesoftware/sectorgeo/project"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "sectorgeo",
	Short: "sectorgeo - Geometry tools for sector-based level maps",
	Long: `sectorgeo inspects sector-based 2D level maps. It extracts sector
boundary loops, computes wall strips, resolves picks, validates room
placement, lints and formats map files and renders previews.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if verbose {
			logLevel = slog.LevelDebug
		}
		level.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a sectorgeo.yaml (default: discovered from the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log skipped map elements and boundary fallbacks")
}

// loadConfig returns the configuration named by --config, or the one of the
// enclosing project, or the defaults.
func loadConfig() (*project.Config, error) {
	if configPath != "" {
		return project.LoadConfigFile(configPath)
	}
	config, err := project.Discover()
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	return config, nil
}

// resolveMapPath accepts a map file path or the name of a map in the
// project's levels directory.
func resolveMapPath(arg string) (string, error) {
	if _, err := os.Stat(arg); err == nil {
		return arg, nil
	}

	projectRoot, err := project.FindProjectRoot()
	if err != nil {
		return "", fmt.Errorf("map %s not found", arg)
	}
	levelFilePath := filepath.Join(projectRoot, "levels", arg+".yaml")
	if _, err := os.Stat(levelFilePath); err != nil {
		return "", fmt.Errorf("map %s not found: %w", arg, err)
	}
	return levelFilePath, nil
}

func loadMap(arg string) (*level.Map, error) {
	path, err := resolveMapPath(arg)
	if err != nil {
		return nil, err
	}
	level.Logger().Debug("loading map", "path", path)
	return level.Load(path)
}
