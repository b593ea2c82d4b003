package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yuzhayo/launcher"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version. Called
// by main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// globalOpts are the flags shared by every command.
type globalOpts struct {
	configPath string
	assetsDir  string
	verbose    bool
}

// Execute runs the launcher CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var g globalOpts

	root := &cobra.Command{
		Use:          "launcher",
		Short:        "Launcher renders an origin-anchored layered background",
		Long:         `Launcher shows a layered background centered on a screen origin, with overlay widgets positioned in normalized coordinates.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if g.verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			launcher.SetLogger(logger)
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("launcher %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file (launcher.toml)")
	root.PersistentFlags().StringVar(&g.assetsDir, "assets", ".", "directory relative asset paths are read from")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd(&g))
	root.AddCommand(newPlanCmd(&g))
	root.AddCommand(newMapCmd(&g))
	root.AddCommand(newSnapshotCmd(&g))

	return root
}

// loadConfig returns the config named by --config, or the defaults.
func (g *globalOpts) loadConfig() (launcher.Config, error) {
	if g.configPath == "" {
		return launcher.DefaultConfig(), nil
	}
	return launcher.LoadConfig(g.configPath)
}

// fetcher reads relative paths from --assets and absolute URLs over HTTP.
func (g *globalOpts) fetcher() launcher.Fetcher {
	return launcher.NewFetcher(os.DirFS(g.assetsDir))
}
