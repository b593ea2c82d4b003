package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yuzhayo/launcher"
)

func newRunCmd(g *globalOpts) *cobra.Command {
	var (
		sample     bool
		scriptPath string
		exit       bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the launcher window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			var runner *launcher.ScriptRunner
			if scriptPath != "" {
				data, err := os.ReadFile(scriptPath)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				if runner, err = launcher.LoadScript(data); err != nil {
					return err
				}
			}

			screen := launcher.NewScreen(cfg.ScreenOptions(g.fetcher(), logger))
			for _, b := range cfg.NewButtons(logger) {
				screen.Overlay().Mount(b)
			}
			if sample && len(cfg.Buttons) == 0 {
				b := launcher.NewSampleButton()
				b.Logger = logger
				screen.Overlay().Mount(b)
			}
			if cfg.ShowFPS {
				screen.Overlay().Mount(launcher.NewFPSWidget())
			}
			if runner != nil {
				screen.SetScript(runner, exit)
			}
			logger.Debug("starting", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height, "manifest", cfg.Manifest)
			return launcher.Run(screen, cfg.RunConfig())
		},
	}

	cmd.Flags().BoolVar(&sample, "sample", true, "mount the sample button when no buttons are configured")
	cmd.Flags().StringVar(&scriptPath, "script", "", "JSON test script of injected input and screenshots")
	cmd.Flags().BoolVar(&exit, "exit", false, "quit once the test script finishes")
	return cmd
}
