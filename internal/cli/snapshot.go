package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yuzhayo/launcher"
)

func newSnapshotCmd(g *globalOpts) *cobra.Command {
	var size, output string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the background on the CPU to a WebP or PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			w, h, err := sizeOrConfig(size, cfg)
			if err != nil {
				return err
			}
			switch strings.ToLower(filepath.Ext(output)) {
			case ".webp", ".png":
			default:
				return fmt.Errorf("unsupported output format %q (use .webp or .png)", filepath.Ext(output))
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			start := time.Now()
			fetcher := g.fetcher()
			layers, err := loadLayers(ctx, cfg, fetcher, logger)
			if err != nil {
				return err
			}
			plan := launcher.NewCompositor(logger).Plan(launcher.NewOrigin(w, h), layers)

			assets := launcher.NewAssetStore(fetcher, logger)
			defer assets.Close()
			for _, l := range plan.Layers {
				assets.Request(l.Src)
			}
			if err := assets.Wait(ctx); err != nil {
				return err
			}

			opts := cfg.ScreenOptions(fetcher, logger)
			img := launcher.RenderSoftware(plan, assets, launcher.SoftwareOptions{
				Background: opts.Background,
				Glow:       opts.Glow,
				Marker:     opts.Marker,
			})
			if err := launcher.WriteImage(output, img); err != nil {
				return err
			}
			logger.Infof("wrote %s (%d layers, %s)", output, len(plan.Layers), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&size, "size", "s", "", "viewport size WIDTHxHEIGHT (default: config window size)")
	cmd.Flags().StringVarP(&output, "output", "o", "launcher.webp", "output file (.webp or .png)")
	return cmd
}
