package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yuzhayo/launcher"
)

func newMapCmd(g *globalOpts) *cobra.Command {
	var size, norm, pixel string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Convert between normalized and pixel coordinates",
		Example: `  launcher map --size 800x600 --norm 0.5,0.5
  launcher map --size 800x600 --pixel 550,150`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (norm == "") == (pixel == "") {
				return errors.New("exactly one of --norm or --pixel is required")
			}
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			w, h, err := sizeOrConfig(size, cfg)
			if err != nil {
				return err
			}
			o := launcher.NewOrigin(w, h)
			out := cmd.OutOrStdout()
			if norm != "" {
				x, y, err := parsePair(norm)
				if err != nil {
					return err
				}
				p := launcher.ToPixel(o, launcher.Norm{X: x, Y: y})
				_, err = fmt.Fprintf(out, "left=%g top=%g\n", p.Left, p.Top)
				return err
			}
			left, top, err := parsePair(pixel)
			if err != nil {
				return err
			}
			n := launcher.ToNorm(o, launcher.PixelPoint{Left: left, Top: top})
			_, err = fmt.Fprintf(out, "x=%g y=%g\n", n.X, n.Y)
			return err
		},
	}

	cmd.Flags().StringVarP(&size, "size", "s", "", "viewport size WIDTHxHEIGHT (default: config window size)")
	cmd.Flags().StringVar(&norm, "norm", "", "normalized point X,Y to convert to pixels")
	cmd.Flags().StringVar(&pixel, "pixel", "", "pixel point LEFT,TOP to convert to normalized")
	return cmd
}
