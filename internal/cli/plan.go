package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yuzhayo/launcher"
)

func newPlanCmd(g *globalOpts) *cobra.Command {
	var (
		size   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the layer composition plan for a viewport size",
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
			logger := loggerFromContext(cmd.Context())
			layers, err := loadLayers(cmd.Context(), cfg, g.fetcher(), logger)
			if err != nil {
				return err
			}
			plan := launcher.NewCompositor(logger).Plan(launcher.NewOrigin(w, h), layers)
			if asJSON {
				return writePlanJSON(cmd.OutOrStdout(), plan)
			}
			return writePlanText(cmd.OutOrStdout(), plan)
		},
	}

	cmd.Flags().StringVarP(&size, "size", "s", "", "viewport size WIDTHxHEIGHT (default: config window size)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

type planLayerJSON struct {
	Index     int     `json:"index"`
	Z         int     `json:"z"`
	Src       string  `json:"src"`
	Alt       string  `json:"alt"`
	Fit       string  `json:"fit"`
	Transform string  `json:"transform"`
	Filter    string  `json:"filter,omitempty"`
	Opacity   float64 `json:"opacity"`
	Blend     string  `json:"blendMode"`
	Tint      string  `json:"tint,omitempty"`
}

type planJSON struct {
	Origin      launcher.OriginState `json:"origin"`
	Interactive bool                 `json:"interactive"`
	Layers      []planLayerJSON      `json:"layers"`
}

func toPlanJSON(p launcher.Plan) planJSON {
	out := planJSON{Origin: p.Origin, Interactive: p.Interactive(), Layers: []planLayerJSON{}}
	for _, l := range p.Layers {
		filter, _ := l.Effect.FilterString()
		pl := planLayerJSON{
			Index:     l.Index,
			Z:         l.Z,
			Src:       l.Src,
			Alt:       l.Alt,
			Fit:       string(l.Fit),
			Transform: l.Effect.TransformString(),
			Filter:    filter,
			Opacity:   l.Effect.Alpha(),
			Blend:     l.Effect.Blend.String(),
		}
		if t := l.Effect.Tint; t != nil && t.Err == nil {
			pl.Tint = fmt.Sprintf("%s@%g", t.Raw, t.Opacity)
		}
		out.Layers = append(out.Layers, pl)
	}
	return out
}

func writePlanJSON(w io.Writer, p launcher.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toPlanJSON(p))
}

func writePlanText(w io.Writer, p launcher.Plan) error {
	o := p.Origin
	fmt.Fprintf(w, "origin %gx%g center (%g, %g) scale %g\n", o.Width, o.Height, o.CenterX, o.CenterY, o.Scale)
	if len(p.Layers) == 0 {
		_, err := fmt.Fprintln(w, "no layers")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Z\tSRC\tFIT\tTRANSFORM\tFILTER\tOPACITY\tBLEND")
	for _, l := range toPlanJSON(p).Layers {
		filter := l.Filter
		if filter == "" {
			filter = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%g\t%s\n", l.Z, l.Src, l.Fit, l.Transform, filter, l.Opacity, l.Blend)
	}
	return tw.Flush()
}
