// Package beamplot renders beam footprints, the transverse distribution of
// ray positions or slopes, as PNG scatter plots (gonum/plot) or interactive
// HTML (go-echarts).
package beamplot

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/banshee-data/beamrays/internal/beam"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Footprint is a set of 2D points to plot with equal axes.
type Footprint struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
}

// FootprintFromRays selects the position rows (x, y) of r, or the slope rows
// when slopes is set. Slopes are plotted as (row 3, row 1) so a point beam is
// drawn with the same orientation as the disc it was sampled from.
func FootprintFromRays(r *beam.Rays, title string, slopes bool) Footprint {
	if slopes {
		return Footprint{
			Title:  title,
			XLabel: "row 3 slope (rad)",
			YLabel: "row 1 slope (rad)",
			X:      r.SlopeY(),
			Y:      r.SlopeX(),
		}
	}
	return Footprint{
		Title:  title,
		XLabel: "x (m)",
		YLabel: "y (m)",
		X:      r.X(),
		Y:      r.Y(),
	}
}

// extent returns a symmetric axis limit that contains every point with a 5% margin.
func (f Footprint) extent() float64 {
	maxAbs := 0.0
	for i := range f.X {
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(f.X[i]), math.Abs(f.Y[i])))
	}
	if maxAbs == 0 {
		return 1
	}
	return maxAbs * 1.05
}

func (f Footprint) validate() error {
	if len(f.X) != len(f.Y) {
		return fmt.Errorf("footprint has %d x values but %d y values", len(f.X), len(f.Y))
	}
	return nil
}

// SavePNG writes the footprint as a scatter plot. The parent directory is
// created if needed.
func (f Footprint) SavePNG(path string, size vg.Length) error {
	if err := f.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel
	pad := f.extent()
	p.X.Min, p.X.Max = -pad, pad
	p.Y.Min, p.Y.Max = -pad, pad
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(f.X))
	for i := range f.X {
		pts[i] = plotter.XY{X: f.X[i], Y: f.Y[i]}
	}
	if len(pts) > 0 {
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("failed to create scatter: %w", err)
		}
		s.GlyphStyle.Color = color.RGBA{R: 49, G: 104, B: 142, A: 255}
		s.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(s)
	}

	if err := p.Save(size, size, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// WriteHTML renders the footprint as an interactive go-echarts scatter.
func (f Footprint) WriteHTML(w io.Writer) error {
	if err := f.validate(); err != nil {
		return err
	}

	data := make([]opts.ScatterData, 0, len(f.X))
	for i := range f.X {
		data = append(data, opts.ScatterData{Value: []interface{}{f.X[i], f.Y[i]}})
	}

	pad := f.extent()
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: f.Title, Width: "800px", Height: "800px"}),
		charts.WithTitleOpts(opts.Title{Title: f.Title, Subtitle: fmt.Sprintf("rays=%d", len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: f.XLabel, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: f.YLabel, NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("rays", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
