package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/alexiusacademia/goliq/internal/liquefaction"
)

var (
	colorN    = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	colorFL   = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	colorOne  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	colorGWL  = color.RGBA{R: 100, G: 149, B: 237, A: 255}
	colorCrit = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

// depthTicks labels a negated depth axis with positive depths so that depth
// increases downward.
type depthTicks struct{}

func (depthTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = fmt.Sprintf("%g", math.Abs(ticks[i].Value))
		}
	}
	return ticks
}

// ExportProfile draws N and FL against depth side by side and saves the
// image. The format follows the extension (png, svg, pdf, jpg); any other
// extension gets ".png" appended. It returns the path written.
func ExportProfile(rows []liquefaction.Row, gwl float64, filename string) (string, error) {
	if len(rows) == 0 {
		return "", errors.New("no rows to plot")
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch format {
	case "png", "svg", "pdf", "jpg", "jpeg":
	default:
		filename += ".png"
		format = "png"
	}

	maxDepth := gwl
	for _, r := range rows {
		maxDepth = math.Max(maxDepth, r.Depth)
	}
	maxDepth = math.Ceil(maxDepth + 0.5)

	pN, err := profilePlot("N value", "N", maxDepth, gwl, rows, func(r liquefaction.Row) float64 { return r.N }, colorN)
	if err != nil {
		return "", err
	}
	pFL, err := profilePlot("Factor of safety", "FL", maxDepth, gwl, rows, func(r liquefaction.Row) float64 { return r.FL }, colorFL)
	if err != nil {
		return "", err
	}

	// FL = 1 reference line
	one, err := plotter.NewLine(plotter.XYs{{X: 1, Y: 0}, {X: 1, Y: -maxDepth}})
	if err != nil {
		return "", err
	}
	one.LineStyle.Width = vg.Points(1.5)
	one.LineStyle.Color = colorOne
	one.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	pFL.Add(one)
	pFL.X.Min = 0

	// mark the critical depth
	s := liquefaction.Summarize(rows)
	crit, err := plotter.NewScatter(plotter.XYs{{X: s.MinFL, Y: -s.CriticalDepth}})
	if err != nil {
		return "", err
	}
	crit.GlyphStyle.Color = colorCrit
	crit.GlyphStyle.Radius = vg.Points(6)
	crit.GlyphStyle.Shape = draw.RingGlyph{}
	pFL.Add(crit)
	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: s.MinFL, Y: -s.CriticalDepth}},
		Labels: []string{fmt.Sprintf("  min FL=%.2f", s.MinFL)},
	})
	if err != nil {
		return "", err
	}
	pFL.Add(lbl)

	w, h := 8*vg.Inch, 8*vg.Inch
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return "", err
	}
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter * 6, PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2}
	canvases := plot.Align([][]*plot.Plot{{pN, pFL}}, tiles, draw.New(c))
	pN.Draw(canvases[0][0])
	pFL.Draw(canvases[0][1])

	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return "", err
	}
	return filename, f.Close()
}

func profilePlot(title, xLabel string, maxDepth, gwl float64, rows []liquefaction.Row,
	value func(liquefaction.Row) float64, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Depth (m)"

	// Depth is plotted negated
	p.Y.Min = -maxDepth
	p.Y.Max = 0
	p.Y.Tick.Marker = depthTicks{}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(rows))
	for i, r := range rows {
		pts[i] = plotter.XY{X: value(r), Y: -r.Depth}
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = c
	points.GlyphStyle.Color = c
	points.GlyphStyle.Radius = vg.Points(3)
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(line, points)

	if gwl > 0 {
		xMax := 0.0
		for _, r := range rows {
			xMax = math.Max(xMax, value(r))
		}
		water, err := plotter.NewLine(plotter.XYs{{X: 0, Y: -gwl}, {X: math.Max(xMax, 1), Y: -gwl}})
		if err != nil {
			return nil, err
		}
		water.LineStyle.Color = colorGWL
		water.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(water)
		p.Legend.Add("GWL", water)
	}
	return p, nil
}
