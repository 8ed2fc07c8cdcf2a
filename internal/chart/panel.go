package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"MarketGrid/internal/model"
	"MarketGrid/internal/notifier"
)

func newPanel(r *model.SymbolReport) (*plot.Plot, error) {
	last, ok := r.Series.Last()
	if !ok {
		return nil, fmt.Errorf("empty series")
	}

	p := plot.New()
	p.Title.Text = r.Symbol
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Price"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Legend.Top = true
	p.Legend.Left = true

	if err := addLine(p, priceXYs(r.Series), priceColor, "Price"); err != nil {
		return nil, err
	}
	if err := addLine(p, maXYs(r.Series, r.FastMA), fastColor, fmt.Sprintf("%d-day SMA", r.FastMA.Window)); err != nil {
		return nil, err
	}
	if err := addLine(p, maXYs(r.Series, r.SlowMA), slowColor, fmt.Sprintf("%d-day SMA", r.SlowMA.Window)); err != nil {
		return nil, err
	}

	x := float64(last.Time.Unix())
	dot, err := plotter.NewScatter(plotter.XYs{{X: x, Y: r.LastClose}})
	if err != nil {
		return nil, err
	}
	dot.GlyphStyle.Color = lastCloseColor
	dot.GlyphStyle.Shape = draw.CircleGlyph{}
	dot.GlyphStyle.Radius = vg.Points(3)
	p.Add(dot)
	p.Legend.Add("Last Close", dot)

	base := p.Title.TextStyle
	base.Font.Size = vg.Points(10)
	for _, a := range annotations(r, x, base) {
		p.Add(a)
	}
	return p, nil
}

// annotations labels the last close at x and, for Up/Down signals only, adds
// an arrowed trend label below it.
func annotations(r *model.SymbolReport, x float64, base text.Style) []*annotation {
	closeStyle := base
	closeStyle.Color = lastCloseColor
	closeStyle.XAlign = text.XRight
	closeStyle.YAlign = text.YBottom
	out := []*annotation{{X: x, Y: r.LastClose, Text: notifier.FormatPrice(r.LastClose), Style: closeStyle}}

	if !r.Signal.Annotated() {
		return out
	}
	trendStyle := base
	trendStyle.Color = color.Black
	trendStyle.XAlign = text.XLeft
	trendStyle.YAlign = text.YTop
	return append(out, &annotation{
		X: x, Y: r.LastClose,
		Text:   r.Signal.String(),
		Offset: vg.Point{X: vg.Points(10), Y: vg.Points(-30)},
		Arrow:  true,
		Style:  trendStyle,
	})
}

func addLine(p *plot.Plot, xys plotter.XYs, c color.Color, label string) error {
	if len(xys) == 0 {
		return nil
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("%s line: %w", label, err)
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(1)
	p.Add(l)
	p.Legend.Add(label, l)
	return nil
}

func priceXYs(s model.PriceSeries) plotter.XYs {
	xys := make(plotter.XYs, len(s.Bars))
	for i, b := range s.Bars {
		xys[i].X = float64(b.Time.Unix())
		xys[i].Y = b.Close
	}
	return xys
}

// maXYs keeps only the defined entries of ma.
func maXYs(s model.PriceSeries, ma model.MovingAverageSeries) plotter.XYs {
	var xys plotter.XYs
	for i, b := range s.Bars {
		if v, ok := ma.At(i); ok {
			xys = append(xys, plotter.XY{X: float64(b.Time.Unix()), Y: v})
		}
	}
	return xys
}

// annotation draws text at a data point, shifted by Offset, with an optional
// arrow back to the point.
type annotation struct {
	X, Y   float64
	Text   string
	Offset vg.Point
	Arrow  bool
	Style  text.Style
}

func (a *annotation) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	target := vg.Point{X: trX(a.X), Y: trY(a.Y)}
	at := target.Add(a.Offset)

	if a.Arrow {
		ls := draw.LineStyle{Color: color.Black, Width: vg.Points(1)}
		c.StrokeLine2(ls, at.X, at.Y, target.X, target.Y)
		arrowHead(c, ls, at, target)
	}
	c.FillText(a.Style, at, a.Text)
}

func arrowHead(c draw.Canvas, ls draw.LineStyle, from, to vg.Point) {
	dx, dy := float64(to.X-from.X), float64(to.Y-from.Y)
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	ux, uy := dx/n, dy/n
	size := float64(vg.Points(5))
	for _, angle := range []float64{math.Pi / 7, -math.Pi / 7} {
		cos, sin := math.Cos(angle), math.Sin(angle)
		bx := -(ux*cos - uy*sin) * size
		by := -(ux*sin + uy*cos) * size
		c.StrokeLine2(ls, to.X, to.Y, to.X+vg.Length(bx), to.Y+vg.Length(by))
	}
}
