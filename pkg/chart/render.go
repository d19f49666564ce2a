package chart

import (
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"f1standings/pkg/helper"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"

	lineWidth    = 2
	markerRadius = 4
	legendPad    = 12
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", errors.Errorf("unknown format %q", s)
	}
}

func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Render draws the figure with gonum/plot and writes it in the given format.
func Render(w io.Writer, fig Figure, format Format) error {
	p, err := newPlot(fig)
	if err != nil {
		return err
	}

	width := vg.Length(fig.Width)
	height := vg.Length(fig.Height)
	var canvas vg.CanvasWriterTo
	switch format {
	case FormatSVG:
		canvas = vgsvg.New(width, height)
	case FormatPNG:
		canvas = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(72))}
	default:
		return errors.Errorf("unknown format %q", format)
	}

	dc := draw.New(canvas)
	dc.FillPolygon(color.White, []vg.Point{
		{X: dc.Min.X, Y: dc.Min.Y},
		{X: dc.Max.X, Y: dc.Min.Y},
		{X: dc.Max.X, Y: dc.Max.Y},
		{X: dc.Min.X, Y: dc.Max.Y},
	})
	p.Draw(draw.Crop(dc,
		vg.Length(fig.Margin.Left),
		-vg.Length(fig.Margin.Right),
		vg.Length(fig.Margin.Bottom),
		-vg.Length(fig.Margin.Top),
	))

	if _, err := canvas.WriteTo(w); err != nil {
		return errors.Wrapf(err, "writing %s chart", format)
	}
	return nil
}

func newPlot(fig Figure) (*plot.Plot, error) {
	fontSize := vg.Points(float64(fig.FontSize))

	p := plot.New()
	p.Title.Text = fig.Title
	p.Title.TextStyle.Font.Size = fontSize

	p.X.Label.Text = fig.XAxis.Title
	p.X.Label.TextStyle.Font.Size = fontSize
	p.X.Tick.Label.Font.Size = fontSize
	p.X.Tick.Label.Rotation = -float64(fig.XAxis.TickAngle) * math.Pi / 180
	if fig.XAxis.TickAngle != 0 {
		p.X.Tick.Label.XAlign = text.XLeft
		p.X.Tick.Label.YAlign = text.YTop
	}
	xTicks := make([]plot.Tick, 0, len(fig.XAxis.Categories))
	for i, race := range fig.XAxis.Categories {
		xTicks = append(xTicks, plot.Tick{Value: float64(i), Label: race})
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)

	p.Y.Label.Text = fig.YAxis.Title
	p.Y.Label.TextStyle.Font.Size = fontSize
	p.Y.Tick.Label.Font.Size = fontSize
	maxStanding := fig.MaxStanding()
	yTicks := make([]plot.Tick, 0, maxStanding)
	for i := 1; i <= maxStanding; i++ {
		yTicks = append(yTicks, plot.Tick{Value: float64(i), Label: strconv.Itoa(i)})
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	if fig.YAxis.Reversed {
		p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}

	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(float64(fig.LegendFontSize))
	p.Legend.XOffs = vg.Length(fig.Margin.Right) - legendPad
	p.Add(plotter.NewGrid())

	for _, s := range fig.Series {
		c, err := parseColor(s.Color)
		if err != nil {
			return nil, errors.Wrapf(err, "series %q", s.Name)
		}
		var thumbs []plot.Thumbnailer
		for _, segment := range s.Segments() {
			line, err := plotter.NewLine(toXYs(segment))
			if err != nil {
				return nil, errors.Wrapf(err, "line for %q", s.Name)
			}
			line.Color = c
			line.Width = vg.Points(lineWidth)
			p.Add(line)
			if len(thumbs) == 0 {
				thumbs = append(thumbs, line)
			}
		}
		if s.Markers {
			scatter, err := plotter.NewScatter(toXYs(s.Points))
			if err != nil {
				return nil, errors.Wrapf(err, "markers for %q", s.Name)
			}
			scatter.GlyphStyle.Color = c
			scatter.GlyphStyle.Shape = draw.CircleGlyph{}
			scatter.GlyphStyle.Radius = vg.Points(markerRadius)
			p.Add(scatter)
			thumbs = append(thumbs, scatter)
		}
		p.Legend.Add(s.Name, thumbs...)
	}

	if len(fig.Annotations) > 0 {
		boxes, err := newLabelBoxes(fig.Annotations, p.Legend.TextStyle)
		if err != nil {
			return nil, err
		}
		p.Add(boxes)
	}

	// axis ranges go last, Add widens them to the data
	n := len(fig.XAxis.Categories)
	if n == 0 {
		n = 1
	}
	p.X.Min = -0.5
	p.X.Max = float64(n) - 0.5
	p.Y.Min = 0.5
	p.Y.Max = float64(maxStanding) + 0.5

	return p, nil
}

func toXYs(points []Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Index)
		xys[i].Y = float64(pt.Standing)
	}
	return xys
}

func parseColor(s string) (color.Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return color.White, nil
	case "black":
		return color.Black, nil
	case "":
		return color.Black, nil
	}
	c, err := helper.ParseHexColor(s)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// labelBoxes draws the point totals as boxed text next to the last race.
type labelBoxes struct {
	annotations []Annotation
	style       text.Style
	colors      []boxColors
}

type boxColors struct {
	font, bg, border color.Color
}

func newLabelBoxes(annotations []Annotation, style text.Style) (*labelBoxes, error) {
	lb := &labelBoxes{annotations: annotations, style: style}
	for _, a := range annotations {
		var bc boxColors
		var err error
		if bc.font, err = parseColor(a.FontColor); err != nil {
			return nil, errors.Wrap(err, "annotation font color")
		}
		if bc.bg, err = parseColor(a.BgColor); err != nil {
			return nil, errors.Wrap(err, "annotation background")
		}
		if bc.border, err = parseColor(a.BorderColor); err != nil {
			return nil, errors.Wrap(err, "annotation border")
		}
		lb.colors = append(lb.colors, bc)
	}
	return lb, nil
}

func (lb *labelBoxes) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for i, a := range lb.annotations {
		sty := lb.style
		sty.Color = lb.colors[i].font
		sty.Font.Size = vg.Points(float64(a.FontSize))
		sty.XAlign = text.XLeft
		sty.YAlign = text.YCenter

		x := trX(float64(a.Index))
		y := trY(float64(a.Standing))
		pad := vg.Points(float64(a.BorderPad))
		w := sty.Width(a.Text)
		h := sty.Height(a.Text)

		minX, maxX := x, x+w+2*pad
		if a.XAnchor != AnchorLeft {
			minX, maxX = x-w/2-pad, x+w/2+pad
		}
		minY, maxY := y-h/2-pad, y+h/2+pad
		box := []vg.Point{
			{X: minX, Y: minY},
			{X: maxX, Y: minY},
			{X: maxX, Y: maxY},
			{X: minX, Y: maxY},
		}
		c.FillPolygon(lb.colors[i].bg, box)
		if a.BorderWidth > 0 {
			border := draw.LineStyle{Color: lb.colors[i].border, Width: vg.Points(float64(a.BorderWidth))}
			c.StrokeLines(border, append(box, box[0]))
		}
		c.FillText(sty, vg.Point{X: minX + pad, Y: y}, a.Text)
	}
}
