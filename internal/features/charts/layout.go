package charts

import (
	"strconv"

	"accuracy-chart/internal/features/accuracy"
)

const (
	DefaultWidth  = 1000 // 10in at 100dpi
	DefaultHeight = 600  // 6in at 100dpi

	// base geometry for a 1000x600 canvas, scaled for other sizes
	marginLeft   = 100.0
	marginRight  = 30.0
	marginTop    = 70.0
	marginBottom = 100.0

	barFill     = 0.8 // share of a slot covered by its bar
	tickStep    = 20
	tickLength  = 6.0
	valueOffset = 5.0

	titleFontSize = 22.0 // 16pt
	axisFontSize  = 17.0 // 12pt
	valueFontSize = 17.0 // 12pt
	tickFontSize  = 14.0 // 10pt
)

// palette is used for categories without a colour of their own
var palette = []string{"#87CEEB", "#FA8072", "#90EE90", "#FFD700", "#DDA0DD", "#F4A460"}

type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	return o
}

type Rect struct {
	Left, Top, Right, Bottom float64
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

type Bar struct {
	Key       string
	Label     string
	Value     int
	ValueText string
	Color     string
	X, Y      float64 // top-left corner
	W, H      float64
}

// CenterX is where the value and category labels are anchored
func (b Bar) CenterX() float64 { return b.X + b.W/2 }

type Tick struct {
	Value int
	Y     float64
	Text  string
}

type Layout struct {
	Width, Height int
	Scale         float64
	Plot          Rect
	Bars          []Bar
	Ticks         []Tick
	Title         string
	XAxisLabel    string
	YAxisLabel    string
}

// ValueToY maps an accuracy onto the fixed 0..100 axis
func (l Layout) ValueToY(v int) float64 {
	return l.Plot.Bottom - float64(v)/float64(accuracy.MaxAccuracy)*l.Plot.Height()
}

// ComputeLayout places every element; the y axis always spans 0..100
func ComputeLayout(ds accuracy.Dataset, opts Options) Layout {
	opts = opts.withDefaults()
	sx := float64(opts.Width) / DefaultWidth
	sy := float64(opts.Height) / DefaultHeight

	l := Layout{
		Width:  opts.Width,
		Height: opts.Height,
		Scale:  min(sx, sy),
		Plot: Rect{
			Left:   marginLeft * sx,
			Top:    marginTop * sy,
			Right:  float64(opts.Width) - marginRight*sx,
			Bottom: float64(opts.Height) - marginBottom*sy,
		},
		Title:      ds.Labels.Title,
		XAxisLabel: ds.Labels.XAxis,
		YAxisLabel: ds.Labels.YAxis,
	}

	for v := 0; v <= accuracy.MaxAccuracy; v += tickStep {
		l.Ticks = append(l.Ticks, Tick{Value: v, Y: l.ValueToY(v), Text: strconv.Itoa(v)})
	}

	n := len(ds.Categories)
	if n == 0 {
		return l
	}
	slot := l.Plot.Width() / float64(n)
	barW := slot * barFill
	for i, c := range ds.Categories {
		color := c.Color
		if color == "" {
			color = palette[i%len(palette)]
		}
		top := l.ValueToY(c.Accuracy)
		l.Bars = append(l.Bars, Bar{
			Key:       c.Key,
			Label:     c.Label,
			Value:     c.Accuracy,
			ValueText: accuracy.ValueLabel(c.Accuracy),
			Color:     color,
			X:         l.Plot.Left + float64(i)*slot + (slot-barW)/2,
			Y:         top,
			W:         barW,
			H:         l.Plot.Bottom - top,
		})
	}
	return l
}
