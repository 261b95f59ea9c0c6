package charts

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"accuracy-chart/internal/features/accuracy"
	"accuracy-chart/internal/infra/fonts"
	storage "accuracy-chart/internal/infra/fs"

	"github.com/fogleman/gg"
)

// Render draws the accuracy bar chart. With a nil font the text is drawn
// in gg's built-in face, which has no Devanagari glyphs.
func Render(ds accuracy.Dataset, font *fonts.Font, opts Options) (image.Image, Layout) {
	l := ComputeLayout(ds, opts)
	dc := gg.NewContext(l.Width, l.Height)

	useFace := func(size float64) {
		if font != nil {
			dc.SetFontFace(font.Face(size * l.Scale))
		}
	}

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// dashed y grid, under the bars
	dc.SetRGBA(0.5, 0.5, 0.5, 0.7)
	dc.SetLineWidth(1)
	dc.SetDash(6, 4)
	for _, tick := range l.Ticks {
		dc.DrawLine(l.Plot.Left, tick.Y, l.Plot.Right, tick.Y)
		dc.Stroke()
	}
	dc.SetDash()

	for _, bar := range l.Bars {
		dc.SetHexColor(bar.Color)
		dc.DrawRectangle(bar.X, bar.Y, bar.W, bar.H)
		dc.Fill()
	}

	dc.SetRGB(0, 0, 0)

	useFace(valueFontSize)
	for _, bar := range l.Bars {
		dc.DrawStringAnchored(bar.ValueText, bar.CenterX(), bar.Y-valueOffset*l.Scale, 0.5, 0)
	}

	// plot frame and y ticks
	dc.SetLineWidth(1)
	dc.DrawRectangle(l.Plot.Left, l.Plot.Top, l.Plot.Width(), l.Plot.Height())
	dc.Stroke()

	useFace(tickFontSize)
	for _, tick := range l.Ticks {
		dc.DrawLine(l.Plot.Left-tickLength*l.Scale, tick.Y, l.Plot.Left, tick.Y)
		dc.Stroke()
		dc.DrawStringAnchored(tick.Text, l.Plot.Left-(tickLength+4)*l.Scale, tick.Y, 1, 0.5)
	}

	useFace(axisFontSize)
	for _, bar := range l.Bars {
		dc.DrawLine(bar.CenterX(), l.Plot.Bottom, bar.CenterX(), l.Plot.Bottom+tickLength*l.Scale)
		dc.Stroke()
		dc.DrawStringAnchored(bar.Label, bar.CenterX(), l.Plot.Bottom+(tickLength+6)*l.Scale, 0.5, 1)
	}

	dc.DrawStringAnchored(l.XAxisLabel, (l.Plot.Left+l.Plot.Right)/2, float64(l.Height)-25*l.Scale, 0.5, 0)

	yLabelX := 30 * l.Scale
	yLabelY := (l.Plot.Top + l.Plot.Bottom) / 2
	dc.Push()
	dc.RotateAbout(-math.Pi/2, yLabelX, yLabelY)
	dc.DrawStringAnchored(l.YAxisLabel, yLabelX, yLabelY, 0.5, 0.5)
	dc.Pop()

	useFace(titleFontSize)
	dc.DrawStringAnchored(l.Title, float64(l.Width)/2, l.Plot.Top/2, 0.5, 0.5)

	return dc.Image(), l
}

// SavePNG writes img to path and returns the file size
func SavePNG(img image.Image, path string) (int64, error) {
	if err := storage.WriteAtomic(path, func(w io.Writer) error {
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode chart: %w", err)
		}
		return nil
	}); err != nil {
		return 0, fmt.Errorf("failed to save chart: %w", err)
	}
	return storage.EnsureNonEmpty(path)
}
