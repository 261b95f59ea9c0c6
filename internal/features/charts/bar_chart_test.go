package charts

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"accuracy-chart/internal/features/accuracy"
	"accuracy-chart/internal/infra/fonts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLayoutBarsFollowDatasetOrder(t *testing.T) {
	l := ComputeLayout(accuracy.Default(), Options{})

	require.Len(t, l.Bars, 4)
	var keys, texts []string
	for _, b := range l.Bars {
		keys = append(keys, b.Key)
		texts = append(texts, b.ValueText)
	}
	assert.Equal(t, []string{"Banking SMS", "Phishing", "OTP", "Normal SMS"}, keys)
	assert.Equal(t, []string{"95%", "92%", "94%", "96%"}, texts)

	for i := 1; i < len(l.Bars); i++ {
		assert.Greater(t, l.Bars[i].X, l.Bars[i-1].X+l.Bars[i-1].W, "bars must not overlap")
	}
}

func TestLayoutBarHeightsProportionalToAccuracy(t *testing.T) {
	l := ComputeLayout(accuracy.Default(), Options{})
	plotH := l.Plot.Height()

	for _, b := range l.Bars {
		assert.InDelta(t, float64(b.Value)/100*plotH, b.H, 1e-9, b.Key)
		assert.InDelta(t, l.Plot.Bottom, b.Y+b.H, 1e-9, "bar %s must stand on the x axis", b.Key)
	}
}

func TestLayoutAxisFixedAtZeroToHundred(t *testing.T) {
	ds := accuracy.Default()
	for i := range ds.Categories {
		ds.Categories[i].Accuracy = 10
	}
	l := ComputeLayout(ds, Options{})

	require.NotEmpty(t, l.Ticks)
	assert.Equal(t, 0, l.Ticks[0].Value)
	assert.Equal(t, 100, l.Ticks[len(l.Ticks)-1].Value)
	assert.InDelta(t, l.Plot.Top, l.Ticks[len(l.Ticks)-1].Y, 1e-9)
	assert.InDelta(t, l.Plot.Bottom, l.Ticks[0].Y, 1e-9)

	for _, b := range l.Bars {
		assert.InDelta(t, 0.1*l.Plot.Height(), b.H, 1e-9)
	}
}

func TestLayoutUsesPaletteWhenColorMissing(t *testing.T) {
	ds := accuracy.Default()
	ds.Categories[1].Color = ""
	l := ComputeLayout(ds, Options{})
	assert.Equal(t, palette[1], l.Bars[1].Color)
}

func TestLayoutScalesWithCanvas(t *testing.T) {
	l := ComputeLayout(accuracy.Default(), Options{Width: 2000, Height: 1200})
	assert.Equal(t, 2000, l.Width)
	assert.InDelta(t, 2.0, l.Scale, 1e-9)
	assert.InDelta(t, 2*marginLeft, l.Plot.Left, 1e-9)
}

func TestRenderWithoutFont(t *testing.T) {
	img, l := Render(accuracy.Default(), nil, Options{})

	assert.Equal(t, DefaultWidth, img.Bounds().Dx())
	assert.Equal(t, DefaultHeight, img.Bounds().Dy())

	// centre of the first bar is skyblue
	b := l.Bars[0]
	r, g, bl, _ := img.At(int(b.CenterX()), int(b.Y+b.H/2)).RGBA()
	assert.Equal(t, uint32(0x87), r>>8)
	assert.Equal(t, uint32(0xCE), g>>8)
	assert.Equal(t, uint32(0xEB), bl>>8)

	// background stays white outside the plot
	r, g, bl, _ = img.At(2, 2).RGBA()
	assert.Equal(t, uint32(0xFFFF), r&g&bl)
}

func TestRenderWithTrueTypeFontAndSave(t *testing.T) {
	f, err := fonts.Parse("goregular", goregular.TTF)
	require.NoError(t, err)

	img, _ := Render(accuracy.Default(), f, Options{Width: 800, Height: 480})
	path := filepath.Join(t.TempDir(), "out", "chart.png")

	size, err := SavePNG(img, path)
	require.NoError(t, err)
	assert.Greater(t, size, int64(0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, decoded.Bounds().Dx())
	assert.Equal(t, 480, decoded.Bounds().Dy())
}

func TestHTMLChartCarriesLabelsAndAxis(t *testing.T) {
	ds := accuracy.Default()
	bar := NewHTMLBar(ds, Options{})
	require.NotEmpty(t, bar.YAxisList)
	assert.EqualValues(t, 100, bar.YAxisList[0].Max)
	assert.EqualValues(t, 0, bar.YAxisList[0].Min)

	var buf bytes.Buffer
	require.NoError(t, bar.Render(&buf))

	html := buf.String()
	for _, c := range ds.Categories {
		assert.Contains(t, html, c.Label)
	}
	assert.True(t, strings.Contains(html, "{c}%"), "bars must carry percent labels")
}

func TestSaveHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.html")
	size, err := SaveHTML(accuracy.Default(), Options{}, path)
	require.NoError(t, err)
	assert.Greater(t, size, int64(0))
}
