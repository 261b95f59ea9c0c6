package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"accuracy-chart/internal/config"
	"accuracy-chart/internal/features/accuracy"
	"accuracy-chart/internal/features/charts"
	"accuracy-chart/internal/infra/fonts"
	logging "accuracy-chart/internal/infra/log"

	"go.uber.org/zap"
)

type Result struct {
	PNGPath       string
	PNGSize       int64
	HTMLPath      string // empty when no html output was requested
	FontPath      string // empty when gg's built-in face was used
	MissingGlyphs []rune
	Bars          int
}

// Generate renders the configured dataset to PNG (and HTML when asked)
func Generate(ctx context.Context, cfg *config.Config) (*Result, error) {
	startTime := time.Now()

	ds := cfg.DatasetOrDefault().Normalize()
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	family := cfg.Chart.FontFamily
	if family == "" {
		family = fonts.FamilyForScript(ds.Script())
	}

	res := &Result{PNGPath: cfg.Chart.Output, Bars: len(ds.Categories)}

	text := ds.Text()
	font, err := fonts.Resolve(ctx, cfg.FontCandidates(), family, text)
	switch {
	case errors.Is(err, fonts.ErrNoFont):
		res.MissingGlyphs = nonASCII(text)
		logging.LogWarn("No TrueType font found, labels will render as missing-glyph boxes",
			zap.String("family", family),
			zap.String("script", ds.Script()))
	case err != nil:
		return nil, fmt.Errorf("failed to resolve font: %w", err)
	default:
		res.FontPath = font.Path
		res.MissingGlyphs = font.Missing(text)
		if len(res.MissingGlyphs) > 0 {
			logging.LogWarn("Font lacks glyphs for some labels",
				zap.String("path", font.Path),
				zap.String("missing", string(res.MissingGlyphs)))
		}
	}

	img, layout := charts.Render(ds, font, cfg.ChartOptions())
	logging.LogDebug("Chart layout computed",
		zap.Float64("plot_height", layout.Plot.Height()),
		zap.Int("ticks", len(layout.Ticks)))

	res.PNGSize, err = charts.SavePNG(img, cfg.Chart.Output)
	if err != nil {
		logging.LogError("Chart file could not be written", zap.String("filename", cfg.Chart.Output), zap.Error(err))
		return nil, err
	}

	if cfg.Chart.HTMLOutput != "" {
		if _, err := charts.SaveHTML(ds, cfg.ChartOptions(), cfg.Chart.HTMLOutput); err != nil {
			return nil, err
		}
		res.HTMLPath = cfg.Chart.HTMLOutput
	}

	logging.LogSuccess("Accuracy chart generated",
		zap.String("filename", res.PNGPath),
		zap.Int64("fileSize", res.PNGSize),
		zap.Int("barsCount", res.Bars),
		zap.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	return res, nil
}

func nonASCII(text string) []rune {
	var out []rune
	seen := make(map[rune]bool)
	for _, r := range text {
		if r > 0x7f && !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// Caption is the default Telegram caption: the chart title plus one line per category
func Caption(ds accuracy.Dataset) string {
	caption := ds.Labels.Title
	for _, c := range ds.Categories {
		caption += fmt.Sprintf("\n%s: %s", c.Label, accuracy.ValueLabel(c.Accuracy))
	}
	return caption
}
