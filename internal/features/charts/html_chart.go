package charts

import (
	"fmt"
	"io"
	"strconv"

	"accuracy-chart/internal/features/accuracy"
	storage "accuracy-chart/internal/infra/fs"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// NewHTMLBar builds an interactive echarts version of the same chart
func NewHTMLBar(ds accuracy.Dataset, o Options) *echarts.Bar {
	o = o.withDefaults()
	l := ComputeLayout(ds, o)

	bar := echarts.NewBar()
	bar.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			PageTitle: ds.Labels.Title,
			Width:     strconv.Itoa(o.Width) + "px",
			Height:    strconv.Itoa(o.Height) + "px",
		}),
		echarts.WithTitleOpts(opts.Title{Title: ds.Labels.Title, Left: "center"}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		echarts.WithXAxisOpts(opts.XAxis{Name: ds.Labels.XAxis, NameLocation: "middle", NameGap: 30}),
		echarts.WithYAxisOpts(opts.YAxis{
			Name:         ds.Labels.YAxis,
			NameLocation: "middle",
			NameGap:      40,
			Min:          0,
			Max:          accuracy.MaxAccuracy,
			SplitLine: &opts.SplitLine{
				Show:      opts.Bool(true),
				LineStyle: &opts.LineStyle{Type: "dashed"},
			},
		}),
	)

	labels := make([]string, 0, len(l.Bars))
	items := make([]opts.BarData, 0, len(l.Bars))
	for _, b := range l.Bars {
		labels = append(labels, b.Label)
		items = append(items, opts.BarData{
			Name:      b.Key,
			Value:     b.Value,
			ItemStyle: &opts.ItemStyle{Color: b.Color},
		})
	}

	bar.SetXAxis(labels).AddSeries(ds.Labels.YAxis, items,
		echarts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top", Formatter: "{c}%"}),
	)
	return bar
}

// SaveHTML renders the echarts page to path and returns the file size
func SaveHTML(ds accuracy.Dataset, o Options, path string) (int64, error) {
	bar := NewHTMLBar(ds, o)
	if err := storage.WriteAtomic(path, func(w io.Writer) error {
		return bar.Render(w)
	}); err != nil {
		return 0, fmt.Errorf("failed to save html chart: %w", err)
	}
	return storage.EnsureNonEmpty(path)
}
