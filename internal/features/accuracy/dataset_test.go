package accuracy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOrderAndValues(t *testing.T) {
	ds := Default()
	require.NoError(t, ds.Validate())

	assert.Equal(t, []string{"Banking SMS", "Phishing", "OTP", "Normal SMS"}, ds.Keys())

	values := make([]int, 0, len(ds.Categories))
	for _, c := range ds.Categories {
		values = append(values, c.Accuracy)
		assert.NotEmpty(t, c.Label, "category %s has no translation", c.Key)
		assert.NotEqual(t, c.Key, c.Label)
	}
	assert.Equal(t, []int{95, 92, 94, 96}, values)
	assert.Equal(t, "Deva", ds.Script())
}

func TestValueLabel(t *testing.T) {
	assert.Equal(t, "95%", ValueLabel(95))
	assert.Equal(t, "0%", ValueLabel(0))
	assert.Equal(t, "100%", ValueLabel(100))
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Dataset){
		"no categories":     func(d *Dataset) { d.Categories = nil },
		"missing label":     func(d *Dataset) { d.Categories[1].Label = "  " },
		"missing key":       func(d *Dataset) { d.Categories[0].Key = "" },
		"duplicate key":     func(d *Dataset) { d.Categories[2].Key = "Phishing" },
		"above 100":         func(d *Dataset) { d.Categories[3].Accuracy = 101 },
		"negative":          func(d *Dataset) { d.Categories[0].Accuracy = -1 },
		"bad color":         func(d *Dataset) { d.Categories[0].Color = "skyblue" },
		"empty title":       func(d *Dataset) { d.Labels.Title = "" },
		"empty y axis":      func(d *Dataset) { d.Labels.YAxis = "" },
		"unparsable locale": func(d *Dataset) { d.Locale = "not a locale!" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			ds := Default()
			mutate(&ds)
			assert.ErrorIs(t, ds.Validate(), ErrInvalidDataset)
		})
	}
}

func TestValidateAcceptsBoundsAndDefaultColor(t *testing.T) {
	ds := Default()
	ds.Categories[0].Accuracy = 0
	ds.Categories[1].Accuracy = 100
	ds.Categories[2].Color = ""
	assert.NoError(t, ds.Validate())
}

func TestNormalizeComposesAndTrims(t *testing.T) {
	ds := Default()
	ds.Labels.Title = "  \u0928\u093C  "
	ds.Categories[0].Key = " Banking SMS "
	ds.Categories[0].Label = "\u0928\u093C"

	out := ds.Normalize()
	assert.Equal(t, "\u0929", out.Labels.Title)
	assert.Equal(t, "Banking SMS", out.Categories[0].Key)
	assert.Equal(t, "\u0929", out.Categories[0].Label)

	// the receiver is left untouched
	assert.Equal(t, " Banking SMS ", ds.Categories[0].Key)
}

func TestTextCoversEverythingDrawn(t *testing.T) {
	ds := Default()
	text := ds.Text()
	assert.Contains(t, text, ds.Labels.Title)
	for _, c := range ds.Categories {
		assert.Contains(t, text, c.Label)
	}
	assert.Contains(t, text, "%")
	assert.Contains(t, text, "100")
}
