package accuracy

// Classification accuracy per message type, with display labels for the chart
// One table holds key, translated label and value together, so a category
// can never lose its translation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidDataset wraps every Validate failure
var ErrInvalidDataset = errors.New("invalid dataset")

// MaxAccuracy is the top of the fixed percentage axis
const MaxAccuracy = 100

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type Category struct {
	Key      string `mapstructure:"key" yaml:"key"`
	Label    string `mapstructure:"label" yaml:"label"`
	Accuracy int    `mapstructure:"accuracy" yaml:"accuracy"`
	Color    string `mapstructure:"color" yaml:"color,omitempty"`
}

type Labels struct {
	Title string `mapstructure:"title" yaml:"title"`
	XAxis string `mapstructure:"x_axis" yaml:"x_axis"`
	YAxis string `mapstructure:"y_axis" yaml:"y_axis"`
}

type Dataset struct {
	Locale     string     `mapstructure:"locale" yaml:"locale"`
	Labels     Labels     `mapstructure:"labels" yaml:"labels"`
	Categories []Category `mapstructure:"categories" yaml:"categories"`
}

// Default returns the Marathi message-type accuracy table
func Default() Dataset {
	return Dataset{
		Locale: "mr",
		Labels: Labels{
			Title: "संदेश प्रकारांची वर्गीकरण अचूकता",
			XAxis: "संदेश प्रकार",
			YAxis: "अचूकता टक्केवारी",
		},
		Categories: []Category{
			{Key: "Banking SMS", Label: "बँकिंग एसएमएस", Accuracy: 95, Color: "#87CEEB"},
			{Key: "Phishing", Label: "फिशिंग", Accuracy: 92, Color: "#FA8072"},
			{Key: "OTP", Label: "ओटीपी", Accuracy: 94, Color: "#90EE90"},
			{Key: "Normal SMS", Label: "सामान्य एसएमएस", Accuracy: 96, Color: "#FFD700"},
		},
	}
}

// ValueLabel formats an accuracy the way it is printed above a bar
func ValueLabel(v int) string {
	return fmt.Sprintf("%d%%", v)
}

// Validate checks the table is renderable on the 0..100 axis
func (d Dataset) Validate() error {
	if _, err := language.Parse(d.Locale); err != nil {
		return fmt.Errorf("%w: locale %q: %v", ErrInvalidDataset, d.Locale, err)
	}
	if strings.TrimSpace(d.Labels.Title) == "" {
		return fmt.Errorf("%w: empty title", ErrInvalidDataset)
	}
	if strings.TrimSpace(d.Labels.XAxis) == "" || strings.TrimSpace(d.Labels.YAxis) == "" {
		return fmt.Errorf("%w: empty axis label", ErrInvalidDataset)
	}
	if len(d.Categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidDataset)
	}

	seen := make(map[string]bool, len(d.Categories))
	for i, c := range d.Categories {
		key := strings.TrimSpace(c.Key)
		switch {
		case key == "":
			return fmt.Errorf("%w: category %d has no key", ErrInvalidDataset, i)
		case seen[key]:
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidDataset, key)
		case strings.TrimSpace(c.Label) == "":
			return fmt.Errorf("%w: category %q has no translation", ErrInvalidDataset, key)
		case c.Accuracy < 0 || c.Accuracy > MaxAccuracy:
			return fmt.Errorf("%w: category %q accuracy %d outside 0..%d", ErrInvalidDataset, key, c.Accuracy, MaxAccuracy)
		case c.Color != "" && !hexColorRe.MatchString(c.Color):
			return fmt.Errorf("%w: category %q color %q is not #rrggbb", ErrInvalidDataset, key, c.Color)
		}
		seen[key] = true
	}
	return nil
}

// Normalize returns a copy with trimmed, NFC-composed display strings.
// Devanagari typed on different keyboards can arrive decomposed.
func (d Dataset) Normalize() Dataset {
	clean := func(s string) string { return norm.NFC.String(strings.TrimSpace(s)) }

	out := Dataset{
		Locale: strings.TrimSpace(d.Locale),
		Labels: Labels{
			Title: clean(d.Labels.Title),
			XAxis: clean(d.Labels.XAxis),
			YAxis: clean(d.Labels.YAxis),
		},
		Categories: make([]Category, len(d.Categories)),
	}
	for i, c := range d.Categories {
		c.Key = strings.TrimSpace(c.Key)
		c.Label = clean(c.Label)
		c.Color = strings.TrimSpace(c.Color)
		out.Categories[i] = c
	}
	return out
}

// Text concatenates everything that will be drawn, for glyph coverage checks
func (d Dataset) Text() string {
	var b strings.Builder
	b.WriteString(d.Labels.Title)
	b.WriteString(d.Labels.XAxis)
	b.WriteString(d.Labels.YAxis)
	for _, c := range d.Categories {
		b.WriteString(c.Label)
		b.WriteString(ValueLabel(c.Accuracy))
	}
	for v := 0; v <= MaxAccuracy; v += 10 {
		b.WriteString(fmt.Sprint(v))
	}
	return b.String()
}

// Script is the writing system of the dataset locale, e.g. "Deva" for mr
func (d Dataset) Script() string {
	tag, err := language.Parse(d.Locale)
	if err != nil {
		return "Zyyy"
	}
	script, _ := tag.Script()
	return script.String()
}

// Keys lists category keys in chart order
func (d Dataset) Keys() []string {
	keys := make([]string, len(d.Categories))
	for i, c := range d.Categories {
		keys[i] = c.Key
	}
	return keys
}
