package fonts

// Locating a TrueType font that can draw the chart labels
// Candidates are tried in order, then fontconfig is asked for the script's family

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	executil "accuracy-chart/internal/infra/exec"
	logging "accuracy-chart/internal/infra/log"

	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
)

// ErrNoFont means no candidate could be parsed at all
var ErrNoFont = errors.New("no usable font found")

const fcMatchTimeout = 3 * time.Second

type Font struct {
	Path string
	ttf  *truetype.Font
}

// Parse wraps raw TTF bytes; path is informational
func Parse(path string, data []byte) (*Font, error) {
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return &Font{Path: path, ttf: ttf}, nil
}

// Load reads and parses a font file
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	return Parse(path, data)
}

// Face returns a face of the given pixel size
func (f *Font) Face(size float64) font.Face {
	return truetype.NewFace(f.ttf, &truetype.Options{Size: size, Hinting: font.HintingFull})
}

// Missing lists the distinct runes of text the font has no glyph for
func (f *Font) Missing(text string) []rune {
	var missing []rune
	seen := make(map[rune]bool)
	for _, r := range text {
		if seen[r] || r == ' ' {
			continue
		}
		seen[r] = true
		if f.ttf.Index(r) == 0 {
			missing = append(missing, r)
		}
	}
	return missing
}

// FamilyForScript maps an ISO 15924 script to a fontconfig family name
func FamilyForScript(script string) string {
	switch script {
	case "Deva":
		return "Noto Sans Devanagari"
	case "Beng":
		return "Noto Sans Bengali"
	case "Taml":
		return "Noto Sans Tamil"
	case "Gujr":
		return "Noto Sans Gujarati"
	default:
		return "Noto Sans"
	}
}

// DefaultCandidates lists Devanagari-capable fonts in the usual install locations
func DefaultCandidates() []string {
	return []string{
		"etc/fonts/NotoSansDevanagari-Regular.ttf",
		"etc/fonts/Mukta-Regular.ttf",
		"~/.local/share/fonts/NotoSansDevanagari-Regular.ttf",
		"~/Library/Fonts/NotoSansDevanagari-Regular.ttf",
		"/Library/Fonts/NotoSansDevanagari-Regular.ttf",
		"/usr/share/fonts/truetype/noto/NotoSansDevanagari-Regular.ttf",
		"/usr/share/fonts/noto/NotoSansDevanagari-Regular.ttf",
		"/usr/share/fonts/google-noto/NotoSansDevanagari-Regular.ttf",
		"/usr/share/fonts/truetype/lohit-devanagari/Lohit-Devanagari.ttf",
		"/usr/share/fonts/truetype/lohit-marathi/Lohit-Marathi.ttf",
		"/usr/share/fonts/truetype/fonts-deva-extra/kalimati.ttf",
		"/usr/share/fonts/truetype/freefont/FreeSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Resolve returns the first candidate covering every rune of text.
// Without a full match it asks fc-match for family, then settles for the
// candidate missing the fewest glyphs.
func Resolve(ctx context.Context, candidates []string, family, text string) (*Font, error) {
	var best *Font
	bestMissing := -1

	consider := func(path string) bool {
		f, err := Load(path)
		if err != nil {
			logging.LogWarn("Font file exists but failed to load", zap.String("path", path), zap.Error(err))
			return false
		}
		missing := len(f.Missing(text))
		if best == nil || missing < bestMissing {
			best, bestMissing = f, missing
		}
		return missing == 0
	}

	for _, candidate := range candidates {
		path := expandHome(candidate)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if consider(path) {
			logging.LogInfo("Loaded chart font", zap.String("path", path))
			return best, nil
		}
	}

	if family != "" {
		if path, err := matchFamily(ctx, family); err != nil {
			logging.LogDebug("fc-match lookup failed", zap.String("family", family), zap.Error(err))
		} else if consider(path) {
			logging.LogInfo("Loaded chart font via fontconfig", zap.String("family", family), zap.String("path", path))
			return best, nil
		}
	}

	if best == nil {
		return nil, ErrNoFont
	}
	logging.LogWarn("No font covers every label glyph, using closest match",
		zap.String("path", best.Path),
		zap.Int("missing_glyphs", bestMissing))
	return best, nil
}

func matchFamily(ctx context.Context, family string) (string, error) {
	out, err := executil.Run(ctx, fcMatchTimeout, "fc-match", "-f", "%{file}", family)
	if err != nil {
		return "", err
	}
	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", fmt.Errorf("fc-match returned no file for %q", family)
	}
	return path, nil
}
