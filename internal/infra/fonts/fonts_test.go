package fonts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func writeGoRegular(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Go-Regular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0644))
	return path
}

func TestMissingReportsUncoveredRunes(t *testing.T) {
	f, err := Parse("goregular", goregular.TTF)
	require.NoError(t, err)

	assert.Empty(t, f.Missing("OTP 95%"))

	missing := f.Missing("फिशिंग")
	assert.NotEmpty(t, missing)
	assert.Contains(t, missing, 'फ')
	// duplicates are reported once
	count := 0
	for _, r := range missing {
		if r == 'श' {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestFaceHasPositiveMetrics(t *testing.T) {
	f, err := Parse("goregular", goregular.TTF)
	require.NoError(t, err)
	face := f.Face(20)
	assert.Greater(t, face.Metrics().Height.Ceil(), 0)
}

func TestResolvePrefersFullCoverage(t *testing.T) {
	path := writeGoRegular(t)

	f, err := Resolve(context.Background(), []string{"/nonexistent/font.ttf", path}, "", "Banking 95%")
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
}

func TestResolveFallsBackToPartialCoverage(t *testing.T) {
	path := writeGoRegular(t)

	f, err := Resolve(context.Background(), []string{path}, "", "ओटीपी")
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
	assert.NotEmpty(t, f.Missing("ओटीपी"))
}

func TestResolveSkipsUnparsableFiles(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "broken.ttf")
	require.NoError(t, os.WriteFile(bad, []byte("not a font"), 0644))

	_, err := Resolve(context.Background(), []string{bad}, "", "x")
	assert.ErrorIs(t, err, ErrNoFont)
}

func TestFamilyForScript(t *testing.T) {
	assert.Equal(t, "Noto Sans Devanagari", FamilyForScript("Deva"))
	assert.Equal(t, "Noto Sans", FamilyForScript("Latn"))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "fonts", "a.ttf"), expandHome("~/fonts/a.ttf"))
	assert.Equal(t, "/abs/a.ttf", expandHome("/abs/a.ttf"))
}
