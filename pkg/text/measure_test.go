package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure_BuiltinFaceIsMonospace(t *testing.T) {
	m := NewMeasurer(FontConfig{})

	one, h := m.Measure("a", 13, false)
	two, _ := m.Measure("ab", 13, false)
	assert.Greater(t, one, 0.0)
	assert.InDelta(t, 2*one, two, 0.001)
	assert.Equal(t, 13.0, h)
}

func TestMeasure_ScalesWithFontSize(t *testing.T) {
	m := NewMeasurer(FontConfig{})

	small, _ := m.Measure("table", 13, false)
	large, h := m.Measure("table", 26, false)
	assert.InDelta(t, 2*small, large, 0.001)
	assert.Equal(t, 26.0, h)
}

func TestMeasure_MissingFontFallsBack(t *testing.T) {
	m := NewMeasurer(FontConfig{Regular: "/nonexistent/font.ttf"})
	builtin := NewMeasurer(FontConfig{})

	got, _ := m.Measure("cell", 16, false)
	want, _ := builtin.Measure("cell", 16, false)
	assert.Equal(t, want, got)

	// second call is served from the cached failure
	again, _ := m.Measure("cell", 16, false)
	assert.Equal(t, want, again)
}

func TestAscent(t *testing.T) {
	m := NewMeasurer(FontConfig{})
	a := m.Ascent(13, false)
	assert.Greater(t, a, 0.0)
	assert.Less(t, a, 13.0)
}

func TestBreakTextIntoLines(t *testing.T) {
	m := NewMeasurer(FontConfig{})
	word, _ := m.Measure("word", 13, false)
	space, _ := m.Measure(" ", 13, false)

	lines := m.BreakTextIntoLines("word word word", 13, false, 2*word+space)
	require.Len(t, lines, 2)
	assert.Equal(t, "word word", lines[0])
	assert.Equal(t, "word", lines[1])

	assert.Equal(t, []string{"overlong"}, m.BreakTextIntoLines("  overlong ", 13, false, 1))
	assert.Empty(t, m.BreakTextIntoLines("   ", 13, false, 100))
}

func TestLongestWord(t *testing.T) {
	m := NewMeasurer(FontConfig{})
	abc, _ := m.Measure("abc", 13, false)
	assert.Equal(t, abc, m.LongestWord("a abc ab", 13, false))
}

func TestFontPath(t *testing.T) {
	fc := FontConfig{Regular: "r.ttf"}
	assert.Equal(t, "r.ttf", fc.FontPath(true))
	fc.Bold = "b.ttf"
	assert.Equal(t, "b.ttf", fc.FontPath(true))
	assert.Equal(t, "r.ttf", fc.FontPath(false))
}
