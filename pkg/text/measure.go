package text

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// builtinSize is the pixel height of basicfont.Face7x13, the face used when no
// font file is configured or loadable. Metrics from it are scaled linearly.
const builtinSize = 13.0

// FontConfig holds paths to font files used for text measurement and rendering.
type FontConfig struct {
	Regular string
	Bold    string
}

// DefaultFontConfig looks for fonts in $L14TABLE_FONTS_DIR. With no directory
// configured both paths are empty and the builtin face is used.
func DefaultFontConfig() FontConfig {
	dir := os.Getenv("L14TABLE_FONTS_DIR")
	if dir == "" {
		return FontConfig{}
	}
	return FontConfig{
		Regular: filepath.Join(dir, "Regular.ttf"),
		Bold:    filepath.Join(dir, "Bold.ttf"),
	}
}

// FontPath returns the font path for the given weight.
func (fc FontConfig) FontPath(bold bool) string {
	if bold && fc.Bold != "" {
		return fc.Bold
	}
	return fc.Regular
}

type faceKey struct {
	path string
	size float64
}

// Measurer measures strings with gg font faces. Loaded faces are cached per
// path and size. It is safe for concurrent use.
type Measurer struct {
	fonts FontConfig

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

func NewMeasurer(fonts FontConfig) *Measurer {
	return &Measurer{fonts: fonts, faces: make(map[faceKey]font.Face)}
}

var defaultMeasurer = NewMeasurer(DefaultFontConfig())

// Default returns the process-wide measurer.
func Default() *Measurer { return defaultMeasurer }

// face returns the loaded face and the factor its metrics must be scaled by.
func (m *Measurer) face(fontSize float64, bold bool) (font.Face, float64) {
	path := m.fonts.FontPath(bold)
	if path == "" {
		return basicfont.Face7x13, fontSize / builtinSize
	}
	key := faceKey{path, fontSize}

	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.faces[key]; ok {
		return f, 1
	}
	f, err := gg.LoadFontFace(path, fontSize)
	if err != nil {
		// Remember the failure so we do not hit the filesystem again.
		m.faces[key] = nil
		return basicfont.Face7x13, fontSize / builtinSize
	}
	m.faces[key] = f
	return f, 1
}

// Face returns the face to draw text of the given size and weight with, and
// the factor drawing must be scaled by. The scale is 1 unless the builtin
// face stands in for a missing font file.
func (m *Measurer) Face(fontSize float64, bold bool) (font.Face, float64) {
	f, scale := m.face(fontSize, bold)
	if f == nil {
		return basicfont.Face7x13, fontSize / builtinSize
	}
	return f, scale
}

// Fonts returns the font files the measurer was configured with.
func (m *Measurer) Fonts() FontConfig { return m.fonts }

// Measure returns the advance width and line height of s.
func (m *Measurer) Measure(s string, fontSize float64, bold bool) (width, height float64) {
	f, scale := m.Face(fontSize, bold)
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(f)
	w, h := dc.MeasureString(s)
	if scale != 1 {
		return w * scale, fontSize
	}
	return w, h
}

// Ascent returns the distance from the top of a line box to the alphabetic
// baseline for the given font.
func (m *Measurer) Ascent(fontSize float64, bold bool) float64 {
	f, scale := m.Face(fontSize, bold)
	return float64(f.Metrics().Ascent.Ceil()) * scale
}

// MeasureText measures text using the default measurer.
func MeasureText(s string, fontSize float64, bold bool) (width, height float64) {
	return defaultMeasurer.Measure(s, fontSize, bold)
}

// BreakTextIntoLines breaks text into lines that fit within maxWidth. A single
// word wider than maxWidth gets a line of its own.
func (m *Measurer) BreakTextIntoLines(s string, fontSize float64, bold bool, maxWidth float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0)
	currentLine := ""
	for _, word := range words {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}
		if w, _ := m.Measure(testLine, fontSize, bold); w <= maxWidth || currentLine == "" {
			currentLine = testLine
			continue
		}
		lines = append(lines, currentLine)
		currentLine = word
	}
	return append(lines, currentLine)
}

// LongestWord returns the width of the widest word in s, the narrowest the
// text can be laid out without overflow.
func (m *Measurer) LongestWord(s string, fontSize float64, bold bool) float64 {
	longest := 0.0
	for _, word := range strings.Fields(s) {
		if w, _ := m.Measure(word, fontSize, bold); w > longest {
			longest = w
		}
	}
	return longest
}
