// Package visualtest compares rendered tables pixel by pixel, either against
// a reference rendering of an equivalent document or a saved PNG.
package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// CompareResult contains the results of an image comparison
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest channel difference seen, 0-255
	FirstDiff       image.Point
	Diff            *image.RGBA // nil unless CompareOptions.DiffImage
}

// CompareOptions configures the image comparison
type CompareOptions struct {
	// Tolerance is the largest per-channel difference still counted as equal.
	Tolerance int

	// FuzzyRadius lets a pixel match any expected pixel within this radius.
	FuzzyRadius int

	// MaxDifferentPercent passes the comparison when at most this share of
	// pixels differ.
	MaxDifferentPercent float64

	// DiffImage builds an image with differing pixels in red over a
	// grayscale copy of the actual image.
	DiffImage bool
}

// ExactOptions requires identical pixels.
func ExactOptions() CompareOptions {
	return CompareOptions{}
}

// Compare compares two images of the same bounds.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &CompareResult{}, fmt.Errorf("image dimensions differ: actual=%v, expected=%v", bounds, expected.Bounds())
	}

	result := &CompareResult{
		Match:       true,
		TotalPixels: bounds.Dx() * bounds.Dy(),
		FirstDiff:   image.Pt(-1, -1),
	}
	if opts.DiffImage {
		result.Diff = image.NewRGBA(bounds)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := rgba8(actual.At(x, y))
			diff := channelDiff(a, rgba8(expected.At(x, y)))
			result.MaxDifference = max(result.MaxDifference, diff)

			matched := diff <= opts.Tolerance
			if !matched && opts.FuzzyRadius > 0 {
				matched = fuzzyMatch(a, expected, x, y, opts.FuzzyRadius, opts.Tolerance)
			}
			if !matched {
				if result.Match {
					result.FirstDiff = image.Pt(x, y)
				}
				result.Match = false
				result.DifferentPixels++
			}

			if result.Diff != nil {
				if matched {
					result.Diff.Set(x, y, color.Gray{Y: a[0]})
				} else {
					result.Diff.Set(x, y, color.RGBA{255, 0, 0, 255})
				}
			}
		}
	}

	if !result.Match && opts.MaxDifferentPercent > 0 {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		if pct <= opts.MaxDifferentPercent {
			result.Match = true
		}
	}
	return result, nil
}

// CompareImages compares two PNG files.
func CompareImages(actualPath, expectedPath string, opts CompareOptions) (*CompareResult, error) {
	actual, err := loadPNG(actualPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load actual image: %w", err)
	}
	expected, err := loadPNG(expectedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load expected image: %w", err)
	}
	return Compare(actual, expected, opts)
}

// fuzzyMatch reports whether any expected pixel within radius of (x, y)
// matches a.
func fuzzyMatch(a [4]uint8, expected image.Image, x, y, radius, tolerance int) bool {
	bounds := expected.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(bounds) {
				continue
			}
			if channelDiff(a, rgba8(expected.At(p.X, p.Y))) <= tolerance {
				return true
			}
		}
	}
	return false
}

func rgba8(c color.Color) [4]uint8 {
	r, g, b, a := c.RGBA()
	return [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func channelDiff(a, b [4]uint8) int {
	d := 0
	for i := range a {
		d = max(d, absInt(int(a[i])-int(b[i])))
	}
	return d
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

func savePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
