package css

import (
	"fmt"
	"strconv"
	"strings"
)

type Color struct {
	R, G, B uint8
	A       float64
}

var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{255, 255, 255, 1}
	Transparent = Color{}
)

func (c Color) String() string {
	if c.A == 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", c.R, c.G, c.B, c.A)
}

// RGBA returns the components scaled to 0..1.
func (c Color) RGBA() (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, c.A
}

var namedColors = map[string]Color{
	"red":     {255, 0, 0, 1},
	"green":   {0, 128, 0, 1},
	"blue":    {0, 0, 255, 1},
	"yellow":  {255, 255, 0, 1},
	"cyan":    {0, 255, 255, 1},
	"aqua":    {0, 255, 255, 1},
	"magenta": {255, 0, 255, 1},
	"fuchsia": {255, 0, 255, 1},
	"white":   {255, 255, 255, 1},
	"black":   {0, 0, 0, 1},
	"gray":    {128, 128, 128, 1},
	"grey":    {128, 128, 128, 1},
	"orange":  {255, 165, 0, 1},
	"purple":  {128, 0, 128, 1},
	"pink":    {255, 192, 203, 1},
	"brown":   {165, 42, 42, 1},
	"lime":    {0, 255, 0, 1},
	"navy":    {0, 0, 128, 1},
	"teal":    {0, 128, 128, 1},
	"silver":  {192, 192, 192, 1},
	"maroon":  {128, 0, 0, 1},
	"olive":   {128, 128, 0, 1},

	"transparent": {0, 0, 0, 0},
}

// ParseColor parses named colors, #rgb, #rrggbb and rgb()/rgba().
func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if c, ok := namedColors[colorStr]; ok {
		return c, true
	}
	if strings.HasPrefix(colorStr, "#") {
		return parseHexColor(colorStr[1:])
	}
	if strings.HasPrefix(colorStr, "rgb") {
		return parseRGBFunc(colorStr)
	}
	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v), 1}, true
}

func parseRGBFunc(s string) (Color, bool) {
	open := strings.Index(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, false
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, false
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return Color{}, false
		}
		rgb[i] = uint8(n)
	}
	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return Color{}, false
		}
		alpha = min(max(a, 0), 1)
	}
	return Color{rgb[0], rgb[1], rgb[2], alpha}, true
}
