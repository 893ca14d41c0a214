package render

import (
	"fmt"
	"strconv"
	"strings"
)

// rgb is an 8-bit color triple used for colormap interpolation.
type rgb struct{ r, g, b float64 }

func (c rgb) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", int(c.r+0.5), int(c.g+0.5), int(c.b+0.5))
}

// Colormap maps a normalized value in [0, 1] to a hex color.
type Colormap func(t float64) string

// colormap anchor stops, low to high.
var colormaps = map[string][]rgb{
	// sequential yellow-orange-red, the usual contact matrix map
	"YlOrRd": {
		{255, 255, 204}, {254, 217, 118}, {253, 141, 60}, {227, 26, 28}, {128, 0, 38},
	},
	// diverging blue-white-red, used for matrix comparison
	"bwr": {
		{0, 0, 255}, {255, 255, 255}, {255, 0, 0},
	},
	"Greys": {
		{255, 255, 255}, {0, 0, 0},
	},
}

// NewColormap looks up a named colormap. Unknown names fall back to YlOrRd.
func NewColormap(name string) Colormap {
	stops, ok := colormaps[name]
	if !ok {
		stops = colormaps["YlOrRd"]
	}
	return func(t float64) string {
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		pos := t * float64(len(stops)-1)
		i := int(pos)
		if i >= len(stops)-1 {
			return stops[len(stops)-1].hex()
		}
		f := pos - float64(i)
		a, b := stops[i], stops[i+1]
		return rgb{
			a.r + (b.r-a.r)*f,
			a.g + (b.g-a.g)*f,
			a.b + (b.b-a.b)*f,
		}.hex()
	}
}

// ParseHexColor parses "#rrggbb" into components. Used by renderers that
// need to derive lighter or darker variants of a configured track color.
func ParseHexColor(s string) (r, g, b int, err error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", s)
	}
	rv, err1 := strconv.ParseInt(s[0:2], 16, 0)
	gv, err2 := strconv.ParseInt(s[2:4], 16, 0)
	bv, err3 := strconv.ParseInt(s[4:6], 16, 0)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", s)
	}
	return int(rv), int(gv), int(bv), nil
}
