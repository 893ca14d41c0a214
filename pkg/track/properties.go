// Package track defines the track registry: typed property bags for
// genome tracks, vertical frames that stack them, and the composition
// operators that combine tracks, frames, and coverages.
package track

import (
	"fmt"
	"strconv"
)

// Boolean properties are stored as one of these two sentinels so that
// config files, defaults, and option setters all agree on spelling.
const (
	BoolYes = "yes"
	BoolNo  = "no"
)

// Properties is an ordered string-keyed bag of track settings.
// Insertion order is preserved so that serialized configs and debug
// dumps are deterministic.
type Properties struct {
	keys []string
	vals map[string]any
}

// NewProperties returns an empty bag.
func NewProperties() *Properties {
	return &Properties{vals: make(map[string]any)}
}

// Set stores value under key, keeping first-insertion order. Boolean
// values are normalized to the BoolYes/BoolNo sentinels.
func (p *Properties) Set(key string, value any) {
	if b, ok := value.(bool); ok {
		if b {
			value = BoolYes
		} else {
			value = BoolNo
		}
	}
	if _, seen := p.vals[key]; !seen {
		p.keys = append(p.keys, key)
	}
	p.vals[key] = value
}

// Get returns the raw value stored under key.
func (p *Properties) Get(key string) (any, bool) {
	v, ok := p.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (p *Properties) Has(key string) bool {
	_, ok := p.vals[key]
	return ok
}

// String returns the value under key rendered as a string, or ""
// when the key is absent.
func (p *Properties) String(key string) string {
	v, ok := p.vals[key]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Float returns the value under key as a float64, tolerating string
// and integer representations. Absent or non-numeric keys yield 0.
func (p *Properties) Float(key string) float64 {
	v, ok := p.vals[key]
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// Bool reports whether the value under key is the affirmative
// sentinel.
func (p *Properties) Bool(key string) bool {
	return p.String(key) == BoolYes
}

// Keys returns the property names in insertion order.
func (p *Properties) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Clone returns an independent copy preserving key order.
func (p *Properties) Clone() *Properties {
	c := NewProperties()
	for _, k := range p.keys {
		c.Set(k, p.vals[k])
	}
	return c
}
