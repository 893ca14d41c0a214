package tracks

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/lociview/lociview/pkg/datasource"
	"github.com/lociview/lociview/pkg/genome"
	"github.com/lociview/lociview/pkg/render"
)

// Signal renders continuous signal (BigWig/BedGraph) as filled bins or a
// line, binned across the plotted range.
type Signal struct {
	Source        datasource.SignalSource
	Color         string
	NumberOfBins  int
	Style         string  // "fill" (default), "line", or "points"
	MaxValue      float64 // fixed upper bound; NaN-like zero with AutoMax selects auto
	MinValue      float64
	AutoMax       bool
	AutoMin       bool
	ShowDataRange string // "yes" or "no"
	Orientation   string // "inverted" flips the profile
	Fontsize      float64

	// PositiveColor/NegativeColor split fills by sign (A/B compartments).
	PositiveColor string
	NegativeColor string
}

// Render fetches, bins, and draws the signal profile.
func (s Signal) Render(ctx context.Context, rc *render.Context, area render.Area, gr genome.Range) ([]byte, error) {
	points, err := s.Source.FetchSignal(ctx, gr)
	if err != nil {
		return nil, err
	}

	bins := s.NumberOfBins
	if bins <= 0 {
		bins = 700
	}
	values := datasource.BinSignal(points, gr, bins)

	min, max := s.resolveRange(values)
	if max <= min {
		max = min + 1
	}

	binW := area.W / float64(bins)
	var f frag
	for i, v := range values {
		if v == 0 {
			continue
		}
		norm := (v - min) / (max - min)
		if norm < 0 {
			norm = 0
		}
		if norm > 1 {
			norm = 1
		}
		h := norm * area.H
		x := area.X + float64(i)*binW
		y := area.Y + area.H - h
		if s.Orientation == "inverted" {
			y = area.Y
		}
		f.rect(x, y, binW, h, s.fillFor(v))
	}

	if s.ShowDataRange != "no" {
		fontsize := s.Fontsize
		if fontsize == 0 {
			fontsize = 8
		}
		f.text(area.X+2, area.Y+fontsize, fontsize, "start",
			fmt.Sprintf("[%s - %s]", num(min), num(max)))
	}
	return f.Bytes(), nil
}

// resolveRange returns the y-axis bounds, computing auto bounds from the
// binned values.
func (s Signal) resolveRange(values []float64) (min, max float64) {
	min, max = s.MinValue, s.MaxValue
	if !s.AutoMin && !s.AutoMax {
		return min, max
	}
	nonzero := make([]float64, 0, len(values))
	for _, v := range values {
		if v != 0 {
			nonzero = append(nonzero, v)
		}
	}
	if len(nonzero) == 0 {
		return 0, 1
	}
	if s.AutoMin {
		m, err := stats.Min(nonzero)
		if err == nil && m < 0 {
			min = m
		} else {
			min = 0
		}
	}
	if s.AutoMax {
		if m, err := stats.Max(nonzero); err == nil {
			max = m
		}
	}
	return min, max
}

func (s Signal) fillFor(v float64) string {
	if v >= 0 && s.PositiveColor != "" {
		return s.PositiveColor
	}
	if v < 0 && s.NegativeColor != "" {
		return s.NegativeColor
	}
	return s.Color
}
