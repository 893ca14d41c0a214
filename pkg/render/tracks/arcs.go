package tracks

import (
	"context"
	"fmt"

	"github.com/lociview/lociview/pkg/datasource"
	"github.com/lociview/lociview/pkg/genome"
	"github.com/lociview/lociview/pkg/render"
)

// Arcs renders pairwise interactions as half-ellipse arcs between anchor
// midpoints. Inter-chromosomal arcs and arcs whose far anchor is outside
// the plotted range are skipped.
type Arcs struct {
	Source      datasource.ArcSource
	Color       string
	Alpha       float64
	LineWidth   float64
	Orientation string // "inverted" draws arcs opening upward
}

// Render draws one arc per intra-range interaction.
func (a Arcs) Render(ctx context.Context, rc *render.Context, area render.Area, gr genome.Range) ([]byte, error) {
	arcs, err := a.Source.FetchArcs(ctx, gr)
	if err != nil {
		return nil, err
	}

	alpha := a.Alpha
	if alpha == 0 {
		alpha = 0.8
	}
	width := a.LineWidth
	if width == 0 {
		width = 1.5
	}

	scale := area.W / float64(gr.Length())
	baseY := area.Y + area.H
	sweep := 1
	if a.Orientation == "inverted" {
		baseY = area.Y
		sweep = 0
	}

	var f frag
	for _, arc := range arcs {
		if arc.A.Chrom != arc.B.Chrom || !arc.B.Overlaps(gr) {
			continue
		}
		mid1 := float64(arc.A.Start+arc.A.End) / 2
		mid2 := float64(arc.B.Start+arc.B.End) / 2
		if mid2 < mid1 {
			mid1, mid2 = mid2, mid1
		}
		x1 := area.X + (mid1-float64(gr.Start))*scale
		x2 := area.X + (mid2-float64(gr.Start))*scale
		rx := (x2 - x1) / 2
		ry := area.H * 0.9
		w := width
		if arc.Score > 0 {
			w = width * scaleWidth(arc.Score)
		}
		d := fmt.Sprintf("M %s %s A %s %s 0 0 %d %s %s",
			num(x1), num(baseY), num(rx), num(ry), sweep, num(x2), num(baseY))
		f.path(d, a.Color, w, alpha)
	}
	return f.Bytes(), nil
}

// scaleWidth compresses scores into a modest stroke-width multiplier.
func scaleWidth(score float64) float64 {
	w := 0.5 + score/20
	if w > 3 {
		w = 3
	}
	return w
}
