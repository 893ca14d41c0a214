package tracks

import (
	"context"
	"fmt"

	"github.com/lociview/lociview/pkg/datasource"
	"github.com/lociview/lociview/pkg/genome"
	"github.com/lociview/lociview/pkg/render"
)

// Bed renders annotation intervals as stacked boxes with optional labels.
type Bed struct {
	Source      datasource.IntervalSource
	Color       string // fill color, or "bed_rgb" to use each record's itemRgb
	BorderColor string
	Fontsize    float64
	Labels      string // "on", "off", or "auto"
	Display     string // "stacked", "interlaced", or "collapsed"
}

// labelDensityLimit is the record count above which "auto" suppresses labels.
const labelDensityLimit = 60

// Render fetches overlapping records and draws them row-packed.
func (b Bed) Render(ctx context.Context, rc *render.Context, area render.Area, gr genome.Range) ([]byte, error) {
	records, err := b.Source.Fetch(ctx, gr)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	showLabels := b.Labels == "on" || (b.Labels == "auto" && len(records) <= labelDensityLimit)
	rows := packRows(records, b.Display)
	rowH := area.H / float64(rows.count)
	boxH := rowH * 0.6

	scale := area.W / float64(gr.Length())
	var f frag
	for i, rec := range records {
		x := area.X + float64(rec.Start-gr.Start)*scale
		w := float64(rec.End-rec.Start) * scale
		if x < area.X {
			w -= area.X - x
			x = area.X
		}
		if x+w > area.X+area.W {
			w = area.X + area.W - x
		}
		if w < 0.5 {
			w = 0.5
		}
		y := area.Y + float64(rows.row[i])*rowH + (rowH-boxH)/2

		fill := b.Color
		if b.Color == "bed_rgb" && rec.RGB != "" {
			fill = fmt.Sprintf("rgb(%s)", rec.RGB)
		} else if b.Color == "bed_rgb" {
			fill = "#808080"
		}
		f.rect(x, y, w, boxH, fill, fmt.Sprintf("stroke=%q", b.BorderColor))

		if showLabels && rec.Name != "" {
			f.text(x+w/2, y+boxH+b.Fontsize, b.Fontsize, "middle", rec.Name)
		}
	}
	return f.Bytes(), nil
}

// rowAssignment maps each record index to a display row.
type rowAssignment struct {
	row   []int
	count int
}

// packRows assigns records to rows per the display mode: collapsed puts
// everything on one row, interlaced alternates two rows, stacked greedily
// packs without horizontal overlap.
func packRows(records []datasource.Interval, display string) rowAssignment {
	ra := rowAssignment{row: make([]int, len(records)), count: 1}
	switch display {
	case "collapsed":
		return ra
	case "interlaced":
		for i := range records {
			ra.row[i] = i % 2
		}
		if len(records) > 1 {
			ra.count = 2
		}
		return ra
	}

	// stacked: first row whose last record ends before this one starts
	var rowEnds []int
	for i, rec := range records {
		placed := false
		for r, end := range rowEnds {
			if rec.Start >= end {
				ra.row[i] = r
				rowEnds[r] = rec.End
				placed = true
				break
			}
		}
		if !placed {
			ra.row[i] = len(rowEnds)
			rowEnds = append(rowEnds, rec.End)
		}
	}
	ra.count = len(rowEnds)
	if ra.count == 0 {
		ra.count = 1
	}
	return ra
}

// TADs renders domain calls as triangles spanning each interval.
type TADs struct {
	Source      datasource.IntervalSource
	Color       string
	BorderColor string
	Orientation string // "inverted" flips the triangles downward
}

// Render draws one triangle per overlapping domain.
func (t TADs) Render(ctx context.Context, rc *render.Context, area render.Area, gr genome.Range) ([]byte, error) {
	records, err := t.Source.Fetch(ctx, gr)
	if err != nil {
		return nil, err
	}

	scale := area.W / float64(gr.Length())
	baseY, apexMul := area.Y+area.H, -1.0
	if t.Orientation == "inverted" {
		baseY, apexMul = area.Y, 1.0
	}

	var f frag
	for _, rec := range records {
		x1 := area.X + float64(rec.Start-gr.Start)*scale
		x2 := area.X + float64(rec.End-gr.Start)*scale
		apex := baseY + apexMul*area.H
		fill := t.Color
		if t.Color == "bed_rgb" {
			if rec.RGB != "" {
				fill = fmt.Sprintf("rgb(%s)", rec.RGB)
			} else {
				fill = "#808080"
			}
		}
		fmt.Fprintf(&f, `<polygon points="%s,%s %s,%s %s,%s" fill="%s" fill-opacity="0.5" stroke="%s"/>`+"\n",
			num(x1), num(baseY), num((x1+x2)/2), num(apex), num(x2), num(baseY), fill, t.BorderColor)
	}
	return f.Bytes(), nil
}
