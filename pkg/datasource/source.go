// Package datasource provides the data-fetching side of track rendering.
//
// Each track holds one DataSource selected by its type tag at construction.
// Sources are narrow interfaces: given a genome range they return the records
// the renderer needs, and nothing else. File-backed sources parse lazily on
// first fetch and index records in an interval tree for overlap queries, so
// repeated plots against different ranges do not re-read the file.
//
// Binary matrix formats (.cool, .mcool, .hic) are parsed by external tooling
// outside this repository; ExternalMatrix stands in for them and fails at
// fetch time with a descriptive error. In-memory sources are provided for
// tests and for callers that fetch data themselves.
package datasource

import (
	"context"

	"github.com/lociview/lociview/pkg/genome"
)

// Interval is one annotation record (BED-like).
type Interval struct {
	Chrom  string  `json:"chrom"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Name   string  `json:"name,omitempty"`
	Score  float64 `json:"score,omitempty"`
	Strand string  `json:"strand,omitempty"`
	RGB    string  `json:"rgb,omitempty"` // itemRgb column, "r,g,b"
}

// SignalPoint is one continuous-signal record (BedGraph/BigWig-like).
type SignalPoint struct {
	Start int     `json:"start"`
	End   int     `json:"end"`
	Value float64 `json:"value"`
}

// Arc is one pairwise-interaction record (BEDPE/pairs-like). The two
// anchors may live on different chromosomes; renderers only draw arcs whose
// anchors both fall in the plotted range.
type Arc struct {
	A     genome.Range `json:"a"`
	B     genome.Range `json:"b"`
	Score float64      `json:"score,omitempty"`
}

// Matrix is a binned contact matrix between two ranges.
// Values are row-major: Values[i*Cols+j] is the contact between bin i of
// the row range and bin j of the column range.
type Matrix struct {
	Rows   int       `json:"rows"`
	Cols   int       `json:"cols"`
	Values []float64 `json:"values"`
}

// At returns the value at (row, col).
func (m *Matrix) At(row, col int) float64 { return m.Values[row*m.Cols+col] }

// Max returns the largest value in the matrix, or 0 for an empty matrix.
func (m *Matrix) Max() float64 {
	max := 0.0
	for _, v := range m.Values {
		if v > max {
			max = v
		}
	}
	return max
}

// IntervalSource fetches annotation records overlapping a range.
type IntervalSource interface {
	Fetch(ctx context.Context, gr genome.Range) ([]Interval, error)
}

// SignalSource fetches continuous-signal records overlapping a range.
type SignalSource interface {
	FetchSignal(ctx context.Context, gr genome.Range) ([]SignalPoint, error)
}

// ArcSource fetches pairwise interactions with at least one anchor in range.
type ArcSource interface {
	FetchArcs(ctx context.Context, gr genome.Range) ([]Arc, error)
}

// MatrixSource fetches a binned contact matrix between two ranges.
// For square single-locus views both ranges are the same.
type MatrixSource interface {
	FetchMatrix(ctx context.Context, r1, r2 genome.Range, bins int) (*Matrix, error)
}

// BinSignal averages signal points into bins across gr.
// Bins with no overlapping data are zero.
func BinSignal(points []SignalPoint, gr genome.Range, bins int) []float64 {
	out := make([]float64, bins)
	if bins == 0 || gr.Length() == 0 {
		return out
	}
	weight := make([]float64, bins)
	binSize := float64(gr.Length()) / float64(bins)

	for _, p := range points {
		lo, hi := p.Start, p.End
		if lo < gr.Start {
			lo = gr.Start
		}
		if hi > gr.End {
			hi = gr.End
		}
		if hi <= lo {
			continue
		}
		first := int(float64(lo-gr.Start) / binSize)
		last := int(float64(hi-1-gr.Start) / binSize)
		if last >= bins {
			last = bins - 1
		}
		for b := first; b <= last; b++ {
			bStart := gr.Start + int(float64(b)*binSize)
			bEnd := gr.Start + int(float64(b+1)*binSize)
			ovl := overlapLen(lo, hi, bStart, bEnd)
			if ovl <= 0 {
				continue
			}
			out[b] += p.Value * float64(ovl)
			weight[b] += float64(ovl)
		}
	}
	for i := range out {
		if weight[i] > 0 {
			out[i] /= weight[i]
		}
	}
	return out
}

func overlapLen(aLo, aHi, bLo, bHi int) int {
	lo, hi := aLo, aHi
	if bLo > lo {
		lo = bLo
	}
	if bHi < hi {
		hi = bHi
	}
	return hi - lo
}
