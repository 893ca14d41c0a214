package datasource

import (
	"context"
	"path/filepath"

	"github.com/lociview/lociview/pkg/errors"
	"github.com/lociview/lociview/pkg/genome"
)

// MemoryMatrix is a MatrixSource over a caller-supplied fetch function.
// It is the injection point for tests and for callers that bin contact data
// themselves (e.g. via external cooler/straw tooling).
type MemoryMatrix struct {
	FetchFn func(r1, r2 genome.Range, bins int) (*Matrix, error)
}

// FetchMatrix invokes the fetch function.
func (m *MemoryMatrix) FetchMatrix(ctx context.Context, r1, r2 genome.Range, bins int) (*Matrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.FetchFn(r1, r2, bins)
}

// UniformMatrix returns a MatrixSource producing a constant-valued matrix.
// Useful for layout tests where only geometry matters.
func UniformMatrix(value float64) *MemoryMatrix {
	return &MemoryMatrix{FetchFn: func(r1, r2 genome.Range, bins int) (*Matrix, error) {
		values := make([]float64, bins*bins)
		for i := range values {
			values[i] = value
		}
		return &Matrix{Rows: bins, Cols: bins, Values: values}, nil
	}}
}

// ExternalMatrix stands in for binary matrix formats (.cool, .mcool, .hic)
// whose parsing lives in external tooling. Construction succeeds so tracks
// can be configured and composed; fetching fails with a descriptive error
// that propagates to the plot call.
type ExternalMatrix struct {
	path string
}

// NewExternalMatrix creates a placeholder source for path.
func NewExternalMatrix(path string) *ExternalMatrix {
	return &ExternalMatrix{path: path}
}

// Path returns the underlying file path.
func (m *ExternalMatrix) Path() string { return m.path }

// FetchMatrix always fails: binary matrix decoding is delegated to
// external tooling, which should supply data through a MemoryMatrix.
func (m *ExternalMatrix) FetchMatrix(ctx context.Context, r1, r2 genome.Range, bins int) (*Matrix, error) {
	return nil, errors.New(errors.ErrCodeFetch,
		"no decoder for %s matrices (%s): supply binned data via a MemoryMatrix source",
		filepath.Ext(m.path), m.path)
}

// ExternalSignal stands in for binary signal formats (.bw, .bigwig)
// whose parsing lives in external tooling, mirroring ExternalMatrix.
type ExternalSignal struct {
	path string
}

// NewExternalSignal creates a placeholder source for path.
func NewExternalSignal(path string) *ExternalSignal {
	return &ExternalSignal{path: path}
}

// Path returns the underlying file path.
func (s *ExternalSignal) Path() string { return s.path }

// FetchSignal always fails: binary signal decoding is delegated to
// external tooling, which should supply data through a MemorySignal.
func (s *ExternalSignal) FetchSignal(ctx context.Context, gr genome.Range) ([]SignalPoint, error) {
	return nil, errors.New(errors.ErrCodeFetch,
		"no decoder for %s signal (%s): supply values via a MemorySignal source",
		filepath.Ext(s.path), s.path)
}

// MemoryIntervals is an IntervalSource over a fixed record set.
type MemoryIntervals struct {
	Records []Interval

	ix *index
}

// Fetch returns the records overlapping gr.
func (m *MemoryIntervals) Fetch(ctx context.Context, gr genome.Range) ([]Interval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ix == nil {
		m.ix = buildIndex(m.Records)
	}
	return m.ix.overlapping(gr.Chrom, gr.Start, gr.End), nil
}

// MemorySignal is a SignalSource over a fixed point set.
type MemorySignal struct {
	Chrom  string
	Points []SignalPoint
}

// FetchSignal returns the points overlapping gr.
func (m *MemorySignal) FetchSignal(ctx context.Context, gr genome.Range) ([]SignalPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Chrom != "" && m.Chrom != gr.Chrom {
		return nil, nil
	}
	var out []SignalPoint
	for _, p := range m.Points {
		if p.Start < gr.End && gr.Start < p.End {
			out = append(out, p)
		}
	}
	return out, nil
}

// MemoryArcs is an ArcSource over a fixed arc set.
type MemoryArcs struct {
	Arcs []Arc
}

// FetchArcs returns arcs whose first anchor overlaps gr.
func (m *MemoryArcs) FetchArcs(ctx context.Context, gr genome.Range) ([]Arc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []Arc
	for _, a := range m.Arcs {
		if a.A.Overlaps(gr) {
			out = append(out, a)
		}
	}
	return out, nil
}
