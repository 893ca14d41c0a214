// Package genome defines the genomic interval reference used throughout
// lociview to select plotted data.
//
// A Range is an opaque chromosome interval ("chr1:5000-10000") supplied at
// plot time, never at construction time: tracks and frames are configured
// once, then plotted against many ranges.
package genome

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lociview/lociview/pkg/errors"
)

// Range is a half-open chromosome interval [Start, End).
// Positions are zero-based base-pair coordinates.
type Range struct {
	Chrom string
	Start int
	End   int
}

// ParseRange parses a range string of the form "chr9:4000000-6000000".
// Comma thousands separators are tolerated in positions
// ("chr9:4,000,000-6,000,000").
func ParseRange(s string) (Range, error) {
	chrom, rest, ok := strings.Cut(s, ":")
	if !ok || chrom == "" {
		return Range{}, errors.New(errors.ErrCodeInvalidRange,
			"invalid genome range %q (expected \"chrom:start-end\")", s)
	}
	startStr, endStr, ok := strings.Cut(rest, "-")
	if !ok {
		return Range{}, errors.New(errors.ErrCodeInvalidRange,
			"invalid genome range %q (expected \"chrom:start-end\")", s)
	}

	start, err := parsePos(startStr)
	if err != nil {
		return Range{}, errors.New(errors.ErrCodeInvalidRange,
			"invalid start position in %q", s)
	}
	end, err := parsePos(endStr)
	if err != nil {
		return Range{}, errors.New(errors.ErrCodeInvalidRange,
			"invalid end position in %q", s)
	}

	r := Range{Chrom: chrom, Start: start, End: end}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// MustParseRange is like ParseRange but panics on error.
// Intended for tests and static range literals.
func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

func parsePos(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.Atoi(s)
}

// Validate checks the interval is well formed.
func (r Range) Validate() error {
	if r.Chrom == "" {
		return errors.New(errors.ErrCodeInvalidRange, "empty chromosome name")
	}
	if r.Start < 0 {
		return errors.New(errors.ErrCodeInvalidRange,
			"negative start position %d", r.Start)
	}
	if r.End < r.Start {
		return errors.New(errors.ErrCodeInvalidRange,
			"end %d before start %d", r.End, r.Start)
	}
	return nil
}

// Length returns the span of the interval in base pairs.
func (r Range) Length() int { return r.End - r.Start }

// IsZero reports whether the range is the zero value.
func (r Range) IsZero() bool { return r.Chrom == "" && r.Start == 0 && r.End == 0 }

// Overlaps reports whether r and other share at least one base.
func (r Range) Overlaps(other Range) bool {
	return r.Chrom == other.Chrom && r.Start < other.End && other.Start < r.End
}

// String formats the range as "chrom:start-end".
func (r Range) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}
