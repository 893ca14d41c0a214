package genome

import (
	"testing"

	"github.com/lociview/lociview/pkg/errors"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Range
	}{
		{
			name:  "plain",
			input: "chr1:0-1000",
			want:  Range{Chrom: "chr1", Start: 0, End: 1000},
		},
		{
			name:  "comma separators",
			input: "chr9:4,000,000-6,000,000",
			want:  Range{Chrom: "chr9", Start: 4000000, End: 6000000},
		},
		{
			name:  "non-chr prefix",
			input: "scaffold_12:5-10",
			want:  Range{Chrom: "scaffold_12", Start: 5, End: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if err != nil {
				t.Fatalf("ParseRange(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRange(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRangeErrors(t *testing.T) {
	tests := []string{
		"",
		"chr1",
		"chr1:100",
		":0-100",
		"chr1:abc-100",
		"chr1:100-abc",
		"chr1:500-100",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRange(input)
			if err == nil {
				t.Fatalf("ParseRange(%q) should fail", input)
			}
			if !errors.Is(err, errors.ErrCodeInvalidRange) {
				t.Errorf("ParseRange(%q) code = %q, want INVALID_RANGE", input, errors.GetCode(err))
			}
		})
	}
}

func TestRangeRoundTrip(t *testing.T) {
	r := MustParseRange("chr2:150-9000")
	back, err := ParseRange(r.String())
	if err != nil {
		t.Fatalf("re-parse error: %v", err)
	}
	if back != r {
		t.Errorf("round trip mismatch: %v != %v", back, r)
	}
}

func TestRangeLength(t *testing.T) {
	r := Range{Chrom: "chr1", Start: 100, End: 350}
	if r.Length() != 250 {
		t.Errorf("Length = %d, want 250", r.Length())
	}
}

func TestRangeOverlaps(t *testing.T) {
	base := Range{Chrom: "chr1", Start: 100, End: 200}
	tests := []struct {
		name  string
		other Range
		want  bool
	}{
		{"inside", Range{"chr1", 120, 150}, true},
		{"left edge", Range{"chr1", 50, 101}, true},
		{"abutting", Range{"chr1", 200, 300}, false},
		{"different chrom", Range{"chr2", 120, 150}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}
