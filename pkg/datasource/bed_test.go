package datasource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lociview/lociview/pkg/genome"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const bedContent = `# genes on chr1
track name="test"
chr1	100	500	geneA	960	+	100	500	255,0,0
chr1	800	1200	geneB	.	-
chr1	5000	6000	geneC
chr2	100	500	geneD
`

func TestBedFileFetch(t *testing.T) {
	src := NewBedFile(writeFile(t, "genes.bed", bedContent))
	ctx := context.Background()

	recs, err := src.Fetch(ctx, genome.MustParseRange("chr1:0-1000"))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].Name != "geneA" || recs[1].Name != "geneB" {
		t.Errorf("records out of order: %v", recs)
	}
	if recs[0].Score != 960 || recs[0].Strand != "+" || recs[0].RGB != "255,0,0" {
		t.Errorf("optional columns not parsed: %+v", recs[0])
	}
}

func TestBedFileFetchExcludesOtherChroms(t *testing.T) {
	src := NewBedFile(writeFile(t, "genes.bed", bedContent))

	recs, err := src.Fetch(context.Background(), genome.MustParseRange("chr2:0-10000"))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(recs) != 1 || recs[0].Name != "geneD" {
		t.Errorf("got %v, want only geneD", recs)
	}
}

func TestBedFileFetchEmptyRegion(t *testing.T) {
	src := NewBedFile(writeFile(t, "genes.bed", bedContent))

	recs, err := src.Fetch(context.Background(), genome.MustParseRange("chr1:2000-3000"))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %v, want none", recs)
	}
}

func TestBedFileMissing(t *testing.T) {
	src := NewBedFile(filepath.Join(t.TempDir(), "absent.bed"))
	if _, err := src.Fetch(context.Background(), genome.MustParseRange("chr1:0-10")); err == nil {
		t.Error("Fetch of missing file should fail")
	}
}

func TestBedFileMalformed(t *testing.T) {
	src := NewBedFile(writeFile(t, "bad.bed", "chr1\tnotanumber\t500\n"))
	if _, err := src.Fetch(context.Background(), genome.MustParseRange("chr1:0-10")); err == nil {
		t.Error("Fetch of malformed file should fail")
	}
}

func TestBedGraphFetchSignal(t *testing.T) {
	path := writeFile(t, "signal.bg", "chr1\t0\t100\t1.5\nchr1\t100\t200\t3.0\nchr1\t900\t1000\t9.0\n")
	src := NewBedGraphFile(path)

	points, err := src.FetchSignal(context.Background(), genome.MustParseRange("chr1:0-200"))
	if err != nil {
		t.Fatalf("FetchSignal: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0].Value != 1.5 || points[1].Value != 3.0 {
		t.Errorf("values wrong: %v", points)
	}
}

func TestBinSignal(t *testing.T) {
	points := []SignalPoint{
		{Start: 0, End: 50, Value: 2},
		{Start: 50, End: 100, Value: 4},
	}
	gr := genome.Range{Chrom: "chr1", Start: 0, End: 100}

	bins := BinSignal(points, gr, 2)
	if len(bins) != 2 {
		t.Fatalf("got %d bins, want 2", len(bins))
	}
	if bins[0] != 2 || bins[1] != 4 {
		t.Errorf("bins = %v, want [2 4]", bins)
	}

	// A record spanning both bins contributes to each
	mixed := BinSignal([]SignalPoint{{Start: 0, End: 100, Value: 6}}, gr, 2)
	if mixed[0] != 6 || mixed[1] != 6 {
		t.Errorf("mixed bins = %v, want [6 6]", mixed)
	}

	// Empty bins stay zero
	sparse := BinSignal([]SignalPoint{{Start: 0, End: 50, Value: 6}}, gr, 2)
	if sparse[1] != 0 {
		t.Errorf("empty bin = %v, want 0", sparse[1])
	}
}
