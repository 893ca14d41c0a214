package datasource

import (
	"context"
	"testing"

	"github.com/lociview/lociview/pkg/cache"
	"github.com/lociview/lociview/pkg/genome"
)

func TestBEDPEFetchArcs(t *testing.T) {
	content := "chr1\t100\t200\tchr1\t5000\t5100\tloop1\t12.5\n" +
		"chr1\t9000\t9100\tchr2\t100\t200\tloop2\t.\n" +
		"chr3\t0\t50\tchr3\t500\t550\n"
	src := NewBEDPEFile(writeFile(t, "loops.bedpe", content))

	arcs, err := src.FetchArcs(context.Background(), genome.MustParseRange("chr1:0-1000"))
	if err != nil {
		t.Fatalf("FetchArcs: %v", err)
	}
	if len(arcs) != 1 {
		t.Fatalf("got %d arcs, want 1", len(arcs))
	}
	if arcs[0].Score != 12.5 {
		t.Errorf("score = %v, want 12.5", arcs[0].Score)
	}
	if arcs[0].B.Start != 5000 {
		t.Errorf("second anchor = %v", arcs[0].B)
	}
}

func TestPairsFetchArcs(t *testing.T) {
	content := "## pairs format v1.0\n" +
		"#columns: readID chrom1 pos1 chrom2 pos2 strand1 strand2\n" +
		"read1\tchr1\t150\tchr1\t5050\t+\t-\n" +
		"read2\tchr2\t99\tchr2\t501\t+\t+\n"
	src := NewPairsFile(writeFile(t, "contacts.pairs", content))

	arcs, err := src.FetchArcs(context.Background(), genome.MustParseRange("chr1:0-1000"))
	if err != nil {
		t.Fatalf("FetchArcs: %v", err)
	}
	if len(arcs) != 1 {
		t.Fatalf("got %d arcs, want 1", len(arcs))
	}
	// pairs anchors are single positions
	if arcs[0].A.Length() != 1 || arcs[0].B.Length() != 1 {
		t.Errorf("anchors should be width 1: %v %v", arcs[0].A, arcs[0].B)
	}
}

func TestExternalMatrixFailsAtFetch(t *testing.T) {
	src := NewExternalMatrix("contacts.cool")
	gr := genome.MustParseRange("chr1:0-1000")
	if _, err := src.FetchMatrix(context.Background(), gr, gr, 10); err == nil {
		t.Error("ExternalMatrix fetch should fail")
	}
}

func TestUniformMatrix(t *testing.T) {
	src := UniformMatrix(2)
	gr := genome.MustParseRange("chr1:0-1000")
	m, err := src.FetchMatrix(context.Background(), gr, gr, 4)
	if err != nil {
		t.Fatalf("FetchMatrix: %v", err)
	}
	if m.Rows != 4 || m.Cols != 4 {
		t.Errorf("shape = %dx%d, want 4x4", m.Rows, m.Cols)
	}
	if m.At(2, 3) != 2 || m.Max() != 2 {
		t.Errorf("values wrong: %v", m.Values)
	}
}

func TestCachedIntervals(t *testing.T) {
	path := writeFile(t, "genes.bed", "chr1\t100\t500\tgeneA\n")
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := NewCachedIntervals(NewBedFile(path), path, store)
	gr := genome.MustParseRange("chr1:0-1000")

	first, err := src.Fetch(context.Background(), gr)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	second, err := src.Fetch(context.Background(), gr)
	if err != nil {
		t.Fatalf("cached Fetch: %v", err)
	}
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Errorf("cached result differs: %v vs %v", first, second)
	}
}
