package tracks

import (
	"context"
	"strings"
	"testing"

	"github.com/lociview/lociview/pkg/datasource"
	"github.com/lociview/lociview/pkg/genome"
	"github.com/lociview/lociview/pkg/render"
)

var (
	testArea = render.Area{X: 0, Y: 0, W: 100, H: 30}
	testGr   = genome.Range{Chrom: "chr1", Start: 0, End: 1000}
)

func renderToString(t *testing.T, r render.TrackRenderer) string {
	t.Helper()
	out, err := r.Render(context.Background(), render.NewContext(), testArea, testGr)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return string(out)
}

func TestSpacerRendersNothing(t *testing.T) {
	if got := renderToString(t, Spacer{}); got != "" {
		t.Errorf("Spacer should render nothing, got %q", got)
	}
}

func TestXAxisTicksAndLabels(t *testing.T) {
	out := renderToString(t, XAxis{Fontsize: 12})
	if !strings.Contains(out, "<line") {
		t.Error("axis should draw lines")
	}
	if !strings.Contains(out, ">0<") || !strings.Contains(out, ">1,000<") {
		t.Errorf("axis labels missing: %s", out)
	}
}

func TestFormatPos(t *testing.T) {
	tests := []struct {
		pos  int
		want string
	}{
		{0, "0"}, {999, "999"}, {1000, "1,000"}, {4000000, "4,000,000"}, {1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := formatPos(tt.pos); got != tt.want {
			t.Errorf("formatPos(%d) = %q, want %q", tt.pos, got, tt.want)
		}
	}
}

func TestBedRendersBoxes(t *testing.T) {
	src := &datasource.MemoryIntervals{Records: []datasource.Interval{
		{Chrom: "chr1", Start: 100, End: 300, Name: "geneA"},
		{Chrom: "chr1", Start: 200, End: 400, Name: "geneB"},
	}}
	out := renderToString(t, Bed{Source: src, Color: "#808080", BorderColor: "black", Fontsize: 10, Labels: "on", Display: "stacked"})

	if strings.Count(out, "<rect") != 2 {
		t.Errorf("want 2 boxes, got: %s", out)
	}
	if !strings.Contains(out, "geneA") || !strings.Contains(out, "geneB") {
		t.Errorf("labels missing: %s", out)
	}
}

func TestBedLabelsOff(t *testing.T) {
	src := &datasource.MemoryIntervals{Records: []datasource.Interval{
		{Chrom: "chr1", Start: 100, End: 300, Name: "geneA"},
	}}
	out := renderToString(t, Bed{Source: src, Color: "#808080", Labels: "off"})
	if strings.Contains(out, "geneA") {
		t.Error("labels should be suppressed")
	}
}

func TestPackRowsStacked(t *testing.T) {
	recs := []datasource.Interval{
		{Start: 0, End: 100},
		{Start: 50, End: 150}, // overlaps first -> new row
		{Start: 120, End: 200}, // fits after first
	}
	ra := packRows(recs, "stacked")
	if ra.count != 2 {
		t.Errorf("row count = %d, want 2", ra.count)
	}
	if ra.row[0] != 0 || ra.row[1] != 1 || ra.row[2] != 0 {
		t.Errorf("rows = %v, want [0 1 0]", ra.row)
	}
}

func TestSignalRendersBinsAndRange(t *testing.T) {
	src := &datasource.MemorySignal{Points: []datasource.SignalPoint{
		{Start: 0, End: 500, Value: 2},
		{Start: 500, End: 1000, Value: 8},
	}}
	out := renderToString(t, Signal{Source: src, Color: "#dfccde", NumberOfBins: 4, AutoMax: true, AutoMin: true})

	if !strings.Contains(out, "<rect") {
		t.Error("signal should draw bins")
	}
	if !strings.Contains(out, "[0 - 8]") {
		t.Errorf("data range label missing: %s", out)
	}
}

func TestArcsSkipsOutOfRangePartners(t *testing.T) {
	anchor := genome.Range{Chrom: "chr1", Start: 100, End: 200}
	src := &datasource.MemoryArcs{Arcs: []datasource.Arc{
		{A: anchor, B: genome.Range{Chrom: "chr1", Start: 700, End: 800}},
		{A: anchor, B: genome.Range{Chrom: "chr1", Start: 90000, End: 90100}},
		{A: anchor, B: genome.Range{Chrom: "chr2", Start: 700, End: 800}},
	}}
	out := renderToString(t, Arcs{Source: src, Color: "#3297dc"})

	if strings.Count(out, "<path") != 1 {
		t.Errorf("want exactly 1 arc, got: %s", out)
	}
}

func TestMatrixJointRender(t *testing.T) {
	m := Matrix{Source: datasource.UniformMatrix(3), Bins: 2}
	out, err := m.RenderJoint(context.Background(), render.NewContext(), testArea, testGr, testGr)
	if err != nil {
		t.Fatalf("RenderJoint: %v", err)
	}
	if strings.Count(string(out), "<rect") != 4 {
		t.Errorf("want 2x2 cells, got: %s", out)
	}
}

func TestMatrixTriangular(t *testing.T) {
	m := Matrix{Source: datasource.UniformMatrix(1), Bins: 2, Triangular: true}
	out := renderToString(t, m)
	// upper triangle of a 2x2 has 3 cells
	if strings.Count(out, "<rect") != 3 {
		t.Errorf("want 3 cells, got: %s", out)
	}
}

func TestMatrixRendererHasJointCapability(t *testing.T) {
	var r render.TrackRenderer = Matrix{Source: datasource.UniformMatrix(1)}
	if _, ok := r.(render.JointRenderer); !ok {
		t.Error("Matrix should implement render.JointRenderer")
	}

	if _, ok := render.TrackRenderer(Bed{}).(render.JointRenderer); ok {
		t.Error("Bed should not implement render.JointRenderer")
	}
}

func TestCompareUsesDivergingScale(t *testing.T) {
	c := Compare{
		A:    datasource.UniformMatrix(4),
		B:    datasource.UniformMatrix(1),
		Bins: 2,
	}
	out := renderToString(t, c)
	if strings.Count(out, "<rect") != 4 {
		t.Errorf("want 4 cells, got: %s", out)
	}
}

func TestVlines(t *testing.T) {
	v := Vlines{Positions: []int{500, 5000}}
	out := renderToString(t, v)
	if strings.Count(out, "<line") != 1 {
		t.Errorf("only in-range positions should draw: %s", out)
	}
}

func TestHighlightsClipsToRange(t *testing.T) {
	h := Highlights{Intervals: []genome.Range{{Chrom: "chr1", Start: 900, End: 2000}}}
	out := renderToString(t, h)
	if strings.Count(out, "<rect") != 1 {
		t.Fatalf("want 1 band, got: %s", out)
	}
	// clipped at gr.End: width = (1000-900)/1000 * 100px = 10px
	if !strings.Contains(out, `width="10"`) {
		t.Errorf("band should clip to plotted range: %s", out)
	}
}
