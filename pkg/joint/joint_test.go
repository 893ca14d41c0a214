package joint

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/lociview/lociview/pkg/datasource"
	"github.com/lociview/lociview/pkg/errors"
	"github.com/lociview/lociview/pkg/genome"
	"github.com/lociview/lociview/pkg/render"
	"github.com/lociview/lociview/pkg/track"
)

func testCenter(t *testing.T, reg *track.Registry) *track.Track {
	t.Helper()
	return track.NewCool("m.cool",
		track.WithRegistry(reg),
		track.WithMatrixSource(datasource.UniformMatrix(1)),
		track.With("bins", 4))
}

func testFrame(reg *track.Registry) *track.Frame {
	f := track.NewFrame()
	f.AddTrack(track.NewXAxis(track.WithRegistry(reg)))
	return f
}

func testContext(t *testing.T) *render.Context {
	t.Helper()
	return render.NewContext(render.WithTempDir(t.TempDir()))
}

func TestNewRequiresTwoSides(t *testing.T) {
	reg := track.NewRegistry()
	_, err := New(testCenter(t, reg), WithTop(testFrame(reg)))
	if errors.GetCode(err) != errors.ErrCodeInsufficientSides {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInsufficientSides)
	}
}

func TestNewRequiresJointCapableCenter(t *testing.T) {
	reg := track.NewRegistry()
	center := track.NewBed("a.bed", track.WithRegistry(reg))
	_, err := New(center, WithTop(testFrame(reg)), WithRight(testFrame(reg)))
	if errors.GetCode(err) != errors.ErrCodeInvalidCenter {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidCenter)
	}
}

func TestNewValidatesTRBL(t *testing.T) {
	reg := track.NewRegistry()
	for _, trbl := range []string{"121", "12121", "12ab"} {
		_, err := New(testCenter(t, reg),
			WithTop(testFrame(reg)), WithRight(testFrame(reg)), WithTRBL(trbl))
		if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
			t.Errorf("trbl %q: code = %v, want %v", trbl,
				errors.GetCode(err), errors.ErrCodeInvalidConfig)
		}
	}
}

func TestNewWrapsBareTrack(t *testing.T) {
	reg := track.NewRegistry()
	j, err := New(testCenter(t, reg),
		WithTop(track.NewXAxis(track.WithRegistry(reg))),
		WithRight(testFrame(reg)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	top, ok := j.Frame(SideTop)
	if !ok {
		t.Fatal("top frame missing")
	}
	if len(top.Tracks()) != 1 {
		t.Errorf("wrapped frame has %d tracks, want 1", len(top.Tracks()))
	}
}

func TestFrameWidthRescale(t *testing.T) {
	reg := track.NewRegistry()
	j, err := New(testCenter(t, reg),
		WithTop(testFrame(reg)), WithRight(testFrame(reg)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	top, _ := j.Frame(SideTop)
	want := 20.0 / top.WidthRatios()[1]
	if got := top.Width(); got != want {
		t.Errorf("top width = %v, want %v", got, want)
	}
}

func TestSizeTopRight(t *testing.T) {
	reg := track.NewRegistry()
	top := testFrame(reg)
	right := testFrame(reg)
	j, err := New(testCenter(t, reg), WithTop(top), WithRight(right))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w, h := j.Size()
	wantW := top.Width() + right.Height() + 1
	wantH := 20 + top.Height() + 1
	if w != wantW {
		t.Errorf("width = %v, want %v", w, wantW)
	}
	if h != wantH {
		t.Errorf("height = %v, want %v", h, wantH)
	}
}

func TestCenterOffsets(t *testing.T) {
	reg := track.NewRegistry()
	top := testFrame(reg)
	j, err := New(testCenter(t, reg), WithTop(top), WithRight(testFrame(reg)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	x, y := j.centerOffsets()
	wantX := 1 + top.Width()*top.WidthRatios()[0]
	wantY := 1 + top.Height()
	if x != wantX {
		t.Errorf("x offset = %v, want %v", x, wantX)
	}
	if y != wantY {
		t.Errorf("y offset = %v, want %v", y, wantY)
	}
}

func TestPlotSingleRangeEqualsPairedRange(t *testing.T) {
	reg := track.NewRegistry()
	j, err := New(testCenter(t, reg),
		WithTop(testFrame(reg)), WithRight(testFrame(reg)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rc := testContext(t)
	gr := genome.Range{Chrom: "chr1", Start: 0, End: 1000}

	single, err := j.Plot(context.Background(), rc, gr, genome.Range{})
	if err != nil {
		t.Fatalf("Plot(gr): %v", err)
	}
	paired, err := j.Plot(context.Background(), rc, gr, gr)
	if err != nil {
		t.Fatalf("Plot(gr, gr): %v", err)
	}
	if !bytes.Equal(single.Bytes(), paired.Bytes()) {
		t.Error("plot with omitted second range differs from explicit pair")
	}
}

func TestPlotComposesPanels(t *testing.T) {
	reg := track.NewRegistry()
	top := testFrame(reg)
	right := testFrame(reg)
	j, err := New(testCenter(t, reg), WithTop(top), WithRight(right))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rc := testContext(t)
	gr1 := genome.Range{Chrom: "chr1", Start: 0, End: 1000}
	gr2 := genome.Range{Chrom: "chr2", Start: 0, End: 1000}
	fig, err := j.Plot(context.Background(), rc, gr1, gr2)
	if err != nil {
		t.Fatalf("Plot: %v", err)
	}

	wantW, wantH := j.Size()
	if got := fig.Width(); got != rc.Px(wantW) {
		t.Errorf("canvas width = %v px, want %v px", got, rc.Px(wantW))
	}
	if got := fig.Height(); got != rc.Px(wantH) {
		t.Errorf("canvas height = %v px, want %v px", got, rc.Px(wantH))
	}

	out := string(fig.Bytes())
	if !strings.Contains(out, "rotate(90) translate(") {
		t.Error("right panel not rotated then translated")
	}
	if !strings.Contains(out, "<rect") {
		t.Error("center heat cells missing")
	}
}

func TestPlotPropagatesCenterFetchError(t *testing.T) {
	reg := track.NewRegistry()
	center := track.NewCool("broken.cool", track.WithRegistry(reg))
	j, err := New(center, WithTop(testFrame(reg)), WithRight(testFrame(reg)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = j.Plot(context.Background(), testContext(t),
		genome.Range{Chrom: "chr1", Start: 0, End: 1000}, genome.Range{})
	if err == nil {
		t.Fatal("Plot with undecodable center succeeded, want error")
	}
	if errors.GetCode(err) != errors.ErrCodeRender {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeRender)
	}
}
