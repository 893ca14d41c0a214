package tracks

import (
	"context"

	"github.com/lociview/lociview/pkg/genome"
	"github.com/lociview/lociview/pkg/render"
)

// Spacer renders nothing; it only reserves vertical space between tracks.
type Spacer struct{}

// Render emits an empty fragment.
func (Spacer) Render(ctx context.Context, rc *render.Context, area render.Area, gr genome.Range) ([]byte, error) {
	return nil, nil
}

// XAxis renders a horizontal axis with position ticks for the plotted range.
type XAxis struct {
	Fontsize float64 // label font size in px
	Where    string  // "top" or "bottom": tick label side
}

const axisTicks = 5

// Render draws the axis line, ticks, and position labels.
func (a XAxis) Render(ctx context.Context, rc *render.Context, area render.Area, gr genome.Range) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fontsize := a.Fontsize
	if fontsize == 0 {
		fontsize = 15
	}

	var f frag
	axisY := area.Y + area.H/2
	f.line(area.X, axisY, area.X+area.W, axisY, "black", 1)

	labelY := axisY + fontsize + 2
	tickDir := 4.0
	if a.Where == "top" {
		labelY = axisY - 6
		tickDir = -4.0
	}

	for i := 0; i <= axisTicks; i++ {
		t := float64(i) / axisTicks
		x := area.X + t*area.W
		pos := gr.Start + int(t*float64(gr.Length()))
		f.line(x, axisY, x, axisY+tickDir, "black", 1)
		f.text(x, labelY, fontsize, "middle", formatPos(pos))
	}
	return f.Bytes(), nil
}

// formatPos renders a base-pair position with thousands separators.
func formatPos(pos int) string {
	if pos < 0 {
		return "-" + formatPos(-pos)
	}
	s := ""
	for pos >= 1000 {
		s = "," + pad3(pos%1000) + s
		pos /= 1000
	}
	return intToStr(pos) + s
}

func pad3(v int) string {
	out := intToStr(v)
	for len(out) < 3 {
		out = "0" + out
	}
	return out
}

func intToStr(v int) string {
	if v == 0 {
		return "0"
	}
	out := ""
	for v > 0 {
		out = string(rune('0'+v%10)) + out
		v /= 10
	}
	return out
}
