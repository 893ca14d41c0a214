// Package tracks implements the per-type SVG renderers.
//
// Each renderer satisfies render.TrackRenderer: given a plot area in pixels
// and a genome range, it fetches what it needs from its data source and
// emits an SVG fragment. The matrix renderer additionally satisfies
// render.JointRenderer, the capability required of joint-view centers.
package tracks

import (
	"bytes"
	"fmt"
	"strings"
)

// frag accumulates SVG fragment markup.
type frag struct {
	bytes.Buffer
}

func (f *frag) rect(x, y, w, h float64, fill string, attrs ...string) {
	fmt.Fprintf(f, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"`,
		num(x), num(y), num(w), num(h), fill)
	for _, a := range attrs {
		f.WriteByte(' ')
		f.WriteString(a)
	}
	f.WriteString("/>\n")
}

func (f *frag) line(x1, y1, x2, y2 float64, stroke string, width float64) {
	fmt.Fprintf(f, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		num(x1), num(y1), num(x2), num(y2), stroke, num(width))
}

func (f *frag) text(x, y float64, size float64, anchor, s string) {
	fmt.Fprintf(f, `<text x="%s" y="%s" font-size="%s" text-anchor="%s" font-family="sans-serif">%s</text>`+"\n",
		num(x), num(y), num(size), anchor, escape(s))
}

func (f *frag) path(d, stroke string, width, alpha float64) {
	fmt.Fprintf(f, `<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-opacity="%s"/>`+"\n",
		d, stroke, num(width), num(alpha))
}

func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
