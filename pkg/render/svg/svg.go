// Package svg implements a small composable SVG document model.
//
// Rendered panels (frames, center matrices) are loaded as Elements,
// transformed with Move and Rotate, and assembled into a Figure: one parent
// canvas containing each panel as an independent layer. The Figure stays a
// document, not a raster image, so callers may keep transforming or embed it
// into larger compositions.
//
// Transforms accumulate in call order and apply left to right, so
//
//	el.Rotate(90).Move(x, y)
//
// produces transform="rotate(90) translate(x, y)": the translation happens
// in the rotated coordinate space.
package svg

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/lociview/lociview/pkg/errors"
)

// Element is a transformable piece of SVG markup.
type Element struct {
	content    []byte
	transforms []string
}

// Fragment wraps raw SVG markup (without an outer <svg> tag) as an Element.
func Fragment(markup []byte) *Element {
	return &Element{content: markup}
}

var (
	svgOpenRe  = regexp.MustCompile(`(?s)<svg[^>]*>`)
	svgCloseRe = regexp.MustCompile(`</svg>\s*$`)
)

// Load reads an SVG file and wraps its content as an Element.
// The outer <svg> tag is stripped so the content can be re-parented and
// transformed inside a Figure.
func Load(path string) (*Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "load svg %s", path)
	}
	return Parse(data)
}

// Parse wraps a complete SVG document as an Element, stripping the outer
// <svg> tag.
func Parse(data []byte) (*Element, error) {
	open := svgOpenRe.FindIndex(data)
	if open == nil {
		return nil, errors.New(errors.ErrCodeRender, "no <svg> root element found")
	}
	inner := data[open[1]:]
	closeIdx := svgCloseRe.FindIndex(inner)
	if closeIdx == nil {
		return nil, errors.New(errors.ErrCodeRender, "unterminated <svg> root element")
	}
	return &Element{content: inner[:closeIdx[0]]}, nil
}

// Move appends a translation by (x, y) pixels and returns the element.
func (e *Element) Move(x, y float64) *Element {
	e.transforms = append(e.transforms, fmt.Sprintf("translate(%s, %s)", ftoa(x), ftoa(y)))
	return e
}

// Rotate appends a rotation by deg degrees about the origin and returns
// the element.
func (e *Element) Rotate(deg float64) *Element {
	e.transforms = append(e.transforms, fmt.Sprintf("rotate(%s)", ftoa(deg)))
	return e
}

// Transform returns the accumulated transform attribute value.
// Empty when no transforms were applied.
func (e *Element) Transform() string {
	return strings.Join(e.transforms, " ")
}

// write renders the element as a <g> layer into buf.
func (e *Element) write(buf *bytes.Buffer) {
	if t := e.Transform(); t != "" {
		fmt.Fprintf(buf, "  <g transform=%q>\n", t)
	} else {
		buf.WriteString("  <g>\n")
	}
	buf.Write(e.content)
	if len(e.content) > 0 && e.content[len(e.content)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString("  </g>\n")
}

// Figure is a parent canvas holding transformed elements as layers.
type Figure struct {
	width  float64 // px
	height float64 // px
	panels []*Element
}

// NewFigure creates a figure with the given pixel dimensions and panels.
// Panels are drawn in order, first panel lowest.
func NewFigure(widthPx, heightPx float64, panels ...*Element) *Figure {
	return &Figure{width: widthPx, height: heightPx, panels: panels}
}

// Append adds further panels on top of the existing ones.
func (f *Figure) Append(panels ...*Element) {
	f.panels = append(f.panels, panels...)
}

// Width returns the declared canvas width in pixels.
func (f *Figure) Width() float64 { return f.width }

// Height returns the declared canvas height in pixels.
func (f *Figure) Height() float64 { return f.height }

// Bytes serializes the figure as a standalone SVG document.
func (f *Figure) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%spx" height="%spx" viewBox="0 0 %s %s">`+"\n",
		ftoa(f.width), ftoa(f.height), ftoa(f.width), ftoa(f.height))
	for _, p := range f.panels {
		p.write(&buf)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Save writes the serialized figure to path.
func (f *Figure) Save(path string) error {
	if err := os.WriteFile(path, f.Bytes(), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "save figure %s", path)
	}
	return nil
}

// ftoa formats a coordinate without trailing zero noise.
func ftoa(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
