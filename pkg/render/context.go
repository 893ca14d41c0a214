// Package render provides the shared rendering context, unit conversion,
// color utilities, and raster format conversion for track plotting.
//
// A Context carries everything one logical render operation needs: the
// logger, the temp directory for intermediate panel files, and the
// centimeter-to-pixel scale factor. Passing it explicitly through every
// render call keeps render operations call-isolated; there is no global
// figure state.
package render

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultCmToPx is the default centimeter-to-pixel scale factor.
const DefaultCmToPx = 28.5

// Context holds the state for one logical render operation.
type Context struct {
	Log     *log.Logger
	TempDir string  // directory for intermediate panel files
	CmToPx  float64 // length-unit (cm) to pixel conversion factor
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger sets the context logger.
func WithLogger(l *log.Logger) ContextOption {
	return func(c *Context) { c.Log = l }
}

// WithTempDir sets the directory for intermediate panel files.
func WithTempDir(dir string) ContextOption {
	return func(c *Context) { c.TempDir = dir }
}

// WithCmToPx sets the cm-to-pixel scale factor.
func WithCmToPx(scale float64) ContextOption {
	return func(c *Context) { c.CmToPx = scale }
}

// NewContext creates a rendering context. Without options it logs to
// io.Discard, writes intermediates to the OS temp directory, and scales at
// DefaultCmToPx.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		Log:     log.NewWithOptions(io.Discard, log.Options{}),
		TempDir: os.TempDir(),
		CmToPx:  DefaultCmToPx,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Px converts a length in cm to pixels.
func (c *Context) Px(cm float64) float64 { return cm * c.CmToPx }

// TempSVG returns a uniquely named path for an intermediate SVG panel.
// Names never collide across repeated plots. The files are not cleaned up
// here; that is left to the surrounding process or OS.
func (c *Context) TempSVG(prefix string) string {
	return filepath.Join(c.TempDir, prefix+uuid.NewString()+".svg")
}
