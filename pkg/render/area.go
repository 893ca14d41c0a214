package render

import (
	"context"

	"github.com/lociview/lociview/pkg/genome"
)

// Area is a rectangular plot region in pixels, origin top-left.
type Area struct {
	X, Y, W, H float64
}

// TrackRenderer draws one track's content for a genome range into an SVG
// fragment positioned inside the given area.
type TrackRenderer interface {
	Render(ctx context.Context, rc *Context, area Area, gr genome.Range) ([]byte, error)
}

// JointRenderer is the joint-plot capability: rendering a two-dimensional
// comparison between two genome ranges. Only matrix-like renderers
// implement it; a track with this capability may serve as the center of a
// joint view.
type JointRenderer interface {
	RenderJoint(ctx context.Context, rc *Context, area Area, r1, r2 genome.Range) ([]byte, error)
}
