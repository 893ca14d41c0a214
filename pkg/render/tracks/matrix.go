package tracks

import (
	"context"
	"math"

	"github.com/lociview/lociview/pkg/datasource"
	"github.com/lociview/lociview/pkg/genome"
	"github.com/lociview/lociview/pkg/render"
)

// Matrix renders binned contact matrices. In a frame it draws the classic
// triangular heat plot; as a joint-view center it draws the rectangular
// comparison between two ranges (the joint-plot capability).
type Matrix struct {
	Source     datasource.MatrixSource
	Cmap       string // colormap name, default YlOrRd
	Bins       int    // bins per axis, default 200
	Transform  string // "log2", "log10", or "no"
	Triangular bool
	MaxValue   float64 // fixed color scale upper bound; 0 means auto
	DepthRatio float64 // triangular plot depth as a fraction of full, 0 means full
}

const defaultMatrixBins = 200

// Render draws the single-range heat plot.
func (m Matrix) Render(ctx context.Context, rc *render.Context, area render.Area, gr genome.Range) ([]byte, error) {
	bins := m.bins()
	mat, err := m.Source.FetchMatrix(ctx, gr, gr, bins)
	if err != nil {
		return nil, err
	}
	cmap := render.NewColormap(m.cmapName())
	max := m.scaleMax(mat)

	var f frag
	if m.Triangular {
		m.renderTriangular(&f, mat, area, cmap, max)
	} else {
		m.renderSquare(&f, mat, area, cmap, max)
	}
	return f.Bytes(), nil
}

// RenderJoint draws the two-range comparison heat plot. This is the
// capability that qualifies a matrix track as a joint-view center.
func (m Matrix) RenderJoint(ctx context.Context, rc *render.Context, area render.Area, r1, r2 genome.Range) ([]byte, error) {
	bins := m.bins()
	mat, err := m.Source.FetchMatrix(ctx, r1, r2, bins)
	if err != nil {
		return nil, err
	}
	cmap := render.NewColormap(m.cmapName())
	max := m.scaleMax(mat)

	var f frag
	cellW := area.W / float64(mat.Cols)
	cellH := area.H / float64(mat.Rows)
	for i := 0; i < mat.Rows; i++ {
		for j := 0; j < mat.Cols; j++ {
			v := m.transform(mat.At(i, j))
			if v <= 0 {
				continue
			}
			f.rect(area.X+float64(j)*cellW, area.Y+float64(i)*cellH, cellW, cellH, cmap(v/max))
		}
	}
	return f.Bytes(), nil
}

// renderSquare fills the area with the full matrix.
func (m Matrix) renderSquare(f *frag, mat *datasource.Matrix, area render.Area, cmap render.Colormap, max float64) {
	cellW := area.W / float64(mat.Cols)
	cellH := area.H / float64(mat.Rows)
	for i := 0; i < mat.Rows; i++ {
		for j := 0; j < mat.Cols; j++ {
			v := m.transform(mat.At(i, j))
			if v <= 0 {
				continue
			}
			f.rect(area.X+float64(j)*cellW, area.Y+float64(i)*cellH, cellW, cellH, cmap(v/max))
		}
	}
}

// renderTriangular draws the rotated upper triangle: cell (i,j) with j>=i
// sits at diagonal position (i+j)/2 and height proportional to j-i.
func (m Matrix) renderTriangular(f *frag, mat *datasource.Matrix, area render.Area, cmap render.Colormap, max float64) {
	n := mat.Rows
	if n == 0 {
		return
	}
	depth := n
	if m.DepthRatio > 0 && m.DepthRatio < 1 {
		depth = int(float64(n) * m.DepthRatio)
		if depth < 1 {
			depth = 1
		}
	}
	cellW := area.W / float64(n)
	cellH := area.H / float64(depth)
	baseY := area.Y + area.H
	for i := 0; i < n; i++ {
		for j := i; j < n && j-i < depth; j++ {
			v := m.transform(mat.At(i, j))
			if v <= 0 {
				continue
			}
			x := area.X + (float64(i+j)/2)*cellW
			y := baseY - float64(j-i+1)*cellH
			f.rect(x, y, cellW, cellH, cmap(v/max))
		}
	}
}

func (m Matrix) bins() int {
	if m.Bins > 0 {
		return m.Bins
	}
	return defaultMatrixBins
}

func (m Matrix) cmapName() string {
	if m.Cmap != "" {
		return m.Cmap
	}
	return "YlOrRd"
}

func (m Matrix) transform(v float64) float64 {
	switch m.Transform {
	case "log2":
		if v <= 0 {
			return 0
		}
		return math.Log2(1 + v)
	case "log10":
		if v <= 0 {
			return 0
		}
		return math.Log10(1 + v)
	}
	return v
}

// scaleMax resolves the color scale upper bound.
func (m Matrix) scaleMax(mat *datasource.Matrix) float64 {
	if m.MaxValue > 0 {
		return m.transform(m.MaxValue)
	}
	max := 0.0
	for _, v := range mat.Values {
		if t := m.transform(v); t > max {
			max = t
		}
	}
	if max == 0 {
		max = 1
	}
	return max
}

// Compare renders the per-cell difference of two matrices on a diverging
// colormap, first matrix positive.
type Compare struct {
	A, B datasource.MatrixSource
	Cmap string // diverging colormap, default bwr
	Bins int
}

// Render draws the difference heat plot.
func (c Compare) Render(ctx context.Context, rc *render.Context, area render.Area, gr genome.Range) ([]byte, error) {
	bins := c.Bins
	if bins <= 0 {
		bins = defaultMatrixBins
	}
	ma, err := c.A.FetchMatrix(ctx, gr, gr, bins)
	if err != nil {
		return nil, err
	}
	mb, err := c.B.FetchMatrix(ctx, gr, gr, bins)
	if err != nil {
		return nil, err
	}

	cmapName := c.Cmap
	if cmapName == "" {
		cmapName = "bwr"
	}
	cmap := render.NewColormap(cmapName)

	// symmetric bound around zero
	bound := 0.0
	diff := make([]float64, len(ma.Values))
	for i := range ma.Values {
		d := ma.Values[i] - mb.Values[i]
		diff[i] = d
		if a := math.Abs(d); a > bound {
			bound = a
		}
	}
	if bound == 0 {
		bound = 1
	}

	cellW := area.W / float64(ma.Cols)
	cellH := area.H / float64(ma.Rows)
	var f frag
	for i := 0; i < ma.Rows; i++ {
		for j := 0; j < ma.Cols; j++ {
			d := diff[i*ma.Cols+j]
			if d == 0 {
				continue
			}
			// map [-bound, bound] onto [0, 1]
			f.rect(area.X+float64(j)*cellW, area.Y+float64(i)*cellH, cellW, cellH,
				cmap((d+bound)/(2*bound)))
		}
	}
	return f.Bytes(), nil
}
