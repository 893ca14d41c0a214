package datasource

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/lociview/lociview/pkg/errors"
	"github.com/lociview/lociview/pkg/genome"
)

// arcFile is the shared machinery for arc-shaped interaction files.
// The first anchor is indexed; FetchArcs returns records whose first anchor
// overlaps the query range.
type arcFile struct {
	path  string
	parse func(fields []string) (Arc, error)
	cols  int

	once sync.Once
	arcs []Arc
	ix   *index
	err  error
}

func (a *arcFile) load() {
	f, err := os.Open(a.path)
	if err != nil {
		a.err = errors.Wrap(errors.ErrCodeFetch, err, "open %s", a.path)
		return
	}
	defer f.Close()

	var anchors []Interval
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if skipLine(line) || strings.HasPrefix(line, "columns:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < a.cols {
			a.err = errors.New(errors.ErrCodeFetch,
				"%s:%d: record needs %d columns, got %d", a.path, lineNo, a.cols, len(fields))
			return
		}
		arc, err := a.parse(fields)
		if err != nil {
			a.err = errors.Wrap(errors.ErrCodeFetch, err, "%s:%d", a.path, lineNo)
			return
		}
		anchors = append(anchors, Interval{
			Chrom: arc.A.Chrom,
			Start: arc.A.Start,
			End:   arc.A.End,
			// payload index into a.arcs
			Score: float64(len(a.arcs)),
		})
		a.arcs = append(a.arcs, arc)
	}
	if err := sc.Err(); err != nil {
		a.err = errors.Wrap(errors.ErrCodeFetch, err, "read %s", a.path)
		return
	}
	a.ix = buildIndex(anchors)
}

func (a *arcFile) FetchArcs(ctx context.Context, gr genome.Range) ([]Arc, error) {
	a.once.Do(a.load)
	if a.err != nil {
		return nil, a.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	anchors := a.ix.overlapping(gr.Chrom, gr.Start, gr.End)
	out := make([]Arc, 0, len(anchors))
	for _, rec := range anchors {
		out = append(out, a.arcs[int(rec.Score)])
	}
	return out, nil
}

// BEDPEFile is an ArcSource over a BEDPE file
// (chrom1 start1 end1 chrom2 start2 end2 [name score]).
type BEDPEFile struct{ arcFile }

// NewBEDPEFile creates a BEDPE-backed arc source.
func NewBEDPEFile(path string) *BEDPEFile {
	f := &BEDPEFile{}
	f.path = path
	f.cols = 6
	f.parse = parseBEDPE
	return f
}

// Path returns the underlying file path.
func (f *BEDPEFile) Path() string { return f.path }

func parseBEDPE(fields []string) (Arc, error) {
	s1, err1 := strconv.Atoi(fields[1])
	e1, err2 := strconv.Atoi(fields[2])
	s2, err3 := strconv.Atoi(fields[4])
	e2, err4 := strconv.Atoi(fields[5])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return Arc{}, errors.New(errors.ErrCodeFetch, "malformed bedpe positions")
	}
	arc := Arc{
		A: genome.Range{Chrom: fields[0], Start: s1, End: e1},
		B: genome.Range{Chrom: fields[3], Start: s2, End: e2},
	}
	if len(fields) > 7 && fields[7] != "." {
		if score, err := strconv.ParseFloat(fields[7], 64); err == nil {
			arc.Score = score
		}
	}
	return arc, nil
}

// PairsFile is an ArcSource over a 4DN .pairs file
// (readID chrom1 pos1 chrom2 pos2 [strand1 strand2]).
// Anchors are single positions, stored as width-1 intervals.
type PairsFile struct{ arcFile }

// NewPairsFile creates a pairs-backed arc source.
func NewPairsFile(path string) *PairsFile {
	f := &PairsFile{}
	f.path = path
	f.cols = 5
	f.parse = parsePairs
	return f
}

// Path returns the underlying file path.
func (f *PairsFile) Path() string { return f.path }

func parsePairs(fields []string) (Arc, error) {
	p1, err1 := strconv.Atoi(fields[2])
	p2, err2 := strconv.Atoi(fields[4])
	if err1 != nil || err2 != nil {
		return Arc{}, errors.New(errors.ErrCodeFetch, "malformed pairs positions")
	}
	return Arc{
		A: genome.Range{Chrom: fields[1], Start: p1, End: p1 + 1},
		B: genome.Range{Chrom: fields[3], Start: p2, End: p2 + 1},
	}, nil
}
