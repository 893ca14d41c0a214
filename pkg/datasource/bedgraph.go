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

// BedGraphFile is a SignalSource over a BedGraph file
// (chrom, start, end, value).
type BedGraphFile struct {
	path string

	once sync.Once
	ix   *index
	err  error
}

// NewBedGraphFile creates a BedGraph-backed signal source.
func NewBedGraphFile(path string) *BedGraphFile {
	return &BedGraphFile{path: path}
}

// Path returns the underlying file path.
func (b *BedGraphFile) Path() string { return b.path }

// FetchSignal returns the signal points overlapping gr, ordered by start.
func (b *BedGraphFile) FetchSignal(ctx context.Context, gr genome.Range) ([]SignalPoint, error) {
	b.once.Do(func() { b.ix, b.err = loadBedGraph(b.path) })
	if b.err != nil {
		return nil, b.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recs := b.ix.overlapping(gr.Chrom, gr.Start, gr.End)
	points := make([]SignalPoint, len(recs))
	for i, r := range recs {
		points[i] = SignalPoint{Start: r.Start, End: r.End, Value: r.Score}
	}
	return points, nil
}

func loadBedGraph(path string) (*index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "open bedgraph %s", path)
	}
	defer f.Close()

	var records []Interval
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if skipLine(line) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, errors.New(errors.ErrCodeFetch,
				"%s:%d: bedgraph record needs 4 columns, got %d", path, lineNo, len(fields))
		}
		start, err1 := strconv.Atoi(fields[1])
		end, err2 := strconv.Atoi(fields[2])
		value, err3 := strconv.ParseFloat(fields[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, errors.New(errors.ErrCodeFetch, "%s:%d: malformed bedgraph record", path, lineNo)
		}
		records = append(records, Interval{Chrom: fields[0], Start: start, End: end, Score: value})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "read bedgraph %s", path)
	}
	return buildIndex(records), nil
}
