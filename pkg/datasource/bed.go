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

// BedFile is an IntervalSource over a BED file.
// The file is parsed once on first fetch and indexed per chromosome.
type BedFile struct {
	path string

	once sync.Once
	ix   *index
	err  error
}

// NewBedFile creates a BED-backed interval source.
// The file is not opened until the first Fetch.
func NewBedFile(path string) *BedFile {
	return &BedFile{path: path}
}

// Path returns the underlying file path.
func (b *BedFile) Path() string { return b.path }

// Fetch returns the records overlapping gr, ordered by start.
func (b *BedFile) Fetch(ctx context.Context, gr genome.Range) ([]Interval, error) {
	b.once.Do(func() { b.ix, b.err = loadBed(b.path) })
	if b.err != nil {
		return nil, b.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.ix.overlapping(gr.Chrom, gr.Start, gr.End), nil
}

func loadBed(path string) (*index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "open bed %s", path)
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
		rec, err := parseBedLine(line)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFetch, err, "%s:%d", path, lineNo)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "read bed %s", path)
	}
	return buildIndex(records), nil
}

// skipLine reports whether a line is a comment or header.
func skipLine(line string) bool {
	return line == "" ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "track") ||
		strings.HasPrefix(line, "browser")
}

// parseBedLine parses one BED record. Columns beyond chrom/start/end are
// optional: name, score, strand, thickStart, thickEnd, itemRgb.
func parseBedLine(line string) (Interval, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Interval{}, errors.New(errors.ErrCodeFetch, "bed record needs at least 3 columns, got %d", len(fields))
	}
	start, err := strconv.Atoi(fields[1])
	if err != nil {
		return Interval{}, errors.New(errors.ErrCodeFetch, "bad start %q", fields[1])
	}
	end, err := strconv.Atoi(fields[2])
	if err != nil {
		return Interval{}, errors.New(errors.ErrCodeFetch, "bad end %q", fields[2])
	}

	rec := Interval{Chrom: fields[0], Start: start, End: end}
	if len(fields) > 3 {
		rec.Name = fields[3]
	}
	if len(fields) > 4 && fields[4] != "." {
		if score, err := strconv.ParseFloat(fields[4], 64); err == nil {
			rec.Score = score
		}
	}
	if len(fields) > 5 {
		rec.Strand = fields[5]
	}
	if len(fields) > 8 {
		rec.RGB = fields[8]
	}
	return rec, nil
}
