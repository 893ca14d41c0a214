package datasource

import (
	"github.com/biogo/store/interval"
)

// entry adapts an Interval record to the biogo interval tree.
type entry struct {
	uid uintptr
	rec Interval
}

// Overlap reports whether the entry overlaps the query range.
func (e entry) Overlap(b interval.IntRange) bool {
	return e.rec.Start < b.End && b.Start < e.rec.End
}

func (e entry) ID() uintptr { return e.uid }

func (e entry) Range() interval.IntRange {
	return interval.IntRange{Start: e.rec.Start, End: e.rec.End}
}

// query is an overlap probe without a payload.
type query struct{ start, end int }

func (q query) Overlap(b interval.IntRange) bool {
	return q.start < b.End && b.Start < q.end
}

// index holds per-chromosome interval trees over parsed records.
type index struct {
	trees map[string]*interval.IntTree
}

// buildIndex indexes records by chromosome.
func buildIndex(records []Interval) *index {
	ix := &index{trees: make(map[string]*interval.IntTree)}
	for i, rec := range records {
		t, ok := ix.trees[rec.Chrom]
		if !ok {
			t = &interval.IntTree{}
			ix.trees[rec.Chrom] = t
		}
		// fast insert, ranges fixed up once below
		_ = t.Insert(entry{uid: uintptr(i), rec: rec}, true)
	}
	for _, t := range ix.trees {
		t.AdjustRanges()
	}
	return ix
}

// overlapping returns the records overlapping [start, end) on chrom,
// ordered by start position.
func (ix *index) overlapping(chrom string, start, end int) []Interval {
	t, ok := ix.trees[chrom]
	if !ok {
		return nil
	}
	var out []Interval
	t.DoMatching(func(iv interval.IntInterface) (done bool) {
		out = append(out, iv.(entry).rec)
		return false
	}, query{start: start, end: end})
	sortIntervals(out)
	return out
}

func sortIntervals(recs []Interval) {
	// insertion sort; fetch results are small and nearly ordered
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && recs[j].Start < recs[j-1].Start; j-- {
			recs[j], recs[j-1] = recs[j-1], recs[j]
		}
	}
}
