package track

import (
	"github.com/lociview/lociview/pkg/errors"
)

// Compose combines two composition values. Operands are never
// mutated: results that reuse an operand's tracks or coverages work
// on copies.
//
// The supported combinations are:
//
//	Track + Track          → Frame holding both, in order
//	Track + Frame          → Frame copy with the track at the top
//	Track + Coverage       → Track copy with the coverage layered on
//	Track + CoverageStack  → Track copy with all members layered on
//	Frame + Track          → Frame copy with the track at the bottom
//	Frame + Frame          → Frame copy with the right frame's tracks appended
//	Frame + Coverage       → Frame copy with the coverage on its last track
//	Coverage + Coverage    → CoverageStack holding both
//	Coverage + Track       → Track copy with the coverage layered on
//	CoverageStack + Track  → Track copy with all members layered on
//
// Any other pairing fails with an unsupported-operand error.
func Compose(left, right any) (any, error) {
	switch l := left.(type) {
	case *Track:
		return composeTrack(l, right)
	case *Frame:
		return composeFrame(l, right)
	case *Coverage:
		return composeCoverage(l, right)
	case *CoverageStack:
		if t, ok := right.(*Track); ok {
			return trackWithStack(t, l), nil
		}
	}
	return nil, errors.OperandError(left, right)
}

func composeTrack(l *Track, right any) (any, error) {
	switch r := right.(type) {
	case *Track:
		f := NewFrame()
		f.AddTrack(l)
		f.AddTrack(r)
		return f, nil
	case *Frame:
		c := r.clone()
		c.AddTrackHead(l)
		return c, nil
	case *Coverage:
		c := l.clone()
		c.appendCoverage(r.clone(), PosTop)
		return c, nil
	case *CoverageStack:
		return trackWithStack(l, r), nil
	}
	return nil, errors.OperandError(l, right)
}

func composeFrame(l *Frame, right any) (any, error) {
	switch r := right.(type) {
	case *Track:
		c := l.clone()
		c.AddTrack(r)
		return c, nil
	case *Frame:
		c := l.clone()
		c.tracks = append(c.tracks, r.tracks...)
		return c, nil
	case *Coverage:
		c := l.clone()
		if n := len(c.tracks); n > 0 {
			last := c.tracks[n-1].clone()
			last.appendCoverage(r.clone(), PosTop)
			c.tracks[n-1] = last
		}
		return c, nil
	}
	return nil, errors.OperandError(l, right)
}

func composeCoverage(l *Coverage, right any) (any, error) {
	switch r := right.(type) {
	case *Coverage:
		return NewCoverageStack(PosTop, l, r), nil
	case *CoverageStack:
		c := r.clone()
		c.coverages = append([]*Coverage{l}, c.coverages...)
		return c, nil
	case *Track:
		t := r.clone()
		t.appendCoverage(l.clone(), PosTop)
		return t, nil
	}
	return nil, errors.OperandError(l, right)
}

func trackWithStack(t *Track, s *CoverageStack) *Track {
	c := t.clone()
	if s.pos == PosBottom {
		// Prepend in reverse so the stack keeps its order.
		for i := len(s.coverages) - 1; i >= 0; i-- {
			c.appendCoverage(s.coverages[i].clone(), PosBottom)
		}
		return c
	}
	for _, cov := range s.coverages {
		c.appendCoverage(cov.clone(), PosTop)
	}
	return c
}
