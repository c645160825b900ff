package grid

import (
	"math"

	"lattice/pkg/layout"
)

// segment is the sizing state of one row or column during a layout pass.
type segment struct {
	unit  Unit
	stars float64
	min   float64
	max   float64

	// offered is the length handed to children when they are measured;
	// desired is the length the children have asked for so far.
	offered float64
	desired float64
}

func newSegment(l Length, min, max float64) segment {
	s := segment{unit: l.Unit, min: min, max: max}
	switch l.Unit {
	case Pixel:
		s.desired = s.clamp(l.Value)
	case StarUnit:
		s.stars = l.Value
		s.desired = s.clamp(0)
	default:
		s.desired = s.clamp(0)
	}
	s.offered = s.desired
	return s
}

// clamp bounds v to [min, max]; with conflicting bounds min wins.
func (s *segment) clamp(v float64) float64 {
	return layout.Clamp(v, s.min, s.max)
}

// ceiling is the most a segment may grow to.
func (s *segment) ceiling() float64 {
	return math.Max(s.min, s.max)
}

// weight is the share a segment takes when extra length of its own unit is
// spread over several segments.
func (s *segment) weight() float64 {
	if s.unit == StarUnit {
		return s.stars
	}
	return 1
}

// distributeStars splits space over the star segments listed in idx in
// proportion to their weights and stores the result through set. A share
// outside a segment's [min, max] is pinned to the bound and the rest is
// split again among the others, until every share fits.
func distributeStars(segs []segment, idx []int, space float64, set func(i int, v float64)) {
	open := append([]int(nil), idx...)
	remaining := space
	for len(open) > 0 {
		var total float64
		for _, i := range open {
			total += segs[i].stars
		}
		share := func(i int) float64 {
			w := segs[i].stars
			if w <= 0 || total <= 0 || remaining <= 0 {
				return 0
			}
			if math.IsInf(remaining, 1) {
				return remaining
			}
			return remaining * w / total
		}

		// Pin over-max shares first, then under-min ones; either way
		// restart with the pinned segments removed.
		pinned := pin(open, func(i int) (float64, bool) {
			v := share(i)
			return segs[i].ceiling(), v > segs[i].ceiling()
		})
		if len(pinned) == 0 {
			pinned = pin(open, func(i int) (float64, bool) {
				return segs[i].min, share(i) < segs[i].min
			})
		}
		if len(pinned) == 0 {
			for _, i := range open {
				set(i, share(i))
			}
			return
		}
		for _, i := range open {
			if v, ok := pinned[i]; ok {
				set(i, v)
				remaining -= v
			}
		}
		open = removeAll(open, pinned)
	}
}

func pin(open []int, check func(i int) (float64, bool)) map[int]float64 {
	pinned := make(map[int]float64)
	for _, i := range open {
		if v, ok := check(i); ok {
			pinned[i] = v
		}
	}
	return pinned
}

func removeAll(open []int, pinned map[int]float64) []int {
	out := open[:0]
	for _, i := range open {
		if _, ok := pinned[i]; !ok {
			out = append(out, i)
		}
	}
	return out
}
