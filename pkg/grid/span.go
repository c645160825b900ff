package grid

import "math"

// epsilon is the length below which leftover space is treated as spent.
const epsilon = 1e-9

// allocator turns the size requirements of children into track lengths for
// one axis. A requirement says "tracks start..end together need at least
// this much"; need[end][start] keeps the largest such value per span.
type allocator struct {
	tracks []segment
	need   [][]float64
}

func newAllocator(tracks []segment) *allocator {
	need := make([][]float64, len(tracks))
	for end := range need {
		need[end] = make([]float64, end+1)
	}
	return &allocator{tracks: tracks, need: need}
}

// allocatorState is a saved copy of an allocator's mutable state.
type allocatorState struct {
	tracks []segment
	need   [][]float64
}

func (a *allocator) save() allocatorState {
	s := allocatorState{
		tracks: append([]segment(nil), a.tracks...),
		need:   make([][]float64, len(a.need)),
	}
	for i, row := range a.need {
		s.need[i] = append([]float64(nil), row...)
	}
	return s
}

func (a *allocator) restore(s allocatorState) {
	copy(a.tracks, s.tracks)
	for i, row := range s.need {
		copy(a.need[i], row)
	}
}

func (a *allocator) spans(start, end int, unit Unit) bool {
	for i := start; i <= end; i++ {
		if a.tracks[i].unit == unit {
			return true
		}
	}
	return false
}

// starWeight sums the weights of the star tracks in start..end.
func (a *allocator) starWeight(start, end int) float64 {
	var w float64
	for i := start; i <= end; i++ {
		if a.tracks[i].unit == StarUnit {
			w += a.tracks[i].stars
		}
	}
	return w
}

func (a *allocator) hasStars() bool {
	return a.spans(0, len(a.tracks)-1, StarUnit)
}

func (a *allocator) starIndexes() []int {
	var idx []int
	for i, t := range a.tracks {
		if t.unit == StarUnit {
			idx = append(idx, i)
		}
	}
	return idx
}

// offered sums the offered lengths of tracks start..end.
func (a *allocator) offered(start, end int) float64 {
	var sum float64
	for i := start; i <= end; i++ {
		sum += a.tracks[i].offered
	}
	return sum
}

// desired sums the desired lengths of tracks start..end.
func (a *allocator) desired(start, end int) float64 {
	var sum float64
	for i := start; i <= end; i++ {
		sum += a.tracks[i].desired
	}
	return sum
}

// nonStarTotal is the length claimed by pixel and auto tracks.
func (a *allocator) nonStarTotal() float64 {
	var sum float64
	for _, t := range a.tracks {
		if t.unit != StarUnit {
			sum += t.desired
		}
	}
	return sum
}

// constraint is the length a child spanning start..end is measured with.
// Spans touching a star track get the provisional star lengths (possibly
// +Inf); otherwise a span touching an auto track is unconstrained.
func (a *allocator) constraint(start, end int) float64 {
	if a.spans(start, end, StarUnit) {
		return a.offered(start, end)
	}
	if a.spans(start, end, AutoUnit) {
		return math.Inf(1)
	}
	return a.offered(start, end)
}

// provisionStarsFrom gives star tracks the lengths their children are
// measured with: +Inf on an unbounded axis, otherwise what is left of
// available once fixed has been taken by pixel and auto tracks, split by
// weight.
func (a *allocator) provisionStarsFrom(available, fixed float64) {
	idx := a.starIndexes()
	if len(idx) == 0 {
		return
	}
	space := math.Inf(1)
	if !math.IsInf(available, 1) {
		space = math.Max(0, available-fixed)
	}
	distributeStars(a.tracks, idx, space, func(i int, v float64) {
		a.tracks[i].offered = v
	})
}

// total sums the desired lengths of every track.
func (a *allocator) total() float64 {
	return a.desired(0, len(a.tracks)-1)
}

// resolve returns final track lengths for a grid of the given length.
// Pixel and auto tracks keep their desired length; star tracks split what
// is left by weight within their bounds. An unbounded length leaves star
// tracks at their desired length.
func (a *allocator) resolve(length float64) []float64 {
	out := make([]float64, len(a.tracks))
	for i, t := range a.tracks {
		out[i] = t.desired
	}
	idx := a.starIndexes()
	if len(idx) == 0 || math.IsInf(length, 1) || math.IsNaN(length) {
		return out
	}
	space := math.Max(0, length-a.nonStarTotal())
	distributeStars(a.tracks, idx, space, func(i int, v float64) {
		out[i] = v
	})
	return out
}

// require records that tracks start..end need at least size and grows
// tracks until every recorded requirement holds.
func (a *allocator) require(start, end int, size float64) {
	if size <= a.need[end][start] {
		return
	}
	a.need[end][start] = size
	a.allocate()
}

// allocate visits every recorded requirement, last track first and, for a
// given last track, shortest span first. A shortfall goes to the star tracks
// of the span if their combined weight is positive, otherwise to its auto
// tracks. Pixel tracks keep their declared length.
func (a *allocator) allocate() {
	for end := len(a.tracks) - 1; end >= 0; end-- {
		for start := end; start >= 0; start-- {
			need := a.need[end][start]
			if need <= 0 {
				continue
			}
			have := a.desired(start, end)
			if have >= need {
				continue
			}
			unit := AutoUnit
			if a.starWeight(start, end) > 0 {
				unit = StarUnit
			}
			a.grow(start, end, need-have, unit)
		}
	}
	for i := range a.tracks {
		if a.tracks[i].unit != StarUnit {
			a.tracks[i].offered = a.tracks[i].desired
		}
	}
}

// grow spreads extra over the tracks of the given unit in start..end that
// are still below their ceiling, evenly for auto tracks and by weight for
// star tracks. A track reaching its ceiling drops out and the remainder is
// spread over the others. It returns whatever could not be placed.
func (a *allocator) grow(start, end int, extra float64, unit Unit) float64 {
	for round := 0; extra > epsilon && round <= end-start+1; round++ {
		var weight float64
		for i := start; i <= end; i++ {
			t := &a.tracks[i]
			if t.unit == unit && t.desired < t.ceiling() {
				weight += t.weight()
			}
		}
		if weight <= 0 {
			break
		}
		per := extra / weight
		for i := start; i <= end; i++ {
			t := &a.tracks[i]
			if t.unit != unit || t.desired >= t.ceiling() {
				continue
			}
			next := math.Min(t.desired+per*t.weight(), t.ceiling())
			extra -= next - t.desired
			t.desired = next
		}
	}
	return math.Max(0, extra)
}

// contribution is one child's requirement along one axis.
type contribution struct {
	start, end int
	size       float64
}

// contributions queues requirements so they can be applied in a fixed
// order: single-track ones first, then spanning ones most recently added
// first.
type contributions struct {
	single []contribution
	multi  []contribution
}

func (q *contributions) push(start, end int, size float64) {
	c := contribution{start: start, end: end, size: size}
	if start == end {
		q.single = append(q.single, c)
		return
	}
	q.multi = append(q.multi, c)
}

func (q *contributions) flush(a *allocator) {
	for i := len(q.single) - 1; i >= 0; i-- {
		c := q.single[i]
		a.require(c.start, c.end, c.size)
	}
	for i := len(q.multi) - 1; i >= 0; i-- {
		c := q.multi[i]
		a.require(c.start, c.end, c.size)
	}
	q.single = q.single[:0]
	q.multi = q.multi[:0]
}
