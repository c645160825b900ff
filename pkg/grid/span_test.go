package grid

import (
	"math"
	"testing"
)

func segments(ls ...Length) []segment {
	out := make([]segment, len(ls))
	for i, l := range ls {
		out[i] = newSegment(l, 0, math.Inf(1))
	}
	return out
}

func desiredOf(a *allocator) []float64 {
	out := make([]float64, len(a.tracks))
	for i, t := range a.tracks {
		out[i] = t.desired
	}
	return out
}

func TestAllocator_ShortfallGoesToAutoTracks(t *testing.T) {
	a := newAllocator(segments(Auto, Pixels(10), Auto))
	a.require(0, 2, 50)
	checkLengths(t, "tracks", desiredOf(a), []float64{20, 10, 20})
	if a.tracks[0].offered != 20 || a.tracks[1].offered != 10 {
		t.Errorf("Expected offered lengths to follow desired, got %v and %v", a.tracks[0].offered, a.tracks[1].offered)
	}
}

func TestAllocator_ShortfallGoesToStarTracksByWeight(t *testing.T) {
	a := newAllocator(segments(Auto, Star(1), Star(3)))
	a.require(0, 2, 80)
	checkLengths(t, "tracks", desiredOf(a), []float64{0, 20, 60})
}

func TestAllocator_ZeroWeightStarFallsBackToAuto(t *testing.T) {
	a := newAllocator(segments(Star(0), Auto))
	a.require(0, 1, 40)
	checkLengths(t, "tracks", desiredOf(a), []float64{0, 40})
}

func TestAllocator_CappedTrackPassesRemainderOn(t *testing.T) {
	tracks := segments(Auto, Auto, Auto)
	tracks[0].max = 5
	a := newAllocator(tracks)
	a.require(0, 2, 35)
	checkLengths(t, "tracks", desiredOf(a), []float64{5, 15, 15})
}

func TestAllocator_NoGrowableTrack(t *testing.T) {
	a := newAllocator(segments(Pixels(10), Pixels(10)))
	a.require(0, 1, 100)
	checkLengths(t, "tracks", desiredOf(a), []float64{10, 10})
}

func TestAllocator_SaveRestore(t *testing.T) {
	a := newAllocator(segments(Auto, Auto))
	a.require(0, 0, 10)
	saved := a.save()
	a.require(0, 1, 40)
	a.restore(saved)
	checkLengths(t, "tracks", desiredOf(a), []float64{10, 0})
	if a.need[1][0] != 0 {
		t.Errorf("Expected restored requirements, got %v", a.need[1][0])
	}
}

func TestAllocator_Constraint(t *testing.T) {
	a := newAllocator(segments(Pixels(10), Auto, Star(1)))
	a.provisionStarsFrom(100, a.nonStarTotal())
	tests := []struct {
		start, end int
		want       float64
	}{
		{0, 0, 10},
		{0, 1, math.Inf(1)},
		{1, 2, 90},
		{0, 2, 100},
	}
	for _, tt := range tests {
		if got := a.constraint(tt.start, tt.end); got != tt.want {
			t.Errorf("constraint(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}

	a.provisionStarsFrom(math.Inf(1), a.nonStarTotal())
	if got := a.constraint(2, 2); !math.IsInf(got, 1) {
		t.Errorf("Expected an unbounded star track on an unbounded axis, got %v", got)
	}
}

func TestContributions_FlushOrder(t *testing.T) {
	a := newAllocator(segments(Auto, Auto, Auto))
	var q contributions
	q.push(0, 0, 50)
	q.push(0, 1, 60)
	q.flush(a)
	checkLengths(t, "tracks", desiredOf(a), []float64{55, 5, 0})

	b := newAllocator(segments(Auto, Auto, Auto))
	q.push(0, 1, 60)
	q.push(0, 0, 50)
	q.flush(b)
	checkLengths(t, "singles first regardless of push order", desiredOf(b), []float64{55, 5, 0})
}

func TestDistributeStars(t *testing.T) {
	tests := []struct {
		name  string
		segs  []segment
		space float64
		want  []float64
	}{
		{"by weight", segments(Star(1), Star(2), Star(1)), 100, []float64{25, 50, 25}},
		{"zero weight gets nothing", segments(Star(0), Star(1)), 40, []float64{0, 40}},
		{"no space", segments(Star(1), Star(1)), 0, []float64{0, 0}},
		{"unbounded", segments(Star(1), Star(5)), math.Inf(1), []float64{math.Inf(1), math.Inf(1)}},
		{
			"max then min",
			func() []segment {
				s := segments(Star(1), Star(1), Star(1))
				s[0].max = 10
				s[2].min = 60
				return s
			}(),
			90,
			[]float64{10, 20, 60},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]float64, len(tt.segs))
			idx := make([]int, len(tt.segs))
			for i := range idx {
				idx[i] = i
			}
			distributeStars(tt.segs, idx, tt.space, func(i int, v float64) { got[i] = v })
			checkLengths(t, "shares", got, tt.want)
		})
	}
}
