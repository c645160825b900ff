package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"lattice/pkg/layout"
)

// Unit is the sizing mode of a row or column.
type Unit int

const (
	// Pixel tracks have a fixed length.
	Pixel Unit = iota
	// AutoUnit tracks size to the content confined to them.
	AutoUnit
	// StarUnit tracks share the space left over by Pixel and Auto tracks in
	// proportion to their weight.
	StarUnit
)

func (u Unit) String() string {
	switch u {
	case AutoUnit:
		return "auto"
	case StarUnit:
		return "star"
	}
	return "pixel"
}

// Length is a track size: a pixel length, Auto, or a star weight.
type Length struct {
	Value float64
	Unit  Unit
}

// Auto sizes a track to its content.
var Auto = Length{Value: 1, Unit: AutoUnit}

// Pixels returns a fixed length.
func Pixels(v float64) Length {
	return Length{Value: v, Unit: Pixel}
}

// Star returns a proportional length with weight w.
func Star(w float64) Length {
	return Length{Value: w, Unit: StarUnit}
}

// IsAuto reports whether l is Auto.
func (l Length) IsAuto() bool { return l.Unit == AutoUnit }

// IsStar reports whether l is a star weight.
func (l Length) IsStar() bool { return l.Unit == StarUnit }

// IsFixed reports whether l is a pixel length.
func (l Length) IsFixed() bool { return l.Unit == Pixel }

// String formats l the way ParseLength reads it.
func (l Length) String() string {
	switch l.Unit {
	case AutoUnit:
		return "auto"
	case StarUnit:
		if l.Value == 1 {
			return "*"
		}
		return strconv.FormatFloat(l.Value, 'g', -1, 64) + "*"
	}
	return strconv.FormatFloat(l.Value, 'g', -1, 64)
}

// Validate checks that the value is usable: finite and not negative.
func (l Length) Validate() error {
	if math.IsNaN(l.Value) || math.IsInf(l.Value, 0) || l.Value < 0 {
		return fmt.Errorf("length %v: %w", l.Value, layout.ErrInvalidArgument)
	}
	return nil
}

// ParseLength reads "auto", "*", "2.5*" or a plain number of pixels.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "auto":
		return Auto, nil
	case s == "*":
		return Star(1), nil
	case strings.HasSuffix(s, "*"):
		w, err := strconv.ParseFloat(strings.TrimSuffix(s, "*"), 64)
		if err != nil {
			return Length{}, fmt.Errorf("parsing star length %q: %w", s, layout.ErrInvalidArgument)
		}
		l := Star(w)
		return l, l.Validate()
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return Length{}, fmt.Errorf("parsing length %q: %w", s, layout.ErrInvalidArgument)
	}
	l := Pixels(v)
	return l, l.Validate()
}
