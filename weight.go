package fst

import (
	"math"
	"strconv"
)

// Delta is the tolerance used when comparing two weights.
const Delta = float32(1.0 / 1024.0)

// TropicalWeight A weight of the tropical semiring (min, +). Zero is +Inf and One is 0.
type TropicalWeight float32

var (
	// Zero The additive identity; a state with this final weight is not final.
	Zero = TropicalWeight(math.Inf(1))
	// One The multiplicative identity.
	One = TropicalWeight(0)
)

// Plus Returns the minimum of the two weights.
func (w TropicalWeight) Plus(other TropicalWeight) TropicalWeight {
	if other < w {
		return other
	}
	return w
}

// Times Returns the sum of the two weights. Zero is absorbing.
func (w TropicalWeight) Times(other TropicalWeight) TropicalWeight {
	if w.IsZero() || other.IsZero() {
		return Zero
	}
	return w + other
}

func (w TropicalWeight) IsZero() bool {
	return math.IsInf(float64(w), 1)
}

func (w TropicalWeight) IsOne() bool {
	return w.ApproxEqual(One)
}

// ApproxEqual Returns true if both weights are within Delta of each other.
func (w TropicalWeight) ApproxEqual(other TropicalWeight) bool {
	if w.IsZero() || other.IsZero() {
		return w.IsZero() == other.IsZero()
	}
	d := float32(w) - float32(other)
	return d <= Delta && d >= -Delta
}

func (w TropicalWeight) String() string {
	if w.IsZero() {
		return "Infinity"
	}
	return strconv.FormatFloat(float64(w), 'g', -1, 32)
}

// ParseWeight Parses a weight as printed by String; "Infinity" and "inf" yield Zero.
func ParseWeight(s string) (TropicalWeight, error) {
	switch s {
	case "Infinity", "inf", "+inf", "INF":
		return Zero, nil
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return Zero, err
	}
	return TropicalWeight(v), nil
}
