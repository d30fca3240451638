// Package rotary decodes quadrature rotary encoders from polled digital inputs.
// This package has NO hardware dependencies: lines are read through the Input
// interface, so any GPIO binding (or a test fake) can drive it.
//
// Decoders are single-owner values. Poll mutates state and is not safe for
// concurrent use; callers must not poll the same decoder from two goroutines.
package rotary

import (
	"errors"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Direction is the direction of the most recently decoded step.
type Direction int

const (
	Unknown Direction = iota
	Clockwise
	CounterClockwise
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "CW"
	case CounterClockwise:
		return "CCW"
	default:
		return "?"
	}
}

// Counter is the set of integer types a decoder can count steps in.
type Counter interface {
	constraints.Integer
}

var (
	// ErrLimits is returned for limits that do not satisfy Min <= 0 <= Max.
	ErrLimits = errors.New("rotary: limits must satisfy min <= 0 <= max")
	// ErrCounterRange is returned when an initial counter lies outside its limits.
	ErrCounterRange = errors.New("rotary: counter outside limits")
)

// Limits bounds a step counter. Decrements clamp at Min; increments past Max
// wrap to zero.
type Limits[C Counter] struct {
	Min C
	Max C
}

// FullRange returns the representable range of C.
func FullRange[C Counter]() Limits[C] {
	var zero C
	if zero-1 > zero {
		// unsigned: 0 - 1 wraps to the maximum
		return Limits[C]{Min: 0, Max: zero - 1}
	}
	bits := unsafe.Sizeof(zero) * 8
	lowest := C(1) << (bits - 1)
	return Limits[C]{Min: lowest, Max: lowest - 1}
}

func (l Limits[C]) valid() bool {
	return l.Min <= 0 && l.Max >= 0
}

func (l Limits[C]) contains(c C) bool {
	return c >= l.Min && c <= l.Max
}

func (l Limits[C]) clamp(c C) C {
	if c < l.Min {
		return l.Min
	}
	if c > l.Max {
		return l.Max
	}
	return c
}

// inc advances c by one, wrapping to zero when c is already at Max.
func (l Limits[C]) inc(c C) C {
	if c >= l.Max {
		return 0
	}
	return c + 1
}

// dec moves c back by one, staying put when c is already at Min.
func (l Limits[C]) dec(c C) C {
	if c <= l.Min {
		return c
	}
	return c - 1
}
