package rotary

import "fmt"

// Input is a digital input line. Value returns 0 for low and 1 for high.
// *gpiocdev.Line satisfies it.
type Input interface {
	Value() (int, error)
}

// Level is a digital input whose reads cannot fail.
type Level interface {
	IsHigh() bool
	IsLow() bool
}

// Infallible adapts a Level to an Input that never returns an error.
func Infallible(l Level) Input {
	return levelInput{l}
}

type levelInput struct {
	l Level
}

func (in levelInput) Value() (int, error) {
	if in.l.IsHigh() {
		return 1, nil
	}
	return 0, nil
}

// IsHigh reports whether the line reads high.
func IsHigh(in Input) (bool, error) {
	v, err := in.Value()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("rotary: unexpected line value %d", v)
	}
}

// IsLow reports whether the line reads low.
func IsLow(in Input) (bool, error) {
	high, err := IsHigh(in)
	if err != nil {
		return false, err
	}
	return !high, nil
}
