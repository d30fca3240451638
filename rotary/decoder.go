package rotary

import "fmt"

// Decoder decodes steps from the clock (CLK/A) and data (DT/B) lines of a
// quadrature encoder. Both edges of the clock line count as a step.
type Decoder[C Counter] struct {
	clk       Input
	dt        Input
	lastClk   bool
	counter   C
	direction Direction
	limits    Limits[C]
}

// New creates a decoder with the counter at zero. The clock line is read once
// to seed the last observed level.
func New[C Counter](clk, dt Input) (*Decoder[C], error) {
	return NewBounded(clk, dt, 0, FullRange[C]())
}

// NewWithCounter creates a decoder with the counter seeded to counter.
func NewWithCounter[C Counter](clk, dt Input, counter C) (*Decoder[C], error) {
	return NewBounded(clk, dt, counter, FullRange[C]())
}

// NewBounded creates a decoder whose counter stays within lim.
func NewBounded[C Counter](clk, dt Input, counter C, lim Limits[C]) (*Decoder[C], error) {
	if !lim.valid() {
		return nil, ErrLimits
	}
	if !lim.contains(counter) {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrCounterRange, counter, lim.Min, lim.Max)
	}
	level, err := IsHigh(clk)
	if err != nil {
		return nil, fmt.Errorf("read clock line: %w", err)
	}
	return &Decoder[C]{
		clk:     clk,
		dt:      dt,
		lastClk: level,
		counter: counter,
		limits:  lim,
	}, nil
}

// Poll samples the lines and updates the counter and direction.
// It returns true when a clock edge was seen since the last poll.
// On a read error no state is changed.
func (d *Decoder[C]) Poll() (bool, error) {
	clk, err := IsHigh(d.clk)
	if err != nil {
		return false, fmt.Errorf("read clock line: %w", err)
	}
	if clk == d.lastClk {
		return false, nil
	}

	dt, err := IsHigh(d.dt)
	if err != nil {
		return false, fmt.Errorf("read data line: %w", err)
	}

	// Direction is decided against the new clock level.
	if dt != clk {
		d.counter = d.limits.dec(d.counter)
		d.direction = CounterClockwise
	} else {
		d.counter = d.limits.inc(d.counter)
		d.direction = Clockwise
	}
	d.lastClk = clk
	return true, nil
}

// Counter returns the current step count.
func (d *Decoder[C]) Counter() C {
	return d.counter
}

// SetCounter overwrites the step count, clamped into the decoder's limits.
func (d *Decoder[C]) SetCounter(c C) {
	d.counter = d.limits.clamp(c)
}

// Direction returns the direction of the last step, or Unknown before the first.
func (d *Decoder[C]) Direction() Direction {
	return d.direction
}

// Limits returns the counter bounds.
func (d *Decoder[C]) Limits() Limits[C] {
	return d.limits
}
