package rotary

import "fmt"

// ButtonedDecoder is a Decoder plus the encoder's push switch.
// The switch is active-low: pressed reads low, as with a pulled-up input.
type ButtonedDecoder[C Counter] struct {
	sw      Input
	decoder *Decoder[C]
}

// NewButtoned creates a buttoned decoder with the counter at zero.
func NewButtoned[C Counter](sw, clk, dt Input) (*ButtonedDecoder[C], error) {
	return NewButtonedBounded(sw, clk, dt, 0, FullRange[C]())
}

// NewButtonedWithCounter creates a buttoned decoder with a seeded counter.
func NewButtonedWithCounter[C Counter](sw, clk, dt Input, counter C) (*ButtonedDecoder[C], error) {
	return NewButtonedBounded(sw, clk, dt, counter, FullRange[C]())
}

// NewButtonedBounded creates a buttoned decoder whose counter stays within lim.
func NewButtonedBounded[C Counter](sw, clk, dt Input, counter C, lim Limits[C]) (*ButtonedDecoder[C], error) {
	d, err := NewBounded(clk, dt, counter, lim)
	if err != nil {
		return nil, err
	}
	return &ButtonedDecoder[C]{sw: sw, decoder: d}, nil
}

// IsPressed reads the switch line.
func (b *ButtonedDecoder[C]) IsPressed() (bool, error) {
	low, err := IsLow(b.sw)
	if err != nil {
		return false, fmt.Errorf("read switch line: %w", err)
	}
	return low, nil
}

// Poll decodes rotation and samples the switch. The switch is read on every
// call, whether or not a step occurred. If only the switch read fails, changed
// still reports a step that was already applied.
func (b *ButtonedDecoder[C]) Poll() (changed, pressed bool, err error) {
	changed, err = b.decoder.Poll()
	if err != nil {
		return false, false, err
	}
	pressed, err = b.IsPressed()
	if err != nil {
		return changed, false, err
	}
	return changed, pressed, nil
}

// Decoder returns the embedded rotation decoder.
func (b *ButtonedDecoder[C]) Decoder() *Decoder[C] {
	return b.decoder
}
