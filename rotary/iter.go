package rotary

import "iter"

// Iter presents a Decoder as an endless sequence of Poll results.
// The decoder belongs to the Iter until it is handed back by Decoder.
type Iter[C Counter] struct {
	d *Decoder[C]
}

// Iter moves d into a pull-based iterator. d should not be polled directly
// until it is recovered with (*Iter).Decoder.
func (d *Decoder[C]) Iter() *Iter[C] {
	return &Iter[C]{d: d}
}

// Next polls the decoder once.
func (it *Iter[C]) Next() (bool, error) {
	if it.d == nil {
		panic("rotary: Next on an iterator whose decoder was taken back")
	}
	return it.d.Poll()
}

// Seq returns a range-over-func view of Next. The sequence never ends on its
// own; stop by breaking out of the loop.
func (it *Iter[C]) Seq() iter.Seq2[bool, error] {
	return func(yield func(bool, error) bool) {
		for {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Decoder returns the wrapped decoder and leaves the iterator empty.
func (it *Iter[C]) Decoder() *Decoder[C] {
	d := it.d
	it.d = nil
	return d
}

// Reading is one ButtonedDecoder poll result.
type Reading struct {
	Changed bool
	Pressed bool
}

// ButtonedIter presents a ButtonedDecoder as an endless sequence of readings.
type ButtonedIter[C Counter] struct {
	b *ButtonedDecoder[C]
}

// Iter moves b into a pull-based iterator.
func (b *ButtonedDecoder[C]) Iter() *ButtonedIter[C] {
	return &ButtonedIter[C]{b: b}
}

// Next polls the decoder once.
func (it *ButtonedIter[C]) Next() (Reading, error) {
	if it.b == nil {
		panic("rotary: Next on an iterator whose decoder was taken back")
	}
	changed, pressed, err := it.b.Poll()
	return Reading{Changed: changed, Pressed: pressed}, err
}

// Seq returns a range-over-func view of Next.
func (it *ButtonedIter[C]) Seq() iter.Seq2[Reading, error] {
	return func(yield func(Reading, error) bool) {
		for {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Decoder returns the wrapped decoder and leaves the iterator empty.
func (it *ButtonedIter[C]) Decoder() *ButtonedDecoder[C] {
	b := it.b
	it.b = nil
	return b
}
