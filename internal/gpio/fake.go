package gpio

import "errors"

// FakeLine is a test double that returns scripted line levels.
type FakeLine struct {
	// Levels contains scripted levels to return (true = high).
	// Each call to Value() consumes the next level.
	Levels []bool

	// index tracks current position in Levels
	index int

	// Reads counts calls to Value()
	Reads int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Value()
	ReadError error
}

// NewFakeLine creates a FakeLine with the given levels.
func NewFakeLine(levels ...bool) *FakeLine {
	return &FakeLine{Levels: levels}
}

// Value returns the next scripted level as 0 or 1.
// If levels are exhausted, returns the last level repeatedly.
func (f *FakeLine) Value() (int, error) {
	f.Reads++
	if f.ReadError != nil {
		return 0, f.ReadError
	}

	if len(f.Levels) == 0 {
		return 0, errors.New("no levels configured")
	}

	level := f.Levels[f.index]
	if f.index < len(f.Levels)-1 {
		f.index++
	}

	if level {
		return 1, nil
	}
	return 0, nil
}

// Set replaces the script with a single level held until the next Set.
func (f *FakeLine) Set(high bool) {
	f.Levels = []bool{high}
	f.index = 0
}

// Close marks the line as closed.
func (f *FakeLine) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the line to the beginning of its levels.
func (f *FakeLine) Reset() {
	f.index = 0
	f.Reads = 0
	f.Closed = false
}

// NewFakeLines bundles fake lines as Lines. Close closes each fake.
func NewFakeLines(clk, dt, sw *FakeLine) *Lines {
	l := &Lines{CLK: clk, DT: dt}
	fakes := []*FakeLine{clk, dt}
	if sw != nil {
		l.SW = sw
		fakes = append(fakes, sw)
	}
	l.closer = func() error {
		for _, f := range fakes {
			f.Close()
		}
		return nil
	}
	return l
}

// FakeOutput records values written to an output line.
type FakeOutput struct {
	// Values holds every value written, in order.
	Values []int

	// SetError, if set, is returned by SetValue and nothing is recorded.
	SetError error
}

// SetValue records v.
func (f *FakeOutput) SetValue(v int) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Values = append(f.Values, v)
	return nil
}

// Last returns the most recent value, or -1 if nothing was written.
func (f *FakeOutput) Last() int {
	if len(f.Values) == 0 {
		return -1
	}
	return f.Values[len(f.Values)-1]
}
