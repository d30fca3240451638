package gpio

import (
	"errors"
	"testing"
)

func TestFakeLineValue(t *testing.T) {
	f := NewFakeLine(true, false, true)

	want := []int{1, 0, 1, 1} // last level repeats
	for i, w := range want {
		v, err := f.Value()
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if v != w {
			t.Errorf("read %d: expected %d, got %d", i, w, v)
		}
	}
	if f.Reads != len(want) {
		t.Errorf("expected %d reads, got %d", len(want), f.Reads)
	}
}

func TestFakeLineNoLevels(t *testing.T) {
	f := NewFakeLine()

	_, err := f.Value()
	if err == nil {
		t.Error("expected error with no levels")
	}
}

func TestFakeLineError(t *testing.T) {
	f := NewFakeLine(true)
	f.ReadError = errors.New("simulated error")

	_, err := f.Value()
	if err == nil {
		t.Fatal("expected error to be returned")
	}
	if err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeLineSet(t *testing.T) {
	f := NewFakeLine(false, false, false)
	f.Value()

	f.Set(true)
	for i := 0; i < 3; i++ {
		v, _ := f.Value()
		if v != 1 {
			t.Errorf("read %d after Set(true): expected 1, got %d", i, v)
		}
	}
}

func TestFakeLineReset(t *testing.T) {
	f := NewFakeLine(true, false)

	f.Value()
	f.Close()
	f.Reset()

	if f.Closed {
		t.Error("should not be closed after Reset()")
	}
	if f.Reads != 0 {
		t.Errorf("expected reads reset to 0, got %d", f.Reads)
	}
	v, _ := f.Value()
	if v != 1 {
		t.Errorf("after reset: expected 1, got %d", v)
	}
}

func TestFakeLinesClose(t *testing.T) {
	clk, dt, sw := NewFakeLine(false), NewFakeLine(false), NewFakeLine(true)
	lines := NewFakeLines(clk, dt, sw)

	if lines.SW == nil {
		t.Fatal("expected SW line to be set")
	}
	if err := lines.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !clk.Closed || !dt.Closed || !sw.Closed {
		t.Errorf("expected all lines closed, got clk=%v dt=%v sw=%v", clk.Closed, dt.Closed, sw.Closed)
	}
}

func TestFakeLinesWithoutSwitch(t *testing.T) {
	lines := NewFakeLines(NewFakeLine(false), NewFakeLine(false), nil)
	if lines.SW != nil {
		t.Error("expected nil SW line")
	}
	if err := lines.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeOutput(t *testing.T) {
	var out FakeOutput
	if out.Last() != -1 {
		t.Errorf("Last before any write: got %d, want -1", out.Last())
	}
	out.SetValue(1)
	out.SetValue(0)
	if len(out.Values) != 2 || out.Last() != 0 {
		t.Errorf("got %v, want [1 0]", out.Values)
	}

	out.SetError = errors.New("line released")
	if err := out.SetValue(1); err == nil {
		t.Error("expected injected error")
	}
	if len(out.Values) != 2 {
		t.Errorf("failed write should not be recorded, got %v", out.Values)
	}
}
