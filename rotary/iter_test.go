package rotary_test

import (
	"testing"

	"github.com/sweeney/rotary-encoder/internal/gpio"
	"github.com/sweeney/rotary-encoder/rotary"
)

// script is a sequence of (CLK, DT) levels, one per poll.
var script = [][2]bool{
	{false, false}, {true, true}, {true, false}, {false, true},
	{false, true}, {true, false}, {false, false}, {false, false},
}

func scriptedLines(sw ...bool) (*gpio.FakeLine, *gpio.FakeLine, *gpio.FakeLine) {
	// The first level seeds the clock at construction.
	clk := gpio.NewFakeLine(false)
	dt := gpio.NewFakeLine()
	for _, s := range script {
		clk.Levels = append(clk.Levels, s[0])
	}
	// DT is only read on clock edges; script it per edge.
	last := false
	for _, s := range script {
		if s[0] != last {
			dt.Levels = append(dt.Levels, s[1])
			last = s[0]
		}
	}
	return gpio.NewFakeLine(sw...), clk, dt
}

func TestIterMatchesDirectPolling(t *testing.T) {
	_, clk, dt := scriptedLines()
	direct, err := rotary.New[int](clk, dt)
	if err != nil {
		t.Fatal(err)
	}
	var want []bool
	for range script {
		changed, err := direct.Poll()
		if err != nil {
			t.Fatal(err)
		}
		want = append(want, changed)
	}

	_, clk, dt = scriptedLines()
	d, err := rotary.New[int](clk, dt)
	if err != nil {
		t.Fatal(err)
	}
	it := d.Iter()
	for i := range script {
		got, err := it.Next()
		if err != nil {
			t.Fatalf("pull %d: %v", i, err)
		}
		if got != want[i] {
			t.Errorf("pull %d: got %v, want %v", i, got, want[i])
		}
	}

	back := it.Decoder()
	if back.Counter() != direct.Counter() || back.Direction() != direct.Direction() {
		t.Errorf("recovered decoder state (%d, %s) differs from direct (%d, %s)",
			back.Counter(), back.Direction(), direct.Counter(), direct.Direction())
	}
}

func TestIterSeq(t *testing.T) {
	_, clk, dt := scriptedLines()
	d, err := rotary.New[int](clk, dt)
	if err != nil {
		t.Fatal(err)
	}

	it := d.Iter()
	pulls, changes := 0, 0
	for changed, err := range it.Seq() {
		if err != nil {
			t.Fatalf("pull %d: %v", pulls, err)
		}
		if changed {
			changes++
		}
		pulls++
		if pulls == len(script) {
			break
		}
	}
	if changes != 4 {
		t.Errorf("expected 4 changes, got %d", changes)
	}

	// The sequence does not end by itself; it keeps polling after a break.
	if changed, err := it.Next(); err != nil || changed {
		t.Errorf("expected idle poll after script, got changed=%v err=%v", changed, err)
	}
}

func TestIterHandBackAndManualPolling(t *testing.T) {
	clk := gpio.NewFakeLine(false)
	dt := gpio.NewFakeLine(true)
	d, err := rotary.New[int](clk, dt)
	if err != nil {
		t.Fatal(err)
	}

	it := d.Iter()
	it.Next()
	d = it.Decoder()

	clk.Set(true)
	if changed, _ := d.Poll(); !changed {
		t.Error("expected manual poll to see the edge")
	}
	if d.Counter() != 1 {
		t.Errorf("expected counter 1, got %d", d.Counter())
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic when pulling from an emptied iterator")
		}
	}()
	it.Next()
}

func TestButtonedIter(t *testing.T) {
	sw, clk, dt := scriptedLines(true, false, false, true)
	b, err := rotary.NewButtoned[int](sw, clk, dt)
	if err != nil {
		t.Fatal(err)
	}

	want := []rotary.Reading{
		{Changed: false, Pressed: false},
		{Changed: true, Pressed: true},
		{Changed: false, Pressed: true},
		{Changed: true, Pressed: false},
	}

	it := b.Iter()
	i := 0
	for r, err := range it.Seq() {
		if err != nil {
			t.Fatalf("pull %d: %v", i, err)
		}
		if r != want[i] {
			t.Errorf("pull %d: got %+v, want %+v", i, r, want[i])
		}
		i++
		if i == len(want) {
			break
		}
	}

	back := it.Decoder()
	if back != b {
		t.Error("expected the same decoder back")
	}
	if back.Decoder().Counter() != 0 {
		t.Errorf("expected counter 0 after CW then CCW, got %d", back.Decoder().Counter())
	}
}
