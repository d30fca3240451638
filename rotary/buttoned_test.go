package rotary_test

import (
	"errors"
	"testing"

	"github.com/sweeney/rotary-encoder/internal/gpio"
	"github.com/sweeney/rotary-encoder/rotary"
)

func setupButtoned(t *testing.T) (*rotary.ButtonedDecoder[int], *gpio.FakeLine, *gpio.FakeLine, *gpio.FakeLine) {
	t.Helper()
	sw := gpio.NewFakeLine(true) // released (pulled up)
	clk := gpio.NewFakeLine(false)
	dt := gpio.NewFakeLine(false)
	b, err := rotary.NewButtoned[int](sw, clk, dt)
	if err != nil {
		t.Fatalf("NewButtoned: %v", err)
	}
	return b, sw, clk, dt
}

func TestNewButtoned(t *testing.T) {
	b, sw, clk, _ := setupButtoned(t)

	if b.Decoder().Counter() != 0 {
		t.Errorf("expected counter 0, got %d", b.Decoder().Counter())
	}
	if b.Decoder().Direction() != rotary.Unknown {
		t.Errorf("expected Unknown, got %s", b.Decoder().Direction())
	}
	if clk.Reads != 1 {
		t.Errorf("expected one clock read at construction, got %d", clk.Reads)
	}
	if sw.Reads != 0 {
		t.Errorf("expected switch untouched at construction, got %d reads", sw.Reads)
	}
}

func TestNewButtonedWithCounter(t *testing.T) {
	b, err := rotary.NewButtonedWithCounter(gpio.NewFakeLine(true), gpio.NewFakeLine(false), gpio.NewFakeLine(false), uint16(500))
	if err != nil {
		t.Fatalf("NewButtonedWithCounter: %v", err)
	}
	if b.Decoder().Counter() != 500 {
		t.Errorf("expected 500, got %d", b.Decoder().Counter())
	}
}

func TestNewButtonedBoundedRejectsBadLimits(t *testing.T) {
	_, err := rotary.NewButtonedBounded(gpio.NewFakeLine(true), gpio.NewFakeLine(false), gpio.NewFakeLine(false), 0, rotary.Limits[int]{Min: 1, Max: 4})
	if !errors.Is(err, rotary.ErrLimits) {
		t.Errorf("expected ErrLimits, got %v", err)
	}
}

func TestIsPressedActiveLow(t *testing.T) {
	b, sw, _, _ := setupButtoned(t)

	pressed, err := b.IsPressed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pressed {
		t.Error("expected released while switch reads high")
	}

	sw.Set(false)
	pressed, err = b.IsPressed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pressed {
		t.Error("expected pressed while switch reads low")
	}
}

// Pressed is reported whether or not a step happened on the same poll.
func TestButtonedPollPressedIndependentOfChange(t *testing.T) {
	b, sw, clk, dt := setupButtoned(t)
	sw.Set(false)

	changed, pressed, err := b.Poll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("expected no change without clock edge")
	}
	if !pressed {
		t.Error("expected pressed without a step")
	}

	clk.Set(true)
	dt.Set(true)
	changed, pressed, err = b.Poll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected change on clock edge")
	}
	if !pressed {
		t.Error("expected pressed alongside a step")
	}
	if b.Decoder().Counter() != 1 || b.Decoder().Direction() != rotary.Clockwise {
		t.Errorf("expected CW step to 1, got %s %d", b.Decoder().Direction(), b.Decoder().Counter())
	}
}

func TestButtonedPollReadsSwitchEveryCall(t *testing.T) {
	b, sw, _, _ := setupButtoned(t)

	for i := 0; i < 4; i++ {
		if _, _, err := b.Poll(); err != nil {
			t.Fatalf("poll %d: %v", i, err)
		}
	}
	if sw.Reads != 4 {
		t.Errorf("expected 4 switch reads, got %d", sw.Reads)
	}
}

func TestButtonedPollErrors(t *testing.T) {
	t.Run("rotation read fails", func(t *testing.T) {
		b, sw, clk, _ := setupButtoned(t)
		clk.ReadError = errors.New("clock fault")

		_, _, err := b.Poll()
		if !errors.Is(err, clk.ReadError) {
			t.Errorf("expected clock fault, got %v", err)
		}
		if sw.Reads != 0 {
			t.Errorf("expected switch not read after rotation failure, got %d", sw.Reads)
		}
	})

	t.Run("switch read fails after step", func(t *testing.T) {
		b, sw, clk, dt := setupButtoned(t)
		sw.ReadError = errors.New("switch fault")
		clk.Set(true)
		dt.Set(true)

		changed, pressed, err := b.Poll()
		if !errors.Is(err, sw.ReadError) {
			t.Errorf("expected switch fault, got %v", err)
		}
		if !changed {
			t.Error("expected the applied step to be reported")
		}
		if pressed {
			t.Error("expected pressed=false on switch error")
		}
	})
}
