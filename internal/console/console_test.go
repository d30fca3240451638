package console

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/sweeney/rotary-encoder/rotary"
)

func TestFormatLine(t *testing.T) {
	tests := []struct {
		pressed bool
		dir     rotary.Direction
		counter int64
		want    string
	}{
		{false, rotary.Unknown, 0, "button: released | direction: ? | counter: 0"},
		{true, rotary.Clockwise, 12, "button: pressed | direction: CW | counter: 12"},
		{false, rotary.CounterClockwise, -3, "button: released | direction: CCW | counter: -3"},
		{true, rotary.Clockwise, math.MaxInt64, "button: pressed | direction: CW | counter: 9223372036854775807"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatLine(tt.pressed, tt.dir, tt.counter); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriterWriteStatus(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteStatus(false, rotary.Clockwise, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteStatus(true, rotary.CounterClockwise, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "button: released | direction: CW | counter: 1\n" +
		"button: pressed | direction: CCW | counter: 0\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("port gone") }

func TestWriterWriteStatusError(t *testing.T) {
	w := NewWriter(failWriter{})
	if err := w.WriteStatus(false, rotary.Unknown, 0); err == nil {
		t.Error("expected write error")
	}
}

func TestWriterWriteBanner(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(&buf).WriteBanner("hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "hello\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestOpenSerialMissingDevice(t *testing.T) {
	_, err := OpenSerial("/dev/does-not-exist-rotary", 115200)
	if err == nil {
		t.Error("expected error opening a missing device")
	}
}
