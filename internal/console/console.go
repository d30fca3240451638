// Package console writes human-readable encoder status lines, either to a
// terminal or to a serial port.
package console

import (
	"fmt"
	"io"
	"strconv"

	"github.com/tarm/serial"

	"github.com/sweeney/rotary-encoder/rotary"
)

// FormatLine renders one status line (without the trailing newline):
//
//	button: pressed | direction: CW | counter: 12
func FormatLine(pressed bool, dir rotary.Direction, counter int64) string {
	button := "released"
	if pressed {
		button = "pressed"
	}
	return "button: " + button + " | direction: " + dir.String() + " | counter: " + strconv.FormatInt(counter, 10)
}

// Writer writes status lines to an underlying stream.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteStatus writes a single newline-terminated status line.
func (w *Writer) WriteStatus(pressed bool, dir rotary.Direction, counter int64) error {
	if _, err := io.WriteString(w.w, FormatLine(pressed, dir, counter)+"\n"); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	return nil
}

// WriteBanner writes a free-form line, used once at startup.
func (w *Writer) WriteBanner(msg string) error {
	_, err := fmt.Fprintln(w.w, msg)
	return err
}

// OpenSerial opens a serial device for status output.
func OpenSerial(device string, baud int) (io.WriteCloser, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name: device,
		Baud: baud,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", device, err)
	}
	return port, nil
}
