//go:build linux

package gpio

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// OpenLines requests the encoder lines from the Linux GPIO character device.
// CLK and DT are plain inputs (encoder boards carry their own pull-ups).
// SW is requested with pull-up so the switch reads low when pressed.
// A negative pinSW leaves the switch unwired. A non-negative pinLED is
// requested as an output, initially low.
func OpenLines(chip string, pinCLK, pinDT, pinSW, pinLED int) (*Lines, error) {
	c, err := gpiocdev.NewChip(chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chip, err)
	}

	var lines []*gpiocdev.Line
	release := func() {
		for _, l := range lines {
			l.Close()
		}
		c.Close()
	}

	clk, err := c.RequestLine(pinCLK, gpiocdev.AsInput)
	if err != nil {
		release()
		return nil, fmt.Errorf("request CLK pin %d: %w", pinCLK, err)
	}
	lines = append(lines, clk)

	dt, err := c.RequestLine(pinDT, gpiocdev.AsInput)
	if err != nil {
		release()
		return nil, fmt.Errorf("request DT pin %d: %w", pinDT, err)
	}
	lines = append(lines, dt)

	l := &Lines{CLK: clk, DT: dt}
	if pinSW >= 0 {
		sw, err := c.RequestLine(pinSW, gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			release()
			return nil, fmt.Errorf("request SW pin %d: %w", pinSW, err)
		}
		lines = append(lines, sw)
		l.SW = sw
	}

	if pinLED >= 0 {
		led, err := c.RequestLine(pinLED, gpiocdev.AsOutput(0))
		if err != nil {
			release()
			return nil, fmt.Errorf("request LED pin %d: %w", pinLED, err)
		}
		lines = append(lines, led)
		l.LED = led
	}

	l.closer = func() error {
		return closeLines(c, lines)
	}
	return l, nil
}

// closeLines returns the lines to plain inputs with bias disabled before
// releasing them, so nothing stays pulled or driven after the daemon exits.
func closeLines(c *gpiocdev.Chip, lines []*gpiocdev.Line) error {
	var errs []error
	for _, l := range lines {
		if err := l.Reconfigure(gpiocdev.AsInput, gpiocdev.WithBiasDisabled); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure line %d: %w", l.Offset(), err))
		}
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line %d: %w", l.Offset(), err))
		}
	}
	if err := c.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close chip: %w", err))
	}
	return errors.Join(errs...)
}
