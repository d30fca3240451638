package main

import (
	"fmt"

	"github.com/sweeney/rotary-encoder/internal/gpio"
	"github.com/sweeney/rotary-encoder/rotary"
)

// poller is what runLoop needs from an encoder, with or without a switch.
type poller interface {
	Poll() (changed, pressed bool, err error)
	Direction() rotary.Direction
	Counter() int64
}

type buttonedPoller struct {
	d *rotary.ButtonedDecoder[int64]
}

func (p buttonedPoller) Poll() (bool, bool, error) {
	return p.d.Poll()
}

func (p buttonedPoller) Direction() rotary.Direction {
	return p.d.Decoder().Direction()
}

func (p buttonedPoller) Counter() int64 {
	return p.d.Decoder().Counter()
}

// plainPoller reports the switch as permanently released.
type plainPoller struct {
	d *rotary.Decoder[int64]
}

func (p plainPoller) Poll() (bool, bool, error) {
	changed, err := p.d.Poll()
	return changed, false, err
}

func (p plainPoller) Direction() rotary.Direction {
	return p.d.Direction()
}

func (p plainPoller) Counter() int64 {
	return p.d.Counter()
}

// newPoller builds the decoder for lines. The initial clock level is read
// here, so a failing line surfaces before the loop starts.
func newPoller(lines *gpio.Lines, counter int64, lim rotary.Limits[int64]) (poller, error) {
	if lines.SW == nil {
		d, err := rotary.NewBounded(lines.CLK, lines.DT, counter, lim)
		if err != nil {
			return nil, fmt.Errorf("init decoder: %w", err)
		}
		return plainPoller{d: d}, nil
	}
	d, err := rotary.NewButtonedBounded(lines.SW, lines.CLK, lines.DT, counter, lim)
	if err != nil {
		return nil, fmt.Errorf("init decoder: %w", err)
	}
	return buttonedPoller{d: d}, nil
}
