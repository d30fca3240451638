package main

import (
	"log"

	"github.com/sweeney/rotary-encoder/internal/gpio"
)

// indicator drives the optional LED from the button state: lit while the
// switch is held. It writes on every tick so a line that was reset
// externally is corrected on the next poll.
type indicator struct {
	led    gpio.Output
	failed bool
}

func newIndicator(led gpio.Output) *indicator {
	return &indicator{led: led}
}

func (i *indicator) set(on bool) {
	if i.led == nil {
		return
	}
	v := 0
	if on {
		v = 1
	}
	err := i.led.SetValue(v)
	switch {
	case err != nil && !i.failed:
		log.Printf("led: %v", err)
	case err == nil && i.failed:
		log.Printf("led: recovered")
	}
	i.failed = err != nil
}
