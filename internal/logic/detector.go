package logic

import (
	"time"

	"github.com/sweeney/rotary-encoder/rotary"
)

// Detector turns decoder readings into step and button events.
type Detector struct {
	button        ButtonState
	baselined     bool
	direction     rotary.Direction
	counter       int64
	startTime     time.Time
	eventCounts   EventCounts
	lastHeartbeat time.Time
}

// NewDetector creates a new event detector.
// The startTime is used for calculating uptime in heartbeat events.
func NewDetector(startTime time.Time) *Detector {
	return &Detector{
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Process takes a poll result and returns any events that should be emitted.
// The first sample only establishes the button baseline; steps are reported
// from the first sample on. A step is ordered before a button change seen on
// the same poll.
func (d *Detector) Process(input Input) []Event {
	d.direction = input.Direction
	d.counter = input.Counter

	newButton := boolToButton(input.Pressed)

	var events []Event

	if input.Changed {
		events = append(events, Event{
			Timestamp: input.Time,
			Type:      stepEventType(input.Direction),
			Direction: input.Direction,
			Counter:   input.Counter,
			Button:    newButton,
		})
	}

	if d.baselined && newButton != d.button {
		events = append(events, Event{
			Timestamp: input.Time,
			Type:      buttonEventType(newButton),
			Direction: input.Direction,
			Counter:   input.Counter,
			Button:    newButton,
		})
	}
	d.button = newButton
	d.baselined = true

	// Count events
	for _, e := range events {
		switch e.Type {
		case EventStepCW:
			d.eventCounts.StepCW++
		case EventStepCCW:
			d.eventCounts.StepCCW++
		case EventPress:
			d.eventCounts.Press++
		case EventRelease:
			d.eventCounts.Release++
		}
	}

	return events
}

func boolToButton(pressed bool) ButtonState {
	if pressed {
		return ButtonPressed
	}
	return ButtonReleased
}

func stepEventType(dir rotary.Direction) EventType {
	if dir == rotary.CounterClockwise {
		return EventStepCCW
	}
	return EventStepCW
}

func buttonEventType(b ButtonState) EventType {
	if b == ButtonPressed {
		return EventPress
	}
	return EventRelease
}

// IsBaselined returns whether the detector has seen its first sample.
func (d *Detector) IsBaselined() bool {
	return d.baselined
}

// CurrentState returns the latest button state, direction and counter.
func (d *Detector) CurrentState() (button ButtonState, dir rotary.Direction, counter int64) {
	return d.button, d.direction, d.counter
}

// EventCountsSnapshot returns a copy of the event counts.
func (d *Detector) EventCountsSnapshot() EventCounts {
	return d.eventCounts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if not yet baselined, if the
// interval has not elapsed, or if interval is <= 0 (disabled).
func (d *Detector) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if !d.baselined {
		return nil
	}

	if now.Sub(d.lastHeartbeat) < interval {
		return nil
	}

	d.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(d.startTime),
		Counter:   d.counter,
		Counts:    d.eventCounts,
	}
}
