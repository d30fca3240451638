// Package logic contains pure business logic for turning encoder readings into events.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import (
	"time"

	"github.com/sweeney/rotary-encoder/rotary"
)

// ButtonState represents the logical state of the encoder's push switch.
type ButtonState string

const (
	ButtonPressed  ButtonState = "PRESSED"
	ButtonReleased ButtonState = "RELEASED"
)

// EventType represents a decoded encoder event.
type EventType string

const (
	EventStepCW  EventType = "STEP_CW"
	EventStepCCW EventType = "STEP_CCW"
	EventPress   EventType = "PRESS"
	EventRelease EventType = "RELEASE"
)

// Event represents an encoder event to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Direction rotary.Direction
	Counter   int64
	Button    ButtonState
}

// Input represents the result of a single decoder poll.
type Input struct {
	Changed   bool // a step was decoded on this poll
	Pressed   bool
	Direction rotary.Direction
	Counter   int64
	Time      time.Time
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	StepCW  int
	StepCCW int
	Press   int
	Release int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counter   int64
	Counts    EventCounts
}
