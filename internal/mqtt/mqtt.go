// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/sweeney/rotary-encoder/internal/logic"
)

// Topic is the MQTT topic for encoder events.
const Topic = "rotary/encoder/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "rotary/encoder/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends an encoder event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports broker connectivity and the replay backlog.
type ConnectionStatus interface {
	IsConnected() bool
	Buffered() int
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Encoder EncoderPayload `json:"encoder"`
}

// EncoderPayload contains the encoder event details.
type EncoderPayload struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Direction string `json:"direction"`
	Counter   int64  `json:"counter"`
	Button    string `json:"button"`
}

// FormatPayload creates the JSON payload for an encoder event.
// Each payload carries a fresh ULID so consumers can de-duplicate replays.
func FormatPayload(event logic.Event) ([]byte, error) {
	ms := ulid.Now()
	if !event.Timestamp.IsZero() {
		ms = ulid.Timestamp(event.Timestamp)
	}
	id, err := ulid.New(ms, ulid.DefaultEntropy())
	if err != nil {
		return nil, fmt.Errorf("event id: %w", err)
	}
	payload := Payload{
		Encoder: EncoderPayload{
			ID:        id.String(),
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
			Event:     string(event.Type),
			Direction: event.Direction.String(),
			Counter:   event.Counter,
			Button:    string(event.Button),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT, RECONNECTED) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
