package mqtt

import (
	"github.com/sweeney/rotary-encoder/internal/logic"
)

// FakePublisher is an in-memory Publisher and ConnectionStatus for tests.
// Payloads are formatted exactly as RealPublisher would send them.
type FakePublisher struct {
	Events         []logic.Event
	Payloads       [][]byte
	SystemEvents   []SystemEvent
	SystemPayloads [][]byte

	// Injected failures. A failed publish records nothing.
	PublishError       error
	PublishSystemError error

	// Connected and Pending are reported by IsConnected and Buffered.
	Connected bool
	Pending   int

	Closed bool
}

// NewFakePublisher returns an empty, disconnected FakePublisher.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) Publish(event logic.Event) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	payload, err := FormatPayload(event)
	if err != nil {
		return err
	}
	f.Events = append(f.Events, event)
	f.Payloads = append(f.Payloads, payload)
	return nil
}

func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemEvents = append(f.SystemEvents, event)
	f.SystemPayloads = append(f.SystemPayloads, payload)
	return nil
}

func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

func (f *FakePublisher) IsConnected() bool { return f.Connected }

func (f *FakePublisher) Buffered() int { return f.Pending }

// Reset drops everything recorded and injected.
func (f *FakePublisher) Reset() {
	*f = FakePublisher{}
}
