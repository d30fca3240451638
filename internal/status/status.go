// Package status provides a thread-safe status tracker for the rotary-encoder daemon.
// It is written by the poll loop and read by HTTP handlers and MQTT system events.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/rotary-encoder/internal/logic"
	"github.com/sweeney/rotary-encoder/rotary"
)

// NetworkInfo contains network state as reported by pi-helper.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	HeartbeatMs int64
	Broker      string // empty = MQTT disabled
	HTTPAddr    string
	Serial      string // empty = stdout
	CounterMin  int64
	CounterMax  int64
}

// Snapshot is a point-in-time view of daemon state, safe to keep after the
// Tracker moves on.
type Snapshot struct {
	Button    logic.ButtonState
	Direction rotary.Direction
	Counter   int64
	Baselined bool
	Counts    logic.EventCounts

	// ReadErrors counts failed polls; LastReadError is the latest message.
	ReadErrors    int
	LastReadError string

	MQTTConnected bool
	MQTTBuffered  int // messages waiting for the broker

	Network   *NetworkInfo
	Config    Config
	StartTime time.Time
	Now       time.Time
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker is written by the poll loop and read by HTTP handlers and
// system events.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{snap: Snapshot{StartTime: startTime, Config: cfg}}
}

func (t *Tracker) modify(fn func(s *Snapshot)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.snap)
}

// Update records the detector's view after a successful poll.
func (t *Tracker) Update(button logic.ButtonState, dir rotary.Direction, counter int64, baselined bool, counts logic.EventCounts) {
	t.modify(func(s *Snapshot) {
		s.Button, s.Direction, s.Counter = button, dir, counter
		s.Baselined = baselined
		s.Counts = counts
	})
}

// ReadFailed counts a failed poll.
func (t *Tracker) ReadFailed(err error) {
	t.modify(func(s *Snapshot) {
		s.ReadErrors++
		s.LastReadError = err.Error()
	})
}

// SetMQTT records broker connectivity and the replay backlog.
func (t *Tracker) SetMQTT(connected bool, buffered int) {
	t.modify(func(s *Snapshot) {
		s.MQTTConnected = connected
		s.MQTTBuffered = buffered
	})
}

// SetNetwork replaces the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.modify(func(s *Snapshot) { s.Network = info })
}

// Snapshot returns a copy of the current state, stamped with time.Now.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
