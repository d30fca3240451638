package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Button        string       `json:"button"`
	Direction     string       `json:"direction"`
	Counter       int64        `json:"counter"`
	Ready         bool         `json:"ready"`
	ReadErrors    int          `json:"read_errors"`
	LastReadError string       `json:"last_read_error,omitempty"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"event_counts"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Buffered  int    `json:"buffered"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	StepCW  int `json:"step_cw"`
	StepCCW int `json:"step_ccw"`
	Press   int `json:"press"`
	Release int `json:"release"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker,omitempty"`
	HTTPAddr    string `json:"http_addr"`
	Serial      string `json:"serial,omitempty"`
	CounterMin  int64  `json:"counter_min"`
	CounterMax  int64  `json:"counter_max"`
}

func buildInner(snap Snapshot) StatusInner {
	button := string(snap.Button)
	if button == "" {
		button = "UNKNOWN"
	}

	inner := StatusInner{
		Button:        button,
		Direction:     snap.Direction.String(),
		Counter:       snap.Counter,
		Ready:         snap.Baselined,
		ReadErrors:    snap.ReadErrors,
		LastReadError: snap.LastReadError,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Buffered: snap.MQTTBuffered, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			StepCW:  snap.Counts.StepCW,
			StepCCW: snap.Counts.StepCCW,
			Press:   snap.Counts.Press,
			Release: snap.Counts.Release,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
			Serial:      snap.Config.Serial,
			CounterMin:  snap.Config.CounterMin,
			CounterMax:  snap.Config.CounterMax,
		},
	}
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
