package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"strings"
	"time"

	"github.com/sweeney/rotary-encoder/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime":    formatUptime,
	"orUnknown": orUnknown,
}).Parse(indexHTML))

// formatUptime renders d as e.g. "2d 3h 4m 5s", omitting leading zero units.
func formatUptime(d time.Duration) string {
	secs := int64(d / time.Second)
	units := []struct {
		n      int64
		suffix string
	}{
		{secs / 86400, "d"},
		{secs / 3600 % 24, "h"},
		{secs / 60 % 60, "m"},
	}
	var b strings.Builder
	for _, u := range units {
		if u.n > 0 || b.Len() > 0 {
			fmt.Fprintf(&b, "%d%s ", u.n, u.suffix)
		}
	}
	fmt.Fprintf(&b, "%ds", secs%60)
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "UNKNOWN"
	}
	return s
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="2">
<title>Rotary Encoder</title>
<style>
body { font: 14px/1.4 ui-monospace, monospace; max-width: 36em; margin: 1.5em auto; padding: 0 1em; color: #222; }
h1 { font-size: 1.3em; margin-bottom: 0.2em; }
h2 { font-size: 1em; text-transform: uppercase; color: #666; margin: 1.4em 0 0.3em; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 3px 6px; border-bottom: 1px solid #e4e4e4; }
th { width: 35%; font-weight: normal; color: #555; }
#counter { font-size: 1.6em; }
.pressed, .connected { color: #1a7f37; font-weight: bold; }
.released { color: #888; }
.unknown { color: #b35900; }
.disconnected { color: #c62828; }
</style>
</head>
<body>
<h1>Rotary Encoder</h1>

<h2>State</h2>
<table>
<tr><th>Counter</th><td id="counter">{{.Counter}}</td></tr>
<tr><th>Direction</th><td id="direction">{{.Direction}}</td></tr>
<tr><th>Button</th><td id="button" class="{{if eq (printf "%s" .Button) "PRESSED"}}pressed{{else if eq (printf "%s" .Button) "RELEASED"}}released{{else}}unknown{{end}}">{{orUnknown (printf "%s" .Button)}}</td></tr>
<tr><th>Range</th><td>{{.Config.CounterMin}} .. {{.Config.CounterMax}}</td></tr>
<tr><th>Ready</th><td>{{if .Baselined}}yes{{else}}no{{end}}</td></tr>
{{if .ReadErrors}}<tr><th>Read errors</th><td id="read-errors" class="disconnected">{{.ReadErrors}} ({{.LastReadError}})</td></tr>{{end}}
</table>

<h2>Connectivity</h2>
<table>
{{if .Config.Broker}}<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}{{if .MQTTBuffered}}, {{.MQTTBuffered}} queued{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>{{else}}<tr><th>MQTT</th><td>disabled</td></tr>{{end}}
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}}, {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Steps CW</th><td>{{.Counts.StepCW}}</td></tr>
<tr><th>Steps CCW</th><td>{{.Counts.StepCCW}}</td></tr>
<tr><th>Presses</th><td>{{.Counts.Press}}</td></tr>
<tr><th>Releases</th><td>{{.Counts.Release}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>Output</th><td>{{if .Config.Serial}}{{.Config.Serial}}{{else}}stdout{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("web: render index: %v", err)
	}
}
