package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/ups-trap-monitor/internal/catalog"
	"github.com/sweeney/ups-trap-monitor/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"utc": func(t time.Time) string {
		return t.UTC().Format("2006-01-02T15:04:05Z")
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>UPS Trap Monitor</title>
<style>
body { font-family: monospace; max-width: 700px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.critical { color: red; font-weight: bold; }
.warning { color: orange; font-weight: bold; }
.info { color: #06c; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
button { font-family: monospace; padding: 4px 12px; margin-right: 8px; }
</style>
</head>
<body>
<h1>UPS Trap Monitor</h1>

<h2>Active Alarms</h2>
{{if .Alarms}}
<table>
<tr><th>Alarm</th><td>Severity</td><td>First seen</td><td>Last seen</td></tr>
{{range .Alarms}}<tr><th>{{.Identifier}}</th><td class="{{.Severity}}">{{.Severity}}</td><td>{{utc .FirstSeen}}</td><td>{{utc .LastSeen}}</td></tr>
{{end}}</table>
{{else}}
<p class="off">none</p>
{{end}}

<h2>Panel</h2>
<table>
<tr><th>Buzzer</th><td class="{{if .Target.Buzzer}}on{{else}}off{{end}}">{{if .Target.Buzzer}}SOUNDING{{else}}silent{{end}}</td></tr>
<tr><th>Muted</th><td class="{{if .Muted}}warning{{else}}off{{end}}">{{if .Muted}}yes{{else}}no{{end}}</td></tr>
<tr><th>Critical LED</th><td class="{{if index .Target.Leds .SevCritical}}on{{else}}off{{end}}">{{if index .Target.Leds .SevCritical}}lit{{else}}dark{{end}}</td></tr>
<tr><th>Warning LED</th><td class="{{if index .Target.Leds .SevWarning}}on{{else}}off{{end}}">{{if index .Target.Leds .SevWarning}}lit{{else}}dark{{end}}</td></tr>
<tr><th>Info LED</th><td class="{{if index .Target.Leds .SevInfo}}on{{else}}off{{end}}">{{if index .Target.Leds .SevInfo}}lit{{else}}dark{{end}}</td></tr>
</table>

<form method="POST" action="/mute" style="display:inline"><button>{{if .Muted}}Unmute{{else}}Mute{{end}}</button></form>
<form method="POST" action="/alarms/clear" style="display:inline"><button>Clear alarms</button></form>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
<tr><th>Trap listener</th><td>{{.Config.ListenAddr}}</td></tr>
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Triggers</th><td>{{.Counts.Triggers}}</td></tr>
<tr><th>Resumptions</th><td>{{.Counts.Resumptions}}</td></tr>
<tr><th>State events</th><td>{{.Counts.States}}</td></tr>
<tr><th>Unknown traps</th><td>{{.Counts.Unknown}}</td></tr>
<tr><th>Emails sent</th><td>{{.Counts.EmailsSent}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{utc .StartTime}}</td></tr>
<tr><th>Email cooldown</th><td>{{.Config.CooldownSeconds}}s</td></tr>
<tr><th>Database</th><td>{{.Config.DBPath}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but the template needs a Duration
	// field, and map lookups need the severity keys as values.
	data := struct {
		status.Snapshot
		Uptime      time.Duration
		SevCritical catalog.Severity
		SevWarning  catalog.Severity
		SevInfo     catalog.Severity
	}{
		Snapshot:    snap,
		Uptime:      snap.Uptime(),
		SevCritical: catalog.SeverityCritical,
		SevWarning:  catalog.SeverityWarning,
		SevInfo:     catalog.SeverityInfo,
	}
	indexTmpl.Execute(w, data)
}
