package model

import "encoding/json"

const UnknownReceiver = "unknown"

// AlertEvent is what a single Alertmanager webhook call is reduced to.
// Alerts is nil when the payload carried no alerts array. The label sets are
// kept as the raw JSON the sender posted.
type AlertEvent struct {
	Receiver     string
	Alerts       *int
	GroupLabels  json.RawMessage
	CommonLabels json.RawMessage
}
