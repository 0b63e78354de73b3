package service

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/jt828/hello-metrics/pkg/model"
)

type PayloadKind int

const (
	// PayloadInvalid is a body that is not JSON at all, including an empty one.
	PayloadInvalid PayloadKind = iota
	// PayloadNonObject is valid JSON whose top level is not an object.
	PayloadNonObject
	PayloadObject
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadObject:
		return "object"
	case PayloadNonObject:
		return "non_object"
	default:
		return "invalid"
	}
}

// ParsePayload classifies a webhook body. Fields is set only for
// PayloadObject and holds each top-level value as raw JSON.
func ParsePayload(body []byte) (PayloadKind, map[string]json.RawMessage) {
	if !json.Valid(body) {
		return PayloadInvalid, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return PayloadNonObject, nil
	}
	return PayloadObject, fields
}

// EventFromPayload derives the alert event from a classified payload.
// Anything other than an object yields the defaults.
func EventFromPayload(kind PayloadKind, fields map[string]json.RawMessage) model.AlertEvent {
	event := model.AlertEvent{Receiver: model.UnknownReceiver}
	if kind != PayloadObject {
		return event
	}

	if receiver, ok := receiverText(fields["receiver"]); ok {
		event.Receiver = receiver
	}

	if raw, ok := fields["alerts"]; ok {
		var alerts []json.RawMessage
		if err := json.Unmarshal(raw, &alerts); err == nil && alerts != nil {
			n := len(alerts)
			event.Alerts = &n
		}
	}

	event.GroupLabels = fields["groupLabels"]
	event.CommonLabels = fields["commonLabels"]
	return event
}

// receiverText renders a receiver value as a label value. Strings are used
// as is, other JSON values by their compact text. Missing and null values
// are not usable. Compact copies raw bytes, so invalid UTF-8 inside a
// non-string value is replaced to keep the result a legal label value.
func receiverText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return "", false
	}
	return strings.ToValidUTF8(compact.String(), "\uFFFD"), true
}
