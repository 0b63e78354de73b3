package service_test

import (
	"encoding/json"
	"testing"
	"unicode/utf8"

	"github.com/jt828/hello-metrics/internal/service"
	"github.com/jt828/hello-metrics/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name string
		body string
		want service.PayloadKind
	}{
		{"empty body", "", service.PayloadInvalid},
		{"whitespace only", "  \n", service.PayloadInvalid},
		{"bare word", "not-json", service.PayloadInvalid},
		{"truncated object", `{"receiver":`, service.PayloadInvalid},
		{"json string", `"not-json"`, service.PayloadNonObject},
		{"array", `[]`, service.PayloadNonObject},
		{"number", `42`, service.PayloadNonObject},
		{"null", `null`, service.PayloadNonObject},
		{"empty object", `{}`, service.PayloadObject},
		{"webhook object", `{"receiver":"team-x","alerts":[{},{}]}`, service.PayloadObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, fields := service.ParsePayload([]byte(tt.body))
			assert.Equal(t, tt.want, kind)
			if kind == service.PayloadObject {
				assert.NotNil(t, fields)
			} else {
				assert.Nil(t, fields)
			}
		})
	}
}

func eventFor(t *testing.T, body string) model.AlertEvent {
	t.Helper()
	return service.EventFromPayload(service.ParsePayload([]byte(body)))
}

func TestEventFromPayload(t *testing.T) {
	t.Run("receiver and alert count are extracted", func(t *testing.T) {
		event := eventFor(t, `{"receiver":"team-x","alerts":[{},{}]}`)

		assert.Equal(t, "team-x", event.Receiver)
		require.NotNil(t, event.Alerts)
		assert.Equal(t, 2, *event.Alerts)
		assert.Nil(t, event.GroupLabels)
		assert.Nil(t, event.CommonLabels)
	})

	t.Run("non objects fall back to defaults", func(t *testing.T) {
		for _, body := range []string{"", "not-json", `"not-json"`, `[]`, `[{"receiver":"team-x"}]`, `null`} {
			event := eventFor(t, body)
			assert.Equal(t, model.AlertEvent{Receiver: "unknown"}, event, "body %q", body)
		}
	})

	t.Run("missing alerts field stays absent rather than zero", func(t *testing.T) {
		event := eventFor(t, `{}`)

		assert.Equal(t, "unknown", event.Receiver)
		assert.Nil(t, event.Alerts)
	})

	t.Run("empty alerts array counts as zero", func(t *testing.T) {
		event := eventFor(t, `{"alerts":[]}`)

		require.NotNil(t, event.Alerts)
		assert.Equal(t, 0, *event.Alerts)
	})

	t.Run("alerts that are not an array are absent", func(t *testing.T) {
		for _, body := range []string{`{"alerts":null}`, `{"alerts":{}}`, `{"alerts":"3"}`, `{"alerts":3}`} {
			assert.Nil(t, eventFor(t, body).Alerts, "body %q", body)
		}
	})

	t.Run("non string receivers are rendered as JSON text", func(t *testing.T) {
		assert.Equal(t, "42", eventFor(t, `{"receiver":42}`).Receiver)
		assert.Equal(t, "true", eventFor(t, `{"receiver":true}`).Receiver)
		assert.Equal(t, `{"a":1}`, eventFor(t, `{"receiver":{ "a" : 1 }}`).Receiver)
	})

	t.Run("invalid UTF-8 in a non string receiver is replaced", func(t *testing.T) {
		receiver := eventFor(t, "{\"receiver\":[\"\xff\"]}").Receiver

		assert.True(t, utf8.ValidString(receiver))
		assert.Equal(t, "[\"\uFFFD\"]", receiver)
	})

	t.Run("null receiver is unknown", func(t *testing.T) {
		assert.Equal(t, "unknown", eventFor(t, `{"receiver":null}`).Receiver)
	})

	t.Run("empty string receiver is kept", func(t *testing.T) {
		assert.Equal(t, "", eventFor(t, `{"receiver":""}`).Receiver)
	})

	t.Run("label sets are passed through untouched", func(t *testing.T) {
		event := eventFor(t, `{"groupLabels":{"alertname":"HighLatency"},"commonLabels":["odd"]}`)

		assert.JSONEq(t, `{"alertname":"HighLatency"}`, string(event.GroupLabels))
		assert.Equal(t, json.RawMessage(`["odd"]`), event.CommonLabels)
	})
}

func TestPayloadKind_String(t *testing.T) {
	assert.Equal(t, "invalid", service.PayloadInvalid.String())
	assert.Equal(t, "non_object", service.PayloadNonObject.String())
	assert.Equal(t, "object", service.PayloadObject.String())
}
