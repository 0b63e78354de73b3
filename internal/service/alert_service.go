package service

import (
	"context"

	"github.com/jt828/hello-metrics/internal/constant"
	"github.com/jt828/hello-metrics/pkg/model"
	"github.com/jt828/hello-metrics/pkg/observability"
)

type AlertService interface {
	// Receive handles one webhook body. It never fails: malformed input is
	// reduced to an event with default fields.
	Receive(ctx context.Context, body []byte) model.AlertEvent
}

type alertService struct {
	notifications observability.Counter
	events        observability.Logger
	log           observability.Logger
}

// NewAlertService counts notifications on notifications and writes one line
// per event to events. log receives operational messages only.
func NewAlertService(notifications observability.Counter, events observability.Logger, log observability.Logger) AlertService {
	return &alertService{notifications: notifications, events: events, log: log}
}

func (s *alertService) Receive(_ context.Context, body []byte) model.AlertEvent {
	kind, fields := ParsePayload(body)
	event := EventFromPayload(kind, fields)

	if kind != PayloadObject {
		s.log.Debug("alert payload is not a JSON object", observability.String("kind", kind.String()))
	}

	if err := s.notifications.Inc(1, observability.Label{Key: constant.LabelReceiver, Value: event.Receiver}); err != nil {
		s.log.Warn("failed to count alert notification", observability.Err(err))
	}

	s.events.Info("",
		observability.String("receiver", event.Receiver),
		observability.Any("alerts", event.Alerts),
		observability.Any("groupLabels", event.GroupLabels),
		observability.Any("commonLabels", event.CommonLabels),
	)

	return event
}
