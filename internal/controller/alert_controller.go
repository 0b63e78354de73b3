package controller

import (
	"io"
	"net/http"

	"github.com/jt828/hello-metrics/internal/service"
	"github.com/jt828/hello-metrics/pkg/observability"
)

type AlertController struct {
	alertService service.AlertService
	log          observability.Logger
	maxBodyBytes int64
}

func NewAlertController(alertService service.AlertService, log observability.Logger, maxBodyBytes int64) *AlertController {
	return &AlertController{alertService: alertService, log: log, maxBodyBytes: maxBodyBytes}
}

// Receive accepts an Alertmanager webhook. It answers 200 with an empty body
// whatever was posted, so the sender never enters its retry path because of
// this receiver. A body over the configured limit is treated like one that
// failed to parse.
func (ctrl *AlertController) Receive(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, ctrl.maxBodyBytes))
	if err != nil {
		ctrl.log.Warn("failed to read alert body", observability.Err(err))
		body = nil
	}

	ctrl.alertService.Receive(r.Context(), body)

	w.WriteHeader(http.StatusOK)
	return nil
}
