package controller

import (
	"net/http"

	"github.com/jt828/hello-metrics/pkg/observability"
)

// ExpositionContentType is the media type of the Prometheus text format.
const ExpositionContentType = "text/plain; version=0.0.4; charset=utf-8"

type MetricsController struct {
	meter observability.Meter
}

func NewMetricsController(meter observability.Meter) *MetricsController {
	return &MetricsController{meter: meter}
}

func (ctrl *MetricsController) Export(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", ExpositionContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(ctrl.meter.Export())
	return nil
}
