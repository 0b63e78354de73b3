package controller

import (
	"net/http"

	"github.com/jt828/hello-metrics/internal/service"
)

type HelloController struct {
	greetingService service.GreetingService
}

func NewHelloController(greetingService service.GreetingService) *HelloController {
	return &HelloController{greetingService: greetingService}
}

func (ctrl *HelloController) Hello(w http.ResponseWriter, r *http.Request) error {
	greeting := ctrl.greetingService.Greet(r.Context())
	writeJSON(w, http.StatusOK, greeting)
	return nil
}
