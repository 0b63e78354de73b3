package service

import (
	"context"
	"time"

	"github.com/jt828/hello-metrics/pkg/model"
)

// GreetingDelay is the simulated work done per greeting. It keeps the
// latency histogram populated with realistic values.
const GreetingDelay = 100 * time.Millisecond

const greetingMessage = "Hello World"

type GreetingService interface {
	Greet(ctx context.Context) model.Greeting
}

type greetingService struct {
	delay time.Duration
}

func NewGreetingService(delay time.Duration) GreetingService {
	return &greetingService{delay: delay}
}

// Greet blocks for the configured delay. The wait ignores ctx: a
// disconnecting client does not shorten it.
func (s *greetingService) Greet(_ context.Context) model.Greeting {
	time.Sleep(s.delay)
	return model.Greeting{Message: greetingMessage}
}
