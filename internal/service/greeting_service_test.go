package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jt828/hello-metrics/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestGreetingService_Greet(t *testing.T) {
	t.Run("returns the greeting after the delay", func(t *testing.T) {
		svc := service.NewGreetingService(service.GreetingDelay)

		start := time.Now()
		greeting := svc.Greet(context.Background())

		assert.Equal(t, "Hello World", greeting.Message)
		assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("cancelled context does not cut the delay short", func(t *testing.T) {
		svc := service.NewGreetingService(50 * time.Millisecond)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		svc.Greet(ctx)

		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})
}
