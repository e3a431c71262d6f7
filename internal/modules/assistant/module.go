package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/askby/internal/ask"
	"github.com/nfrund/askby/internal/middleware"
	"github.com/nfrund/askby/internal/module"
	"github.com/nfrund/askby/internal/pubsub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"
)

// Module serves the landing page and the ask endpoints.
type Module struct {
	module.BaseModule
	rateLimit int
}

// New creates the module. rateLimit caps questions per client per minute.
func New(rateLimit int) *Module {
	return &Module{rateLimit: rateLimit}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "assistant"
}

// Register provides the module metrics.
func (m *Module) Register(i do.Injector) error {
	do.Provide(i, func(i do.Injector) (*Metrics, error) {
		reg, err := do.Invoke[prometheus.Registerer](i)
		if err != nil {
			return nil, err
		}
		return NewMetrics(reg)
	})
	return nil
}

// Boot starts the question subscriber and mounts the routes.
func (m *Module) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	metrics, err := do.Invoke[*Metrics](i)
	if err != nil {
		return fmt.Errorf("assistant metrics: %w", err)
	}
	approach, err := do.Invoke[ask.Approach](i)
	if err != nil {
		return fmt.Errorf("assistant approach: %w", err)
	}
	publisher := do.MustInvoke[pubsub.Publisher](i)
	subscriber := do.MustInvoke[pubsub.Subscriber](i)

	if err := NewQuestionSubscriber(subscriber, metrics).Start(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", QuestionSubmittedEvent.Name(), err)
	}

	slog.Info("Booting assistant module: setting up routes...")
	handler := NewHandler(approach, publisher, metrics)

	g.GET("/", handler.HomeGet)
	askGroup := g.Group("/ask", middleware.RateLimiter(m.rateLimit))
	askGroup.POST("", handler.AskPost)
	askGroup.POST("/examples/:index", handler.ExamplePost)
	return nil
}

// Shutdown is called on application termination.
func (m *Module) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down assistant module...")
	return nil
}
