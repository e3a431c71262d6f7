package assistant

import (
	"context"
	"log/slog"

	"github.com/nfrund/askby/internal/pubsub"
)

// QuestionSubscriber records every submitted question.
type QuestionSubscriber struct {
	subscriber pubsub.Subscriber
	metrics    *Metrics
}

// NewQuestionSubscriber creates a subscriber backed by s.
func NewQuestionSubscriber(s pubsub.Subscriber, m *Metrics) *QuestionSubscriber {
	return &QuestionSubscriber{subscriber: s, metrics: m}
}

// Start subscribes to QuestionSubmittedEvent. Delivery runs in the
// background until ctx is canceled.
func (qs *QuestionSubscriber) Start(ctx context.Context) error {
	return pubsub.Subscribe(ctx, qs.subscriber, QuestionSubmittedEvent, qs.handle)
}

func (qs *QuestionSubscriber) handle(ctx context.Context, q QuestionSubmitted, msg pubsub.Message) error {
	qs.metrics.questionSubmitted(q.Source)
	slog.Info("Question submitted",
		"source", q.Source,
		"example", q.Example,
		"request_id", msg.Metadata["request_id"],
	)
	return nil
}
