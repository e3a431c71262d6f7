package assistant

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts questions by source and failed answers.
type Metrics struct {
	questions *prometheus.CounterVec
	failures  prometheus.Counter
}

// NewMetrics registers the assistant metrics with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		questions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "askby_questions_total",
				Help: "Total number of questions submitted, by source.",
			},
			[]string{"source"},
		),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "askby_answer_failures_total",
			Help: "Total number of questions that could not be answered.",
		}),
	}
	for _, c := range []prometheus.Collector{m.questions, m.failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) questionSubmitted(source string) {
	m.questions.WithLabelValues(source).Inc()
}

func (m *Metrics) answerFailed() {
	m.failures.Inc()
}
