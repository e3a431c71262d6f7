package assistant

import "github.com/nfrund/askby/internal/pubsub"

// Question sources.
const (
	SourceExample = "example"
	SourceForm    = "form"
)

// QuestionSubmitted is published whenever a question reaches the ask pipeline.
type QuestionSubmitted struct {
	Question string `json:"question"`
	Source   string `json:"source"`
	// Example is the index of the picked example, or -1 for typed questions.
	Example int `json:"example"`
}

// QuestionSubmittedEvent is the topic carrying QuestionSubmitted.
var QuestionSubmittedEvent = pubsub.NewEvent[QuestionSubmitted]("ask.question.submitted")
