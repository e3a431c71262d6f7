package assistant

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/askby/internal/ask"
	"github.com/nfrund/askby/internal/examples"
	"github.com/nfrund/askby/internal/middleware"
	"github.com/nfrund/askby/internal/pubsub"
	"github.com/nfrund/askby/internal/view"
)

// AskRequest is the form posted by the question form.
type AskRequest struct {
	Question         string `form:"question" validate:"required,max=1000"`
	RetrievalMode    string `form:"retrieval_mode"`
	SemanticRanker   bool   `form:"semantic_ranker"`
	SemanticCaptions bool   `form:"semantic_captions"`
	Top              int    `form:"top"`
	ExcludeCategory  string `form:"exclude_category"`
	Temperature      string `form:"temperature" validate:"omitempty,numeric"`
}

// Overrides converts the form fields into ask overrides.
func (r AskRequest) Overrides() ask.Overrides {
	o := ask.Overrides{
		RetrievalMode:    r.RetrievalMode,
		SemanticRanker:   r.SemanticRanker,
		SemanticCaptions: r.SemanticCaptions,
		Top:              r.Top,
		ExcludeCategory:  r.ExcludeCategory,
	}
	if t, err := strconv.ParseFloat(r.Temperature, 64); err == nil {
		o.Temperature = &t
	}
	return o
}

// Handler serves the landing page and turns selections into answers.
type Handler struct {
	approach  ask.Approach
	publisher pubsub.Publisher
	metrics   *Metrics
}

// NewHandler creates a Handler.
func NewHandler(a ask.Approach, p pubsub.Publisher, m *Metrics) *Handler {
	return &Handler{approach: a, publisher: p, metrics: m}
}

func ignoreSelection(string) {}

func newList(onSelect examples.SelectFunc) (*examples.List, error) {
	return examples.NewList(onSelect, examples.WithAction("/ask/examples"), examples.WithTarget(answerTarget))
}

// HomeGet renders the landing page.
func (h *Handler) HomeGet(c echo.Context) error {
	// Rendering never activates an item.
	list, err := newList(ignoreSelection)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "", HomePage(list, view.GetFlashData(c), nil))
}

// ExamplePost activates the example at :index and answers its question.
func (h *Handler) ExamplePost(c echo.Context) error {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid example index").SetInternal(err)
	}

	var question string
	list, err := newList(func(value string) { question = value })
	if err != nil {
		return err
	}
	if err := list.Activate(idx); err != nil {
		if errors.Is(err, examples.ErrNoSuchExample) {
			return echo.NewHTTPError(http.StatusNotFound, "no such example").SetInternal(err)
		}
		return err
	}

	return h.answer(c, question, ask.Overrides{}, SourceExample, idx)
}

// AskPost answers a typed question.
func (h *Handler) AskPost(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request").SetInternal(err)
	}
	req.Question = strings.TrimSpace(req.Question)
	if err := c.Validate(&req); err != nil {
		return h.fail(c, req.Question, "Please enter a question (up to 1000 characters).")
	}
	return h.answer(c, req.Question, req.Overrides(), SourceForm, -1)
}

func (h *Handler) answer(c echo.Context, question string, o ask.Overrides, source string, example int) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	meta := map[string]string{"request_id": c.Response().Header().Get(echo.HeaderXRequestID)}
	event := QuestionSubmitted{Question: question, Source: source, Example: example}
	if err := pubsub.Publish(ctx, h.publisher, QuestionSubmittedEvent, event, meta); err != nil {
		logger.Warn("Failed to publish question event", "error", err)
	}

	ans, err := h.approach.Run(ctx, question, o)
	if err != nil {
		h.metrics.answerFailed()
		logger.Error("Failed to answer question", "source", source, "error", err)
		if errors.Is(err, ask.ErrEmptyQuestion) {
			return h.fail(c, question, "Please enter a question.")
		}
		return h.fail(c, question, "Sorry, the question could not be answered right now.")
	}

	panel := AnswerPanel(ans)
	if isHTMX(c) {
		return c.Render(http.StatusOK, "", panel)
	}
	list, err := newList(ignoreSelection)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "", HomePage(list, view.FlashData{}, panel))
}

// fail reports an error. htmx only swaps successful responses, so fragment
// requests get the error panel with 200; full-page posts are redirected
// home with a flash message.
func (h *Handler) fail(c echo.Context, question, message string) error {
	if isHTMX(c) {
		return c.Render(http.StatusOK, "", ErrorPanel(question, message))
	}
	view.SetFlashError(c, message)
	return c.Redirect(http.StatusSeeOther, "/")
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
