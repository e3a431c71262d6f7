// Package ask answers questions against the company knowledge base using a
// retrieve-then-read approach: search for sources, build a grounded prompt,
// and ask a chat model to answer from those sources only.
package ask

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrEmptyQuestion is returned when the question is blank.
	ErrEmptyQuestion = errors.New("ask: question is empty")
	// ErrVectorsUnavailable is returned for vectors-only retrieval when there
	// is no embedder or the searcher cannot rank by vector.
	ErrVectorsUnavailable = errors.New("ask: vector retrieval is not configured")
)

// Retrieval modes.
const (
	ModeText    = "text"
	ModeVectors = "vectors"
	ModeHybrid  = "hybrid"
)

const (
	defaultTop         = 3
	defaultTemperature = 0.3
	maxTokens          = 1024
)

// Overrides tweak a single ask request.
type Overrides struct {
	RetrievalMode    string   `json:"retrieval_mode" form:"retrieval_mode" validate:"omitempty,oneof=text vectors hybrid"`
	SemanticRanker   bool     `json:"semantic_ranker" form:"semantic_ranker"`
	SemanticCaptions bool     `json:"semantic_captions" form:"semantic_captions"`
	Top              int      `json:"top" form:"top" validate:"omitempty,min=1,max=50"`
	ExcludeCategory  string   `json:"exclude_category" form:"exclude_category" validate:"max=100"`
	PromptTemplate   string   `json:"prompt_template" form:"prompt_template" validate:"max=4000"`
	Temperature      *float64 `json:"temperature" form:"temperature" validate:"omitempty,min=0,max=2"`
}

var validate = validator.New()

// Validate checks the overrides against their field constraints.
func (o Overrides) Validate() error {
	return validate.Struct(o)
}

func (o Overrides) hasText() bool {
	return o.RetrievalMode == "" || o.RetrievalMode == ModeText || o.RetrievalMode == ModeHybrid
}

func (o Overrides) hasVectors() bool {
	return o.RetrievalMode == "" || o.RetrievalMode == ModeVectors || o.RetrievalMode == ModeHybrid
}

func (o Overrides) top() int {
	if o.Top <= 0 {
		return defaultTop
	}
	return o.Top
}

func (o Overrides) temperature() float64 {
	if o.Temperature == nil || *o.Temperature == 0 {
		return defaultTemperature
	}
	return *o.Temperature
}

// filter builds the search filter that excludes a category, quoting it the
// way the search service expects.
func (o Overrides) filter() string {
	if o.ExcludeCategory == "" {
		return ""
	}
	return "category ne '" + strings.ReplaceAll(o.ExcludeCategory, "'", "''") + "'"
}

// Answer is the result of one ask.
type Answer struct {
	Question   string   `json:"question"`
	DataPoints []string `json:"data_points"`
	Answer     string   `json:"answer"`
	Thoughts   string   `json:"thoughts"`
}

// Approach answers a single question.
type Approach interface {
	Run(ctx context.Context, question string, o Overrides) (*Answer, error)
}

// Query is what the approach sends to a Searcher.
type Query struct {
	Text     string
	Vector   []float64
	Filter   string
	Top      int
	Semantic bool
	Captions bool
}

// Document is one search hit.
type Document struct {
	SourcePage string
	Category   string
	Content    string
	Captions   []string
	Score      float64
}

// Searcher retrieves source documents for a query.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]Document, error)
}

// VectorSupporter is implemented by searchers that may be unable to use the
// query vector. Searchers that do not implement it are assumed to use it.
type VectorSupporter interface {
	SupportsVectors() bool
}

func supportsVectors(s Searcher) bool {
	if vs, ok := s.(VectorSupporter); ok {
		return vs.SupportsVectors()
	}
	return true
}

// Completer produces a chat completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error)
}

// Embedder turns text into a vector for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
