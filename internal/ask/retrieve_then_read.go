package ask

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// DefaultSystemPrompt grounds the model in the retrieved sources.
const DefaultSystemPrompt = "You are an assistant that answers employee questions about Weblink International Taiwan (展碁國際). " +
	"Address the person asking as 'you', even when they write 'I'. " +
	"Answer only from the sources listed after the question. " +
	"Return tables as HTML tables, never as markdown. " +
	"Every source is a name, a colon and the source text; cite the source name for each fact you use. " +
	"If the sources do not contain the answer, say that you don't know. " +
	"Answer in Traditional Chinese (zh-TW), never in Simplified Chinese."

// The few-shot pair shows the model the expected citation style.
const (
	shotQuestion = `
'What can you tell me about Weblink International Taiwan (展碁國際)?'

Sources:
profile.txt: 公司概況：宏碁集團關係企業，產業類別為電腦及其週邊設備製造業。
history.pdf: 展碁國際成立於1977年，自宏碁科技軟體及週邊部門獨立，成為3C專業通路代理商。
values.pdf: 打造互利共好的平台是展碁的核心價值。
`
	shotAnswer = "展碁國際成立於1977年，自宏碁科技軟體及週邊部門獨立，成為3C專業通路代理商，並且是宏碁集團關係企業。[profile.txt][history.pdf]"
)

// RetrieveThenRead searches first, then asks the chat model to answer using
// only the retrieved sources.
type RetrieveThenRead struct {
	searcher  Searcher
	completer Completer
	embedder  Embedder
	logger    *slog.Logger
}

// RetrieveOption configures a RetrieveThenRead.
type RetrieveOption func(*RetrieveThenRead)

// WithEmbedder enables vector retrieval.
func WithEmbedder(e Embedder) RetrieveOption {
	return func(r *RetrieveThenRead) { r.embedder = e }
}

// WithLogger sets the logger used for per-request diagnostics.
func WithLogger(l *slog.Logger) RetrieveOption {
	return func(r *RetrieveThenRead) { r.logger = l }
}

// NewRetrieveThenRead creates the approach.
func NewRetrieveThenRead(s Searcher, c Completer, opts ...RetrieveOption) *RetrieveThenRead {
	r := &RetrieveThenRead{searcher: s, completer: c, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run implements Approach.
func (r *RetrieveThenRead) Run(ctx context.Context, question string, o Overrides) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("invalid overrides: %w", err)
	}

	q := Query{
		Filter: o.filter(),
		Top:    o.top(),
	}
	if o.hasText() {
		q.Text = question
		q.Semantic = o.SemanticRanker
		q.Captions = o.SemanticCaptions
	}
	useVectors := o.hasVectors() && r.embedder != nil && supportsVectors(r.searcher)
	if o.RetrievalMode == ModeVectors && !useVectors {
		return nil, ErrVectorsUnavailable
	}
	if useVectors {
		vec, err := r.embedder.Embed(ctx, question)
		if err != nil {
			return nil, fmt.Errorf("failed to embed question: %w", err)
		}
		q.Vector = vec
	}

	docs, err := r.searcher.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search sources: %w", err)
	}
	results := formatSources(docs, q.Captions)
	r.logger.Debug("Retrieved sources", "question", question, "count", len(results), "filter", q.Filter)

	system := o.PromptTemplate
	if system == "" {
		system = DefaultSystemPrompt
	}
	mb := NewMessageBuilder(system)
	mb.Append(RoleUser, question+"\nSources:\n "+strings.Join(results, "\n"))
	mb.Append(RoleAssistant, shotAnswer)
	mb.Append(RoleUser, shotQuestion)
	messages := mb.Messages()

	content, err := r.completer.Complete(ctx, messages, o.temperature(), maxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to complete answer: %w", err)
	}

	return &Answer{
		Question:   question,
		DataPoints: results,
		Answer:     content,
		Thoughts:   thoughts(q.Text, messages),
	}, nil
}

func formatSources(docs []Document, captions bool) []string {
	results := make([]string, 0, len(docs))
	for _, d := range docs {
		text := d.Content
		if captions && len(d.Captions) > 0 {
			text = strings.Join(d.Captions, " . ")
		}
		results = append(results, d.SourcePage+": "+noNewlines(text))
	}
	return results
}

func noNewlines(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

func thoughts(queryText string, messages []Message) string {
	parts := make([]string, len(messages))
	for i, m := range messages {
		parts[i] = m.String()
	}
	return "Question:<br>" + queryText + "<br><br>Prompt:<br>" + strings.Join(parts, "\n\n")
}
