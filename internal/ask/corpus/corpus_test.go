package corpus

import (
	"context"
	"strings"
	"testing"

	"github.com/nfrund/askby/internal/ask"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// topicEmbedder places text on three axes by the topics it mentions.
type topicEmbedder struct {
	calls int
}

func (e *topicEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	e.calls++
	vec := make([]float64, 3)
	for i, topic := range []string{"核心價值", "負責人", "宏碁"} {
		if strings.Contains(text, topic) {
			vec[i] = 1
		}
	}
	return vec, nil
}

type stubCompleter struct{}

func (stubCompleter) Complete(ctx context.Context, messages []ask.Message, temperature float64, maxTokens int) (string, error) {
	return "ok", nil
}

func newTestCorpus(t *testing.T, opts ...Option) *FileSearcher {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/kb/company/profile.txt":  "展碁國際是宏碁集團關係企業。資本額新台幣八億元。",
		"/kb/company/values.txt":   "打造互利共好的平台是展碁的核心價值。市場溝通是核心能力。",
		"/kb/people/leaders.txt":   "展碁國際的負責人是董事長。",
		"/kb/readme.txt":           "General notes about the knowledge base.",
		"/kb/company/ignored.json": `{"core": "核心價值"}`,
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	s, err := Load(context.Background(), fs, "/kb", opts...)
	require.NoError(t, err)
	return s
}

func TestLoad(t *testing.T) {
	s := newTestCorpus(t)
	assert.Equal(t, 4, s.Len())
}

func TestLoad_MissingRoot(t *testing.T) {
	_, err := Load(context.Background(), afero.NewMemMapFs(), "/nope")
	assert.Error(t, err)
}

func TestSearch_RanksByTermHits(t *testing.T) {
	s := newTestCorpus(t)

	hits, err := s.Search(context.Background(), ask.Query{Text: "展碁國際的核心價值?", Top: 3})
	require.NoError(t, err)
	require.NotEmpty(t, hits)

	assert.Equal(t, "values.txt", hits[0].SourcePage)
	assert.Equal(t, "company", hits[0].Category)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestSearch_TopAndFilter(t *testing.T) {
	s := newTestCorpus(t)

	hits, err := s.Search(context.Background(), ask.Query{Text: "展碁", Top: 1})
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = s.Search(context.Background(), ask.Query{Text: "展碁", Filter: "category ne 'company'"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "leaders.txt", hits[0].SourcePage)
}

func TestSearch_Captions(t *testing.T) {
	s := newTestCorpus(t)

	hits, err := s.Search(context.Background(), ask.Query{Text: "核心價值", Captions: true})
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, []string{"打造互利共好的平台是展碁的核心價值", "市場溝通是核心能力"}, hits[0].Captions)
}

func TestSearch_NormalizesWidth(t *testing.T) {
	s := newTestCorpus(t)

	// Full-width latin letters fold to their ASCII form.
	hits, err := s.Search(context.Background(), ask.Query{Text: "ＫＮＯＷＬＥＤＧＥ"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "readme.txt", hits[0].SourcePage)
	assert.Equal(t, "", hits[0].Category)
}

func TestSearch_VectorWithoutEmbeddingsReturnsNothing(t *testing.T) {
	s := newTestCorpus(t)

	hits, err := s.Search(context.Background(), ask.Query{Vector: []float64{1}})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestLoad_EmbedsDocuments(t *testing.T) {
	e := &topicEmbedder{}
	s := newTestCorpus(t, WithEmbedder(e))

	assert.True(t, s.SupportsVectors())
	assert.Equal(t, 4, e.calls)
	assert.False(t, newTestCorpus(t).SupportsVectors())
}

func TestSearch_VectorOnly(t *testing.T) {
	s := newTestCorpus(t, WithEmbedder(&topicEmbedder{}))

	hits, err := s.Search(context.Background(), ask.Query{Vector: []float64{0, 1, 0}, Top: 3})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "leaders.txt", hits[0].SourcePage)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
}

func TestSearch_HybridMergesScores(t *testing.T) {
	s := newTestCorpus(t, WithEmbedder(&topicEmbedder{}))

	hits, err := s.Search(context.Background(), ask.Query{
		Text:   "展碁國際的核心價值?",
		Vector: []float64{1, 0, 0},
		Top:    3,
	})
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "values.txt", hits[0].SourcePage)
	// Best keyword match scales to 1, plus a cosine of 1.
	assert.InDelta(t, 2.0, hits[0].Score, 1e-9)
	assert.Less(t, hits[1].Score, 1.0)
}

func TestRetrieveThenRead_VectorModes(t *testing.T) {
	e := &topicEmbedder{}
	s := newTestCorpus(t, WithEmbedder(e))
	r := ask.NewRetrieveThenRead(s, stubCompleter{}, ask.WithEmbedder(e))

	ans, err := r.Run(context.Background(), "展碁國際的核心價值?", ask.Overrides{RetrievalMode: ask.ModeVectors})
	require.NoError(t, err)
	require.Len(t, ans.DataPoints, 1)
	assert.True(t, strings.HasPrefix(ans.DataPoints[0], "values.txt: "))

	ans, err = r.Run(context.Background(), "展碁國際的核心價值?", ask.Overrides{RetrievalMode: ask.ModeHybrid})
	require.NoError(t, err)
	require.Len(t, ans.DataPoints, 3)
	assert.True(t, strings.HasPrefix(ans.DataPoints[0], "values.txt: "))
}

func TestRetrieveThenRead_VectorsWithoutEmbeddings(t *testing.T) {
	e := &topicEmbedder{}
	r := ask.NewRetrieveThenRead(newTestCorpus(t), stubCompleter{}, ask.WithEmbedder(e))

	_, err := r.Run(context.Background(), "展碁國際的核心價值?", ask.Overrides{RetrievalMode: ask.ModeVectors})
	assert.ErrorIs(t, err, ask.ErrVectorsUnavailable)
	assert.Zero(t, e.calls)
}

func TestParseFilter(t *testing.T) {
	got, err := parseFilter("category ne 'O''Brien'")
	require.NoError(t, err)
	assert.Equal(t, "O'Brien", got)

	_, err = parseFilter("sourcepage eq 'x'")
	assert.ErrorIs(t, err, ErrUnsupportedFilter)
}

func TestQueryTerms(t *testing.T) {
	assert.Equal(t, []string{"核心", "心價", "價值"}, queryTerms("核心價值?"))
	assert.Equal(t, []string{"hello", "world"}, queryTerms("Hello, world! a"))
}
