// Package corpus provides a Searcher over plain-text documents held in an
// afero filesystem. Each file is one source page; the first directory under
// the root names the document's category. Documents are matched by keyword,
// and by cosine similarity when the corpus is loaded with an embedder.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/nfrund/askby/internal/ask"
	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"
)

// ErrUnsupportedFilter is returned for filters other than a category exclusion.
var ErrUnsupportedFilter = errors.New("corpus: unsupported filter")

const maxCaptions = 3

type document struct {
	sourcePage string
	category   string
	content    string
	normalized string
	vector     []float64
}

// FileSearcher implements ask.Searcher over an in-memory index of text files.
// The index is built once at construction and read-only afterwards.
type FileSearcher struct {
	docs     []document
	embedder ask.Embedder
}

// Option configures Load.
type Option func(*FileSearcher)

// WithEmbedder embeds every document at load time so queries carrying a
// vector can be ranked by similarity.
func WithEmbedder(e ask.Embedder) Option {
	return func(s *FileSearcher) { s.embedder = e }
}

// Load indexes every *.txt file below root.
func Load(ctx context.Context, fsys afero.Fs, root string, opts ...Option) (*FileSearcher, error) {
	s := &FileSearcher{}
	for _, opt := range opts {
		opt(s)
	}
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content := string(data)
		d := document{
			sourcePage: filepath.Base(path),
			category:   categoryOf(rel),
			content:    content,
			normalized: normalize(content),
		}
		if s.embedder != nil {
			if d.vector, err = s.embedder.Embed(ctx, content); err != nil {
				return fmt.Errorf("failed to embed %s: %w", path, err)
			}
		}
		s.docs = append(s.docs, d)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to index corpus at %s: %w", root, err)
	}
	slog.Info("Corpus indexed", "root", root, "documents", len(s.docs), "vectors", s.SupportsVectors())
	return s, nil
}

// Len reports the number of indexed documents.
func (s *FileSearcher) Len() int { return len(s.docs) }

// SupportsVectors reports whether documents were embedded at load time.
func (s *FileSearcher) SupportsVectors() bool { return s.embedder != nil }

func categoryOf(rel string) string {
	dir := filepath.Dir(filepath.ToSlash(rel))
	if dir == "." {
		return ""
	}
	return strings.SplitN(dir, "/", 2)[0]
}

// Search implements ask.Searcher. Keyword hits are counted per term. A query
// vector adds the cosine similarity to each embedded document; in hybrid
// queries the keyword count is scaled to [0,1] first so neither side
// dominates. The semantic ranker flag has no effect.
func (s *FileSearcher) Search(ctx context.Context, q ask.Query) ([]ask.Document, error) {
	excluded, err := parseFilter(q.Filter)
	if err != nil {
		return nil, err
	}
	terms := queryTerms(q.Text)
	useVector := len(q.Vector) > 0 && s.SupportsVectors()
	if len(terms) == 0 && !useVector {
		return nil, nil
	}

	keyword := make([]int, len(s.docs))
	maxKeyword := 0
	for i, d := range s.docs {
		for _, t := range terms {
			keyword[i] += strings.Count(d.normalized, t)
		}
		maxKeyword = max(maxKeyword, keyword[i])
	}

	var hits []ask.Document
	for i, d := range s.docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if excluded != "" && d.category == excluded {
			continue
		}

		var score float64
		matched := false
		if keyword[i] > 0 {
			matched = true
			score = float64(keyword[i])
			if useVector {
				score /= float64(maxKeyword)
			}
		}
		if useVector {
			if sim := cosine(q.Vector, d.vector); sim > 0 {
				matched = true
				score += sim
			}
		}
		if !matched {
			continue
		}

		hit := ask.Document{
			SourcePage: d.sourcePage,
			Category:   d.category,
			Content:    d.content,
			Score:      score,
		}
		if q.Captions {
			hit.Captions = captions(d.content, terms)
		}
		hits = append(hits, hit)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].SourcePage < hits[j].SourcePage
	})
	if q.Top > 0 && len(hits) > q.Top {
		hits = hits[:q.Top]
	}
	return hits, nil
}

// cosine returns 0 for vectors of different length or zero magnitude.
func cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// parseFilter accepts the empty filter or "category ne '<name>'".
func parseFilter(filter string) (string, error) {
	if filter == "" {
		return "", nil
	}
	const prefix = "category ne '"
	if !strings.HasPrefix(filter, prefix) || !strings.HasSuffix(filter, "'") || len(filter) <= len(prefix) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFilter, filter)
	}
	quoted := filter[len(prefix) : len(filter)-1]
	return strings.ReplaceAll(quoted, "''", "'"), nil
}

func normalize(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// queryTerms splits a query into searchable terms. Han runs are broken into
// overlapping bigrams since they carry no word separators.
func queryTerms(text string) []string {
	fields := strings.FieldsFunc(normalize(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]bool)
	var terms []string
	add := func(t string) {
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	for _, f := range fields {
		runes := []rune(f)
		if hasHan(runes) && len(runes) > 2 {
			for i := 0; i+1 < len(runes); i++ {
				add(string(runes[i : i+2]))
			}
			continue
		}
		if len(runes) >= 2 || hasHan(runes) {
			add(f)
		}
	}
	return terms
}

func hasHan(runes []rune) bool {
	for _, r := range runes {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

func captions(content string, terms []string) []string {
	sentences := strings.FieldsFunc(content, func(r rune) bool {
		return r == '。' || r == '\n' || r == '；' || r == '.' || r == '!' || r == '?'
	})
	var out []string
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		n := normalize(sentence)
		for _, t := range terms {
			if strings.Contains(n, t) {
				out = append(out, sentence)
				break
			}
		}
		if len(out) == maxCaptions {
			break
		}
	}
	return out
}
