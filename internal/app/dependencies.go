package app

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/askby/internal/ask"
	"github.com/nfrund/askby/internal/ask/corpus"
	"github.com/nfrund/askby/internal/ask/openai"
	"github.com/nfrund/askby/internal/config"
	"github.com/nfrund/askby/internal/pubsub"
	"github.com/nfrund/askby/internal/rendering"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

// NewInjector registers the core services the modules depend on. Services
// are built lazily on first use; fsys is where the knowledge corpus lives.
func NewInjector(cfg config.Provider, fsys afero.Fs) *do.RootScope {
	i := do.New()

	do.ProvideValue(i, cfg)
	do.ProvideValue(i, fsys)

	do.Provide(i, func(i do.Injector) (*corpus.FileSearcher, error) {
		var opts []corpus.Option
		if cfg.GetOpenAI().EmbeddingModel != "" {
			opts = append(opts, corpus.WithEmbedder(do.MustInvoke[*openai.Client](i)))
		}
		return corpus.Load(context.Background(), do.MustInvoke[afero.Fs](i), cfg.GetCorpusDir(), opts...)
	})
	do.Provide(i, func(i do.Injector) (*openai.Client, error) {
		oc := cfg.GetOpenAI()
		if oc.APIKey == "" {
			slog.Warn("OPENAI_API_KEY is not set; completions will fail")
		}
		return openai.New(openai.Config{
			APIKey:         oc.APIKey,
			BaseURL:        oc.BaseURL,
			ChatModel:      oc.ChatModel,
			EmbeddingModel: oc.EmbeddingModel,
			MaxRetries:     oc.MaxRetries,
		}), nil
	})
	do.Provide(i, func(i do.Injector) (ask.Approach, error) {
		searcher, err := do.Invoke[*corpus.FileSearcher](i)
		if err != nil {
			return nil, err
		}
		client := do.MustInvoke[*openai.Client](i)

		opts := []ask.RetrieveOption{ask.WithLogger(slog.Default())}
		if cfg.GetOpenAI().EmbeddingModel != "" {
			opts = append(opts, ask.WithEmbedder(client))
		}
		return ask.NewRetrieveThenRead(searcher, client, opts...), nil
	})

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(false), nil
	})
	do.Provide(i, func(i do.Injector) (pubsub.Publisher, error) {
		return do.MustInvoke[*pubsub.WatermillBridge](i), nil
	})
	do.Provide(i, func(i do.Injector) (pubsub.Subscriber, error) {
		return do.MustInvoke[*pubsub.WatermillBridge](i), nil
	})

	do.Provide(i, func(i do.Injector) (echo.Renderer, error) {
		return rendering.NewRenderer(), nil
	})

	registry := prometheus.NewRegistry()
	do.ProvideValue[prometheus.Registerer](i, registry)
	do.ProvideValue[prometheus.Gatherer](i, registry)

	return i
}
