package server

import (
	"io/fs"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/askby/internal/ask/corpus"
	"github.com/nfrund/askby/internal/handlers"
	"github.com/nfrund/askby/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/do/v2"
)

// RegisterRoutes sets up the routes that do not belong to a module.
func (s *Server) RegisterRoutes() error {
	searcher, err := do.Invoke[*corpus.FileSearcher](s.injector)
	if err != nil {
		return err
	}
	health := handlers.NewHealthHandler(searcher)
	s.E.GET("/health", health.HealthGet)

	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return err
	}
	s.E.StaticFS("/static", static)

	gatherer := do.MustInvoke[prometheus.Gatherer](s.injector)
	s.E.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	return nil
}
