package server

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/askby/internal/config"
	"github.com/nfrund/askby/internal/handlers"
	appmw "github.com/nfrund/askby/internal/middleware"
	"github.com/nfrund/askby/internal/module"
	"github.com/samber/do/v2"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	injector do.Injector
	modules  []module.Module
}

// New creates a Server. Nothing is booted until Boot is called.
func New(cfg config.Provider, injector do.Injector, modules []module.Module) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = do.MustInvoke[echo.Renderer](injector)
	e.Validator = handlers.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(appmw.Logger)
	e.Use(middleware.Recover())

	store := sessions.NewCookieStore(sessionKey(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))

	return &Server{
		E:        e,
		Cfg:      cfg,
		injector: injector,
		modules:  modules,
	}
}

// sessionKey falls back to a random key, which invalidates sessions on
// restart but keeps flash messages working in development.
func sessionKey(secret string) []byte {
	if secret != "" {
		return []byte(secret)
	}
	slog.Warn("SESSION_SECRET is not set; using a random session key")
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	return key
}

// Boot registers every module's services, then boots each one on the root
// route group.
func (s *Server) Boot(ctx context.Context) error {
	for _, m := range s.modules {
		if err := m.Register(s.injector); err != nil {
			return fmt.Errorf("failed to register module %s: %w", m.Name(), err)
		}
	}
	root := s.E.Group("")
	for _, m := range s.modules {
		slog.Info("Booting module", "module", m.Name())
		if err := m.Boot(ctx, root, s.injector); err != nil {
			return fmt.Errorf("failed to boot module %s: %w", m.Name(), err)
		}
	}
	return nil
}
