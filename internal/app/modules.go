package app

import (
	"github.com/nfrund/askby/internal/config"
	"github.com/nfrund/askby/internal/module"
	"github.com/nfrund/askby/internal/modules/assistant"
)

// NewModules returns every active module. This is the single source of
// truth for which features are enabled.
func NewModules(cfg config.Provider) []module.Module {
	return []module.Module{
		assistant.New(cfg.GetRateLimit()),
	}
}
