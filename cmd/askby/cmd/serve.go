package cmd

import (
	"fmt"

	"github.com/nfrund/askby/internal/app"
	"github.com/nfrund/askby/internal/config"
	"github.com/nfrund/askby/internal/logging"
	"github.com/nfrund/askby/internal/server"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		logging.New()
		if serveAddr != "" {
			cfg.ServerAddr = serveAddr
		}

		injector := app.NewInjector(cfg, afero.NewOsFs())
		s := server.New(cfg, injector, app.NewModules(cfg))
		if err := s.Boot(cmd.Context()); err != nil {
			return err
		}
		if err := s.RegisterRoutes(); err != nil {
			return fmt.Errorf("failed to register routes: %w", err)
		}
		return s.Start(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides SERVER_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
