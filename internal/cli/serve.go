package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/sunthewhat/easy-cert-generator/api"
	"github.com/sunthewhat/easy-cert-generator/api/routes"
	"github.com/sunthewhat/easy-cert-generator/common/util"
	"github.com/sunthewhat/easy-cert-generator/internal/batch"
	"github.com/sunthewhat/easy-cert-generator/internal/session"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			r, err := buildRenderer(cfg)
			if err != nil {
				return err
			}

			deps := routes.Dependencies{
				Sessions:       session.NewStore(cfg.SessionTTL, cfg.Generation),
				Renderer:       r,
				Orchestrator:   batch.New(r, batchOptions(cfg)),
				MaxUploadBytes: int64(cfg.MaxUploadMB) * 1024 * 1024,
			}
			if cfg.MinIO.Enabled {
				store, err := util.NewMinIOArchiveStore(cfg.MinIO)
				if err != nil {
					return err
				}
				deps.Archives = store
				if cfg.MinIO.Retention > 0 {
					util.StartArchiveCleanupJob(cmd.Context(), store, cfg.MinIO.Retention, time.Hour)
				}
			}

			app := api.NewApp(cfg, deps)
			go func() {
				<-cmd.Context().Done()
				slog.Info("Shutting down server")
				if err := app.Shutdown(); err != nil {
					slog.Error("Failed to shut down server", "error", err)
				}
			}()

			slog.Info("Starting server", "port", *cfg.Port)
			return app.Listen(*cfg.Port)
		},
	}
}
