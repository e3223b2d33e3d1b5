package cmd

import (
	"os/signal"
	"syscall"

	"github.com/huangsam/ensoview/internal/sourcedb"
	"github.com/huangsam/ensoview/internal/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd runs the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve interactive index charts over HTTP.",
	Long: `Start an HTTP server with one interactive chart page per index and a
JSON API for series and month selection.

Routes:
  /chart/:index                    Interactive page
  /png/:index?at=N                 Static image
  /api/indices                     Index registry
  /api/series/:index               Classified series
  /api/series/:index/select?at=N   Marker and summary of one month
  /healthz, /readyz                Probes

Examples:
  # Serve on the default address
  ensoview serve

  # Serve SOI by default with console logs
  ensoview serve --index soi --addr :9000 --log-encoding console`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		logger, err := web.NewLogger(cfg.Log)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := web.NewServer(cfg, currentSource(), sourcedb.Manager.GetStore(), logger)
		logger.Info("serving indices", zap.String("default", string(cfg.Index)), zap.Duration("cache_ttl", cfg.CacheTTL))
		return srv.Run(ctx)
	},
}
