package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/assessgen/internal/api"
	"github.com/abhisek/assessgen/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			rt.cfg.Server.Addr = addr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		m := metrics.New()
		svc, err := rt.assessmentService(m)
		if err != nil {
			return err
		}

		gen, err := rt.generator(ctx)
		if err != nil {
			// Authoring is optional; the endpoint answers 503 without it.
			rt.logger.Warn("LLM authoring disabled", zap.Error(err))
			gen = nil
		}
		if gen == nil {
			rt.logger.Info("no LLM provider configured; /api/problems/generate is disabled")
		}

		gin.SetMode(rt.cfg.Server.Mode)
		router := api.NewRouter(api.Deps{
			Catalog:        rt.catalog,
			Assessments:    svc,
			Generator:      gen,
			History:        rt.store.EventRepo(),
			Metrics:        m,
			Logger:         rt.logger,
			RequestTimeout: rt.cfg.Server.RequestTimeout,
		})

		return api.Serve(ctx, rt.cfg.Server.Addr, router, shutdownTimeout, rt.logger)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
