// Package api serves the catalog and assessment endpoints over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/assessgen/internal/assessment"
	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/metrics"
	"github.com/abhisek/assessgen/internal/problemgen"
	"github.com/abhisek/assessgen/internal/store"
)

// Deps wires the router. Generator and History may be nil; their
// endpoints then answer 503.
type Deps struct {
	Catalog     catalog.Repository
	Assessments *assessment.Service
	Generator   problemgen.Generator
	History     store.AssessmentEventRepo
	Metrics     *metrics.Metrics
	Logger      *zap.Logger

	// RequestTimeout bounds /api requests. Zero disables it.
	RequestTimeout time.Duration
}

type handlers struct {
	Deps
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	h := &handlers{Deps: d}

	r := gin.New()
	r.Use(requestID(), accessLog(d.Logger), recovery(d.Logger))
	if d.Metrics != nil {
		r.Use(instrument(d.Metrics))
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	r.GET("/", h.health)
	r.GET("/healthz/ready", h.ready)

	api := r.Group("/api")
	if d.RequestTimeout > 0 {
		api.Use(timeout(d.RequestTimeout))
	}

	problems := api.Group("/problems")
	{
		problems.GET("", h.listProblems)
		problems.POST("", h.createProblem)
		problems.POST("/generate", h.generateProblem)
		problems.GET("/:id", h.getProblem)
		problems.PUT("/:id", h.updateProblem)
		problems.DELETE("/:id", h.deleteProblem)
	}

	assessments := api.Group("/assessments")
	{
		assessments.POST("/generate", h.generateAssessment)
		assessments.GET("/history", h.history)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, notFound("route not found"))
	})

	return r
}

// Serve runs handler on addr until ctx is canceled, then shuts down
// gracefully within shutdownTimeout.
func Serve(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
