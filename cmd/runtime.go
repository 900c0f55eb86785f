package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/assessgen/internal/assessment"
	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/config"
	"github.com/abhisek/assessgen/internal/llm"
	"github.com/abhisek/assessgen/internal/logging"
	"github.com/abhisek/assessgen/internal/metrics"
	"github.com/abhisek/assessgen/internal/planner"
	"github.com/abhisek/assessgen/internal/problemgen"
	"github.com/abhisek/assessgen/internal/store"
)

// runtime is the wiring shared by every command: configuration, logger,
// the SQLite store for events and the selected catalog backend.
type runtime struct {
	cfg     config.Config
	logger  *zap.Logger
	store   *store.Store
	catalog catalog.Repository
}

func openRuntime(cmd *cobra.Command) (*runtime, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	sqlitePath := ""
	if cfg.Catalog.Backend == config.BackendSQLite {
		sqlitePath = cfg.Catalog.Path
	}
	dbPath, err := resolveDBPath(cmd, sqlitePath)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: logger, store: s}

	switch cfg.Catalog.Backend {
	case config.BackendSQLite:
		rt.catalog = s.ProblemRepo()
	case config.BackendFile:
		fs, err := catalog.OpenFileStore(cfg.Catalog.Path)
		if err != nil {
			s.Close()
			return nil, err
		}
		rt.catalog = fs
	case config.BackendMemory:
		mem, err := catalog.NewMemoryStore()
		if err != nil {
			s.Close()
			return nil, err
		}
		rt.catalog = mem
	}

	logger.Debug("runtime ready",
		zap.String("db", dbPath),
		zap.String("catalog_backend", cfg.Catalog.Backend))
	return rt, nil
}

func (r *runtime) Close() {
	if err := r.store.Close(); err != nil {
		r.logger.Warn("close database", zap.Error(err))
	}
	_ = r.logger.Sync()
}

func (r *runtime) assessmentService(m *metrics.Metrics) (*assessment.Service, error) {
	execCfg, err := r.cfg.ExecutorConfig()
	if err != nil {
		return nil, err
	}
	return assessment.NewService(assessment.Deps{
		Planner:  planner.New(r.cfg.Planner),
		Catalog:  r.catalog,
		Executor: execCfg,
		Events:   r.store.EventRepo(),
		Metrics:  m,
		Logger:   r.logger,
	}), nil
}

// generator builds the LLM problem generator. When no provider is
// configured it falls back to API keys found in the environment; it
// returns nil if there are none.
func (r *runtime) generator(ctx context.Context) (problemgen.Generator, error) {
	cfg := r.cfg.LLM
	if !cfg.Enabled() {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, nil
		}
		discovered.Retry = cfg.Retry
		discovered.Timeout = cfg.Timeout
		cfg = discovered
	}

	provider, err := llm.NewProvider(ctx, cfg, r.store.EventRepo(), r.logger)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	return problemgen.New(provider, problemgen.DefaultConfig()), nil
}
