package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/persona/internal/auth"
	"github.com/abhisek/persona/internal/config"
	"github.com/abhisek/persona/internal/insight"
	"github.com/abhisek/persona/internal/llm"
	"github.com/abhisek/persona/internal/logger"
	"github.com/abhisek/persona/internal/quiz"
	"github.com/abhisek/persona/internal/store"
	"github.com/abhisek/persona/internal/store/pgstore"
)

// deps bundles everything a command needs. Close releases it.
type deps struct {
	cfg       *config.Config
	logger    *zap.Logger
	backend   store.Backend
	questions *quiz.QuestionSet
	auth      *auth.Service
	insight   *insight.Service // nil when no LLM provider is configured
}

func (d *deps) Close() {
	if d.backend != nil {
		if err := d.backend.Close(); err != nil {
			d.logger.Warn("close store", zap.Error(err))
		}
	}
	_ = d.logger.Sync()
}

// loadConfig reads configuration and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{ConfigFile: cfgFile})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB.Driver = config.DriverSQLite
		cfg.DB.Path = p
	}
	if q, _ := cmd.Flags().GetString("questions"); q != "" {
		cfg.QuestionsFile = q
	}
	return cfg, nil
}

// setup loads config and opens every collaborator.
func setup(cmd *cobra.Command) (*deps, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	d := &deps{cfg: cfg, logger: log}

	d.questions, err = quiz.LoadQuestionSet(cfg.QuestionsFile)
	if err != nil {
		d.Close()
		return nil, err
	}

	d.backend, err = openBackend(ctx, cfg)
	if err != nil {
		d.Close()
		return nil, err
	}
	log.Info("store opened", zap.String("driver", cfg.DB.Driver))

	d.auth = auth.NewService(d.backend.UserRepo(), log.Named("auth"))

	if llmCfg, ok := cfg.LLMConfig(); ok {
		provider, err := llm.NewProvider(ctx, llmCfg, log.Named("llm"))
		if err != nil {
			log.Warn("insights unavailable", zap.Error(err))
		} else {
			d.insight = insight.New(provider, d.questions, insight.DefaultConfig(), log.Named("insight"))
		}
	}
	return d, nil
}

// openBackend opens the results store selected by cfg.
func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pg, err := pgstore.Open(ctx, cfg.DB.URL, pgstore.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return pg, nil
	default:
		path, err := resolveDBPath(cfg.DB.Path)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		return st, nil
	}
}

// resolveDBPath returns path, or the default XDG path when it is empty.
func resolveDBPath(path string) (string, error) {
	if path != "" {
		return path, store.EnsureDir(path)
	}
	return store.DefaultDBPath()
}
