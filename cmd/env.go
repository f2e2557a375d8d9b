package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/coach"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/config"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/events"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/llm"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/logger"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/metrics"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/resources"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/store"
)

// env is everything a command opens from configuration.
type env struct {
	source    *config.Source
	cfg       *config.Config
	dataDir   string
	log       *logger.Logger
	metrics   *metrics.Metrics
	events    *store.EventLog
	users     *store.UserStore
	memory    *store.MemoryBank
	provider  llm.Provider
	searcher  resources.Searcher
	publisher events.Publisher
	coach     *coach.Coach
}

type envOptions struct {
	// quiet turns off console logging while a full-screen program owns the
	// terminal.
	quiet bool
	// offline opens only local storage: no provider, search or broker.
	offline bool
}

// openEnv loads configuration and opens the stores. Unless offline, it also
// connects the provider, searcher and publisher and builds the coach. A
// missing or broken external service degrades to placeholder content and is
// logged, never returned.
func openEnv(ctx context.Context, cmd *cobra.Command, opts envOptions) (*env, error) {
	file, _ := cmd.Flags().GetString("config")
	src, err := config.NewSource(config.Options{File: file})
	if err != nil {
		return nil, err
	}
	cfg, err := src.Config()
	if err != nil {
		return nil, err
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	dataDir, err := cfg.ResolveDataDir(store.DefaultDataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	logCfg := cfg.Log
	if opts.quiet {
		logCfg.Console = false
	}
	log, err := logger.New(logCfg, dataDir, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	e := &env{source: src, cfg: cfg, dataDir: dataDir, log: log, metrics: metrics.New()}
	if err := e.open(ctx, opts); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *env) open(ctx context.Context, opts envOptions) error {
	var err error
	if e.events, err = store.Open(filepath.Join(e.dataDir, store.EventsFile)); err != nil {
		return err
	}
	if e.users, err = store.NewUserStore(filepath.Join(e.dataDir, store.UsersFile)); err != nil {
		return fmt.Errorf("open user store: %w", err)
	}
	if e.memory, err = store.NewMemoryBank(filepath.Join(e.dataDir, store.MemoryFile)); err != nil {
		return fmt.Errorf("open memory bank: %w", err)
	}
	if opts.offline {
		return nil
	}

	log := e.log.Logger
	lc := e.cfg.LLMProviderConfig()
	if lc.Resolve() {
		p, err := llm.NewProvider(ctx, lc, llm.Deps{Events: e.events, Metrics: e.metrics, Logger: log})
		if err != nil {
			log.Warn("LLM provider unavailable, serving placeholder content", zap.Error(err))
		} else {
			e.provider = p
			log.Info("LLM provider ready", zap.String("provider", lc.Provider), zap.String("model", p.ModelID()))
		}
	} else {
		log.Warn("LLM provider not configured, serving placeholder content")
	}

	e.searcher = resources.MockSearcher{}
	if e.cfg.SearchConfigured() {
		g, err := resources.NewGoogleSearcher(ctx, e.cfg.Search.APIKey, e.cfg.Search.EngineID, log)
		if err != nil {
			log.Warn("web search unavailable, using canned results", zap.Error(err))
		} else {
			e.searcher = g
		}
	}

	e.publisher, err = events.NewPublisher(e.cfg.Events.URL, e.cfg.Events.Exchange, log)
	if err != nil {
		log.Warn("event broker unavailable, events are only logged", zap.Error(err))
		e.publisher = events.NewNopPublisher(log)
	}

	e.coach = coach.New(coach.Deps{
		Provider:   e.provider,
		Searcher:   e.searcher,
		Users:      e.users,
		Memory:     e.memory,
		Activity:   e.events,
		Publisher:  e.publisher,
		Fallbacks:  e.metrics,
		Logger:     log,
		Language:   e.cfg.Language,
		MaxResults: e.cfg.Search.MaxResults,
	})
	return nil
}

// aiModel is the configured model, or "" without a provider.
func (e *env) aiModel() string {
	if e.provider == nil {
		return ""
	}
	return e.provider.ModelID()
}

// Close releases what open acquired, in reverse order.
func (e *env) Close() {
	if e.publisher != nil {
		if err := e.publisher.Close(); err != nil {
			e.log.Warn("close publisher", zap.Error(err))
		}
	}
	if e.events != nil {
		if err := e.events.Close(); err != nil {
			e.log.Warn("close event log", zap.Error(err))
		}
	}
	_ = e.log.Close()
}
