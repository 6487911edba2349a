package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mohamedkhairy/stock-alerter/internal/action"
	"github.com/mohamedkhairy/stock-alerter/internal/alert"
	"github.com/mohamedkhairy/stock-alerter/internal/config"
	"github.com/mohamedkhairy/stock-alerter/internal/processor"
	"github.com/mohamedkhairy/stock-alerter/internal/reader"
	"github.com/mohamedkhairy/stock-alerter/internal/rules"
	"github.com/mohamedkhairy/stock-alerter/internal/stock"
	"github.com/mohamedkhairy/stock-alerter/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting stock alerter",
		logger.Strings("symbols", cfg.Alerter.Symbols),
		logger.String("updates_file", cfg.Alerter.UpdatesFile),
		logger.String("rules_file", cfg.Alerter.RulesFile),
		logger.Int("short_window", cfg.Alerter.ShortWindow),
		logger.Int("long_window", cfg.Alerter.LongWindow),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()

	if err != nil {
		logger.Error("Stock alerter failed", logger.ErrorField(err))
		_ = logger.Sync()
		os.Exit(1)
	}

	logger.Info("Stock alerter stopped")
	_ = logger.Sync()
}

func run(ctx context.Context, cfg *config.Config) error {
	ex := stock.NewExchange(cfg.Alerter.Symbols,
		stock.WithCrossoverTimespans(cfg.Alerter.ShortWindow, cfg.Alerter.LongWindow),
	)

	manager := alert.NewDefaultManager(action.SMTPConfig{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		From: cfg.SMTP.From,
	})
	if err := loadAlerts(ctx, cfg, ex, manager); err != nil {
		return err
	}

	var running health
	if cfg.Metrics.Port > 0 {
		shutdown := startMetricsServer(cfg, ex, &running)
		defer shutdown()
	}

	r, err := reader.OpenFile(cfg.Alerter.UpdatesFile)
	if err != nil {
		return err
	}
	defer r.Close()

	p := processor.New(r, ex)
	p.StopOnError = cfg.Alerter.StopOnError

	running.set(true)
	stats, err := p.Process(ctx)
	running.set(false)

	report(ex, manager, stats)

	if errors.Is(err, context.Canceled) {
		logger.Info("Shutting down stock alerter", logger.Int("updates_applied", stats.Applied))
		return nil
	}
	return err
}

func loadAlerts(ctx context.Context, cfg *config.Config, ex *stock.Exchange, manager *alert.Manager) error {
	if cfg.Alerter.RulesFile == "" {
		logger.Info("No rules file configured, running without alerts")
		return nil
	}

	defs, err := rules.LoadRulesFile(cfg.Alerter.RulesFile)
	if err != nil {
		return err
	}

	store := rules.NewInMemoryRuleStore()
	if err := store.AddRules(defs); err != nil {
		return fmt.Errorf("failed to store rules: %w", err)
	}

	return manager.LoadFromStore(ctx, ex, store)
}

func startMetricsServer(cfg *config.Config, ex *stock.Exchange, running *health) func() {
	var wg sync.WaitGroup
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:      setupHealthAndMetricsServer(ex, running),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting health and metrics server",
			logger.Int("port", cfg.Metrics.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Health and metrics server failed",
				logger.ErrorField(err),
			)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Metrics.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Health server shutdown failed", logger.ErrorField(err))
		}
		wg.Wait()
	}
}

// report logs the run summary and the final state of every stock
func report(ex *stock.Exchange, manager *alert.Manager, stats processor.Stats) {
	fired := 0
	for _, a := range manager.Alerts() {
		fired += a.Fired()
	}

	logger.Info("Run summary",
		logger.String("run_id", stats.RunID),
		logger.Int("updates_read", stats.Read),
		logger.Int("updates_applied", stats.Applied),
		logger.Int("updates_failed", stats.Failed),
		logger.Int("alerts", len(manager.Alerts())),
		logger.Int("alerts_fired", fired),
		logger.Duration("duration", stats.Duration),
	)

	for _, symbol := range ex.Symbols() {
		s, err := ex.Get(symbol)
		if err != nil {
			continue
		}
		price, ok := s.Price()
		if !ok {
			logger.Info("Stock has no updates", logger.String("symbol", symbol))
			continue
		}
		last, _ := s.LastUpdate()
		logger.Info("Stock final state",
			logger.String("symbol", symbol),
			logger.Float64("price", price),
			logger.Time("last_update", last),
			logger.Bool("increasing_trend", s.IsIncreasingTrend()),
			logger.String("crossover_signal", s.CrossoverSignal(last).String()),
		)
	}
}
