// Package processor feeds updates from a reader into an exchange.
package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/mohamedkhairy/stock-alerter/internal/models"
	"github.com/mohamedkhairy/stock-alerter/internal/reader"
	"github.com/mohamedkhairy/stock-alerter/internal/stock"
	"github.com/mohamedkhairy/stock-alerter/pkg/logger"
	"go.uber.org/zap"
)

// Stats summarizes a processing run
type Stats struct {
	RunID    string
	Read     int
	Applied  int
	Failed   int
	Duration time.Duration
}

// Processor applies every update from a reader to an exchange, in order
type Processor struct {
	reader   reader.Reader
	exchange *stock.Exchange

	// StopOnError aborts the run at the first bad update. When false, bad
	// updates are logged and skipped.
	StopOnError bool
}

// New creates a processor that stops on the first error
func New(r reader.Reader, ex *stock.Exchange) *Processor {
	return &Processor{
		reader:      r,
		exchange:    ex,
		StopOnError: true,
	}
}

// Process reads until the reader is drained, ctx is cancelled, or (with
// StopOnError) an update fails. Read errors always stop the run. The
// returned stats are valid in every case.
func (p *Processor) Process(ctx context.Context) (Stats, error) {
	stats := Stats{RunID: uuid.New().String()}
	ctx = logger.WithRunID(ctx, stats.RunID)
	log := logger.WithContext(ctx)
	start := time.Now()

	log.Info("Processing started")

	err := p.run(ctx, log, &stats)
	stats.Duration = time.Since(start)

	fields := []zap.Field{
		logger.Int("read", stats.Read),
		logger.Int("applied", stats.Applied),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
	}
	if errors.Is(err, context.Canceled) {
		log.Info("Processing interrupted", fields...)
		return stats, err
	}
	if err != nil {
		log.Error("Processing stopped", append(fields, logger.ErrorField(err))...)
		return stats, err
	}
	log.Info("Processing finished", fields...)
	return stats, nil
}

func (p *Processor) run(ctx context.Context, log *zap.Logger, stats *Stats) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		update, err := p.reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			logger.StockUpdateErrorsTotal.WithLabelValues("read").Inc()
			return fmt.Errorf("failed to read update: %w", err)
		}
		stats.Read++

		if err := p.apply(update); err != nil {
			stats.Failed++
			if p.StopOnError {
				return err
			}
			log.Warn("Skipping update",
				logger.String("symbol", update.Symbol),
				logger.Time("timestamp", update.Timestamp),
				logger.Float64("price", update.Price),
				logger.ErrorField(err),
			)
			continue
		}
		stats.Applied++
	}
}

func (p *Processor) apply(update models.Update) error {
	if err := update.Validate(); err != nil {
		logger.StockUpdateErrorsTotal.WithLabelValues("invalid_update").Inc()
		return fmt.Errorf("%s: %w", update.Symbol, err)
	}
	return p.exchange.Update(update.Symbol, update.Timestamp, update.Price)
}
