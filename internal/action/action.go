// Package action provides the side effects an alert performs when its rule
// matches: printing, logging and sending email.
package action

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mohamedkhairy/stock-alerter/internal/models"
	"github.com/mohamedkhairy/stock-alerter/pkg/logger"
)

// Action is executed with the alert's description when a rule matches
type Action interface {
	// Execute performs the action. Returns error if it fails.
	Execute(ctx context.Context, content string) error
	// Name returns a short identifier for logs and metrics (e.g. "email")
	Name() string
}

// New builds the action described by cfg
func New(cfg models.ActionConfig, smtp SMTPConfig) (Action, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case models.ActionPrint:
		return NewPrintAction(os.Stdout), nil
	case models.ActionLog:
		return NewLogAction(nil), nil
	case models.ActionEmail:
		return NewEmailAction(cfg.To, smtp), nil
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidActionType, cfg.Type)
	}
}

// PrintAction writes the content as a line to a writer
type PrintAction struct {
	out io.Writer
}

// NewPrintAction creates a print action writing to out, or stdout if out is nil
func NewPrintAction(out io.Writer) *PrintAction {
	if out == nil {
		out = os.Stdout
	}
	return &PrintAction{out: out}
}

func (a *PrintAction) Execute(ctx context.Context, content string) error {
	if _, err := fmt.Fprintln(a.out, content); err != nil {
		return fmt.Errorf("failed to print alert: %w", err)
	}
	return nil
}

func (a *PrintAction) Name() string {
	return "print"
}

// LogAction writes the content to the structured log at info level
type LogAction struct {
	logger *zap.Logger
}

// NewLogAction creates a log action. A nil logger means the global logger
// at the time of each Execute.
func NewLogAction(l *zap.Logger) *LogAction {
	return &LogAction{logger: l}
}

func (a *LogAction) Execute(ctx context.Context, content string) error {
	l := a.logger
	if l == nil {
		l = logger.WithContext(ctx)
	}
	l.Info("Stock alert", zap.String("alert", content))
	return nil
}

func (a *LogAction) Name() string {
	return "log"
}
