package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/mohamedkhairy/stock-alerter/internal/action"
	"github.com/mohamedkhairy/stock-alerter/internal/models"
	"github.com/mohamedkhairy/stock-alerter/internal/rules"
	"github.com/mohamedkhairy/stock-alerter/internal/stock"
	"github.com/mohamedkhairy/stock-alerter/pkg/logger"
)

// ActionFactory builds the action for a rule definition
type ActionFactory func(cfg models.ActionConfig) (action.Action, error)

// Manager turns rule definitions into connected alerts
type Manager struct {
	compiler  *rules.Compiler
	newAction ActionFactory
	alerts    []*Alert
}

// NewManager creates a manager that builds actions with newAction
func NewManager(newAction ActionFactory) *Manager {
	return &Manager{
		compiler:  rules.NewCompiler(),
		newAction: newAction,
	}
}

// NewDefaultManager creates a manager building actions with action.New
func NewDefaultManager(smtp action.SMTPConfig) *Manager {
	return NewManager(func(cfg models.ActionConfig) (action.Action, error) {
		return action.New(cfg, smtp)
	})
}

// Load compiles every enabled definition and connects the resulting alert to
// ex. Nothing is connected if any definition fails.
func (m *Manager) Load(ctx context.Context, ex *stock.Exchange, defs []*models.Rule) error {
	log := logger.Named("alert_manager")

	compiled, err := m.compiler.CompileEnabledRules(defs)
	if err != nil {
		return err
	}

	pending := make([]*Alert, 0, len(compiled))
	seen := make(map[string]struct{}, len(compiled))

	for _, def := range defs {
		if !def.Enabled {
			log.Debug("Skipping disabled rule", logger.String("rule_id", def.ID))
			continue
		}
		if _, dup := seen[def.ID]; dup {
			return fmt.Errorf("rule %s: duplicate rule ID", def.ID)
		}
		seen[def.ID] = struct{}{}

		a, err := m.build(ex, def, compiled[def.ID])
		if err != nil {
			return fmt.Errorf("rule %s: %w", def.ID, err)
		}
		pending = append(pending, a)
	}

	for _, a := range pending {
		if err := a.Connect(ctx, ex); err != nil {
			return err
		}
		m.alerts = append(m.alerts, a)
	}

	log.Info("Alerts loaded",
		logger.Int("definitions", len(defs)),
		logger.Int("connected", len(pending)),
	)
	return nil
}

// LoadFromStore loads the store's enabled definitions
func (m *Manager) LoadFromStore(ctx context.Context, ex *stock.Exchange, store rules.RuleStore) error {
	defs, err := store.GetEnabledRules()
	if err != nil {
		return fmt.Errorf("failed to list rules: %w", err)
	}
	return m.Load(ctx, ex, defs)
}

func (m *Manager) build(ex *stock.Exchange, def *models.Rule, rule rules.Rule) (*Alert, error) {
	if err := rules.ValidateSymbols(def, ex); err != nil {
		return nil, err
	}

	act, err := m.newAction(def.Action)
	if err != nil {
		return nil, fmt.Errorf("action: %w", err)
	}

	description := def.Description
	if description == "" {
		description = def.Name
	}

	a := New(description, rule, act)
	a.ID = def.ID
	if def.Cooldown > 0 {
		a.WithCooldown(time.Duration(def.Cooldown) * time.Second)
	}
	return a, nil
}

// Alerts returns the connected alerts in load order
func (m *Manager) Alerts() []*Alert {
	out := make([]*Alert, len(m.alerts))
	copy(out, m.alerts)
	return out
}
