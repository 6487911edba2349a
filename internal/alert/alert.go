// Package alert binds rules to actions: whenever a stock a rule depends on
// is updated, the rule is evaluated and the action runs on a match.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/mohamedkhairy/stock-alerter/internal/action"
	"github.com/mohamedkhairy/stock-alerter/internal/rules"
	"github.com/mohamedkhairy/stock-alerter/internal/stock"
	"github.com/mohamedkhairy/stock-alerter/pkg/logger"
)

// Alert maps a Rule to an Action and triggers the action if the rule
// matches on any update of a stock it depends on
type Alert struct {
	ID          string
	Description string
	Rule        rules.Rule
	Action      action.Action

	cooldown *CooldownManager
	exchange *stock.Exchange
	ctx      context.Context
	fired    int
}

// New creates an alert. The ID defaults to the description.
func New(description string, rule rules.Rule, act action.Action) *Alert {
	return &Alert{
		ID:          description,
		Description: description,
		Rule:        rule,
		Action:      act,
	}
}

// WithCooldown suppresses repeat firings triggered by the same symbol within
// ttl of the previous firing
func (a *Alert) WithCooldown(ttl time.Duration) *Alert {
	a.cooldown = NewCooldownManager(ttl)
	return a
}

// Connect subscribes the alert to every stock its rule depends on. It fails
// without subscribing anything if one of those symbols is not on ex. ctx is
// passed to the action on every execution.
func (a *Alert) Connect(ctx context.Context, ex *stock.Exchange) error {
	symbols := a.Rule.DependsOn()
	dependents := make([]*stock.Stock, 0, len(symbols))
	for _, symbol := range symbols {
		s, err := ex.Get(symbol)
		if err != nil {
			return fmt.Errorf("alert %q: %w", a.ID, err)
		}
		dependents = append(dependents, s)
	}

	a.ctx = ctx
	a.exchange = ex
	for _, s := range dependents {
		s.Updated.Connect(a.checkRule)
	}

	logger.Debug("Alert connected",
		logger.String("alert_id", a.ID),
		logger.Strings("symbols", symbols),
	)
	return nil
}

// Fired returns how many times the action has been executed
func (a *Alert) Fired() int {
	return a.fired
}

// checkRule is the update listener
func (a *Alert) checkRule(s *stock.Stock) {
	if !a.Rule.Matches(a.exchange) {
		return
	}

	if a.cooldown != nil {
		at, _ := s.LastUpdate()
		if a.cooldown.CheckAndSetCooldown(GenerateCooldownKey(a.ID, s.Symbol), at) {
			logger.AlertsSuppressedTotal.WithLabelValues(a.ID).Inc()
			logger.Debug("Alert in cooldown period",
				logger.String("alert_id", a.ID),
				logger.String("symbol", s.Symbol),
				logger.Duration("ttl", a.cooldown.TTL()),
			)
			return
		}
	}

	a.fired++
	logger.AlertsFiredTotal.WithLabelValues(a.ID).Inc()

	if err := a.Action.Execute(a.ctx, a.Description); err != nil {
		logger.ActionErrorsTotal.WithLabelValues(a.Action.Name()).Inc()
		logger.WithContext(a.ctx).Warn("Alert action failed",
			logger.String("alert_id", a.ID),
			logger.String("action", a.Action.Name()),
			logger.String("symbol", s.Symbol),
			logger.ErrorField(err),
		)
		return
	}

	logger.WithContext(a.ctx).Debug("Alert fired",
		logger.String("alert_id", a.ID),
		logger.String("symbol", s.Symbol),
	)
}
