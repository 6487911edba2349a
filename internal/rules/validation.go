package rules

import (
	"fmt"

	"github.com/mohamedkhairy/stock-alerter/internal/models"
	"github.com/mohamedkhairy/stock-alerter/internal/stock"
)

// ValidateRule validates a rule definition with checks beyond models.Rule.Validate
func ValidateRule(rule *models.Rule) error {
	if rule == nil {
		return fmt.Errorf("rule cannot be nil")
	}

	// Use base validation from models
	if err := rule.Validate(); err != nil {
		return err
	}

	if rule.Cooldown < 0 {
		return fmt.Errorf("cooldown must be non-negative, got %d", rule.Cooldown)
	}

	if err := rule.Action.Validate(); err != nil {
		return fmt.Errorf("action: %w", err)
	}

	return nil
}

// ValidateSymbols checks that every symbol the rule refers to is traded on ex
func ValidateSymbols(rule *models.Rule, ex *stock.Exchange) error {
	for i, cond := range rule.Conditions {
		if _, err := ex.Get(cond.Symbol); err != nil {
			return fmt.Errorf("condition %d: %w", i, err)
		}
	}
	return nil
}
