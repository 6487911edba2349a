package rules

import (
	"github.com/mohamedkhairy/stock-alerter/internal/models"
	"github.com/mohamedkhairy/stock-alerter/internal/stock"
)

// Rule is a predicate over the current state of an exchange
type Rule interface {
	// Matches reports whether the rule holds for the exchange right now
	Matches(ex *stock.Exchange) bool

	// DependsOn returns the symbols whose updates can change the result,
	// sorted and without duplicates
	DependsOn() []string
}

// RuleStore defines the interface for storing and retrieving rule definitions
type RuleStore interface {
	// GetRule retrieves a rule by ID
	GetRule(id string) (*models.Rule, error)

	// GetAllRules retrieves all rules
	GetAllRules() ([]*models.Rule, error)

	// GetEnabledRules retrieves all enabled rules
	GetEnabledRules() ([]*models.Rule, error)

	// AddRule adds a new rule
	AddRule(rule *models.Rule) error

	// UpdateRule updates an existing rule
	UpdateRule(rule *models.Rule) error

	// DeleteRule deletes a rule by ID
	DeleteRule(id string) error

	// EnableRule enables a rule
	EnableRule(id string) error

	// DisableRule disables a rule
	DisableRule(id string) error
}
