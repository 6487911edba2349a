package models

import (
	"strings"
	"time"
)

// Update is a single price update for a symbol, as produced by a reader
type Update struct {
	Symbol    string    `json:"symbol"`
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// Validate checks the update's symbol and timestamp. Prices are checked by
// the stock the update is applied to.
func (u *Update) Validate() error {
	if u.Symbol == "" {
		return ErrInvalidSymbol
	}
	if u.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	return nil
}

// ConditionType names the kind of check a condition performs
type ConditionType string

const (
	ConditionPrice     ConditionType = "price"
	ConditionTrend     ConditionType = "trend"
	ConditionCrossover ConditionType = "crossover"
)

// ActionType names the side effect an alert performs
type ActionType string

const (
	ActionPrint ActionType = "print"
	ActionLog   ActionType = "log"
	ActionEmail ActionType = "email"
)

// Rule is an alert definition: every condition must hold for the action to run
type Rule struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Conditions  []Condition  `json:"conditions"`
	Action      ActionConfig `json:"action"`
	Cooldown    int          `json:"cooldown"` // Cooldown in seconds
	Enabled     bool         `json:"enabled"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Condition is a single check against one symbol
type Condition struct {
	Type     ConditionType `json:"type"`
	Symbol   string        `json:"symbol"`
	Operator string        `json:"operator,omitempty"` // price only: ">", "<", ">=", "<=", "==", "!="
	Value    float64       `json:"value,omitempty"`    // price only
	Signal   string        `json:"signal,omitempty"`   // crossover only: "buy" or "sell"
}

// ActionConfig describes the action an alert runs when its rule matches
type ActionConfig struct {
	Type ActionType `json:"type"`
	To   string     `json:"to,omitempty"` // email recipient
}

// Validate validates a Rule
func (r *Rule) Validate() error {
	if r.ID == "" {
		return ErrInvalidRuleID
	}
	if r.Name == "" {
		return ErrInvalidRuleName
	}
	if len(r.Conditions) == 0 {
		return ErrNoConditions
	}
	for _, cond := range r.Conditions {
		if err := cond.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates a Condition
func (c *Condition) Validate() error {
	if c.Symbol == "" {
		return ErrInvalidSymbol
	}
	switch c.Type {
	case ConditionPrice:
		validOps := map[string]bool{
			">": true, "<": true, ">=": true, "<=": true, "==": true, "!=": true,
		}
		if !validOps[c.Operator] {
			return ErrInvalidOperator
		}
	case ConditionTrend:
	case ConditionCrossover:
		if c.Signal != "buy" && c.Signal != "sell" {
			return ErrInvalidSignal
		}
	default:
		return ErrInvalidConditionType
	}
	return nil
}

// Validate validates an ActionConfig
func (a *ActionConfig) Validate() error {
	switch a.Type {
	case ActionPrint, ActionLog:
		return nil
	case ActionEmail:
		if a.To == "" {
			return ErrMissingRecipient
		}
		if strings.ContainsAny(a.To, "\r\n") {
			return ErrInvalidRecipient
		}
		return nil
	default:
		return ErrInvalidActionType
	}
}
