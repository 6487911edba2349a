package rules

import (
	"fmt"

	"github.com/mohamedkhairy/stock-alerter/internal/models"
	"github.com/mohamedkhairy/stock-alerter/pkg/indicator"
)

// Compiler turns rule definitions into evaluable rules
type Compiler struct{}

// NewCompiler creates a new rule compiler
func NewCompiler() *Compiler {
	return &Compiler{}
}

// CompileRule compiles a definition. A single condition becomes that
// condition's rule; several become an AndRule.
func (c *Compiler) CompileRule(def *models.Rule) (Rule, error) {
	if def == nil {
		return nil, fmt.Errorf("rule cannot be nil")
	}

	if err := ValidateRule(def); err != nil {
		return nil, fmt.Errorf("invalid rule: %w", err)
	}

	compiled := make([]Rule, 0, len(def.Conditions))
	for i := range def.Conditions {
		rule, err := c.CompileCondition(&def.Conditions[i])
		if err != nil {
			return nil, fmt.Errorf("condition %d (symbol: %s): %w", i, def.Conditions[i].Symbol, err)
		}
		compiled = append(compiled, rule)
	}

	if len(compiled) == 1 {
		return compiled[0], nil
	}
	return NewAndRule(compiled...), nil
}

// CompileCondition compiles a single condition
func (c *Compiler) CompileCondition(cond *models.Condition) (Rule, error) {
	if err := cond.Validate(); err != nil {
		return nil, err
	}

	switch cond.Type {
	case models.ConditionPrice:
		return NewPriceRule(cond.Symbol, PriceCompare(cond.Operator, cond.Value)), nil
	case models.ConditionTrend:
		return NewTrendRule(cond.Symbol), nil
	case models.ConditionCrossover:
		signal, err := indicator.ParseSignal(cond.Signal)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrInvalidSignal, err)
		}
		return NewCrossoverRule(cond.Symbol, signal), nil
	default:
		return nil, models.ErrInvalidConditionType
	}
}

// CompileRules compiles multiple definitions, keyed by rule ID
func (c *Compiler) CompileRules(defs []*models.Rule) (map[string]Rule, error) {
	compiled := make(map[string]Rule, len(defs))

	for _, def := range defs {
		rule, err := c.CompileRule(def)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %s: %w", def.ID, err)
		}
		compiled[def.ID] = rule
	}

	return compiled, nil
}

// CompileEnabledRules compiles only enabled definitions
func (c *Compiler) CompileEnabledRules(defs []*models.Rule) (map[string]Rule, error) {
	enabled := make([]*models.Rule, 0, len(defs))

	for _, def := range defs {
		if def.Enabled {
			enabled = append(enabled, def)
		}
	}

	return c.CompileRules(enabled)
}
