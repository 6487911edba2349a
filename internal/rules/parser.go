package rules

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mohamedkhairy/stock-alerter/internal/models"
)

// ParseRule parses a JSON rule definition into a Rule struct
func ParseRule(data []byte) (*models.Rule, error) {
	var rule models.Rule

	if err := json.Unmarshal(data, &rule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rule: %w", err)
	}

	prepare(&rule)

	if err := ValidateRule(&rule); err != nil {
		return nil, fmt.Errorf("invalid rule: %w", err)
	}

	return &rule, nil
}

// ParseRules parses multiple rule definitions from a JSON array
func ParseRules(data []byte) ([]*models.Rule, error) {
	var rules []*models.Rule

	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rules: %w", err)
	}

	for i, rule := range rules {
		if rule == nil {
			return nil, fmt.Errorf("invalid rule at index %d: null entry", i)
		}

		prepare(rule)

		if err := ValidateRule(rule); err != nil {
			return nil, fmt.Errorf("invalid rule at index %d: %w", i, err)
		}
	}

	return rules, nil
}

// ParseRulesFromReader parses a JSON array of rule definitions from reader
func ParseRulesFromReader(reader io.Reader) ([]*models.Rule, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule data: %w", err)
	}

	return ParseRules(data)
}

// LoadRulesFile parses the rule definitions stored in the file at path
func LoadRulesFile(path string) ([]*models.Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()

	return ParseRulesFromReader(f)
}

// prepare fills in defaults for fields a definition may omit
func prepare(rule *models.Rule) {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if rule.Name == "" {
		rule.Name = rule.Description
	}
	if rule.Action.Type == "" {
		rule.Action.Type = models.ActionPrint
	}

	// Set timestamps if not provided
	now := time.Now()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	if rule.UpdatedAt.IsZero() {
		rule.UpdatedAt = now
	}
}
