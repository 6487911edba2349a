package rules

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mohamedkhairy/stock-alerter/internal/models"
)

// InMemoryRuleStore is an in-memory implementation of RuleStore. Listings
// are sorted by rule ID.
type InMemoryRuleStore struct {
	mu    sync.RWMutex
	rules map[string]*models.Rule
}

// NewInMemoryRuleStore creates a new in-memory rule store
func NewInMemoryRuleStore() *InMemoryRuleStore {
	return &InMemoryRuleStore{
		rules: make(map[string]*models.Rule),
	}
}

// GetRule retrieves a rule by ID
func (s *InMemoryRuleStore) GetRule(id string) (*models.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rule, exists := s.rules[id]
	if !exists {
		return nil, fmt.Errorf("rule not found: %s", id)
	}

	return copyRule(rule), nil
}

// GetAllRules retrieves all rules
func (s *InMemoryRuleStore) GetAllRules() ([]*models.Rule, error) {
	return s.list(func(*models.Rule) bool { return true }), nil
}

// GetEnabledRules retrieves all enabled rules
func (s *InMemoryRuleStore) GetEnabledRules() ([]*models.Rule, error) {
	return s.list(func(r *models.Rule) bool { return r.Enabled }), nil
}

func (s *InMemoryRuleStore) list(keep func(*models.Rule) bool) []*models.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules := make([]*models.Rule, 0, len(s.rules))
	for _, rule := range s.rules {
		if keep(rule) {
			rules = append(rules, copyRule(rule))
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	return rules
}

// AddRule adds a new rule
func (s *InMemoryRuleStore) AddRule(rule *models.Rule) error {
	if err := ValidateRule(rule); err != nil {
		return fmt.Errorf("invalid rule: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rules[rule.ID]; exists {
		return fmt.Errorf("rule already exists: %s", rule.ID)
	}

	now := time.Now()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	if rule.UpdatedAt.IsZero() {
		rule.UpdatedAt = now
	}

	s.rules[rule.ID] = copyRule(rule)

	return nil
}

// AddRules adds several rules, stopping at the first failure
func (s *InMemoryRuleStore) AddRules(rules []*models.Rule) error {
	for _, rule := range rules {
		if err := s.AddRule(rule); err != nil {
			return err
		}
	}
	return nil
}

// UpdateRule updates an existing rule
func (s *InMemoryRuleStore) UpdateRule(rule *models.Rule) error {
	if err := ValidateRule(rule); err != nil {
		return fmt.Errorf("invalid rule: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.rules[rule.ID]
	if !exists {
		return fmt.Errorf("rule not found: %s", rule.ID)
	}

	// Preserve CreatedAt
	rule.CreatedAt = existing.CreatedAt
	rule.UpdatedAt = time.Now()

	s.rules[rule.ID] = copyRule(rule)

	return nil
}

// DeleteRule deletes a rule by ID
func (s *InMemoryRuleStore) DeleteRule(id string) error {
	if id == "" {
		return fmt.Errorf("rule ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rules[id]; !exists {
		return fmt.Errorf("rule not found: %s", id)
	}

	delete(s.rules, id)

	return nil
}

// EnableRule enables a rule
func (s *InMemoryRuleStore) EnableRule(id string) error {
	return s.setRuleEnabled(id, true)
}

// DisableRule disables a rule
func (s *InMemoryRuleStore) DisableRule(id string) error {
	return s.setRuleEnabled(id, false)
}

func (s *InMemoryRuleStore) setRuleEnabled(id string, enabled bool) error {
	if id == "" {
		return fmt.Errorf("rule ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rule, exists := s.rules[id]
	if !exists {
		return fmt.Errorf("rule not found: %s", id)
	}

	rule.Enabled = enabled
	rule.UpdatedAt = time.Now()

	return nil
}

// Count returns the number of rules in the store
func (s *InMemoryRuleStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rules)
}

// copyRule creates a deep copy of a rule
func copyRule(rule *models.Rule) *models.Rule {
	if rule == nil {
		return nil
	}

	copied := *rule
	copied.Conditions = make([]models.Condition, len(rule.Conditions))
	copy(copied.Conditions, rule.Conditions)

	return &copied
}
