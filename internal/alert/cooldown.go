package alert

import (
	"fmt"
	"time"
)

// CooldownManager suppresses repeated alerts for the same rule and symbol.
// Time is measured on observation timestamps rather than the wall clock so
// that replaying historical updates behaves the same as live processing.
type CooldownManager struct {
	ttl       time.Duration
	lastFired map[string]time.Time
}

// NewCooldownManager creates a cooldown manager. A ttl <= 0 disables cooldowns.
func NewCooldownManager(ttl time.Duration) *CooldownManager {
	return &CooldownManager{
		ttl:       ttl,
		lastFired: make(map[string]time.Time),
	}
}

// GenerateCooldownKey generates a cooldown key
// Format: cooldown:{alert_id}:{symbol}
func GenerateCooldownKey(alertID, symbol string) string {
	return fmt.Sprintf("cooldown:%s:%s", alertID, symbol)
}

// IsInCooldown checks whether key fired less than ttl away from at
func (c *CooldownManager) IsInCooldown(key string, at time.Time) bool {
	if c.ttl <= 0 {
		return false
	}

	last, exists := c.lastFired[key]
	if !exists {
		return false
	}

	elapsed := at.Sub(last)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return elapsed < c.ttl
}

// SetCooldown records that key fired at the given time
func (c *CooldownManager) SetCooldown(key string, at time.Time) {
	if c.ttl <= 0 {
		return
	}
	c.lastFired[key] = at
}

// CheckAndSetCooldown checks if in cooldown and sets it if not
// Returns true if the alert should be suppressed
func (c *CooldownManager) CheckAndSetCooldown(key string, at time.Time) bool {
	if c.IsInCooldown(key, at) {
		return true
	}
	c.SetCooldown(key, at)
	return false
}

// TTL returns the cooldown period
func (c *CooldownManager) TTL() time.Duration {
	return c.ttl
}
