package config

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	Level      string          `json:"level,omitempty"`      // debug, info, warn, error
	DebugMode  bool            `json:"debug_mode,omitempty"` // Master toggle - false = no logging
	Categories map[string]bool `json:"categories,omitempty"` // Per-category toggles
}

// IsCategoryEnabled returns whether logging is enabled for a category.
// Returns false if debug_mode is false.
// Returns true if debug_mode is true and category is enabled (or not specified).
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if !c.DebugMode {
		return false
	}
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}
