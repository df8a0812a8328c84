package configs

import "time"

// Table defines configuration for the table interaction engine.
type Table struct {
	// ClickWindow is the single/double-click disambiguation delay.
	ClickWindow time.Duration `env:"CLICK_WINDOW" envDefault:"200ms"`
}
