package log

import "github.com/rs/zerolog"

// Config controls logger formatting and level.
// Populated from LOGGER_* environment variables by the cfg package.
type Config struct {
	HumanFriendly   bool   `envconfig:"optional"` // console output instead of JSON lines
	NoColoredOutput bool   `envconfig:"optional"` // disable ANSI colors in console output
	Level           string `envconfig:"optional"` // "trace", "debug", "info", "warn", "error"
}

// SetDefault fills in the level when none was configured.
func (c *Config) SetDefault() {
	if c.Level == "" {
		c.Level = zerolog.InfoLevel.String()
	}
}
