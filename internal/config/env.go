package config

import (
	"strconv"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "SCRUB_"

// LookupFunc reports an environment variable's value. os.LookupEnv
// satisfies it.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides settings from the environment. Empty values are
// treated as set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FILE"); ok {
		c.Logging.File = v
	}
	if v, ok := lookup(EnvPrefix + "THEME_ACTIVE"); ok {
		c.Theme.Active = v
	}
	if v, ok := lookup(EnvPrefix + "DIVIDER"); ok {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil || d <= 0 {
			return &ValidationError{Field: EnvPrefix + "DIVIDER", Message: "must be a positive number"}
		}
		for i := range c.Fields {
			if c.Fields[i].Divider == 0 {
				c.Fields[i].Divider = d
			}
		}
	}
	return nil
}
