package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/scrubbing/internal/renderer/core"
)

// Config is the complete demo configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Theme   ThemeConfig   `toml:"theme" yaml:"theme"`

	// Document is the initial JSON document for fields using the json adapter.
	Document string `toml:"document" yaml:"document"`

	Fields []Field `toml:"field" yaml:"fields"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log output; the terminal is in use by the surface.
	// Empty disables logging.
	File string `toml:"file" yaml:"file"`
}

// ThemeConfig holds hex colours for the surface theme. Empty means the
// terminal default.
type ThemeConfig struct {
	Active string `toml:"active" yaml:"active"`
	Label  string `toml:"label" yaml:"label"`
}

// Field is one scrubbable value on the surface.
type Field struct {
	ID    string `toml:"id" yaml:"id"`
	Label string `toml:"label" yaml:"label"`
	// Value is the initial text.
	Value string `toml:"value" yaml:"value"`

	Resolver string   `toml:"resolver" yaml:"resolver"`
	Divider  float64  `toml:"divider" yaml:"divider"`
	Drivers  []string `toml:"drivers" yaml:"drivers"`
	Adapters []string `toml:"adapters" yaml:"adapters"`

	// Min and Max clamp written values when set.
	Min *int `toml:"min" yaml:"min"`
	Max *int `toml:"max" yaml:"max"`

	// JSONPath locates the value in Config.Document for the json adapter.
	JSONPath string `toml:"json_path" yaml:"json_path"`
	// Script is Lua source for the script adapter.
	Script string `toml:"script" yaml:"script"`
}

// HasAdapter reports whether the field names adapter, ignoring case.
func (f Field) HasAdapter(name string) bool {
	return slices.ContainsFunc(f.Adapters, func(a string) bool {
		return strings.EqualFold(a, name)
	})
}

// Default returns the built-in demo configuration.
func Default() *Config {
	lo, hi := 0, 100
	return &Config{
		Logging:  LoggingConfig{Level: "info"},
		Theme:    ThemeConfig{Active: "#3b82f6", Label: "#9ca3af"},
		Document: `{"box":{"x":12,"y":4}}`,
		Fields: []Field{
			{ID: "width", Label: "Width", Value: "120", Resolver: "horizontal", Divider: 2},
			{ID: "height", Label: "Height", Value: "80", Resolver: "vertical"},
			{ID: "opacity", Label: "Opacity", Value: "50", Min: &lo, Max: &hi},
			{ID: "x", Label: "Box X", Adapters: []string{"json"}, JSONPath: "box.x"},
			{
				ID: "angle", Label: "Angle", Value: "90deg", Adapters: []string{"script", "log"},
				Script: `
function start(text)
  local n = string.match(text, "%-?%d+")
  if n == nil then return nil end
  return tonumber(n)
end
function change(value, delta)
  return (value % 360) .. "deg"
end
`,
			},
		},
	}
}

var levels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks the configuration and returns every problem found,
// joined. Each problem is a *ValidationError.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Logging.Level != "" && !slices.Contains(levels, strings.ToLower(c.Logging.Level)) {
		invalid("logging.level", "unknown level %q", c.Logging.Level)
	}
	for name, hex := range map[string]string{"theme.active": c.Theme.Active, "theme.label": c.Theme.Label} {
		if hex == "" {
			continue
		}
		if _, err := core.ColorFromHex(hex); err != nil {
			invalid(name, "invalid colour %q", hex)
		}
	}

	seen := make(map[string]bool)
	for i, f := range c.Fields {
		path := fmt.Sprintf("field[%d]", i)
		switch {
		case f.ID == "":
			invalid(path+".id", "required")
		case seen[f.ID]:
			invalid(path+".id", "duplicate id %q", f.ID)
		}
		seen[f.ID] = true

		if f.Divider < 0 {
			invalid(path+".divider", "must not be negative")
		}
		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			invalid(path+".min", "greater than max")
		}
		if f.HasAdapter("json") && f.JSONPath == "" {
			invalid(path+".json_path", "required by the json adapter")
		}
		if f.HasAdapter("script") && strings.TrimSpace(f.Script) == "" {
			invalid(path+".script", "required by the script adapter")
		}
	}

	return errors.Join(errs...)
}
