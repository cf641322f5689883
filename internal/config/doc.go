// Package config loads the scrub demo configuration.
//
// A configuration file is TOML or YAML, chosen by extension, and lists
// the scrubbable fields to lay out plus logging and theme settings:
//
//	[logging]
//	level = "debug"
//	file = "scrub.log"
//
//	[theme]
//	active = "#3b82f6"
//	label = "#9ca3af"
//
//	[[field]]
//	id = "width"
//	label = "Width"
//	value = "120"
//	resolver = "horizontal"
//	divider = 4
//	drivers = ["pointer", "wheel"]
//	adapters = ["text", "log"]
//	min = 0
//	max = 400
//
// After parsing, environment variables with the SCRUB_ prefix override
// file values:
//
//   - SCRUB_LOG_LEVEL: logging.level
//   - SCRUB_LOG_FILE: logging.file
//   - SCRUB_DIVIDER: divider for fields that do not set one
//   - SCRUB_THEME_ACTIVE: theme.active
//
// Names of drivers, resolvers and adapters are not checked here. Unknown
// names fall back to defaults when the bindings are built.
//
// Watcher reports writes to the configuration file so the host can
// rebuild its bindings.
package config
