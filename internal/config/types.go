// SPDX-License-Identifier: MPL-2.0

package config

// Config is the dispatcher configuration.
type Config struct {
	// Root overrides the sub installation root. Empty means detect it from
	// the executable's location (<root>/bin/<launcher>).
	Root string `mapstructure:"root" toml:"root,omitempty"`
	// Name overrides the display name used in error messages.
	Name string `mapstructure:"name" toml:"name,omitempty"`
	// Runner selects the execution semantics: "exec" (replace the current
	// process), "spawn" (spawn and wait) or "virtual" (embedded shell).
	Runner string `mapstructure:"runner" toml:"runner"`
	// Shell overrides the shell used to evaluate sh- leaves.
	Shell string `mapstructure:"shell" toml:"shell,omitempty"`
	// PrependPath controls whether the sub's lib and bin directories are
	// put on the dispatched command's PATH.
	PrependPath bool `mapstructure:"prepend_path" toml:"prepend_path"`
	// UI holds presentation settings.
	UI UIConfig `mapstructure:"ui" toml:"ui"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// ColorScheme selects help rendering colors: "auto", "dark" or "light".
	ColorScheme string `mapstructure:"color_scheme" toml:"color_scheme"`
	// Verbose enables debug diagnostics on stderr.
	Verbose bool `mapstructure:"verbose" toml:"verbose"`
}

// DefaultConfig returns the built-in defaults: process-replacing dispatch
// with lib/bin on the command's PATH.
func DefaultConfig() *Config {
	return &Config{
		Runner:      "exec",
		PrependPath: true,
		UI: UIConfig{
			ColorScheme: "auto",
		},
	}
}
