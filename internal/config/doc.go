// SPDX-License-Identifier: MPL-2.0

// Package config loads dispatcher configuration from a TOML file in the
// platform config directory, with SUBDUE_* environment overrides layered
// on top. Missing files are not an error; defaults keep the dispatcher
// operational on a fresh install.
package config
