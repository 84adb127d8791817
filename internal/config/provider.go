// SPDX-License-Identifier: MPL-2.0

package config

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// Provider loads configuration from explicit options. The abstraction lets
// tests supply canned configurations without touching the filesystem.
type Provider interface {
	Load(opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates the production file-backed provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
