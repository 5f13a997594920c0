package client

import "time"

// APIClientConfig holds the backend connection settings
type APIClientConfig struct {
	// URL is the explicit backend base URL; it wins over Origin when set
	URL string `mapstructure:"url"     yaml:"url"`
	// Origin is the frontend address the backend URL is derived from
	Origin  string `mapstructure:"origin"  yaml:"origin"`
	Timeout string `mapstructure:"timeout" yaml:"timeout"`
}

// GetTimeout parses Timeout; zero means the transport default
func (c APIClientConfig) GetTimeout() time.Duration {
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return timeout
}
