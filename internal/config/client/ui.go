package client

import "time"

// UIClientConfig holds the interactive terminal settings
type UIClientConfig struct {
	// CompactWidth is the terminal width (columns) below which the compact layout is used
	CompactWidth    int    `mapstructure:"compact_width"    yaml:"compact_width"`
	AltScreen       bool   `mapstructure:"alt_screen"       yaml:"alt_screen"`
	// RefreshInterval is the period of the background health check; empty disables it
	RefreshInterval string `mapstructure:"refresh_interval" yaml:"refresh_interval"`
}

func (c UIClientConfig) GetRefreshInterval() time.Duration {
	interval, err := time.ParseDuration(c.RefreshInterval)
	if err != nil || interval < 0 {
		return 0
	}
	return interval
}

// DeviceClientConfig holds the device capability settings
type DeviceClientConfig struct {
	DocumentsDir string `mapstructure:"documents_dir" yaml:"documents_dir"`
	// ShareCommand is run with the shared URL appended; empty disables sharing
	ShareCommand string `mapstructure:"share_command" yaml:"share_command"`
}
