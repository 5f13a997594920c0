package client

import (
	"fmt"

	"github.com/spf13/viper"
)

type BaseClientConfig struct {
	ShutdownTimeout string `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	API    APIClientConfig    `mapstructure:"api"    yaml:"api"`
	UI     UIClientConfig     `mapstructure:"ui"     yaml:"ui"`
	Device DeviceClientConfig `mapstructure:"device" yaml:"device"`
	Log    LogClientConfig    `mapstructure:"log"    yaml:"log"`
}

func LoadClientConfig() (*BaseClientConfig, error) {
	cfg := &BaseClientConfig{}

	setDefaults()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}
