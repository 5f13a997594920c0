package client

import "github.com/spf13/viper"

func GetClientDefault() BaseClientConfig {
	return BaseClientConfig{
		ShutdownTimeout: "10s",

		API: APIClientConfig{
			URL:     "",
			Origin:  "http://localhost:5173",
			Timeout: "30s",
		},
		UI: UIClientConfig{
			CompactWidth:    100,
			AltScreen:       true,
			RefreshInterval: "30s",
		},
		Device: DeviceClientConfig{
			DocumentsDir: "",
			ShareCommand: "",
		},
		Log: LogClientConfig{
			Level:      "INFO",
			TimeFormat: "2006-01-02 15:04:05",
			File:       "",
			NoColor:    false,
			JSON:       false,
			NoTerminal: false,
			Rotation: LogClientRotationConfig{
				MaxSize:    128,
				MaxBackups: 5,
				MaxAge:     16,
				Compress:   false,
			},
		},
	}
}

func setDefaults() {
	defaults := GetClientDefault()

	viper.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)

	viper.SetDefault("api.url", defaults.API.URL)
	viper.SetDefault("api.origin", defaults.API.Origin)
	viper.SetDefault("api.timeout", defaults.API.Timeout)

	viper.SetDefault("ui.compact_width", defaults.UI.CompactWidth)
	viper.SetDefault("ui.alt_screen", defaults.UI.AltScreen)
	viper.SetDefault("ui.refresh_interval", defaults.UI.RefreshInterval)

	viper.SetDefault("device.documents_dir", defaults.Device.DocumentsDir)
	viper.SetDefault("device.share_command", defaults.Device.ShareCommand)

	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.time_format", defaults.Log.TimeFormat)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("log.no_color", defaults.Log.NoColor)
	viper.SetDefault("log.json", defaults.Log.JSON)
	viper.SetDefault("log.no_terminal", defaults.Log.NoTerminal)
	viper.SetDefault("log.rotation.max_size", defaults.Log.Rotation.MaxSize)
	viper.SetDefault("log.rotation.max_backups", defaults.Log.Rotation.MaxBackups)
	viper.SetDefault("log.rotation.max_age", defaults.Log.Rotation.MaxAge)
	viper.SetDefault("log.rotation.compress", defaults.Log.Rotation.Compress)
}
