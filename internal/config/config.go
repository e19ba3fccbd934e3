package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode        string `mapstructure:"mode"`
	Port        int    `mapstructure:"port"`
	Secret      string `mapstructure:"secret"`
	SessionName string `mapstructure:"session_name"`

	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`

	HistoryLimit int `mapstructure:"history_limit"`

	NominatimURL   string        `mapstructure:"nominatim_url"`
	OSRMURL        string        `mapstructure:"osrm_url"`
	NavUserAgent   string        `mapstructure:"nav_user_agent"`
	GeocodeTimeout time.Duration `mapstructure:"geocode_timeout"`
	RouteTimeout   time.Duration `mapstructure:"route_timeout"`

	ChatRateLimit    int           `mapstructure:"chat_rate_limit"`
	ChatRateInterval time.Duration `mapstructure:"chat_rate_interval"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("secret", "walkingbuddy-dev-secret")
	v.SetDefault("session_name", "wbsession")
	v.SetDefault("read_limit", 4096)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("history_limit", 50)
	v.SetDefault("nominatim_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("osrm_url", "https://router.project-osrm.org")
	v.SetDefault("nav_user_agent", "walkingbuddy-backend")
	v.SetDefault("geocode_timeout", "10s")
	v.SetDefault("route_timeout", "20s")
	v.SetDefault("chat_rate_limit", 20)
	v.SetDefault("chat_rate_interval", "10s")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
