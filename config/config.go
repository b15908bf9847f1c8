package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Storage   StorageConfig   `mapstructure:"storage"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// BackendConfig aponta para o backend de pedidos (colaborador externo).
type BackendConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type DashboardConfig struct {
	CompanyID    string        `mapstructure:"company_id"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	RingInterval time.Duration `mapstructure:"ring_interval"`
}

type StorageConfig struct {
	SQLitePath string `mapstructure:"sqlite_path"`
}

// Load le o config.yaml e aplica defaults. Variaveis de ambiente
// sobrescrevem com prefixo DASH_ (ex.: DASH_BACKEND_BASE_URL).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("backend.request_timeout", 10*time.Second)
	v.SetDefault("dashboard.poll_interval", 30*time.Second)
	v.SetDefault("dashboard.ring_interval", 5*time.Second)
	v.SetDefault("storage.sqlite_path", "dashboard.db")

	v.SetEnvPrefix("DASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("erro lendo arquivo de configuracao: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("erro interpretando configuracao: %w", err)
	}

	return &cfg, nil
}
