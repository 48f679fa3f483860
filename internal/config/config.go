package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"blackjack-server/internal/util"
)

// Config provides configuration for the blackjack server
type Config struct {
	loaded   bool
	TCPAddr  string `yaml:"tcpAddr" envconfig:"tcp_addr"`
	HTTPAddr string `yaml:"httpAddr" envconfig:"http_addr"`
	Log      struct {
		Level             string `yaml:"level" envconfig:"log_level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Game struct {
		StartingBalance int `yaml:"startingBalance" envconfig:"starting_balance"`
	} `yaml:"game"`
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The config file is optional; environment variables always apply on top.
func Load() error {
	config = Config{}
	config.TCPAddr = ":35001"
	config.HTTPAddr = ":5000"
	config.Game.StartingBalance = 500

	configFile := util.Getenv("BLACKJACK_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("blackjack", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
