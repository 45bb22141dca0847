// Package config provides a Viper-backed implementation of the plugin.Config
// interface plus logger construction and configuration loading.
package config

import (
	"fmt"
	"time"

	"github.com/probeworks/lanscope/pkg/plugin"
	"github.com/spf13/viper"
)

// Compile-time interface guard.
var _ plugin.Config = (*ViperConfig)(nil)

// ViperConfig wraps a Viper instance to implement plugin.Config.
type ViperConfig struct {
	v *viper.Viper
}

// New creates a Config backed by the given Viper instance.
func New(v *viper.Viper) *ViperConfig {
	if v == nil {
		v = viper.New()
	}
	return &ViperConfig{v: v}
}

func (c *ViperConfig) Unmarshal(target any) error {
	return c.v.Unmarshal(target)
}

func (c *ViperConfig) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *ViperConfig) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *ViperConfig) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *ViperConfig) GetDuration(key string) time.Duration {
	return c.v.GetDuration(key)
}

func (c *ViperConfig) IsSet(key string) bool {
	return c.v.IsSet(key)
}

func (c *ViperConfig) Sub(key string) plugin.Config {
	sub := c.v.Sub(key)
	if sub == nil {
		return New(nil)
	}
	return New(sub)
}

// Viper returns the underlying Viper instance for direct access
// (e.g., by main for top-level settings like logging.level).
func (c *ViperConfig) Viper() *viper.Viper {
	return c.v
}

// Load reads configuration from an optional file and environment variables.
// Environment overrides use the LANSCOPE_ prefix (LANSCOPE_LOGGING_LEVEL=debug).
func Load(configPath string) (*viper.Viper, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Module defaults
	v.SetDefault("modules.sweep.subnet", "192.168.1.0/24")
	v.SetDefault("modules.sweep.scan_timeout", "2m")
	v.SetDefault("modules.sweep.probe_timeout", "2s")
	v.SetDefault("modules.sweep.ping_count", 1)
	v.SetDefault("modules.sweep.concurrency", 64)
	v.SetDefault("modules.sweep.probe_rate", 256)
	v.SetDefault("modules.sweep.max_hosts", 1024)
	v.SetDefault("modules.sweep.arp_enabled", true)
	v.SetDefault("modules.portscan.scan_timeout", "1m")
	v.SetDefault("modules.portscan.probe_timeout", "500ms")
	v.SetDefault("modules.portscan.concurrency", 50)
	v.SetDefault("modules.sandbox.exec_timeout", "30s")
	v.SetDefault("modules.sandbox.max_output_bytes", 64*1024)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("lanscope")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/lanscope")
	}

	v.SetEnvPrefix("LANSCOPE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is fine -- use defaults
	}

	return v, nil
}
