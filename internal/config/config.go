package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/conniexu444/parse-and-track-spending/internal/models"
	"github.com/conniexu444/parse-and-track-spending/internal/parser"
)

// Config represents the application configuration.
type Config struct {
	ListenAddr string         `mapstructure:"listen_addr"`
	LogLevel   string         `mapstructure:"log_level"`
	Merchants  []MerchantRule `mapstructure:"merchants"`
	Verify     VerifyConfig   `mapstructure:"verify"`
}

// MerchantRule is an extra merchant-mapping entry layered in front of the
// built-in table, so deployments can add or override friendly names without
// a code change.
type MerchantRule struct {
	Pattern string `mapstructure:"pattern"`
	Name    string `mapstructure:"name"`
}

// VerifyConfig drives the statement verification harness.
type VerifyConfig struct {
	StatementsDir string `mapstructure:"statements_dir"`
	// Expected maps a statement file name, without extension, to its
	// fixture-declared totals.
	Expected map[string]models.Totals `mapstructure:"expected"`
}

// Load reads configuration from an optional TOML file and the environment.
// A `.env` file in the working directory is loaded first when present.
func Load(configPath string) (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("verify.statements_dir", "testdata/statements")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// MerchantMappings converts the configured rules into parser mappings.
func (c *Config) MerchantMappings() []parser.MerchantMapping {
	mappings := make([]parser.MerchantMapping, 0, len(c.Merchants))
	for _, m := range c.Merchants {
		mappings = append(mappings, parser.MerchantMapping{Pattern: m.Pattern, Name: m.Name})
	}
	return mappings
}
