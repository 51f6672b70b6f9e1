package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "testdata/statements", cfg.Verify.StatementsDir)
	assert.Empty(t, cfg.Merchants)
}

func TestLoadConfigFile(t *testing.T) {
	configContent := `
listen_addr = ":9090"
log_level = "debug"

[[merchants]]
pattern = "DUNKIN"
name = "Dunkin'"

[verify]
statements_dir = "fixtures"

[verify.expected.sample-01]
total_spent = 1234.56
total_credits = 78.90
net_spending = 1155.66
`

	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "fixtures", cfg.Verify.StatementsDir)

	require.Len(t, cfg.Merchants, 1)
	assert.Equal(t, "DUNKIN", cfg.Merchants[0].Pattern)
	assert.Equal(t, "Dunkin'", cfg.Merchants[0].Name)

	mappings := cfg.MerchantMappings()
	require.Len(t, mappings, 1)
	assert.Equal(t, "Dunkin'", mappings[0].Name)

	expected, ok := cfg.Verify.Expected["sample-01"]
	require.True(t, ok)
	assert.Equal(t, 1234.56, expected.TotalSpent)
	assert.Equal(t, 78.90, expected.TotalCredits)
	assert.Equal(t, 1155.66, expected.NetSpending)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("nonexistent.toml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}
