// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/luxfi/vaults/pkg/constants"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	require := require.New(t)
	t.Setenv(constants.EtherscanAPIKeyEnvVar, "")

	cfg, err := Load(LoadOptions{SearchDir: t.TempDir()})
	require.NoError(err)

	require.Equal("0.7.6", cfg.Solidity.Version)
	require.True(cfg.Solidity.Settings.Optimizer.Enabled)
	require.Equal(999999, cfg.Solidity.Settings.Optimizer.Runs)
	require.Equal("USD", cfg.GasReporter.Currency)
	require.Equal("ethers-v5", cfg.Typechain.Target)
	require.Equal("../../typescript/typechain/optics-xapps", cfg.Typechain.OutDir)
	require.False(cfg.Typechain.AlwaysGenerateOverloads)
	require.Empty(cfg.Etherscan.APIKey)

	network, ok := cfg.Network("harmony_testnet")
	require.True(ok)
	require.Equal("https://api.s0.b.hmny.io", network.URL)

	require.Equal(1, cfg.Verify.Concurrency)
	require.Equal(5*time.Second, cfg.Verify.PollInterval)
}

func TestLoadConfigFileOverrides(t *testing.T) {
	require := require.New(t)
	t.Setenv(constants.EtherscanAPIKeyEnvVar, "")
	dir := t.TempDir()
	content := `
solidity:
  version: 0.8.19
networks:
  goerli:
    url: https://goerli.example.org
verify:
  concurrency: 3
  pollInterval: 250ms
`
	require.NoError(os.WriteFile(filepath.Join(dir, "vaults.yaml"), []byte(content), 0o600))

	cfg, err := Load(LoadOptions{SearchDir: dir})
	require.NoError(err)
	require.Equal("0.8.19", cfg.Solidity.Version)
	require.Equal(999999, cfg.Solidity.Settings.Optimizer.Runs)
	require.Equal(3, cfg.Verify.Concurrency)
	require.Equal(250*time.Millisecond, cfg.Verify.PollInterval)
	require.Equal([]string{"goerli", "harmony_testnet"}, cfg.NetworkNames())
}

func TestLoadExplicitConfigFileMissing(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
}

func TestLoadAPIKeyFromEnvironment(t *testing.T) {
	require := require.New(t)
	t.Setenv(constants.EtherscanAPIKeyEnvVar, "ABC123")

	cfg, err := Load(LoadOptions{SearchDir: t.TempDir()})
	require.NoError(err)
	require.Equal("ABC123", cfg.Etherscan.APIKey)
}

func TestLoadEnvFileDoesNotOverrideProcessEnv(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(os.WriteFile(envFile, []byte(constants.EtherscanAPIKeyEnvVar+"=FROM_FILE\n"), 0o600))
	t.Setenv(constants.EtherscanAPIKeyEnvVar, "FROM_PROCESS")

	cfg, err := Load(LoadOptions{SearchDir: dir, EnvFile: envFile})
	require.NoError(err)
	require.Equal("FROM_PROCESS", cfg.Etherscan.APIKey)
}

func TestLoadEnvFileSetsUnsetVariables(t *testing.T) {
	require := require.New(t)
	const key = "VAULTS_TEST_ENV_FILE_ONLY"
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(os.WriteFile(envFile, []byte(key+"=from-file\n"), 0o600))
	require.NoError(os.Unsetenv(key))
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	require.NoError(LoadEnvFile(envFile))
	require.Equal("from-file", os.Getenv(key))
}

func TestLoadEnvFileMissingIsIgnored(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")))
	require.NoError(t, LoadEnvFile(""))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Solidity: SolidityConfig{
				Version:  "0.7.6",
				Settings: SoliditySettings{Optimizer: OptimizerConfig{Enabled: true, Runs: 200}},
			},
			Networks: map[string]NetworkConfig{"mainnet": {URL: "https://rpc.example.org"}},
			Verify:   VerifyConfig{Concurrency: 1, PollAttempts: 1},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty solidity version", func(c *Config) { c.Solidity.Version = "" }},
		{"non-semver solidity version", func(c *Config) { c.Solidity.Version = "latest" }},
		{"zero optimizer runs", func(c *Config) { c.Solidity.Settings.Optimizer.Runs = 0 }},
		{"empty network url", func(c *Config) { c.Networks["bad"] = NetworkConfig{} }},
		{"relative network url", func(c *Config) { c.Networks["bad"] = NetworkConfig{URL: "localhost:8545"} }},
		{"zero concurrency", func(c *Config) { c.Verify.Concurrency = 0 }},
		{"zero poll attempts", func(c *Config) { c.Verify.PollAttempts = 0 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.True(t, errors.Is(err, constants.ErrInvalidConfig), "got %v", err)
		})
	}

	disabled := valid()
	disabled.Solidity.Settings.Optimizer = OptimizerConfig{Enabled: false, Runs: 0}
	require.NoError(t, disabled.Validate())
}

func TestRedacted(t *testing.T) {
	require := require.New(t)
	cfg := &Config{
		Etherscan: EtherscanConfig{APIKey: "secret"},
		Networks:  map[string]NetworkConfig{"mainnet": {URL: "https://rpc.example.org"}},
	}
	out := cfg.Redacted()
	require.Equal(constants.RedactedValue, out.Etherscan.APIKey)
	require.Equal("secret", cfg.Etherscan.APIKey)

	out.Networks["other"] = NetworkConfig{URL: "https://x"}
	require.Len(cfg.Networks, 1)
}
