// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads the project configuration: compiler settings,
// networks, typechain output, verification paths and the Etherscan key.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/luxfi/vaults/pkg/constants"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"golang.org/x/mod/semver"
)

type OptimizerConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Runs    int  `mapstructure:"runs" json:"runs" yaml:"runs"`
}

type SoliditySettings struct {
	Optimizer OptimizerConfig `mapstructure:"optimizer" json:"optimizer" yaml:"optimizer"`
}

type SolidityConfig struct {
	Version  string           `mapstructure:"version" json:"version" yaml:"version"`
	Settings SoliditySettings `mapstructure:"settings" json:"settings" yaml:"settings"`
}

type GasReporterConfig struct {
	Currency string `mapstructure:"currency" json:"currency" yaml:"currency"`
}

// NetworkConfig is a named JSON-RPC endpoint.
type NetworkConfig struct {
	URL string `mapstructure:"url" json:"url" yaml:"url"`
}

type TypechainConfig struct {
	OutDir string `mapstructure:"outDir" json:"outDir" yaml:"outDir"`
	Target string `mapstructure:"target" json:"target" yaml:"target"`
	// AlwaysGenerateOverloads emits full-signature overloads such as
	// deposit(uint256) even when a function is not overloaded.
	AlwaysGenerateOverloads bool `mapstructure:"alwaysGenerateOverloads" json:"alwaysGenerateOverloads" yaml:"alwaysGenerateOverloads"`
}

type EtherscanConfig struct {
	APIKey string `mapstructure:"apiKey" json:"apiKey" yaml:"apiKey"`
}

type PathsConfig struct {
	Deploys   string `mapstructure:"deploys" json:"deploys" yaml:"deploys"`
	Artifacts string `mapstructure:"artifacts" json:"artifacts" yaml:"artifacts"`
}

type VerifyConfig struct {
	Concurrency  int           `mapstructure:"concurrency" json:"concurrency" yaml:"concurrency"`
	PollInterval time.Duration `mapstructure:"pollInterval" json:"pollInterval" yaml:"pollInterval"`
	PollAttempts int           `mapstructure:"pollAttempts" json:"pollAttempts" yaml:"pollAttempts"`
}

// Config is the resolved project configuration. It is built once at start-up
// and handed to the application; nothing mutates it afterwards.
type Config struct {
	Solidity    SolidityConfig           `mapstructure:"solidity" json:"solidity" yaml:"solidity"`
	GasReporter GasReporterConfig        `mapstructure:"gasReporter" json:"gasReporter" yaml:"gasReporter"`
	Networks    map[string]NetworkConfig `mapstructure:"networks" json:"networks" yaml:"networks"`
	Typechain   TypechainConfig          `mapstructure:"typechain" json:"typechain" yaml:"typechain"`
	Etherscan   EtherscanConfig          `mapstructure:"etherscan" json:"etherscan" yaml:"etherscan"`
	Paths       PathsConfig              `mapstructure:"paths" json:"paths" yaml:"paths"`
	Verify      VerifyConfig             `mapstructure:"verify" json:"verify" yaml:"verify"`
}

// LoadOptions controls where Load looks for its inputs.
type LoadOptions struct {
	// ConfigFile is an explicit config file. When empty, SearchDir is
	// searched for vaults.{yaml,json,toml} and a missing file is fine.
	ConfigFile string
	SearchDir  string
	// EnvFile is a dotenv file merged into the process environment before
	// the config is resolved. A missing file is not an error.
	EnvFile string
}

// SetDefaults registers the project defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("solidity.version", constants.DefaultSolidityVersion)
	v.SetDefault("solidity.settings.optimizer.enabled", constants.DefaultOptimizerEnabled)
	v.SetDefault("solidity.settings.optimizer.runs", constants.DefaultOptimizerRuns)
	v.SetDefault("gasReporter.currency", constants.DefaultGasCurrency)
	v.SetDefault("networks."+constants.HarmonyTestnetNetwork+".url", constants.HarmonyTestnetRPCURL)
	v.SetDefault("typechain.outDir", constants.DefaultTypechainOutDir)
	v.SetDefault("typechain.target", constants.DefaultTypechainTarget)
	v.SetDefault("typechain.alwaysGenerateOverloads", false)
	v.SetDefault("etherscan.apiKey", "")
	v.SetDefault("paths.deploys", constants.DefaultDeploysDir)
	v.SetDefault("paths.artifacts", constants.DefaultArtifactsDir)
	v.SetDefault("verify.concurrency", constants.DefaultVerifyWorkers)
	v.SetDefault("verify.pollInterval", constants.DefaultPollInterval)
	v.SetDefault("verify.pollAttempts", constants.DefaultPollAttempts)
}

// LoadEnvFile merges a dotenv file into the process environment without
// overriding variables that are already set.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed loading env file %s: %w", path, err)
	}
	return nil
}

// Load resolves the project configuration.
// Priority: env vars > config file > defaults
func Load(opts LoadOptions) (*Config, error) {
	if err := LoadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("etherscan.apiKey", constants.EtherscanAPIKeyEnvVar); err != nil {
		return nil, err
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed reading config file %s: %w", opts.ConfigFile, err)
		}
	} else {
		dir := opts.SearchDir
		if dir == "" {
			dir = "."
		}
		v.AddConfigPath(dir)
		v.SetConfigName(constants.DefaultConfigFileName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed reading config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the CLI relies on.
func (c *Config) Validate() error {
	if c.Solidity.Version == "" {
		return fmt.Errorf("%w: solidity.version is empty", constants.ErrInvalidConfig)
	}
	if !semver.IsValid("v" + c.Solidity.Version) {
		return fmt.Errorf("%w: solidity.version %q is not a semantic version", constants.ErrInvalidConfig, c.Solidity.Version)
	}
	if c.Solidity.Settings.Optimizer.Enabled && c.Solidity.Settings.Optimizer.Runs <= 0 {
		return fmt.Errorf("%w: optimizer runs must be positive, got %d",
			constants.ErrInvalidConfig, c.Solidity.Settings.Optimizer.Runs)
	}
	for _, name := range c.NetworkNames() {
		raw := c.Networks[name].URL
		u, err := url.Parse(raw)
		if raw == "" || err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: network %s has invalid url %q", constants.ErrInvalidConfig, name, raw)
		}
	}
	if c.Verify.Concurrency < 1 {
		return fmt.Errorf("%w: verify.concurrency must be at least 1, got %d",
			constants.ErrInvalidConfig, c.Verify.Concurrency)
	}
	if c.Verify.PollAttempts < 1 {
		return fmt.Errorf("%w: verify.pollAttempts must be at least 1, got %d",
			constants.ErrInvalidConfig, c.Verify.PollAttempts)
	}
	return nil
}

// Network returns the named network entry.
func (c *Config) Network(name string) (NetworkConfig, bool) {
	n, ok := c.Networks[name]
	return n, ok
}

// NetworkNames returns the configured network names in sorted order.
func (c *Config) NetworkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for name := range c.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Redacted returns a copy safe to print: the API key is masked.
func (c *Config) Redacted() *Config {
	out := *c
	out.Networks = make(map[string]NetworkConfig, len(c.Networks))
	for k, n := range c.Networks {
		out.Networks[k] = n
	}
	if out.Etherscan.APIKey != "" {
		out.Etherscan.APIKey = constants.RedactedValue
	}
	return &out
}
