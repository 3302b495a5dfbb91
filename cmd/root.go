// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	luxlog "github.com/luxfi/log"
	"github.com/luxfi/vaults/cmd/configcmd"
	"github.com/luxfi/vaults/cmd/taskscmd"
	"github.com/luxfi/vaults/pkg/application"
	"github.com/luxfi/vaults/pkg/config"
	"github.com/luxfi/vaults/pkg/constants"
	"github.com/luxfi/vaults/pkg/task"
	"github.com/luxfi/vaults/pkg/tasks"
	"github.com/luxfi/vaults/pkg/ux"
	"github.com/luxfi/vaults/pkg/verification"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	app        *application.Vaults
	logFactory luxlog.Factory

	Version     = "0.1.0"
	cfgFile     string
	envFile     string
	networkName string
	logLevel    string
	verboseFlag bool
	debugFlag   bool
	quietFlag   bool
)

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVar(&cfgFile, "config", "", "project config file (default is ./vaults.{yaml,json,toml})")
	fs.StringVar(&envFile, "env-file", constants.DefaultEnvFile, "dotenv file merged into the environment at start-up")
	fs.StringVar(&networkName, "network", constants.DefaultNetwork, "network to operate on")
	fs.StringVar(&logLevel, "log-level", "WARN", "log level for the application")
	fs.BoolVar(&verboseFlag, "verbose", false, "Show verbose output (info level logs)")
	fs.BoolVar(&debugFlag, "debug", false, "Show debug output (debug level logs)")
	fs.BoolVar(&quietFlag, "quiet", false, "Show only errors (quiet mode)")
}

// NewRootCmd builds the CLI for args. The project configuration, and with
// it the Etherscan key, is resolved here once, before any command runs, so
// tasks get the credential injected at construction.
func NewRootCmd(args []string) *cobra.Command {
	app = application.New()

	opts := loadOptions(args)
	conf, loadErr := config.Load(opts)
	apiKey := ""
	if loadErr == nil {
		apiKey = conf.Etherscan.APIKey
	}

	registry := task.NewRegistry()
	if err := tasks.Register(registry, apiKey, verification.VerifyLatestBridgeDeploy); err != nil && loadErr == nil {
		loadErr = err
	}

	rootCmd := &cobra.Command{
		Use:   constants.CLIName,
		Short: "Smart contract project tooling",
		Long: `vaults - project tooling for the bridge contracts.

Tasks run against the network selected with --network. The Etherscan API
key is read from ETHERSCAN_API_KEY (optionally seeded from --env-file).

QUICK START:

  # List the available tasks
  vaults tasks

  # Verify the latest bridge deploy on goerli
  vaults --network goerli verify-latest-deploy

  # Show the resolved configuration
  vaults config show`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if loadErr != nil {
				return loadErr
			}
			return createApp(cmd, conf, opts.SearchDir)
		},
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Disable printing the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(configcmd.NewCmd(app))
	rootCmd.AddCommand(taskscmd.NewCmd(registry))
	for _, c := range registry.Commands(func() *application.Vaults { return app }) {
		rootCmd.AddCommand(c)
	}

	rootCmd.SetArgs(args)
	return rootCmd
}

// loadOptions peeks at the flags that decide where configuration comes
// from. Everything else, unknown flags included, is left to cobra.
func loadOptions(args []string) config.LoadOptions {
	var file, env string
	boot := &cobra.Command{
		Use:                constants.CLIName,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	}
	boot.Flags().StringVar(&file, "config", "", "")
	boot.Flags().StringVar(&env, "env-file", constants.DefaultEnvFile, "")
	_ = boot.ParseFlags(args)

	searchDir := "."
	if file != "" {
		searchDir = filepath.Dir(file)
	}
	if abs, err := filepath.Abs(searchDir); err == nil {
		searchDir = abs
	}
	return config.LoadOptions{ConfigFile: file, SearchDir: searchDir, EnvFile: env}
}

func createApp(_ *cobra.Command, conf *config.Config, baseDir string) error {
	level, err := displayLevel()
	if err != nil {
		return err
	}
	log, err := setupLogging()
	if err != nil {
		return err
	}
	// Adjust the display level only once flags are parsed
	logFactory.SetDisplayLevel(constants.CLIName, level)

	app.Setup(baseDir, log, conf, networkName)
	app.Log.Debug("application ready",
		zap.String("network", app.NetworkName()),
		zap.String("base-dir", app.GetBaseDir()),
	)
	return nil
}

// displayLevel picks the console log level. --debug wins over --verbose,
// which wins over --quiet, which wins over --log-level.
func displayLevel() (luxlog.Level, error) {
	name := strings.ToUpper(logLevel)
	switch {
	case debugFlag:
		name = "DEBUG"
	case verboseFlag:
		name = "INFO"
	case quietFlag:
		name = "ERROR"
	}
	level, err := luxlog.ToLevel(name)
	if err != nil {
		return level, fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	return level, nil
}

func setupLogging() (luxlog.Logger, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("unable to find home directory: %w", err)
	}

	config := luxlog.Config{}
	config.LogLevel = luxlog.Level(-6) // Info level for file logging

	// Set default display level to WARN (quiet by default)
	config.DisplayLevel, _ = luxlog.ToLevel("WARN")

	config.Directory = filepath.Join(home, constants.BaseDirName, constants.LogDir)
	if err := os.MkdirAll(config.Directory, constants.DefaultPerms755); err != nil {
		return nil, fmt.Errorf("failed creating log directory: %w", err)
	}

	// some logging config params
	config.LogFormat = luxlog.Colors
	config.MaxSize = constants.MaxLogFileSize
	config.MaxFiles = constants.MaxNumOfLogFiles
	config.MaxAge = constants.RetainOldFiles

	// Register ux package as internal so caller tracking shows actual source, not the wrapper
	luxlog.RegisterInternalPackages("github.com/luxfi/vaults/pkg/ux")

	factory := luxlog.NewFactoryWithConfig(config)
	log, err := factory.Make(constants.CLIName)
	if err != nil {
		factory.Close()
		return nil, fmt.Errorf("failed setting up logging, exiting: %w", err)
	}
	logFactory = factory
	// User output goes to stdout, logs go to stderr
	ux.NewUserLog(log, os.Stdout)
	return log, nil
}

// Execute builds the root command from the process arguments and runs it.
// This is called by main.main().
func Execute() {
	rootCmd := NewRootCmd(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		ux.NewUserLogger(app.Log, os.Stderr).PrintError("%s", err)
		os.Exit(1)
	}
}
