// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/luxfi/vaults/pkg/constants"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI from an empty project directory with no API key in
// the environment.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(constants.EtherscanAPIKeyEnvVar, "")
	require.NoError(t, os.Unsetenv(constants.EtherscanAPIKeyEnvVar))

	rootCmd := NewRootCmd(args)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVerifyLatestDeployRequiresAPIKey(t *testing.T) {
	require := require.New(t)

	_, err := execute(t, constants.VerifyLatestDeployTaskName)
	require.ErrorIs(err, constants.ErrMissingCredential)
	require.EqualError(err, "set ETHERSCAN_API_KEY")
}

func TestVerifyLatestDeployTakesNoArguments(t *testing.T) {
	_, err := execute(t, constants.VerifyLatestDeployTaskName, "extra")
	require.ErrorContains(t, err, "accepts at most 0 arg(s), received 1")
}

func TestVerifyLatestDeployReadsKeyFromEnvFile(t *testing.T) {
	require := require.New(t)
	envPath := filepath.Join(t.TempDir(), "vaults.env")
	require.NoError(os.WriteFile(envPath, []byte("ETHERSCAN_API_KEY=ABC123\n"), 0o600))

	// the key is present, so verification starts and rejects the default network
	_, err := execute(t, "--env-file", envPath, constants.VerifyLatestDeployTaskName)
	require.ErrorIs(err, constants.ErrUnsupportedNetwork)
	require.ErrorContains(err, "current network=hardhat")
}

func TestTasksCommand(t *testing.T) {
	require := require.New(t)

	out, err := execute(t, "tasks")
	require.NoError(err)
	require.Contains(out, constants.VerifyLatestDeployTaskName)
	require.Contains(out, constants.VerifyLatestDeployTaskDescription)
}

func TestConfigShowRedactsAPIKey(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	confPath := filepath.Join(dir, "vaults.yaml")
	require.NoError(os.WriteFile(confPath, []byte("etherscan:\n  apiKey: s3cr3t\nverify:\n  concurrency: 4\n"), 0o600))

	out, err := execute(t, "--config", confPath, "config", "show", "--output", "json")
	require.NoError(err)
	require.NotContains(out, "s3cr3t")
	require.Contains(out, constants.RedactedValue)
	require.Contains(out, `"concurrency": 4`)
}

func TestConfigShowRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "config", "show", "-o", "xml")
	require.ErrorContains(t, err, "unsupported output format")
}

func TestConfigNetworksMarksSelected(t *testing.T) {
	require := require.New(t)

	out, err := execute(t, "--network", "goerli", "config", "networks")
	require.NoError(err)
	require.Contains(out, "harmony_testnet")
	require.Contains(out, "https://api.s0.b.hmny.io")
	require.Regexp(`\*[\s│|]*goerli`, out)
}

func TestConfigPathsResolveAgainstConfigDir(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	confPath := filepath.Join(dir, "vaults.yaml")
	require.NoError(os.WriteFile(confPath, []byte("typechain:\n  outDir: types\n"), 0o600))

	out, err := execute(t, "--config", confPath, "config", "paths")
	require.NoError(err)
	require.Contains(out, filepath.Join(dir, "types"))
	require.Contains(out, filepath.Join(dir, "artifacts", "build-info"))
}

func TestMissingConfigFileFails(t *testing.T) {
	_, err := execute(t, "--config", "does-not-exist.yaml", "tasks")
	require.ErrorContains(t, err, "does-not-exist.yaml")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "tasks")
	require.ErrorContains(t, err, "invalid --log-level")
}
