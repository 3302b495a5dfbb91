// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package application

import (
	"path/filepath"
	"testing"

	"github.com/luxfi/vaults/pkg/config"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, network string) *Vaults {
	t.Helper()
	conf := &config.Config{
		Networks:  map[string]config.NetworkConfig{"mainnet": {URL: "https://rpc.example.org"}},
		Typechain: config.TypechainConfig{OutDir: "../typechain"},
		Paths:     config.PathsConfig{Deploys: "deploys", Artifacts: "/abs/artifacts"},
	}
	app := New()
	app.Setup(t.TempDir(), nil, conf, network)
	return app
}

func TestSetupDefaultsNetwork(t *testing.T) {
	require := require.New(t)
	app := newTestApp(t, "")
	require.Equal("hardhat", app.NetworkName())
	require.NotNil(app.Log)

	_, ok := app.NetworkConfig()
	require.False(ok)
}

func TestNetworkConfig(t *testing.T) {
	require := require.New(t)
	app := newTestApp(t, "mainnet")
	network, ok := app.NetworkConfig()
	require.True(ok)
	require.Equal("https://rpc.example.org", network.URL)
}

func TestPathsResolveAgainstBaseDir(t *testing.T) {
	require := require.New(t)
	app := newTestApp(t, "mainnet")
	base := app.GetBaseDir()

	require.Equal(filepath.Join(base, "deploys"), app.GetDeploysDir())
	require.Equal("/abs/artifacts", app.GetArtifactsDir())
	require.Equal("/abs/artifacts/build-info", app.GetBuildInfoDir())
	require.Equal(filepath.Join(filepath.Dir(base), "typechain"), app.GetTypechainDir())
}
