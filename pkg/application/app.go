// Copyright (C) 2022, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"path/filepath"

	luxlog "github.com/luxfi/log"
	"github.com/luxfi/vaults/pkg/config"
	"github.com/luxfi/vaults/pkg/constants"
)

// Vaults is the runtime environment handed to every task: the resolved
// project config, the selected network and the logger.
type Vaults struct {
	Log     luxlog.Logger
	Conf    *config.Config
	baseDir string
	network string
}

func New() *Vaults {
	return &Vaults{}
}

func (app *Vaults) Setup(baseDir string, log luxlog.Logger, conf *config.Config, network string) {
	if log == nil {
		log = luxlog.NewNoOpLogger()
	}
	if network == "" {
		network = constants.DefaultNetwork
	}
	app.baseDir = baseDir
	app.Log = log
	app.Conf = conf
	app.network = network
}

// GetBaseDir is the project root every relative config path resolves against.
func (app *Vaults) GetBaseDir() string {
	return app.baseDir
}

// NetworkName is the network selected with --network.
func (app *Vaults) NetworkName() string {
	return app.network
}

// NetworkConfig returns the RPC settings of the selected network, if any.
func (app *Vaults) NetworkConfig() (config.NetworkConfig, bool) {
	if app.Conf == nil {
		return config.NetworkConfig{}, false
	}
	return app.Conf.Network(app.network)
}

func (app *Vaults) GetDeploysDir() string {
	return app.resolve(app.Conf.Paths.Deploys)
}

func (app *Vaults) GetArtifactsDir() string {
	return app.resolve(app.Conf.Paths.Artifacts)
}

func (app *Vaults) GetBuildInfoDir() string {
	return filepath.Join(app.GetArtifactsDir(), constants.BuildInfoDir)
}

func (app *Vaults) GetTypechainDir() string {
	return app.resolve(app.Conf.Typechain.OutDir)
}

func (app *Vaults) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(app.baseDir, path)
}
