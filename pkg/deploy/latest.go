// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deploy reads the records a bridge deploy leaves behind: one
// directory per deploy, named by its millisecond timestamp, holding the
// per-network verification inputs.
package deploy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/vaults/pkg/constants"
	"github.com/luxfi/vaults/pkg/utils"
)

// VerificationInput describes one deployed contract to verify.
type VerificationInput struct {
	Name                 string            `json:"name"`
	Address              string            `json:"address"`
	ConstructorArguments []json.RawMessage `json:"constructorArguments"`
	IsProxy              bool              `json:"isProxy"`
}

// ContractAddress is Address parsed; only valid after Validate.
func (v VerificationInput) ContractAddress() common.Address {
	return common.HexToAddress(v.Address)
}

func (v VerificationInput) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("verification input at %s has no contract name", v.Address)
	}
	if !common.IsHexAddress(v.Address) {
		return fmt.Errorf("verification input %s has invalid address %q", v.Name, v.Address)
	}
	return nil
}

// LatestDeployDir returns the sub-directory of root with the greatest
// numeric name. Entries whose name is not a number are ignored.
func LatestDeployDir(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s does not exist", constants.ErrNoDeploys, root)
		}
		return "", fmt.Errorf("failed to read deploys directory: %w", err)
	}

	latest := ""
	var latestTS uint64
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ts, err := strconv.ParseUint(entry.Name(), 10, 64)
		if err != nil {
			continue
		}
		if latest == "" || ts > latestTS {
			latest, latestTS = entry.Name(), ts
		}
	}
	if latest == "" {
		return "", fmt.Errorf("%w in %s", constants.ErrNoDeploys, root)
	}
	return filepath.Join(root, latest), nil
}

// BridgeVerificationPath is where a deploy keeps network's bridge inputs.
func BridgeVerificationPath(deployDir, network string) string {
	return filepath.Join(deployDir, constants.BridgeDeployDir, network+constants.VerificationFileSuffix)
}

// ReadBridgeVerificationInputs loads and validates network's bridge inputs
// from deployDir.
func ReadBridgeVerificationInputs(deployDir, network string) ([]VerificationInput, error) {
	path := BridgeVerificationPath(deployDir, network)
	var inputs []VerificationInput
	if err := utils.ReadJSON(path, &inputs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w for network %s (%s)", constants.ErrNoVerificationInputs, network, path)
		}
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w for network %s (%s is empty)", constants.ErrNoVerificationInputs, network, path)
	}
	for _, in := range inputs {
		if err := in.Validate(); err != nil {
			return nil, err
		}
	}
	return inputs, nil
}

// LatestBridgeVerificationInputs reads network's inputs from the latest
// deploy under root and returns that deploy's directory as well.
func LatestBridgeVerificationInputs(root, network string) (string, []VerificationInput, error) {
	dir, err := LatestDeployDir(root)
	if err != nil {
		return "", nil, err
	}
	inputs, err := ReadBridgeVerificationInputs(dir, network)
	if err != nil {
		return "", nil, err
	}
	return dir, inputs, nil
}
