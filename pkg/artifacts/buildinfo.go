// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package artifacts indexes Hardhat build-info files so a deployed contract
// can be matched to the exact compiler input that produced it.
package artifacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/vaults/pkg/constants"
)

// BuildInfo is the subset of a Hardhat build-info file verification needs.
type BuildInfo struct {
	SolcVersion     string          `json:"solcVersion"`
	SolcLongVersion string          `json:"solcLongVersion"`
	Input           json.RawMessage `json:"input"`
	Output          struct {
		Contracts map[string]map[string]struct {
			ABI json.RawMessage `json:"abi"`
		} `json:"contracts"`
	} `json:"output"`
}

// Contract is one compiled contract together with its compilation.
type Contract struct {
	Name       string
	SourceName string
	// CompilerVersion is in the form Etherscan expects, e.g.
	// v0.7.6+commit.7338295f.
	CompilerVersion   string
	StandardJSONInput json.RawMessage
	ABI               abi.ABI
}

// FullyQualifiedName is "<source>:<name>".
func (c Contract) FullyQualifiedName() string {
	return c.SourceName + ":" + c.Name
}

// Index maps contract names to their compilations.
type Index struct {
	byName map[string][]Contract
	byFQN  map[string]Contract
}

// LoadIndex reads every build-info file in dir. Files are read in name
// order; the first compilation of a fully qualified name wins.
func LoadIndex(dir string) (*Index, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	idx := &Index{
		byName: map[string][]Contract{},
		byFQN:  map[string]Contract{},
	}
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var info BuildInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return nil, fmt.Errorf("failed to parse build info %s: %w", path, err)
		}
		if err := idx.add(info); err != nil {
			return nil, fmt.Errorf("build info %s: %w", path, err)
		}
	}
	return idx, nil
}

func (idx *Index) add(info BuildInfo) error {
	version := info.SolcLongVersion
	if version == "" {
		version = info.SolcVersion
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	for source, contracts := range info.Output.Contracts {
		for name, compiled := range contracts {
			c := Contract{
				Name:              name,
				SourceName:        source,
				CompilerVersion:   version,
				StandardJSONInput: info.Input,
			}
			if len(compiled.ABI) > 0 {
				parsed, err := abi.JSON(bytes.NewReader(compiled.ABI))
				if err != nil {
					return fmt.Errorf("invalid abi for %s: %w", c.FullyQualifiedName(), err)
				}
				c.ABI = parsed
			}
			fqn := c.FullyQualifiedName()
			if _, ok := idx.byFQN[fqn]; ok {
				continue
			}
			idx.byFQN[fqn] = c
			idx.byName[name] = append(idx.byName[name], c)
		}
	}
	return nil
}

// Lookup finds a contract by plain or fully qualified name.
func (idx *Index) Lookup(name string) (Contract, error) {
	if strings.Contains(name, ":") {
		c, ok := idx.byFQN[name]
		if !ok {
			return Contract{}, fmt.Errorf("%w: %s", constants.ErrContractNotFound, name)
		}
		return c, nil
	}
	matches := idx.byName[name]
	switch len(matches) {
	case 0:
		return Contract{}, fmt.Errorf("%w: %s", constants.ErrContractNotFound, name)
	case 1:
		return matches[0], nil
	default:
		fqns := make([]string, len(matches))
		for i, m := range matches {
			fqns[i] = m.FullyQualifiedName()
		}
		sort.Strings(fqns)
		return Contract{}, fmt.Errorf("%w: %s (%s)", constants.ErrAmbiguousContract, name, strings.Join(fqns, ", "))
	}
}

// Len is the number of distinct compiled contracts.
func (idx *Index) Len() int {
	return len(idx.byFQN)
}
