// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luxfi/vaults/pkg/constants"
	"github.com/stretchr/testify/require"
)

const (
	homeABI   = `[{"inputs":[{"internalType":"uint32","name":"_localDomain","type":"uint32"},{"internalType":"address","name":"_updater","type":"address"}],"stateMutability":"nonpayable","type":"constructor"}]`
	tokenABI  = `[{"inputs":[{"name":"_name","type":"string"},{"name":"_salt","type":"bytes32"},{"name":"_paused","type":"bool"},{"name":"_limits","type":"uint256[]"}],"stateMutability":"nonpayable","type":"constructor"}]`
	noCtorABI = `[]`
)

func writeBuildInfo(t *testing.T, dir, file string, contracts map[string]map[string]string) {
	t.Helper()
	output := map[string]map[string]map[string]json.RawMessage{}
	for source, byName := range contracts {
		output[source] = map[string]map[string]json.RawMessage{}
		for name, abiJSON := range byName {
			output[source][name] = map[string]json.RawMessage{"abi": json.RawMessage(abiJSON)}
		}
	}
	info := map[string]any{
		"_format":         "hh-sol-build-info-1",
		"solcVersion":     "0.7.6",
		"solcLongVersion": "0.7.6+commit.7338295f",
		"input":           map[string]any{"language": "Solidity", "sources": map[string]any{}},
		"output":          map[string]any{"contracts": output},
	}
	raw, err := json.Marshal(info)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), raw, 0o600))
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	dir := t.TempDir()
	writeBuildInfo(t, dir, "a.json", map[string]map[string]string{
		"contracts/Home.sol":    {"Home": homeABI},
		"contracts/Token.sol":   {"Token": tokenABI},
		"contracts/Replica.sol": {"Replica": noCtorABI},
	})
	writeBuildInfo(t, dir, "b.json", map[string]map[string]string{
		"contracts/Home.sol":         {"Home": homeABI},
		"contracts/test/Replica.sol": {"Replica": noCtorABI},
	})
	idx, err := LoadIndex(dir)
	require.NoError(t, err)
	return idx
}

func TestLookup(t *testing.T) {
	require := require.New(t)
	idx := newTestIndex(t)
	require.Equal(4, idx.Len())

	home, err := idx.Lookup("Home")
	require.NoError(err)
	require.Equal("contracts/Home.sol:Home", home.FullyQualifiedName())
	require.Equal("v0.7.6+commit.7338295f", home.CompilerVersion)
	require.JSONEq(`{"language":"Solidity","sources":{}}`, string(home.StandardJSONInput))

	_, err = idx.Lookup("Replica")
	require.ErrorIs(err, constants.ErrAmbiguousContract)

	replica, err := idx.Lookup("contracts/test/Replica.sol:Replica")
	require.NoError(err)
	require.Equal("contracts/test/Replica.sol", replica.SourceName)

	_, err = idx.Lookup("Missing")
	require.ErrorIs(err, constants.ErrContractNotFound)
	_, err = idx.Lookup("contracts/Missing.sol:Missing")
	require.ErrorIs(err, constants.ErrContractNotFound)
}

func TestLoadIndexRejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o600))
	_, err := LoadIndex(dir)
	require.ErrorContains(t, err, "failed to parse build info")
}

func TestLoadIndexEmptyDir(t *testing.T) {
	idx, err := LoadIndex(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	require.Zero(t, idx.Len())
}

func args(t *testing.T, values ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, len(values))
	for i, v := range values {
		out[i] = json.RawMessage(v)
	}
	return out
}

func TestEncodeConstructorArgs(t *testing.T) {
	require := require.New(t)
	idx := newTestIndex(t)
	home, err := idx.Lookup("Home")
	require.NoError(err)

	encoded, err := home.EncodeConstructorArgs(args(t, `1000`, `"0x0000000000000000000000000000000000000001"`))
	require.NoError(err)
	require.Equal(
		"00000000000000000000000000000000000000000000000000000000000003e8"+
			"0000000000000000000000000000000000000000000000000000000000000001",
		encoded,
	)

	hexDomain, err := home.EncodeConstructorArgs(args(t, `"0x3e8"`, `"0x0000000000000000000000000000000000000001"`))
	require.NoError(err)
	require.Equal(encoded, hexDomain)
}

func TestEncodeConstructorArgsDynamicTypes(t *testing.T) {
	require := require.New(t)
	idx := newTestIndex(t)
	token, err := idx.Lookup("Token")
	require.NoError(err)

	encoded, err := token.EncodeConstructorArgs(args(t,
		`"Vault"`,
		`"0x01"`,
		`true`,
		`["1", 2]`,
	))
	require.NoError(err)
	// head: string offset, bytes32, bool, array offset
	require.True(strings.HasPrefix(encoded, strings.Repeat("0", 62)+"80"))
	require.Equal("01"+strings.Repeat("0", 62), encoded[64:128])
	require.Equal(strings.Repeat("0", 63)+"1", encoded[128:192])
}

func TestEncodeConstructorArgsErrors(t *testing.T) {
	idx := newTestIndex(t)
	home, err := idx.Lookup("Home")
	require.NoError(t, err)

	tests := []struct {
		name string
		args []json.RawMessage
	}{
		{"arity", args(t, `1`)},
		{"bad address", args(t, `1`, `"0x12"`)},
		{"overflow", args(t, `4294967296`, `"0x0000000000000000000000000000000000000001"`)},
		{"negative uint", args(t, `-1`, `"0x0000000000000000000000000000000000000001"`)},
		{"not a number", args(t, `"ten"`, `"0x0000000000000000000000000000000000000001"`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := home.EncodeConstructorArgs(tt.args)
			require.Error(t, err)
		})
	}

	replica, err := idx.Lookup("contracts/Replica.sol:Replica")
	require.NoError(t, err)
	encoded, err := replica.EncodeConstructorArgs(nil)
	require.NoError(t, err)
	require.Empty(t, encoded)
}
