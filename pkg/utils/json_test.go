// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadJSON(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "inputs.json")
	require.NoError(os.WriteFile(path, []byte(`{"name": "Home", "isProxy": true}`), 0o600))

	var out map[string]any
	require.NoError(ReadJSON(path, &out))
	require.Equal(map[string]any{"name": "Home", "isProxy": true}, out)
}

func TestReadJSONInvalid(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(os.WriteFile(path, []byte("{not json"), 0o600))

	var out map[string]any
	err := ReadJSON(path, &out)
	require.ErrorContains(err, "failed to unmarshal JSON")
}

func TestReadJSONMissing(t *testing.T) {
	var out map[string]any
	err := ReadJSON(filepath.Join(t.TempDir(), "missing.json"), &out)
	require.ErrorIs(t, err, os.ErrNotExist)
}
