// Copyright (C) 2022, Lux Partners Limited, All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"io"
	"testing"

	luxlog "github.com/luxfi/log"
	"github.com/luxfi/vaults/pkg/application"
	"github.com/luxfi/vaults/pkg/config"
	"github.com/luxfi/vaults/pkg/ux"
)

// SetupTestInTempDir builds an app rooted in a fresh temp dir. Relative
// paths in conf resolve against that dir.
func SetupTestInTempDir(t *testing.T, conf *config.Config, network string) *application.Vaults {
	testDir := t.TempDir()

	app := application.New()
	app.Setup(testDir, luxlog.NewNoOpLogger(), conf, network)
	ux.NewUserLog(luxlog.NewNoOpLogger(), io.Discard)
	return app
}
