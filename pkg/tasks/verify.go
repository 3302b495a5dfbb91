// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tasks holds the project's custom tasks.
package tasks

import (
	"context"

	"github.com/luxfi/vaults/pkg/application"
	"github.com/luxfi/vaults/pkg/constants"
	"github.com/luxfi/vaults/pkg/task"
)

// VerifyFunc verifies the latest deploy on the environment's network.
type VerifyFunc func(ctx context.Context, env *application.Vaults, apiKey string) error

// NewVerifyLatestDeployTask builds the verify-latest-deploy task. apiKey is
// captured here, once; the action never reads the process environment.
func NewVerifyLatestDeployTask(apiKey string, verify VerifyFunc) task.Task {
	return task.Task{
		Name:        constants.VerifyLatestDeployTaskName,
		Description: constants.VerifyLatestDeployTaskDescription,
		Action: func(ctx context.Context, _ task.Args, env *application.Vaults) error {
			if apiKey == "" {
				return constants.ErrMissingCredential
			}
			return verify(ctx, env, apiKey)
		},
	}
}

// Register adds every project task to r.
func Register(r *task.Registry, apiKey string, verify VerifyFunc) error {
	return r.Register(NewVerifyLatestDeployTask(apiKey, verify))
}
