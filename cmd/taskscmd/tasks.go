// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package taskscmd

import (
	"github.com/luxfi/vaults/pkg/task"
	"github.com/luxfi/vaults/pkg/ux"
	"github.com/spf13/cobra"
)

// NewCmd lists the tasks in registry.
func NewCmd(registry *task.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List available tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registered := registry.Tasks()
			rows := make([][]string, 0, len(registered))
			for _, t := range registered {
				rows = append(rows, []string{t.Name, t.Description})
			}
			return ux.PrintTable(cmd.OutOrStdout(), []string{"Task", "Description"}, rows)
		},
	}
}
