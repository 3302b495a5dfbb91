// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package task

import (
	"github.com/luxfi/vaults/pkg/application"
	"github.com/spf13/cobra"
)

// EnvFunc hands out the runtime environment at invocation time. The root
// command only finishes building it in its pre-run hook.
type EnvFunc func() *application.Vaults

// Commands turns every registered task into a cobra sub-command.
func (r *Registry) Commands(env EnvFunc) []*cobra.Command {
	tasks := r.Tasks()
	cmds := make([]*cobra.Command, 0, len(tasks))
	for _, t := range tasks {
		name := t.Name
		cmds = append(cmds, &cobra.Command{
			Use:          name,
			Short:        t.Description,
			Long:         t.Description,
			SilenceUsage: true,
			Args:         cobra.MaximumNArgs(t.MaxArgs),
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.Run(cmd.Context(), name, Args(args), env())
			},
		})
	}
	return cmds
}
