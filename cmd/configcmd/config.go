// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package configcmd

import (
	"fmt"

	"github.com/luxfi/vaults/pkg/application"
	"github.com/spf13/cobra"
)

var app *application.Vaults

func NewCmd(injectedApp *application.Vaults) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the project configuration",
		Long:  `Inspect the resolved project configuration for vaults`,
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}
	app = injectedApp
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newNetworksCmd())
	cmd.AddCommand(newPathsCmd())

	return cmd
}
