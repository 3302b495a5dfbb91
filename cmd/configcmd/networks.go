// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"github.com/luxfi/vaults/pkg/etherscan"
	"github.com/luxfi/vaults/pkg/ux"
	"github.com/spf13/cobra"
)

func newNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List configured networks",
		Long: `List the networks from the project configuration, plus every network
Etherscan verification supports. The selected network is marked.`,
		Args: cobra.NoArgs,
		RunE: runNetworks,
	}
}

func runNetworks(cmd *cobra.Command, _ []string) error {
	names := app.Conf.NetworkNames()
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range etherscan.SupportedNetworks() {
		if !seen[n] {
			names = append(names, n)
		}
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		selected := ""
		if name == app.NetworkName() {
			selected = "*"
		}
		url := ""
		if n, ok := app.Conf.Network(name); ok {
			url = n.URL
		}
		verify := "no"
		if etherscan.IsSupportedNetwork(name) {
			verify = "yes"
		}
		rows = append(rows, []string{selected, name, url, verify})
	}
	return ux.PrintTable(cmd.OutOrStdout(), []string{"", "Network", "RPC URL", "Etherscan"}, rows)
}
