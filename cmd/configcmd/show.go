// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

var outputFormat string

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Long: `Print the configuration after defaults, the config file and the
environment have been merged. The Etherscan API key is redacted.`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", formatYAML, "output format (yaml|json)")

	return cmd
}

func runShow(cmd *cobra.Command, _ []string) error {
	conf := app.Conf.Redacted()
	w := cmd.OutOrStdout()

	switch outputFormat {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(conf); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(conf)
	default:
		return fmt.Errorf("unsupported output format %q (want %s or %s)", outputFormat, formatYAML, formatJSON)
	}
}
