// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the resolved project directories",
		Long: `Print the deployment, artifact, build-info and typechain directories
after relative paths have been resolved against the config file's directory.
One "name<TAB>path" pair is printed per line.`,
		Args: cobra.NoArgs,
		RunE: runPaths,
	}
}

func runPaths(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	for _, p := range []struct{ name, dir string }{
		{"deployments", app.GetDeploysDir()},
		{"artifacts", app.GetArtifactsDir()},
		{"build-info", app.GetBuildInfoDir()},
		{"typechain", app.GetTypechainDir()},
	} {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", p.name, p.dir); err != nil {
			return err
		}
	}
	return nil
}
