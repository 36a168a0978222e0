package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"cognitive_screen/internal/workspace"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the workspace directories and starter config",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			root, err := a.workspaceRoot()
			if err != nil {
				return fmt.Errorf("workspace initialization failed: %w", err)
			}
			fmt.Fprintf(a.stdout, "Cognitive screening workspace ready at: %s\n", filepath.Clean(root))
			fmt.Fprintf(a.stdout, "Config: %s\n", workspace.ConfigPath(root))
			return nil
		},
	}
}
