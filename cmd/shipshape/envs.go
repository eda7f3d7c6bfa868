package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klaus-strele/shipshape/pkg/config"
)

func newEnvsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:     "envs",
		Short:   MsgEnvsShort,
		Long:    MsgEnvsLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := config.Load(configPath)
			if err != nil {
				return err
			}

			renderer := newRenderer(cmd)
			selected := selectEnvironment(raw, "")
			fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderEnvironments(raw.EnvironmentNames(), selected))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFileName, MsgFlagConfig)

	return cmd
}
