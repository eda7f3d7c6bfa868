package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/klaus-strele/shipshape/pkg/config"
	"github.com/klaus-strele/shipshape/pkg/errors"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "core",
	}
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var (
		envName    string
		configPath string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Long:  MsgConfigShowLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := config.Load(configPath)
			if err != nil {
				return err
			}

			cfg, err := config.Resolve(raw, selectEnvironment(raw, envName))
			if err != nil {
				return err
			}

			var encoded []byte
			switch output {
			case "yaml":
				encoded, err = yaml.Marshal(cfg)
			case "json":
				encoded, err = json.MarshalIndent(cfg, "", "  ")
			default:
				return errors.Newf(errors.ErrInvalidInput,
					"unknown output format %q; use yaml or json", output).
					WithDetail("output", output)
			}
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
			}

			// yaml.Marshal ends with a newline, MarshalIndent does not
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(encoded), "\n"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&envName, "env", "e", "", MsgFlagEnv)
	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFileName, MsgFlagConfig)
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", MsgFlagOutput)
	_ = cmd.RegisterFlagCompletionFunc("env", environmentCompletion(&configPath))
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		[]string{"yaml", "json"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
