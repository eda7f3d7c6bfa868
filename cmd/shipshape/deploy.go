package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/klaus-strele/shipshape/pkg/config"
	"github.com/klaus-strele/shipshape/pkg/deploy"
	"github.com/klaus-strele/shipshape/pkg/executor"
	"github.com/klaus-strele/shipshape/pkg/filesystem"
	"github.com/klaus-strele/shipshape/pkg/style"
)

func newDeployCmd() *cobra.Command {
	var (
		envName    string
		configPath string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:     "deploy",
		Short:   MsgDeployShort,
		Long:    MsgDeployLong,
		Example: MsgDeployExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := config.Load(configPath)
			if err != nil {
				return err
			}

			env := selectEnvironment(raw, envName)
			cfg, err := config.Resolve(raw, env)
			if err != nil {
				return err
			}

			log.Info().
				Str("environment", env).
				Str("config", configPath).
				Bool("dryRun", dryRun).
				Msg("Starting deployment")

			out := cmd.OutOrStdout()
			renderer := newRenderer(cmd)

			runner := executor.New()
			runner.Stdout = out
			runner.Stderr = cmd.ErrOrStderr()

			pipeline := deploy.New(filesystem.NewOS(), runner, deploy.Options{
				DryRun:   dryRun,
				Progress: &renderProgress{out: out, renderer: renderer},
			})

			result, err := pipeline.Deploy(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, renderer.RenderDeployStatus(deployStatus(env, cfg, result)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&envName, "env", "e", "", MsgFlagEnv)
	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFileName, MsgFlagConfig)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	_ = cmd.RegisterFlagCompletionFunc("env", environmentCompletion(&configPath))

	return cmd
}

// renderProgress prints live phase markers as the pipeline advances.
type renderProgress struct {
	out      io.Writer
	renderer style.Renderer
}

func (p *renderProgress) PhaseStart(phase deploy.Phase, detail string) {
	fmt.Fprintln(p.out, p.renderer.RenderPhaseStart(string(phase), detail))
}

func (p *renderProgress) CommandStart(phase deploy.Phase, index, total int, command string) {
	fmt.Fprintln(p.out, p.renderer.RenderCommand(index, total, command))
}

// deployStatus shapes a pipeline result for rendering.
func deployStatus(env string, cfg *config.Deployment, result *deploy.Result) style.DeployStatus {
	return style.DeployStatus{
		Environment: env,
		Source:      result.Source,
		Destination: result.Destination,
		WorkDir:     result.WorkDir,
		DryRun:      result.DryRun,
		CreatedDest: result.CreatedDest,
		PreDeploy:   cfg.PreDeploy,
		PostDeploy:  cfg.PostDeploy,
		Removed:     result.Removed,
		Kept:        result.Kept,
		FilesCopied: result.FilesCopied,
		DirsCopied:  result.DirsCopied,
	}
}

// environmentCompletion completes --env with the names defined in the
// config file the command would load.
func environmentCompletion(configPath *string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		raw, err := config.Load(*configPath)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return raw.EnvironmentNames(), cobra.ShellCompDirectiveNoFileComp
	}
}
