package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/klaus-strele/shipshape/internal/version"
	"github.com/klaus-strele/shipshape/pkg/cobrax/topics"
	"github.com/klaus-strele/shipshape/pkg/config"
	"github.com/klaus-strele/shipshape/pkg/logging"
	"github.com/klaus-strele/shipshape/pkg/style"
)

// EnvVar selects the deployment environment when --env is not given.
const EnvVar = "SHIPSHAPE_ENV"

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "shipshape",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().Bool("no-color", false, MsgFlagNoColor)

	// Command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newEnvsCmd())
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Serve the embedded manual through "shipshape help <topic>" too
	if manual, err := loadManual(); err == nil {
		topics.Install(rootCmd, manual)
	}

	return rootCmd
}

// newRenderer builds the renderer command output goes through. Styling
// is dropped when --no-color is set or stdout is not a terminal.
func newRenderer(cmd *cobra.Command) style.Renderer {
	if noColor, _ := cmd.Root().PersistentFlags().GetBool("no-color"); noColor {
		return style.NewRenderer(style.FormatText, os.Stdout)
	}
	return style.NewRenderer(style.FormatAuto, os.Stdout)
}

// selectEnvironment applies the default-environment chain: the --env
// flag, then SHIPSHAPE_ENV, then the only defined environment. An
// empty result where environments are defined makes Resolve fail with
// the list of valid names, which is the report the user should see.
func selectEnvironment(raw *config.Raw, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvVar); env != "" {
		log.Debug().Str("environment", env).Str("from", EnvVar).Msg("Environment taken from environment variable")
		return env
	}
	if names := raw.EnvironmentNames(); len(names) == 1 {
		log.Info().Str("environment", names[0]).Msg("Single configured environment selected automatically")
		return names[0]
	}
	return ""
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "shipshape version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}
