package main

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Environment-aware deployment of a build directory"
	MsgDeployShort     = "Run the deployment pipeline"
	MsgConfigShort     = "Inspect the deployment configuration"
	MsgConfigShowShort = "Print the effective configuration for an environment"
	MsgEnvsShort       = "List the configured environments"
	MsgEnvsLong        = "Envs lists the environment names defined in the configuration file and marks the one a bare deploy would use."
	MsgDocsShort       = "Read the built-in manual"
	MsgDocsLong        = "Docs lists the manual's pages, or renders one when a topic is given. Pages are built into the binary."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Docs listing
	MsgAvailableTopics = "Available topics:"
	MsgDocsHint        = `Use "shipshape docs <topic>" to read a page.`

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoColor = "Disable styled output"
	MsgFlagEnv     = "Deployment environment to use"
	MsgFlagConfig  = "Path to the configuration file"
	MsgFlagDryRun  = "Preview the deployment without changing anything"
	MsgFlagOutput  = "Output format: yaml or json"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/deploy-long.txt
	msgDeployLongRaw string
	MsgDeployLong    = strings.TrimSpace(msgDeployLongRaw)

	//go:embed msgs/deploy-example.txt
	msgDeployExampleRaw string
	MsgDeployExample    = strings.TrimSpace(msgDeployExampleRaw)

	//go:embed msgs/config-show-long.txt
	msgConfigShowLongRaw string
	MsgConfigShowLong    = strings.TrimSpace(msgConfigShowLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	MsgUsageTemplate string
)
