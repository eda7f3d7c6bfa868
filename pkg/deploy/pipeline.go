package deploy

import (
	"context"
	stderrors "errors"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/klaus-strele/shipshape/pkg/config"
	"github.com/klaus-strele/shipshape/pkg/errors"
	"github.com/klaus-strele/shipshape/pkg/logging"
	"github.com/klaus-strele/shipshape/pkg/paths"
	"github.com/klaus-strele/shipshape/pkg/reconcile"
	"github.com/klaus-strele/shipshape/pkg/types"
)

// Phase names one stage of a deployment run.
type Phase string

const (
	PhasePreDeploy  Phase = "pre-deploy"
	PhaseReconcile  Phase = "reconcile"
	PhaseCopy       Phase = "copy"
	PhasePostDeploy Phase = "post-deploy"
)

// Progress receives notifications as the pipeline advances. The CLI
// uses it to print phase markers; tests use it to assert ordering.
// A nil Progress in Options disables notifications.
type Progress interface {
	// PhaseStart fires when a phase begins. Phases with nothing to do
	// (no commands configured) do not fire.
	PhaseStart(phase Phase, detail string)
	// CommandStart fires before each command in a command phase.
	CommandStart(phase Phase, index, total int, command string)
}

type nopProgress struct{}

func (nopProgress) PhaseStart(Phase, string)             {}
func (nopProgress) CommandStart(Phase, int, int, string) {}

// Options configure a Pipeline.
type Options struct {
	// Root is the invocation working directory. Relative sources
	// resolve against it and pre-deploy commands run in it. Defaults
	// to the process working directory.
	Root string

	// DryRun previews the run without mutating the filesystem or
	// spawning processes.
	DryRun bool

	// IsNetworkPath classifies the configured destination string to
	// pick the post-deploy working directory. Defaults to
	// paths.IsNetworkPath.
	IsNetworkPath paths.Classifier

	// Progress receives phase notifications. Defaults to none.
	Progress Progress
}

// Pipeline runs the three deployment phases in strict sequence.
type Pipeline struct {
	fs        types.FS
	runner    types.CommandRunner
	root      string
	dryRun    bool
	isNetwork paths.Classifier
	progress  Progress
	logger    zerolog.Logger
}

// New creates a deployment pipeline over the given filesystem and
// command runner.
func New(fsys types.FS, runner types.CommandRunner, opts Options) *Pipeline {
	root := opts.Root
	if root == "" {
		if cwd, err := os.Getwd(); err == nil {
			root = cwd
		} else {
			root = "."
		}
	}

	isNetwork := opts.IsNetworkPath
	if isNetwork == nil {
		isNetwork = paths.IsNetworkPath
	}

	progress := opts.Progress
	if progress == nil {
		progress = nopProgress{}
	}

	return &Pipeline{
		fs:        fsys,
		runner:    runner,
		root:      root,
		dryRun:    opts.DryRun,
		isNetwork: isNetwork,
		progress:  progress,
		logger:    logging.GetLogger("deploy.pipeline"),
	}
}

// Result describes what a deployment run did, or for dry runs, what it
// would do.
type Result struct {
	Source      string // resolved source path
	Destination string // resolved destination path
	WorkDir     string // post-deploy working directory
	DryRun      bool

	// CreatedDest is set when the destination did not exist and
	// reconcile created it instead of emptying it.
	CreatedDest bool
	Removed     []string // destination entries reconcile removed
	Kept        []string // destination entries the keep list preserved

	FilesCopied int
	DirsCopied  int

	PreDeployRan  int // pre-deploy commands that ran
	PostDeployRan int // post-deploy commands that ran
}

// Deploy validates the configuration and runs the pipeline to
// completion or first failure. The returned Result is only meaningful
// when the error is nil.
func (p *Pipeline) Deploy(ctx context.Context, cfg *config.Deployment) (*Result, error) {
	defer logging.LogDuration(time.Now(), "deploy")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	source := paths.ResolveSource(p.root, cfg.Source)
	destination := paths.ResolveDestination(p.root, cfg.Destination)

	// The working directory choice keys off the configured destination
	// string, not the resolved path.
	workDir := destination
	if p.isNetwork(cfg.Destination) {
		workDir = p.root
	}

	result := &Result{
		Source:      source,
		Destination: destination,
		WorkDir:     workDir,
		DryRun:      p.dryRun,
	}

	p.logger.Info().
		Str("source", source).
		Str("destination", destination).
		Str("workDir", workDir).
		Bool("dryRun", p.dryRun).
		Msg("Starting deployment")

	if p.dryRun {
		return p.plan(cfg, result)
	}

	if err := p.runCommands(ctx, PhasePreDeploy, cfg.PreDeploy, p.root); err != nil {
		return nil, err
	}
	result.PreDeployRan = len(cfg.PreDeploy)

	// Checked after pre-deploy: those commands routinely build the
	// source directory.
	if err := p.checkSource(source); err != nil {
		return nil, err
	}

	p.progress.PhaseStart(PhaseReconcile, destination)
	rec, err := reconcile.Reconcile(p.fs, destination, cfg.KeepSet())
	if err != nil {
		return nil, err
	}
	result.CreatedDest = rec.Created
	result.Removed = rec.Removed
	result.Kept = rec.Kept

	p.progress.PhaseStart(PhaseCopy, source)
	cp, err := reconcile.CopyTree(p.fs, source, destination)
	if err != nil {
		return nil, err
	}
	result.FilesCopied = cp.Files
	result.DirsCopied = cp.Dirs

	if err := p.runCommands(ctx, PhasePostDeploy, cfg.PostDeploy, workDir); err != nil {
		return nil, err
	}
	result.PostDeployRan = len(cfg.PostDeploy)

	p.logger.Info().
		Int("filesCopied", result.FilesCopied).
		Int("entriesRemoved", len(result.Removed)).
		Msg("Deployment finished")

	return result, nil
}

// runCommands executes one command phase sequentially, aborting on the
// first failure. An empty command list skips the phase.
func (p *Pipeline) runCommands(ctx context.Context, phase Phase, commands []string, dir string) error {
	logger := p.logger.With().Str("phase", string(phase)).Logger()

	if len(commands) == 0 {
		logger.Debug().Msg("No commands configured, skipping phase")
		return nil
	}

	p.progress.PhaseStart(phase, dir)
	logger.Info().Int("commands", len(commands)).Str("dir", dir).Msg("Phase started")

	for i, command := range commands {
		p.progress.CommandStart(phase, i+1, len(commands), command)

		if err := p.runner.Run(ctx, command, dir); err != nil {
			logger.Error().
				Err(err).
				Str("command", command).
				Int("position", i+1).
				Msg("Command failed, aborting deployment")

			var shipErr *errors.ShipshapeError
			if stderrors.As(err, &shipErr) {
				shipErr.WithDetail("phase", string(phase))
			}
			return err
		}
	}

	logger.Info().Int("commands", len(commands)).Msg("Phase completed")
	return nil
}

// checkSource verifies the resolved source exists as a directory.
func (p *Pipeline) checkSource(source string) error {
	info, err := p.fs.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrSourceNotFound,
				"source directory does not exist: %s", source).
				WithDetail("source", source)
		}
		return errors.Wrapf(err, errors.ErrSourceNotFound,
			"source directory is not accessible: %s", source).
			WithDetail("source", source)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrSourceNotFound,
			"source is not a directory: %s", source).
			WithDetail("source", source)
	}
	return nil
}

// plan fills the result with what the run would do, mutating nothing.
func (p *Pipeline) plan(cfg *config.Deployment, result *Result) (*Result, error) {
	rec, err := reconcile.Preview(p.fs, result.Destination, cfg.KeepSet())
	if err != nil {
		return nil, err
	}
	result.CreatedDest = rec.Created
	result.Removed = rec.Removed
	result.Kept = rec.Kept

	// A missing source is tolerated here: pre-deploy commands often
	// produce it, and a dry run never executes them.
	if cp, err := reconcile.CountTree(p.fs, result.Source); err == nil {
		result.FilesCopied = cp.Files
		result.DirsCopied = cp.Dirs
	} else {
		p.logger.Warn().
			Str("source", result.Source).
			Msg("Source not present, copy counts unavailable in dry run")
	}

	return result, nil
}
