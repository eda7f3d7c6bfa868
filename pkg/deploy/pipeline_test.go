// pkg/deploy/pipeline_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: afero MemMapFs, fake command runner
// PURPOSE: Verify phase sequencing, fail-fast aborts, working directory
// selection, and end-to-end reconcile+copy semantics

package deploy_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klaus-strele/shipshape/pkg/config"
	"github.com/klaus-strele/shipshape/pkg/deploy"
	"github.com/klaus-strele/shipshape/pkg/errors"
	"github.com/klaus-strele/shipshape/pkg/filesystem"
	"github.com/klaus-strele/shipshape/pkg/testutil"
	"github.com/klaus-strele/shipshape/pkg/types"
)

func memFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

type call struct {
	command string
	dir     string
}

// fakeRunner records every command and can be told to fail on one.
type fakeRunner struct {
	calls  []call
	failOn string
	onRun  func(command, dir string) error
}

func (f *fakeRunner) Run(_ context.Context, command, dir string) error {
	f.calls = append(f.calls, call{command, dir})
	if f.onRun != nil {
		if err := f.onRun(command, dir); err != nil {
			return err
		}
	}
	if f.failOn != "" && command == f.failOn {
		return errors.Newf(errors.ErrCommandFailed,
			"command exited with status 1: %s", command).
			WithDetail("command", command)
	}
	return nil
}

func (f *fakeRunner) commands() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.command
	}
	return out
}

// recordingProgress captures the notification stream for ordering checks.
type recordingProgress struct {
	events []string
}

func (r *recordingProgress) PhaseStart(phase deploy.Phase, detail string) {
	r.events = append(r.events, "phase:"+string(phase))
}

func (r *recordingProgress) CommandStart(phase deploy.Phase, index, total int, command string) {
	r.events = append(r.events, fmt.Sprintf("cmd:%s:%d/%d:%s", phase, index, total, command))
}

func TestDeploy_EndToEnd(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/work/dist", testutil.FileTree{
		"index.html": "<html/>",
	})
	testutil.CreateFileTree(t, fsys, "/srv/out", testutil.FileTree{
		"log":     testutil.FileTree{"app.log": "yesterday's entries"},
		"old.txt": "stale",
	})

	runner := &fakeRunner{}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work"})

	result, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: "/srv/out",
		KeepList:    []string{"LOG"},
	})
	require.NoError(t, err)

	// The kept directory survives untouched, the rest was replaced.
	data, err := fsys.ReadFile("/srv/out/log/app.log")
	require.NoError(t, err)
	assert.Equal(t, "yesterday's entries", string(data))

	data, err = fsys.ReadFile("/srv/out/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html/>", string(data))

	_, err = fsys.Stat("/srv/out/old.txt")
	assert.Error(t, err)

	assert.Equal(t, []string{"old.txt"}, result.Removed)
	assert.Equal(t, []string{"log"}, result.Kept)
	assert.Equal(t, 1, result.FilesCopied)
	assert.Equal(t, "/srv/out", result.WorkDir)
	assert.Empty(t, runner.calls)
}

func TestDeploy_PhaseOrdering(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/work/dist", testutil.FileTree{
		"app.bin": "binary",
	})

	runner := &fakeRunner{}
	progress := &recordingProgress{}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work", Progress: progress})

	_, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: "/srv/out",
		PreDeploy:   []string{"npm ci", "npm run build"},
		PostDeploy:  []string{"systemctl restart app"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"phase:pre-deploy",
		"cmd:pre-deploy:1/2:npm ci",
		"cmd:pre-deploy:2/2:npm run build",
		"phase:reconcile",
		"phase:copy",
		"phase:post-deploy",
		"cmd:post-deploy:1/1:systemctl restart app",
	}, progress.events)

	assert.Equal(t, []string{"npm ci", "npm run build", "systemctl restart app"}, runner.commands())
}

func TestDeploy_PreDeployFailureAborts(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/work/dist", testutil.FileTree{
		"index.html": "<html/>",
	})
	testutil.CreateFileTree(t, fsys, "/srv/out", testutil.FileTree{
		"stale.txt": "still here",
	})

	runner := &fakeRunner{failOn: "cmd-fail"}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work"})

	_, deployErr := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: "/srv/out",
		PreDeploy:   []string{"cmd-ok", "cmd-fail", "cmd-ok-2"},
		PostDeploy:  []string{"never-runs"},
	})
	require.Error(t, deployErr)
	assert.True(t, errors.IsErrorCode(deployErr, errors.ErrCommandFailed))

	var shipErr *errors.ShipshapeError
	require.ErrorAs(t, deployErr, &shipErr)
	assert.Equal(t, "pre-deploy", shipErr.Details["phase"])

	// The failing command ran, the one after it never did.
	assert.Equal(t, []string{"cmd-ok", "cmd-fail"}, runner.commands())

	// Reconcile and copy never happened.
	data, err := fsys.ReadFile("/srv/out/stale.txt")
	require.NoError(t, err)
	assert.Equal(t, "still here", string(data))

	_, err = fsys.Stat("/srv/out/index.html")
	assert.Error(t, err, "copy must not have run")
}

func TestDeploy_SameSourceDestination(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/work/build", testutil.FileTree{
		"artifact.bin": "payload",
	})

	runner := &fakeRunner{}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work"})

	_, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "build",
		Destination: "build",
		PreDeploy:   []string{"never-runs"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSameSourceDest))

	// Validation fails before any command or filesystem mutation.
	assert.Empty(t, runner.calls)
	data, err := fsys.ReadFile("/work/build/artifact.bin")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestDeploy_NetworkDestinationWorkDir(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/work/dist", testutil.FileTree{
		"index.html": "<html/>",
	})

	runner := &fakeRunner{}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work"})

	result, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: `\\web01\site`,
		PostDeploy:  []string{"iisreset"},
	})
	require.NoError(t, err)

	// Network destination keeps post-deploy in the invocation root.
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "/work", runner.calls[0].dir)
	assert.Equal(t, "/work", result.WorkDir)
}

func TestDeploy_LocalDestinationWorkDir(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/work/dist", testutil.FileTree{
		"index.html": "<html/>",
	})

	runner := &fakeRunner{}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work"})

	result, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: "/srv/out",
		PostDeploy:  []string{"systemctl restart app"},
	})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "/srv/out", runner.calls[0].dir)
	assert.Equal(t, "/srv/out", result.WorkDir)
}

func TestDeploy_ClassifierIsInjectable(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/work/dist", testutil.FileTree{
		"index.html": "<html/>",
	})

	runner := &fakeRunner{}
	pipe := deploy.New(fsys, runner, deploy.Options{
		Root:          "/work",
		IsNetworkPath: func(path string) bool { return path == "/srv/out" },
	})

	result, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: "/srv/out",
		PostDeploy:  []string{"systemctl restart app"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/work", result.WorkDir)
	assert.Equal(t, "/work", runner.calls[0].dir)
}

func TestDeploy_PreDeployRunsInRoot(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/work/dist", testutil.FileTree{
		"index.html": "<html/>",
	})

	runner := &fakeRunner{}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work"})

	// Pre-deploy stays in the invocation root even for network
	// destinations.
	_, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: `\\web01\site`,
		PreDeploy:   []string{"npm run build"},
	})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "/work", runner.calls[0].dir)
}

func TestDeploy_SourceCheckedAfterPreDeploy(t *testing.T) {
	fsys := memFS()

	runner := &fakeRunner{
		onRun: func(command, dir string) error {
			// The build step produces the source directory.
			if command == "make build" {
				testutil.CreateFileTree(t, fsys, "/work/dist", testutil.FileTree{
					"index.html": "<html/>",
				})
			}
			return nil
		},
	}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work"})

	result, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: "/srv/out",
		PreDeploy:   []string{"make build"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesCopied)
	data, err := fsys.ReadFile("/srv/out/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html/>", string(data))
}

func TestDeploy_MissingSource(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/srv/out", testutil.FileTree{
		"stale.txt": "still here",
	})

	runner := &fakeRunner{}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work"})

	_, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: "/srv/out",
		PostDeploy:  []string{"never-runs"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))

	// The destination was not reconciled and no command ran.
	data, err := fsys.ReadFile("/srv/out/stale.txt")
	require.NoError(t, err)
	assert.Equal(t, "still here", string(data))
	assert.Empty(t, runner.calls)
}

func TestDeploy_SourceIsAFile(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/work", testutil.FileTree{
		"dist": "not a directory",
	})

	runner := &fakeRunner{}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work"})

	_, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: "/srv/out",
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
}

func TestDeploy_ReconcileFailureAborts(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/work/dist", testutil.FileTree{
		"index.html": "<html/>",
	})
	// The destination path exists as a file, so reconcile cannot use it.
	testutil.CreateFileTree(t, fsys, "/srv", testutil.FileTree{
		"out": "a file where a directory should be",
	})

	runner := &fakeRunner{}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work"})

	_, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: "/srv/out",
		PostDeploy:  []string{"never-runs"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrReconcile))
	assert.Empty(t, runner.calls)
}

func TestDeploy_PostDeployFailureAfterCopy(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/work/dist", testutil.FileTree{
		"index.html": "<html/>",
	})

	runner := &fakeRunner{failOn: "iisreset"}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work"})

	_, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: "/srv/out",
		PostDeploy:  []string{"iisreset"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))

	// No rollback: the copy already happened and stays.
	data, err := fsys.ReadFile("/srv/out/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html/>", string(data))
}

func TestDeploy_KeptEntryOverwrittenByCopy(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/work/dist", testutil.FileTree{
		"config.json": "new settings",
	})
	testutil.CreateFileTree(t, fsys, "/srv/out", testutil.FileTree{
		"config.json": "old settings",
	})

	runner := &fakeRunner{}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work"})

	result, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: "/srv/out",
		KeepList:    []string{"config.json"},
	})
	require.NoError(t, err)

	// The keep list protects entries from reconcile, not from the copy.
	assert.Equal(t, []string{"config.json"}, result.Kept)
	data, err := fsys.ReadFile("/srv/out/config.json")
	require.NoError(t, err)
	assert.Equal(t, "new settings", string(data))
}

func TestDeploy_MissingRequiredFields(t *testing.T) {
	pipe := deploy.New(memFS(), &fakeRunner{}, deploy.Options{Root: "/work"})

	_, err := pipe.Deploy(context.Background(), &config.Deployment{
		Destination: "/srv/out",
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingRequiredField))
}

func TestDeploy_EmptyCommandPhasesAreSkipped(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/work/dist", testutil.FileTree{
		"index.html": "<html/>",
	})

	runner := &fakeRunner{}
	progress := &recordingProgress{}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work", Progress: progress})

	_, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: "/srv/out",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"phase:reconcile", "phase:copy"}, progress.events)
	assert.Empty(t, runner.calls)
}

func TestDeploy_DryRun(t *testing.T) {
	fsys := memFS()
	testutil.CreateFileTree(t, fsys, "/work/dist", testutil.FileTree{
		"index.html": "<html/>",
		"assets":     testutil.FileTree{"app.js": "console.log(1)"},
	})
	testutil.CreateFileTree(t, fsys, "/srv/out", testutil.FileTree{
		"old.txt": "stale",
		"log":     testutil.FileTree{"app.log": "entries"},
	})

	runner := &fakeRunner{}
	pipe := deploy.New(fsys, runner, deploy.Options{Root: "/work", DryRun: true})

	result, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: "/srv/out",
		PreDeploy:   []string{"npm run build"},
		PostDeploy:  []string{"systemctl restart app"},
		KeepList:    []string{"log"},
	})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, []string{"old.txt"}, result.Removed)
	assert.Equal(t, []string{"log"}, result.Kept)
	assert.Equal(t, 2, result.FilesCopied)
	assert.Equal(t, 1, result.DirsCopied)

	// Nothing ran and nothing changed.
	assert.Empty(t, runner.calls)
	data, err := fsys.ReadFile("/srv/out/old.txt")
	require.NoError(t, err)
	assert.Equal(t, "stale", string(data))

	_, err = fsys.Stat("/srv/out/index.html")
	assert.Error(t, err, "dry run must not copy")
}

func TestDeploy_DryRunMissingSource(t *testing.T) {
	fsys := memFS()

	pipe := deploy.New(fsys, &fakeRunner{}, deploy.Options{Root: "/work", DryRun: true})

	// Dry runs tolerate a missing source: pre-deploy would produce it.
	result, err := pipe.Deploy(context.Background(), &config.Deployment{
		Source:      "dist",
		Destination: "/srv/out",
		PreDeploy:   []string{"make build"},
	})
	require.NoError(t, err)

	assert.True(t, result.CreatedDest)
	assert.Zero(t, result.FilesCopied)
}
