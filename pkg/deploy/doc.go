// Package deploy runs the deployment pipeline: pre-deploy commands,
// destination reconcile and copy, post-deploy commands, in that order
// and never any other.
//
// A run is strictly sequential. Commands within a phase execute one at
// a time in list order, and the first failure anywhere aborts the whole
// run; later commands and later phases are never attempted. There is no
// retry, no rollback, and no timeout, so a failed run can leave the
// destination partially emptied or partially copied. That is accepted
// behavior, reported rather than repaired.
//
// The pipeline checks the source directory after the pre-deploy phase,
// not before it, because pre-deploy commands routinely produce the
// source (a build step emitting dist/). Reconcile and copy refuse to
// run against a source that still does not exist by then.
//
// Post-deploy commands get their working directory from the configured
// destination string: a network-style destination keeps them in the
// invocation root, anything else runs them inside the resolved
// destination. Pre-deploy commands always run in the invocation root.
//
// # Usage
//
//	pipe := deploy.New(fsys, executor.New(), deploy.Options{Root: cwd})
//	result, err := pipe.Deploy(ctx, cfg)
//
// With Options.DryRun set, Deploy previews the run: it reports what
// reconcile would remove and keep and how much the copy would move,
// without mutating the filesystem or spawning a single process.
package deploy
