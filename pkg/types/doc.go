// Package types defines the shared interfaces for shipshape components.
//
// The interfaces here are the seams between the deployment pipeline and
// the outside world: the filesystem and the platform shell. Production
// code wires the real implementations from pkg/filesystem and
// pkg/executor; tests substitute in-memory or recording fakes.
package types
