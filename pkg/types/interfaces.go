package types

import (
	"context"
	"io/fs"
)

// FS is the filesystem interface required for shipshape operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error

	// Optional operations - implementations should check for support
	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// CommandRunner runs a single operator-authored shell command line in a
// working directory, streaming its output to the invoker's streams. The
// command string reaches the shell verbatim. Implementations must block
// until the command finishes and impose no deadline of their own.
type CommandRunner interface {
	Run(ctx context.Context, command, dir string) error
}
