// Package testutil provides utilities for testing shipshape components.
//
// Key components:
//   - File and directory helpers over t.TempDir for real-filesystem tests
//   - FileTree: declarative directory tree builder over types.FS
//   - Lightweight assertion helpers for tests that don't pull in testify
//
// All test data should be defined inline, not in external files, and each
// test should be completely isolated with no shared state.
package testutil
