package reconcile

import (
	"path/filepath"
	"strings"

	"github.com/klaus-strele/shipshape/pkg/errors"
	"github.com/klaus-strele/shipshape/pkg/logging"
	"github.com/klaus-strele/shipshape/pkg/types"
)

// Result reports what a reconcile pass did, or in the case of Preview,
// would do. Entry names are as listed in the directory.
type Result struct {
	Created bool     // destination directory had to be created
	Removed []string // immediate entries removed (or to remove)
	Kept    []string // immediate entries retained via the keep set
}

// Reconcile ensures dir exists as a directory and empties it of every
// immediate entry whose uppercased name is not in keep. Directories go
// with their full contents. The first removal failure aborts the pass
// and surfaces as a ReconcileError; entries already removed stay gone.
// Keep-set names with no matching entry are silently ignored.
func Reconcile(fsys types.FS, dir string, keep map[string]bool) (*Result, error) {
	logger := logging.GetLogger("reconcile").With().Str("dir", dir).Logger()
	defer logging.LogOperationStart(logger, "reconcile")()

	result, err := survey(fsys, dir, keep)
	if err != nil {
		return nil, err
	}

	if result.Created {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrReconcile,
				"failed to create destination directory %s", dir).
				WithDetail("dir", dir)
		}
		logger.Info().Msg("Destination directory created")
		return result, nil
	}

	for _, name := range result.Removed {
		if err := fsys.RemoveAll(filepath.Join(dir, name)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrReconcile,
				"failed to remove destination entry %s", name).
				WithDetail("dir", dir).
				WithDetail("entry", name)
		}
		logger.Debug().Str("entry", name).Msg("Removed destination entry")
	}

	logger.Info().
		Int("removed", len(result.Removed)).
		Int("kept", len(result.Kept)).
		Msg("Destination reconciled")

	return result, nil
}

// Preview computes what Reconcile would do without mutating anything.
func Preview(fsys types.FS, dir string, keep map[string]bool) (*Result, error) {
	return survey(fsys, dir, keep)
}

// survey stats the directory and classifies its immediate entries
// against the keep set.
func survey(fsys types.FS, dir string, keep map[string]bool) (*Result, error) {
	info, err := fsys.Stat(dir)
	if err != nil {
		// Absent is fine, reconcile creates it. A stat failure for any
		// other reason will resurface from MkdirAll.
		return &Result{Created: true}, nil
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrReconcile,
			"destination %s exists but is not a directory", dir).
			WithDetail("dir", dir)
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrReconcile,
			"failed to list destination directory %s", dir).
			WithDetail("dir", dir)
	}

	result := &Result{}
	for _, entry := range entries {
		if keep[strings.ToUpper(entry.Name())] {
			result.Kept = append(result.Kept, entry.Name())
		} else {
			result.Removed = append(result.Removed, entry.Name())
		}
	}
	return result, nil
}
