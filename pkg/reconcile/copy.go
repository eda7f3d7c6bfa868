package reconcile

import (
	"io/fs"
	"path/filepath"

	"github.com/klaus-strele/shipshape/pkg/errors"
	"github.com/klaus-strele/shipshape/pkg/logging"
	"github.com/klaus-strele/shipshape/pkg/types"
)

// CopyResult reports how much a tree copy moved.
type CopyResult struct {
	Files int // non-directory entries written, symlinks included
	Dirs  int // directories created under the destination
}

// CopyTree recursively copies every entry of the source directory into
// the destination directory, overwriting whatever collides there, kept
// entries included. Symlinks are reproduced with their original target
// rather than followed, so a "current -> releases/v1" layout arrives
// as the same link and a link cycle cannot pull the copy into itself.
// The first failure aborts the copy and surfaces as a CopyError; the
// destination may be left partially populated.
func CopyTree(fsys types.FS, source, destination string) (*CopyResult, error) {
	logger := logging.GetLogger("reconcile.copy").With().
		Str("source", source).
		Str("destination", destination).
		Logger()
	defer logging.LogOperationStart(logger, "copy")()

	result := &CopyResult{}
	if err := copyDirInto(fsys, source, destination, result); err != nil {
		return nil, err
	}

	logger.Info().
		Int("files", result.Files).
		Int("dirs", result.Dirs).
		Msg("Source copied to destination")

	return result, nil
}

func copyDirInto(fsys types.FS, src, dst string, result *CopyResult) error {
	entries, err := fsys.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy,
			"failed to list source directory %s", src).
			WithDetail("source", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.Type()&fs.ModeSymlink != 0 {
			if err := copySymlink(fsys, srcPath, dstPath); err != nil {
				return err
			}
			result.Files++
			continue
		}

		if err := clearConflict(fsys, dstPath, entry.IsDir()); err != nil {
			return err
		}

		if entry.IsDir() {
			if err := fsys.MkdirAll(dstPath, dirMode(entry)); err != nil {
				return errors.Wrapf(err, errors.ErrCopy,
					"failed to create directory %s", dstPath).
					WithDetail("destination", dstPath)
			}
			result.Dirs++
			if err := copyDirInto(fsys, srcPath, dstPath, result); err != nil {
				return err
			}
			continue
		}

		if err := copyFile(fsys, srcPath, dstPath); err != nil {
			return err
		}
		result.Files++
	}

	return nil
}

// copySymlink reproduces a source symlink at the destination with the
// same target string. The link is never followed, so a directory target
// or a dangling target copies the same way as a file target. Symlink
// cannot overwrite, so whatever occupies the destination path is
// removed first.
func copySymlink(fsys types.FS, srcPath, dstPath string) error {
	target, err := fsys.Readlink(srcPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy,
			"failed to read symlink %s", srcPath).
			WithDetail("source", srcPath)
	}

	if _, err := fsys.Lstat(dstPath); err == nil {
		if err := fsys.RemoveAll(dstPath); err != nil {
			return errors.Wrapf(err, errors.ErrCopy,
				"failed to replace conflicting destination entry %s", dstPath).
				WithDetail("destination", dstPath)
		}
	}

	if err := fsys.Symlink(target, dstPath); err != nil {
		return errors.Wrapf(err, errors.ErrCopy,
			"failed to create symlink %s", dstPath).
			WithDetail("destination", dstPath)
	}
	return nil
}

// clearConflict removes a destination entry whose type disagrees with
// the incoming source entry, so the overwrite can proceed. A destination
// symlink always counts as a conflict: writing through it would modify
// its target instead of replacing the link. Same-type collisions need
// no help: files are truncated on write and directories are merged into.
func clearConflict(fsys types.FS, dstPath string, srcIsDir bool) error {
	info, err := fsys.Lstat(dstPath)
	if err != nil {
		return nil
	}
	if info.Mode()&fs.ModeSymlink == 0 && info.IsDir() == srcIsDir {
		return nil
	}

	if err := fsys.RemoveAll(dstPath); err != nil {
		return errors.Wrapf(err, errors.ErrCopy,
			"failed to replace conflicting destination entry %s", dstPath).
			WithDetail("destination", dstPath)
	}
	return nil
}

// copyFile copies one file by content, carrying the source's permission
// bits when they can be read.
func copyFile(fsys types.FS, srcPath, dstPath string) error {
	data, err := fsys.ReadFile(srcPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy,
			"failed to read source file %s", srcPath).
			WithDetail("source", srcPath)
	}

	var mode fs.FileMode = 0644
	if info, err := fsys.Stat(srcPath); err == nil {
		mode = info.Mode().Perm()
	}

	if err := fsys.WriteFile(dstPath, data, mode); err != nil {
		return errors.Wrapf(err, errors.ErrCopy,
			"failed to write destination file %s", dstPath).
			WithDetail("destination", dstPath)
	}
	return nil
}

func dirMode(entry fs.DirEntry) fs.FileMode {
	if info, err := entry.Info(); err == nil {
		if perm := info.Mode().Perm(); perm != 0 {
			return perm
		}
	}
	return 0755
}

// CountTree reports how many files and directories CopyTree would copy
// from dir, without touching anything. Used for previews.
func CountTree(fsys types.FS, dir string) (*CopyResult, error) {
	result := &CopyResult{}
	if err := countDirInto(fsys, dir, result); err != nil {
		return nil, err
	}
	return result, nil
}

func countDirInto(fsys types.FS, dir string, result *CopyResult) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy,
			"failed to list source directory %s", dir).
			WithDetail("source", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			result.Dirs++
			if err := countDirInto(fsys, filepath.Join(dir, entry.Name()), result); err != nil {
				return err
			}
			continue
		}
		result.Files++
	}

	return nil
}
