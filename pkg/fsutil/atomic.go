package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the default permission mode for newly created files.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic writes content to a temp file next to path and renames it
// over path. If mode is 0, DefaultFileMode is used. On error the temp file
// is removed and path is untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// ReplaceDocument writes content over the file snap was taken from,
// keeping its mode. It fails with ErrModified if the file changed since
// the snapshot, and makes a sidecar backup first when backup is true.
func ReplaceDocument(ctx context.Context, snap *Snapshot, content []byte, backup bool) error {
	changed, err := snap.Changed(ctx)
	if err != nil {
		return err
	}
	if changed {
		return fmt.Errorf("%w: %s", ErrModified, snap.Path)
	}

	if backup {
		if _, err := CreateBackup(ctx, snap.Path); err != nil {
			return err
		}
	}

	if err := WriteAtomic(ctx, snap.Path, content, snap.Mode.Perm()); err != nil {
		return fmt.Errorf("replace %s: %w", snap.Path, err)
	}
	return nil
}
