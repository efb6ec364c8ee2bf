package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for files written without one.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content by writing a synced temp file in
// the same directory and renaming it over the target. A zero mode uses
// DefaultFileMode. On error the target is left untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
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
	if err := os.Chmod(tmpPath, mode.Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	committed = true
	return nil
}

// ReplaceResult describes a completed Replace.
type ReplaceResult struct {
	// BackupPath is the backup that was created, or empty.
	BackupPath string
}

// Replace rewrites the snapshotted file with content. It fails with
// ErrModified when the file changed since the snapshot, backs the file up
// according to mode, and keeps the original permissions.
func Replace(ctx context.Context, snap *Snapshot, content []byte, mode BackupMode) (*ReplaceResult, error) {
	changed, err := snap.Changed(ctx)
	if err != nil {
		return nil, err
	}
	if changed {
		return nil, fmt.Errorf("%w: %s", ErrModified, snap.Path)
	}

	result := &ReplaceResult{}
	created, err := CreateBackup(ctx, snap.Path, mode)
	if err != nil {
		return nil, err
	}
	if created {
		result.BackupPath = BackupPath(snap.Path, mode)
	}

	if err := WriteAtomic(ctx, snap.Path, content, snap.Mode); err != nil {
		return nil, err
	}
	return result, nil
}
