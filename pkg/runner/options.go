// Package runner formats many files concurrently.
package runner

import (
	"github.com/yaklabco/prettydoc/pkg/fsutil"
	"github.com/yaklabco/prettydoc/pkg/langdetect"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the files or directories to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) picked up
	// while walking directories. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to
	// WorkingDir. Empty means every file with a known extension.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories. They merge the
	// config ignore list and --ignore.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// IncludeVendored walks into vendor/, node_modules/ and similar
	// third-party directories.
	IncludeVendored bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Write rewrites changed files in place.
	Write bool

	// Backup selects how originals are kept when writing.
	Backup fsutil.BackupMode
}

// DefaultExtensions returns the extensions of every built-in language.
func DefaultExtensions() []string {
	return langdetect.AllExtensions()
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveBackup() fsutil.BackupMode {
	if o.Backup == "" {
		return fsutil.BackupModeNone
	}
	return o.Backup
}
