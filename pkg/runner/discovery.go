package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/prettydoc/pkg/langdetect"
)

// Discover finds the files to format under opts.Paths. It returns a sorted
// list of absolute paths. Files named explicitly are kept whatever their
// extension; directories are walked for files with a known extension.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w, err := newWalker(workDir, opts)
	if err != nil {
		return nil, err
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := w.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}
		if !w.exclude.match(w.rel(absPath), false) {
			w.add(absPath)
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type walker struct {
	workDir    string
	opts       Options
	extensions []string
	include    *matcher
	exclude    *matcher
	seen       map[string]struct{}
	visited    map[string]struct{}
	files      []string
}

func newWalker(workDir string, opts Options) (*walker, error) {
	include, err := newMatcher(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := newMatcher(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	extensions := make([]string, 0, len(opts.effectiveExtensions()))
	for _, ext := range opts.effectiveExtensions() {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions = append(extensions, ext)
	}

	return &walker{
		workDir:    workDir,
		opts:       opts,
		extensions: extensions,
		include:    include,
		exclude:    exclude,
		seen:       make(map[string]struct{}),
		visited:    make(map[string]struct{}),
	}, nil
}

func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// walk adds the matching files under root. Hidden entries are skipped, as
// are vendored directories unless Options.IncludeVendored is set.
func (w *walker) walk(ctx context.Context, root string) error {
	if realRoot, err := filepath.EvalSymlinks(root); err == nil {
		w.visited[realRoot] = struct{}{}
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		relPath := w.rel(path)
		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if hidden || w.exclude.match(relPath, true) {
				return filepath.SkipDir
			}
			if !w.opts.IncludeVendored && langdetect.IsVendored(filepath.ToSlash(relPath)+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil {
				// Broken or unreadable symlink.
				return nil //nolint:nilerr // Skipped on purpose.
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks {
					return nil
				}
				realPath, evalErr := filepath.EvalSymlinks(path)
				if evalErr != nil {
					return nil //nolint:nilerr // Skipped on purpose.
				}
				if _, ok := w.visited[realPath]; ok {
					return nil
				}
				w.visited[realPath] = struct{}{}
				return w.walk(ctx, realPath)
			}
		}

		if w.matches(path, relPath) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (w *walker) matches(path, relPath string) bool {
	if !slices.Contains(w.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}
	if w.exclude.match(relPath, false) {
		return false
	}
	if !w.include.empty() && !w.include.match(relPath, false) {
		return false
	}
	return true
}
