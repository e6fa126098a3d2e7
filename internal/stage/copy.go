package stage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// excludedNames are never staged.
var excludedNames = map[string]bool{
	".DS_Store": true,
}

// copyGlob copies every non-hidden match of pattern (relative to srcDir) into
// dstDir, recursing into directories. It mirrors `cp -R src/<pattern> dst`.
// Only pattern is expanded; srcDir is taken literally.
func copyGlob(srcDir, pattern, dstDir string) error {
	matches, err := doublestar.Glob(os.DirFS(srcDir), pattern)
	if err != nil {
		return fmt.Errorf("expanding %s in %s: %w", pattern, srcDir, err)
	}

	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return err
	}

	for _, rel := range matches {
		if isHidden(rel) || shouldExclude(path.Base(rel)) {
			continue
		}
		match := filepath.Join(srcDir, filepath.FromSlash(rel))

		info, err := os.Stat(match)
		if err != nil {
			return err
		}

		dst := filepath.Join(dstDir, filepath.FromSlash(rel))
		if info.IsDir() {
			err = copyDir(match, dst)
		} else {
			if err = os.MkdirAll(filepath.Dir(dst), 0755); err == nil {
				err = copyFile(match, dst)
			}
		}
		if err != nil {
			return fmt.Errorf("copying %s: %w", match, err)
		}
	}
	return nil
}

// copyDir recursively copies src to dst, excluding entries in excludedNames.
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if shouldExclude(entry.Name()) {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
		// Symlinks and special files are not staged.
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, srcInfo.Mode().Perm())
}

func shouldExclude(name string) bool {
	return excludedNames[name]
}

// isHidden matches shell glob behaviour, where * skips dot files.
func isHidden(name string) bool {
	return strings.HasPrefix(path.Base(filepath.ToSlash(name)), ".")
}

// requireDir fails unless path exists and is a directory.
func requireDir(path, what string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", what, path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s %s is not a directory", what, path)
	}
	return nil
}
