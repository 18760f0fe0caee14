package filewriter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
)

// Permission constants.
const (
	DirPerm        os.FileMode = 0755
	FilePerm       os.FileMode = 0644
	FilePermSecure os.FileMode = 0600
)

// WriteFiles writes every relative path in files under baseDir, creating
// parent directories as needed. It returns the absolute paths written,
// sorted. Paths that would escape baseDir are rejected before anything is
// written.
func WriteFiles(baseDir string, files map[string]string) ([]string, error) {
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", baseDir, err)
	}

	rels := make([]string, 0, len(files))
	for rel := range files {
		if !filepath.IsLocal(filepath.FromSlash(rel)) {
			return nil, fmt.Errorf("refusing to write %q outside %s", rel, base)
		}
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	written := make([]string, 0, len(rels))
	for _, rel := range rels {
		full := filepath.Join(base, filepath.FromSlash(rel))
		if err := WriteFile(full, []byte(files[rel]), FilePerm); err != nil {
			return written, err
		}
		written = append(written, full)
	}
	return written, nil
}

// WriteFile writes data to path, creating parent directories, and applies
// perm even when the file already existed.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return Chmod(path, perm)
}

// Chmod sets file permissions. It is a no-op on Windows, which has no
// Unix permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	return nil
}

// EnsureEmptyDir creates dir if needed and fails when it already holds
// entries, so a generation never overwrites an existing project.
func EnsureEmptyDir(dir string) error {
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading output directory: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("output directory %s is not empty; remove existing files first", dir)
	}
	return nil
}
