package packaging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
)

// ManifestFile is the project manifest every generated project carries.
const ManifestFile = "pyproject.toml"

// DistPattern matches the artifacts uv build produces.
const DistPattern = "*.{whl,tar.gz}"

type manifest struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
}

// ReadPackageName returns [project].name from the project's pyproject.toml.
func ReadPackageName(projectDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, ManifestFile))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", ManifestFile, err)
	}
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return "", fmt.Errorf("parsing %s: %w", ManifestFile, err)
	}
	if m.Project.Name == "" {
		return "", errors.New("pyproject.toml has no [project].name")
	}
	return m.Project.Name, nil
}

// DistFiles lists built artifacts in <projectDir>/dist, sorted. A missing
// dist directory yields an empty list.
func DistFiles(projectDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(projectDir, "dist"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading dist directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ok, _ := doublestar.Match(DistPattern, e.Name()); ok {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// hasDistEntries reports whether dist/ exists and holds anything at all.
func hasDistEntries(projectDir string) bool {
	entries, err := os.ReadDir(filepath.Join(projectDir, "dist"))
	return err == nil && len(entries) > 0
}
