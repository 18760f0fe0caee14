package scaffold

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/mcpcreator-labs/mcp-creator/internal/codegen"
	"github.com/mcpcreator-labs/mcp-creator/internal/filewriter"
	"github.com/mcpcreator-labs/mcp-creator/internal/toolspec"
)

// Tree maps slash-separated relative paths to file contents.
type Tree map[string]string

// Paths returns the sorted relative paths in the tree.
func (t Tree) Paths() []string {
	return slices.Sorted(maps.Keys(t))
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Success    bool                 `json:"success"`
	ProjectDir string               `json:"project_dir"`
	ModuleName string               `json:"module_name"`
	Files      []string             `json:"-"` // absolute paths, sorted
	FileList   []string             `json:"file_list"`
	Licensed   bool                 `json:"licensed"`
	Hosting    toolspec.HostingMode `json:"hosting"`
	Warnings   []string             `json:"warnings,omitempty"`
	NextSteps  []string             `json:"next_steps"`
}

// FilesCreated returns the number of files written.
func (r *Result) FilesCreated() int { return len(r.Files) }

// ─── Layout ───────────────────────────────────────────────────────

// SourceDir returns the package source directory for a module.
func SourceDir(moduleName string) string {
	return "src/" + moduleName
}

// EntrypointPath returns the relative path of the server entrypoint.
func EntrypointPath(moduleName string) string {
	return SourceDir(moduleName) + "/server.py"
}

// ToolModulePath returns the relative path of a tool's interface module.
func ToolModulePath(moduleName, toolName string) string {
	return SourceDir(moduleName) + "/tools/" + toolName + ".py"
}

// ServiceModulePath returns the relative path of a tool's implementation stub.
func ServiceModulePath(moduleName, toolName string) string {
	return SourceDir(moduleName) + "/services/" + toolName + "_service.py"
}

// ToolTestPath returns the relative path of a tool's test file.
func ToolTestPath(toolName string) string {
	return "tests/test_" + toolName + ".py"
}

// ToolFiles renders the per-tool triple: interface module, implementation
// stub and test.
func ToolFiles(moduleName string, t toolspec.Tool) Tree {
	return Tree{
		ToolModulePath(moduleName, t.Name):    codegen.RenderToolModule(moduleName, t),
		ServiceModulePath(moduleName, t.Name): codegen.RenderServiceModule(t),
		ToolTestPath(t.Name):                  codegen.RenderToolTest(moduleName, t),
	}
}

// ─── Build ────────────────────────────────────────────────────────

// Build renders every file of the project. It fails only when the project
// itself is malformed.
func Build(p *toolspec.Project) (Tree, error) {
	if p == nil {
		return nil, fmt.Errorf("project is required")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	m := p.ModuleName()
	src := SourceDir(m)

	tree := Tree{
		"pyproject.toml":              codegen.RenderManifest(p),
		".gitignore":                  codegen.RenderIgnoreFile(),
		"README.md":                   codegen.RenderReadme(p),
		src + "/__init__.py":          codegen.RenderPackageInit(p.PackageName),
		EntrypointPath(m):             codegen.RenderEntrypoint(p),
		src + "/transport.py":         codegen.RenderTransport(p.PackageName),
		src + "/tools/__init__.py":    "",
		src + "/services/__init__.py": "",
		"tests/test_server.py":        codegen.RenderAggregateTest(m, p.ToolNames()),
	}

	if env, ok := codegen.RenderEnvExample(p); ok {
		tree[".env.example"] = env
	}
	if p.Remote() {
		tree["Dockerfile"] = codegen.RenderDockerfile(p)
	}

	for _, t := range p.Tools {
		for path, content := range ToolFiles(m, t) {
			if _, dup := tree[path]; dup {
				return nil, fmt.Errorf("tool %q: path %s collides with another file", t.Name, path)
			}
			tree[path] = content
		}
	}

	return tree, nil
}

// ExpectedFileCount returns the number of files Build produces for p.
func ExpectedFileCount(p *toolspec.Project) int {
	n := 9 + 3*len(p.Tools)
	if codegen.NeedsEnvExample(p) {
		n++
	}
	if p.Remote() {
		n++
	}
	return n
}

// ─── Generate ─────────────────────────────────────────────────────

// Generate builds the project and writes it to <outputDir>/<package_name>.
// The target directory must be empty or absent.
func Generate(p *toolspec.Project, outputDir string) (*Result, error) {
	tree, err := Build(p)
	if err != nil {
		return nil, err
	}

	base, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}
	projectDir := filepath.Join(base, p.PackageName)

	if err := filewriter.EnsureEmptyDir(projectDir); err != nil {
		return nil, err
	}

	files, err := filewriter.WriteFiles(projectDir, tree)
	if err != nil {
		return nil, fmt.Errorf("writing project files: %w", err)
	}

	hosting := p.Hosting
	if hosting == "" {
		hosting = toolspec.HostingLocal
	}
	result := &Result{
		Success:    true,
		ProjectDir: projectDir,
		ModuleName: p.ModuleName(),
		Files:      files,
		FileList:   tree.Paths(),
		Licensed:   p.Licensed,
		Hosting:    hosting,
	}
	for _, g := range p.UnknownGatedTools() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("gated tool %q does not match any declared tool", g))
	}
	result.NextSteps = nextSteps(p, projectDir)
	return result, nil
}

func nextSteps(p *toolspec.Project, projectDir string) []string {
	steps := []string{
		"Project scaffolded at " + projectDir,
		fmt.Sprintf("cd %s && uv venv .venv && source .venv/bin/activate && uv pip install -e '.[dev]'", projectDir),
		"Open the services/ folder and replace the TODO stubs with your real logic.",
		"Run 'pytest -v' to verify everything works.",
		"When ready, use build_package to build and publish_package to publish to PyPI.",
	}
	if p.Licensed {
		steps = append(steps,
			"License gating is enabled. Users need "+codegen.LicenseEnvVar+" to use paid tools.")
	}
	if p.Remote() {
		steps = append(steps,
			fmt.Sprintf("Remote hosting enabled. Use 'docker build' and 'docker run' to deploy (port %d, override with PORT).", codegen.DefaultPort))
	}
	return steps
}
