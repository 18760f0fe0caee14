package mutate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcpcreator-labs/mcp-creator/internal/codegen"
	"github.com/mcpcreator-labs/mcp-creator/internal/filewriter"
	"github.com/mcpcreator-labs/mcp-creator/internal/scaffold"
	"github.com/mcpcreator-labs/mcp-creator/internal/toolspec"
)

var (
	// ErrNotGenerated means the root has no src/<module> directory.
	ErrNotGenerated = errors.New("not a generated project")

	// ErrAmbiguousModule means src/ holds more than one candidate module.
	ErrAmbiguousModule = errors.New("ambiguous module directory")
)

// Options tunes AddTool.
type Options struct {
	// AllowDuplicate writes the tool even when tools/<name>.py already
	// exists, overwriting the triple and adding a second registration.
	AllowDuplicate bool

	// Gated places the new tool behind the license check. Ignored when the
	// entrypoint has no license helper.
	Gated bool
}

// Result reports what AddTool did. ServerUpdated is false when the tool
// files were written but the entrypoint could not be spliced.
type Result struct {
	Success       bool     `json:"success"`
	ToolName      string   `json:"tool_name,omitempty"`
	ModuleName    string   `json:"module_name,omitempty"`
	FilesCreated  []string `json:"files_created,omitempty"`
	ServerUpdated bool     `json:"server_updated"`
	Error         string   `json:"error,omitempty"`
	NextSteps     []string `json:"next_steps,omitempty"`

	// Err is the underlying error for failed calls, for errors.Is checks.
	Err error `json:"-"`
}

func failure(err error) *Result {
	return &Result{Success: false, Error: err.Error(), Err: err}
}

// DiscoverModule returns the single module directory name under
// <root>/src, ignoring entries that start with "." or "_".
func DiscoverModule(root string) (string, error) {
	src := filepath.Join(root, "src")
	entries, err := os.ReadDir(src)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: no src/ directory at %s", ErrNotGenerated, root)
		}
		return "", fmt.Errorf("reading %s: %w", src, err)
	}

	var modules []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		modules = append(modules, name)
	}

	switch len(modules) {
	case 0:
		return "", fmt.Errorf("%w: no module directory under %s", ErrNotGenerated, src)
	case 1:
		return modules[0], nil
	default:
		return "", fmt.Errorf("%w: found %s under %s", ErrAmbiguousModule, strings.Join(modules, ", "), src)
	}
}

// AddTool adds one tool to a previously generated project: it writes the
// tool's interface module, stub and test, then splices the import line and
// registration into the entrypoint at its sentinel lines.
//
// Concurrent calls against the same root must be serialised by the caller.
func AddTool(projectRoot string, tool toolspec.Tool, opts Options) *Result {
	if err := tool.Validate(); err != nil {
		return failure(err)
	}

	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return failure(fmt.Errorf("resolving project root: %w", err))
	}
	module, err := DiscoverModule(root)
	if err != nil {
		return failure(err)
	}

	toolPath := filepath.Join(root, filepath.FromSlash(scaffold.ToolModulePath(module, tool.Name)))
	if _, err := os.Stat(toolPath); err == nil && !opts.AllowDuplicate {
		return failure(fmt.Errorf("%w: %q already exists in %s", toolspec.ErrDuplicateTool, tool.Name, module))
	}

	files := scaffold.ToolFiles(module, tool)
	if _, err := filewriter.WriteFiles(root, files); err != nil {
		return failure(fmt.Errorf("writing tool files: %w", err))
	}

	result := &Result{
		Success:      true,
		ToolName:     tool.Name,
		ModuleName:   module,
		FilesCreated: files.Paths(),
	}

	entry := filepath.Join(root, filepath.FromSlash(scaffold.EntrypointPath(module)))
	result.ServerUpdated = spliceEntrypoint(entry, module, tool, opts.Gated)

	result.NextSteps = []string{
		fmt.Sprintf("Tool '%s' added to the project.", tool.Name),
		fmt.Sprintf("Implement your logic in %s", scaffold.ServiceModulePath(module, tool.Name)),
		"Run 'pytest -v' to verify it registers correctly.",
	}
	if !result.ServerUpdated {
		result.NextSteps = append(result.NextSteps, fmt.Sprintf(
			"Could not update %s automatically: add %q between the import markers and register the tool between the tool markers.",
			scaffold.EntrypointPath(module), codegen.RenderImportLine(module, tool.Name)))
	}
	return result
}

// spliceEntrypoint inserts the import line before the import-block close
// and the registration after the registration-block open. It reports
// whether the entrypoint was rewritten.
func spliceEntrypoint(path, module string, tool toolspec.Tool, gated bool) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if gated && !strings.Contains(string(data), "def "+codegen.LicenseHelper+"(") {
		gated = false
	}

	applied, err := filewriter.SpliceFile(path,
		filewriter.Splice{
			Sentinel: codegen.SentinelImportsEnd,
			Fragment: codegen.RenderImportLine(module, tool.Name),
			Before:   true,
		},
		filewriter.Splice{
			Sentinel: codegen.SentinelToolsStart,
			Fragment: codegen.RenderRegistration(tool, gated),
		},
	)
	if err != nil {
		return false
	}
	for _, ok := range applied {
		if !ok {
			return false
		}
	}
	return true
}
