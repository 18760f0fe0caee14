package codegen

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/mcpcreator-labs/mcp-creator/internal/toolspec"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("codegen").
		Funcs(template.FuncMap{"quote": quote}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

// DefaultPort is the port a remote server listens on when PORT is unset.
const DefaultPort = 8000

// manifestData holds the variables available to the static templates.
type manifestData struct {
	PackageName string
	ModuleName  string
	Description string
	Licensed    bool
	Port        int
}

func newManifestData(p *toolspec.Project) manifestData {
	return manifestData{
		PackageName: p.PackageName,
		ModuleName:  p.ModuleName(),
		Description: p.Description,
		Licensed:    p.Licensed,
		Port:        DefaultPort,
	}
}

// execute renders one of the embedded templates. The templates and their
// data types are fixed at compile time, so an execution error is a bug.
func execute(name string, data any) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		panic(fmt.Sprintf("codegen: executing template %s: %v", name, err))
	}
	return buf.String()
}

// RenderManifest renders pyproject.toml. Licensed projects get the license
// client as an extra dependency.
func RenderManifest(p *toolspec.Project) string {
	return execute("pyproject.toml.tmpl", newManifestData(p))
}

// RenderIgnoreFile renders the fixed .gitignore.
func RenderIgnoreFile() string {
	return execute("gitignore.tmpl", nil)
}

// RenderPackageInit renders src/<module>/__init__.py.
func RenderPackageInit(packageName string) string {
	return fmt.Sprintf("\"\"\"%s MCP server.\"\"\"\n", docText(packageName))
}

// RenderTransport renders src/<module>/transport.py.
func RenderTransport(packageName string) string {
	return execute("transport.py.tmpl", manifestData{PackageName: packageName})
}

// RenderDockerfile renders the container recipe used for remote hosting.
func RenderDockerfile(p *toolspec.Project) string {
	return execute("Dockerfile.tmpl", newManifestData(p))
}
