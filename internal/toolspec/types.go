package toolspec

import (
	"slices"

	"github.com/mcpcreator-labs/mcp-creator/internal/naming"
)

// HostingMode selects the transport and deployment artifacts of a generated
// project.
type HostingMode string

const (
	HostingLocal  HostingMode = "local"
	HostingRemote HostingMode = "remote"
)

// Parameter is one declared input of a tool.
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Required    *bool  `json:"required,omitempty" yaml:"required,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Default is only consulted for optional parameters. nil renders as None.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`
}

// IsRequired reports whether the parameter is required. An absent required
// flag means required.
func (p Parameter) IsRequired() bool {
	return p.Required == nil || *p.Required
}

// ScalarType resolves the declared type tag.
func (p Parameter) ScalarType() naming.ScalarType {
	return naming.ParseScalarType(p.Type)
}

// Tool is one operation exposed by a generated server.
type Tool struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Returns     string      `json:"returns,omitempty" yaml:"returns,omitempty"`
}

// Summary returns the tool description, falling back to "<name> tool".
func (t Tool) Summary() string {
	if t.Description != "" {
		return t.Description
	}
	return t.Name + " tool"
}

// ReturnsText returns the declared result description or the default one.
func (t Tool) ReturnsText() string {
	if t.Returns != "" {
		return t.Returns
	}
	return "Result as JSON string"
}

// OrderedParameters returns the parameters in declaration order with every
// required parameter ahead of the optional ones. Relative order inside each
// group is preserved.
func (t Tool) OrderedParameters() []Parameter {
	out := make([]Parameter, 0, len(t.Parameters))
	for _, p := range t.Parameters {
		if p.IsRequired() {
			out = append(out, p)
		}
	}
	for _, p := range t.Parameters {
		if !p.IsRequired() {
			out = append(out, p)
		}
	}
	return out
}

// EnvVar declares an environment variable the generated server reads.
type EnvVar struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    *bool  `json:"required,omitempty" yaml:"required,omitempty"`
}

// IsRequired reports whether the variable is required; absent means true.
func (e EnvVar) IsRequired() bool {
	return e.Required == nil || *e.Required
}

// Project is a full generation request.
type Project struct {
	PackageName string      `json:"package_name" yaml:"package_name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Tools       []Tool      `json:"tools" yaml:"tools"`
	EnvVars     []EnvVar    `json:"env_vars,omitempty" yaml:"env_vars,omitempty"`
	Licensed    bool        `json:"licensed,omitempty" yaml:"licensed,omitempty"`
	GatedTools  []string    `json:"gated_tools,omitempty" yaml:"gated_tools,omitempty"`
	Hosting     HostingMode `json:"hosting,omitempty" yaml:"hosting,omitempty"`
}

// ModuleName returns the importable module name derived from PackageName.
func (p *Project) ModuleName() string {
	return naming.ToModuleName(p.PackageName)
}

// Remote reports whether the project is hosted over the network.
func (p *Project) Remote() bool {
	return p.Hosting == HostingRemote
}

// IsGated reports whether the named tool is placed behind the license check.
// With licensing on and no explicit gated list, every tool is gated.
func (p *Project) IsGated(toolName string) bool {
	if !p.Licensed {
		return false
	}
	return len(p.GatedTools) == 0 || slices.Contains(p.GatedTools, toolName)
}

// ToolNames returns the declared tool names in order.
func (p *Project) ToolNames() []string {
	names := make([]string, len(p.Tools))
	for i, t := range p.Tools {
		names[i] = t.Name
	}
	return names
}

// UnknownGatedTools returns gated names that match no declared tool.
func (p *Project) UnknownGatedTools() []string {
	var unknown []string
	names := p.ToolNames()
	for _, g := range p.GatedTools {
		if !slices.Contains(names, g) {
			unknown = append(unknown, g)
		}
	}
	return unknown
}

// BoolPtr is a small helper for building Parameter and EnvVar literals.
func BoolPtr(b bool) *bool { return &b }
