package toolspec

import (
	"fmt"
	"regexp"
)

var (
	packageNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	identifierPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

const (
	keywordUniqueTool  = "uniqueTool"
	keywordUniqueParam = "uniqueParameter"
	keywordReserved    = "reserved"
)

// pythonKeywords is keyword.kwlist. Soft keywords (match, case, type) are
// legal identifiers and are not listed.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// reservedToolNames collide with fixed files of the layout (server gives
// tests/test_server.py, __init__ gives tools/__init__.py) or rebind a
// module-level name of the generated server.py.
var reservedToolNames = map[string]bool{
	"server": true, "__init__": true,
	"mcp": true, "main": true, "json": true, "os": true, "FastMCP": true,
	"verify_license": true, "run_stdio": true, "run_http": true, "_require_license": true,
}

// reservedParamNames are taken by the generated function bodies: the
// service receiver, the json module and the locals of the tool and gated
// registration functions.
var reservedParamNames = map[string]bool{
	"self": true, "json": true, "service": true, "result": true, "err": true,
}

// Validate checks a project built in code (rather than parsed from a
// payload) for the same constraints the schema enforces, plus uniqueness of
// tool and parameter names.
func (p *Project) Validate() error {
	if issues := checkProject(p); len(issues) > 0 {
		return &ValidationError{Subject: "project", Issues: issues}
	}
	return nil
}

// Validate checks a single tool definition.
func (t Tool) Validate() error {
	if issues := checkTool(t, ""); len(issues) > 0 {
		return &ValidationError{Subject: "tool", Issues: issues}
	}
	return nil
}

// ValidatePackageName checks a registry-style package name.
func ValidatePackageName(name string) error {
	if !packageNamePattern.MatchString(name) {
		return fmt.Errorf("invalid package name %q: must match pattern [a-z0-9][a-z0-9-]*", name)
	}
	return nil
}

func checkProject(p *Project) []ValidationIssue {
	var issues []ValidationIssue

	if !packageNamePattern.MatchString(p.PackageName) {
		issues = append(issues, ValidationIssue{
			Path:    "/package_name",
			Keyword: "pattern",
			Message: fmt.Sprintf("%q does not match pattern [a-z0-9][a-z0-9-]*", p.PackageName),
		})
	}

	switch p.Hosting {
	case "", HostingLocal, HostingRemote:
	default:
		issues = append(issues, ValidationIssue{
			Path:    "/hosting",
			Keyword: "enum",
			Message: fmt.Sprintf("hosting must be %q or %q, got %q", HostingLocal, HostingRemote, p.Hosting),
		})
	}

	seen := make(map[string]int)
	for i, t := range p.Tools {
		prefix := fmt.Sprintf("/tools/%d", i)
		issues = append(issues, checkTool(t, prefix)...)
		if first, dup := seen[t.Name]; dup {
			issues = append(issues, ValidationIssue{
				Path:    prefix + "/name",
				Keyword: keywordUniqueTool,
				Message: fmt.Sprintf("tool %q already declared at /tools/%d", t.Name, first),
			})
			continue
		}
		seen[t.Name] = i
	}

	for i, e := range p.EnvVars {
		if !identifierPattern.MatchString(e.Name) {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("/env_vars/%d/name", i),
				Keyword: "pattern",
				Message: fmt.Sprintf("%q is not a valid environment variable name", e.Name),
			})
		}
	}

	return issues
}

func checkTool(t Tool, prefix string) []ValidationIssue {
	var issues []ValidationIssue
	if !identifierPattern.MatchString(t.Name) {
		issues = append(issues, ValidationIssue{
			Path:    prefix + "/name",
			Keyword: "pattern",
			Message: fmt.Sprintf("%q is not a valid identifier", t.Name),
		})
	} else if pythonKeywords[t.Name] || reservedToolNames[t.Name] {
		issues = append(issues, ValidationIssue{
			Path:    prefix + "/name",
			Keyword: keywordReserved,
			Message: fmt.Sprintf("tool name %q is reserved", t.Name),
		})
	}

	seen := make(map[string]bool)
	for i, param := range t.Parameters {
		path := fmt.Sprintf("%s/parameters/%d/name", prefix, i)
		if !identifierPattern.MatchString(param.Name) {
			issues = append(issues, ValidationIssue{
				Path:    path,
				Keyword: "pattern",
				Message: fmt.Sprintf("%q is not a valid identifier", param.Name),
			})
		} else if pythonKeywords[param.Name] || reservedParamNames[param.Name] {
			issues = append(issues, ValidationIssue{
				Path:    path,
				Keyword: keywordReserved,
				Message: fmt.Sprintf("parameter name %q is reserved", param.Name),
			})
		}
		if seen[param.Name] {
			issues = append(issues, ValidationIssue{
				Path:    path,
				Keyword: keywordUniqueParam,
				Message: fmt.Sprintf("parameter %q declared twice in tool %q", param.Name, t.Name),
			})
		}
		seen[param.Name] = true
	}
	return issues
}
