package toolspec

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

const (
	schemaBase       = "https://mcp-creator.dev/schema/"
	projectSchemaURL = schemaBase + "project.schema.json"
	toolSchemaURL    = schemaBase + "tool.schema.json"
)

var (
	projectSchema *jsonschema.Schema
	toolSchema    *jsonschema.Schema
	compileOnce   sync.Once
	compileErr    error
	printer       = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a validation pass.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one problem found in a payload.
type ValidationIssue struct {
	Path    string // Instance location, e.g. "/tools/0/name"
	Message string
	Keyword string // Failing schema keyword, or a check name for semantic checks
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError is returned by the Parse functions when a payload is
// malformed.
type ValidationError struct {
	Subject string // "project" or "tool"
	Issues  []ValidationIssue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("invalid %s: %s", e.Subject, strings.Join(msgs, "; "))
}

// Is makes errors.Is(err, ErrDuplicateTool) hold when any issue reports a
// repeated tool name, and errors.Is(err, ErrReservedName) when any issue
// reports a reserved tool or parameter name.
func (e *ValidationError) Is(target error) bool {
	var keyword string
	switch target {
	case ErrDuplicateTool:
		keyword = keywordUniqueTool
	case ErrReservedName:
		keyword = keywordReserved
	default:
		return false
	}
	for _, issue := range e.Issues {
		if issue.Keyword == keyword {
			return true
		}
	}
	return false
}

var (
	// ErrDuplicateTool reports that two tools in one project share a name.
	ErrDuplicateTool = errors.New("duplicate tool name")

	// ErrReservedName reports a tool or parameter name that would break
	// the generated project.
	ErrReservedName = errors.New("reserved name")
)

// compileSchemas compiles the embedded project and tool schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for _, name := range []string{"tool.schema.json", "project.schema.json"} {
			raw, err := schemaFS.ReadFile("schema/" + name)
			if err != nil {
				compileErr = fmt.Errorf("reading schema %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = fmt.Errorf("unmarshaling schema %s: %w", name, err)
				return
			}
			if err := c.AddResource(schemaBase+name, doc); err != nil {
				compileErr = fmt.Errorf("adding schema resource %s: %w", name, err)
				return
			}
		}

		if projectSchema, compileErr = c.Compile(projectSchemaURL); compileErr != nil {
			compileErr = fmt.Errorf("compiling project schema: %w", compileErr)
			return
		}
		if toolSchema, compileErr = c.Compile(toolSchemaURL); compileErr != nil {
			compileErr = fmt.Errorf("compiling tool schema: %w", compileErr)
		}
	})
	return compileErr
}

// ValidateProject validates a JSON or YAML project payload against the
// project schema. The error return is for parse or schema compilation
// failures; validation problems are reported in the result.
func ValidateProject(data []byte) (*ValidationResult, error) {
	if err := compileSchemas(); err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	return validate(projectSchema, data)
}

// ValidateTool validates a single JSON or YAML tool payload.
func ValidateTool(data []byte) (*ValidationResult, error) {
	if err := compileSchemas(); err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	return validate(toolSchema, data)
}

// ValidateFile reads a project file and validates it.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ValidateProject(data)
}

func validate(schema *jsonschema.Schema, data []byte) (*ValidationResult, error) {
	inst, err := toInstance(data)
	if err != nil {
		return nil, err
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}
	return &ValidationResult{Issues: extractIssues(ve)}, nil
}

// toInstance turns a JSON or YAML payload into a value the schema validator
// accepts. YAML goes through a JSON round trip so numbers become json.Number.
func toInstance(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	if isJSON(trimmed) {
		inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(trimmed))
		if err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		return inst, nil
	}

	var raw any
	if err := yaml.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}
	return inst, nil
}

func isJSON(trimmed []byte) bool {
	return trimmed[0] == '{' || trimmed[0] == '['
}

// extractIssues flattens the ValidationError tree into its leaf issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return deduplicateIssues(issues)
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	keyword, msg := "", ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	if keyword == "" || keyword == "$ref" || keyword == "allOf" {
		return
	}

	*issues = append(*issues, ValidationIssue{Path: path, Message: msg, Keyword: keyword})
}

func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var out []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			out = append(out, issue)
		}
	}
	return out
}
