package toolspec

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestParseProjectFile_JSON(t *testing.T) {
	p, err := ParseProjectFile(testPath("valid-project.json"))
	if err != nil {
		t.Fatalf("ParseProjectFile error: %v", err)
	}
	if p.PackageName != "my-weather-mcp" {
		t.Errorf("PackageName = %q", p.PackageName)
	}
	if p.ModuleName() != "my_weather_mcp" {
		t.Errorf("ModuleName() = %q", p.ModuleName())
	}
	if len(p.Tools) != 2 {
		t.Fatalf("len(Tools) = %d, want 2", len(p.Tools))
	}
	if !p.Remote() {
		t.Error("expected remote hosting")
	}

	days := p.Tools[0].Parameters[1]
	if days.IsRequired() {
		t.Error("days should be optional")
	}
	if n, ok := days.Default.(json.Number); !ok || n.String() != "5" {
		t.Errorf("days default = %#v, want json.Number(5)", days.Default)
	}
	if !p.Tools[0].Parameters[0].IsRequired() {
		t.Error("city should default to required")
	}
}

func TestParseProjectFile_YAML(t *testing.T) {
	p, err := ParseProjectFile(testPath("valid-project.yaml"))
	if err != nil {
		t.Fatalf("ParseProjectFile error: %v", err)
	}
	if p.PackageName != "acme-mcp" {
		t.Errorf("PackageName = %q", p.PackageName)
	}
	if p.Remote() {
		t.Error("hosting should default to local")
	}
	limit := p.Tools[1].Parameters[1]
	if limit.Default != 10 {
		t.Errorf("limit default = %#v, want 10", limit.Default)
	}
}

func TestValidateFile_Invalid(t *testing.T) {
	tests := []struct {
		file    string
		keyword string
	}{
		{"invalid-missing-name.json", "required"},
		{"invalid-bad-package-name.json", "pattern"},
		{"invalid-bad-hosting.yaml", "enum"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile error: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid")
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Keyword == tt.keyword {
					found = true
				}
				if issue.Message == "" {
					t.Errorf("issue at %q has empty message", issue.Path)
				}
			}
			if !found {
				t.Errorf("no issue with keyword %q in %v", tt.keyword, result.Issues)
			}
		})
	}
}

func TestParseProject_MissingKeyIsValidationError(t *testing.T) {
	_, err := ParseProjectFile(testPath("invalid-missing-name.json"))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if ve.Subject != "project" {
		t.Errorf("Subject = %q", ve.Subject)
	}
}

func TestParseProject_DuplicateTool(t *testing.T) {
	result, err := ValidateFile(testPath("invalid-duplicate-tool.json"))
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("schema alone should accept duplicates, got %v", result.Issues)
	}

	_, err = ParseProjectFile(testPath("invalid-duplicate-tool.json"))
	if !errors.Is(err, ErrDuplicateTool) {
		t.Fatalf("expected ErrDuplicateTool, got %v", err)
	}
}

func TestValidateFile_NotYAML(t *testing.T) {
	if _, err := ValidateFile(testPath("invalid-not-yaml.yaml")); err == nil {
		t.Fatal("expected error for unparseable YAML")
	}
}

func TestValidateFile_NotFound(t *testing.T) {
	if _, err := ValidateFile(testPath("nonexistent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseTool(t *testing.T) {
	tool, err := ParseTool([]byte(`{"name":"get_forecast","parameters":[{"name":"city"}]}`))
	if err != nil {
		t.Fatalf("ParseTool error: %v", err)
	}
	if tool.Summary() != "get_forecast tool" {
		t.Errorf("Summary() = %q", tool.Summary())
	}
	if tool.ReturnsText() != "Result as JSON string" {
		t.Errorf("ReturnsText() = %q", tool.ReturnsText())
	}

	_, err = ParseTool([]byte(`{"description":"nameless"}`))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	_, err = ParseTool([]byte(`{"name":"bad-name"}`))
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError for hyphenated name, got %v", err)
	}
}

func TestParseTools(t *testing.T) {
	tools, err := ParseTools([]byte(`[{"name":"a"},{"name":"b","parameters":[{"name":"x","type":"int"}]}]`))
	if err != nil {
		t.Fatalf("ParseTools error: %v", err)
	}
	if len(tools) != 2 || tools[1].Parameters[0].Name != "x" {
		t.Errorf("unexpected tools: %+v", tools)
	}

	if _, err := ParseTools([]byte(`[{"name":"a"},{}]`)); err == nil {
		t.Error("expected error for tool without name")
	}
}

func TestOrderedParameters(t *testing.T) {
	tool := Tool{
		Name: "t",
		Parameters: []Parameter{
			{Name: "a", Required: BoolPtr(false)},
			{Name: "b"},
			{Name: "c", Required: BoolPtr(false)},
			{Name: "d", Required: BoolPtr(true)},
		},
	}
	var got []string
	for _, p := range tool.OrderedParameters() {
		got = append(got, p.Name)
	}
	want := []string{"b", "d", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("OrderedParameters() = %v, want %v", got, want)
		}
	}
}

func TestIsGated(t *testing.T) {
	p := &Project{
		PackageName: "x",
		Tools:       []Tool{{Name: "free_tool"}, {Name: "pro_tool"}},
	}
	if p.IsGated("pro_tool") {
		t.Error("unlicensed project gates nothing")
	}

	p.Licensed = true
	if !p.IsGated("free_tool") || !p.IsGated("pro_tool") {
		t.Error("empty gated list gates every tool")
	}

	p.GatedTools = []string{"pro_tool", "ghost"}
	if p.IsGated("free_tool") {
		t.Error("free_tool should not be gated")
	}
	if !p.IsGated("pro_tool") {
		t.Error("pro_tool should be gated")
	}
	if unknown := p.UnknownGatedTools(); len(unknown) != 1 || unknown[0] != "ghost" {
		t.Errorf("UnknownGatedTools() = %v", unknown)
	}
}

func TestProjectValidate(t *testing.T) {
	p := &Project{PackageName: "ok-name", Hosting: "cloud"}
	if err := p.Validate(); err == nil {
		t.Error("expected error for unknown hosting mode")
	}
	p.Hosting = HostingLocal
	p.EnvVars = []EnvVar{{Name: "9BAD"}}
	if err := p.Validate(); err == nil {
		t.Error("expected error for invalid env var name")
	}
	p.EnvVars = nil
	if err := p.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestToolValidate_ReservedNames(t *testing.T) {
	str := func(name string) Parameter { return Parameter{Name: name, Type: "string"} }

	tests := []struct {
		name    string
		tool    Tool
		wantErr bool
	}{
		{"plain", Tool{Name: "get_forecast", Parameters: []Parameter{str("city")}}, false},
		{"soft keyword is fine", Tool{Name: "match", Parameters: []Parameter{str("type")}}, false},
		{"keyword tool", Tool{Name: "class"}, true},
		{"capitalised keyword tool", Tool{Name: "None"}, true},
		{"aggregate test collision", Tool{Name: "server"}, true},
		{"package init collision", Tool{Name: "__init__"}, true},
		{"shadows server object", Tool{Name: "mcp"}, true},
		{"shadows json import", Tool{Name: "json"}, true},
		{"keyword parameter", Tool{Name: "lookup", Parameters: []Parameter{str("from")}}, true},
		{"self parameter", Tool{Name: "lookup", Parameters: []Parameter{str("self")}}, true},
		{"local variable parameter", Tool{Name: "lookup", Parameters: []Parameter{str("service")}}, true},
		{"gate variable parameter", Tool{Name: "lookup", Parameters: []Parameter{str("err")}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tool.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrReservedName) {
				t.Errorf("err = %v, want ErrReservedName", err)
			}
		})
	}
}

func TestParseTool_ReservedName(t *testing.T) {
	_, err := ParseTool([]byte(`{"name": "class", "parameters": [{"name": "self"}, {"name": "from"}]}`))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(ve.Issues) != 3 {
		t.Errorf("Issues = %v, want 3", ve.Issues)
	}
}

func TestValidatePackageName(t *testing.T) {
	if err := ValidatePackageName("my-weather-mcp"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePackageName("-bad"); err == nil {
		t.Error("expected error for leading hyphen")
	}
}
