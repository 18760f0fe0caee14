package mutate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcpcreator-labs/mcp-creator/internal/codegen"
	"github.com/mcpcreator-labs/mcp-creator/internal/scaffold"
	"github.com/mcpcreator-labs/mcp-creator/internal/toolspec"
)

// generate scaffolds a project with the given tools and returns its root.
func generate(t *testing.T, p *toolspec.Project) string {
	t.Helper()
	res, err := scaffold.Generate(p, t.TempDir())
	if err != nil {
		t.Fatalf("scaffold.Generate() error: %v", err)
	}
	return res.ProjectDir
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func forecastTool() toolspec.Tool {
	return toolspec.Tool{
		Name:        "get_forecast",
		Description: "Get weather forecast",
		Parameters: []toolspec.Parameter{
			{Name: "city", Type: "string", Description: "City"},
			{Name: "days", Type: "integer", Required: toolspec.BoolPtr(false), Default: 5},
		},
		Returns: "Forecast JSON",
	}
}

func TestAddTool_AThenB(t *testing.T) {
	root := generate(t, &toolspec.Project{
		PackageName: "test-add-mcp",
		Tools:       []toolspec.Tool{{Name: "alpha", Description: "First"}},
	})

	res := AddTool(root, toolspec.Tool{Name: "beta", Description: "Second"}, Options{})
	if !res.Success {
		t.Fatalf("AddTool() failed: %s", res.Error)
	}
	if !res.ServerUpdated {
		t.Fatal("ServerUpdated = false, want true")
	}
	if res.ToolName != "beta" || res.ModuleName != "test_add_mcp" {
		t.Errorf("ToolName = %q, ModuleName = %q", res.ToolName, res.ModuleName)
	}

	wantFiles := []string{
		"src/test_add_mcp/services/beta_service.py",
		"src/test_add_mcp/tools/beta.py",
		"tests/test_beta.py",
	}
	if strings.Join(res.FilesCreated, ",") != strings.Join(wantFiles, ",") {
		t.Errorf("FilesCreated = %v, want %v", res.FilesCreated, wantFiles)
	}
	for _, f := range wantFiles {
		readFile(t, root, f)
	}

	server := readFile(t, root, "src/test_add_mcp/server.py")
	for _, s := range codegen.Sentinels {
		if strings.Count(server, s+"\n") != 1 {
			t.Errorf("sentinel %q should appear exactly once", s)
		}
	}

	// Imports: alpha, then beta, both above the close marker.
	importA := strings.Index(server, codegen.RenderImportLine("test_add_mcp", "alpha"))
	importB := strings.Index(server, codegen.RenderImportLine("test_add_mcp", "beta"))
	importEnd := strings.Index(server, codegen.SentinelImportsEnd)
	if importA < 0 || importB < 0 || !(importA < importB && importB < importEnd) {
		t.Errorf("import positions: alpha=%d beta=%d end=%d", importA, importB, importEnd)
	}

	// Registrations: beta directly after the open marker, ahead of alpha.
	toolsStart := strings.Index(server, codegen.SentinelToolsStart)
	toolsEnd := strings.Index(server, codegen.SentinelToolsEnd)
	regA := strings.Index(server, "def alpha(")
	regB := strings.Index(server, "def beta(")
	if !(toolsStart < regB && regB < regA && regA < toolsEnd) {
		t.Errorf("registration positions: start=%d beta=%d alpha=%d end=%d", toolsStart, regB, regA, toolsEnd)
	}
	if !strings.Contains(server, codegen.SentinelToolsStart+"\n"+codegen.RenderRegistration(toolspec.Tool{Name: "beta", Description: "Second"}, false)) {
		t.Error("registration should follow the open marker immediately")
	}

	// The aggregate test keeps its original expectation.
	aggregate := readFile(t, root, "tests/test_server.py")
	if !strings.Contains(aggregate, `expected = {"alpha"}`) || strings.Contains(aggregate, "beta") {
		t.Errorf("aggregate test changed:\n%s", aggregate)
	}
}

func TestAddTool_MatchesScaffold(t *testing.T) {
	root := generate(t, &toolspec.Project{
		PackageName: "test-add-mcp",
		Tools:       []toolspec.Tool{{Name: "get_weather"}},
	})

	tool := forecastTool()
	res := AddTool(root, tool, Options{})
	if !res.Success {
		t.Fatalf("AddTool() failed: %s", res.Error)
	}

	for path, want := range scaffold.ToolFiles("test_add_mcp", tool) {
		if got := readFile(t, root, path); got != want {
			t.Errorf("%s differs from scaffold output", path)
		}
	}

	server := readFile(t, root, "src/test_add_mcp/server.py")
	if !strings.Contains(server, "def get_forecast(city: str, days: int | None = 5) -> str:") {
		t.Errorf("server missing forecast registration:\n%s", server)
	}
	if !strings.HasPrefix(res.NextSteps[0], "Tool 'get_forecast' added") {
		t.Errorf("NextSteps = %v", res.NextSteps)
	}
}

func TestAddTool_MissingSentinel(t *testing.T) {
	root := generate(t, &toolspec.Project{
		PackageName: "broken-mcp",
		Tools:       []toolspec.Tool{{Name: "ping"}},
	})

	serverPath := filepath.Join(root, "src", "broken_mcp", "server.py")
	original := readFile(t, root, "src/broken_mcp/server.py")
	edited := strings.Replace(original, codegen.SentinelToolsStart+"\n", "", 1)
	if err := os.WriteFile(serverPath, []byte(edited), 0644); err != nil {
		t.Fatal(err)
	}

	res := AddTool(root, forecastTool(), Options{})
	if !res.Success {
		t.Fatalf("AddTool() failed: %s", res.Error)
	}
	if res.ServerUpdated {
		t.Error("ServerUpdated = true, want false")
	}
	if len(res.FilesCreated) != 3 {
		t.Errorf("FilesCreated = %v", res.FilesCreated)
	}
	readFile(t, root, "src/broken_mcp/tools/get_forecast.py")

	if got := readFile(t, root, "src/broken_mcp/server.py"); got != edited {
		t.Error("entrypoint should be left untouched when a sentinel is missing")
	}
	last := res.NextSteps[len(res.NextSteps)-1]
	if !strings.Contains(last, "Could not update") {
		t.Errorf("expected manual-update hint, got %q", last)
	}
}

func TestAddTool_MissingEntrypoint(t *testing.T) {
	root := generate(t, &toolspec.Project{PackageName: "no-entry-mcp"})
	if err := os.Remove(filepath.Join(root, "src", "no_entry_mcp", "server.py")); err != nil {
		t.Fatal(err)
	}

	res := AddTool(root, toolspec.Tool{Name: "ping"}, Options{})
	if !res.Success || res.ServerUpdated {
		t.Errorf("Success = %v, ServerUpdated = %v, want true/false", res.Success, res.ServerUpdated)
	}
}

func TestAddTool_Preconditions(t *testing.T) {
	t.Run("no src", func(t *testing.T) {
		root := t.TempDir()
		res := AddTool(root, toolspec.Tool{Name: "ping"}, Options{})
		if res.Success || !errors.Is(res.Err, ErrNotGenerated) {
			t.Errorf("res = %+v, want ErrNotGenerated", res)
		}
		assertEmptyDir(t, root)
	})

	t.Run("only hidden modules", func(t *testing.T) {
		root := t.TempDir()
		for _, d := range []string{".cache", "__pycache__"} {
			if err := os.MkdirAll(filepath.Join(root, "src", d), 0755); err != nil {
				t.Fatal(err)
			}
		}
		res := AddTool(root, toolspec.Tool{Name: "ping"}, Options{})
		if !errors.Is(res.Err, ErrNotGenerated) {
			t.Errorf("err = %v, want ErrNotGenerated", res.Err)
		}
		if _, err := os.Stat(filepath.Join(root, "tests")); !os.IsNotExist(err) {
			t.Error("no files should be written")
		}
	})

	t.Run("ambiguous", func(t *testing.T) {
		root := t.TempDir()
		for _, d := range []string{"one", "two"} {
			if err := os.MkdirAll(filepath.Join(root, "src", d), 0755); err != nil {
				t.Fatal(err)
			}
		}
		res := AddTool(root, toolspec.Tool{Name: "ping"}, Options{})
		if !errors.Is(res.Err, ErrAmbiguousModule) {
			t.Errorf("err = %v, want ErrAmbiguousModule", res.Err)
		}
		if _, err := os.Stat(filepath.Join(root, "tests")); !os.IsNotExist(err) {
			t.Error("no files should be written")
		}
	})

	t.Run("invalid tool", func(t *testing.T) {
		res := AddTool(t.TempDir(), toolspec.Tool{Name: "bad-name"}, Options{})
		if res.Success {
			t.Error("expected failure for invalid tool name")
		}
		var ve *toolspec.ValidationError
		if !errors.As(res.Err, &ve) {
			t.Errorf("err = %v, want *toolspec.ValidationError", res.Err)
		}
	})
}

func TestAddTool_Duplicate(t *testing.T) {
	root := generate(t, &toolspec.Project{
		PackageName: "dup-mcp",
		Tools:       []toolspec.Tool{{Name: "ping"}},
	})
	before := readFile(t, root, "src/dup_mcp/server.py")

	res := AddTool(root, toolspec.Tool{Name: "ping"}, Options{})
	if res.Success || !errors.Is(res.Err, toolspec.ErrDuplicateTool) {
		t.Errorf("res = %+v, want ErrDuplicateTool", res)
	}
	if readFile(t, root, "src/dup_mcp/server.py") != before {
		t.Error("entrypoint changed on rejected duplicate")
	}

	res = AddTool(root, toolspec.Tool{Name: "ping"}, Options{AllowDuplicate: true})
	if !res.Success || !res.ServerUpdated {
		t.Fatalf("AllowDuplicate: res = %+v", res)
	}
	server := readFile(t, root, "src/dup_mcp/server.py")
	if n := strings.Count(server, "def ping("); n != 2 {
		t.Errorf("ping registered %d times, want 2", n)
	}
}

func TestAddTool_ReservedNameLeavesTreeUntouched(t *testing.T) {
	root := generate(t, &toolspec.Project{
		PackageName: "acme-mcp",
		Tools:       []toolspec.Tool{{Name: "ping"}},
	})
	before := map[string]string{
		"tests/test_server.py":           readFile(t, root, "tests/test_server.py"),
		"src/acme_mcp/tools/__init__.py": readFile(t, root, "src/acme_mcp/tools/__init__.py"),
		"src/acme_mcp/server.py":         readFile(t, root, "src/acme_mcp/server.py"),
	}

	for _, tool := range []toolspec.Tool{
		{Name: "server"},
		{Name: "__init__"},
		{Name: "class", Parameters: []toolspec.Parameter{{Name: "self"}, {Name: "from"}}},
	} {
		res := AddTool(root, tool, Options{AllowDuplicate: true})
		if res.Success || !errors.Is(res.Err, toolspec.ErrReservedName) {
			t.Errorf("AddTool(%q) = %+v, want ErrReservedName", tool.Name, res)
		}
	}

	for rel, want := range before {
		if got := readFile(t, root, rel); got != want {
			t.Errorf("%s was modified", rel)
		}
	}
	if !strings.Contains(before["tests/test_server.py"], "def test_tools_registered():") {
		t.Error("aggregate test missing from the generated project")
	}
	if _, err := os.Stat(filepath.Join(root, "src", "acme_mcp", "tools", "class.py")); !os.IsNotExist(err) {
		t.Error("tools/class.py should not have been written")
	}
}

func TestAddTool_Gated(t *testing.T) {
	t.Run("licensed project", func(t *testing.T) {
		root := generate(t, &toolspec.Project{
			PackageName: "paid-mcp",
			Licensed:    true,
			GatedTools:  []string{"free_tool"},
			Tools:       []toolspec.Tool{{Name: "free_tool"}},
		})
		res := AddTool(root, toolspec.Tool{Name: "pro_tool"}, Options{Gated: true})
		if !res.ServerUpdated {
			t.Fatalf("res = %+v", res)
		}
		server := readFile(t, root, "src/paid_mcp/server.py")
		if !strings.Contains(server, `_require_license("pro_tool")`) {
			t.Error("pro_tool should be gated")
		}
	})

	t.Run("unlicensed project ignores gate", func(t *testing.T) {
		root := generate(t, &toolspec.Project{
			PackageName: "free-mcp",
			Tools:       []toolspec.Tool{{Name: "free_tool"}},
		})
		res := AddTool(root, toolspec.Tool{Name: "pro_tool"}, Options{Gated: true})
		if !res.ServerUpdated {
			t.Fatalf("res = %+v", res)
		}
		server := readFile(t, root, "src/free_mcp/server.py")
		if strings.Contains(server, "_require_license") {
			t.Error("gate emitted without a license helper")
		}
	})
}

func TestDiscoverModule(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"my_mod", "_private", ".hidden"} {
		if err := os.MkdirAll(filepath.Join(root, "src", d), 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "src", "stray.py"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := DiscoverModule(root)
	if err != nil {
		t.Fatalf("DiscoverModule() error: %v", err)
	}
	if got != "my_mod" {
		t.Errorf("DiscoverModule() = %q, want %q", got, "my_mod")
	}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected %s to be empty, found %d entries", dir, len(entries))
	}
}
