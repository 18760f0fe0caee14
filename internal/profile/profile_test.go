package profile

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "nested", "profile.json"))
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestLoad_Missing(t *testing.T) {
	p, err := newStore(t).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.SetupComplete || len(p.Projects) != 0 || p.Projects == nil {
		t.Errorf("fresh profile = %+v", p)
	}
}

func TestSaveLoad(t *testing.T) {
	s := newStore(t)
	want := &Profile{
		SetupComplete:  true,
		GitHubUsername: "octo",
		Projects:       []Project{{Name: "weather-mcp", PyPIURL: "https://pypi.org/project/weather-mcp/"}},
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.GitHubUsername != "octo" || !got.SetupComplete || len(got.Projects) != 1 {
		t.Errorf("Load() = %+v", got)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(s.Path())
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("permissions = %o, want 600", perm)
		}
	}
}

func TestLoad_Corrupt(t *testing.T) {
	s := newStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path()), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); err == nil {
		t.Error("expected parse error")
	}
}

func TestUpdate(t *testing.T) {
	s := newStore(t)

	p, err := s.Update(Patch{SetupComplete: boolPtr(true), PyPIUsername: strPtr("pyuser")})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if !p.SetupComplete || p.PyPIUsername != "pyuser" {
		t.Errorf("after first update: %+v", p)
	}

	p, err = s.Update(Patch{AddProject: &Project{Name: "a-mcp"}})
	if err != nil {
		t.Fatal(err)
	}
	p, err = s.Update(Patch{AddProject: &Project{Name: "a-mcp", Description: "dup"}})
	if err != nil {
		t.Fatal(err)
	}
	p, err = s.Update(Patch{AddProject: &Project{Name: "b-mcp"}, GitHubUsername: strPtr("octo")})
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(p.ProjectNames(), ","); got != "a-mcp,b-mcp" {
		t.Errorf("projects = %s", got)
	}
	if p.Projects[0].Description != "" {
		t.Error("duplicate add should not replace the existing project")
	}
	if p.PyPIUsername != "pyuser" || p.GitHubUsername != "octo" {
		t.Errorf("untouched fields changed: %+v", p)
	}

	reloaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Projects) != 2 {
		t.Errorf("persisted projects = %d", len(reloaded.Projects))
	}
}

func TestOutputDir(t *testing.T) {
	empty := newStore(t)
	withDefault := newStore(t)
	if _, err := withDefault.Update(Patch{DefaultOutputDir: strPtr("/srv/projects")}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		store      *Store
		arg        string
		configured string
		want       string
	}{
		{"argument wins", withDefault, "/tmp/out", "/etc/configured", "/tmp/out"},
		{"configured before profile", withDefault, "", "/etc/configured", "/etc/configured"},
		{"dot setting falls through", withDefault, "", ".", "/srv/projects"},
		{"empty setting falls through", withDefault, "", "", "/srv/projects"},
		{"working directory last", empty, "", ".", "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.store.OutputDir(tt.arg, tt.configured)
			if err != nil {
				t.Fatalf("OutputDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("OutputDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextSteps(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		prefix  string
	}{
		{"new", Profile{}, "New creator"},
		{"setup only", Profile{SetupComplete: true}, "Setup is complete"},
		{"returning", Profile{SetupComplete: true, Projects: []Project{{Name: "x"}, {Name: "y"}}}, "Returning creator with 2 project(s): x, y."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := NextSteps(&tt.profile)
			if !strings.HasPrefix(steps[0], tt.prefix) {
				t.Errorf("NextSteps()[0] = %q, want prefix %q", steps[0], tt.prefix)
			}
		})
	}
}

func TestDefaultStore(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MCP_CREATOR_HOME", home)
	t.Setenv("MCP_CREATOR_PROFILE", "")

	s, err := DefaultStore()
	if err != nil {
		t.Fatal(err)
	}
	if s.Path() != filepath.Join(home, "profile.json") {
		t.Errorf("Path() = %s", s.Path())
	}
}
