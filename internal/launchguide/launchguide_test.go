package launchguide

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func weatherGuide() Guide {
	return Guide{
		PackageName:  "weather-mcp",
		Tagline:      "Forecasts for your assistant",
		Description:  "Fetches forecasts.",
		Category:     "Data & Analytics",
		Features:     "- Daily forecasts\n- City lookup",
		ToolsSummary: "get_forecast: forecast for a city",
		Tags:         "weather, forecast",
	}
}

func TestRender_Defaults(t *testing.T) {
	out := Render(weatherGuide())

	if !strings.HasPrefix(out, "# weather-mcp\n\n## Tagline\nForecasts for your assistant\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	assertContains(t, out, "## Setup Requirements\n"+DefaultSetupRequirements+"\n")
	assertContains(t, out, "## Getting Started\nget_forecast: forecast for a city\n")
	assertContains(t, out, "## Documentation URL\nhttps://pypi.org/project/weather-mcp/\n")
}

func TestRender_CustomDocsURL(t *testing.T) {
	g := weatherGuide()
	g.DocsURL = "https://github.com/octocat/weather-mcp"
	g.SetupRequirements = "WEATHER_API_KEY"
	out := Render(g)
	assertContains(t, out, "## Documentation URL\nhttps://github.com/octocat/weather-mcp\n")
	assertContains(t, out, "## Setup Requirements\nWEATHER_API_KEY\n")
}

func TestCheck(t *testing.T) {
	many := func(n int, sep, item string) string {
		parts := make([]string, n)
		for i := range parts {
			parts[i] = item
		}
		return strings.Join(parts, sep)
	}

	tests := []struct {
		name   string
		mutate func(g *Guide)
		want   int
	}{
		{"within limits", func(g *Guide) {}, 0},
		{"tagline at limit", func(g *Guide) { g.Tagline = strings.Repeat("x", MaxTaglineLen) }, 0},
		{"long tagline", func(g *Guide) { g.Tagline = strings.Repeat("x", MaxTaglineLen+1) }, 1},
		{"too many features", func(g *Guide) { g.Features = many(MaxFeatures+1, "\n", "- f") }, 1},
		{"blank feature lines ignored", func(g *Guide) { g.Features = many(MaxFeatures, "\n\n", "- f") }, 0},
		{"too many tags", func(g *Guide) { g.Tags = many(MaxTags+1, ",", "t") }, 1},
		{"all three", func(g *Guide) {
			g.Tagline = strings.Repeat("x", 101)
			g.Features = many(31, "\n", "- f")
			g.Tags = many(31, ", ", "t")
		}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := weatherGuide()
			tt.mutate(&g)
			if got := Check(g); len(got) != tt.want {
				t.Errorf("Check() = %v, want %d warnings", got, tt.want)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	g := weatherGuide()
	g.Tags = strings.Repeat("t,", 40)

	res := Generate(dir, g)
	if !res.Success {
		t.Fatalf("res = %+v", res)
	}
	if res.File != filepath.Join(dir, FileName) {
		t.Errorf("File = %q", res.File)
	}
	data, err := os.ReadFile(res.File)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != Render(g) {
		t.Error("written file differs from Render()")
	}
	if len(res.Warnings) != 1 {
		t.Errorf("Warnings = %v", res.Warnings)
	}
	assertContains(t, strings.Join(res.NextSteps, "\n"), "Submit to MCP Marketplace at https://mcp-marketplace.io")
}

func TestGenerate_RequiresPackageName(t *testing.T) {
	dir := t.TempDir()
	res := Generate(dir, Guide{})
	if res.Success || res.Error == "" {
		t.Errorf("res = %+v", res)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); !os.IsNotExist(err) {
		t.Error("nothing should be written")
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected content to contain %q", substr)
	}
}
