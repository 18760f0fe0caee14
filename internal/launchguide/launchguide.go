package launchguide

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/mcpcreator-labs/mcp-creator/internal/codegen"
	"github.com/mcpcreator-labs/mcp-creator/internal/filewriter"
)

// FileName is the listing document written into the project root.
const FileName = "LAUNCHGUIDE.md"

// Marketplace listing limits.
const (
	MaxTaglineLen = 100
	MaxFeatures   = 30
	MaxTags       = 30
)

// DefaultSetupRequirements is used when the guide leaves setup empty.
const DefaultSetupRequirements = "No environment variables required."

//go:embed LAUNCHGUIDE.md.tmpl
var guideSource string

var guideTemplate = template.Must(template.New(FileName).Parse(guideSource))

// Guide is the listing content. Features holds one "- " bullet per line;
// Tags is comma-separated.
type Guide struct {
	PackageName       string `json:"package_name"`
	Tagline           string `json:"tagline"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	Features          string `json:"features"`
	ToolsSummary      string `json:"tools_summary"`
	Tags              string `json:"tags"`
	SetupRequirements string `json:"setup_requirements,omitempty"`
	DocsURL           string `json:"docs_url,omitempty"`
}

// Result is the outcome of Generate.
type Result struct {
	Success   bool     `json:"success"`
	File      string   `json:"file,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
	Error     string   `json:"error,omitempty"`
	NextSteps []string `json:"next_steps"`
}

// Render fills in defaults and returns the document text.
func Render(g Guide) string {
	if strings.TrimSpace(g.SetupRequirements) == "" {
		g.SetupRequirements = DefaultSetupRequirements
	}
	if g.DocsURL == "" {
		g.DocsURL = fmt.Sprintf("https://pypi.org/project/%s/", g.PackageName)
	}
	var buf bytes.Buffer
	if err := guideTemplate.Execute(&buf, g); err != nil {
		panic(fmt.Sprintf("launchguide: executing template: %v", err))
	}
	return buf.String()
}

// Check returns a warning for every marketplace limit the guide exceeds.
func Check(g Guide) []string {
	var warnings []string
	if n := len([]rune(g.Tagline)); n > MaxTaglineLen {
		warnings = append(warnings, fmt.Sprintf("Tagline is %d characters; the marketplace allows %d.", n, MaxTaglineLen))
	}
	if n := countFeatures(g.Features); n > MaxFeatures {
		warnings = append(warnings, fmt.Sprintf("%d features listed; the marketplace allows %d.", n, MaxFeatures))
	}
	if n := countTags(g.Tags); n > MaxTags {
		warnings = append(warnings, fmt.Sprintf("%d tags listed; the marketplace allows %d.", n, MaxTags))
	}
	return warnings
}

// Generate writes LAUNCHGUIDE.md into projectDir, replacing any previous
// copy. Limit violations are reported as warnings, not errors.
func Generate(projectDir string, g Guide) *Result {
	if strings.TrimSpace(g.PackageName) == "" {
		return &Result{Error: "package_name is required", NextSteps: []string{"Pass the PyPI package name of the project."}}
	}
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return &Result{Error: err.Error(), NextSteps: []string{"Check the project directory path."}}
	}

	written, err := filewriter.WriteFiles(dir, map[string]string{FileName: Render(g)})
	if err != nil {
		return &Result{
			Error:     fmt.Sprintf("writing %s: %v", FileName, err),
			NextSteps: []string{"Make sure the project directory is writable."},
		}
	}

	res := &Result{
		Success:  true,
		File:     written[0],
		Warnings: Check(g),
		NextSteps: []string{
			FileName + " created!",
			"Review it and make any final edits.",
			"Submit to MCP Marketplace at " + codegen.MarketplaceURL + " with this file.",
		},
	}
	if len(res.Warnings) > 0 {
		res.NextSteps = append(res.NextSteps, "Shorten the sections flagged in warnings before submitting.")
	}
	return res
}

func countFeatures(features string) int {
	n := 0
	for _, line := range strings.Split(features, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func countTags(tags string) int {
	n := 0
	for _, tag := range strings.Split(tags, ",") {
		if strings.TrimSpace(tag) != "" {
			n++
		}
	}
	return n
}
