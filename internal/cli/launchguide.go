package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpcreator-labs/mcp-creator/internal/launchguide"
	"github.com/mcpcreator-labs/mcp-creator/internal/packaging"
)

var (
	guide         launchguide.Guide
	guideFeatures []string
	guideTools    []string
	guideTags     []string
)

func init() {
	f := launchguideCmd.Flags()
	f.StringVar(&guide.PackageName, "package", "", "PyPI package name (default: read from pyproject.toml)")
	f.StringVar(&guide.Tagline, "tagline", "", "One-liner, max 100 characters")
	f.StringVar(&guide.Description, "description", "", "What the server does and who it is for")
	f.StringVar(&guide.Category, "category", "Developer Tools", "Marketplace category")
	f.StringArrayVar(&guideFeatures, "feature", nil, "Feature bullet (repeatable, max 30)")
	f.StringArrayVar(&guideTools, "tool", nil, "Getting Started line, e.g. \"get_forecast: forecast for a city\" (repeatable)")
	f.StringSliceVar(&guideTags, "tags", nil, "Comma-separated tags, max 30")
	f.StringVar(&guide.SetupRequirements, "setup", "", "Environment variables or setup steps")
	f.StringVar(&guide.DocsURL, "docs-url", "", "Documentation URL (default: the PyPI project page)")
	_ = launchguideCmd.MarkFlagRequired("tagline")
	rootCmd.AddCommand(launchguideCmd)
}

var launchguideCmd = &cobra.Command{
	Use:   "launchguide [project-dir]",
	Short: "Write LAUNCHGUIDE.md for MCP Marketplace submission",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := projectDirArg(args)
		g := guide
		if g.PackageName == "" {
			name, err := packaging.ReadPackageName(dir)
			if err != nil {
				return fmt.Errorf("--package not given and %w", err)
			}
			g.PackageName = name
		}
		g.Features = bulletList(guideFeatures)
		g.ToolsSummary = strings.Join(guideTools, "\n")
		g.Tags = strings.Join(guideTags, ", ")

		res := launchguide.Generate(dir, g)
		w := cmd.OutOrStdout()
		if outputJSON {
			if err := printJSON(w, res); err != nil {
				return err
			}
		} else {
			if res.Success {
				fmt.Fprintf(w, "  [ OK ] %s\n", res.File)
			}
			printWarnings(w, res.Warnings)
			printSteps(w, res.NextSteps)
		}
		if !res.Success {
			return failed("launchguide", res.Error)
		}
		return nil
	},
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if !strings.HasPrefix(item, "- ") {
			item = "- " + item
		}
		lines = append(lines, item)
	}
	return strings.Join(lines, "\n")
}
