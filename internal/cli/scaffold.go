package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcpcreator-labs/mcp-creator/internal/config"
	"github.com/mcpcreator-labs/mcp-creator/internal/mutate"
	"github.com/mcpcreator-labs/mcp-creator/internal/profile"
	"github.com/mcpcreator-labs/mcp-creator/internal/scaffold"
	"github.com/mcpcreator-labs/mcp-creator/internal/toolspec"
)

var (
	scaffoldOutputDir string
	scaffoldDryRun    bool

	addToolGated          bool
	addToolAllowDuplicate bool
)

func init() {
	scaffoldCmd.Flags().StringVarP(&scaffoldOutputDir, "output-dir", "o", "", "Parent directory for the project (default: output_dir setting, then the profile default)")
	scaffoldCmd.Flags().BoolVar(&scaffoldDryRun, "dry-run", false, "List the files that would be generated without writing them")
	rootCmd.AddCommand(scaffoldCmd)

	addToolCmd.Flags().BoolVar(&addToolGated, "gated", false, "Gate the tool behind the license check (licensed projects only)")
	addToolCmd.Flags().BoolVar(&addToolAllowDuplicate, "allow-duplicate", false, "Add the tool even if one with the same name exists")
	rootCmd.AddCommand(addToolCmd)
}

// ─── scaffold ─────────────────────────────────────────────────────

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <project-file>",
	Short: "Generate a new MCP server project",
	Long: `Generate a complete, runnable Python MCP server from a project definition.

The project file is JSON or YAML:

  package_name: weather-mcp
  description: Weather data for assistants
  tools:
    - name: get_forecast
      description: Get the forecast for a city
      parameters:
        - {name: city, type: string}
        - {name: days, type: integer, required: false, default: 5}

Examples:
  mcp-creator scaffold weather.yaml
  mcp-creator scaffold weather.json -o ~/projects`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := toolspec.ParseProjectFile(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()

		if scaffoldDryRun {
			tree, err := scaffold.Build(p)
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(w, tree.Paths())
			}
			for _, path := range tree.Paths() {
				fmt.Fprintf(w, "  %s/%s\n", p.PackageName, path)
			}
			return nil
		}

		store, err := profile.DefaultStore()
		if err != nil {
			return err
		}
		outDir, err := store.OutputDir(scaffoldOutputDir, config.OutputDir())
		if err != nil {
			return err
		}
		result, err := scaffold.Generate(p, outDir)
		if err != nil {
			return err
		}
		logger.Info().Str("package", p.PackageName).Str("path", result.ProjectDir).Int("files", result.FilesCreated()).Msg("project scaffolded")

		if outputJSON {
			return printJSON(w, result)
		}
		fmt.Fprintf(w, "Created %s (%d files)\n", result.ProjectDir, result.FilesCreated())
		for _, path := range result.FileList {
			fmt.Fprintf(w, "  %s\n", path)
		}
		printWarnings(w, result.Warnings)
		printSteps(w, result.NextSteps)
		return nil
	},
}

// ─── add-tool ─────────────────────────────────────────────────────

var addToolCmd = &cobra.Command{
	Use:   "add-tool <project-dir> <tool-file>",
	Short: "Add a tool to an existing generated project",
	Long: `Add a tool to a project created by scaffold. The tool file is a JSON or
YAML tool definition. The tool module, service stub and test are written and
the tool is registered in server.py.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[1])
		if err != nil {
			return err
		}
		tool, err := toolspec.ParseTool(data)
		if err != nil {
			return fmt.Errorf("%s: %w", args[1], err)
		}

		result := mutate.AddTool(args[0], *tool, mutate.Options{
			Gated:          addToolGated,
			AllowDuplicate: addToolAllowDuplicate,
		})
		logger.Info().Str("tool", tool.Name).Bool("success", result.Success).Bool("server_updated", result.ServerUpdated).Msg("add tool")

		w := cmd.OutOrStdout()
		if outputJSON {
			if err := printJSON(w, result); err != nil {
				return err
			}
		} else if result.Success {
			fmt.Fprintf(w, "Added tool %s to %s\n", result.ToolName, result.ModuleName)
			for _, f := range result.FilesCreated {
				fmt.Fprintf(w, "  %s\n", f)
			}
			if !result.ServerUpdated {
				printWarnings(w, []string{"server.py was not updated; register the tool by hand"})
			}
			printSteps(w, result.NextSteps)
		}
		if !result.Success {
			return failed("add-tool", result.Error)
		}
		return nil
	},
}
