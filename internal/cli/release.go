package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mcpcreator-labs/mcp-creator/internal/config"
	"github.com/mcpcreator-labs/mcp-creator/internal/packaging"
	"github.com/mcpcreator-labs/mcp-creator/internal/pypi"
	"github.com/mcpcreator-labs/mcp-creator/internal/vcs"
)

var (
	publishToken string

	githubRepo        string
	githubDescription string
	githubPrivate     bool
)

func init() {
	rootCmd.AddCommand(checkNameCmd)
	rootCmd.AddCommand(buildCmd)

	publishCmd.Flags().StringVar(&publishToken, "token", "", "PyPI API token (default: $UV_PUBLISH_TOKEN)")
	rootCmd.AddCommand(publishCmd)

	githubCmd.Flags().StringVar(&githubRepo, "repo", "", "Repository name (default: project directory name)")
	githubCmd.Flags().StringVar(&githubDescription, "description", "", "One-line repository description")
	githubCmd.Flags().BoolVar(&githubPrivate, "private", false, "Create a private repository")
	rootCmd.AddCommand(githubCmd)
}

func projectDirArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

// ─── check-name ───────────────────────────────────────────────────

var checkNameCmd = &cobra.Command{
	Use:   "check-name <package-name>",
	Short: "Check whether a package name is free on PyPI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := pypi.New(pypi.WithBaseURL(config.RegistryURL()), pypi.WithLogger(logger))
		res := client.CheckName(cmd.Context(), args[0])

		w := cmd.OutOrStdout()
		if outputJSON {
			return printJSON(w, res)
		}
		switch {
		case res.Available == nil:
			fmt.Fprintf(w, "  [WARN] %s: %s\n", res.Name, res.Error)
		case *res.Available:
			fmt.Fprintf(w, "  [ OK ] %s is available\n", res.Name)
		default:
			fmt.Fprintf(w, "  [FAIL] %s is taken (version %s)\n", res.Name, res.ExistingVersion)
		}
		printSteps(w, res.NextSteps)
		return nil
	},
}

// ─── build / publish ──────────────────────────────────────────────

func printPackagingResult(w io.Writer, what string, res *packaging.Result) error {
	if outputJSON {
		if err := printJSON(w, res); err != nil {
			return err
		}
	} else {
		if res.Error != "" {
			fmt.Fprintf(w, "  [FAIL] %s\n", res.Error)
		}
		for _, f := range res.BuiltFiles {
			fmt.Fprintf(w, "  %s\n", f)
		}
		printSteps(w, res.NextSteps)
	}
	if !res.Success {
		detail := res.Error
		if detail == "" {
			detail = res.Stderr
		}
		return failed(what, detail)
	}
	return nil
}

var buildCmd = &cobra.Command{
	Use:   "build [project-dir]",
	Short: "Build the project with uv build",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := packaging.New(newRunner(cmd), packaging.WithLogger(logger))
		return printPackagingResult(cmd.OutOrStdout(), "build", p.Build(cmd.Context(), projectDirArg(args)))
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish [project-dir]",
	Short: "Upload the built distribution with uv publish",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := packaging.New(newRunner(cmd),
			packaging.WithRegistryURL(config.RegistryURL()),
			packaging.WithLogger(logger),
		)
		return printPackagingResult(cmd.OutOrStdout(), "publish", p.Publish(cmd.Context(), projectDirArg(args), publishToken))
	},
}

// ─── github ───────────────────────────────────────────────────────

var githubCmd = &cobra.Command{
	Use:   "github [project-dir]",
	Short: "Create a GitHub repository for the project and push it",
	Long: `Initialize git if needed, commit the project, create the repository with
the GitHub CLI and push. Requires gh to be installed and authenticated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := projectDirArg(args)
		repo := githubRepo
		if repo == "" {
			name, err := packaging.ReadPackageName(dir)
			if err != nil {
				return fmt.Errorf("--repo not given and %w", err)
			}
			repo = name
		}

		pub := vcs.New(newRunner(cmd), vcs.WithLogger(logger))
		res := pub.SetupGitHub(cmd.Context(), dir, vcs.Options{
			RepoName:    repo,
			Description: githubDescription,
			Private:     githubPrivate,
		})

		w := cmd.OutOrStdout()
		if outputJSON {
			if err := printJSON(w, res); err != nil {
				return err
			}
		} else {
			if res.Success {
				fmt.Fprintf(w, "  [ OK ] %s\n", res.RepoURL)
			}
			if res.Note != "" {
				fmt.Fprintf(w, "  [INFO] %s\n", res.Note)
			}
			printSteps(w, res.NextSteps)
		}
		if !res.Success {
			return failed("github", res.Error)
		}
		return nil
	},
}
