package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/mcpcreator-labs/mcp-creator/internal/profile"
)

var (
	profileShowYAML bool

	profileSetupComplete bool
	profileGitHubUser    string
	profilePyPIUser      string
	profileOutputDir     string
	profileAddProject    string
	profileProjectPyPI   string
	profileProjectGitHub string
	profileProjectDesc   string
)

func init() {
	profileShowCmd.Flags().BoolVar(&profileShowYAML, "yaml", false, "Output as YAML")

	f := profileUpdateCmd.Flags()
	f.BoolVar(&profileSetupComplete, "setup-complete", false, "Mark setup as done")
	f.StringVar(&profileGitHubUser, "github-username", "", "GitHub username")
	f.StringVar(&profilePyPIUser, "pypi-username", "", "PyPI username")
	f.StringVar(&profileOutputDir, "default-output-dir", "", "Where projects are created by default")
	f.StringVar(&profileAddProject, "add-project", "", "Record a project by name")
	f.StringVar(&profileProjectPyPI, "pypi-url", "", "PyPI URL of the project being added")
	f.StringVar(&profileProjectGitHub, "github-url", "", "GitHub URL of the project being added")
	f.StringVar(&profileProjectDesc, "project-description", "", "Description of the project being added")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the creator profile",
	Long:  `The creator profile at ~/.mcp-creator/profile.json records setup state and published projects.`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the creator profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := profile.DefaultStore()
		if err != nil {
			return fmt.Errorf("resolving profile: %w", err)
		}
		p, err := store.Load()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		switch {
		case outputJSON:
			return printJSON(w, map[string]any{"profile": p, "next_steps": profile.NextSteps(p)})
		case profileShowYAML:
			out, err := yaml.Marshal(p)
			if err != nil {
				return fmt.Errorf("marshaling YAML: %w", err)
			}
			fmt.Fprint(w, string(out))
			return nil
		}

		fmt.Fprintf(w, "Profile: %s\n", store.Path())
		fmt.Fprintf(w, "  Setup complete:  %v\n", p.SetupComplete)
		fmt.Fprintf(w, "  GitHub username: %s\n", orDash(p.GitHubUsername))
		fmt.Fprintf(w, "  PyPI username:   %s\n", orDash(p.PyPIUsername))
		fmt.Fprintf(w, "  Output dir:      %s\n", orDash(p.DefaultOutputDir))
		if len(p.Projects) == 0 {
			fmt.Fprintln(w, "  Projects:        -")
		} else {
			fmt.Fprintf(w, "  Projects:        %s\n", strings.Join(p.ProjectNames(), ", "))
		}
		printSteps(w, profile.NextSteps(p))
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update fields of the creator profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var patch profile.Patch
		if flags.Changed("setup-complete") {
			patch.SetupComplete = &profileSetupComplete
		}
		if flags.Changed("github-username") {
			patch.GitHubUsername = &profileGitHubUser
		}
		if flags.Changed("pypi-username") {
			patch.PyPIUsername = &profilePyPIUser
		}
		if flags.Changed("default-output-dir") {
			patch.DefaultOutputDir = &profileOutputDir
		}
		if profileAddProject != "" {
			patch.AddProject = &profile.Project{
				Name:        profileAddProject,
				PyPIURL:     profileProjectPyPI,
				GitHubURL:   profileProjectGitHub,
				Description: profileProjectDesc,
			}
		}

		store, err := profile.DefaultStore()
		if err != nil {
			return fmt.Errorf("resolving profile: %w", err)
		}
		p, err := store.Update(patch)
		if err != nil {
			return err
		}
		logger.Debug().Str("path", store.Path()).Msg("profile updated")

		if outputJSON {
			return printJSON(cmd.OutOrStdout(), map[string]any{"success": true, "profile": p})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Profile updated.")
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
