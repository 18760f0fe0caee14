package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcpcreator-labs/mcp-creator/internal/config"
	"github.com/mcpcreator-labs/mcp-creator/internal/setupcheck"
	"github.com/mcpcreator-labs/mcp-creator/internal/userdata"
)

var checkSetupStrict bool

func init() {
	checkSetupCmd.Flags().BoolVar(&checkSetupStrict, "strict", false, "Exit non-zero when anything is missing")
	rootCmd.AddCommand(checkSetupCmd)
}

var checkSetupCmd = &cobra.Command{
	Use:     "check-setup",
	Aliases: []string{"doctor"},
	Short:   "Check for the tools needed to build and publish servers",
	Long:    `Check for python3, uv, git, the GitHub CLI and a PyPI token, and report what is missing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := setupcheck.New(newRunner(cmd)).Check(cmd.Context())

		w := cmd.OutOrStdout()
		if outputJSON {
			if err := printJSON(w, report); err != nil {
				return err
			}
		} else {
			setupcheck.Print(w, report)
			fmt.Fprintln(w)
			checkStateDir(w)
		}

		if checkSetupStrict && !report.AllReady {
			return fmt.Errorf("%d setup step(s) missing", len(report.MissingSteps))
		}
		return nil
	},
}

// checkStateDir reports on ~/.mcp-creator and its files.
func checkStateDir(w io.Writer) {
	fmt.Fprintln(w, "State check:")
	root, err := userdata.GetRoot()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] Cannot resolve state directory: %v\n", err)
		return
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist (created on first profile update)\n", root)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", root)

	for _, path := range []string{config.FilePath(), profilePath()} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(w, "  [MISS] %s\n", path)
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s\n", path)
	}
}

func profilePath() string {
	path, err := userdata.GetProfilePath()
	if err != nil {
		return ""
	}
	return path
}
