package cli

import (
	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/mcpcreator-labs/mcp-creator/internal/branding"
	"github.com/mcpcreator-labs/mcp-creator/internal/config"
	"github.com/mcpcreator-labs/mcp-creator/internal/logging"
	"github.com/mcpcreator-labs/mcp-creator/internal/runner"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	outputJSON bool
	verbose    bool

	logger *log.Logger
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds Python MCP servers, grows them one tool at a time,
and takes them through PyPI, GitHub and the MCP Marketplace.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		level := config.LogLevel()
		if verbose {
			level = "debug"
		}
		logger = logging.New(logging.Options{
			Level:  level,
			Format: config.LogFormat(),
			Writer: cmd.ErrOrStderr(),
		})
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		logging.OrNop(logger).Error().Err(err).Msg("command failed")
	}
	return err
}

// newRunner builds a process runner from the configured timeout. Child
// output is mirrored to the command's stderr so long builds show progress.
func newRunner(cmd *cobra.Command) *runner.Exec {
	r := runner.New(
		runner.WithTimeout(config.CommandTimeout()),
		runner.WithLogger(logger),
	)
	if !outputJSON {
		r.Stderr = cmd.ErrOrStderr()
	}
	return r
}
