package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcpcreator-labs/mcp-creator/internal/config"
	"github.com/mcpcreator-labs/mcp-creator/internal/mcpserver"
	"github.com/mcpcreator-labs/mcp-creator/internal/runner"
)

var (
	serveHTTP bool
	serveAddr string
)

func init() {
	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "Serve streamable HTTP instead of stdio")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (default: http_addr setting)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Run mcp-creator as an MCP server so an assistant can drive the whole
workflow. Stdio is the default transport; logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, err := mcpserver.New(buildVersion,
			mcpserver.WithLogger(logger),
			mcpserver.WithRunner(runner.New(runner.WithTimeout(config.CommandTimeout()), runner.WithLogger(logger))),
			mcpserver.WithRegistryURL(config.RegistryURL()),
			mcpserver.WithOutputDir(config.OutputDir()),
		)
		if err != nil {
			return err
		}

		if serveHTTP {
			addr := serveAddr
			if addr == "" {
				addr = config.HTTPAddr()
			}
			return srv.ServeHTTP(ctx, addr)
		}
		err = srv.ServeStdio(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
