package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/listvision-mcp/internal/server"
)

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd)
		},
	}
}

func (a *app) serve(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("MCP server starting", "version", a.info.Version, "rows", len(a.cfg.Rows.Seed))

	srv := server.New(
		server.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()),
		server.WithLogger(a.logger),
		server.WithController(a.newController()),
		server.WithDetector(a.newDetector()),
		server.WithVersion(a.info.Version),
	)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		a.logger.Error("server error", "error", err)
		return err
	}
	a.logger.Info("MCP server stopped")
	return nil
}
