package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpAdapter "github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the editing sessions as MCP tools",
	Long: `Exposes the path editor to MCP clients such as assistants and IDEs.
By default it speaks over stdin/stdout; --sse serves it over HTTP instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		a, err := newApp(cfg, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := mcpAdapter.NewServer(a.service.Sessions(), mcpAdapter.WithLogger(a.logger))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if a.docs != nil && cfg.Catalog.Watch {
			if err := a.docs.Watch(ctx); err != nil {
				return err
			}
		}
		if cfg.HTTP.SessionIdle > 0 {
			go a.service.RunReaper(ctx, cfg.HTTP.SessionIdle/4, cfg.HTTP.SessionIdle)
		}

		sse, _ := cmd.Flags().GetBool("sse")
		if !sse {
			return srv.ServeStdio()
		}
		port, _ := cmd.Flags().GetInt("port")
		return srv.ServeSSE(ctx, fmt.Sprintf(":%d", port))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Bool("sse", false, "Serve over SSE instead of stdio")
	mcpCmd.Flags().Int("port", 8081, "Port for the SSE transport")
}
