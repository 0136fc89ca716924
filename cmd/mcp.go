package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/foomo/editor-prevnext/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Runs the MCP server in stdio mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appConfig, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		logger.Info("starting MCP server in stdio mode")
		return server.ServeStdio(mcp.NewServer(logger, a.service))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
