package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/foomo/editor-prevnext/admin"
	"github.com/foomo/editor-prevnext/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the navigation fragment, the admin proxy and the MCP endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appConfig, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		mux := http.NewServeMux()
		mux.Handle(appConfig.Admin.BasePath+"/", admin.NewHandler(logger.Named("handler"), a.service, a.registry, appConfig.Admin.BasePath))

		if appConfig.MCP.Enabled {
			mcpServer := mcp.NewServer(logger, a.service)
			mux.Handle(appConfig.MCP.Endpoint, mcp.NewMcpHTTPServer(logger.Named("mcp"), mcpServer, appConfig.MCP.Endpoint))
		}

		if appConfig.Admin.Upstream != "" {
			target, err := url.Parse(appConfig.Admin.Upstream)
			if err != nil {
				return fmt.Errorf("invalid admin upstream: %w", err)
			}
			mux.Handle("/", admin.NewProxy(logger.Named("proxy"), target, a.service, a.registry, admin.ProxyConfig{
				EditPath:  appConfig.Render.EditPath,
				Container: appConfig.Admin.Container,
			}))
		}

		server := &http.Server{
			Addr:              appConfig.Admin.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Warn("failed to shut down server", zap.Error(err))
			}
		}()

		logger.Info("starting server",
			zap.String("addr", appConfig.Admin.Addr),
			zap.String("upstream", appConfig.Admin.Upstream),
			zap.Bool("mcp", appConfig.MCP.Enabled),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
