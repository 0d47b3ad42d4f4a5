package cli

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/agenthands/literalkg/internal/bundle"
	"github.com/agenthands/literalkg/internal/logger"
	"github.com/agenthands/literalkg/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	var path, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a bundle read-only over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = a.cfg.Output.Path
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}

			ds, err := bundle.Load(cmd.Context(), path, a.cfg.S3)
			if err != nil {
				return err
			}

			if !a.debug {
				gin.SetMode(gin.ReleaseMode)
			}
			r := server.NewServer(ds).SetupRouter()

			logger.Info("starting server", "port", a.cfg.Server.Port, "bundle", path)
			return r.Run(":" + a.cfg.Server.Port)
		},
	}

	cmd.Flags().StringVarP(&path, "bundle", "b", "", "bundle to serve (default output.path)")
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides server.port)")
	return cmd
}
