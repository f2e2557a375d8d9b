package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/config"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/logger"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web application",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e, err := openEnv(ctx, cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		srv, err := web.New(web.Options{
			Coach:   e.coach,
			Users:   e.users,
			Metrics: e.metrics,
			Logger:  e.log.Logger,
			Server:  e.cfg.Server,
			Session: e.cfg.Session,
		})
		if err != nil {
			return err
		}

		log := e.log.Logger
		e.source.Watch(func(c *config.Config, err error) {
			if err != nil {
				log.Warn("reload config", zap.Error(err))
				return
			}
			if err := logger.SetLevel(e.log.Level, c.Log.Level); err != nil {
				log.Warn("reload config", zap.Error(err))
				return
			}
			log.Info("config reloaded", zap.String("file", e.source.File()), zap.String("log_level", c.Log.Level))
		})

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = e.cfg.Server.Addr
		}
		return srv.Serve(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
