package cmd

import (
	"github.com/spf13/cobra"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/app"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/screens/home"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start the interactive console coach",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(ctx, cmd, envOptions{quiet: true})
		if err != nil {
			return err
		}
		defer e.Close()

		return app.Run(ctx, app.Options{
			Coach: e.coach,
			Status: home.Status{
				AIConfigured:     e.provider != nil,
				AIModel:          e.aiModel(),
				SearchConfigured: e.cfg.SearchConfigured(),
				DataDir:          e.dataDir,
			},
		})
	},
}
