package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "AI personal learning coach",
	Long:  "Coach turns a learning goal into a placement assessment, a day-by-day curriculum, lessons and quizzes, and tracks progress.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if demo, _ := cmd.Flags().GetBool("demo"); demo {
			return runDemo(cmd, "")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Run with --demo for a local demonstration, or see 'coach --help'.")
		return nil
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default ./coach.yaml when present)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for users, memory and the event log (overrides COACH_DATA_DIR)")
	rootCmd.Flags().Bool("demo", false, "Run the demonstration flow and exit")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
