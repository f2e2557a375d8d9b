package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize recorded daily performance with AI insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(ctx, cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		r, err := e.coach.Report(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		s := r.Summary
		if s.TotalDays == 0 {
			fmt.Fprintln(out, "No daily performance recorded yet. Run 'coach demo' first.")
			return nil
		}
		fmt.Fprintln(out, "Performance")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		fmt.Fprintf(out, "%-14s %d\n", "Days", s.TotalDays)
		fmt.Fprintf(out, "%-14s %.1f\n", "Average score", s.AverageScore)
		fmt.Fprintf(out, "%-14s %.1f\n", "Best score", s.BestScore)
		fmt.Fprintf(out, "%-14s %s\n", "Trend", s.Trend)

		ins := r.Insights.Value
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Insights")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		if r.Insights.Fallback {
			fmt.Fprintf(out, "(AI service unavailable: %s)\n", r.Insights.Reason)
		}
		fmt.Fprintf(out, "%-14s %s\n", "Overall", ins.Trend)
		printList(out, "Strengths", ins.Strengths)
		printList(out, "Improve", ins.AreasToImprove)
		printList(out, "Recommended", ins.Recommendations)
		if ins.Motivation != "" {
			fmt.Fprintf(out, "\n%s\n", ins.Motivation)
		}
		return nil
	},
}

func printList(w io.Writer, label string, items []string) {
	for i, it := range items {
		if i == 0 {
			fmt.Fprintf(w, "%-14s • %s\n", label, it)
			continue
		}
		fmt.Fprintf(w, "%-14s • %s\n", "", it)
	}
}
