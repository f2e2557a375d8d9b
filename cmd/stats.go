package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

		e, err := openEnv(cmd.Context(), cmd, envOptions{offline: true})
		if err != nil {
			return err
		}
		defer e.Close()

		u, err := e.users.FindByEmail(email)
		if errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("no user registered with %s", email)
		}
		if err != nil {
			return fmt.Errorf("find user: %w", err)
		}
		st, err := e.users.Stats(u.ID)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Statistics for %s <%s>\n", u.Username, u.Email)
		fmt.Fprintln(out, strings.Repeat("─", 40))
		if st.TotalDays == 0 {
			fmt.Fprintln(out, "No active curriculum.")
		} else {
			fmt.Fprintf(out, "%-20s %d / %d\n", "Completed days", st.CompletedDays, st.TotalDays)
			fmt.Fprintf(out, "%-20s %d\n", "Current day", st.CurrentDay)
		}
		fmt.Fprintf(out, "%-20s %.1f\n", "Study hours", st.TotalHours)
		if st.QuizCount > 0 {
			fmt.Fprintf(out, "%-20s %.1f%% over %d\n", "Average quiz score", st.AverageQuizScore, st.QuizCount)
		} else {
			fmt.Fprintf(out, "%-20s -\n", "Average quiz score")
		}
		fmt.Fprintf(out, "%-20s %d\n", "Curricula", st.Curricula)
		return nil
	},
}

func init() {
	statsCmd.Flags().String("email", "", "Email the user registered with")
	_ = statsCmd.MarkFlagRequired("email")
}
