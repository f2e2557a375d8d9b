package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/llm"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM request log",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		ctx := cmd.Context()
		e, err := openEnv(ctx, cmd, envOptions{offline: true})
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.events.QueryLLMEvents(ctx, store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM requests recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-14s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, ev := range events {
			ok := "✓"
			if !ev.Success {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-14s  %-28s  %-6d  %-6d  %-7d  %s\n",
				ev.ID,
				ev.Timestamp.Local().Format(timeLayout),
				truncate(ev.Purpose, 14),
				truncate(ev.Model, 28),
				ev.InputTokens,
				ev.OutputTokens,
				ev.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one LLM request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		ctx := cmd.Context()
		e, err := openEnv(ctx, cmd, envOptions{offline: true})
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := e.events.LLMEvent(ctx, id)
		if err != nil {
			return fmt.Errorf("get request: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("request %d not found", id)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:        %d\n", ev.ID)
		fmt.Fprintf(out, "Time:      %s\n", ev.Timestamp.Local().Format(timeLayout))
		fmt.Fprintf(out, "Provider:  %s\n", ev.Provider)
		fmt.Fprintf(out, "Model:     %s\n", ev.Model)
		fmt.Fprintf(out, "Purpose:   %s\n", ev.Purpose)
		fmt.Fprintf(out, "Tokens:    %d in / %d out\n", ev.InputTokens, ev.OutputTokens)
		fmt.Fprintf(out, "Latency:   %dms\n", ev.LatencyMs)
		fmt.Fprintf(out, "Success:   %v\n", ev.Success)
		if ev.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:     %s\n", ev.ErrorMessage)
		}
		printBody(out, "REQUEST", ev.RequestBody)
		printBody(out, "RESPONSE", ev.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(ctx, cmd, envOptions{offline: true})
		if err != nil {
			return err
		}
		defer e.Close()

		usage, err := e.events.LLMStats(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(usage) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}
		printUsageByPurpose(out, groupUsage(usage, func(u store.LLMUsage) string { return u.Purpose }))
		fmt.Fprintln(out)
		printCostByModel(out, groupUsage(usage, func(u store.LLMUsage) string { return u.Model }))
		return nil
	},
}

// usageGroup sums LLMUsage rows sharing a key.
type usageGroup struct {
	key          string
	requests     int
	failures     int
	inputTokens  int
	outputTokens int
	latencySum   float64
}

func (g usageGroup) avgLatency() float64 {
	if g.requests == 0 {
		return 0
	}
	return g.latencySum / float64(g.requests)
}

func groupUsage(rows []store.LLMUsage, key func(store.LLMUsage) string) []usageGroup {
	byKey := map[string]*usageGroup{}
	for _, r := range rows {
		k := key(r)
		g, ok := byKey[k]
		if !ok {
			g = &usageGroup{key: k}
			byKey[k] = g
		}
		g.requests += r.Requests
		g.failures += r.Failures
		g.inputTokens += r.InputTokens
		g.outputTokens += r.OutputTokens
		g.latencySum += r.AvgLatencyMs * float64(r.Requests)
	}
	out := make([]usageGroup, 0, len(byKey))
	for _, g := range byKey {
		out = append(out, *g)
	}
	slices.SortFunc(out, func(a, b usageGroup) int { return strings.Compare(a.key, b.key) })
	return out
}

func printUsageByPurpose(w io.Writer, groups []usageGroup) {
	sep := strings.Repeat("─", 80)
	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%-16s  %6s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Failed", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(w, sep)

	var total usageGroup
	for _, g := range groups {
		fmt.Fprintf(w, "%-16s  %6d  %6d  %10d  %10d  %10d  %8.0f\n",
			truncate(g.key, 16), g.requests, g.failures, g.inputTokens, g.outputTokens,
			g.inputTokens+g.outputTokens, g.avgLatency())
		total.requests += g.requests
		total.failures += g.failures
		total.inputTokens += g.inputTokens
		total.outputTokens += g.outputTokens
	}
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%-16s  %6d  %6d  %10d  %10d  %10d\n",
		"TOTAL", total.requests, total.failures, total.inputTokens, total.outputTokens,
		total.inputTokens+total.outputTokens)
}

func printCostByModel(w io.Writer, groups []usageGroup) {
	sep := strings.Repeat("─", 72)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, sep)

	var totalCost float64
	var unknown []string
	for _, g := range groups {
		cost := llm.LookupCost(g.key)
		if cost == nil {
			unknown = append(unknown, g.key)
			fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(g.key, 32), g.requests, g.inputTokens, g.outputTokens, "?")
			continue
		}
		c := cost.Cost(g.inputTokens, g.outputTokens)
		totalCost += c
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(g.key, 32), g.requests, g.inputTokens, g.outputTokens, formatCost(c))
	}

	fmt.Fprintln(w, sep)
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))
	if len(unknown) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

func printBody(w io.Writer, title, body string) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintln(w)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, sep)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintln(w, body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (assessment, curriculum, quiz, lesson, explain-answer, insights)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
