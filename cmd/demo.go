package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/coach"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/progress"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the initial flow and a simulated first day",
	Long: `Runs profile analysis, resource search, curriculum generation and the
day-1 plan for a sample learner, then reports day 1 as done and prints the
evaluation and the day-2 plan.

The --input file is YAML:

  goal: Learn Go in 4 weeks
  current_level: beginner
  daily_available_time: 1.5
  preferred_learning_style: practice
  weeks: 4
  report:            # optional, the simulated day
    day: 1
    completed_tasks: 3
    quiz_score: 80
    perceived_difficulty: 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		return runDemo(cmd, input)
	},
}

// demoInput is the --input file: a learner and an optional day report.
type demoInput struct {
	coach.FlowInput `yaml:",inline"`
	Report          *progress.DayReport `yaml:"report,omitempty"`
}

// defaultDayReport is the simulated first day.
func defaultDayReport() progress.DayReport {
	score := 80
	return progress.DayReport{Day: 1, CompletedTasks: 3, QuizScore: &score, Difficulty: 3}
}

func runDemo(cmd *cobra.Command, inputFile string) error {
	in := demoInput{FlowInput: coach.DemoInput()}
	if inputFile != "" {
		var err error
		if in, err = readDemoInput(inputFile); err != nil {
			return err
		}
	}
	report := defaultDayReport()
	if in.Report != nil {
		report = *in.Report
	}

	ctx := cmd.Context()
	e, err := openEnv(ctx, cmd, envOptions{})
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	initial, err := e.coach.RunInitialFlow(ctx, in.FlowInput)
	if err != nil {
		return fmt.Errorf("initial flow: %w", err)
	}
	if err := printSection(out, "Profile", initial.Profile); err != nil {
		return err
	}
	if initial.Curriculum.Fallback {
		fmt.Fprintf(out, "\nAI service unavailable (%s): placeholder curriculum.\n", initial.Curriculum.Reason)
	}
	if err := printSection(out, fmt.Sprintf("Day %d plan", initial.Plan.Day), initial.Plan); err != nil {
		return err
	}

	daily, err := e.coach.RunDailyCycle(ctx, report)
	if err != nil {
		return fmt.Errorf("daily cycle: %w", err)
	}
	if err := printSection(out, fmt.Sprintf("Day %d evaluation", report.Day), daily.Evaluation); err != nil {
		return err
	}
	return printSection(out, fmt.Sprintf("Day %d plan", daily.NextPlan.Day), daily.NextPlan)
}

func readDemoInput(path string) (demoInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return demoInput{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var in demoInput
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		return demoInput{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if in.Goal == "" {
		return demoInput{}, fmt.Errorf("decode %s: goal is required", path)
	}
	return in, nil
}

func printSection(w io.Writer, title string, v any) error {
	fmt.Fprintf(w, "\n== %s\n", title)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", title, err)
	}
	return nil
}

func init() {
	demoCmd.Flags().StringP("input", "i", "", "YAML file with the learner (and optionally the day report)")
}
