package coach

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/assessment"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/curriculum"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/events"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/normalize"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/profile"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/progress"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/store"
)

// Resources handed out with a plan.
const (
	FirstDayResources = 3
	NextDayResources  = 2
)

// FlowInput is the demo and console input for the initial flow.
type FlowInput struct {
	profile.Input `yaml:",inline"`
	Weeks         int `json:"weeks,omitempty" yaml:"weeks,omitempty"`
}

// DemoInput is the learner used when no input is given to the demo runs.
func DemoInput() FlowInput {
	return FlowInput{Input: profile.Input{
		Goal:       "3 ayda Python temeli",
		Level:      "başlangıç",
		DailyHours: 1.0,
		Style:      "teori + uygulama",
	}}
}

// InitialResult is the outcome of RunInitialFlow.
type InitialResult struct {
	Profile    learning.Profile                      `json:"profile"`
	Resources  []learning.Resource                   `json:"resources"`
	Curriculum normalize.Result[learning.Curriculum] `json:"-"`
	Plan       learning.DailyPlan                    `json:"plan"`
}

// DailyResult is the outcome of RunDailyCycle.
type DailyResult struct {
	Evaluation progress.Evaluation `json:"evaluation"`
	NextPlan   learning.DailyPlan  `json:"next_plan"`
}

// Report summarizes the stored performance history.
type Report struct {
	Summary  progress.Summary                    `json:"summary"`
	Insights normalize.Result[progress.Insights] `json:"-"`
}

// AnalyzeProfile turns the raw input into a profile.
func (c *Coach) AnalyzeProfile(in profile.Input) learning.Profile {
	return profile.Analyze(in, c.now())
}

// FindResources looks up curated and searched resources for the profile.
func (c *Coach) FindResources(ctx context.Context, p learning.Profile) ([]learning.Resource, error) {
	return c.curator.FindResources(ctx, p)
}

// GenerateCurriculum asks the generator for a plan. Placeholder plans are
// logged and counted.
func (c *Coach) GenerateCurriculum(ctx context.Context, goal string, level learning.Level, weeks int) normalize.Result[learning.Curriculum] {
	res := c.curricula.Generate(ctx, goal, level, weeks)
	if res.Fallback {
		c.degraded("curriculum", res.Reason, zap.String("goal", goal))
	}
	return res
}

// ScoreAnswers classifies assessment answers.
func (c *Coach) ScoreAnswers(answers assessment.Answers, questions []learning.AssessmentQuestion) learning.LevelResult {
	return assessment.Score(answers, questions)
}

// RecordProgress applies a study session to the user's active curriculum.
func (c *Coach) RecordProgress(ctx context.Context, userID string, upd store.ProgressUpdate) (learning.Progress, error) {
	if err := c.requireUsers(); err != nil {
		return learning.Progress{}, err
	}
	p, err := c.users.RecordProgress(userID, upd)
	if err != nil {
		return learning.Progress{}, fmt.Errorf("record progress: %w", err)
	}
	c.emit(ctx, events.ProgressRecorded, userID, upd)
	return p, nil
}

// RunInitialFlow runs profile, resources and curriculum for a new learner
// and builds the first day's plan. Profile, curriculum and plan are kept in
// the memory bank when one is wired.
func (c *Coach) RunInitialFlow(ctx context.Context, in FlowInput) (*InitialResult, error) {
	p := c.AnalyzeProfile(in.Input)
	if c.memory != nil {
		if err := c.memory.SaveUserProfile(p); err != nil {
			return nil, fmt.Errorf("save profile: %w", err)
		}
	}

	recs, err := c.FindResources(ctx, p)
	if err != nil {
		return nil, err
	}

	weeks := in.Weeks
	if weeks <= 0 {
		weeks = curriculum.DefaultWeeks
	}
	cur := c.GenerateCurriculum(ctx, p.Goal, learning.ParseLevel(p.Level), weeks)
	if c.memory != nil {
		if err := c.memory.SaveCurriculum(cur.Value); err != nil {
			return nil, fmt.Errorf("save curriculum: %w", err)
		}
	}

	plan := c.plan(cur.Value, 1, head(recs, FirstDayResources), cur.Fallback)
	if c.memory != nil {
		if err := c.memory.AppendDailyPlan(plan); err != nil {
			return nil, fmt.Errorf("save plan: %w", err)
		}
	}

	return &InitialResult{Profile: p, Resources: recs, Curriculum: cur, Plan: plan}, nil
}

// RunDailyCycle evaluates a finished day and plans the next one from the
// stored curriculum, with resources not handed out the day before.
func (c *Coach) RunDailyCycle(ctx context.Context, report progress.DayReport) (*DailyResult, error) {
	if c.memory == nil {
		return nil, ErrNoCurriculum
	}
	cur, ok, err := c.memory.Curriculum()
	if err != nil {
		return nil, fmt.Errorf("load curriculum: %w", err)
	}
	if !ok {
		return nil, ErrNoCurriculum
	}

	eval := progress.Evaluate(report)
	rec := eval.Record()
	rec.RecordedAt = c.now().UTC()
	if err := c.memory.AppendPerformance(rec); err != nil {
		return nil, fmt.Errorf("save performance: %w", err)
	}

	p, _, err := c.memory.UserProfile()
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if p.Goal == "" {
		p.Goal = cur.Goal
	}
	recs, err := c.FindResources(ctx, p)
	if err != nil {
		return nil, err
	}
	plans, err := c.memory.DailyPlans()
	if err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}
	var seen []learning.Resource
	if len(plans) > 0 {
		seen = plans[len(plans)-1].Resources
	}

	plan := c.plan(cur, report.Day+1, fresh(recs, seen, NextDayResources), cur.Source == learning.SourceFallback)
	if err := c.memory.AppendDailyPlan(plan); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	return &DailyResult{Evaluation: eval, NextPlan: plan}, nil
}

// Report summarizes the memory bank's performance history and asks for
// insights on the most recent days.
func (c *Coach) Report(ctx context.Context) (*Report, error) {
	if c.memory == nil {
		return &Report{Insights: normalize.Degraded(progress.MockInsights(), normalize.ReasonEmpty)}, nil
	}
	history, err := c.memory.Performance()
	if err != nil {
		return nil, fmt.Errorf("load performance: %w", err)
	}
	sum, _ := progress.Summarize(history)
	ins := c.advisor.Insights(ctx, history)
	if ins.Fallback && len(history) > 0 {
		c.degraded("insights", ins.Reason)
	}
	return &Report{Summary: sum, Insights: ins}, nil
}

func (c *Coach) plan(cur learning.Curriculum, day int, recs []learning.Resource, fallback bool) learning.DailyPlan {
	plan := learning.DailyPlan{
		Day:       cur.ClampDay(day),
		Resources: recs,
		Fallback:  fallback,
		CreatedAt: c.now().UTC(),
	}
	if l, ok := curriculum.LessonFor(cur, day); ok {
		plan.Theme = l.Theme
		plan.Tasks = l.Tasks
		plan.Tip = l.Tip
	}
	return plan
}

func head(recs []learning.Resource, n int) []learning.Resource {
	if len(recs) > n {
		recs = recs[:n]
	}
	return append([]learning.Resource(nil), recs...)
}

// fresh picks up to n resources whose URLs are not in seen, topping up from
// the start of recs when too few are new.
func fresh(recs, seen []learning.Resource, n int) []learning.Resource {
	used := make(map[string]bool, len(seen))
	for _, r := range seen {
		used[r.URL] = true
	}
	out := make([]learning.Resource, 0, n)
	for _, r := range recs {
		if len(out) == n {
			return out
		}
		if !used[r.URL] {
			out = append(out, r)
			used[r.URL] = true
		}
	}
	for _, r := range recs {
		if len(out) == n {
			break
		}
		if !containsURL(out, r.URL) {
			out = append(out, r)
		}
	}
	return out
}

func containsURL(recs []learning.Resource, url string) bool {
	for _, r := range recs {
		if r.URL == url {
			return true
		}
	}
	return false
}
