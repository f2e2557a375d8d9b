//go:build cucumber

package assessment

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

// TestLevelScenarios runs the level classification feature scenarios.
func TestLevelScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "level-classification",
		ScenarioInitializer: InitializeLevelScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("testdata", "level.feature")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeLevelScenario wires steps for level scenarios.
func InitializeLevelScenario(ctx *godog.ScenarioContext) {
	state := &levelScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*state = levelScenarioState{answers: Answers{}}
		return ctx, nil
	})

	ctx.Step(`^a placement score of (\d+)$`, state.givenScore)
	ctx.Step(`^the score is classified$`, state.whenClassified)
	ctx.Step(`^a battery of (\d+) easy, (\d+) medium and (\d+) hard questions$`, state.givenBattery)
	ctx.Step(`^the learner answers every easy and hard question correctly$`, state.givenEasyAndHardCorrect)
	ctx.Step(`^the learner answers (\d+) medium questions? correctly$`, state.givenMediumCorrect)
	ctx.Step(`^the answers are scored$`, state.whenScored)
	ctx.Step(`^the level is "([^"]+)"$`, state.thenLevel)
	ctx.Step(`^the recommended start day is (\d+)$`, state.thenStartDay)
	ctx.Step(`^the score is (\d+)$`, state.thenScore)
}

type levelScenarioState struct {
	score     int
	questions []learning.AssessmentQuestion
	answers   Answers
	level     learning.Level
	startDay  int
}

func (s *levelScenarioState) givenScore(score int) error {
	s.score = score
	return nil
}

func (s *levelScenarioState) whenClassified() error {
	s.level, s.startDay = Classify(s.score)
	return nil
}

func (s *levelScenarioState) givenBattery(easy, medium, hard int) error {
	s.questions = battery(easy, medium, hard)
	return nil
}

func (s *levelScenarioState) givenEasyAndHardCorrect() error {
	for _, q := range s.questions {
		if q.Difficulty != learning.Medium {
			s.answers[q.ID] = q.Correct
		}
	}
	return nil
}

func (s *levelScenarioState) givenMediumCorrect(n int) error {
	for _, q := range s.questions {
		if n == 0 {
			break
		}
		if q.Difficulty == learning.Medium {
			s.answers[q.ID] = q.Correct
			n--
		}
	}
	return nil
}

func (s *levelScenarioState) whenScored() error {
	r := Score(s.answers, s.questions)
	s.score, s.level, s.startDay = r.Score, r.Level, r.RecommendedStartDay
	return nil
}

func (s *levelScenarioState) thenLevel(want string) error {
	if string(s.level) != want {
		return fmt.Errorf("level = %s, want %s", s.level, want)
	}
	return nil
}

func (s *levelScenarioState) thenStartDay(want int) error {
	if s.startDay != want {
		return fmt.Errorf("start day = %d, want %d", s.startDay, want)
	}
	return nil
}

func (s *levelScenarioState) thenScore(want int) error {
	if s.score != want {
		return fmt.Errorf("score = %d, want %d", s.score, want)
	}
	return nil
}
