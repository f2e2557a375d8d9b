// Package coach sequences the learning pipeline: profile, resources,
// curriculum, daily delivery, quiz scoring and progress tracking.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/assessment"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/curriculum"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/events"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/lessons"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/llm"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/progress"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/quiz"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/resources"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/store"
)

// DefaultMaxResults is the number of search hits requested per lookup.
const DefaultMaxResults = 5

var (
	// ErrNoUserStore is returned by user flows when no user store is wired.
	ErrNoUserStore = errors.New("user store not configured")
	// ErrNoCurriculum is returned when a flow needs a curriculum that does not exist.
	ErrNoCurriculum = errors.New("no curriculum")
	// ErrNoQuiz is returned when answers are submitted for a day without a quiz.
	ErrNoQuiz = errors.New("no quiz for day")
)

// FallbackRecorder counts placeholder content served to learners.
type FallbackRecorder interface {
	ObserveFallback(kind, reason string)
}

// ActivityLog records learner activity.
type ActivityLog interface {
	AppendActivity(ctx context.Context, typ, userID, payload string) error
}

// Deps are the collaborators of a Coach. Provider nil means the generative
// service is not configured and every generator serves placeholder content.
type Deps struct {
	Provider   llm.Provider
	Searcher   resources.Searcher
	Users      *store.UserStore
	Memory     *store.MemoryBank
	Activity   ActivityLog
	Publisher  events.Publisher
	Fallbacks  FallbackRecorder
	Logger     *zap.Logger
	Language   string
	MaxResults int
	Now        func() time.Time
}

// Coach runs the pipeline and the per-user flows.
type Coach struct {
	provider  llm.Provider
	users     *store.UserStore
	memory    *store.MemoryBank
	activity  ActivityLog
	publisher events.Publisher
	fallbacks FallbackRecorder
	log       *zap.Logger
	now       func() time.Time

	curator     *resources.Curator
	assessments *assessment.Generator
	curricula   *curriculum.Generator
	quizzes     *quiz.Generator
	lessons     *lessons.Service
	advisor     *progress.Advisor
}

// New wires a Coach. Missing collaborators get safe defaults: the canned
// searcher, a publisher that only logs, and a no-op logger.
func New(d Deps) *Coach {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	searcher := d.Searcher
	if searcher == nil {
		searcher = resources.MockSearcher{}
	}
	publisher := d.Publisher
	if publisher == nil {
		publisher = events.NewNopPublisher(log)
	}
	maxResults := d.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}

	var recs resources.RecommendationStore
	if d.Memory != nil {
		recs = d.Memory
	}

	ac := assessment.DefaultConfig()
	cc := curriculum.DefaultConfig()
	qc := quiz.DefaultConfig()
	lc := lessons.DefaultConfig()
	if d.Language != "" {
		ac.Language, cc.Language, qc.Language, lc.Language = d.Language, d.Language, d.Language, d.Language
	}

	return &Coach{
		provider:    d.Provider,
		users:       d.Users,
		memory:      d.Memory,
		activity:    d.Activity,
		publisher:   publisher,
		fallbacks:   d.Fallbacks,
		log:         log,
		now:         now,
		curator:     resources.NewCurator(searcher, recs, maxResults, log),
		assessments: assessment.NewGenerator(d.Provider, ac),
		curricula:   curriculum.NewGenerator(d.Provider, cc),
		quizzes:     quiz.NewGenerator(d.Provider, qc),
		lessons:     lessons.NewService(d.Provider, lc),
		advisor:     progress.NewAdvisor(d.Provider, progress.DefaultAdvisorConfig()),
	}
}

// Configured reports whether a generative provider is wired.
func (c *Coach) Configured() bool {
	return c.provider != nil
}

// Lessons exposes the lesson service for prefetching.
func (c *Coach) Lessons() *lessons.Service {
	return c.lessons
}

// degraded logs and counts placeholder content of kind.
func (c *Coach) degraded(kind, reason string, fields ...zap.Field) {
	c.log.Warn("serving fallback content",
		append([]zap.Field{zap.String("kind", kind), zap.String("reason", reason)}, fields...)...)
	if c.fallbacks != nil {
		c.fallbacks.ObserveFallback(kind, reason)
	}
}

// emit appends the activity and publishes the event. Neither failure is
// returned to the learner.
func (c *Coach) emit(ctx context.Context, typ, userID string, payload any) {
	if c.activity != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			c.log.Error("encode activity", zap.String("type", typ), zap.Error(err))
		} else if err := c.activity.AppendActivity(ctx, typ, userID, string(body)); err != nil {
			c.log.Error("append activity", zap.String("type", typ), zap.Error(err))
		}
	}
	if err := c.publisher.Publish(ctx, events.New(typ, userID, payload, c.now())); err != nil {
		c.log.Warn("publish event", zap.String("type", typ), zap.Error(err))
	}
}

func (c *Coach) requireUsers() error {
	if c.users == nil {
		return ErrNoUserStore
	}
	return nil
}
