package store

import (
	"time"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

// Recommendation is a keyed batch of resources suggested to the learner.
type Recommendation struct {
	Key  string              `json:"key"`
	Recs []learning.Resource `json:"recs"`
}

type memoryDoc struct {
	UserProfile     *learning.Profile            `json:"user_profile"`
	Recommendations []Recommendation             `json:"recommendations"`
	DailyPlans      []learning.DailyPlan         `json:"daily_plans"`
	Performance     []learning.PerformanceRecord `json:"performance"`
	Curriculum      *learning.Curriculum         `json:"curriculum,omitempty"`
}

// MemoryBank is the single-learner working memory of the coaching pipeline,
// kept in memory.json.
type MemoryBank struct {
	doc *jsonDoc[memoryDoc]
	now func() time.Time
}

// NewMemoryBank opens or initializes the memory document at path.
func NewMemoryBank(path string) (*MemoryBank, error) {
	doc, err := newJSONDoc(path, func() memoryDoc {
		return memoryDoc{
			Recommendations: []Recommendation{},
			DailyPlans:      []learning.DailyPlan{},
			Performance:     []learning.PerformanceRecord{},
		}
	})
	if err != nil {
		return nil, err
	}
	return &MemoryBank{doc: doc, now: time.Now}, nil
}

func (m *MemoryBank) SaveUserProfile(p learning.Profile) error {
	return m.doc.update(func(d *memoryDoc) error {
		d.UserProfile = &p
		return nil
	})
}

// UserProfile returns the stored profile, or false when none was saved.
func (m *MemoryBank) UserProfile() (learning.Profile, bool, error) {
	var (
		p  learning.Profile
		ok bool
	)
	err := m.doc.view(func(d *memoryDoc) error {
		if d.UserProfile != nil {
			p, ok = *d.UserProfile, true
		}
		return nil
	})
	return p, ok, err
}

func (m *MemoryBank) SaveRecommendations(key string, recs []learning.Resource) error {
	return m.doc.update(func(d *memoryDoc) error {
		d.Recommendations = append(d.Recommendations, Recommendation{Key: key, Recs: recs})
		return nil
	})
}

// Recommendations returns every saved batch in insertion order.
func (m *MemoryBank) Recommendations() ([]Recommendation, error) {
	var out []Recommendation
	err := m.doc.view(func(d *memoryDoc) error {
		out = d.Recommendations
		return nil
	})
	return out, err
}

func (m *MemoryBank) AppendDailyPlan(p learning.DailyPlan) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = m.now().UTC()
	}
	return m.doc.update(func(d *memoryDoc) error {
		d.DailyPlans = append(d.DailyPlans, p)
		return nil
	})
}

// DailyPlans returns the plan history.
func (m *MemoryBank) DailyPlans() ([]learning.DailyPlan, error) {
	var out []learning.DailyPlan
	err := m.doc.view(func(d *memoryDoc) error {
		out = d.DailyPlans
		return nil
	})
	return out, err
}

func (m *MemoryBank) AppendPerformance(r learning.PerformanceRecord) error {
	if r.RecordedAt.IsZero() {
		r.RecordedAt = m.now().UTC()
	}
	return m.doc.update(func(d *memoryDoc) error {
		d.Performance = append(d.Performance, r)
		return nil
	})
}

// Performance returns the evaluated days in insertion order.
func (m *MemoryBank) Performance() ([]learning.PerformanceRecord, error) {
	var out []learning.PerformanceRecord
	err := m.doc.view(func(d *memoryDoc) error {
		out = d.Performance
		return nil
	})
	return out, err
}

func (m *MemoryBank) SaveCurriculum(c learning.Curriculum) error {
	return m.doc.update(func(d *memoryDoc) error {
		d.Curriculum = &c
		return nil
	})
}

// Curriculum returns the stored curriculum, or false when none was saved.
func (m *MemoryBank) Curriculum() (learning.Curriculum, bool, error) {
	var (
		c  learning.Curriculum
		ok bool
	)
	err := m.doc.view(func(d *memoryDoc) error {
		if d.Curriculum != nil {
			c, ok = *d.Curriculum, true
		}
		return nil
	})
	return c, ok, err
}
