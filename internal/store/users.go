package store

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
)

// Curriculum record status values.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusArchived = "archived"
)

// User is one registered learner.
type User struct {
	ID                 string             `json:"user_id"`
	Username           string             `json:"username"`
	Email              string             `json:"email"`
	PasswordHash       string             `json:"password_hash"`
	CreatedAt          time.Time          `json:"created_at"`
	LastLogin          *time.Time         `json:"last_login,omitempty"`
	DailyHours         float64            `json:"daily_time_preference"`
	LearningStyle      string             `json:"learning_style"`
	Curricula          []CurriculumRecord `json:"curriculums"`
	ActiveCurriculumID string             `json:"active_curriculum_id,omitempty"`
	PendingAssessment  *PendingAssessment `json:"pending_assessment,omitempty"`
}

// CurriculumRecord is one curriculum with its progress. A user may hold
// several; at most one is active.
type CurriculumRecord struct {
	ID         string                `json:"id"`
	Curriculum learning.Curriculum   `json:"curriculum"`
	GoalInput  learning.GoalInput    `json:"goal_input"`
	Level      *learning.LevelResult `json:"user_level,omitempty"`
	Progress   learning.Progress     `json:"progress"`
	Status     string                `json:"status"`
	CreatedAt  time.Time             `json:"created_at"`
	ArchivedAt *time.Time            `json:"archived_at,omitempty"`
}

// CurrentLesson returns the lesson at the progress pointer, clamped to the
// curriculum's range.
func (r CurriculumRecord) CurrentLesson() (learning.DailyLesson, bool) {
	return r.Curriculum.Lesson(r.Progress.CurrentDay)
}

// PendingAssessment is a placement battery waiting for answers.
type PendingAssessment struct {
	Goal      learning.GoalInput            `json:"goal"`
	Questions []learning.AssessmentQuestion `json:"questions"`
	Fallback  bool                          `json:"fallback"`
	CreatedAt time.Time                     `json:"created_at"`
}

// UserStats summarizes a user's activity on the active curriculum.
type UserStats struct {
	CompletedDays    int     `json:"completed_days"`
	TotalDays        int     `json:"total_days"`
	CurrentDay       int     `json:"current_day"`
	TotalHours       float64 `json:"total_hours"`
	AverageQuizScore float64 `json:"average_quiz_score"`
	QuizCount        int     `json:"quiz_count"`
	Curricula        int     `json:"curricula"`
}

// ProgressUpdate is one completed study session.
type ProgressUpdate struct {
	Day int
	// Completed marks Day as done. A quiz submission alone leaves it open.
	Completed  bool
	StudyHours float64
	QuizScore  *int
	LessonID   string
}

type usersDoc struct {
	Users map[string]*User `json:"users"`
}

// UserStore keeps users and their curricula in users.json.
type UserStore struct {
	doc *jsonDoc[usersDoc]
	now func() time.Time
}

// NewUserStore opens or initializes the users document at path.
func NewUserStore(path string) (*UserStore, error) {
	doc, err := newJSONDoc(path, func() usersDoc {
		return usersDoc{Users: map[string]*User{}}
	})
	if err != nil {
		return nil, err
	}
	return &UserStore{doc: doc, now: time.Now}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and returns its id.
func (s *UserStore) Register(username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return "", errors.New("username, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	var id string
	err = s.doc.update(func(d *usersDoc) error {
		for _, u := range d.Users {
			if u.Email == email {
				return ErrEmailTaken
			}
			if strings.EqualFold(u.Username, username) {
				return ErrUsernameTaken
			}
		}
		id = "user_" + uuid.NewString()
		d.Users[id] = &User{
			ID:            id,
			Username:      username,
			Email:         email,
			PasswordHash:  string(hash),
			CreatedAt:     s.now().UTC(),
			DailyHours:    1.0,
			LearningStyle: "balanced",
			Curricula:     []CurriculumRecord{},
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Login checks credentials and stamps the login time.
func (s *UserStore) Login(email, password string) (*User, error) {
	email = normalizeEmail(email)
	var out *User
	err := s.doc.update(func(d *usersDoc) error {
		for _, u := range d.Users {
			if u.Email != email {
				continue
			}
			if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
				return ErrInvalidCredentials
			}
			now := s.now().UTC()
			u.LastLogin = &now
			out = u
			return nil
		}
		return ErrInvalidCredentials
	})
	return out, err
}

// Get returns a user by id.
func (s *UserStore) Get(id string) (*User, error) {
	var out *User
	err := s.doc.view(func(d *usersDoc) error {
		u, ok := d.Users[id]
		if !ok {
			return ErrUserNotFound
		}
		out = u
		return nil
	})
	return out, err
}

// FindByEmail returns the user registered with email.
func (s *UserStore) FindByEmail(email string) (*User, error) {
	email = normalizeEmail(email)
	var out *User
	err := s.doc.view(func(d *usersDoc) error {
		for _, id := range slices.Sorted(maps.Keys(d.Users)) {
			if d.Users[id].Email == email {
				out = d.Users[id]
				return nil
			}
		}
		return ErrUserNotFound
	})
	return out, err
}

// Update replaces the stored user record.
func (s *UserStore) Update(u *User) error {
	return s.doc.update(func(d *usersDoc) error {
		if _, ok := d.Users[u.ID]; !ok {
			return ErrUserNotFound
		}
		d.Users[u.ID] = u
		return nil
	})
}

// withUser applies fn to the stored user and persists the result.
func (s *UserStore) withUser(userID string, fn func(*User) error) error {
	return s.doc.update(func(d *usersDoc) error {
		u, ok := d.Users[userID]
		if !ok {
			return ErrUserNotFound
		}
		return fn(u)
	})
}

func (u *User) curriculum(id string) (*CurriculumRecord, bool) {
	if id == "" {
		id = u.ActiveCurriculumID
	}
	if id == "" {
		return nil, false
	}
	for i := range u.Curricula {
		if u.Curricula[i].ID == id {
			return &u.Curricula[i], true
		}
	}
	return nil, false
}

// SaveCurriculum stores a new curriculum, makes it active and returns its id.
// startDay is clamped to the curriculum's range.
func (s *UserStore) SaveCurriculum(userID string, c learning.Curriculum, goal learning.GoalInput, level *learning.LevelResult, startDay int) (string, error) {
	id := "curr_" + uuid.NewString()
	err := s.withUser(userID, func(u *User) error {
		for i := range u.Curricula {
			if u.Curricula[i].Status == StatusActive {
				u.Curricula[i].Status = StatusInactive
			}
		}
		day := c.ClampDay(startDay)
		if day == 0 {
			day = 1
		}
		u.Curricula = append(u.Curricula, CurriculumRecord{
			ID:         id,
			Curriculum: c,
			GoalInput:  goal,
			Level:      level,
			Progress:   learning.NewProgress(day),
			Status:     StatusActive,
			CreatedAt:  s.now().UTC(),
		})
		u.ActiveCurriculumID = id
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// LoadCurriculum returns the curriculum with id, or the active one when id
// is empty.
func (s *UserStore) LoadCurriculum(userID, id string) (*CurriculumRecord, error) {
	var out *CurriculumRecord
	err := s.doc.view(func(d *usersDoc) error {
		u, ok := d.Users[userID]
		if !ok {
			return ErrUserNotFound
		}
		rec, ok := u.curriculum(id)
		if !ok {
			return ErrCurriculumNotFound
		}
		out = rec
		return nil
	})
	return out, err
}

// Curricula lists all of a user's curricula in creation order.
func (s *UserStore) Curricula(userID string) ([]CurriculumRecord, error) {
	u, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	return u.Curricula, nil
}

// SetActive makes curriculum id the active one, reactivating it if archived.
func (s *UserStore) SetActive(userID, id string) error {
	return s.withUser(userID, func(u *User) error {
		target, ok := u.curriculum(id)
		if !ok {
			return ErrCurriculumNotFound
		}
		for i := range u.Curricula {
			if u.Curricula[i].Status == StatusActive {
				u.Curricula[i].Status = StatusInactive
			}
		}
		target.Status = StatusActive
		target.ArchivedAt = nil
		u.ActiveCurriculumID = id
		return nil
	})
}

// Archive marks curriculum id archived. Archiving the active curriculum
// leaves the user without one.
func (s *UserStore) Archive(userID, id string) error {
	return s.withUser(userID, func(u *User) error {
		rec, ok := u.curriculum(id)
		if !ok {
			return ErrCurriculumNotFound
		}
		now := s.now().UTC()
		rec.Status = StatusArchived
		rec.ArchivedAt = &now
		if u.ActiveCurriculumID == rec.ID {
			u.ActiveCurriculumID = ""
		}
		return nil
	})
}

// UpdateProgress overwrites the active curriculum's progress record.
func (s *UserStore) UpdateProgress(userID string, p learning.Progress) error {
	return s.withUser(userID, func(u *User) error {
		rec, ok := u.curriculum("")
		if !ok {
			return ErrCurriculumNotFound
		}
		rec.Progress = p
		return nil
	})
}

// RecordProgress applies one study session to the active curriculum and
// returns the resulting progress.
func (s *UserStore) RecordProgress(userID string, upd ProgressUpdate) (learning.Progress, error) {
	var out learning.Progress
	err := s.withUser(userID, func(u *User) error {
		rec, ok := u.curriculum("")
		if !ok {
			return ErrCurriculumNotFound
		}
		p := &rec.Progress
		if upd.Completed && upd.Day > 0 {
			p.MarkCompleted(upd.Day)
		}
		if upd.StudyHours > 0 {
			p.TotalStudyHours += upd.StudyHours
		}
		if upd.QuizScore != nil {
			p.SetQuizScore(upd.Day, *upd.QuizScore)
			p.QuizHistory = append(p.QuizHistory, learning.QuizScore{
				Day:      upd.Day,
				LessonID: upd.LessonID,
				Score:    *upd.QuizScore,
				Date:     s.now().UTC(),
			})
		}
		out = *p
		return nil
	})
	return out, err
}

// AdvanceDay moves the active curriculum's pointer forward, stopping at
// the last lesson.
func (s *UserStore) AdvanceDay(userID string) (int, error) {
	var day int
	err := s.withUser(userID, func(u *User) error {
		rec, ok := u.curriculum("")
		if !ok {
			return ErrCurriculumNotFound
		}
		next := rec.Curriculum.ClampDay(rec.Progress.CurrentDay + 1)
		if next == 0 {
			next = rec.Progress.CurrentDay
		}
		rec.Progress.CurrentDay = next
		day = next
		return nil
	})
	return day, err
}

// SaveDayQuiz stores a quiz generated at delivery time on the lesson for day.
func (s *UserStore) SaveDayQuiz(userID string, day int, quiz []learning.QuizQuestion) error {
	return s.withUser(userID, func(u *User) error {
		rec, ok := u.curriculum("")
		if !ok {
			return ErrCurriculumNotFound
		}
		d := rec.Curriculum.ClampDay(day)
		if d == 0 {
			return ErrCurriculumNotFound
		}
		rec.Curriculum.DailyLessons[d-1].Quiz = quiz
		return nil
	})
}

// SetPendingAssessment stores a battery waiting for answers.
func (s *UserStore) SetPendingAssessment(userID string, p *PendingAssessment) error {
	return s.withUser(userID, func(u *User) error {
		if p != nil && p.CreatedAt.IsZero() {
			p.CreatedAt = s.now().UTC()
		}
		u.PendingAssessment = p
		return nil
	})
}

// PendingAssessment returns the stored battery.
func (s *UserStore) PendingAssessment(userID string) (*PendingAssessment, error) {
	u, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if u.PendingAssessment == nil {
		return nil, ErrNoPendingAssessment
	}
	return u.PendingAssessment, nil
}

// Stats summarizes the active curriculum. A user without one gets zeroes
// apart from the curriculum count.
func (s *UserStore) Stats(userID string) (UserStats, error) {
	u, err := s.Get(userID)
	if err != nil {
		return UserStats{}, err
	}
	st := UserStats{Curricula: len(u.Curricula)}
	rec, ok := u.curriculum("")
	if !ok {
		return st, nil
	}
	p := rec.Progress
	st.CompletedDays = len(p.CompletedDays)
	st.TotalDays = len(rec.Curriculum.DailyLessons)
	st.CurrentDay = rec.Curriculum.ClampDay(p.CurrentDay)
	st.TotalHours = roundTo(p.TotalStudyHours, 1)
	st.AverageQuizScore = roundTo(p.AverageQuizScore(), 1)
	st.QuizCount = len(p.QuizHistory)
	return st, nil
}
