package web

import (
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/assessment"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/coach"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/curriculum"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/lessons"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/progress"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/store"
)

// answerPrefix prefixes the form field of each question.
const answerPrefix = "q_"

var funcs = template.FuncMap{
	"percent": func(f float64) int { return int(f*100 + 0.5) },
	"field":   func(id string) string { return answerPrefix + id },
	"add":     func(a, b int) int { return a + b },
}

func (s *Server) render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Configured"] = s.coach.Configured()
	c.HTML(code, name, data)
}

// fail renders an error page. A session for a user that no longer exists
// is dropped.
func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, store.ErrUserNotFound) {
		s.sessions.clear(c)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	s.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	s.render(c, http.StatusInternalServerError, "error.html", gin.H{"Title": "Error", "Error": "Something went wrong. Please try again."})
}

func (s *Server) badRequest(c *gin.Context, msg string) {
	s.render(c, http.StatusBadRequest, "error.html", gin.H{"Title": "Error", "Error": msg})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "ai_configured": s.coach.Configured()})
}

func (s *Server) index(c *gin.Context) {
	if _, ok := s.sessions.user(c); ok {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	s.render(c, http.StatusOK, "index.html", gin.H{"Title": "Welcome"})
}

func (s *Server) login(c *gin.Context) {
	u, err := s.users.Login(c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			s.render(c, http.StatusUnauthorized, "index.html", gin.H{"Title": "Welcome", "Error": "Invalid email or password."})
			return
		}
		s.fail(c, err)
		return
	}
	if err := s.sessions.set(c, u.ID); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (s *Server) register(c *gin.Context) {
	id, err := s.users.Register(c.PostForm("username"), c.PostForm("email"), c.PostForm("password"))
	switch {
	case errors.Is(err, store.ErrEmailTaken), errors.Is(err, store.ErrUsernameTaken):
		s.render(c, http.StatusConflict, "index.html", gin.H{"Title": "Welcome", "Error": capitalize(err.Error()) + "."})
		return
	case err != nil:
		s.render(c, http.StatusBadRequest, "index.html", gin.H{"Title": "Welcome", "Error": capitalize(err.Error()) + "."})
		return
	}
	s.log.Info("user registered", zap.String("user_id", id))
	if err := s.sessions.set(c, id); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/goal")
}

func (s *Server) logout(c *gin.Context) {
	s.sessions.clear(c)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) dashboard(c *gin.Context) {
	uid := currentUser(c)
	u, err := s.users.Get(uid)
	if err != nil {
		s.fail(c, err)
		return
	}
	stats, err := s.coach.Stats(uid)
	if err != nil {
		s.fail(c, err)
		return
	}
	today, err := s.coach.Today(uid)
	if err != nil && !errors.Is(err, store.ErrCurriculumNotFound) {
		s.fail(c, err)
		return
	}

	data := gin.H{
		"Title":     "Dashboard",
		"User":      u,
		"Stats":     stats,
		"Today":     today,
		"Curricula": u.Curricula,
		"ActiveID":  u.ActiveCurriculumID,
	}
	if today != nil {
		data["Fallback"] = today.Fallback
		data["Completion"] = today.Progress.Completion(today.TotalDays)
	}
	s.render(c, http.StatusOK, "dashboard.html", data)
}

func (s *Server) activate(c *gin.Context) {
	s.curriculumAction(c, s.users.SetActive)
}

func (s *Server) archive(c *gin.Context) {
	s.curriculumAction(c, s.users.Archive)
}

func (s *Server) curriculumAction(c *gin.Context, fn func(userID, id string) error) {
	if err := fn(currentUser(c), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrCurriculumNotFound) {
			s.render(c, http.StatusNotFound, "error.html", gin.H{"Title": "Not found", "Error": "Curriculum not found."})
			return
		}
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (s *Server) goalForm(c *gin.Context) {
	s.render(c, http.StatusOK, "goal.html", gin.H{"Title": "New goal", "Weeks": curriculum.DefaultWeeks})
}

func (s *Server) submitGoal(c *gin.Context) {
	goal := strings.TrimSpace(c.PostForm("goal"))
	if goal == "" {
		s.render(c, http.StatusBadRequest, "goal.html", gin.H{"Title": "New goal", "Weeks": curriculum.DefaultWeeks, "Error": "Please describe your goal."})
		return
	}
	in := learning.GoalInput{
		Goal:       goal,
		Weeks:      formInt(c, "weeks", curriculum.DefaultWeeks, 1, 12),
		DailyHours: formFloat(c, "daily_hours", 1),
		Style:      c.PostForm("style"),
	}
	if _, err := s.coach.StartAssessment(c.Request.Context(), currentUser(c), in); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/assessment")
}

func (s *Server) assessmentForm(c *gin.Context) {
	pending, err := s.users.PendingAssessment(currentUser(c))
	if errors.Is(err, store.ErrNoPendingAssessment) {
		c.Redirect(http.StatusSeeOther, "/goal")
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "assessment.html", gin.H{
		"Title":     "Assessment",
		"Goal":      pending.Goal,
		"Questions": pending.Questions,
		"Fallback":  pending.Fallback,
	})
}

func (s *Server) submitAssessment(c *gin.Context) {
	out, err := s.coach.CompleteAssessment(c.Request.Context(), currentUser(c), assessment.Answers(answers(c)))
	if errors.Is(err, store.ErrNoPendingAssessment) {
		c.Redirect(http.StatusSeeOther, "/goal")
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "level.html", gin.H{
		"Title":    "Your level",
		"Outcome":  out,
		"Level":    out.Level,
		"Fallback": out.Curriculum.Fallback,
		"Reason":   out.Curriculum.Reason,
	})
}

func (s *Server) day(c *gin.Context) {
	n, ok := s.dayParam(c)
	if !ok {
		return
	}
	uid := currentUser(c)
	v, err := s.coach.Day(uid, n)
	if errors.Is(err, store.ErrCurriculumNotFound) {
		c.Redirect(http.StatusSeeOther, "/goal")
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	qz, err := s.coach.DayQuiz(c.Request.Context(), uid, v.Day)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "day.html", gin.H{
		"Title":        fmt.Sprintf("Day %d", v.Day),
		"View":         v,
		"Quiz":         qz.Value,
		"QuizFallback": qz.Fallback,
		"Fallback":     v.Fallback || qz.Fallback,
		"Reason":       qz.Reason,
	})
}

func (s *Server) submitQuiz(c *gin.Context) {
	n, ok := s.dayParam(c)
	if !ok {
		return
	}
	out, err := s.coach.SubmitDayQuiz(c.Request.Context(), currentUser(c), n, answers(c))
	if errors.Is(err, coach.ErrNoQuiz) {
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/day/%d", n))
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	fallback := false
	for _, e := range out.Explanations {
		fallback = fallback || e.Fallback
	}
	s.render(c, http.StatusOK, "quiz_result.html", gin.H{
		"Title":    "Quiz result",
		"Outcome":  out,
		"Fallback": fallback,
	})
}

func (s *Server) completeDay(c *gin.Context) {
	n, ok := s.dayParam(c)
	if !ok {
		return
	}
	report := progress.DayReport{
		Day:            n,
		CompletedTasks: formInt(c, "completed_tasks", 3, 0, 3),
		Difficulty:     formInt(c, "difficulty", progress.DefaultDifficulty, 1, 5),
	}
	out, err := s.coach.CompleteDay(c.Request.Context(), currentUser(c), report, formFloat(c, "study_hours", 0))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "evaluation.html", gin.H{
		"Title":   "Day complete",
		"Outcome": out,
	})
}

func (s *Server) explain(c *gin.Context) {
	topic := strings.TrimSpace(c.Query("topic"))
	if topic == "" {
		s.badRequest(c, "A topic is required.")
		return
	}
	t := lessons.Topic{Topic: topic, Level: learning.Beginner}
	if v, err := s.coach.Today(currentUser(c)); err == nil {
		t.Level, t.Goal = v.Level, v.Goal
	}
	res := s.coach.Explain(c.Request.Context(), t)
	s.render(c, http.StatusOK, "explain.html", gin.H{
		"Title":    topic,
		"Topic":    topic,
		"Text":     res.Value,
		"Fallback": res.Fallback,
		"Reason":   res.Reason,
	})
}

func (s *Server) apiProgress(c *gin.Context) {
	uid := currentUser(c)
	stats, err := s.coach.Stats(uid)
	if errors.Is(err, store.ErrUserNotFound) {
		apiError(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err != nil {
		s.log.Error("load stats", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	data := gin.H{"stats": stats}
	if v, err := s.coach.Today(uid); err == nil {
		data["today"] = v
	}
	success(c, data)
}

func (s *Server) dayParam(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("day"))
	if err != nil || n < 1 {
		s.badRequest(c, "Invalid day.")
		return 0, false
	}
	return n, true
}

// answers collects the posted question answers keyed by question id.
func answers(c *gin.Context) map[string]string {
	out := map[string]string{}
	if err := c.Request.ParseForm(); err != nil {
		return out
	}
	for k, v := range c.Request.PostForm {
		if id, ok := strings.CutPrefix(k, answerPrefix); ok && len(v) > 0 {
			out[id] = v[0]
		}
	}
	return out
}

func formInt(c *gin.Context, key string, def, lo, hi int) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.PostForm(key)))
	if err != nil {
		return def
	}
	return min(max(n, lo), hi)
}

func formFloat(c *gin.Context, key string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm(key)), 64)
	if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return def
	}
	return f
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
