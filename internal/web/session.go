package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	cookieName = "coach_session"
	userKey    = "user_id"
)

var errInvalidSession = errors.New("invalid session")

// claims identify the signed-in learner.
type claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// sessions issues and verifies HS256 session tokens.
type sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func newSessions(secret string, ttl time.Duration) *sessions {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &sessions{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *sessions) issue(userID string) (string, error) {
	now := s.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return tok.SignedString(s.secret)
}

func (s *sessions) parse(token string) (string, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(token, &cl, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", err
	}
	if cl.UserID == "" {
		return "", errInvalidSession
	}
	return cl.UserID, nil
}

// token reads the session from the cookie, or from a bearer header for
// API clients.
func (s *sessions) token(c *gin.Context) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func (s *sessions) user(c *gin.Context) (string, bool) {
	tok := s.token(c)
	if tok == "" {
		return "", false
	}
	id, err := s.parse(tok)
	if err != nil {
		return "", false
	}
	return id, true
}

func (s *sessions) set(c *gin.Context, userID string) error {
	tok, err := s.issue(userID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, tok, int(s.ttl.Seconds()), "/", "", false, true)
	return nil
}

func (s *sessions) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
}
