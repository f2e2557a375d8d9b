package store

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrCurriculumNotFound  = errors.New("curriculum not found")
	ErrNoPendingAssessment = errors.New("no pending assessment")
)
