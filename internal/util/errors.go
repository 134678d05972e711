package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotTeacher       = errors.New("only teachers can record activities")
	ErrInvalidProofType = errors.New("only PDF files are allowed")
	ErrProofTooLarge    = errors.New("proof file is too large")
	ErrValidation       = errors.New("validation failed")
	ErrUnknownTab       = errors.New("unknown dashboard tab")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidRole      = errors.New("invalid role")
	ErrEmailRegistered  = errors.New("email already registered")
)
