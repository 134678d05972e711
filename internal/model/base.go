package model

import (
	"github.com/google/uuid"
)

// DateFormat is the calendar date layout used by activity dates.
const DateFormat = "2006-01-02"

// NewID returns a fresh opaque identifier. Ids are never reused.
func NewID() string {
	return uuid.New().String()
}
