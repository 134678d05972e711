package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jane@edu.com", "Jane"},
		{"john.smith@school.org", "John.smith"},
		{"x@y", "X"},
		{"noatsign", "Noatsign"},
		{"@edu.com", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, NameFromEmail(tt.email))
		})
	}
}

func TestUserRole_Valid(t *testing.T) {
	assert.True(t, Teacher.Valid())
	assert.True(t, Admin.Valid())
	assert.False(t, UserRole("student").Valid())
	assert.False(t, UserRole("").Valid())
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
