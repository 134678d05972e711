package model

import "strings"

type UserRole string

const (
	Teacher UserRole = "TEACHER"
	Admin   UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	return r == Teacher || r == Admin
}

// swagger:model User
type User struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	Role           UserRole `json:"role"`
	Contact        string   `json:"contact,omitempty"`
	Qualifications string   `json:"qualifications,omitempty"`
}

func (u User) RecordID() string { return u.ID }

func (u User) IsTeacher() bool { return u.Role == Teacher }

func (u User) IsAdmin() bool { return u.Role == Admin }

// NameFromEmail derives a display name from the local part of an email
// address, capitalising its first letter: "jane@edu.com" -> "Jane".
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return ""
	}
	return strings.ToUpper(local[:1]) + local[1:]
}
