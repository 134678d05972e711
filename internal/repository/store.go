package repository

import (
	"slices"
	"sync"

	"pfolio_backend/internal/model"
)

type record interface {
	RecordID() string
}

type owned interface {
	OwnerID() string
}

// ScopeToTeacher keeps the records owned by teacherID, preserving order.
func ScopeToTeacher[T owned](items []T, teacherID string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.OwnerID() == teacherID {
			out = append(out, item)
		}
	}
	return out
}

func indexByID[T record](items []T, id string) int {
	return slices.IndexFunc(items, func(item T) bool { return item.RecordID() == id })
}

// replaceByID swaps every element sharing item's id in place, matching
// removeByID. It reports whether anything was replaced.
func replaceByID[T record](items []T, item T) bool {
	id := item.RecordID()
	replaced := false
	for i := range items {
		if items[i].RecordID() == id {
			items[i] = item
			replaced = true
		}
	}
	return replaced
}

func removeByID[T record](items []T, id string) []T {
	return slices.DeleteFunc(items, func(item T) bool { return item.RecordID() == id })
}

// Counts is a snapshot of collection sizes.
type Counts struct {
	Users     int `json:"users"`
	Teachers  int `json:"teachers"`
	Practices int `json:"practices"`
	Seminars  int `json:"seminars"`
}

// Store holds users, practices and seminars in memory for the lifetime of
// the process. It is the only mutation surface for those collections.
//
// Ids are caller-generated; Add does not detect collisions. Update and
// Delete act on every record with the id, and are silent no-ops when
// there is none.
type Store struct {
	mu        sync.RWMutex
	users     []model.User
	practices []model.Practice
	seminars  []model.Seminar

	userHooks []func(model.User)
}

func NewStore() *Store {
	return &Store{}
}

// OnUserUpdate registers fn to run after UpdateUser replaced a user.
func (s *Store) OnUserUpdate(fn func(model.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userHooks = append(s.userHooks, fn)
}

func (s *Store) AddUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

func (s *Store) UpdateUser(u model.User) {
	s.mu.Lock()
	replaced := replaceByID(s.users, u)
	hooks := slices.Clone(s.userHooks)
	s.mu.Unlock()

	if !replaced {
		return
	}
	for _, fn := range hooks {
		fn(u)
	}
}

func (s *Store) FindUser(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexByID(s.users, id); i >= 0 {
		return s.users[i], true
	}
	return model.User{}, false
}

func (s *Store) FindUserByEmail(email string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return model.User{}, false
}

// FindOrAddUserByEmail returns the user with email, appending create()
// under the same lock when there is none. created reports the latter.
func (s *Store) FindOrAddUserByEmail(email string, create func() model.User) (u model.User, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == email {
			return existing, false
		}
	}
	u = create()
	s.users = append(s.users, u)
	return u, true
}

func (s *Store) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

func (s *Store) Teachers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		if u.IsTeacher() {
			out = append(out, u)
		}
	}
	return out
}

func (s *Store) AddPractice(p model.Practice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.practices = append(s.practices, p)
}

func (s *Store) UpdatePractice(p model.Practice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaceByID(s.practices, p)
}

func (s *Store) DeletePractice(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.practices = removeByID(s.practices, id)
}

func (s *Store) FindPractice(id string) (model.Practice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexByID(s.practices, id); i >= 0 {
		return s.practices[i], true
	}
	return model.Practice{}, false
}

func (s *Store) Practices() []model.Practice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.practices)
}

func (s *Store) PracticesByTeacher(teacherID string) []model.Practice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ScopeToTeacher(s.practices, teacherID)
}

func (s *Store) AddSeminar(sem model.Seminar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seminars = append(s.seminars, sem)
}

func (s *Store) UpdateSeminar(sem model.Seminar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaceByID(s.seminars, sem)
}

func (s *Store) DeleteSeminar(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seminars = removeByID(s.seminars, id)
}

func (s *Store) FindSeminar(id string) (model.Seminar, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexByID(s.seminars, id); i >= 0 {
		return s.seminars[i], true
	}
	return model.Seminar{}, false
}

func (s *Store) Seminars() []model.Seminar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.seminars)
}

func (s *Store) SeminarsByTeacher(teacherID string) []model.Seminar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ScopeToTeacher(s.seminars, teacherID)
}

func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := Counts{
		Users:     len(s.users),
		Practices: len(s.practices),
		Seminars:  len(s.seminars),
	}
	for _, u := range s.users {
		if u.IsTeacher() {
			c.Teachers++
		}
	}
	return c
}
