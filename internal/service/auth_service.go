package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"pfolio_backend/internal/config"
	"pfolio_backend/internal/model"
	"pfolio_backend/internal/repository"
	"pfolio_backend/internal/util"
	"pfolio_backend/pkg/logger"

	"go.uber.org/zap"
)

type Session struct {
	ID        string
	User      model.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionManager tracks the current user of every signed-in client. A
// session exists from Start until End or expiry; there is nothing to
// invalidate beyond this map.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Start opens a session for user. Sessions that have already expired are
// dropped on the way.
func (m *SessionManager) Start(user model.User, ttl time.Duration) *Session {
	now := m.now()
	sess := &Session{
		ID:        model.NewID(),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	m.mu.Lock()
	m.pruneLocked(now)
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess
}

// Prune drops every expired session and returns how many went.
func (m *SessionManager) Prune() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pruneLocked(m.now())
}

func (m *SessionManager) pruneLocked(now time.Time) int {
	n := 0
	for id, sess := range m.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Sweep prunes every interval until ctx is done.
func (m *SessionManager) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Prune(); n > 0 {
				logger.Log.Debug("Expired sessions pruned", zap.Int("count", n))
			}
		}
	}
}

// Current returns the session's user. Expired sessions are dropped.
func (m *SessionManager) Current(sessionID string) (*model.User, bool) {
	m.mu.RLock()
	sess, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !m.now().Before(sess.ExpiresAt) {
		m.End(sessionID)
		return nil, false
	}

	m.mu.RLock()
	user := sess.User
	m.mu.RUnlock()
	return &user, true
}

func (m *SessionManager) End(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return false
	}
	delete(m.sessions, sessionID)
	return true
}

// Refresh replaces the identity of every session belonging to user.ID.
func (m *SessionManager) Refresh(user model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sess := range m.sessions {
		if sess.User.ID == user.ID {
			sess.User = user
		}
	}
}

func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

type AuthService struct {
	Store    *repository.Store
	Sessions *SessionManager
	Cfg      *config.Config
}

func NewAuthService(store *repository.Store, sessions *SessionManager, cfg *config.Config) *AuthService {
	return &AuthService{
		Store:    store,
		Sessions: sessions,
		Cfg:      cfg,
	}
}

type LoginResult struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      model.User `json:"user"`
}

// Login accepts any email/password pair. A known email resumes that user;
// an unknown one gets a synthesised identity with the given role (TEACHER
// when empty), which is added to the store.
//
// TODO: replace with a credential-verifying identity provider before this
// runs anywhere but a demo.
func (s *AuthService) Login(email, password string, role model.UserRole) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if role == "" {
		role = model.Teacher
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", util.ErrInvalidRole, role)
	}

	user, _ := s.findOrSynthesise(email, role)
	return s.startSession(user)
}

// Register is Login for an email that must not exist yet, so the requested
// role always sticks.
func (s *AuthService) Register(email, password string, role model.UserRole) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", util.ErrInvalidRole, role)
	}

	user, created := s.findOrSynthesise(email, role)
	if !created {
		return nil, fmt.Errorf("%w: %s", util.ErrEmailRegistered, email)
	}
	return s.startSession(user)
}

func (s *AuthService) findOrSynthesise(email string, role model.UserRole) (model.User, bool) {
	user, created := s.Store.FindOrAddUserByEmail(email, func() model.User {
		return model.User{
			ID:    model.NewID(),
			Email: email,
			Name:  model.NameFromEmail(email),
			Role:  role,
		}
	})
	if created {
		logger.Log.Info("Identity synthesised",
			zap.String("user_id", user.ID),
			zap.String("role", string(user.Role)),
		)
	}
	return user, created
}

func (s *AuthService) startSession(user model.User) (*LoginResult, error) {
	sess := s.Sessions.Start(user, s.Cfg.JWT.ExpireTime)
	token, expiresAt, err := util.GenerateJWT(user, sess.ID, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		s.Sessions.End(sess.ID)
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) Logout(sessionID string) error {
	if !s.Sessions.End(sessionID) {
		return util.ErrSessionNotFound
	}
	return nil
}
