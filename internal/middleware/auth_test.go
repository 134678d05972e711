package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pfolio_backend/internal/config"
	"pfolio_backend/internal/model"
	"pfolio_backend/internal/util"
)

type fakeSessions map[string]model.User

func (f fakeSessions) Current(id string) (*model.User, bool) {
	u, ok := f[id]
	if !ok {
		return nil, false
	}
	return &u, true
}

const testSecret = "middleware-secret"

func newTestRouter(sessions SessionLookup, roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}

	r := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(cfg, sessions)}
	if len(roles) > 0 {
		handlers = append(handlers, RoleMiddleware(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "name": user.Name, "session": c.GetString(util.ContextSessionKey)})
	})
	r.GET("/protected", handlers...)
	return r
}

func tokenFor(t *testing.T, user model.User, sessionID string) string {
	t.Helper()
	token, _, err := util.GenerateJWT(user, sessionID, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	jane := model.User{ID: "t1", Name: "Jane Doe", Role: model.Teacher}
	sessions := fakeSessions{"sess-1": jane}
	router := newTestRouter(sessions)

	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{name: "no token", want: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "ended session", header: "Bearer " + tokenFor(t, jane, "sess-gone"), want: http.StatusUnauthorized},
		{name: "header", header: "Bearer " + tokenFor(t, jane, "sess-1"), want: http.StatusOK},
		{name: "query", query: tokenFor(t, jane, "sess-1"), want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := "/protected"
			if tt.query != "" {
				url += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAuthMiddleware_UsesSessionIdentity(t *testing.T) {
	stale := model.User{ID: "t1", Name: "Old Name", Role: model.Teacher}
	sessions := fakeSessions{"sess-1": {ID: "t1", Name: "New Name", Role: model.Teacher}}
	router := newTestRouter(sessions)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, stale, "sess-1"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"New Name"`)
	assert.Contains(t, w.Body.String(), `"session":"sess-1"`)
}

func TestRoleMiddleware(t *testing.T) {
	teacher := model.User{ID: "t1", Role: model.Teacher}
	admin := model.User{ID: "a1", Role: model.Admin}
	sessions := fakeSessions{"teacher": teacher, "admin": admin}

	tests := []struct {
		name    string
		allowed model.UserRole
		user    model.User
		session string
		want    int
	}{
		{name: "teacher on teacher route", allowed: model.Teacher, user: teacher, session: "teacher", want: http.StatusOK},
		{name: "admin on teacher route", allowed: model.Teacher, user: admin, session: "admin", want: http.StatusForbidden},
		{name: "teacher on admin route", allowed: model.Admin, user: teacher, session: "teacher", want: http.StatusForbidden},
		{name: "admin on admin route", allowed: model.Admin, user: admin, session: "admin", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(sessions, tt.allowed)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, tt.user, tt.session))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
