package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meal-market/cart"
	"meal-market/gateway"
	"meal-market/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type anonResolver struct{}

func (anonResolver) Resolve(*http.Request) (*gateway.Session, error) {
	return nil, gateway.ErrNoSession
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(cart.NewStore(), nil, nil, nil)
	r := gin.New()
	r.Use(middleware.Sessions(anonResolver{}), middleware.Gate())
	r.GET("/profile", h.GetProfile)
	r.POST("/logout", h.Logout)
	r.POST("/reset-password", h.ResetPassword)
	return r
}

func TestGetProfile_Anonymous(t *testing.T) {
	// /profile is not role-scoped, so the gateway lets anonymous callers
	// through; the handler itself must answer 401, never crash.
	r := authRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthenticated")
}

func TestLogout_Anonymous(t *testing.T) {
	r := authRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResetPassword(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "accepted",
			body: `{"token":"abc123","new_password":"secret1"}`,
			want: http.StatusAccepted,
		},
		{
			name: "missing token",
			body: `{"new_password":"secret1"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "password too short",
			body: `{"token":"abc123","new_password":"abc"}`,
			want: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := authRouter()
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/reset-password", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
