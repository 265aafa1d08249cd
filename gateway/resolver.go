package gateway

import (
	"errors"
	"net/http"
	"strings"

	"meal-market/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// ErrNoSession means the request carried no usable credential. It is not
// a failure: the caller simply is anonymous.
var ErrNoSession = errors.New("no session")

// Resolver obtains the caller's identity and role from a request.
// A (nil, ErrNoSession) result means anonymous; any other error means the
// lookup itself failed and the caller must treat it as anonymous too.
type Resolver interface {
	Resolve(r *http.Request) (*Session, error)
}

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID uint            `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// SessionCookie carries the token for browser navigations; API clients
// send it as a bearer header instead.
const SessionCookie = "session_token"

type jwtResolver struct {
	secret []byte
	db     *gorm.DB
}

// NewJWTResolver builds a Resolver that validates the signed token and
// confirms the account is still active.
func NewJWTResolver(secret []byte, db *gorm.DB) Resolver {
	return &jwtResolver{secret: secret, db: db}
}

func (j *jwtResolver) Resolve(r *http.Request) (*Session, error) {
	tokenStr := tokenFromRequest(r)
	if tokenStr == "" {
		return nil, ErrNoSession
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNoSession
	}

	// A valid token alone is not enough: the account must still exist
	// and be active at the time of the request.
	var user models.User
	if err := j.db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if user.Status != models.UserActive {
		return nil, ErrNoSession
	}

	return &Session{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func tokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}
