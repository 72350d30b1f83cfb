// Package session issues and verifies the two signed cookies that carry a
// visitor's place in a competition between requests: a competition-scope
// token set after code validation and a participant-scope token set after a
// successful identity check. The tokens are opaque to the client; nothing in
// them is trusted beyond the signed id they name.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Scope string

const (
	ScopeCompetition Scope = "competition"
	ScopeParticipant Scope = "participant"
)

const (
	CookieCompetition = "competition_session"
	CookieParticipant = "participant_session"

	// TokenTTL matches the multi-day expiry of the original cookies, so a
	// participant can come back for released scores days later.
	TokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid session token")

type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

type claims struct {
	Scope Scope `json:"scope"`
	RefID uint  `json:"ref_id"`
	jwt.RegisteredClaims
}

// Issue signs a token binding a scope to an id.
func (m *Manager) Issue(scope Scope, refID uint) (string, error) {
	now := time.Now()
	c := claims{
		Scope: scope,
		RefID: refID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(m.secret)
}

// Parse verifies a token and returns the id it names. The scope must match;
// a participant token never stands in for a competition token or vice versa.
func (m *Manager) Parse(tokenString string, scope Scope) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	c, ok := token.Claims.(*claims)
	if !ok || c.Scope != scope || c.RefID == 0 {
		return 0, ErrInvalidToken
	}
	return c.RefID, nil
}

// SetCookie writes a session cookie with the shared expiry.
func SetCookie(c *gin.Context, name, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, token, int(TokenTTL.Seconds()), "/", "", false, true)
}
