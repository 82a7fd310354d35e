package util

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the verified identity attached to each request.
type Claims struct {
	UserID string
	Email  string
}

// GenerateToken mints an HS256 token the way the identity provider does.
// Used by the seed tool and tests; the API itself only verifies.
func GenerateToken(userID, email, secret, audience string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"aud":   audience,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies signature, expiry and audience, and extracts identity
// claims. Expiry errors are passed through so callers can report the exact
// reason.
func ParseToken(tokenStr, secret, audience string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithAudience(audience))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenMalformed
	}

	c := &Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		c.UserID = sub
	}
	if email, ok := mapClaims["email"].(string); ok {
		c.Email = email
	}
	return c, nil
}

// ExtractToken pulls the bearer token out of the Authorization header. A
// bare token without the Bearer prefix is accepted too.
func ExtractToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return auth
}
