// Package session converts between the server-side session id and the
// client-side cookie. The cookie value is an HS256 token signed with
// SESSION_SECRET and carrying only the opaque session id; all real state
// stays in the session store.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie set on login and sign-up.
const CookieName = "newsreader_session"

// CookieCodec signs and verifies session cookies.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewCookieCodec(secret string, ttl time.Duration) *CookieCodec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CookieCodec{secret: []byte(secret), ttl: ttl}
}

// Encode wraps the session id in a signed token.
func (c *CookieCodec) Encode(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(c.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies the token and returns the session id. Tampered, expired,
// or alg-confused tokens are all rejected.
func (c *CookieCodec) Decode(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", fmt.Errorf("invalid session cookie: %w", err)
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", fmt.Errorf("invalid session cookie: missing session id")
	}
	return sid, nil
}

// NewCookie builds the Set-Cookie value for a freshly encoded token.
func (c *CookieCodec) NewCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie builds a cookie that clears the session cookie on the client.
func (c *CookieCodec) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
