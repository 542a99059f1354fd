// Package session persists the authentication cookie that is the sole
// session credential. The cookie survives restarts in a small JSON file so
// a later run can restore the session without talking to the server.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the auth cookie.
const CookieName = "studentAuthToken"

// cookieTTL matches the 1-year expiry the browser deployment sets.
const cookieTTL = 365 * 24 * time.Hour

// CookieStore reads and writes the auth cookie file.
type CookieStore struct {
	path string
}

// NewCookieStore returns a store backed by the file at path.
func NewCookieStore(path string) *CookieStore {
	return &CookieStore{path: path}
}

// Save writes the auth token as a cookie scoped to the whole site with a
// 1-year expiry, overwriting any previous cookie.
func (s *CookieStore) Save(token string) error {
	c := http.Cookie{
		Name:    CookieName,
		Value:   token,
		Path:    "/",
		Expires: time.Now().Add(cookieTTL).UTC(),
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Load returns the stored token. It reports false when no cookie exists or
// the cookie has expired. Read failures are treated as an absent cookie.
func (s *CookieStore) Load() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var c http.Cookie
	if err := json.Unmarshal(data, &c); err != nil {
		return "", false
	}
	if c.Name != CookieName || c.Value == "" {
		return "", false
	}
	if !c.Expires.IsZero() && time.Now().After(c.Expires) {
		return "", false
	}
	return c.Value, true
}

// Clear removes the cookie file. A missing file is not an error.
func (s *CookieStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// TokenExpiry peeks at the token's expiry claim without verifying the
// signature. Token validity is never checked against the server; this is
// display-only information for the status command.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
