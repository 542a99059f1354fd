package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *CookieStore {
	t.Helper()
	return NewCookieStore(filepath.Join(t.TempDir(), "cookie.json"))
}

func TestSaveAndLoad(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Save("tok123"))

	got, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, "tok123", got)
}

func TestSave_SetsPathAndYearExpiry(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save("tok123"))

	data, err := os.ReadFile(s.path)
	require.NoError(t, err)

	var c http.Cookie
	require.NoError(t, json.Unmarshal(data, &c))
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "/", c.Path)

	wantExpiry := time.Now().Add(cookieTTL)
	assert.WithinDuration(t, wantExpiry, c.Expires, time.Hour)
}

func TestLoad_MissingFile(t *testing.T) {
	s := newStore(t)

	_, ok := s.Load()
	assert.False(t, ok)
}

func TestLoad_ExpiredCookie(t *testing.T) {
	s := newStore(t)

	c := http.Cookie{Name: CookieName, Value: "old", Path: "/", Expires: time.Now().Add(-time.Hour)}
	data, err := json.Marshal(c)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.path, data, 0o600))

	_, ok := s.Load()
	assert.False(t, ok)
}

func TestClear_RemovesCookieAndIsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save("tok123"))

	require.NoError(t, s.Clear())
	_, ok := s.Load()
	assert.False(t, ok)

	require.NoError(t, s.Clear())
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(24 * time.Hour).Unix()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{"exp": exp})
	require.NoError(t, err)
	token := header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"

	got, ok := TokenExpiry(token)
	require.True(t, ok)
	assert.Equal(t, exp, got.Unix())

	_, ok = TokenExpiry("not-a-jwt")
	assert.False(t, ok)
}
