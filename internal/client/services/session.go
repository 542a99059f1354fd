// Package services contains the application services sitting between the
// CLI and the Local Store: the session manager, the notice sync engine,
// and the push registration service.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"noticeease/internal/client/api"
	"noticeease/internal/client/models"
	"noticeease/internal/client/repositories/notices"
	"noticeease/internal/client/repositories/students"
	"noticeease/internal/client/session"
	"noticeease/internal/common"
	"noticeease/internal/logging"
)

// SessionManager owns the authentication state: the durable auth cookie,
// the StudentInfo singleton in the Local Store, and the in-memory
// authenticated flag the CLI consults.
//
// Contract:
//   - Login: authenticate, persist cookie + profile, apply the
//     notification policy; a permission failure aborts the login.
//   - Logout: best-effort unsubscribe, clear cookie and Local Store;
//     never fails.
//   - RestoreSession: optimistic — a present cookie yields an
//     authenticated state without any server round-trip.
type SessionManager struct {
	db      *sql.DB
	cookies *session.CookieStore
	api     *api.Client
	push    *PushService
	logger  logging.Logger

	mu            sync.RWMutex
	authenticated bool
	info          *models.StudentInfo
}

// NewSessionManager constructs a SessionManager over the Local Store db.
func NewSessionManager(db *sql.DB, cookies *session.CookieStore, apiClient *api.Client, pushService *PushService, logger logging.Logger) *SessionManager {
	return &SessionManager{db: db, cookies: cookies, api: apiClient, push: pushService, logger: logger}
}

func (m *SessionManager) studentRepo() students.Repository {
	return students.NewSQLiteRepository(m.db)
}

func (m *SessionManager) noticeRepo() notices.Repository {
	return notices.NewSQLiteRepository(m.db)
}

// IsAuthenticated reports the current auth state.
func (m *SessionManager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// StudentInfo returns the profile of the current session, or nil.
func (m *SessionManager) StudentInfo() *models.StudentInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.info
}

// Register creates a new account. Form constraints are checked client-side
// and never reach the network.
func (m *SessionManager) Register(ctx context.Context, form api.RegisterForm) error {
	if form.Username == "" || form.RollNumber == "" || form.Password == "" {
		return fmt.Errorf("%w: username, roll number and password are required", common.ErrValidation)
	}
	if !strings.Contains(form.Email, "@") {
		return fmt.Errorf("%w: invalid email address", common.ErrValidation)
	}
	return m.api.Register(ctx, form)
}

// Login authenticates against the backend, persists the auth cookie with a
// 1-year expiry, fetches and stores the profile, and applies the push
// notification policy. If permission cannot be confirmed the cookie is
// removed again and the login fails.
func (m *SessionManager) Login(ctx context.Context, form api.LoginForm) error {
	if form.Email == "" || form.Password == "" {
		return fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	authToken, err := m.api.Login(ctx, form)
	if err != nil {
		return err
	}

	if err := m.cookies.Save(authToken); err != nil {
		return err
	}

	user, err := m.api.GetUser(ctx, authToken)
	if err != nil {
		return err
	}

	if err := m.push.EnsureRegistration(ctx, user.RollNumber); err != nil {
		_ = m.cookies.Clear()
		return err
	}

	if err := m.studentRepo().Put(ctx, user); err != nil {
		return err
	}

	m.mu.Lock()
	m.authenticated = true
	m.info = user
	m.mu.Unlock()
	return nil
}

// Logout tears the session down. The push unsubscribe is best-effort and
// every cleanup failure is logged and swallowed — logout never fails.
func (m *SessionManager) Logout(ctx context.Context) {
	if token := m.push.CurrentToken(); token != "" {
		if err := m.push.Unsubscribe(ctx, token); err != nil {
			m.logger.Warn(ctx, "push unsubscribe failed on logout", "error", err)
		}
	}

	if err := m.cookies.Clear(); err != nil {
		m.logger.Warn(ctx, "failed to clear auth cookie", "error", err)
	}
	if err := m.studentRepo().Delete(ctx); err != nil {
		m.logger.Warn(ctx, "failed to clear student info", "error", err)
	}
	if err := m.noticeRepo().Clear(ctx); err != nil {
		m.logger.Warn(ctx, "failed to clear cached notices", "error", err)
	}

	m.mu.Lock()
	m.authenticated = false
	m.info = nil
	m.mu.Unlock()
}

// RestoreSession runs once at startup. A present cookie immediately yields
// an authenticated state; the profile is then loaded from the Local Store.
// Token validity is never verified against the server here — a stale
// cookie stays authenticated until a later API call fails.
func (m *SessionManager) RestoreSession(ctx context.Context) {
	if _, ok := m.cookies.Load(); !ok {
		return
	}

	m.mu.Lock()
	m.authenticated = true
	m.mu.Unlock()

	info, err := m.studentRepo().Get(ctx)
	if err != nil {
		// a store fault reads the same as missing profile data
		m.logger.Warn(ctx, "failed to load student info", "error", err)
		return
	}
	if info != nil {
		m.mu.Lock()
		m.info = info
		m.mu.Unlock()
	}
}

// VerifyEmail validates an email-verification token with the backend.
func (m *SessionManager) VerifyEmail(ctx context.Context, token string) error {
	return m.api.VerifyEmail(ctx, token)
}

// TokenExpiry reports the unverified expiry of the stored auth token,
// when it parses as a JWT. Display-only.
func (m *SessionManager) TokenExpiry() (time.Time, bool) {
	token, ok := m.cookies.Load()
	if !ok {
		return time.Time{}, false
	}
	return session.TokenExpiry(token)
}
