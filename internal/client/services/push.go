package services

import (
	"context"
	"fmt"

	"noticeease/internal/client/api"
	"noticeease/internal/common"
	"noticeease/internal/logging"
	"noticeease/internal/push"
)

// PushService handles device-token registration and push-topic
// subscriptions. The provider owns token persistence; this service only
// reads the token back through the provider.
type PushService struct {
	api      *api.Client
	provider push.Provider
	logger   logging.Logger
}

// NewPushService constructs a PushService bound to the given API client
// and messaging provider.
func NewPushService(apiClient *api.Client, provider push.Provider, logger logging.Logger) *PushService {
	return &PushService{api: apiClient, provider: provider, logger: logger}
}

// Register requests a fresh device token from the provider. Failures are
// logged and swallowed; token registration is never fatal outside login.
func (s *PushService) Register(ctx context.Context) {
	if _, err := s.provider.Register(ctx); err != nil {
		s.logger.Warn(ctx, "device token registration failed", "error", err)
	}
}

// Subscribe registers token against the topic for rollNumber.
func (s *PushService) Subscribe(ctx context.Context, token, rollNumber string) error {
	return s.api.Subscribe(ctx, token, rollNumber)
}

// Unsubscribe removes token from its topic.
func (s *PushService) Unsubscribe(ctx context.Context, token string) error {
	return s.api.Unsubscribe(ctx, token)
}

// CurrentToken returns the provider's persisted device token, or "".
func (s *PushService) CurrentToken() string {
	return s.provider.Token()
}

// EnsureRegistration applies the login-time notification policy.
//
// When permission is already granted, the existing token (if any) is
// subscribed to the student's topic. When permission has not been decided,
// it is requested; if the user grants it, a new token is registered but
// NOT subscribed — only the next login subscribes it. Any failure to
// confirm permission blocks the login with common.ErrPermission.
func (s *PushService) EnsureRegistration(ctx context.Context, rollNumber string) error {
	switch s.provider.Permission() {
	case push.PermissionGranted:
		token := s.provider.Token()
		if token == "" {
			return nil
		}
		if err := s.Subscribe(ctx, token, rollNumber); err != nil {
			return fmt.Errorf("%w: %w", common.ErrPermission, err)
		}
		return nil

	default:
		perm, err := s.provider.RequestPermission(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrPermission, err)
		}
		if perm != push.PermissionGranted {
			return common.ErrPermission
		}
		if _, err := s.provider.Register(ctx); err != nil {
			return fmt.Errorf("%w: %w", common.ErrPermission, err)
		}
		return nil
	}
}
