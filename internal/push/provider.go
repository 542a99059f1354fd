// Package push wraps the device-messaging provider: VAPID-keyed token
// issuance, notification-permission state, and the background message
// stream the worker consumes.
//
// The provider owns its token persistence. The rest of the client treats
// that state as read-only and reaches it only through this package.
package push

import "context"

// Permission is the three-valued notification permission state.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// Message is the background push payload shape delivered by the provider.
type Message struct {
	Notification struct {
		Title string `json:"title"`
	} `json:"notification"`
	FCMOptions struct {
		Link string `json:"link"`
	} `json:"fcmOptions"`
}

// EventType discriminates events on the provider stream.
type EventType string

const (
	// EventMessage carries a push payload.
	EventMessage EventType = "message"
	// EventRotation signals that the device token was invalidated and a
	// new one must be requested.
	EventRotation EventType = "rotation"
)

// Event is a single occurrence on the provider stream.
type Event struct {
	Type    EventType
	Message *Message
}

// Provider is the device-messaging provider contract.
type Provider interface {
	// Permission returns the current notification permission state.
	Permission() Permission

	// RequestPermission asks the user for notification permission and
	// returns the resulting state. Once granted or denied, the answer is
	// durable and returned directly on later calls.
	RequestPermission(ctx context.Context) (Permission, error)

	// Token returns the current device token, or "" when none was issued.
	Token() string

	// Register requests a fresh token from the provider using the VAPID
	// public key and persists it, replacing any previous token.
	Register(ctx context.Context) (string, error)

	// Listen consumes the provider's event stream, sending each event on
	// events until the stream ends or ctx is cancelled.
	Listen(ctx context.Context, events chan<- Event) error
}
