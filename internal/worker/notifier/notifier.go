// Package notifier turns provider push events into operating-system
// notifications and keeps the device token alive across rotations.
package notifier

import (
	"context"
	"errors"
	"os/exec"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/router"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"

	"noticeease/internal/logging"
	"noticeease/internal/push"
)

// notice icon shipped with the app build
const iconPath = "/android-chrome-192x192.png"

// Sender delivers one rendered notification.
type Sender interface {
	Send(title, body, link string) error
}

// ShoutrrrSender delivers notifications through a shoutrrr service URL
// (ntfy, gotify, telegram and so on).
type ShoutrrrSender struct {
	router *router.ServiceRouter
}

// NewShoutrrrSender builds a sender for the given shoutrrr URL.
func NewShoutrrrSender(rawURL string) (*ShoutrrrSender, error) {
	r, err := shoutrrr.CreateSender(rawURL)
	if err != nil {
		return nil, err
	}
	return &ShoutrrrSender{router: r}, nil
}

// Send delivers body under title. The link is appended so the target
// service can render it as a click-through.
func (s *ShoutrrrSender) Send(title, body, link string) error {
	message := body
	if link != "" {
		message += "\n" + link
	}
	return errors.Join(s.router.Send(message, &types.Params{"title": title})...)
}

// openLink is a test seam for opening the notification click target.
var openLink = func(link string) error {
	return exec.Command("xdg-open", link).Start()
}

// Handler consumes provider events.
type Handler struct {
	sender   Sender
	provider push.Provider
	logger   logging.Logger
}

// NewHandler wires a Handler to its sender and provider.
func NewHandler(sender Sender, provider push.Provider, logger logging.Logger) *Handler {
	return &Handler{sender: sender, provider: provider, logger: logger}
}

// HandleEvent dispatches one provider event.
func (h *Handler) HandleEvent(ctx context.Context, ev push.Event) {
	switch ev.Type {
	case push.EventMessage:
		if ev.Message == nil {
			h.logger.Warn(ctx, "message event without payload")
			return
		}
		h.handleMessage(ctx, ev.Message)
	case push.EventRotation:
		h.handleRotation(ctx)
	default:
		h.logger.Warn(ctx, "unknown event type", "type", ev.Type)
	}
}

// handleMessage renders the payload as an OS notification. The body
// repeats the title and the click target comes from fcmOptions.link;
// both follow the payload contract, the icon is the app launcher icon.
func (h *Handler) handleMessage(ctx context.Context, msg *push.Message) {
	title := msg.Notification.Title
	link := msg.FCMOptions.Link

	if err := h.sender.Send(title, title, link); err != nil {
		h.logger.Error(ctx, "notification delivery failed", "title", title, "error", err)
		return
	}
	h.logger.Info(ctx, "notification delivered", "title", title, "icon", iconPath)
}

// handleRotation requests a replacement device token. The new token is
// only subscribed to the student's topic on the next login; the worker
// does not know the roll number.
func (h *Handler) handleRotation(ctx context.Context) {
	token, err := h.provider.Register(ctx)
	if err != nil {
		h.logger.Error(ctx, "token rotation failed", "error", err)
		return
	}
	h.logger.Info(ctx, "device token rotated", "token", token)
}

// HandleClick opens the link a delivered notification pointed at.
func (h *Handler) HandleClick(ctx context.Context, link string) {
	if link == "" {
		return
	}
	if err := openLink(link); err != nil {
		h.logger.Error(ctx, "failed to open notification link", "link", link, "error", err)
	}
}
