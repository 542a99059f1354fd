package push

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"noticeease/internal/common"

	"github.com/google/uuid"
)

// PromptFunc asks the user to grant notification permission. It is only
// consulted while the stored state is "default".
type PromptFunc func() (bool, error)

// tokenState is the provider-owned persisted registration state.
type tokenState struct {
	Token          string `json:"token"`
	InstallationID string `json:"installationId"`
}

// HTTPProvider implements Provider against the provider's HTTP endpoints:
// POST {base}/token issues a device token for a VAPID key and installation
// id, GET {base}/stream?token= delivers payloads as server-sent events.
type HTTPProvider struct {
	baseURL  string
	vapidKey string
	dir      string
	httpc    *http.Client
	prompt   PromptFunc
}

// NewHTTPProvider returns a provider that keeps its token and permission
// state under dir. prompt may be nil; permission then stays "default".
func NewHTTPProvider(baseURL, vapidKey, dir string, prompt PromptFunc) *HTTPProvider {
	return &HTTPProvider{
		baseURL:  baseURL,
		vapidKey: vapidKey,
		dir:      dir,
		httpc:    &http.Client{},
		prompt:   prompt,
	}
}

func (p *HTTPProvider) tokenPath() string      { return filepath.Join(p.dir, "token.json") }
func (p *HTTPProvider) permissionPath() string { return filepath.Join(p.dir, "permission") }

// Permission returns the persisted permission state.
func (p *HTTPProvider) Permission() Permission {
	data, err := os.ReadFile(p.permissionPath())
	if err != nil {
		return PermissionDefault
	}
	switch Permission(strings.TrimSpace(string(data))) {
	case PermissionGranted:
		return PermissionGranted
	case PermissionDenied:
		return PermissionDenied
	default:
		return PermissionDefault
	}
}

// RequestPermission prompts the user when the state is still "default" and
// persists the answer.
func (p *HTTPProvider) RequestPermission(ctx context.Context) (Permission, error) {
	if perm := p.Permission(); perm != PermissionDefault {
		return perm, nil
	}
	if p.prompt == nil {
		return PermissionDefault, nil
	}

	granted, err := p.prompt()
	if err != nil {
		return PermissionDefault, err
	}
	perm := PermissionDenied
	if granted {
		perm = PermissionGranted
	}
	if err := p.writePermission(perm); err != nil {
		return PermissionDefault, err
	}
	return perm, nil
}

func (p *HTTPProvider) writePermission(perm Permission) error {
	if err := os.MkdirAll(p.dir, 0o770); err != nil {
		return err
	}
	return os.WriteFile(p.permissionPath(), []byte(perm), 0o600)
}

// Token returns the persisted device token, or "" when none was issued.
func (p *HTTPProvider) Token() string {
	state, err := p.readState()
	if err != nil {
		return ""
	}
	return state.Token
}

func (p *HTTPProvider) readState() (*tokenState, error) {
	data, err := os.ReadFile(p.tokenPath())
	if err != nil {
		return nil, err
	}
	state := &tokenState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Register requests a token for this installation and persists it.
func (p *HTTPProvider) Register(ctx context.Context) (string, error) {
	state, err := p.readState()
	if err != nil {
		state = &tokenState{InstallationID: uuid.NewString()}
	}

	payload, err := json.Marshal(map[string]string{
		"vapidKey":       p.vapidKey,
		"installationId": state.InstallationID,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/token", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %s", common.ErrNetwork, resp.Status)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decoding token response: %w", common.ErrNetwork, err)
	}

	state.Token = out.Token
	if err := p.writeState(state); err != nil {
		return "", err
	}
	return state.Token, nil
}

func (p *HTTPProvider) writeState(state *tokenState) error {
	if err := os.MkdirAll(p.dir, 0o770); err != nil {
		return err
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(p.tokenPath(), data, 0o600)
}

// Listen consumes the server-sent event stream for the current token.
// Lines of the form "event: <type>" switch the type of the next payload;
// "data: <json>" completes an event. The default event type is "message".
func (p *HTTPProvider) Listen(ctx context.Context, events chan<- Event) error {
	token := p.Token()
	if token == "" {
		return fmt.Errorf("no device token registered")
	}

	u := p.baseURL + "/stream?token=" + url.QueryEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %s", common.ErrNetwork, resp.Status)
	}

	eventType := EventMessage
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			eventType = EventMessage
		case strings.HasPrefix(line, "event:"):
			if t := strings.TrimSpace(strings.TrimPrefix(line, "event:")); t != "" {
				eventType = EventType(t)
			}
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			ev := Event{Type: eventType}
			if eventType == EventMessage {
				msg := &Message{}
				if err := json.Unmarshal([]byte(data), msg); err != nil {
					continue
				}
				ev.Message = msg
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrNetwork, err)
	}
	return nil
}
