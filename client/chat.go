package client

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/api"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/types"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/persona"
)

// SendMessage posts one chat turn for the persona. sessionID is empty on
// the first turn; the reply carries the backend-assigned session id to
// thread through subsequent turns. Failures are not retried here; the
// conversation layer shows its fallback message instead.
func (c *Client) SendMessage(ctx context.Context, personaID persona.ID, text, sessionID string) (*ChatReply, error) {
	reply, err := api.SendMessage(ctx, c.http, c.baseURL, types.SendMessageRequest{
		Message:     text,
		CharacterID: string(personaID),
		SessionID:   sessionID,
	})
	if err != nil {
		logIfRateLimited("send_message", err)
		return nil, observe("send_message", err)
	}
	return reply, observe("send_message", nil)
}

// SwitchPersona switches the active persona server-side and returns the
// fresh introduction message for it.
func (c *Client) SwitchPersona(ctx context.Context, personaID persona.ID, resetConversation bool) (*SwitchResult, error) {
	res, err := api.SwitchCharacter(ctx, c.http, c.baseURL, types.SwitchCharacterRequest{
		NewCharacter:      string(personaID),
		ResetConversation: resetConversation,
	})
	if err != nil {
		logIfRateLimited("switch_persona", err)
		return nil, observe("switch_persona", err)
	}
	return res, observe("switch_persona", nil)
}

// ListCharacters returns the persona descriptors the backend serves.
func (c *Client) ListCharacters(ctx context.Context) ([]Character, error) {
	chars, err := api.ListCharacters(ctx, c.http, c.baseURL)
	if err != nil {
		return nil, observe("list_characters", err)
	}
	return chars, observe("list_characters", nil)
}

// EndSession tells the backend a conversation is over. Best-effort: it
// retries transient failures briefly and swallows whatever remains.
func (c *Client) EndSession(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	op := func() error {
		err := api.EndSession(ctx, c.http, c.baseURL, types.EndSessionRequest{SessionID: sessionID})
		if err != nil && !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(200*time.Millisecond),
		backoff.WithMaxInterval(2*time.Second),
	), 2), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		log.Debug().Err(err).Str("session_id", sessionID).Msg("end session failed, ignoring")
	}
	_ = observe("end_session", nil)
}
