package api

import (
	"context"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/types"
)

// SendMessage posts one chat turn. SessionID is empty on the first turn of
// a conversation; the backend assigns one in the reply.
func SendMessage(ctx context.Context, hc HTTPClient, baseURL string, req types.SendMessageRequest) (*types.ChatReply, error) {
	var out types.ChatReply
	if err := postJSON(ctx, hc, baseURL, "/chat/message", "send message", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SwitchCharacter switches the active persona server-side and returns the
// fresh introduction message.
func SwitchCharacter(ctx context.Context, hc HTTPClient, baseURL string, req types.SwitchCharacterRequest) (*types.SwitchResult, error) {
	var out types.SwitchResult
	if err := postJSON(ctx, hc, baseURL, "/chat/switch-character", "switch character", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCharacters returns the persona descriptors the backend knows about.
func ListCharacters(ctx context.Context, hc HTTPClient, baseURL string) ([]types.Character, error) {
	var out []types.Character
	if err := getJSON(ctx, hc, baseURL, "/chat/characters", "list characters", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EndSession tells the backend a conversation is over. Callers treat this
// as best-effort.
func EndSession(ctx context.Context, hc HTTPClient, baseURL string, req types.EndSessionRequest) error {
	return postJSON(ctx, hc, baseURL, "/chat/end-session", "end session", req, nil)
}
