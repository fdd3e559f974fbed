package client

import (
	"context"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/api"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/types"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/persona"
)

// AnalyzeConversation asks the backend to turn a finished conversation
// into an emotion card. The server discards the conversation afterwards.
func (c *Client) AnalyzeConversation(ctx context.Context, sessionID string, personaUsed persona.ID) (*AnalyzeResult, error) {
	res, err := api.Analyze(ctx, c.http, c.baseURL, types.AnalyzeRequest{
		SessionID:     sessionID,
		CharacterUsed: string(personaUsed),
	})
	if err != nil {
		logIfRateLimited("analyze_conversation", err)
		return nil, observe("analyze_conversation", err)
	}
	return res, observe("analyze_conversation", nil)
}

// ListEmotionCards fetches cards matching the filter. The zero filter is
// the backend's default pagination window.
func (c *Client) ListEmotionCards(ctx context.Context, filter CardFilter) (*CardList, error) {
	list, err := api.ListCards(ctx, c.http, c.baseURL, filter)
	if err != nil {
		logIfRateLimited("list_emotion_cards", err)
		return nil, observe("list_emotion_cards", err)
	}
	return list, observe("list_emotion_cards", nil)
}

// RecentEmotionCards fetches the newest cards.
func (c *Client) RecentEmotionCards(ctx context.Context, limit int) ([]EmotionCard, error) {
	cards, err := api.RecentCards(ctx, c.http, c.baseURL, limit)
	if err != nil {
		return nil, observe("recent_emotion_cards", err)
	}
	return cards, observe("recent_emotion_cards", nil)
}

// DeleteEmotionCard removes a single card.
func (c *Client) DeleteEmotionCard(ctx context.Context, cardID string) error {
	return observe("delete_emotion_card", api.DeleteCard(ctx, c.http, c.baseURL, cardID))
}

// DeleteAllEmotionCards removes every card for the user and returns how
// many were deleted. Callers are expected to have confirmed explicitly.
func (c *Client) DeleteAllEmotionCards(ctx context.Context) (int, error) {
	n, err := api.DeleteAllCards(ctx, c.http, c.baseURL)
	return n, observe("delete_all_emotion_cards", err)
}

// EmotionStats fetches the aggregate statistics object.
func (c *Client) EmotionStats(ctx context.Context) (*EmotionStats, error) {
	stats, err := api.Stats(ctx, c.http, c.baseURL)
	if err != nil {
		return nil, observe("emotion_stats", err)
	}
	return stats, observe("emotion_stats", nil)
}
