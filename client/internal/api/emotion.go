package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/types"
)

// Analyze asks the backend to produce an emotion card from a finished
// conversation. The server discards the conversation afterwards.
func Analyze(ctx context.Context, hc HTTPClient, baseURL string, req types.AnalyzeRequest) (*types.AnalyzeResult, error) {
	var out types.AnalyzeResult
	if err := postJSON(ctx, hc, baseURL, "/emotion/analyze", "analyze conversation", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCards fetches emotion cards matching the filter.
func ListCards(ctx context.Context, hc HTTPClient, baseURL string, filter types.CardFilter) (*types.CardList, error) {
	var out types.CardList
	path := "/emotion/cards" + filterQuery(filter)
	if err := getJSON(ctx, hc, baseURL, path, "list emotion cards", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentCards fetches the most recent cards, newest first.
func RecentCards(ctx context.Context, hc HTTPClient, baseURL string, limit int) ([]types.EmotionCard, error) {
	var out []types.EmotionCard
	path := fmt.Sprintf("/emotion/cards/recent?limit=%d", limit)
	if err := getJSON(ctx, hc, baseURL, path, "recent emotion cards", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteCard removes a single card.
func DeleteCard(ctx context.Context, hc HTTPClient, baseURL, cardID string) error {
	var out types.DeleteResult
	path := "/emotion/cards/" + url.PathEscape(cardID)
	if err := deleteJSON(ctx, hc, baseURL, path, "delete emotion card", &out); err != nil {
		return err
	}
	if !out.Deleted {
		return fmt.Errorf("delete emotion card: backend reported not deleted")
	}
	return nil
}

// DeleteAllCards removes every card for the user. The explicit confirm
// parameter is required by the backend.
func DeleteAllCards(ctx context.Context, hc HTTPClient, baseURL string) (int, error) {
	var out types.BulkDeleteResult
	if err := deleteJSON(ctx, hc, baseURL, "/emotion/cards?confirm=true", "delete all emotion cards", &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// Stats fetches the aggregate statistics object.
func Stats(ctx context.Context, hc HTTPClient, baseURL string) (*types.EmotionStats, error) {
	var out types.EmotionStats
	if err := getJSON(ctx, hc, baseURL, "/emotion/stats", "emotion stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// filterQuery renders the filter as query parameters. The zero filter
// yields no parameters, which is the backend's default window.
func filterQuery(f types.CardFilter) string {
	q := url.Values{}
	if f.Emotion != "" {
		q.Set("emotion", f.Emotion)
	}
	if f.Group != "" {
		q.Set("group", f.Group)
	}
	if f.Tag != "" {
		q.Set("tag", f.Tag)
	}
	if f.From != "" {
		q.Set("from", f.From)
	}
	if f.To != "" {
		q.Set("to", f.To)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
