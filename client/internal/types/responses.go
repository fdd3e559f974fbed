package types

import "encoding/json"

// Envelope is the common success wrapper on every backend response.
type Envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// ErrorEnvelope is the common error wrapper. Details and the validation
// map are optional and endpoint-specific.
type ErrorEnvelope struct {
	Success          bool              `json:"success"`
	Error            string            `json:"error"`
	Details          string            `json:"details,omitempty"`
	ErrorCode        string            `json:"error_code,omitempty"`
	ValidationErrors map[string]string `json:"validation_errors,omitempty"`
	RetryAfter       int               `json:"retry_after,omitempty"`
	Timestamp        string            `json:"timestamp"`
}

// AuthResult is the login/register/google envelope payload.
type AuthResult struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expires_in"`
}

// RefreshResult is the POST /auth/refresh payload.
type RefreshResult struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expires_in"`
}

// ChatReply is the POST /chat/message payload.
type ChatReply struct {
	Response struct {
		Text     string `json:"text"`
		Category string `json:"category"`
	} `json:"response"`
	CharacterID    string `json:"characterId"`
	ResponseTimeMS int    `json:"response_time_ms"`
	SessionID      string `json:"session_id"`
}

// SwitchResult is the POST /chat/switch-character payload.
type SwitchResult struct {
	Character           Character `json:"character"`
	IntroductionMessage string    `json:"introduction_message"`
}

// AnalyzeResult is the POST /emotion/analyze payload.
type AnalyzeResult struct {
	Card                EmotionCard `json:"card"`
	Message             string      `json:"message"`
	ConversationDeleted bool        `json:"conversationDeleted"`
}

// CardList is the GET /emotion/cards payload.
type CardList struct {
	Cards   []EmotionCard `json:"cards"`
	Total   int           `json:"total"`
	HasMore bool          `json:"hasMore"`
	Stats   *EmotionStats `json:"stats,omitempty"`
}

// DeleteResult is the DELETE /emotion/cards/:id payload.
type DeleteResult struct {
	Deleted bool `json:"deleted"`
}

// BulkDeleteResult is the DELETE /emotion/cards?confirm=true payload.
type BulkDeleteResult struct {
	Deleted bool `json:"deleted"`
	Count   int  `json:"count"`
}
