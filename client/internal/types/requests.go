package types

// Request payloads. Field names follow the backend contract exactly,
// including its mixed casing on the chat endpoints.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email              string `json:"email"`
	Username           string `json:"username"`
	Password           string `json:"password"`
	PreferredCharacter string `json:"preferred_character,omitempty"`
}

type GoogleTokenRequest struct {
	Credential string `json:"credential"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type SendMessageRequest struct {
	Message     string `json:"message"`
	CharacterID string `json:"characterId"`
	SessionID   string `json:"sessionId,omitempty"`
}

type SwitchCharacterRequest struct {
	NewCharacter      string `json:"new_character"`
	ResetConversation bool   `json:"reset_conversation"`
}

type EndSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type AnalyzeRequest struct {
	SessionID     string `json:"sessionId"`
	CharacterUsed string `json:"characterUsed"`
}

// CardFilter selects emotion cards on GET /emotion/cards. The zero value
// requests the default pagination window with no predicate.
type CardFilter struct {
	Emotion string // exact primary emotion
	Group   string // positive | negative | mixed
	Tag     string // one life-area tag
	From    string // inclusive date, YYYY-MM-DD
	To      string // inclusive date, YYYY-MM-DD
	Limit   int
	Offset  int
}
