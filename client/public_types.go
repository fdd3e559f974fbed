package client

import "github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	LoginRequest           = types.LoginRequest
	RegisterRequest        = types.RegisterRequest
	GoogleTokenRequest     = types.GoogleTokenRequest
	RefreshRequest         = types.RefreshRequest
	SendMessageRequest     = types.SendMessageRequest
	SwitchCharacterRequest = types.SwitchCharacterRequest
	EndSessionRequest      = types.EndSessionRequest
	AnalyzeRequest         = types.AnalyzeRequest
	CardFilter             = types.CardFilter

	// Domain entities
	User         = types.User
	Character    = types.Character
	EmotionCard  = types.EmotionCard
	EmotionStats = types.EmotionStats
	EmotionGroup = types.EmotionGroup

	// Responses and the shared envelopes (the stub server renders these)
	Envelope         = types.Envelope
	ErrorEnvelope    = types.ErrorEnvelope
	AuthResult       = types.AuthResult
	RefreshResult    = types.RefreshResult
	ChatReply        = types.ChatReply
	SwitchResult     = types.SwitchResult
	AnalyzeResult    = types.AnalyzeResult
	CardList         = types.CardList
	DeleteResult     = types.DeleteResult
	BulkDeleteResult = types.BulkDeleteResult
)

// Emotion display groups.
const (
	GroupPositive = types.GroupPositive
	GroupNegative = types.GroupNegative
	GroupMixed    = types.GroupMixed
)

// EmotionGroups maps every known primary emotion to its display group.
var EmotionGroups = types.EmotionGroups

// LifeAreaTags is the closed vocabulary of card tags.
var LifeAreaTags = types.LifeAreaTags

// Form validation helpers, surfaced inline per field before any network
// call is made.
var (
	ValidateLogin    = types.ValidateLogin
	ValidateRegister = types.ValidateRegister
)
