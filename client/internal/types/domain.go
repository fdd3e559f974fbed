package types

import "time"

// User is the authenticated profile as returned by the backend.
type User struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	PreferredCharacter string    `json:"preferred_character"`
	Premium            bool      `json:"is_premium"`
	ThemePreference    string    `json:"theme_preference"`
	CreatedAt          time.Time `json:"created_at"`
	LastActiveAt       time.Time `json:"last_active_at"`
}

// Character is a persona descriptor as served by GET /chat/characters.
// The authoritative registry lives client-side; this mirrors it.
type Character struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LocalName   string `json:"local_name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

// EmotionGroup buckets the emotion vocabulary for display.
type EmotionGroup string

const (
	GroupPositive EmotionGroup = "positive"
	GroupNegative EmotionGroup = "negative"
	GroupMixed    EmotionGroup = "mixed"
)

// EmotionGroups maps every known primary emotion to its display group.
// The server owns the vocabulary; unknown values pass through and are
// displayed ungrouped.
var EmotionGroups = map[string]EmotionGroup{
	"happy": GroupPositive, "excited": GroupPositive, "grateful": GroupPositive,
	"peaceful": GroupPositive, "proud": GroupPositive, "hopeful": GroupPositive,
	"loved": GroupPositive, "confident": GroupPositive, "relieved": GroupPositive,
	"inspired": GroupPositive,

	"sad": GroupNegative, "anxious": GroupNegative, "angry": GroupNegative,
	"frustrated": GroupNegative, "lonely": GroupNegative, "overwhelmed": GroupNegative,
	"guilty": GroupNegative, "ashamed": GroupNegative, "fearful": GroupNegative,
	"disappointed": GroupNegative, "jealous": GroupNegative, "exhausted": GroupNegative,

	"bittersweet": GroupMixed, "nostalgic": GroupMixed, "conflicted": GroupMixed,
	"numb": GroupMixed, "surprised": GroupMixed, "confused": GroupMixed,
}

// LifeAreaTags is the closed vocabulary of card tags.
var LifeAreaTags = []string{
	"work", "school", "family", "friends", "romance",
	"health", "money", "self", "future", "leisure",
}

// EmotionCard is a server-generated summary of a finished conversation.
// Entirely server-owned; the client displays, filters and deletes.
type EmotionCard struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Timestamp      time.Time `json:"timestamp"`
	PrimaryEmotion string    `json:"primary_emotion"`
	Intensity      int       `json:"intensity"` // 1-10
	TonePhrase     string    `json:"tone_phrase"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	AccentColor    string    `json:"accent_color"`
	Trigger        string    `json:"trigger"`
	CoreThought    string    `json:"core_thought"`
	SupportiveNote string    `json:"supportive_note"`
	Tags           []string  `json:"tags"`
	CharacterUsed  string    `json:"character_used"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Group returns the display group for the card's primary emotion, or ""
// when the emotion is outside the known vocabulary.
func (c EmotionCard) Group() EmotionGroup {
	return EmotionGroups[c.PrimaryEmotion]
}

// EmotionStats is the aggregate statistics object from GET /emotion/stats.
type EmotionStats struct {
	TotalCards       int            `json:"total_cards"`
	ByEmotion        map[string]int `json:"by_emotion"`
	ByGroup          map[string]int `json:"by_group"`
	AverageIntensity float64        `json:"average_intensity"`
	StreakDays       int            `json:"streak_days"`
	MostUsedPersona  string         `json:"most_used_character"`
}
