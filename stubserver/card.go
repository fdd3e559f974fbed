package stubserver

import (
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/persona"
)

// Deterministic stand-ins for the real service's AI analysis, keyed off
// the conversation text so repeated dev runs look varied but stable.
var stubEmotions = []string{
	"hopeful", "anxious", "grateful", "overwhelmed", "peaceful",
	"bittersweet", "frustrated", "relieved", "nostalgic", "confident",
}

var stubColors = []string{"#E8B87D", "#7DA7D9", "#E98A5E", "#9BC19C", "#C49BD1"}

func synthesizeCard(userID string, conv *conversation, used persona.ID) client.EmotionCard {
	h := fnv.New32a()
	for _, turn := range conv.turns {
		_, _ = h.Write([]byte(turn))
	}
	seed := h.Sum32()

	emotion := stubEmotions[seed%uint32(len(stubEmotions))]
	now := time.Now().UTC()
	trigger := "a conversation with your companion"
	if len(conv.turns) > 0 {
		trigger = conv.turns[0]
	}
	return client.EmotionCard{
		ID:             uuid.NewString(),
		UserID:         userID,
		Timestamp:      now,
		PrimaryEmotion: emotion,
		Intensity:      int(seed%10) + 1,
		TonePhrase:     "a quiet shift",
		Title:          "What today carried",
		Summary:        "You talked through what was weighing on you and found a little more room to breathe.",
		AccentColor:    stubColors[seed%uint32(len(stubColors))],
		Trigger:        trigger,
		CoreThought:    "This feeling is information, not a verdict.",
		SupportiveNote: "You showed up for yourself today. That matters.",
		Tags:           []string{client.LifeAreaTags[seed%uint32(len(client.LifeAreaTags))]},
		CharacterUsed:  string(persona.Get(used).ID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
