package fallback

import "github.com/gcinnervoice-hash/Inner-voice-sub000/persona"

// Response is one canned reply in a persona's response set.
//
// Triggers is carried over from the response data but is not consulted by
// the selection path in use; see ResponseForKeywords.
type Response struct {
	Text     string
	Category string
	Triggers []string
}

// Response categories.
const (
	CategoryGreeting      = "greeting"
	CategoryEmpathy       = "empathy"
	CategoryValidation    = "validation"
	CategoryEncouragement = "encouragement"
	CategoryCoping        = "coping"
	CategoryReflection    = "reflection"
	CategoryGeneral       = "general"
)

// GenericSupport is returned whenever a persona lookup fails or response
// data is unusable. It must never be absent.
const GenericSupport = "I'm here with you. Whatever you're carrying right now, you don't have to hold it alone."

var responses = map[persona.ID][]Response{
	persona.Sheep: {
		{Text: "That sounds really heavy. I'm glad you told me about it.", Category: CategoryEmpathy, Triggers: []string{"tired", "exhausted", "heavy"}},
		{Text: "You don't have to have it all figured out tonight. Sitting with it together is enough.", Category: CategoryValidation},
		{Text: "It makes sense that you feel that way. Anyone in your place would.", Category: CategoryValidation, Triggers: []string{"stupid", "weak", "failure"}},
		{Text: "Take all the time you need. I'm not going anywhere.", Category: CategoryGeneral},
		{Text: "Would it help to tell me a little more about what happened?", Category: CategoryReflection},
		{Text: "You've been carrying a lot lately. It's okay to set some of it down here.", Category: CategoryEmpathy},
		{Text: "Even on days like this, you showed up. That counts for something warm.", Category: CategoryEncouragement},
	},
	persona.Rabbit: {
		{Text: "That sounds scary. Your worry is trying to protect you, even when it's loud.", Category: CategoryEmpathy, Triggers: []string{"scared", "afraid", "worried", "anxious"}},
		{Text: "Let's slow down together. Can you feel your feet on the floor right now?", Category: CategoryCoping, Triggers: []string{"panic", "overwhelmed"}},
		{Text: "One thing at a time. What's the very next small step?", Category: CategoryCoping},
		{Text: "It's okay to be nervous about something that matters to you.", Category: CategoryValidation, Triggers: []string{"exam", "test", "interview"}},
		{Text: "You've gotten through hard days before. I remember, even if it's hard for you to.", Category: CategoryEncouragement},
		{Text: "What's the worry saying right now? Sometimes naming it makes it smaller.", Category: CategoryReflection},
		{Text: "I'm right here. Let's breathe in for four, and out for six.", Category: CategoryCoping},
	},
	persona.Fox: {
		{Text: "Okay, plot twist! What if this is just the messy middle of the story?", Category: CategoryEncouragement},
		{Text: "Ooh, tell me more. I want the whole picture before we plan our next move.", Category: CategoryReflection},
		{Text: "That's rough, no sugarcoating it. But you brought it here, and that's a move.", Category: CategoryEmpathy, Triggers: []string{"failed", "lost", "ruined"}},
		{Text: "Small experiment time: what's one tiny thing we could try today?", Category: CategoryCoping},
		{Text: "You noticed how you feel and said it out loud. That's already a win on the board.", Category: CategoryEncouragement},
		{Text: "Feelings are data, not verdicts. What is this one telling you?", Category: CategoryReflection},
		{Text: "I'd bet on you. I'm a fox, we're good at odds.", Category: CategoryGeneral},
	},
}

// introduction is one opening message template, tagged with the
// time-of-day buckets it suits. An empty bucket list means "any time".
type introduction struct {
	Text    string
	Buckets []dayBucket
}

var introductions = map[persona.ID][]introduction{
	persona.Sheep: {
		{Text: "Good morning. I hope the day is starting gently for you. How are you feeling?", Buckets: []dayBucket{bucketMorning}},
		{Text: "Good afternoon. I was just thinking of you. How is your day treating you?", Buckets: []dayBucket{bucketAfternoon}},
		{Text: "Good evening. The day is winding down. How are you holding up?", Buckets: []dayBucket{bucketEvening}},
		{Text: "It's late, and you're here. I'm glad. What's on your mind tonight?", Buckets: []dayBucket{bucketNight}},
		{Text: "Hello, it's good to see you. What would you like to talk about?", Buckets: nil},
	},
	persona.Rabbit: {
		{Text: "Morning! Mornings can feel like a lot. Want to ease into the day together?", Buckets: []dayBucket{bucketMorning}},
		{Text: "Hi! Midday check-in: how's your energy right now, honestly?", Buckets: []dayBucket{bucketAfternoon}},
		{Text: "Evening already! Did anything sit heavy on you today?", Buckets: []dayBucket{bucketEvening}},
		{Text: "You're up late. Racing thoughts? We can untangle them one by one.", Buckets: []dayBucket{bucketNight}},
		{Text: "Hi, I'm here. Whatever is buzzing in your head, let it out.", Buckets: nil},
	},
	persona.Fox: {
		{Text: "Morning! Fresh day, blank page. What are we writing on it?", Buckets: []dayBucket{bucketMorning}},
		{Text: "Afternoon slump or afternoon adventure? You pick, I adapt.", Buckets: []dayBucket{bucketAfternoon}},
		{Text: "Evening! Day's almost done... any wins to count, however tiny?", Buckets: []dayBucket{bucketEvening}},
		{Text: "Night owl hours. The best schemes are hatched after dark. What's up?", Buckets: []dayBucket{bucketNight}},
		{Text: "Hey! Glad you wandered in. What's going on in your world?", Buckets: nil},
	},
}
