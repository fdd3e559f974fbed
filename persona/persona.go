// Package persona holds the static registry of companion characters.
//
// The set is fixed at build time. Two lookup behaviors exist on purpose:
// Get falls back to the default persona for missing or unknown ids, while
// ByID reports unknown ids explicitly. Call sites rely on both and they
// must never be conflated.
package persona

// ID identifies one of the selectable companion characters.
type ID string

const (
	Sheep  ID = "sheep"
	Rabbit ID = "rabbit"
	Fox    ID = "fox"
)

// Personality describes how a persona speaks and what it focuses on.
type Personality struct {
	Role   string
	Traits []string
	Style  string
	Focus  string
}

// Theme carries the color identifiers the UI applies for a persona.
// The client treats these as opaque data; rendering is out of scope.
type Theme struct {
	Primary         string
	Secondary       string
	Accent          string
	UserBubble      string
	CompanionBubble string
}

// Timing bounds the simulated "thinking" delay for a persona, in
// milliseconds. The fallback responder clamps these before use.
type Timing struct {
	MinDelayMS int
	MaxDelayMS int
}

// Persona is one companion character. Immutable after init.
type Persona struct {
	ID          ID
	Name        string
	LocalName   string
	Emoji       string
	Personality Personality
	Theme       Theme
	Timing      Timing
	Features    []string
}

var registry = []Persona{
	{
		ID:        Sheep,
		Name:      "Sora",
		LocalName: "そら",
		Emoji:     "🐑",
		Personality: Personality{
			Role:   "gentle listener",
			Traits: []string{"warm", "patient", "nurturing"},
			Style:  "soft, unhurried sentences with plenty of room to breathe",
			Focus:  "comfort and unconditional acceptance",
		},
		Theme: Theme{
			Primary:         "#F7E8D0",
			Secondary:       "#FDF6EC",
			Accent:          "#E8B87D",
			UserBubble:      "bubble-user-warm",
			CompanionBubble: "bubble-sheep",
		},
		Timing:   Timing{MinDelayMS: 1500, MaxDelayMS: 3500},
		Features: []string{"gratitude-prompts"},
	},
	{
		ID:        Rabbit,
		Name:      "Mimi",
		LocalName: "みみ",
		Emoji:     "🐰",
		Personality: Personality{
			Role:   "anxiety companion",
			Traits: []string{"empathetic", "attentive", "reassuring"},
			Style:  "short validating sentences, checks in often",
			Focus:  "worry, overwhelm and grounding in the present",
		},
		Theme: Theme{
			Primary:         "#E3EDF7",
			Secondary:       "#F2F7FC",
			Accent:          "#7DA7D9",
			UserBubble:      "bubble-user-cool",
			CompanionBubble: "bubble-rabbit",
		},
		Timing:   Timing{MinDelayMS: 800, MaxDelayMS: 2500},
		Features: []string{"breathing-exercises", "grounding"},
	},
	{
		ID:        Fox,
		Name:      "Kon",
		LocalName: "こん",
		Emoji:     "🦊",
		Personality: Personality{
			Role:   "playful motivator",
			Traits: []string{"curious", "upbeat", "encouraging"},
			Style:  "light humor, reframes setbacks as small experiments",
			Focus:  "energy, momentum and celebrating small wins",
		},
		Theme: Theme{
			Primary:         "#FBE4D8",
			Secondary:       "#FFF3EC",
			Accent:          "#E98A5E",
			UserBubble:      "bubble-user-warm",
			CompanionBubble: "bubble-fox",
		},
		Timing:   Timing{MinDelayMS: 1000, MaxDelayMS: 3000},
		Features: []string{"small-wins"},
	},
}

var byID = func() map[ID]Persona {
	m := make(map[ID]Persona, len(registry))
	for _, p := range registry {
		m[p.ID] = p
	}
	return m
}()

// Default returns the nurturing default persona (the sheep).
func Default() Persona { return byID[Sheep] }

// Get returns the persona for id, or the default persona when id is empty
// or unknown. Use ByID where "no such persona" must be distinguishable.
func Get(id ID) Persona {
	if p, ok := byID[id]; ok {
		return p
	}
	return Default()
}

// ByID returns the persona for id and whether it exists.
func ByID(id ID) (Persona, bool) {
	p, ok := byID[id]
	return p, ok
}

// List returns all personas in fixed display order.
func List() []Persona {
	out := make([]Persona, len(registry))
	copy(out, registry)
	return out
}
