package journal

import (
	"sort"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client"
)

// Day is one calendar cell: up to maxCardsPerDay cards plus an overflow
// counter for the rest.
type Day struct {
	Date     string // YYYY-MM-DD, local time
	Visible  []client.EmotionCard
	Overflow int
	Total    int
}

// CalendarDays groups the loaded cards by calendar day, newest day first.
// Within a day cards run oldest to newest, mirroring the conversation
// order they were generated in.
func (j *Journal) CalendarDays() []Day {
	j.mu.Lock()
	cards := make([]client.EmotionCard, len(j.cards))
	copy(cards, j.cards)
	j.mu.Unlock()

	byDay := map[string][]client.EmotionCard{}
	for _, card := range cards {
		key := card.Timestamp.Local().Format("2006-01-02")
		byDay[key] = append(byDay[key], card)
	}

	days := make([]Day, 0, len(byDay))
	for date, dayCards := range byDay {
		sort.Slice(dayCards, func(a, b int) bool {
			return dayCards[a].Timestamp.Before(dayCards[b].Timestamp)
		})
		visible := dayCards
		overflow := 0
		if len(dayCards) > maxCardsPerDay {
			visible = dayCards[:maxCardsPerDay]
			overflow = len(dayCards) - maxCardsPerDay
		}
		days = append(days, Day{
			Date:     date,
			Visible:  visible,
			Overflow: overflow,
			Total:    len(dayCards),
		})
	}
	sort.Slice(days, func(a, b int) bool { return days[a].Date > days[b].Date })
	return days
}
