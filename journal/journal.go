// Package journal holds the emotion-card browser state: a read-only view
// over server-held cards with calendar/grid grouping, filters, and
// independently loaded statistics. Cards and stats each fail and retry on
// their own; an error in one never blocks the other.
package journal

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client"
)

// ViewMode selects how loaded cards are presented.
type ViewMode string

const (
	ViewCalendar ViewMode = "calendar"
	ViewGrid     ViewMode = "grid"
)

// maxCardsPerDay is how many cards a calendar day cell shows before the
// overflow counter takes over.
const maxCardsPerDay = 3

// ErrClearNotConfirmed is returned when ConfirmClearAll runs without a
// preceding RequestClearAll.
var ErrClearNotConfirmed = errors.New("clear-all requires explicit confirmation")

// Gateway is the slice of the backend client the journal needs.
type Gateway interface {
	ListEmotionCards(ctx context.Context, filter client.CardFilter) (*client.CardList, error)
	EmotionStats(ctx context.Context) (*client.EmotionStats, error)
	DeleteEmotionCard(ctx context.Context, cardID string) error
	DeleteAllEmotionCards(ctx context.Context) (int, error)
}

// Filter narrows the card query. The zero value is the default window.
type Filter struct {
	Emotion string
	Group   client.EmotionGroup
	Tag     string
	From    time.Time
	To      time.Time
	Limit   int
}

func (f Filter) toCardFilter() client.CardFilter {
	cf := client.CardFilter{
		Emotion: f.Emotion,
		Group:   string(f.Group),
		Tag:     f.Tag,
		Limit:   f.Limit,
	}
	if !f.From.IsZero() {
		cf.From = f.From.Format("2006-01-02")
	}
	if !f.To.IsZero() {
		cf.To = f.To.Format("2006-01-02")
	}
	return cf
}

// Journal is the browser state. Safe for concurrent use.
type Journal struct {
	gw Gateway

	mu           sync.Mutex
	cards        []client.EmotionCard
	total        int
	hasMore      bool
	stats        *client.EmotionStats
	cardsErr     error
	statsErr     error
	view         ViewMode
	filter       Filter
	clearPending bool
}

// New returns an empty journal in calendar mode.
func New(gw Gateway) *Journal {
	return &Journal{gw: gw, view: ViewCalendar}
}

// Load fetches cards and statistics concurrently. Each panel records its
// own error; Load itself only reports that it ran.
func (j *Journal) Load(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		j.LoadCards(ctx)
	}()
	go func() {
		defer wg.Done()
		j.LoadStats(ctx)
	}()
	wg.Wait()
}

// LoadCards fetches the card list for the current filter.
func (j *Journal) LoadCards(ctx context.Context) {
	j.mu.Lock()
	filter := j.filter
	j.mu.Unlock()

	list, err := j.gw.ListEmotionCards(ctx, filter.toCardFilter())

	j.mu.Lock()
	defer j.mu.Unlock()
	if err != nil {
		log.Debug().Err(err).Msg("journal: loading cards failed")
		j.cardsErr = err
		return
	}
	j.cardsErr = nil
	j.cards = list.Cards
	j.total = list.Total
	j.hasMore = list.HasMore
	if list.Stats != nil {
		// Some list responses piggyback stats; take them for free.
		j.stats = list.Stats
		j.statsErr = nil
	}
}

// LoadStats fetches the aggregate statistics panel.
func (j *Journal) LoadStats(ctx context.Context) {
	stats, err := j.gw.EmotionStats(ctx)

	j.mu.Lock()
	defer j.mu.Unlock()
	if err != nil {
		log.Debug().Err(err).Msg("journal: loading stats failed")
		j.statsErr = err
		return
	}
	j.statsErr = nil
	j.stats = stats
}

// RetryCards is the retry affordance for the cards panel: a short
// exponential backoff around LoadCards, giving up on irrecoverable errors.
func (j *Journal) RetryCards(ctx context.Context) error {
	return j.retry(ctx, func() error {
		j.LoadCards(ctx)
		return j.CardsError()
	})
}

// RetryStats is the retry affordance for the statistics panel.
func (j *Journal) RetryStats(ctx context.Context) error {
	return j.retry(ctx, func() error {
		j.LoadStats(ctx)
		return j.StatsError()
	})
}

func (j *Journal) retry(ctx context.Context, load func() error) error {
	op := func() error {
		err := load()
		if err != nil && !client.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(300*time.Millisecond),
		backoff.WithMaxInterval(3*time.Second),
	), 3), ctx)
	return backoff.Retry(op, policy)
}

// DeleteCard removes one card on the backend and from local state.
func (j *Journal) DeleteCard(ctx context.Context, cardID string) error {
	if err := j.gw.DeleteEmotionCard(ctx, cardID); err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	for i, card := range j.cards {
		if card.ID == cardID {
			j.cards = append(j.cards[:i], j.cards[i+1:]...)
			if j.total > 0 {
				j.total--
			}
			break
		}
	}
	return nil
}

// RequestClearAll opens the delete-everything confirmation step.
func (j *Journal) RequestClearAll() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.clearPending = true
}

// CancelClearAll closes the confirmation step without deleting.
func (j *Journal) CancelClearAll() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.clearPending = false
}

// ConfirmClearAll deletes every card after the explicit confirmation
// step. On success local state is cleared to empty, the stats panel to
// "no data"; no re-fetch is issued.
func (j *Journal) ConfirmClearAll(ctx context.Context) (int, error) {
	j.mu.Lock()
	if !j.clearPending {
		j.mu.Unlock()
		return 0, ErrClearNotConfirmed
	}
	j.clearPending = false
	j.mu.Unlock()

	n, err := j.gw.DeleteAllEmotionCards(ctx)
	if err != nil {
		return 0, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.cards = nil
	j.total = 0
	j.hasMore = false
	j.stats = nil
	j.cardsErr = nil
	j.statsErr = nil
	return n, nil
}

// SetFilter replaces the active filter. Takes effect on the next load.
func (j *Journal) SetFilter(f Filter) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.filter = f
}

// SetView switches between calendar and grid presentation.
func (j *Journal) SetView(v ViewMode) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.view = v
}

// View returns the active presentation mode.
func (j *Journal) View() ViewMode {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.view
}

// Cards returns a copy of the loaded cards (grid order: newest first).
func (j *Journal) Cards() []client.EmotionCard {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]client.EmotionCard, len(j.cards))
	copy(out, j.cards)
	sort.Slice(out, func(a, b int) bool { return out[a].Timestamp.After(out[b].Timestamp) })
	return out
}

// Stats returns the statistics panel content; nil means "no data".
func (j *Journal) Stats() *client.EmotionStats {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.stats
}

// CardsError returns the cards panel's own error, if any.
func (j *Journal) CardsError() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cardsErr
}

// StatsError returns the statistics panel's own error, if any.
func (j *Journal) StatsError() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.statsErr
}

// Total returns the backend's total card count for the active filter.
func (j *Journal) Total() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.total
}
