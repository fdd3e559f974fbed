// Package fallback provides the offline canned-response picker used when
// the backend is unreachable or disabled. Selection is uniformly random
// within a persona's response set; a delay-wrapped variant simulates the
// persona "thinking" for a bounded interval.
package fallback

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/persona"
)

// Delay bounds applied to every synthesized thinking delay, regardless of
// what a persona's timing window says.
const (
	MinDelay = 500 * time.Millisecond
	MaxDelay = 10 * time.Second
)

// Reply is a selected canned response.
type Reply struct {
	Text     string
	Category string
}

// Responder picks canned replies for personas. Safe for concurrent use.
type Responder struct {
	mu  sync.Mutex
	rng *rand.Rand

	// test seams
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New returns a Responder seeded from the current time.
func New() *Responder {
	return &Responder{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
		sleep: sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Respond selects one response for the persona, uniformly at random.
// The user text is accepted for interface symmetry with the backend path
// but does not influence selection. Unknown personas and empty response
// sets yield the generic supportive message, never an error.
func (r *Responder) Respond(id persona.ID, _ string) Reply {
	set, ok := responses[id]
	if !ok || len(set) == 0 {
		fallbackServedTotal.WithLabelValues("generic").Inc()
		return Reply{Text: GenericSupport, Category: CategoryGeneral}
	}
	picked := set[r.intn(len(set))]
	fallbackServedTotal.WithLabelValues(string(id)).Inc()
	return Reply{Text: picked.Text, Category: picked.Category}
}

// RespondWithDelay behaves like Respond but first sleeps for a duration
// sampled from the persona's timing window, clamped into
// [MinDelay, MaxDelay]. It returns early with ctx.Err() on cancellation.
func (r *Responder) RespondWithDelay(ctx context.Context, id persona.ID, text string) (Reply, error) {
	d := r.thinkingDelay(id)
	if err := r.sleep(ctx, d); err != nil {
		return Reply{}, err
	}
	return r.Respond(id, text), nil
}

// Introduction returns an opening message for the persona, chosen uniformly
// among templates tagged for the current time-of-day bucket. When no
// template matches the bucket, the full template set is used instead.
func (r *Responder) Introduction(id persona.ID) Reply {
	set, ok := introductions[id]
	if !ok || len(set) == 0 {
		return Reply{Text: GenericSupport, Category: CategoryGreeting}
	}
	bucket := bucketFor(r.hour())
	var candidates []introduction
	for _, in := range set {
		if in.matches(bucket) {
			candidates = append(candidates, in)
		}
	}
	if len(candidates) == 0 {
		candidates = set
	}
	picked := candidates[r.intn(len(candidates))]
	return Reply{Text: picked.Text, Category: CategoryGreeting}
}

// ResponseForKeywords selects the first response whose trigger list matches
// a word in the user text.
//
// This path is not exercised by the conversation flow: the shipped behavior
// picks uniformly at random and ignores triggers. The function is kept so
// the trigger data stays honest, but treat it as aspirational.
func ResponseForKeywords(id persona.ID, text string) (Reply, bool) {
	set, ok := responses[id]
	if !ok {
		return Reply{}, false
	}
	lowered := strings.ToLower(text)
	for _, resp := range set {
		for _, trig := range resp.Triggers {
			if strings.Contains(lowered, trig) {
				return Reply{Text: resp.Text, Category: resp.Category}, true
			}
		}
	}
	return Reply{}, false
}

// thinkingDelay samples the persona's [min,max] window and clamps the
// result. Missing, zero or inverted windows collapse to the clamp bounds
// rather than producing a negative or unbounded delay.
func (r *Responder) thinkingDelay(id persona.ID) time.Duration {
	p := persona.Get(id)
	lo := time.Duration(p.Timing.MinDelayMS) * time.Millisecond
	hi := time.Duration(p.Timing.MaxDelayMS) * time.Millisecond
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo < MinDelay {
		lo = MinDelay
	}
	if hi > MaxDelay {
		hi = MaxDelay
	}
	if hi < lo {
		hi = lo
	}
	span := hi - lo
	if span <= 0 {
		return lo
	}
	return lo + time.Duration(r.int63n(int64(span)))
}

func (r *Responder) intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func (r *Responder) int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Int63n(n)
}

func (r *Responder) hour() int { return r.now().Hour() }
