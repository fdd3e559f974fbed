// Package session owns the in-memory conversation state: the ordered
// message list, the backend session identifier, and the send / persona
// switch transitions. Message content never touches disk; it lives for
// one conversation and is discarded on switch.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/persona"
)

var (
	// ErrEmptyInput: sending whitespace is a no-op, not a request.
	ErrEmptyInput = errors.New("message is empty")
	// ErrBusy: a reply is already awaited; the send affordance is disabled.
	ErrBusy = errors.New("still waiting for a reply")
	// ErrUnknownPersona: switch target does not exist in the registry.
	ErrUnknownPersona = errors.New("unknown persona")
	// ErrNoPendingSwitch: confirm/cancel without an open dialog.
	ErrNoPendingSwitch = errors.New("no persona switch pending")
)

// apologyText is appended in place of a reply when the responder fails.
const apologyText = "I'm sorry, I'm having trouble responding right now. I'm still here with you, please try again in a moment."

// Message is one bubble in the conversation.
type Message struct {
	ID        string
	Text      string
	FromUser  bool
	SentAt    time.Time
	PersonaID persona.ID // owning persona for companion messages
	Category  string     // response category tag, when known
}

// Reply is what a Responder produced for one turn.
type Reply struct {
	Text      string
	Category  string
	SessionID string // backend-assigned; empty offline
}

// Responder produces companion replies. The backend gateway and the local
// fallback responder both satisfy it.
type Responder interface {
	Respond(ctx context.Context, id persona.ID, text, sessionID string) (Reply, error)
	Introduce(ctx context.Context, id persona.ID) (Reply, error)
}

// Conversation is the state machine behind the chat screen: idle or
// awaiting-response, with an orthogonal pending persona switch. Replies
// that arrive after a persona switch carry a stale epoch and are dropped.
type Conversation struct {
	mu            sync.Mutex
	persona       persona.Persona
	messages      []Message
	sessionID     string
	awaiting      bool
	pendingSwitch *persona.Persona
	epoch         uint64

	responder  Responder
	recovery   Responder                           // local fallback for introductions
	endSession func(ctx context.Context, id string) // best-effort, optional
	now        func() time.Time
}

// ConvOption configures a Conversation.
type ConvOption func(*Conversation)

// WithRecovery supplies the local fallback used when a backend
// introduction fails during a persona switch.
func WithRecovery(r Responder) ConvOption {
	return func(c *Conversation) { c.recovery = r }
}

// WithSessionEnder supplies the best-effort end-session call invoked when
// a switch abandons an active backend session.
func WithSessionEnder(f func(ctx context.Context, sessionID string)) ConvOption {
	return func(c *Conversation) { c.endSession = f }
}

// New starts a conversation with the given persona. The persona is
// resolved through the registry default if unknown.
func New(id persona.ID, responder Responder, opts ...ConvOption) *Conversation {
	c := &Conversation{
		persona:   persona.Get(id),
		responder: responder,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start fills the conversation with the persona's introduction. Use on
// first mount; the message list becomes exactly that one entry.
func (c *Conversation) Start(ctx context.Context) error {
	c.mu.Lock()
	p := c.persona
	epoch := c.epoch
	c.mu.Unlock()

	intro := c.introduce(ctx, p.ID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return nil
	}
	c.messages = []Message{c.companionMessage(p.ID, intro)}
	c.sessionID = ""
	return nil
}

// Send appends the user's message, obtains a reply and appends it. Empty
// or whitespace-only input is a no-op (ErrEmptyInput) and sending while a
// reply is awaited is refused (ErrBusy); neither mutates any state. On
// responder failure a single apologetic message is appended instead of a
// reply and the error is returned for logging. The conversation always
// ends the turn back in the idle state.
func (c *Conversation) Send(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyInput
	}

	c.mu.Lock()
	if c.awaiting {
		c.mu.Unlock()
		return Message{}, ErrBusy
	}
	c.awaiting = true
	epoch := c.epoch
	p := c.persona
	sid := c.sessionID
	c.messages = append(c.messages, Message{
		ID:       uuid.NewString(),
		Text:     text,
		FromUser: true,
		SentAt:   c.now(),
	})
	c.mu.Unlock()

	reply, err := c.responder.Respond(ctx, p.ID, text, sid)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.awaiting = false

	if epoch != c.epoch {
		// The persona changed while this turn was in flight; the reply
		// belongs to a conversation that no longer exists.
		log.Debug().Str("persona", string(p.ID)).Msg("dropping stale reply after persona switch")
		return Message{}, nil
	}

	if err != nil {
		msg := c.companionMessage(p.ID, Reply{Text: apologyText, Category: "apology"})
		c.messages = append(c.messages, msg)
		return msg, err
	}

	msg := c.companionMessage(p.ID, reply)
	c.messages = append(c.messages, msg)
	if reply.SessionID != "" {
		c.sessionID = reply.SessionID
	}
	return msg, nil
}

// RequestSwitch opens the switch confirmation for the target persona.
// Switching to the current persona is a no-op and reports opened=false;
// no message state is touched either way.
func (c *Conversation) RequestSwitch(id persona.ID) (opened bool, err error) {
	target, ok := persona.ByID(id)
	if !ok {
		return false, ErrUnknownPersona
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if target.ID == c.persona.ID {
		return false, nil
	}
	c.pendingSwitch = &target
	return true, nil
}

// CancelSwitch closes the confirmation dialog without mutating state.
func (c *Conversation) CancelSwitch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingSwitch = nil
}

// ConfirmSwitch discards the message list, clears the session identifier
// and replaces the conversation with the new persona's introduction. A
// failed backend introduction falls back to the local path rather than
// surfacing an error, so the postcondition always holds: exactly one
// message and no session id.
func (c *Conversation) ConfirmSwitch(ctx context.Context) error {
	c.mu.Lock()
	if c.pendingSwitch == nil {
		c.mu.Unlock()
		return ErrNoPendingSwitch
	}
	target := *c.pendingSwitch
	c.pendingSwitch = nil
	c.epoch++
	epoch := c.epoch
	oldSession := c.sessionID
	c.sessionID = ""
	c.messages = nil
	c.persona = target
	c.mu.Unlock()

	if oldSession != "" && c.endSession != nil {
		c.endSession(ctx, oldSession)
	}

	intro := c.introduce(ctx, target.ID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return nil
	}
	c.messages = []Message{c.companionMessage(target.ID, intro)}
	return nil
}

// Reset discards the conversation and starts over with the same persona,
// as after the server analyzes and deletes it. In-flight replies become
// stale and are dropped on arrival.
func (c *Conversation) Reset(ctx context.Context) error {
	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	c.messages = nil
	c.sessionID = ""
	c.pendingSwitch = nil
	p := c.persona
	c.mu.Unlock()

	intro := c.introduce(ctx, p.ID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return nil
	}
	c.messages = []Message{c.companionMessage(p.ID, intro)}
	return nil
}

// introduce obtains an introduction, recovering through the local
// fallback and finally a generic greeting. Never fails.
func (c *Conversation) introduce(ctx context.Context, id persona.ID) Reply {
	intro, err := c.responder.Introduce(ctx, id)
	if err == nil {
		return intro
	}
	log.Debug().Err(err).Str("persona", string(id)).Msg("introduction failed, using local fallback")
	if c.recovery != nil {
		if intro, err = c.recovery.Introduce(ctx, id); err == nil {
			return intro
		}
	}
	return Reply{Text: "Hello, I'm here for you. What's on your mind?", Category: "greeting"}
}

func (c *Conversation) companionMessage(id persona.ID, r Reply) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      r.Text,
		SentAt:    c.now(),
		PersonaID: id,
		Category:  r.Category,
	}
}

// Messages returns a copy of the ordered message list.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Persona returns the active persona.
func (c *Conversation) Persona() persona.Persona {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persona
}

// SessionID returns the backend session identifier, empty until assigned.
func (c *Conversation) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Awaiting reports whether a reply is currently in flight.
func (c *Conversation) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}

// PendingSwitch returns the persona awaiting confirmation, if any.
func (c *Conversation) PendingSwitch() (persona.Persona, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingSwitch == nil {
		return persona.Persona{}, false
	}
	return *c.pendingSwitch, true
}
