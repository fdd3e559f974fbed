package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/persona"
)

// fakeResponder scripts replies per call; the zero value echoes the input.
type fakeResponder struct {
	mu         sync.Mutex
	respond    func(id persona.ID, text, sessionID string) (Reply, error)
	introduce  func(id persona.ID) (Reply, error)
	responds   int
	introduces int
}

func (f *fakeResponder) Respond(_ context.Context, id persona.ID, text, sessionID string) (Reply, error) {
	f.mu.Lock()
	f.responds++
	fn := f.respond
	f.mu.Unlock()
	if fn != nil {
		return fn(id, text, sessionID)
	}
	return Reply{Text: "echo: " + text, Category: "general", SessionID: "sess-1"}, nil
}

func (f *fakeResponder) Introduce(_ context.Context, id persona.ID) (Reply, error) {
	f.mu.Lock()
	f.introduces++
	fn := f.introduce
	f.mu.Unlock()
	if fn != nil {
		return fn(id)
	}
	return Reply{Text: "hello from " + string(id), Category: "greeting"}, nil
}

func TestStartProducesSingleIntroduction(t *testing.T) {
	conv := New(persona.Sheep, &fakeResponder{})
	if err := conv.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	msgs := conv.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected exactly one message, got %d", len(msgs))
	}
	if msgs[0].FromUser {
		t.Error("introduction must not be a user message")
	}
	if msgs[0].PersonaID != persona.Sheep {
		t.Errorf("introduction persona = %q", msgs[0].PersonaID)
	}
	if conv.SessionID() != "" {
		t.Errorf("fresh conversation has session id %q", conv.SessionID())
	}
}

func TestSendEmptyInputIsNoOp(t *testing.T) {
	f := &fakeResponder{}
	conv := New(persona.Sheep, f)
	for _, input := range []string{"", "   ", "\n\t "} {
		if _, err := conv.Send(context.Background(), input); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Send(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
	if got := len(conv.Messages()); got != 0 {
		t.Errorf("empty sends appended %d messages", got)
	}
	if f.responds != 0 {
		t.Errorf("empty sends reached the responder %d times", f.responds)
	}
}

func TestSendAppendsUserAndReply(t *testing.T) {
	conv := New(persona.Rabbit, &fakeResponder{})
	msg, err := conv.Send(context.Background(), "  hi there  ")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.Text != "echo: hi there" {
		t.Errorf("reply text = %q", msg.Text)
	}
	msgs := conv.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected user + reply, got %d messages", len(msgs))
	}
	if !msgs[0].FromUser || msgs[0].Text != "hi there" {
		t.Errorf("user message = %+v, want trimmed text", msgs[0])
	}
	if msgs[1].FromUser {
		t.Error("reply marked as user message")
	}
	if conv.SessionID() != "sess-1" {
		t.Errorf("session id = %q, want sess-1", conv.SessionID())
	}
	if conv.Awaiting() {
		t.Error("conversation still awaiting after turn completed")
	}
}

func TestSendWhileAwaitingIsRefused(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	f := &fakeResponder{
		respond: func(persona.ID, string, string) (Reply, error) {
			close(entered)
			<-release
			return Reply{Text: "late", Category: "general"}, nil
		},
	}
	conv := New(persona.Sheep, f)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = conv.Send(context.Background(), "first")
	}()
	<-entered

	if _, err := conv.Send(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent Send error = %v, want ErrBusy", err)
	}

	close(release)
	<-done
	// Only the first turn's pair should exist.
	if got := len(conv.Messages()); got != 2 {
		t.Errorf("message count = %d, want 2", got)
	}
}

func TestSendFailureAppendsApologyAndRecovers(t *testing.T) {
	boom := errors.New("backend down")
	f := &fakeResponder{
		respond: func(persona.ID, string, string) (Reply, error) { return Reply{}, boom },
	}
	conv := New(persona.Fox, f)

	msg, err := conv.Send(context.Background(), "are you there?")
	if !errors.Is(err, boom) {
		t.Fatalf("Send error = %v, want the responder error", err)
	}
	if msg.Category != "apology" {
		t.Errorf("fallback category = %q, want apology", msg.Category)
	}
	msgs := conv.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected user + apology, got %d messages", len(msgs))
	}
	if conv.Awaiting() {
		t.Error("conversation stuck awaiting after failure")
	}

	// The next turn works normally.
	f.mu.Lock()
	f.respond = nil
	f.mu.Unlock()
	if _, err := conv.Send(context.Background(), "still there?"); err != nil {
		t.Fatalf("follow-up Send: %v", err)
	}
}

func TestRequestSwitchSamePersonaIsNoOp(t *testing.T) {
	conv := New(persona.Sheep, &fakeResponder{})
	opened, err := conv.RequestSwitch(persona.Sheep)
	if err != nil {
		t.Fatalf("RequestSwitch: %v", err)
	}
	if opened {
		t.Error("switching to the current persona opened a dialog")
	}
	if _, pending := conv.PendingSwitch(); pending {
		t.Error("pending switch recorded for a no-op")
	}
}

func TestRequestSwitchUnknownPersona(t *testing.T) {
	conv := New(persona.Sheep, &fakeResponder{})
	if _, err := conv.RequestSwitch("dragon"); !errors.Is(err, ErrUnknownPersona) {
		t.Errorf("error = %v, want ErrUnknownPersona", err)
	}
}

func TestCancelSwitchKeepsEverything(t *testing.T) {
	conv := New(persona.Sheep, &fakeResponder{})
	if _, err := conv.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	before := len(conv.Messages())

	if opened, err := conv.RequestSwitch(persona.Fox); err != nil || !opened {
		t.Fatalf("RequestSwitch = (%v, %v)", opened, err)
	}
	conv.CancelSwitch()

	if _, pending := conv.PendingSwitch(); pending {
		t.Error("pending switch survived cancel")
	}
	if got := len(conv.Messages()); got != before {
		t.Errorf("cancel changed message count: %d -> %d", before, got)
	}
	if conv.Persona().ID != persona.Sheep {
		t.Errorf("cancel changed persona to %q", conv.Persona().ID)
	}
}

func TestConfirmSwitchClearsConversation(t *testing.T) {
	var ended []string
	f := &fakeResponder{}
	conv := New(persona.Sheep, f, WithSessionEnder(func(_ context.Context, sid string) {
		ended = append(ended, sid)
	}))
	if _, err := conv.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if _, err := conv.RequestSwitch(persona.Rabbit); err != nil {
		t.Fatalf("RequestSwitch: %v", err)
	}
	if err := conv.ConfirmSwitch(context.Background()); err != nil {
		t.Fatalf("ConfirmSwitch: %v", err)
	}

	if conv.Persona().ID != persona.Rabbit {
		t.Errorf("persona = %q, want rabbit", conv.Persona().ID)
	}
	msgs := conv.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected exactly the introduction, got %d messages", len(msgs))
	}
	if msgs[0].PersonaID != persona.Rabbit {
		t.Errorf("introduction persona = %q", msgs[0].PersonaID)
	}
	if conv.SessionID() != "" {
		t.Errorf("session id survived the switch: %q", conv.SessionID())
	}
	if len(ended) != 1 || ended[0] != "sess-1" {
		t.Errorf("ended sessions = %v, want [sess-1]", ended)
	}
}

func TestConfirmSwitchWithoutPending(t *testing.T) {
	conv := New(persona.Sheep, &fakeResponder{})
	if err := conv.ConfirmSwitch(context.Background()); !errors.Is(err, ErrNoPendingSwitch) {
		t.Errorf("error = %v, want ErrNoPendingSwitch", err)
	}
}

func TestConfirmSwitchFallsBackOnFailedIntroduction(t *testing.T) {
	broken := &fakeResponder{
		introduce: func(persona.ID) (Reply, error) { return Reply{}, errors.New("offline") },
	}
	recovery := &fakeResponder{
		introduce: func(id persona.ID) (Reply, error) {
			return Reply{Text: "local hello", Category: "greeting"}, nil
		},
	}
	conv := New(persona.Sheep, broken, WithRecovery(recovery))

	if _, err := conv.RequestSwitch(persona.Fox); err != nil {
		t.Fatalf("RequestSwitch: %v", err)
	}
	if err := conv.ConfirmSwitch(context.Background()); err != nil {
		t.Fatalf("ConfirmSwitch: %v", err)
	}
	msgs := conv.Messages()
	if len(msgs) != 1 || msgs[0].Text != "local hello" {
		t.Errorf("messages = %+v, want the local introduction", msgs)
	}
}

func TestConfirmSwitchNeverFailsWithoutRecovery(t *testing.T) {
	broken := &fakeResponder{
		introduce: func(persona.ID) (Reply, error) { return Reply{}, errors.New("offline") },
	}
	conv := New(persona.Sheep, broken)

	if _, err := conv.RequestSwitch(persona.Fox); err != nil {
		t.Fatalf("RequestSwitch: %v", err)
	}
	if err := conv.ConfirmSwitch(context.Background()); err != nil {
		t.Fatalf("ConfirmSwitch: %v", err)
	}
	msgs := conv.Messages()
	if len(msgs) != 1 || msgs[0].Category != "greeting" {
		t.Errorf("messages = %+v, want a generic greeting", msgs)
	}
}

func TestStaleReplyDroppedAfterSwitch(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	f := &fakeResponder{
		respond: func(persona.ID, string, string) (Reply, error) {
			close(entered)
			<-release
			return Reply{Text: "stale reply", Category: "general", SessionID: "sess-old"}, nil
		},
	}
	conv := New(persona.Sheep, f)

	var sendMsg Message
	var sendErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		sendMsg, sendErr = conv.Send(context.Background(), "slow question")
	}()
	<-entered

	// Switch personas while the reply is still in flight.
	if _, err := conv.RequestSwitch(persona.Fox); err != nil {
		t.Fatalf("RequestSwitch: %v", err)
	}
	if err := conv.ConfirmSwitch(context.Background()); err != nil {
		t.Fatalf("ConfirmSwitch: %v", err)
	}

	close(release)
	<-done

	if sendErr != nil {
		t.Fatalf("stale Send returned error: %v", sendErr)
	}
	if sendMsg.ID != "" {
		t.Errorf("stale Send returned a message: %+v", sendMsg)
	}
	msgs := conv.Messages()
	if len(msgs) != 1 {
		t.Fatalf("stale reply leaked into the new conversation: %d messages", len(msgs))
	}
	if msgs[0].PersonaID != persona.Fox {
		t.Errorf("surviving message persona = %q, want fox", msgs[0].PersonaID)
	}
	if conv.SessionID() != "" {
		t.Errorf("stale session id applied: %q", conv.SessionID())
	}
}

func TestResetStartsOver(t *testing.T) {
	conv := New(persona.Sheep, &fakeResponder{})
	if _, err := conv.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := conv.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	msgs := conv.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected exactly the introduction, got %d messages", len(msgs))
	}
	if conv.SessionID() != "" {
		t.Errorf("session id survived reset: %q", conv.SessionID())
	}
	if conv.Persona().ID != persona.Sheep {
		t.Errorf("reset changed persona to %q", conv.Persona().ID)
	}
}

func TestNewResolvesUnknownPersonaToDefault(t *testing.T) {
	conv := New("unicorn", &fakeResponder{})
	if conv.Persona().ID != persona.Default().ID {
		t.Errorf("persona = %q, want the default", conv.Persona().ID)
	}
}
