package stubserver

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/persona"
)

// The stub backend is exercised through the real SDK so both sides of the
// REST contract are checked at once.

func newStubClient(t *testing.T) (*Server, *client.Client) {
	t.Helper()
	s := New()
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	c, err := client.New(srv.URL, client.WithHTTPTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	return s, c
}

func login(t *testing.T, c *client.Client) {
	t.Helper()
	_, err := c.Login(context.Background(), client.LoginRequest{
		Email:    "demo@innervoice.app",
		Password: "demo1234",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func TestDemoAccountLogin(t *testing.T) {
	_, c := newStubClient(t)
	res, err := c.Login(context.Background(), client.LoginRequest{
		Email:    "demo@innervoice.app",
		Password: "demo1234",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.User.Username != "demo" {
		t.Errorf("username = %q", res.User.Username)
	}
	if !c.Authenticated() {
		t.Error("client not authenticated after login")
	}

	if _, err := c.Login(context.Background(), client.LoginRequest{
		Email:    "demo@innervoice.app",
		Password: "nope",
	}); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestRegisterAndDuplicateEmail(t *testing.T) {
	_, c := newStubClient(t)
	req := client.RegisterRequest{
		Email:              "new@innervoice.app",
		Username:           "newbie",
		Password:           "longenough",
		PreferredCharacter: string(persona.Fox),
	}
	res, err := c.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.User.PreferredCharacter != string(persona.Fox) {
		t.Errorf("preferred character = %q", res.User.PreferredCharacter)
	}

	if _, err := c.Register(context.Background(), req); err == nil {
		t.Error("duplicate registration accepted")
	}
}

func TestChatAssignsAndThreadsSession(t *testing.T) {
	_, c := newStubClient(t)
	login(t, c)

	first, err := c.SendMessage(context.Background(), persona.Sheep, "hello", "")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if first.SessionID == "" {
		t.Fatal("no session id assigned")
	}
	if first.Response.Text == "" || first.Response.Category == "" {
		t.Errorf("reply = %+v, want text and category", first.Response)
	}

	second, err := c.SendMessage(context.Background(), persona.Sheep, "how are you", first.SessionID)
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if second.SessionID != first.SessionID {
		t.Errorf("session not threaded: %q then %q", first.SessionID, second.SessionID)
	}
}

func TestExpiredTokenIsRefreshedTransparently(t *testing.T) {
	s, c := newStubClient(t)
	login(t, c)

	s.ExpireAccessTokens()

	// The SDK should hit the 401, refresh and replay without the caller
	// noticing.
	u, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser after expiry: %v", err)
	}
	if u.Username != "demo" {
		t.Errorf("username = %q", u.Username)
	}
}

func TestLogoutInvalidatesTokens(t *testing.T) {
	_, c := newStubClient(t)
	login(t, c)
	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if c.Authenticated() {
		t.Error("client still authenticated after logout")
	}
	if _, err := c.CurrentUser(context.Background()); err == nil {
		t.Error("request succeeded after logout")
	}
}

func TestAnalyzeProducesCardAndDeletesConversation(t *testing.T) {
	_, c := newStubClient(t)
	login(t, c)

	reply, err := c.SendMessage(context.Background(), persona.Rabbit, "today was hard", "")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	res, err := c.AnalyzeConversation(context.Background(), reply.SessionID, persona.Rabbit)
	if err != nil {
		t.Fatalf("AnalyzeConversation: %v", err)
	}
	if !res.ConversationDeleted {
		t.Error("conversation not reported deleted")
	}
	card := res.Card
	if card.ID == "" || card.PrimaryEmotion == "" {
		t.Errorf("card = %+v, want id and emotion", card)
	}
	if card.Intensity < 1 || card.Intensity > 10 {
		t.Errorf("intensity %d out of range", card.Intensity)
	}
	if card.CharacterUsed != string(persona.Rabbit) {
		t.Errorf("characterUsed = %q", card.CharacterUsed)
	}

	// The session is gone; a second analysis must 404.
	if _, err := c.AnalyzeConversation(context.Background(), reply.SessionID, persona.Rabbit); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("second analyze error = %v, want ErrNotFound", err)
	}

	// And the card is listed.
	list, err := c.ListEmotionCards(context.Background(), client.CardFilter{})
	if err != nil {
		t.Fatalf("ListEmotionCards: %v", err)
	}
	if list.Total != 1 || len(list.Cards) != 1 {
		t.Errorf("list = total %d, %d cards", list.Total, len(list.Cards))
	}
}

func makeCards(t *testing.T, c *client.Client, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		reply, err := c.SendMessage(context.Background(), persona.Sheep, "turn", "")
		if err != nil {
			t.Fatalf("SendMessage: %v", err)
		}
		res, err := c.AnalyzeConversation(context.Background(), reply.SessionID, persona.Sheep)
		if err != nil {
			t.Fatalf("AnalyzeConversation: %v", err)
		}
		ids = append(ids, res.Card.ID)
	}
	return ids
}

func TestDeleteCard(t *testing.T) {
	_, c := newStubClient(t)
	login(t, c)
	ids := makeCards(t, c, 2)

	if err := c.DeleteEmotionCard(context.Background(), ids[0]); err != nil {
		t.Fatalf("DeleteEmotionCard: %v", err)
	}
	if err := c.DeleteEmotionCard(context.Background(), ids[0]); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("double delete error = %v, want ErrNotFound", err)
	}
	list, err := c.ListEmotionCards(context.Background(), client.CardFilter{})
	if err != nil {
		t.Fatalf("ListEmotionCards: %v", err)
	}
	if list.Total != 1 {
		t.Errorf("total after delete = %d", list.Total)
	}
}

func TestDeleteAllCardsRequiresConfirm(t *testing.T) {
	_, c := newStubClient(t)
	login(t, c)
	makeCards(t, c, 3)

	n, err := c.DeleteAllEmotionCards(context.Background())
	if err != nil {
		t.Fatalf("DeleteAllEmotionCards: %v", err)
	}
	if n != 3 {
		t.Errorf("deleted %d cards, want 3", n)
	}
	list, err := c.ListEmotionCards(context.Background(), client.CardFilter{})
	if err != nil {
		t.Fatalf("ListEmotionCards: %v", err)
	}
	if list.Total != 0 {
		t.Errorf("total after clear = %d", list.Total)
	}
}

func TestStatsAggregateCards(t *testing.T) {
	_, c := newStubClient(t)
	login(t, c)
	makeCards(t, c, 2)

	stats, err := c.EmotionStats(context.Background())
	if err != nil {
		t.Fatalf("EmotionStats: %v", err)
	}
	if stats.TotalCards != 2 {
		t.Errorf("total cards = %d", stats.TotalCards)
	}
	if stats.AverageIntensity < 1 || stats.AverageIntensity > 10 {
		t.Errorf("average intensity = %f", stats.AverageIntensity)
	}
	if stats.MostUsedPersona != string(persona.Sheep) {
		t.Errorf("most used persona = %q", stats.MostUsedPersona)
	}
}

func TestCharactersListedWithoutAuth(t *testing.T) {
	_, c := newStubClient(t)
	chars, err := c.ListCharacters(context.Background())
	if err != nil {
		t.Fatalf("ListCharacters: %v", err)
	}
	if len(chars) != 3 {
		t.Errorf("characters = %d, want 3", len(chars))
	}
}

func TestSwitchCharacterReturnsIntroduction(t *testing.T) {
	_, c := newStubClient(t)
	login(t, c)

	res, err := c.SwitchPersona(context.Background(), persona.Fox, true)
	if err != nil {
		t.Fatalf("SwitchPersona: %v", err)
	}
	if res.Character.ID != string(persona.Fox) {
		t.Errorf("character = %q", res.Character.ID)
	}
	if res.IntroductionMessage == "" {
		t.Error("empty introduction")
	}

	if _, err := c.SwitchPersona(context.Background(), "dragon", true); err == nil {
		t.Error("unknown character accepted")
	}
}
