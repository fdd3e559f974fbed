package session

import (
	"context"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/fallback"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/persona"
)

// BackendResponder answers turns through the backend gateway.
type BackendResponder struct {
	Client *client.Client
}

func (b BackendResponder) Respond(ctx context.Context, id persona.ID, text, sessionID string) (Reply, error) {
	r, err := b.Client.SendMessage(ctx, id, text, sessionID)
	if err != nil {
		return Reply{}, err
	}
	return Reply{
		Text:      r.Response.Text,
		Category:  r.Response.Category,
		SessionID: r.SessionID,
	}, nil
}

func (b BackendResponder) Introduce(ctx context.Context, id persona.ID) (Reply, error) {
	res, err := b.Client.SwitchPersona(ctx, id, true)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: res.IntroductionMessage, Category: fallback.CategoryGreeting}, nil
}

// LocalResponder answers turns from the canned fallback tables, with the
// persona's simulated thinking delay. Used when the backend is disabled
// or unreachable. Offline turns never carry a session id.
type LocalResponder struct {
	Responder *fallback.Responder
}

func (l LocalResponder) Respond(ctx context.Context, id persona.ID, text, _ string) (Reply, error) {
	r, err := l.Responder.RespondWithDelay(ctx, id, text)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: r.Text, Category: r.Category}, nil
}

func (l LocalResponder) Introduce(_ context.Context, id persona.ID) (Reply, error) {
	r := l.Responder.Introduction(id)
	return Reply{Text: r.Text, Category: r.Category}, nil
}
