// Package stubserver is an in-process development backend implementing
// the Inner Voice REST contract over the local fallback responder. It
// exists so the CLI and the SDK's integration tests run without the real
// service: replies are canned, emotion cards are synthesized, and all
// state lives in memory.
//
// It is not a production server: passwords are compared in plain text and
// tokens are random strings with no expiry beyond what tests inject.
package stubserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/fallback"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/persona"
)

type account struct {
	user     client.User
	password string
}

type conversation struct {
	userID    string
	personaID persona.ID
	turns     []string
	startedAt time.Time
}

// Server holds all in-memory state. Safe for concurrent use.
type Server struct {
	responder *fallback.Responder

	mu            sync.Mutex
	accounts      map[string]*account // by email
	accessTokens  map[string]*account
	refreshTokens map[string]*account
	sessions      map[string]*conversation
	cards         map[string][]client.EmotionCard // by user id
}

// New returns a stub backend seeded with one demo account
// (demo@innervoice.app / demo1234).
func New() *Server {
	s := &Server{
		responder:     fallback.New(),
		accounts:      map[string]*account{},
		accessTokens:  map[string]*account{},
		refreshTokens: map[string]*account{},
		sessions:      map[string]*conversation{},
		cards:         map[string][]client.EmotionCard{},
	}
	s.addAccount("demo@innervoice.app", "demo", "demo1234")
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)
	r.HandleFunc("/auth/google/token", s.handleGoogle).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.authed(s.handleLogout)).Methods(http.MethodPost)
	r.HandleFunc("/auth/me", s.authed(s.handleMe)).Methods(http.MethodGet)

	r.HandleFunc("/chat/message", s.authed(s.handleMessage)).Methods(http.MethodPost)
	r.HandleFunc("/chat/switch-character", s.authed(s.handleSwitch)).Methods(http.MethodPost)
	r.HandleFunc("/chat/characters", s.handleCharacters).Methods(http.MethodGet)
	r.HandleFunc("/chat/end-session", s.authed(s.handleEndSession)).Methods(http.MethodPost)

	r.HandleFunc("/emotion/analyze", s.authed(s.handleAnalyze)).Methods(http.MethodPost)
	r.HandleFunc("/emotion/cards/recent", s.authed(s.handleRecentCards)).Methods(http.MethodGet)
	r.HandleFunc("/emotion/cards/{id}", s.authed(s.handleDeleteCard)).Methods(http.MethodDelete)
	r.HandleFunc("/emotion/cards", s.authed(s.handleListCards)).Methods(http.MethodGet)
	r.HandleFunc("/emotion/cards", s.authed(s.handleDeleteAllCards)).Methods(http.MethodDelete)
	r.HandleFunc("/emotion/stats", s.authed(s.handleStats)).Methods(http.MethodGet)

	return r
}

// ExpireAccessTokens invalidates every access token while keeping refresh
// tokens valid. Test hook for the 401-then-refresh flow.
func (s *Server) ExpireAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessTokens = map[string]*account{}
}

func (s *Server) addAccount(email, username, password string) *account {
	a := &account{
		user: client.User{
			ID:                 uuid.NewString(),
			Username:           username,
			Email:              email,
			PreferredCharacter: string(persona.Sheep),
			CreatedAt:          time.Now().UTC(),
			LastActiveAt:       time.Now().UTC(),
		},
		password: password,
	}
	s.accounts[email] = a
	return a
}

func (s *Server) issueTokens(a *account) client.AuthResult {
	access := "acc-" + uuid.NewString()
	refresh := "ref-" + uuid.NewString()
	s.accessTokens[access] = a
	s.refreshTokens[refresh] = a
	return client.AuthResult{
		User:         a.user,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    900,
	}
}

// ---------------------------------------------------------------
// envelope helpers
// ---------------------------------------------------------------

func writeData(w http.ResponseWriter, status int, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(client.Envelope{
		Success:   true,
		Data:      raw,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(client.ErrorEnvelope{
		Success:   false,
		Error:     msg,
		ErrorCode: code,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body.", "BAD_REQUEST")
		return false
	}
	return true
}

// authed wraps a handler with bearer-token authentication.
func (s *Server) authed(next func(http.ResponseWriter, *http.Request, *account)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const prefix = "Bearer "
		header := r.Header.Get("Authorization")
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			writeError(w, http.StatusUnauthorized, "Authentication required.", "NO_TOKEN")
			return
		}
		s.mu.Lock()
		a, ok := s.accessTokens[header[len(prefix):]]
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "Access token expired or invalid.", "TOKEN_EXPIRED")
			return
		}
		next(w, r, a)
	}
}

// ---------------------------------------------------------------
// auth handlers
// ---------------------------------------------------------------

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req client.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[req.Email]
	if !ok || a.password != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password.", "INVALID_CREDENTIALS")
		return
	}
	a.user.LastActiveAt = time.Now().UTC()
	writeData(w, http.StatusOK, s.issueTokens(a))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req client.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	if problems := client.ValidateRegister(req); problems != nil {
		writeError(w, http.StatusBadRequest, "Please fix the highlighted fields.", "VALIDATION")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		writeError(w, http.StatusConflict, "An account with this email already exists.", "EMAIL_TAKEN")
		return
	}
	a := s.addAccount(req.Email, req.Username, req.Password)
	if req.PreferredCharacter != "" {
		if _, ok := persona.ByID(persona.ID(req.PreferredCharacter)); ok {
			a.user.PreferredCharacter = req.PreferredCharacter
		}
	}
	writeData(w, http.StatusCreated, s.issueTokens(a))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req client.RefreshRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.refreshTokens[req.RefreshToken]
	if !ok {
		writeError(w, http.StatusUnauthorized, "Refresh token invalid.", "REFRESH_INVALID")
		return
	}
	access := "acc-" + uuid.NewString()
	s.accessTokens[access] = a
	writeData(w, http.StatusOK, client.RefreshResult{AccessToken: access, ExpiresIn: 900})
}

func (s *Server) handleGoogle(w http.ResponseWriter, r *http.Request) {
	var req client.GoogleTokenRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Credential == "" {
		writeError(w, http.StatusBadRequest, "Missing credential.", "BAD_REQUEST")
		return
	}
	// Accept any credential in dev mode; map it to a stable account.
	email := "google-" + req.Credential + "@innervoice.dev"
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		a = s.addAccount(email, "google-user", uuid.NewString())
	}
	writeData(w, http.StatusOK, s.issueTokens(a))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, a *account) {
	s.mu.Lock()
	for tok, owner := range s.accessTokens {
		if owner == a {
			delete(s.accessTokens, tok)
		}
	}
	for tok, owner := range s.refreshTokens {
		if owner == a {
			delete(s.refreshTokens, tok)
		}
	}
	s.mu.Unlock()
	writeData(w, http.StatusOK, map[string]bool{"loggedOut": true})
}

func (s *Server) handleMe(w http.ResponseWriter, _ *http.Request, a *account) {
	writeData(w, http.StatusOK, a.user)
}

// ---------------------------------------------------------------
// chat handlers
// ---------------------------------------------------------------

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request, a *account) {
	var req client.SendMessageRequest
	if !decode(w, r, &req) {
		return
	}
	id := persona.Get(persona.ID(req.CharacterID)).ID

	s.mu.Lock()
	conv, ok := s.sessions[req.SessionID]
	if req.SessionID == "" || !ok || conv.userID != a.user.ID {
		sid := "sess-" + uuid.NewString()
		conv = &conversation{userID: a.user.ID, personaID: id, startedAt: time.Now().UTC()}
		s.sessions[sid] = conv
		req.SessionID = sid
	}
	conv.turns = append(conv.turns, req.Message)
	s.mu.Unlock()

	reply := s.responder.Respond(id, req.Message)
	out := client.ChatReply{
		CharacterID:    string(id),
		ResponseTimeMS: 40,
		SessionID:      req.SessionID,
	}
	out.Response.Text = reply.Text
	out.Response.Category = reply.Category
	writeData(w, http.StatusOK, out)
}

func (s *Server) handleSwitch(w http.ResponseWriter, r *http.Request, _ *account) {
	var req client.SwitchCharacterRequest
	if !decode(w, r, &req) {
		return
	}
	p, ok := persona.ByID(persona.ID(req.NewCharacter))
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown character.", "UNKNOWN_CHARACTER")
		return
	}
	intro := s.responder.Introduction(p.ID)
	writeData(w, http.StatusOK, client.SwitchResult{
		Character:           describe(p),
		IntroductionMessage: intro.Text,
	})
}

func (s *Server) handleCharacters(w http.ResponseWriter, _ *http.Request) {
	list := persona.List()
	out := make([]client.Character, 0, len(list))
	for _, p := range list {
		out = append(out, describe(p))
	}
	writeData(w, http.StatusOK, out)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request, a *account) {
	var req client.EndSessionRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	if conv, ok := s.sessions[req.SessionID]; ok && conv.userID == a.user.ID {
		delete(s.sessions, req.SessionID)
	}
	s.mu.Unlock()
	writeData(w, http.StatusOK, map[string]bool{"ended": true})
}

func describe(p persona.Persona) client.Character {
	return client.Character{
		ID:          string(p.ID),
		Name:        p.Name,
		LocalName:   p.LocalName,
		Emoji:       p.Emoji,
		Description: p.Personality.Role,
	}
}

// ---------------------------------------------------------------
// emotion handlers
// ---------------------------------------------------------------

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request, a *account) {
	var req client.AnalyzeRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.sessions[req.SessionID]
	if !ok || conv.userID != a.user.ID {
		writeError(w, http.StatusNotFound, "Session not found.", "SESSION_NOT_FOUND")
		return
	}
	card := synthesizeCard(a.user.ID, conv, persona.ID(req.CharacterUsed))
	s.cards[a.user.ID] = append(s.cards[a.user.ID], card)
	delete(s.sessions, req.SessionID)
	log.Debug().Str("card_id", card.ID).Msg("stub: conversation analyzed and discarded")
	writeData(w, http.StatusOK, client.AnalyzeResult{
		Card:                card,
		Message:             "Your emotion card is ready.",
		ConversationDeleted: true,
	})
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request, a *account) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	offset, _ := strconv.Atoi(q.Get("offset"))

	s.mu.Lock()
	all := append([]client.EmotionCard(nil), s.cards[a.user.ID]...)
	s.mu.Unlock()

	filtered := all[:0]
	for _, card := range all {
		if matchesFilter(card, q) {
			filtered = append(filtered, card)
		}
	}
	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	writeData(w, http.StatusOK, client.CardList{
		Cards:   filtered[offset:end],
		Total:   total,
		HasMore: end < total,
	})
}

func (s *Server) handleRecentCards(w http.ResponseWriter, r *http.Request, a *account) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 5
	}
	s.mu.Lock()
	all := append([]client.EmotionCard(nil), s.cards[a.user.ID]...)
	s.mu.Unlock()
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	// newest first
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	writeData(w, http.StatusOK, all)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request, a *account) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	cards := s.cards[a.user.ID]
	for i, card := range cards {
		if card.ID == id {
			s.cards[a.user.ID] = append(cards[:i], cards[i+1:]...)
			writeData(w, http.StatusOK, client.DeleteResult{Deleted: true})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Card not found.", "CARD_NOT_FOUND")
}

func (s *Server) handleDeleteAllCards(w http.ResponseWriter, r *http.Request, a *account) {
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "Deleting all cards requires confirm=true.", "CONFIRM_REQUIRED")
		return
	}
	s.mu.Lock()
	n := len(s.cards[a.user.ID])
	delete(s.cards, a.user.ID)
	s.mu.Unlock()
	writeData(w, http.StatusOK, client.BulkDeleteResult{Deleted: true, Count: n})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request, a *account) {
	s.mu.Lock()
	cards := append([]client.EmotionCard(nil), s.cards[a.user.ID]...)
	s.mu.Unlock()

	stats := client.EmotionStats{
		TotalCards: len(cards),
		ByEmotion:  map[string]int{},
		ByGroup:    map[string]int{},
	}
	personaCounts := map[string]int{}
	sum := 0
	for _, card := range cards {
		stats.ByEmotion[card.PrimaryEmotion]++
		stats.ByGroup[string(card.Group())]++
		personaCounts[card.CharacterUsed]++
		sum += card.Intensity
	}
	if len(cards) > 0 {
		stats.AverageIntensity = float64(sum) / float64(len(cards))
	}
	best := 0
	for id, n := range personaCounts {
		if n > best {
			best, stats.MostUsedPersona = n, id
		}
	}
	writeData(w, http.StatusOK, stats)
}

func matchesFilter(card client.EmotionCard, q map[string][]string) bool {
	get := func(k string) string {
		if v, ok := q[k]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}
	if e := get("emotion"); e != "" && card.PrimaryEmotion != e {
		return false
	}
	if g := get("group"); g != "" && string(card.Group()) != g {
		return false
	}
	if tag := get("tag"); tag != "" {
		found := false
		for _, t := range card.Tags {
			if t == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	day := card.Timestamp.Format("2006-01-02")
	if from := get("from"); from != "" && day < from {
		return false
	}
	if to := get("to"); to != "" && day > to {
		return false
	}
	return true
}
