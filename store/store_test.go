package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "data", "innervoice.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestTokensRoundTrip(t *testing.T) {
	st := openTestStore(t)

	access, refresh := st.Tokens()
	if access != "" || refresh != "" {
		t.Errorf("fresh store has tokens (%q, %q)", access, refresh)
	}

	if err := st.SetTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}
	access, refresh = st.Tokens()
	if access != "access-1" || refresh != "refresh-1" {
		t.Errorf("tokens = (%q, %q)", access, refresh)
	}

	// Overwrite, as a refresh does.
	if err := st.SetTokens("access-2", "refresh-1"); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}
	access, _ = st.Tokens()
	if access != "access-2" {
		t.Errorf("access after overwrite = %q", access)
	}
}

func TestClearRemovesTokensAndProfile(t *testing.T) {
	st := openTestStore(t)
	if err := st.SetTokens("access-1", "refresh-1"); err != nil {
		t.Fatal(err)
	}
	if err := st.SaveProfile(&client.User{ID: "u-1", Username: "demo"}); err != nil {
		t.Fatal(err)
	}

	if err := st.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	access, refresh := st.Tokens()
	if access != "" || refresh != "" {
		t.Errorf("tokens survived clear: (%q, %q)", access, refresh)
	}
	if _, err := st.Profile(); !errors.Is(err, ErrNoValue) {
		t.Errorf("Profile error = %v, want ErrNoValue", err)
	}
	// Clear must stay idempotent.
	if err := st.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.Profile(); !errors.Is(err, ErrNoValue) {
		t.Errorf("fresh Profile error = %v, want ErrNoValue", err)
	}

	in := &client.User{ID: "u-1", Username: "demo", Email: "demo@innervoice.app", PreferredCharacter: "rabbit"}
	if err := st.SaveProfile(in); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	out, err := st.Profile()
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if out.Username != "demo" || out.PreferredCharacter != "rabbit" {
		t.Errorf("profile = %+v", out)
	}
}

func TestSettingsDefaultsAndValidation(t *testing.T) {
	st := openTestStore(t)

	s := st.Settings()
	if s != DefaultSettings() {
		t.Errorf("fresh settings = %+v, want defaults", s)
	}

	s.Theme = ThemeMidnight
	s.FontSize = FontLarge
	s.ShowTimestamps = false
	if err := st.SaveSettings(s); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got := st.Settings()
	if got != s {
		t.Errorf("settings = %+v, want %+v", got, s)
	}

	bad := s
	bad.Theme = "neon"
	if err := st.SaveSettings(bad); err == nil {
		t.Error("unknown theme accepted")
	}
	bad = s
	bad.FontSize = "enormous"
	if err := st.SaveSettings(bad); err == nil {
		t.Error("unknown font size accepted")
	}
	// Rejected saves leave the stored value untouched.
	if got := st.Settings(); got != s {
		t.Errorf("settings after rejected save = %+v", got)
	}
}

func TestSettingsBadFieldFallsBackAlone(t *testing.T) {
	st := openTestStore(t)
	// Write a blob with one bad field directly, as an older build might.
	if err := st.putJSON(keySettings, map[string]any{
		"theme":           "neon",
		"font_size":       FontLarge,
		"show_timestamps": false,
	}); err != nil {
		t.Fatal(err)
	}
	got := st.Settings()
	if got.Theme != DefaultSettings().Theme {
		t.Errorf("bad theme not defaulted: %q", got.Theme)
	}
	if got.FontSize != FontLarge {
		t.Errorf("good font size discarded: %q", got.FontSize)
	}
	if got.ShowTimestamps {
		t.Error("good timestamps flag discarded")
	}
}

func TestConsentRoundTrip(t *testing.T) {
	st := openTestStore(t)
	if _, ok := st.Consent(); ok {
		t.Error("fresh store reports consent")
	}

	if err := st.SaveConsent(Consent{Accepted: true, Analytics: true}); err != nil {
		t.Fatalf("SaveConsent: %v", err)
	}
	c, ok := st.Consent()
	if !ok {
		t.Fatal("consent not found after save")
	}
	if !c.Accepted || !c.Analytics {
		t.Errorf("consent = %+v", c)
	}
	if c.AcceptedAt.IsZero() {
		t.Error("AcceptedAt not stamped")
	}
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "innervoice.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = st.Close()
}
