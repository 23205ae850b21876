package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	now := time.Now()

	s := Session{Token: "abc123", Email: "admin@example.com"}
	if err := Save(path, s, now); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, ok := Load(path, now)
	if !ok {
		t.Fatal("Load ok = false, want true")
	}
	if got.Token != "abc123" || got.Email != "admin@example.com" {
		t.Fatalf("Load = %#v, want saved session", got)
	}
	wantExpiry := now.Add(TTL)
	if got.ExpiresAt.Sub(wantExpiry) > time.Second || wantExpiry.Sub(got.ExpiresAt) > time.Second {
		t.Fatalf("ExpiresAt = %v, want ~%v", got.ExpiresAt, wantExpiry)
	}
}

func TestLoad_ExpiredSessionIsPurged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	stored := time.Now()

	if err := Save(path, Session{Token: "abc123", Email: "a@b.c"}, stored); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	// Eleven days later the ten-day session must read as absent.
	_, ok := Load(path, stored.Add(11*24*time.Hour))
	if ok {
		t.Fatal("Load ok = true for expired session, want false")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expired session file still present: stat err = %v", err)
	}
}

func TestLoad_MissingOrMalformed(t *testing.T) {
	dir := t.TempDir()

	if _, ok := Load(filepath.Join(dir, "nope.toml"), time.Now()); ok {
		t.Fatal("Load ok = true for missing file, want false")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("{not toml"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, ok := Load(bad, time.Now()); ok {
		t.Fatal("Load ok = true for malformed file, want false")
	}
}

func TestSave_RejectsEmptyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := Save(path, Session{Email: "a@b.c"}, time.Now()); err == nil {
		t.Fatal("Save returned nil error for empty token, want error")
	}
}

func TestClear_MissingFileIsNoError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := Clear(path); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}

	if err := Save(path, Session{Token: "t"}, time.Now()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := Clear(path); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, ok := Load(path, time.Now()); ok {
		t.Fatal("Load ok = true after Clear, want false")
	}
}

func TestValid(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		s    Session
		want bool
	}{
		{"empty", Session{}, false},
		{"no token", Session{ExpiresAt: now.Add(time.Hour)}, false},
		{"expired", Session{Token: "t", ExpiresAt: now.Add(-time.Hour)}, false},
		{"current", Session{Token: "t", ExpiresAt: now.Add(time.Hour)}, true},
	}
	for _, tc := range cases {
		if got := tc.s.Valid(now); got != tc.want {
			t.Fatalf("%s: Valid = %v, want %v", tc.name, got, tc.want)
		}
	}
}
