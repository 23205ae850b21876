// Package session persists the authenticated user's token between runs.
// The record lives in ~/.config/stockpile/session.toml and expires ten days
// after it was stored; an expired record is purged the next time it is read.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Session is the locally cached proof of authentication.
type Session struct {
	Token     string    `toml:"token"`
	Email     string    `toml:"user_email"`
	ExpiresAt time.Time `toml:"expiry_date"`
}

const (
	defaultSessionPath = "~/.config/stockpile/session.toml"

	// TTL is how long a stored session stays valid.
	TTL = 10 * 24 * time.Hour
)

// Valid reports whether the session holds a usable token at the given time.
func (s Session) Valid(now time.Time) bool {
	return strings.TrimSpace(s.Token) != "" && now.Before(s.ExpiresAt)
}

// Load reads the persisted session from path. A missing, unreadable,
// malformed, or expired record is treated as absent; an expired file is
// removed so it is not re-read later.
func Load(path string, now time.Time) (Session, bool) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Session{}, false
	}

	file, err := os.Open(resolved)
	if err != nil {
		return Session{}, false
	}

	bytes, err := io.ReadAll(file)
	_ = file.Close()
	if err != nil {
		return Session{}, false
	}

	var s Session
	if err := toml.Unmarshal(bytes, &s); err != nil {
		return Session{}, false
	}

	if !s.Valid(now) {
		_ = os.Remove(resolved)
		return Session{}, false
	}
	return s, true
}

// Save persists the session to path with a fresh expiry of now + TTL,
// creating directories as needed.
func Save(path string, s Session, now time.Time) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if strings.TrimSpace(s.Token) == "" {
		return fmt.Errorf("session token is empty")
	}
	s.ExpiresAt = now.Add(TTL)

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	bytes, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the persisted session. A missing file is not an error.
func Clear(path string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSessionPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
