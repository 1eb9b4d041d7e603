// Package prefs keeps small per-browser preferences in a signed
// cookie. No accounts, no server-side storage; losing the cookie just
// means retyping a room code.
package prefs

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	CookieName  = "allsang_prefs"
	LastRoomKey = "last_room"
	JoinedAtKey = "joined_at"
)

var ErrNoPreference = errors.New("no stored preference")

type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret string) *Manager {
	if secret == "" {
		secret = generateSecret()
	}
	return &Manager{
		store: sessions.NewCookieStore([]byte(secret)),
	}
}

func generateSecret() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}

// SaveLastRoom remembers the room code a browser last joined.
func (m *Manager) SaveLastRoom(w http.ResponseWriter, r *http.Request, code string) error {
	session, _ := m.store.Get(r, CookieName)
	session.Values[LastRoomKey] = code
	session.Values[JoinedAtKey] = time.Now().Unix()

	isHTTPS := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"

	session.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   isHTTPS,
	}

	return session.Save(r, w)
}

// LastRoom returns the most recently joined room code, if any.
func (m *Manager) LastRoom(r *http.Request) (string, error) {
	session, err := m.store.Get(r, CookieName)
	if err != nil {
		return "", err
	}

	val, ok := session.Values[LastRoomKey]
	if !ok {
		return "", ErrNoPreference
	}

	code, ok := val.(string)
	if !ok || code == "" {
		return "", ErrNoPreference
	}

	return code, nil
}

// LastJoinedAt returns when the browser last joined a room.
// Returns zero time if unknown.
func (m *Manager) LastJoinedAt(r *http.Request) time.Time {
	session, err := m.store.Get(r, CookieName)
	if err != nil {
		return time.Time{}
	}

	val, ok := session.Values[JoinedAtKey]
	if !ok {
		return time.Time{}
	}

	unix, ok := val.(int64)
	if !ok {
		return time.Time{}
	}

	return time.Unix(unix, 0)
}

// Clear drops the preference cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, CookieName)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
