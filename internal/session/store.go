// Package session replaces the original ambient admin session state with an
// explicit store consulted per request.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// AdminSession is the payload the admin login flow persists.
type AdminSession struct {
	AdminID int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// TTL matches the original cookie maxAge of 24 hours.
const TTL = 24 * time.Hour

// CookieName is the session cookie set on admin login.
const CookieName = "admin_sid"

var ErrNotFound = errors.New("session tidak ditemukan")

// Store keeps admin sessions keyed by an opaque id.
type Store interface {
	Create(ctx context.Context, s AdminSession) (string, error)
	Get(ctx context.Context, sid string) (AdminSession, error)
	// Refresh overwrites the payload of an existing session, keeping the id.
	Refresh(ctx context.Context, sid string, s AdminSession) error
	Delete(ctx context.Context, sid string) error
}

func newSessionID() string {
	return uuid.NewString()
}
