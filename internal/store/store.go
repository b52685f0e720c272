package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// BroadcastReceiver is the persisted receiver_sid value for messages
// addressed to the admin pool rather than a single session.
const BroadcastReceiver = "ADMINS"

// Message is a persisted chat message.
type Message struct {
	ID          int64
	SenderSID   string
	ReceiverSID string // a session id, or BroadcastReceiver
	SenderName  string
	Text        string
	Timestamp   time.Time
	UserDeleted bool
}

// AdminToken is a persistent admin identity. A token is minted on every
// successful passphrase login and looked up on reconnect; it is never
// deleted by the server.
type AdminToken struct {
	ID        int64
	Token     string
	Name      string
	CreatedAt time.Time
	LastSID   string
}

// MessageStore handles message persistence.
type MessageStore interface {
	// AppendMessage persists a message and returns its assigned id.
	AppendMessage(ctx context.Context, msg *Message) (int64, error)

	// HistoryForSession returns every message the session sent or received,
	// excluding soft-deleted rows, in ascending timestamp order.
	HistoryForSession(ctx context.Context, sid string) ([]*Message, error)

	// MarkSenderDeleted soft-deletes all messages authored by the session.
	// Messages addressed to the session are left untouched.
	MarkSenderDeleted(ctx context.Context, sid string) error
}

// TokenStore handles admin token persistence.
type TokenStore interface {
	// FindToken looks up an admin token by its value.
	// Returns ErrNotFound if the token is unknown.
	FindToken(ctx context.Context, token string) (*AdminToken, error)

	// UpsertToken inserts the token, or rewrites name and last_sid if the
	// token value already exists. The token's ID is set on return.
	UpsertToken(ctx context.Context, at *AdminToken) error
}

// Store aggregates all storage interfaces.
type Store interface {
	MessageStore
	TokenStore

	// Close closes the underlying database connection.
	Close() error
}
