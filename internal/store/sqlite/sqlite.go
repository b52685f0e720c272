package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/worakan/supportchat-server/internal/store"
)

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	sender_sid   TEXT NOT NULL,
	receiver_sid TEXT NOT NULL,
	sender_name  TEXT NOT NULL,
	text         TEXT NOT NULL,
	timestamp    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	user_deleted BOOLEAN NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender_sid);
CREATE INDEX IF NOT EXISTS idx_messages_receiver ON messages(receiver_sid);

CREATE TABLE IF NOT EXISTS admin_tokens (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	token      TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_sid   TEXT
);
`

// New creates a new SQLite store and ensures the schema exists.
// dbPath is the path to the SQLite database file.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ==== MessageStore implementation ====

// AppendMessage persists a message and returns its assigned id.
func (s *SQLiteStore) AppendMessage(ctx context.Context, msg *store.Message) (int64, error) {
	query := `
		INSERT INTO messages (sender_sid, receiver_sid, sender_name, text, timestamp, user_deleted)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		msg.SenderSID, msg.ReceiverSID, msg.SenderName, msg.Text, msg.Timestamp, msg.UserDeleted)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	msg.ID = id

	return id, nil
}

// HistoryForSession returns every non-soft-deleted message the session sent
// or received, in ascending timestamp order.
func (s *SQLiteStore) HistoryForSession(ctx context.Context, sid string) ([]*store.Message, error) {
	query := `
		SELECT id, sender_sid, receiver_sid, sender_name, text, timestamp, user_deleted
		FROM messages
		WHERE (sender_sid = ? OR receiver_sid = ?) AND user_deleted = 0
		ORDER BY timestamp ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, sid, sid)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var messages []*store.Message
	for rows.Next() {
		var msg store.Message
		if err := rows.Scan(&msg.ID, &msg.SenderSID, &msg.ReceiverSID,
			&msg.SenderName, &msg.Text, &msg.Timestamp, &msg.UserDeleted); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, &msg)
	}

	return messages, rows.Err()
}

// MarkSenderDeleted soft-deletes all messages authored by the session.
func (s *SQLiteStore) MarkSenderDeleted(ctx context.Context, sid string) error {
	query := `UPDATE messages SET user_deleted = 1 WHERE sender_sid = ?`
	if _, err := s.db.ExecContext(ctx, query, sid); err != nil {
		return fmt.Errorf("mark sender deleted: %w", err)
	}
	return nil
}

// ==== TokenStore implementation ====

// FindToken looks up an admin token by its value.
func (s *SQLiteStore) FindToken(ctx context.Context, token string) (*store.AdminToken, error) {
	query := `
		SELECT id, token, name, created_at, COALESCE(last_sid, '')
		FROM admin_tokens
		WHERE token = ?
	`
	var at store.AdminToken
	err := s.db.QueryRowContext(ctx, query, token).Scan(
		&at.ID, &at.Token, &at.Name, &at.CreatedAt, &at.LastSID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query token: %w", err)
	}

	return &at, nil
}

// UpsertToken inserts the token, or rewrites name and last_sid on conflict.
func (s *SQLiteStore) UpsertToken(ctx context.Context, at *store.AdminToken) error {
	query := `
		INSERT INTO admin_tokens (token, name, created_at, last_sid)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET name = excluded.name, last_sid = excluded.last_sid
	`
	result, err := s.db.ExecContext(ctx, query, at.Token, at.Name, at.CreatedAt, at.LastSID)
	if err != nil {
		return fmt.Errorf("upsert token: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil && id > 0 {
		at.ID = id
	}

	return nil
}
