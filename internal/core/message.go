package core

import (
	"time"

	"github.com/worakan/supportchat-server/internal/store"
)

// Recipient addresses a routed message: either the whole admin pool or one
// concrete session. The zero value is the admin broadcast.
type Recipient struct {
	sid string
}

// BroadcastAdmins addresses whichever admins are online.
func BroadcastAdmins() Recipient {
	return Recipient{}
}

// ToSession addresses a single session.
func ToSession(sid string) Recipient {
	return Recipient{sid: sid}
}

// IsBroadcast reports whether the recipient is the admin pool.
func (r Recipient) IsBroadcast() bool {
	return r.sid == ""
}

// SessionID returns the target session id, or "" for a broadcast.
func (r Recipient) SessionID() string {
	return r.sid
}

// Message is the domain model for a routed chat message.
type Message struct {
	ID         int64
	SenderSID  string
	To         Recipient
	SenderName string
	Text       string
	SentAt     time.Time
}

// record maps the message to its persisted form. The broadcast recipient
// is encoded as the reserved receiver value.
func (m *Message) record() *store.Message {
	receiver := m.To.SessionID()
	if m.To.IsBroadcast() {
		receiver = store.BroadcastReceiver
	}
	return &store.Message{
		ID:          m.ID,
		SenderSID:   m.SenderSID,
		ReceiverSID: receiver,
		SenderName:  m.SenderName,
		Text:        m.Text,
		Timestamp:   m.SentAt,
	}
}
