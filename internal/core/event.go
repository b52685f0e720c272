package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventSetIdentity tells the joining session its display name and id.
	EventSetIdentity EventKind = iota
	// EventAdminStatus notifies a session that its admin privilege changed.
	EventAdminStatus
	// EventAdminToken delivers a freshly minted admin token.
	EventAdminToken
	// EventSysMsg carries a localized system notice.
	EventSysMsg
	// EventUserList delivers a contact list or admin roster snapshot.
	EventUserList
	// EventNewMsg delivers a chat message.
	EventNewMsg
	// EventMessageAck confirms a message was persisted.
	EventMessageAck
	// EventClearScreen tells the session to wipe its chat view.
	EventClearScreen
)

// Event is sent to clients to describe what happened in the system.
// Fields are filled depending on Kind.
type Event struct {
	Kind EventKind

	Name    string // EventSetIdentity, EventAdminStatus
	SID     string // EventSetIdentity
	IsAdmin bool   // EventAdminStatus
	Token   string // EventAdminToken
	Msg     string // EventSysMsg

	Users []UserEntry // EventUserList

	User    string // EventNewMsg: display label of the sender
	Text    string // EventNewMsg
	FromSID string // EventNewMsg: origin session for admin views

	AckStatus string // EventMessageAck
	AckID     int64  // EventMessageAck
}
