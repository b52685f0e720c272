package proto

import "encoding/json"

// Inbound is the envelope for events coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	InboundTypeJoin        = "join"
	InboundTypeAdminLogin  = "admin_login"
	InboundTypeMessage     = "message"
	InboundTypeClearChat   = "clear_my_chat"
	InboundTypeAdminLogout = "admin_logout"

	OutboundTypeSetIdentity = "set_identity"
	OutboundTypeAdminStatus = "admin_status"
	OutboundTypeAdminToken  = "admin_token"
	OutboundTypeSysMsg      = "sys_msg"
	OutboundTypeUserList    = "user_list"
	OutboundTypeNewMsg      = "new_msg"
	OutboundTypeMessageAck  = "message_ack"
	OutboundTypeClearScreen = "clear_screen"
)

// JoinData introduces a session, optionally with a preferred display name
// and a previously issued admin token.
type JoinData struct {
	Name       string `json:"name,omitempty"`
	AdminToken string `json:"admin_token,omitempty"`
}

// AdminLoginData carries the admin passphrase attempt.
type AdminLoginData struct {
	Code string `json:"code"`
}

// MessageData is a chat message from the client. TargetSID is set only on
// admin replies.
type MessageData struct {
	Text      string `json:"text"`
	TargetSID string `json:"target_sid,omitempty"`
}

// Outbound is the envelope for events sent to the client.
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// SetIdentityData tells the joining session its assigned identity.
type SetIdentityData struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// AdminStatusData notifies a session of its admin privilege.
type AdminStatusData struct {
	IsAdmin bool   `json:"is_admin"`
	Name    string `json:"name,omitempty"`
}

// AdminTokenData delivers a freshly minted admin token.
type AdminTokenData struct {
	Token string `json:"token"`
}

// SysMsgData carries a localized system notice.
type SysMsgData struct {
	Msg string `json:"msg"`
}

// UserEntry is one row of a user_list payload.
type UserEntry struct {
	SID  string `json:"sid"`
	Name string `json:"name"`
}

// NewMsgData delivers a chat message. FromSID is present only on copies
// relayed to admins.
type NewMsgData struct {
	User    string `json:"user"`
	Text    string `json:"text"`
	FromSID string `json:"from_sid,omitempty"`
}

// MessageAckData confirms a message reached storage.
type MessageAckData struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}
