package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin introduces a session, optionally re-authenticating an admin.
	CommandJoin CommandKind = iota
	// CommandAdminLogin requests admin privilege with a passphrase.
	CommandAdminLogin
	// CommandSendMessage delivers a chat message.
	CommandSendMessage
	// CommandClearChat soft-deletes the session's own message history.
	CommandClearChat
	// CommandAdminLogout drops admin privilege, keeping the token valid.
	CommandAdminLogout
)

// Command represents an action requested by a client. Fields are filled
// depending on Kind.
type Command struct {
	Kind       CommandKind
	Name       string // CommandJoin: preferred display name
	AdminToken string // CommandJoin: previously issued admin token
	Code       string // CommandAdminLogin: passphrase
	Text       string // CommandSendMessage
	TargetSID  string // CommandSendMessage: admin reply target
}
