package core

// Client is a connected session as seen by the hub. The transport layer
// feeds Commands and drains Events.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	// done is closed by the hub on unregister so the command pump stops.
	done chan struct{}
}

// NewClient constructs a client with initialized channels. The events
// buffer is sized to absorb a history replay burst on join.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 64),
		done:     make(chan struct{}),
	}
}
