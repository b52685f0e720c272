package core

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/worakan/supportchat-server/internal/auth"
	"github.com/worakan/supportchat-server/internal/store"
)

// Hub is the single routing authority: it owns the presence registry and
// serializes every inbound command through one run loop, so handlers never
// race on shared state.
type Hub struct {
	store    store.Store
	verifier *auth.Verifier
	registry *Registry
	log      *zerolog.Logger

	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

// NewHub constructs the hub with its collaborators. adminNames seeds the
// registry's codename pool.
func NewHub(st store.Store, verifier *auth.Verifier, adminNames []string, logger *zerolog.Logger) *Hub {
	return &Hub{
		store:      st,
		verifier:   verifier,
		registry:   NewRegistry(adminNames),
		log:        logger,
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand, 64),
	}
}

// RegisterClient attaches a transport connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient detaches a connection; the hub runs the disconnect path.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes registrations and commands until the context is canceled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.clients[c.ID] = c
			go h.pump(ctx, c)
		case c := <-h.unregister:
			if h.clients[c.ID] == c {
				delete(h.clients, c.ID)
				close(c.done)
				h.handleDisconnect(ctx, c.ID)
			}
		case cc := <-h.commands:
			h.dispatch(ctx, cc.client, cc.cmd)
		case <-ctx.Done():
			return
		}
	}
}

// pump forwards a client's commands into the hub's serialized queue.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-ctx.Done():
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// dispatch runs one handler to completion. A handler failure must never
// take down the routing loop.
func (h *Hub) dispatch(ctx context.Context, c *Client, cmd *Command) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Str("sid", c.ID).Msg("handler panic recovered")
		}
	}()

	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(ctx, c, cmd.Name, cmd.AdminToken)
	case CommandAdminLogin:
		h.handleAdminLogin(ctx, c, cmd.Code)
	case CommandSendMessage:
		h.handleMessage(ctx, c, cmd.Text, cmd.TargetSID)
	case CommandClearChat:
		h.handleClearChat(ctx, c)
	case CommandAdminLogout:
		h.handleAdminLogout(c)
	default:
		h.log.Warn().Int("kind", int(cmd.Kind)).Str("sid", c.ID).Msg("unknown command")
	}
}

func (h *Hub) handleJoin(ctx context.Context, c *Client, preferred, adminToken string) {
	nick := strings.TrimSpace(preferred)
	if nick == "" {
		nick = randomVisitorName()
	}
	h.registry.Register(c.ID, nick)
	h.send(c, &Event{Kind: EventSetIdentity, Name: nick, SID: c.ID})

	// Token-based admin re-authentication. An unknown token is silently
	// ignored and the session stays a visitor.
	if adminToken != "" {
		at, err := h.store.FindToken(ctx, adminToken)
		switch {
		case errors.Is(err, store.ErrNotFound):
		case err != nil:
			h.log.Error().Err(err).Str("sid", c.ID).Str("op", "find_token").Msg("token lookup failed")
		default:
			at.LastSID = c.ID
			if err := h.store.UpsertToken(ctx, at); err != nil {
				// Persist first, promote after: a session whose token
				// rebind did not land stays a visitor.
				h.log.Error().Err(err).Str("sid", c.ID).Str("op", "rebind_token").Msg("token rebind failed")
			} else {
				h.registry.PromoteToAdmin(c.ID, at.Name)
				h.send(c, &Event{Kind: EventAdminStatus, IsAdmin: true, Name: at.Name})
				h.sendContactList(c)
				h.broadcastAdminRoster(c.ID)
			}
		}
	}

	if sess := h.registry.Session(c.ID); sess != nil && sess.IsAdmin() {
		h.sendContactList(c)
	}

	history, err := h.store.HistoryForSession(ctx, c.ID)
	if err != nil {
		h.log.Error().Err(err).Str("sid", c.ID).Str("op", "history").Msg("history replay failed")
		return
	}
	for _, msg := range history {
		h.send(c, &Event{Kind: EventNewMsg, User: msg.SenderName, Text: msg.Text})
	}
}

func (h *Hub) handleAdminLogin(ctx context.Context, c *Client, code string) {
	if !h.verifier.Verify(code) {
		h.send(c, &Event{Kind: EventSysMsg, Msg: noticeInvalidCode})
		return
	}

	name := h.registry.AllocateAdminName()
	token := mintToken()
	at := &store.AdminToken{
		Token:     token,
		Name:      name,
		CreatedAt: time.Now().UTC(),
		LastSID:   c.ID,
	}
	if err := h.store.UpsertToken(ctx, at); err != nil {
		h.log.Error().Err(err).Str("sid", c.ID).Str("op", "mint_token").Msg("token persist failed")
		h.registry.ReleaseAdminName(name)
		return
	}

	h.registry.PromoteToAdmin(c.ID, name)
	h.send(c, &Event{Kind: EventAdminStatus, IsAdmin: true, Name: name})
	h.send(c, &Event{Kind: EventAdminToken, Token: token})
	h.send(c, &Event{Kind: EventSysMsg, Msg: noticeAdminLoggedIn})
	h.sendContactList(c)
	h.broadcastAdminRoster(c.ID)
}

func (h *Hub) handleMessage(ctx context.Context, c *Client, text, targetSID string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	// Legacy inline login: "/login <passphrase>" promotes without minting
	// a token. A wrong passphrase falls through as an ordinary message.
	if code, ok := strings.CutPrefix(text, "/login "); ok && h.verifier.Verify(code) {
		name := h.registry.AllocateAdminName()
		h.registry.PromoteToAdmin(c.ID, name)
		h.send(c, &Event{Kind: EventAdminStatus, IsAdmin: true, Name: name})
		h.send(c, &Event{Kind: EventSysMsg, Msg: noticeAdminLoggedIn})
		return
	}

	sess := h.registry.Session(c.ID)
	if sess == nil {
		h.log.Warn().Str("sid", c.ID).Msg("message from unjoined session dropped")
		return
	}

	var msg *Message
	if !sess.IsAdmin() {
		msg = &Message{
			SenderSID:  c.ID,
			To:         BroadcastAdmins(),
			SenderName: sess.Name,
			Text:       text,
			SentAt:     time.Now().UTC(),
		}
		if !h.registry.HasAdmins() {
			h.send(c, &Event{Kind: EventSysMsg, Msg: noticeNoAdminOnline})
		}
		for _, sid := range h.registry.AdminSIDs() {
			h.sendTo(sid, &Event{Kind: EventNewMsg, User: sess.Name, Text: text, FromSID: c.ID})
		}
		h.send(c, &Event{Kind: EventNewMsg, User: echoSelfLabel, Text: text})
	} else {
		if targetSID == "" {
			// Malformed admin reply, dropped.
			return
		}
		targetName := targetSID
		if target := h.registry.Session(targetSID); target != nil {
			targetName = target.Name
		}
		msg = &Message{
			SenderSID:  c.ID,
			To:         ToSession(targetSID),
			SenderName: adminSenderName,
			Text:       text,
			SentAt:     time.Now().UTC(),
		}
		h.sendTo(targetSID, &Event{Kind: EventNewMsg, User: adminSenderName, Text: text})
		for _, sid := range h.registry.AdminSIDs() {
			h.sendTo(sid, &Event{Kind: EventNewMsg, User: replyToLabel(targetName), Text: text, FromSID: targetSID})
		}
	}

	id, err := h.store.AppendMessage(ctx, msg.record())
	if err != nil {
		h.log.Error().Err(err).Str("sid", c.ID).Str("op", "append_message").Msg("message persist failed")
		return
	}
	h.send(c, &Event{Kind: EventMessageAck, AckStatus: "saved", AckID: id})
	h.refreshAdminContactLists()
}

func (h *Hub) handleClearChat(ctx context.Context, c *Client) {
	if err := h.store.MarkSenderDeleted(ctx, c.ID); err != nil {
		h.log.Error().Err(err).Str("sid", c.ID).Str("op", "clear_chat").Msg("soft delete failed")
		return
	}
	h.send(c, &Event{Kind: EventClearScreen})
}

func (h *Hub) handleAdminLogout(c *Client) {
	sess := h.registry.Session(c.ID)
	demoted := sess != nil && sess.IsAdmin()
	if demoted {
		h.registry.Demote(c.ID)
	}
	h.send(c, &Event{Kind: EventAdminStatus, IsAdmin: false})
	if demoted {
		h.broadcastAdminRoster("")
	}
}

func (h *Hub) handleDisconnect(_ context.Context, sid string) {
	h.registry.Remove(sid)
	h.refreshAdminContactLists()
}

// send delivers an event to one client; a full buffer means the consumer
// is gone or stuck, so the event is dropped and logged.
func (h *Hub) send(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		h.log.Warn().Str("sid", c.ID).Int("kind", int(ev.Kind)).Msg("event dropped, slow consumer")
	}
}

func (h *Hub) sendTo(sid string, ev *Event) {
	if c, ok := h.clients[sid]; ok {
		h.send(c, ev)
	}
}

// sendContactList sends an admin its view of all other sessions.
func (h *Hub) sendContactList(c *Client) {
	h.send(c, &Event{Kind: EventUserList, Users: h.registry.SnapshotAllForAdmin(c.ID)})
}

// broadcastAdminRoster sends the admin roster to every admin except one.
func (h *Hub) broadcastAdminRoster(excludeSID string) {
	roster := h.registry.SnapshotAdmins()
	for _, sid := range h.registry.AdminSIDs() {
		if sid == excludeSID {
			continue
		}
		h.sendTo(sid, &Event{Kind: EventUserList, Users: roster})
	}
}

// refreshAdminContactLists pushes each admin its own contact list view,
// covering visitors that joined since the last push.
func (h *Hub) refreshAdminContactLists() {
	for _, sid := range h.registry.AdminSIDs() {
		if c, ok := h.clients[sid]; ok {
			h.sendContactList(c)
		}
	}
}

// mintToken creates a fresh 128-bit hex admin token. Every passphrase
// login mints a new one, even for a returning admin.
func mintToken() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
