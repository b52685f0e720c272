package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/worakan/supportchat-server/internal/auth"
	"github.com/worakan/supportchat-server/internal/config"
	"github.com/worakan/supportchat-server/internal/core"
	"github.com/worakan/supportchat-server/internal/log"
	"github.com/worakan/supportchat-server/internal/proto"
	"github.com/worakan/supportchat-server/internal/store/sqlite"
)

func startTestServer(t *testing.T) (*httptest.Server, context.CancelFunc) {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := log.New("error")
	hub := core.NewHub(st, auth.NewVerifier("test-pass", ""), []string{"Sword", "Shield"}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	server := NewServer(hub, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, cancel
}

func TestHealthEndpoint(t *testing.T) {
	ts, cancel := startTestServer(t)
	defer cancel()

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWebSocketJoinAndMessage(t *testing.T) {
	ts, cancel := startTestServer(t)
	defer cancel()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	send := func(typ string, data any) {
		t.Helper()
		payload, _ := json.Marshal(data)
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
			t.Fatalf("write %s: %v", typ, err)
		}
	}

	read := func() (string, json.RawMessage) {
		t.Helper()
		var outbound struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			t.Fatalf("read outbound: %v", err)
		}
		return outbound.Type, outbound.Data
	}

	send(proto.InboundTypeJoin, proto.JoinData{Name: "visitor"})

	typ, data := read()
	if typ != proto.OutboundTypeSetIdentity {
		t.Fatalf("expected set_identity, got %s", typ)
	}
	var ident proto.SetIdentityData
	if err := json.Unmarshal(data, &ident); err != nil {
		t.Fatalf("unmarshal identity: %v", err)
	}
	if ident.Name != "visitor" || ident.ID == "" {
		t.Fatalf("unexpected identity: %+v", ident)
	}

	send(proto.InboundTypeMessage, proto.MessageData{Text: "hello"})

	// No admin online: notice, then the sender's own echo.
	typ, _ = read()
	if typ != proto.OutboundTypeSysMsg {
		t.Fatalf("expected sys_msg, got %s", typ)
	}
	typ, data = read()
	if typ != proto.OutboundTypeNewMsg {
		t.Fatalf("expected new_msg, got %s", typ)
	}
	var msg proto.NewMsgData
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal new_msg: %v", err)
	}
	if msg.Text != "hello" || msg.FromSID != "" {
		t.Fatalf("unexpected echo: %+v", msg)
	}

	typ, data = read()
	if typ != proto.OutboundTypeMessageAck {
		t.Fatalf("expected message_ack, got %s", typ)
	}
	var ack proto.MessageAckData
	if err := json.Unmarshal(data, &ack); err != nil {
		t.Fatalf("unmarshal ack: %v", err)
	}
	if ack.Status != "saved" || ack.ID == 0 {
		t.Fatalf("unexpected ack: %+v", ack)
	}
}
