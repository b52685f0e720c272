// Command ws_chat is an interactive terminal client for manual testing.
//
// Plain lines are sent as chat messages. Commands:
//
//	/admin <code>    log in as admin
//	/to <sid> <msg>  reply to a visitor (admin only)
//	/clear           clear own chat history
//	/logout          drop admin privilege
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/worakan/supportchat-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	name := flag.String("name", "", "preferred display name")
	token := flag.String("token", "", "admin token from a previous login")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(typ string, data any) {
		payload, err := json.Marshal(data)
		if err != nil {
			log.Printf("marshal: %v", err)
			return
		}
		if writeErr := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); writeErr != nil {
			cancel()
			log.Printf("send: %v", writeErr)
		}
	}

	send(proto.InboundTypeJoin, proto.JoinData{Name: *name, AdminToken: *token})

	go func() {
		for {
			var outbound struct {
				Type string          `json:"type"`
				Data json.RawMessage `json:"data"`
			}
			if err := wsjson.Read(ctx, conn, &outbound); err != nil {
				if !errors.Is(err, context.Canceled) {
					log.Printf("read: %v", err)
				}
				cancel()
				return
			}
			printOutbound(outbound.Type, outbound.Data)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case strings.HasPrefix(line, "/admin "):
			send(proto.InboundTypeAdminLogin, proto.AdminLoginData{Code: strings.TrimPrefix(line, "/admin ")})
		case strings.HasPrefix(line, "/to "):
			rest := strings.TrimPrefix(line, "/to ")
			sid, text, ok := strings.Cut(rest, " ")
			if !ok {
				fmt.Println("usage: /to <sid> <msg>")
				continue
			}
			send(proto.InboundTypeMessage, proto.MessageData{Text: text, TargetSID: sid})
		case line == "/clear":
			send(proto.InboundTypeClearChat, nil)
		case line == "/logout":
			send(proto.InboundTypeAdminLogout, nil)
		default:
			send(proto.InboundTypeMessage, proto.MessageData{Text: line})
		}
	}
	return scanner.Err()
}

func printOutbound(typ string, data json.RawMessage) {
	switch typ {
	case proto.OutboundTypeSetIdentity:
		var ident proto.SetIdentityData
		_ = json.Unmarshal(data, &ident)
		fmt.Printf("* you are %s (sid %s)\n", ident.Name, ident.ID)
	case proto.OutboundTypeAdminStatus:
		var status proto.AdminStatusData
		_ = json.Unmarshal(data, &status)
		if status.IsAdmin {
			fmt.Printf("* admin: %s\n", status.Name)
		} else {
			fmt.Println("* admin privilege dropped")
		}
	case proto.OutboundTypeAdminToken:
		var tok proto.AdminTokenData
		_ = json.Unmarshal(data, &tok)
		fmt.Printf("* token: %s\n", tok.Token)
	case proto.OutboundTypeSysMsg:
		var sys proto.SysMsgData
		_ = json.Unmarshal(data, &sys)
		fmt.Printf("* %s\n", sys.Msg)
	case proto.OutboundTypeUserList:
		var users []proto.UserEntry
		_ = json.Unmarshal(data, &users)
		fmt.Println("* users:")
		for _, u := range users {
			fmt.Printf("    %s  %s\n", u.SID, u.Name)
		}
	case proto.OutboundTypeNewMsg:
		var msg proto.NewMsgData
		_ = json.Unmarshal(data, &msg)
		if msg.FromSID != "" {
			fmt.Printf("[%s] %s (from %s)\n", msg.User, msg.Text, msg.FromSID)
		} else {
			fmt.Printf("[%s] %s\n", msg.User, msg.Text)
		}
	case proto.OutboundTypeMessageAck:
		var ack proto.MessageAckData
		_ = json.Unmarshal(data, &ack)
		fmt.Printf("* %s (id %d)\n", ack.Status, ack.ID)
	case proto.OutboundTypeClearScreen:
		fmt.Print("\033[2J\033[H")
	default:
		fmt.Printf("* %s %s\n", typ, string(data))
	}
}
