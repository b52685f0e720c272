package http

import (
	"encoding/json"
	"testing"

	"github.com/worakan/supportchat-server/internal/core"
	"github.com/worakan/supportchat-server/internal/proto"
)

func TestInboundToCommand(t *testing.T) {
	tests := []struct {
		name    string
		inbound proto.Inbound
		want    core.Command
		wantErr bool
	}{
		{
			name:    "join with name and token",
			inbound: proto.Inbound{Type: "join", Data: json.RawMessage(`{"name":"visitor","admin_token":"abc"}`)},
			want:    core.Command{Kind: core.CommandJoin, Name: "visitor", AdminToken: "abc"},
		},
		{
			name:    "join without payload",
			inbound: proto.Inbound{Type: "join"},
			want:    core.Command{Kind: core.CommandJoin},
		},
		{
			name:    "admin login",
			inbound: proto.Inbound{Type: "admin_login", Data: json.RawMessage(`{"code":"secret"}`)},
			want:    core.Command{Kind: core.CommandAdminLogin, Code: "secret"},
		},
		{
			name:    "message with target",
			inbound: proto.Inbound{Type: "message", Data: json.RawMessage(`{"text":"hi","target_sid":"v1"}`)},
			want:    core.Command{Kind: core.CommandSendMessage, Text: "hi", TargetSID: "v1"},
		},
		{
			name:    "clear chat",
			inbound: proto.Inbound{Type: "clear_my_chat"},
			want:    core.Command{Kind: core.CommandClearChat},
		},
		{
			name:    "admin logout",
			inbound: proto.Inbound{Type: "admin_logout"},
			want:    core.Command{Kind: core.CommandAdminLogout},
		},
		{
			name:    "unknown type",
			inbound: proto.Inbound{Type: "teleport"},
			wantErr: true,
		},
		{
			name:    "malformed payload",
			inbound: proto.Inbound{Type: "message", Data: json.RawMessage(`{`)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := inboundToCommand(tt.inbound)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *cmd != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, *cmd)
			}
		})
	}
}

func TestOutboundFromEvent(t *testing.T) {
	ev := &core.Event{Kind: core.EventNewMsg, User: "ADMIN", Text: "hi", FromSID: "v1"}
	out := outboundFromEvent(ev)
	if out.Type != proto.OutboundTypeNewMsg {
		t.Fatalf("unexpected type: %s", out.Type)
	}
	data, ok := out.Data.(proto.NewMsgData)
	if !ok {
		t.Fatalf("unexpected data: %T", out.Data)
	}
	if data.User != "ADMIN" || data.Text != "hi" || data.FromSID != "v1" {
		t.Fatalf("unexpected payload: %+v", data)
	}

	list := outboundFromEvent(&core.Event{Kind: core.EventUserList, Users: []core.UserEntry{{SID: "v1", Name: "visitor"}}})
	if list.Type != proto.OutboundTypeUserList {
		t.Fatalf("unexpected type: %s", list.Type)
	}
	users, ok := list.Data.([]proto.UserEntry)
	if !ok || len(users) != 1 || users[0].SID != "v1" {
		t.Fatalf("unexpected user list: %+v", list.Data)
	}
}
