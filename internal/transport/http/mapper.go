package http

import (
	"encoding/json"
	"fmt"

	"github.com/worakan/supportchat-server/internal/core"
	"github.com/worakan/supportchat-server/internal/proto"
)

// inboundToCommand maps a wire envelope to a core command. Unknown event
// types and malformed payloads yield an error; the caller logs and keeps
// reading rather than surfacing a protocol error.
func inboundToCommand(inbound proto.Inbound) (*core.Command, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if len(inbound.Data) > 0 {
			if err := json.Unmarshal(inbound.Data, &join); err != nil {
				return nil, fmt.Errorf("decode join: %w", err)
			}
		}
		return &core.Command{
			Kind:       core.CommandJoin,
			Name:       join.Name,
			AdminToken: join.AdminToken,
		}, nil
	case proto.InboundTypeAdminLogin:
		var login proto.AdminLoginData
		if err := json.Unmarshal(inbound.Data, &login); err != nil {
			return nil, fmt.Errorf("decode admin_login: %w", err)
		}
		return &core.Command{
			Kind: core.CommandAdminLogin,
			Code: login.Code,
		}, nil
	case proto.InboundTypeMessage:
		var msg proto.MessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		return &core.Command{
			Kind:      core.CommandSendMessage,
			Text:      msg.Text,
			TargetSID: msg.TargetSID,
		}, nil
	case proto.InboundTypeClearChat:
		return &core.Command{Kind: core.CommandClearChat}, nil
	case proto.InboundTypeAdminLogout:
		return &core.Command{Kind: core.CommandAdminLogout}, nil
	default:
		return nil, fmt.Errorf("unknown inbound type %q", inbound.Type)
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventSetIdentity:
		return proto.Outbound{
			Type: proto.OutboundTypeSetIdentity,
			Data: proto.SetIdentityData{Name: event.Name, ID: event.SID},
		}
	case core.EventAdminStatus:
		return proto.Outbound{
			Type: proto.OutboundTypeAdminStatus,
			Data: proto.AdminStatusData{IsAdmin: event.IsAdmin, Name: event.Name},
		}
	case core.EventAdminToken:
		return proto.Outbound{
			Type: proto.OutboundTypeAdminToken,
			Data: proto.AdminTokenData{Token: event.Token},
		}
	case core.EventSysMsg:
		return proto.Outbound{
			Type: proto.OutboundTypeSysMsg,
			Data: proto.SysMsgData{Msg: event.Msg},
		}
	case core.EventUserList:
		users := make([]proto.UserEntry, 0, len(event.Users))
		for _, entry := range event.Users {
			users = append(users, proto.UserEntry{SID: entry.SID, Name: entry.Name})
		}
		return proto.Outbound{
			Type: proto.OutboundTypeUserList,
			Data: users,
		}
	case core.EventNewMsg:
		return proto.Outbound{
			Type: proto.OutboundTypeNewMsg,
			Data: proto.NewMsgData{User: event.User, Text: event.Text, FromSID: event.FromSID},
		}
	case core.EventMessageAck:
		return proto.Outbound{
			Type: proto.OutboundTypeMessageAck,
			Data: proto.MessageAckData{Status: event.AckStatus, ID: event.AckID},
		}
	case core.EventClearScreen:
		return proto.Outbound{Type: proto.OutboundTypeClearScreen}
	default:
		return proto.Outbound{Type: proto.OutboundTypeSysMsg}
	}
}
