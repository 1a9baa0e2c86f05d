package controller

import "encoding/json"

// Realtime event names. These are the wire contract with the client and
// must not be renamed.
const (
	// client -> server
	EventSetup      = "setup"
	EventJoinChat   = "join chat"
	EventNewMessage = "new message"
	EventTyping     = "typing"
	EventStopTyping = "stop typing"

	// server -> client
	EventOnlineUsers     = "get-online-users"
	EventMessageReceived = "message received"
	EventMessagesRead    = "messages read"
	EventConnected       = "connected"
	EventError           = "error"
)

// inboundFrame is the envelope for every client -> server event.
type inboundFrame struct {
	Type    string          `json:"type"`
	UserID  string          `json:"userId,omitempty"`
	ChatID  string          `json:"chatId,omitempty"`
	Message json.RawMessage `json:"message,omitempty"`
}

// messageRef is the minimal shape pulled out of a relayed message object.
type messageRef struct {
	ID     string `json:"_id"`
	ChatID string `json:"chatId"`
	Sender struct {
		ID string `json:"_id"`
	} `json:"senderId"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type   string `json:"type"`
	ChatID string `json:"chatId,omitempty"`
}

type onlineUsersFrame struct {
	Type  string   `json:"type"`
	Users []string `json:"users"`
}

type relayFrame struct {
	Type    string          `json:"type"`
	Message json.RawMessage `json:"message,omitempty"`
	ChatID  string          `json:"chatId,omitempty"`
}
