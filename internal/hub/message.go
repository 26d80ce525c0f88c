package hub

import (
	"time"

	"github.com/soar/joymap/internal/engine"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string               `json:"type"`              // "full", "delta" or "ack"
	Seq       int64                `json:"seq"`               // Sequence number for ordering
	Timestamp int64                `json:"timestamp"`         // Unix timestamp in milliseconds
	Data      *engine.State        `json:"data,omitempty"`    // Full state for type "full"
	Changes   *engine.DeltaChanges `json:"changes,omitempty"` // Changed fields for type "delta"
	Command   string               `json:"command,omitempty"` // Acknowledged command for type "ack"
	OK        bool                 `json:"ok,omitempty"`
	Error     string               `json:"error,omitempty"`
}

// NewFullMessage creates a "full" type message containing the complete state.
func NewFullMessage(seq int64, state *engine.State) *WSMessage {
	return &WSMessage{
		Type:      "full",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      state,
	}
}

// NewDeltaMessage creates a "delta" type message containing only changed fields.
func NewDeltaMessage(seq int64, changes *engine.DeltaChanges) *WSMessage {
	return &WSMessage{
		Type:      "delta",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
	}
}

// NewAckMessage reports the outcome of a client command.
func NewAckMessage(command string, err error) *WSMessage {
	msg := &WSMessage{
		Type:      "ack",
		Timestamp: time.Now().UnixMilli(),
		Command:   command,
		OK:        err == nil,
	}
	if err != nil {
		msg.Error = err.Error()
	}
	return msg
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type     string `json:"type"`
	Position int    `json:"position,omitempty"` // select_device, -1 for none
	On       bool   `json:"on,omitempty"`       // silent
}

// Command converts the message to an engine command.
func (m ClientMessage) Command() engine.Command {
	return engine.Command{
		Kind:     engine.CommandKind(m.Type),
		Position: m.Position,
		On:       m.On,
	}
}
