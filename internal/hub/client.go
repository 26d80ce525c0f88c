package hub

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/soar/joymap/internal/engine"
)

const replyTimeout = 2 * time.Second

var (
	errQueueFull = errors.New("command queue full")
	errTimeout   = errors.New("no reply from input loop")
)

// CommandSubmitter queues commands for the input loop.
type CommandSubmitter interface {
	Submit(engine.Command) bool
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer func() {
		c.conn.Close()
	}()

	for msg := range c.send {
		err := c.conn.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			break
		}
	}
}

// ReadPumpWithHandler reads messages from the WebSocket and passes client
// commands to the input loop, acknowledging each one.
func (c *Client) ReadPumpWithHandler(sink CommandSubmitter) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Error parsing client message: %v", err)
			continue
		}

		err = Dispatch(sink, clientMsg.Command())
		data, _ := json.Marshal(NewAckMessage(clientMsg.Type, err))
		c.hub.Send(c, data)
	}
}

// Dispatch submits cmd and waits for the input loop to carry it out.
func Dispatch(sink CommandSubmitter, cmd engine.Command) error {
	if !cmd.Valid() {
		return engine.ErrUnknownCommand
	}
	cmd.Reply = make(chan error, 1)
	if !sink.Submit(cmd) {
		return errQueueFull
	}
	select {
	case err := <-cmd.Reply:
		return err
	case <-time.After(replyTimeout):
		return errTimeout
	}
}
