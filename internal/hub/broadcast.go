package hub

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soar/joymap/internal/engine"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// StateSource provides the current state for newly connected clients.
type StateSource interface {
	CurrentState() engine.State
}

// Broadcaster listens for state changes and broadcasts them to the hub.
type Broadcaster struct {
	hub     *Hub
	source  StateSource
	changes <-chan engine.State
	seq     atomic.Int64

	mu        sync.Mutex
	lastState engine.State
}

func NewBroadcaster(h *Hub, source StateSource, changes <-chan engine.State) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		source:  source,
		changes: changes,
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine. Returns
// when the changes channel is closed.
func (b *Broadcaster) Run() {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	var deltaCount int64

	for {
		select {
		case state, ok := <-b.changes:
			if !ok {
				return
			}

			b.mu.Lock()
			delta := engine.ComputeDelta(b.lastState, state)
			b.lastState = state
			b.mu.Unlock()

			if delta.IsEmpty() {
				continue
			}

			deltaCount++

			// Send full sync periodically
			if deltaCount >= deltaCountSync {
				b.sendFull(state)
				deltaCount = 0
			} else {
				b.sendDelta(delta)
			}

		case <-ticker.C:
			b.mu.Lock()
			state := b.lastState
			b.mu.Unlock()
			b.sendFull(state)
		}
	}
}

// SendInitialState sends the current full state to a newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	state := b.source.CurrentState()
	data, err := json.Marshal(NewFullMessage(b.seq.Add(1), &state))
	if err != nil {
		log.Printf("Error marshaling initial state: %v", err)
		return
	}
	b.hub.Send(c, data)
}

func (b *Broadcaster) sendFull(state engine.State) {
	data, err := json.Marshal(NewFullMessage(b.seq.Add(1), &state))
	if err != nil {
		log.Printf("Error marshaling full message: %v", err)
		return
	}
	b.hub.Broadcast(data)
}

func (b *Broadcaster) sendDelta(delta *engine.DeltaChanges) {
	data, err := json.Marshal(NewDeltaMessage(b.seq.Add(1), delta))
	if err != nil {
		log.Printf("Error marshaling delta message: %v", err)
		return
	}
	b.hub.Broadcast(data)
}
