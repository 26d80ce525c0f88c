// Package gamepad is the SDL3 side of the input subsystem: it opens
// controllers, pumps SDL events and runs the per-tick input loop that feeds
// the engine.
package gamepad

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/joymap/internal/engine"
	"github.com/soar/joymap/internal/joystick"
)

// Options configures a Reader.
type Options struct {
	Poll      time.Duration
	Rumble    bool
	GamepadDB string

	// OnInit runs on the input thread once SDL is up.
	OnInit func()
}

// Reader owns SDL and the joystick context. Everything SDL related happens
// on the goroutine running Run; other goroutines talk to it with Submit and
// listen on Changes.
type Reader struct {
	opts  Options
	prefs joystick.Preferences

	state     engine.State
	prevState engine.State
	commands  chan engine.Command
	changes   chan engine.State
	mu        sync.RWMutex
}

func NewReader(prefs joystick.Preferences, opts Options) *Reader {
	return &Reader{
		opts:     opts,
		prefs:    prefs,
		commands: make(chan engine.Command, 16),
		changes:  make(chan engine.State, 64),
	}
}

// Changes returns the channel on which state changes are sent.
func (r *Reader) Changes() <-chan engine.State {
	return r.changes
}

// CurrentState returns a snapshot of the current state.
func (r *Reader) CurrentState() engine.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Submit queues a command for the input loop. Returns false if the queue is
// full.
func (r *Reader) Submit(cmd engine.Command) bool {
	select {
	case r.commands <- cmd:
		return true
	default:
		log.Printf("Warning: command queue full, dropping %s", cmd)
		return false
	}
}

// Run initializes SDL and runs the event and polling loop on the current
// thread until ctx is cancelled.
func (r *Reader) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// SDL reads the mapping hint when the gamepad subsystem starts
	if err := loadGamepadDB(r.opts.GamepadDB); err != nil {
		log.Printf("Warning: %v", err)
	}

	if !sdl.Init(sdl.InitJoystick | sdl.InitGamepad) {
		return fmt.Errorf("SDL init failed: %s", sdl.GetError())
	}
	defer sdl.Quit()

	log.Println("SDL3 joystick and gamepad subsystems initialized")

	if r.opts.OnInit != nil {
		r.opts.OnInit()
	}

	hw := &hardware{}
	eng := engine.New(joystick.NewInput(hw, r.prefs, r.opts.Rumble))

	// devices must be closed before sdl.Quit
	defer eng.Close()

	r.publish(eng)

	pollDelayNS := uint64(r.opts.Poll.Nanoseconds())
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		r.processEvents(hw, eng)
		r.processCommands(eng)
		eng.Tick()
		r.publish(eng)
		sdl.DelayNS(pollDelayNS)
	}
}

func (r *Reader) processEvents(hw *hardware, eng *engine.Engine) {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		ev := hw.translate(&event)
		if ev.Kind != joystick.EventOther {
			eng.HandleEvent(ev)
		}
	}
}

func (r *Reader) processCommands(eng *engine.Engine) {
	for {
		select {
		case cmd := <-r.commands:
			err := eng.Execute(cmd)
			if err != nil {
				log.Printf("Command %s failed: %v", cmd, err)
			}
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- err:
				default:
				}
			}
		default:
			return
		}
	}
}

// publish records the engine state and emits it if anything changed.
func (r *Reader) publish(eng *engine.Engine) {
	state := eng.State()

	r.mu.Lock()
	delta := engine.ComputeDelta(r.prevState, state)
	if delta.IsEmpty() {
		r.mu.Unlock()
		return
	}
	r.state = state
	r.prevState = state
	r.mu.Unlock()

	select {
	case r.changes <- state:
	default:
		// Drop if channel is full to avoid blocking the SDL thread
	}
}
