// Package engine ties the joystick context and the remap wizard together
// for the input loop. It executes client commands, advances the wizard and
// produces display state. It does not talk to SDL, so it can be driven by
// the fakes in joysticktest.
package engine

import (
	"errors"
	"fmt"
	"log"

	"github.com/soar/joymap/internal/joystick"
	"github.com/soar/joymap/internal/wizard"
)

var (
	ErrBusy           = errors.New("a configuration session is in progress")
	ErrNoSession      = errors.New("no configuration session")
	ErrBadPosition    = errors.New("device position out of range")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoSavedConfig  = errors.New("no saved configuration for this controller")
)

// SyncTicks is how often Tick rescans the hardware: about once a second at
// the default polling interval. Hot-plug events can be lost.
const SyncTicks = 60

// Engine is owned by the input loop and is not safe for concurrent use.
type Engine struct {
	input   *joystick.Input
	session *wizard.Session

	syncTick int
}

// New wraps a joystick context that has already run its initial setup.
func New(inp *joystick.Input) *Engine {
	return &Engine{input: inp}
}

// Input returns the joystick context.
func (e *Engine) Input() *joystick.Input {
	return e.input
}

// HandleEvent passes a hardware event to the joystick context.
func (e *Engine) HandleEvent(ev joystick.Event) {
	e.input.HandleEvent(ev, false)
}

// Tick advances the wizard if one is running. Otherwise it rescans the
// hardware every SyncTicks ticks.
func (e *Engine) Tick() {
	if e.session == nil {
		e.syncTick++
		if e.syncTick >= SyncTicks {
			e.syncTick = 0
			if e.input.Synchronize() {
				log.Printf("Controller list changed without a hot-plug event")
			}
		}
		return
	}
	e.session.Tick()
	if e.session.Done() {
		e.session = nil
	}
}

// Execute carries out a client command.
func (e *Engine) Execute(cmd Command) error {
	switch cmd.Kind {
	case SelectDevice, UseDefault, UseSaved, Rescan, ConfigureStart, SetSilent:
		if e.session != nil {
			return fmt.Errorf("%s: %w", cmd, ErrBusy)
		}
	case ConfigureBack, ConfigureApply, ConfigureCancel:
		if e.session == nil {
			return fmt.Errorf("%s: %w", cmd, ErrNoSession)
		}
	}

	switch cmd.Kind {
	case SelectDevice:
		pos := cmd.Position
		if pos == -1 {
			pos = joystick.NoDevice
		} else if pos < 0 || pos >= len(e.input.Registry.Devices()) {
			return fmt.Errorf("%s: %w", cmd, ErrBadPosition)
		}
		e.input.Registry.ChangeDevice(pos)
		if err := e.input.SetSelectionPreferences(); err != nil {
			return fmt.Errorf("saving selection: %w", err)
		}

	case UseDefault:
		e.input.Mapping.UseDefaultConfig()

	case UseSaved:
		if !e.input.Mapping.CanUsePreferences() {
			return fmt.Errorf("%s: %w", cmd, ErrNoSavedConfig)
		}
		e.input.Mapping.ConfigureFromPreferences()

	case Rescan:
		if e.input.Synchronize() {
			log.Printf("Controller list changed after rescan")
		}

	case ConfigureStart:
		s, err := wizard.Start(e.input)
		if err != nil {
			return err
		}
		e.session = s

	case ConfigureBack:
		e.session.Back()

	case ConfigureApply:
		err := e.session.Apply()
		if e.session.Done() {
			e.session = nil
		}
		return err

	case ConfigureCancel:
		e.session.Cancel()
		e.session = nil

	case SetSilent:
		e.input.SetSilent(cmd.On)

	default:
		return fmt.Errorf("%q: %w", string(cmd.Kind), ErrUnknownCommand)
	}

	return nil
}

// State builds the display snapshot.
func (e *Engine) State() State {
	inp := e.input
	s := State{
		Selected:     inp.Registry.CurrentPosition(),
		UsingDefault: inp.Mapping.UsingDefault(),
		CanUseSaved:  inp.Mapping.CanUsePreferences(),
		Silent:       inp.Silent(),
	}
	if s.Selected == joystick.NoDevice {
		s.Selected = -1
	}

	if d := inp.Mapping.Device(); d != nil {
		s.Connected = true
		s.Name = d.Name()
		s.GUID = d.GUID()
		s.ID = int32(d.InstanceID())
	}

	snap := inp.Snapshot()
	s.Controls = ControlState{
		Up:     snap[joystick.ControlUp],
		Down:   snap[joystick.ControlDown],
		Left:   snap[joystick.ControlLeft],
		Right:  snap[joystick.ControlRight],
		Attack: snap[joystick.ControlAttack],
		Jump:   snap[joystick.ControlJump],
		Tongue: snap[joystick.ControlTongue],
	}

	names := inp.Registry.Names()
	for i, d := range inp.Registry.Devices() {
		s.Devices = append(s.Devices, DeviceInfo{
			Name: names[i],
			GUID: d.GUID(),
			ID:   int32(d.InstanceID()),
			Mode: d.Mode().String(),
		})
	}

	if e.session != nil {
		st := e.session.Status()
		s.Wizard = &st
	}

	return s
}

// Close ends any wizard session and releases every device.
func (e *Engine) Close() {
	if e.session != nil {
		e.session.Cancel()
		e.session = nil
	}
	e.input.Close()
}
