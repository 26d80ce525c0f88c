package gamepad

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/joymap/internal/gamepad/layout"
	"github.com/soar/joymap/internal/joystick"
)

// hardware is the SDL implementation of joystick.Hardware. Slots index the
// most recent enumeration of attached joysticks.
type hardware struct {
	ids []sdl.JoystickID

	// every handle opened, so gamepads can be rebound on remap events
	opened []*device
}

func (h *hardware) Slots() []joystick.Slot {
	h.ids = sdl.GetJoysticks()
	slots := make([]joystick.Slot, len(h.ids))
	for i := range slots {
		slots[i] = joystick.Slot(i)
	}
	return slots
}

func (h *hardware) SlotID(slot joystick.Slot) (joystick.InstanceID, bool) {
	if slot < 0 || int(slot) >= len(h.ids) {
		return joystick.NoID, false
	}
	return joystick.InstanceID(h.ids[slot]), true
}

func (h *hardware) Open(slot joystick.Slot) (joystick.Device, error) {
	if slot < 0 || int(slot) >= len(h.ids) {
		return nil, fmt.Errorf("no joystick in slot %d", slot)
	}
	d, err := openDevice(h.ids[slot])
	if err != nil {
		return nil, err
	}
	h.prune()
	h.opened = append(h.opened, d)
	return d, nil
}

func (h *hardware) prune() {
	live := h.opened[:0]
	for _, d := range h.opened {
		if !d.closed {
			live = append(live, d)
		}
	}
	clear(h.opened[len(live):])
	h.opened = live
}

// translate converts an SDL event to a joystick event. Added events are
// given the slot of the new joystick in a fresh enumeration.
func (h *hardware) translate(event *sdl.Event) joystick.Event {
	switch event.Type() {
	case sdl.EventJoystickAdded:
		which := event.JDevice().Which
		h.ids = sdl.GetJoysticks()
		for i, id := range h.ids {
			if id == which {
				return joystick.Event{Kind: joystick.EventAdded, Slot: joystick.Slot(i), ID: joystick.InstanceID(which)}
			}
		}
		log.Printf("Warning: joystick %d was added but is not attached", which)

	case sdl.EventJoystickRemoved:
		return joystick.Event{Kind: joystick.EventRemoved, ID: joystick.InstanceID(event.JDevice().Which)}

	case sdl.EventGamepadRemapped:
		which := event.GDevice().Which
		for _, d := range h.opened {
			if d.id == which && !d.closed {
				d.rebind()
			}
		}
	}
	return joystick.Event{Kind: joystick.EventOther}
}

// loadGamepadDB hands the mappings in an SDL gamecontrollerdb file to SDL.
// It must run before the gamepad subsystem is initialized. A missing file
// is not an error.
func loadGamepadDB(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No gamepad database at %s, using SDL's built in mappings", path)
			return nil
		}
		return fmt.Errorf("gamepad database: %w", err)
	}
	defer f.Close()

	mappings, skipped, err := layout.ReadDB(f)
	if err != nil {
		return fmt.Errorf("gamepad database %s: %w", path, err)
	}
	if skipped > 0 {
		log.Printf("Warning: skipped %d malformed lines in %s", skipped, path)
	}
	if len(mappings) == 0 {
		return nil
	}

	if !sdl.SetHint(sdl.HintGamecontrollerConfig, strings.Join(mappings, "\n")) {
		return fmt.Errorf("gamepad database: %s", sdl.GetError())
	}
	log.Printf("Read %d gamepad mappings from %s", len(mappings), path)
	return nil
}
