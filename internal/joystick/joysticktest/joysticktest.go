// Package joysticktest provides in-memory hardware, devices and preferences
// for testing code built on the joystick package. Tests drive input by
// setting raw axis, button and hat values directly.
package joysticktest

import (
	"fmt"
	"time"

	"github.com/soar/joymap/internal/joystick"
)

// Device is a controllable joystick.Device.
type Device struct {
	ModeValue joystick.Mode
	ID        joystick.InstanceID
	GUIDValue string
	NameValue string

	Axes    []int16
	Buttons []bool
	Hats    []joystick.HatPosition

	Detached bool
	Closed   int
	Rumbles  int

	// counts of calls to NumAxes and NumHats
	AxisQueries int
	HatQueries  int
}

// NewJoystick creates a joystick mode device.
func NewJoystick(id joystick.InstanceID, guid string, axes, buttons, hats int) *Device {
	return &Device{
		ModeValue: joystick.ModeJoystick,
		ID:        id,
		GUIDValue: guid,
		NameValue: fmt.Sprintf("Test Joystick %d", id),
		Axes:      make([]int16, axes),
		Buttons:   make([]bool, buttons),
		Hats:      make([]joystick.HatPosition, hats),
	}
}

// NewGamepad creates a gamepad mode device with the canonical layout.
func NewGamepad(id joystick.InstanceID, guid string) *Device {
	return &Device{
		ModeValue: joystick.ModeGamepad,
		ID:        id,
		GUIDValue: guid,
		NameValue: fmt.Sprintf("Test Gamepad %d", id),
		Axes:      make([]int16, joystick.NumGamepadAxes),
		Buttons:   make([]bool, joystick.NumGamepadButtons),
	}
}

func (d *Device) Mode() joystick.Mode {
	return d.ModeValue
}

func (d *Device) Axis(i int) int16 {
	if i < 0 || i >= len(d.Axes) {
		return 0
	}
	return d.Axes[i]
}

func (d *Device) Button(i int) bool {
	if i < 0 || i >= len(d.Buttons) {
		return false
	}
	return d.Buttons[i]
}

func (d *Device) Hat(i int) joystick.HatPosition {
	if i < 0 || i >= len(d.Hats) {
		return joystick.HatCentered
	}
	return d.Hats[i]
}

func (d *Device) NumAxes() int {
	d.AxisQueries++
	return len(d.Axes)
}

func (d *Device) NumButtons() int {
	return len(d.Buttons)
}

func (d *Device) NumHats() int {
	d.HatQueries++
	return len(d.Hats)
}

func (d *Device) InstanceID() joystick.InstanceID {
	return d.ID
}

func (d *Device) GUID() string {
	return d.GUIDValue
}

func (d *Device) Name() string {
	return d.NameValue
}

func (d *Device) Attached() bool {
	return !d.Detached && d.Closed == 0
}

func (d *Device) Close() {
	d.Closed++
}

func (d *Device) Rumble(strength float32, dur time.Duration) bool {
	d.Rumbles++
	return true
}

// Release sets every axis, button and hat to rest.
func (d *Device) Release() {
	clear(d.Axes)
	clear(d.Buttons)
	for i := range d.Hats {
		d.Hats[i] = joystick.HatCentered
	}
}

// Hardware is a fake hardware layer. Every Open of a slot returns a fresh
// handle onto the same physical device, as SDL does.
type Hardware struct {
	// Attached devices in enumeration order. Each is a template; Open
	// returns a handle sharing its input slices.
	Attached []*Device

	// Opened lists every handle returned by Open.
	Opened []*Device

	// Slots whose Open fails.
	Broken map[joystick.Slot]bool

	// Identifies makes SlotID answer, so the registry can skip opening
	// devices it already has.
	Identifies bool
}

// Plug attaches a device and returns its slot.
func (hw *Hardware) Plug(d *Device) joystick.Slot {
	hw.Attached = append(hw.Attached, d)
	return joystick.Slot(len(hw.Attached) - 1)
}

// Unplug detaches the device with the given id, marking every open handle
// onto it as detached.
func (hw *Hardware) Unplug(id joystick.InstanceID) {
	for i, d := range hw.Attached {
		if d.ID == id {
			hw.Attached = append(hw.Attached[:i], hw.Attached[i+1:]...)
			break
		}
	}
	for _, d := range hw.Opened {
		if d.ID == id {
			d.Detached = true
		}
	}
}

func (hw *Hardware) Slots() []joystick.Slot {
	slots := make([]joystick.Slot, len(hw.Attached))
	for i := range slots {
		slots[i] = joystick.Slot(i)
	}
	return slots
}

func (hw *Hardware) Open(slot joystick.Slot) (joystick.Device, error) {
	if hw.Broken[slot] {
		return nil, fmt.Errorf("slot %d refuses to open", slot)
	}
	if slot < 0 || int(slot) >= len(hw.Attached) {
		return nil, fmt.Errorf("no device in slot %d", slot)
	}
	t := hw.Attached[slot]
	d := *t
	d.Closed = 0
	hw.Opened = append(hw.Opened, &d)
	return &d, nil
}

func (hw *Hardware) SlotID(slot joystick.Slot) (joystick.InstanceID, bool) {
	if !hw.Identifies || slot < 0 || int(slot) >= len(hw.Attached) {
		return joystick.NoID, false
	}
	return hw.Attached[slot].ID, true
}

// OpenCount returns how many handles for the device id are still open.
func (hw *Hardware) OpenCount(id joystick.InstanceID) int {
	n := 0
	for _, d := range hw.Opened {
		if d.ID == id && d.Closed == 0 {
			n++
		}
	}
	return n
}

// Prefs is an in-memory joystick.Preferences.
type Prefs struct {
	Use             bool
	Chosen          string
	ChosenLabel     string
	Configured      string
	ConfiguredLabel string
	Parts           map[joystick.Control]joystick.Part
	Saves           int
	SaveErr         error
}

// NewPrefs creates an empty store with the joystick enabled.
func NewPrefs() *Prefs {
	return &Prefs{
		Use:   true,
		Parts: make(map[joystick.Control]joystick.Part),
	}
}

func (p *Prefs) UseJoystick() bool      { return p.Use }
func (p *Prefs) SetUseJoystick(on bool) { p.Use = on }
func (p *Prefs) ChosenGUID() string     { return p.Chosen }
func (p *Prefs) ChosenName() string     { return p.ChosenLabel }
func (p *Prefs) ConfiguredGUID() string { return p.Configured }
func (p *Prefs) ConfiguredName() string { return p.ConfiguredLabel }

func (p *Prefs) SetChosen(guid string, name string) {
	p.Chosen = guid
	p.ChosenLabel = name
}

func (p *Prefs) SetConfigured(guid string, name string) {
	p.Configured = guid
	p.ConfiguredLabel = name
}

func (p *Prefs) Part(c joystick.Control) joystick.Part {
	if v, ok := p.Parts[c]; ok {
		return joystick.ValidatePart(v)
	}
	return joystick.DefaultPart(c)
}

func (p *Prefs) SetPart(c joystick.Control, part joystick.Part) {
	p.Parts[c] = part
}

func (p *Prefs) Save() error {
	p.Saves++
	return p.SaveErr
}
