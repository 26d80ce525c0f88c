package joystick

import "time"

// Mode says how the hardware layer presents a device.
type Mode int

const (
	// ModeJoystick is raw joystick access: numbered axes, buttons and hats
	// with no agreed meaning.
	ModeJoystick Mode = iota

	// ModeGamepad is the canonical controller layout. The device appears as
	// a virtual XBox style pad (see the GamepadAxis and GamepadButton
	// constants) and has no hats.
	ModeGamepad
)

func (m Mode) String() string {
	if m == ModeGamepad {
		return "gamepad"
	}
	return "joystick"
}

// InstanceID identifies an open device for as long as it stays attached. It
// is assigned by the hardware layer when the device is opened and is not the
// same thing as the Slot the device was opened from.
type InstanceID int32

// NoID is reported when no device is in use.
const NoID InstanceID = -1

// Slot is a position in the hardware layer's enumeration of attached
// devices. A slot is only meaningful until the next hot-plug event.
type Slot int

// Device is a uniform read interface over an open controller. Values are in
// the same ranges as their SDL equivalents. Reads are live and cheap: they
// return whatever the hardware layer last sampled.
type Device interface {
	Mode() Mode

	Axis(i int) int16
	Button(i int) bool
	Hat(i int) HatPosition

	NumAxes() int
	NumButtons() int
	NumHats() int

	InstanceID() InstanceID

	// GUID identifies the model of the controller and survives
	// reconnection. It is not unique between two identical pads.
	GUID() string
	Name() string

	Attached() bool

	// Close releases the hardware handle. Only the Registry closes devices.
	Close()
}

// Rumbler is implemented by devices that can play a simple rumble.
type Rumbler interface {
	Rumble(strength float32, d time.Duration) bool
}

// Hardware is the capability the registry needs from the hardware layer.
type Hardware interface {
	// Slots lists the devices currently attached.
	Slots() []Slot

	// Open opens the device in the given slot, in gamepad mode if the
	// hardware layer recognises it as a gamepad and in joystick mode
	// otherwise.
	Open(slot Slot) (Device, error)
}

// SlotIdentifier is implemented by hardware that can name the device in a
// slot without opening it. Synchronize uses it to skip devices already in
// the registry.
type SlotIdentifier interface {
	SlotID(slot Slot) (InstanceID, bool)
}

// EventKind classifies a hardware event.
type EventKind int

const (
	EventOther EventKind = iota
	EventAdded
	EventRemoved
)

// Event is a hardware notification. Added events carry the Slot of the new
// device, removed events carry the InstanceID of the departed one.
type Event struct {
	Kind EventKind
	Slot Slot
	ID   InstanceID
}

// These functions are subjective hints about the best default way to set a
// device up. A hardware layer can call a d-pad anything from four buttons to
// a nine-way hat to two axes, so we just check what it thinks it has.

// PrefersCanonicalSetup is true for gamepad mode devices, whose layout is
// known well enough to assign controls very sensibly.
func PrefersCanonicalSetup(d Device) bool {
	return d.Mode() == ModeGamepad
}

// PrefersHatSetup is true for joystick mode devices with at least one hat.
func PrefersHatSetup(d Device) bool {
	switch d.Mode() {
	case ModeJoystick:
		return d.NumHats() >= 1
	}
	return false
}

// PrefersAxialSetup is true for joystick mode devices with at least two
// axes.
func PrefersAxialSetup(d Device) bool {
	switch d.Mode() {
	case ModeJoystick:
		return d.NumAxes() >= 2
	}
	return false
}

// KnowsNeutralPoints is true when the device is defined to centre its axes
// at zero, making neutral zone calibration unnecessary.
func KnowsNeutralPoints(d Device) bool {
	return d.Mode() == ModeGamepad
}
