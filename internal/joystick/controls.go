// Package joystick maps joystick and game controller hardware onto the
// seven logical in-game controls. It knows nothing about SDL: hardware is
// reached through the Hardware and Device interfaces, which the gamepad
// package implements and the joysticktest package fakes.
package joystick

import "fmt"

// Control is one of the fixed logical game actions.
type Control int

const (
	ControlUp Control = iota
	ControlDown
	ControlLeft
	ControlRight
	ControlAttack
	ControlJump
	ControlTongue
)

// NumControls is the number of logical controls. Mapping tables always hold
// exactly this many signals when a device is in use.
const NumControls = 7

var controlNames = [NumControls]string{"up", "down", "left", "right", "attack", "jump", "tongue"}

// Controls returns every logical control in table order.
func Controls() []Control {
	return []Control{ControlUp, ControlDown, ControlLeft, ControlRight, ControlAttack, ControlJump, ControlTongue}
}

func (c Control) String() string {
	mustBeControl(c)
	return controlNames[c]
}

// Valid reports whether c is one of the seven logical controls.
func (c Control) Valid() bool {
	return c >= 0 && c < NumControls
}

// a control outside the table is never user input, only a bug.
func mustBeControl(c Control) {
	if !c.Valid() {
		panic(fmt.Sprintf("joystick: control %d out of range", int(c)))
	}
}

// PartKind identifies which kind of component on a controller a signal
// watches. The integer values are persisted.
type PartKind int

const (
	PartAxis PartKind = iota
	PartButton
	PartHat
)

func (k PartKind) String() string {
	switch k {
	case PartAxis:
		return "axis"
	case PartButton:
		return "button"
	case PartHat:
		return "hat"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Axis range values. An axis is considered active on the negative side when
// it is in the range [-LargeMag, -SmallMag], inactive in the dead zone
// (-SmallMag, SmallMag) and active on the positive side in the range
// [SmallMag, LargeMag]. SmallMag is also the noise limit for neutral zone
// calibration.
const (
	SmallMag = 4096
	LargeMag = 1000000
)

// Canonical gamepad layout. Devices opened in gamepad mode present every pad
// as this virtual layout.
const (
	GamepadAxisLeftX = iota
	GamepadAxisLeftY
	GamepadAxisRightX
	GamepadAxisRightY
	GamepadAxisLeftTrigger
	GamepadAxisRightTrigger

	NumGamepadAxes
)

const (
	GamepadButtonSouth = iota
	GamepadButtonEast
	GamepadButtonWest
	GamepadButtonNorth
	GamepadButtonBack
	GamepadButtonGuide
	GamepadButtonStart
	GamepadButtonLeftStick
	GamepadButtonRightStick
	GamepadButtonLeftShoulder
	GamepadButtonRightShoulder
	GamepadButtonDpadUp
	GamepadButtonDpadDown
	GamepadButtonDpadLeft
	GamepadButtonDpadRight

	NumGamepadButtons
)
