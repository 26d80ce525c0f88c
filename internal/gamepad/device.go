package gamepad

import (
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/joymap/internal/gamepad/layout"
	"github.com/soar/joymap/internal/joystick"
)

// device is an open SDL controller. Pads SDL recognises are opened as
// gamepads and read through their bindings in the canonical layout.
// Anything else is a raw joystick.
type device struct {
	js     *sdl.Joystick
	gp     *sdl.Gamepad // nil in joystick mode
	layout *layout.Layout

	id   sdl.JoystickID
	guid string
	name string

	// raw counts; the canonical counts are fixed
	rawAxes    int
	rawButtons int
	rawHats    int

	closed bool
}

func openDevice(id sdl.JoystickID) (*device, error) {
	if slices.Contains(sdl.GetGamepads(), id) {
		if gp := sdl.OpenGamepad(id); gp != nil {
			d := &device{
				gp:   gp,
				js:   sdl.GetJoystickFromID(id),
				name: sdl.GetGamepadName(gp),
			}
			if d.js != nil {
				d.identify()
				d.rebind()
				return d, nil
			}
			sdl.CloseGamepad(gp)
		}
		log.Printf("Warning: could not open joystick %d as a gamepad, trying raw joystick: %s", id, sdl.GetError())
	}

	js := sdl.OpenJoystick(id)
	if js == nil {
		return nil, fmt.Errorf("opening joystick %d: %s", id, sdl.GetError())
	}
	d := &device{
		js:   js,
		name: sdl.GetJoystickName(js),
	}
	d.identify()
	return d, nil
}

func (d *device) identify() {
	d.id = sdl.GetJoystickID(d.js)
	d.rawAxes = int(sdl.GetNumJoystickAxes(d.js))
	d.rawButtons = int(sdl.GetNumJoystickButtons(d.js))
	d.rawHats = int(sdl.GetNumJoystickHats(d.js))

	vendor := sdl.GetJoystickVendor(d.js)
	product := sdl.GetJoystickProduct(d.js)
	d.guid = layout.StableID(vendor, product, sdl.GetJoystickProductVersion(d.js), d.name)

	log.Printf("Opened %s: %s (VID=%04X PID=%04X) id=%s axes=%d buttons=%d hats=%d",
		d.Mode(), d.name, vendor, product, d.guid, d.rawAxes, d.rawButtons, d.rawHats)
}

// rebind reads the gamepad's bindings again. SDL changes them when a
// mapping is added for the pad.
func (d *device) rebind() {
	if d.gp == nil {
		return
	}
	var bs []layout.Binding
	for _, sb := range sdl.GetGamepadBindings(d.gp) {
		b := layout.Binding{}
		switch sb.InputType {
		case sdl.GamepadBindTypeButton:
			b.In = layout.Button
			b.InIndex = int(sb.InputButton())
		case sdl.GamepadBindTypeAxis:
			in := sb.InputAxis()
			b.In = layout.Axis
			b.InIndex, b.InMin, b.InMax = int(in.Axis), int(in.AxisMin), int(in.AxisMax)
		case sdl.GamepadBindTypeHat:
			in := sb.InputHat()
			b.In = layout.Hat
			b.InIndex, b.HatMask = int(in.Hat), int(in.HatMask)
		default:
			continue
		}
		switch sb.OutputType {
		case sdl.GamepadBindTypeButton:
			b.Out = layout.Button
			b.OutIndex = int(sb.OutputButton())
		case sdl.GamepadBindTypeAxis:
			out := sb.OutputAxis()
			b.Out = layout.Axis
			b.OutIndex, b.OutMin, b.OutMax = int(out.Axis), int(out.AxisMin), int(out.AxisMax)
		default:
			continue
		}
		bs = append(bs, b)
	}
	d.layout = layout.New(bs)
	log.Printf("%s has %d gamepad bindings", d.name, d.layout.Len())
}

func (d *device) Mode() joystick.Mode {
	if d.gp != nil {
		return joystick.ModeGamepad
	}
	return joystick.ModeJoystick
}

// raw access for the layout

type rawJoystick struct{ d *device }

func (r rawJoystick) Axis(i int) int16 {
	if i < 0 || i >= r.d.rawAxes {
		return 0
	}
	return sdl.GetJoystickAxis(r.d.js, int32(i))
}

func (r rawJoystick) Button(i int) bool {
	if i < 0 || i >= r.d.rawButtons {
		return false
	}
	return sdl.GetJoystickButton(r.d.js, int32(i))
}

func (r rawJoystick) Hat(i int) uint8 {
	if i < 0 || i >= r.d.rawHats {
		return 0
	}
	return sdl.GetJoystickHat(r.d.js, int32(i))
}

func (d *device) Axis(i int) int16 {
	if d.closed || i < 0 || i >= d.NumAxes() {
		return 0
	}
	if d.gp != nil {
		return d.layout.Axis(rawJoystick{d}, i)
	}
	return rawJoystick{d}.Axis(i)
}

func (d *device) Button(i int) bool {
	if d.closed || i < 0 || i >= d.NumButtons() {
		return false
	}
	if d.gp != nil {
		return d.layout.Button(rawJoystick{d}, i)
	}
	return rawJoystick{d}.Button(i)
}

// Hat is always centred in gamepad mode, where hats are folded into the
// dpad buttons.
func (d *device) Hat(i int) joystick.HatPosition {
	if d.closed || d.gp != nil || i < 0 || i >= d.rawHats {
		return joystick.HatCentered
	}
	return joystick.HatPosition(rawJoystick{d}.Hat(i))
}

func (d *device) NumAxes() int {
	if d.gp != nil {
		return joystick.NumGamepadAxes
	}
	return d.rawAxes
}

func (d *device) NumButtons() int {
	if d.gp != nil {
		return joystick.NumGamepadButtons
	}
	return d.rawButtons
}

func (d *device) NumHats() int {
	if d.gp != nil {
		return 0
	}
	return d.rawHats
}

func (d *device) InstanceID() joystick.InstanceID {
	return joystick.InstanceID(d.id)
}

func (d *device) GUID() string { return d.guid }
func (d *device) Name() string { return d.name }

func (d *device) Attached() bool {
	return !d.closed && sdl.JoystickConnected(d.js)
}

// Rumble plays both motors at strength (0 to 1) for duration.
func (d *device) Rumble(strength float32, duration time.Duration) bool {
	if d.closed {
		return false
	}
	level := uint16(min(max(strength, 0), 1) * 0xffff)
	return sdl.RumbleJoystick(d.js, level, level, uint32(duration.Milliseconds()))
}

func (d *device) Close() {
	if d.closed {
		return
	}
	d.closed = true
	if d.gp != nil {
		sdl.CloseGamepad(d.gp)
	} else {
		sdl.CloseJoystick(d.js)
	}
	log.Printf("Closed %s (ID=%d)", d.name, d.id)
}
