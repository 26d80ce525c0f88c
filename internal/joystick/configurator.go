package joystick

import (
	"log"
	"math"
)

// ListenResult is the outcome of one Configurator.Listen call.
type ListenResult int

const (
	// StillListening means nothing meaningful was pressed.
	StillListening ListenResult = iota

	// Duplicate means the player pressed something already assigned to an
	// earlier control. Tell them so and listen again for the same control.
	Duplicate

	// KeepGoing means the press was accepted and there are more controls
	// to fill.
	KeepGoing

	// Finished means the press was accepted and every control is filled.
	Finished
)

func (r ListenResult) String() string {
	switch r {
	case StillListening:
		return "still listening"
	case Duplicate:
		return "duplicate"
	case KeepGoing:
		return "keep going"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Configurator listens to a device and records which button, hat or axis
// direction the player presses for each logical control in turn.
//
// Optionally begin by establishing neutral zones: call ClearNeutralZones,
// ask the player to leave the controller alone, then call TickNeutralZones
// over several ticks. NeutralZonesDangerous will say whether the result looks
// contaminated. Alternatively call UseDefaultNeutralZones when the device is
// known to centre at zero (see KnowsNeutralPoints).
//
// Then for each control call Listen every tick until it returns something
// other than StillListening. Retreat steps back one control. Once Listen has
// returned Finished, Apply installs the result.
//
// Nothing happens between calls: every transition is made by the caller.
type Configurator struct {
	device Device

	// per axis bounds of the observed resting values.
	neutralMin []int
	neutralMax []int

	control  Control
	finished bool

	kinds [NumControls]int
	ids   [NumControls]int
	data0 [NumControls]int
	data1 [NumControls]int
}

// NewConfigurator starts a session for d with default neutral zones.
func NewConfigurator(d Device) *Configurator {
	n := d.NumAxes()
	c := &Configurator{
		device:     d,
		neutralMin: make([]int, n),
		neutralMax: make([]int, n),
	}
	return c
}

// Device returns the device being configured.
func (c *Configurator) Device() Device {
	return c.device
}

// ClearNeutralZones resets every axis so the next TickNeutralZones call
// defines its bounds.
func (c *Configurator) ClearNeutralZones() {
	for i := range c.neutralMin {
		c.neutralMin[i] = math.MaxInt
		c.neutralMax[i] = math.MinInt
	}
}

// TickNeutralZones widens the neutral zone of every axis to include its
// current reading. The player must leave the controller alone while this is
// called and calls should be spread over a reasonable time.
func (c *Configurator) TickNeutralZones() {
	for i := range c.neutralMin {
		v := int(c.device.Axis(i))
		c.neutralMin[i] = min(c.neutralMin[i], v)
		c.neutralMax[i] = max(c.neutralMax[i], v)
	}
}

// NeutralZonesDangerous is true if any axis has a neutral zone of SmallMag or
// wider, meaning the player probably touched the controller or the axis is
// too noisy to trust. Meaningless unless ClearNeutralZones and
// TickNeutralZones have been used.
func (c *Configurator) NeutralZonesDangerous() bool {
	for i := range c.neutralMin {
		if c.neutralMax[i]-c.neutralMin[i] >= SmallMag {
			return true
		}
	}
	return false
}

// UseDefaultNeutralZones assumes every axis rests at exactly zero.
func (c *Configurator) UseDefaultNeutralZones() {
	for i := range c.neutralMin {
		c.neutralMin[i] = 0
		c.neutralMax[i] = 0
	}
}

// NeutralZone returns the calibrated resting bounds of axis i.
func (c *Configurator) NeutralZone(i int) (lo int, hi int) {
	return c.neutralMin[i], c.neutralMax[i]
}

// Current returns the control being listened for. Once finished it is the
// last control.
func (c *Configurator) Current() Control {
	return c.control
}

// Finished is true once every control has an accepted signal.
func (c *Configurator) Finished() bool {
	return c.finished
}

// Listen looks for the first meaningful input on the device, checking axes,
// then buttons, then hats, and records it for the current control.
func (c *Configurator) Listen() ListenResult {
	if c.finished {
		return Finished
	}

	p, ok := c.scan()
	if !ok {
		return StillListening
	}

	c.record(c.control, p)

	for prev := ControlUp; prev < c.control; prev++ {
		if Clash(c.part(prev), p) {
			return Duplicate
		}
	}

	if c.control == NumControls-1 {
		c.finished = true
		log.Printf("Configured controller %s: %v", c.device.Name(), c.Parts())
		return Finished
	}
	c.control++
	return KeepGoing
}

// scan returns the first active component on the device.
func (c *Configurator) scan() (Part, bool) {
	for i := range c.neutralMin {
		v := int(c.device.Axis(i))
		if lo := c.neutralMin[i] - SmallMag; v <= lo {
			return Part{Kind: PartAxis, ID: i, Data0: -LargeMag, Data1: lo}, true
		}
		if hi := c.neutralMax[i] + SmallMag; v >= hi {
			return Part{Kind: PartAxis, ID: i, Data0: hi, Data1: LargeMag}, true
		}
	}

	for i := range c.device.NumButtons() {
		if c.device.Button(i) {
			return Part{Kind: PartButton, ID: i}, true
		}
	}

	for i := range c.device.NumHats() {
		if p := c.device.Hat(i); p != HatCentered {
			return Part{Kind: PartHat, ID: i, Data0: int(p)}, true
		}
	}

	return Part{}, false
}

// Idle is true when nothing on the device is active. Callers polling the
// device wait for Idle between controls so that a held button is not read
// twice.
func (c *Configurator) Idle() bool {
	_, active := c.scan()
	return !active
}

func (c *Configurator) record(ctl Control, p Part) {
	c.kinds[ctl] = int(p.Kind)
	c.ids[ctl] = p.ID
	c.data0[ctl] = p.Data0
	c.data1[ctl] = p.Data1
}

func (c *Configurator) part(ctl Control) Part {
	return Part{
		Kind:  PartKind(c.kinds[ctl]),
		ID:    c.ids[ctl],
		Data0: c.data0[ctl],
		Data1: c.data1[ctl],
	}
}

// Retreat goes back to the previous control. Returns false if already at
// the first control. After retreating, Listen must be used again to move
// forward.
func (c *Configurator) Retreat() bool {
	if c.finished {
		c.finished = false
		return true
	}
	if c.control == ControlUp {
		return false
	}
	c.control--
	return true
}

// Parts returns the recorded parts for the controls filled so far.
func (c *Configurator) Parts() []Part {
	n := int(c.control)
	if c.finished {
		n = NumControls
	}
	parts := make([]Part, n)
	for i := range parts {
		parts[i] = c.part(Control(i))
	}
	return parts
}

// Raw returns the four parallel arrays making up the recorded mapping.
func (c *Configurator) Raw() (kinds, ids, data0, data1 [NumControls]int) {
	return c.kinds, c.ids, c.data0, c.data1
}

// Apply installs the finished configuration in m. Panics if Listen has not
// returned Finished.
func (c *Configurator) Apply(m *Mapping) {
	if !c.finished {
		panic("joystick: configuration applied before it was finished")
	}
	m.ChangeMapping(c.kinds, c.ids, c.data0, c.data1)
}

// Clash reports whether two parts are effectively the same input. Buttons
// clash if their ids match. Hats clash if their ids and positions match.
// Axes clash if their ids match and their ranges overlap.
func Clash(a, b Part) bool {
	if a.Kind != b.Kind || a.ID != b.ID {
		return false
	}
	switch a.Kind {
	case PartButton:
		return true
	case PartHat:
		return a.Data0 == b.Data0
	case PartAxis:
		within := func(v int, p Part) bool {
			return p.Data0 <= v && v <= p.Data1
		}
		return within(a.Data0, b) || within(a.Data1, b) || within(b.Data0, a) || within(b.Data1, a)
	}
	return false
}
