package joystick

import "log"

// Mapping maps the player's controller onto the logical controls. It holds
// at most one device and, when it does, exactly NumControls signals.
//
// The device is borrowed from the Registry and is never closed here.
type Mapping struct {
	prefs   Preferences
	device  Device
	signals []Signal

	// whether the current table came from ConfigureBlind. advisory only.
	usingDefault bool
}

// NewMapping creates a Mapping with no device.
func NewMapping(prefs Preferences) *Mapping {
	return &Mapping{prefs: prefs}
}

// Device returns the device in use, or nil.
func (m *Mapping) Device() Device {
	return m.device
}

// clear device and the contents of the map.
func (m *Mapping) empty() {
	m.device = nil
	m.signals = nil
	m.usingDefault = false
}

// ChangeDevice starts using d, discarding the current device and table. If d
// is the model the stored configuration was made for, that configuration is
// used. Otherwise a ConfigureBlind mapping is made. A nil d means no device.
func (m *Mapping) ChangeDevice(d Device) {
	m.empty()
	m.device = d
	if d == nil {
		log.Printf("Now using no controller")
		return
	}

	if m.CanUsePreferences() {
		log.Printf("Now using controller %s [%s], configured from preferences", d.Name(), d.GUID())
		m.ConfigureFromPreferences()
		return
	}

	log.Printf("Now using controller %s [%s] with default configuration", d.Name(), d.GUID())
	m.ConfigureBlind()
}

// CanUsePreferences is true if a device is in use and the stored
// configuration was made for its model.
func (m *Mapping) CanUsePreferences() bool {
	if m.device == nil || m.prefs == nil {
		return false
	}
	guid := m.prefs.ConfiguredGUID()
	return guid != "" && guid == m.device.GUID()
}

// UsingDefault is true if the current table came from ConfigureBlind.
func (m *Mapping) UsingDefault() bool {
	return m.usingDefault
}

// ConfigureFromPreferences builds the table from the stored configuration,
// whether or not it was made for this model. Does nothing without a device.
func (m *Mapping) ConfigureFromPreferences() {
	if m.device == nil || m.prefs == nil {
		return
	}
	m.signals = make([]Signal, 0, NumControls)
	for _, c := range Controls() {
		m.signals = append(m.signals, MakeSignalFromPart(m.device, m.prefs.Part(c)))
	}
	m.usingDefault = false
}

// UseDefaultConfig replaces the table with the ConfigureBlind mapping.
func (m *Mapping) UseDefaultConfig() {
	if m.device == nil {
		return
	}
	m.ConfigureBlind()
}

// ChangeMapping replaces the table from four parallel arrays, as produced by
// the Configurator. Preferences are not touched. Does nothing without a
// device.
func (m *Mapping) ChangeMapping(kinds, ids, data0, data1 [NumControls]int) {
	if m.device == nil {
		return
	}
	m.signals = make([]Signal, 0, NumControls)
	for c := range NumControls {
		m.signals = append(m.signals, MakeSignal(m.device, PartKind(kinds[c]), ids[c], data0[c], data1[c]))
	}
	m.usingDefault = false
}

// ConfigureBlind makes a simple default mapping for the device without any
// help from the player. The device hints choose between three setups, in
// this order: canonical gamepad, hat, and axial. Does nothing without a
// device.
func (m *Mapping) ConfigureBlind() {
	d := m.device
	if d == nil {
		return
	}

	switch {
	case PrefersCanonicalSetup(d):
		stick := func(axis int, positive bool) Signal {
			if positive {
				return MakeSignal(d, PartAxis, axis, SmallMag, LargeMag)
			}
			return MakeSignal(d, PartAxis, axis, -LargeMag, -SmallMag)
		}
		dpad := func(button int, axis int, positive bool) Signal {
			return Union(
				MakeSignal(d, PartButton, button, 0, 0),
				stick(axis, positive),
				stick(axis+GamepadAxisRightX, positive),
			)
		}
		m.signals = []Signal{
			dpad(GamepadButtonDpadUp, GamepadAxisLeftY, false),
			dpad(GamepadButtonDpadDown, GamepadAxisLeftY, true),
			dpad(GamepadButtonDpadLeft, GamepadAxisLeftX, false),
			dpad(GamepadButtonDpadRight, GamepadAxisLeftX, true),
			MakeSignal(d, PartButton, GamepadButtonSouth, 0, 0),
			MakeSignal(d, PartButton, GamepadButtonEast, 0, 0),
			MakeSignal(d, PartButton, GamepadButtonNorth, 0, 0),
		}

	case PrefersHatSetup(d):
		m.signals = []Signal{
			MakeSignal(d, PartHat, 0, int(HatUp), 0),
			MakeSignal(d, PartHat, 0, int(HatDown), 0),
			MakeSignal(d, PartHat, 0, int(HatLeft), 0),
			MakeSignal(d, PartHat, 0, int(HatRight), 0),
			MakeSignal(d, PartButton, 0, 0, 0),
			MakeSignal(d, PartButton, 1, 0, 0),
			MakeSignal(d, PartButton, 2, 0, 0),
		}

	default:
		// axis 0 is assumed horizontal and axis 1 vertical. the hardware
		// gives no way of knowing
		m.signals = []Signal{
			MakeSignal(d, PartAxis, 1, -LargeMag, -SmallMag),
			MakeSignal(d, PartAxis, 1, SmallMag, LargeMag),
			MakeSignal(d, PartAxis, 0, -LargeMag, -SmallMag),
			MakeSignal(d, PartAxis, 0, SmallMag, LargeMag),
			MakeSignal(d, PartButton, 0, 0, 0),
			MakeSignal(d, PartButton, 1, 0, 0),
			MakeSignal(d, PartButton, 2, 0, 0),
		}
	}

	m.usingDefault = true
}

// SavePreferences writes the current device model and table to the
// preferences. Unions are stored as their primary signal. Does nothing
// without a device. The store itself is not saved to disk.
func (m *Mapping) SavePreferences() {
	if m.device == nil || m.prefs == nil {
		return
	}
	m.prefs.SetConfigured(m.device.GUID(), m.device.Name())
	for c, p := range m.Parts() {
		m.prefs.SetPart(Control(c), p)
	}
}

// Parts returns the persistable form of the current table, or nil without a
// device.
func (m *Mapping) Parts() []Part {
	if m.device == nil {
		return nil
	}
	parts := make([]Part, len(m.signals))
	for i, s := range m.signals {
		if s != nil {
			parts[i] = s.Part()
		}
	}
	return parts
}

// Firing reports whether the signal for control c is firing. Always false
// without a device.
func (m *Mapping) Firing(c Control) bool {
	mustBeControl(c)
	if m.device == nil {
		return false
	}
	s := m.signals[c]
	if s == nil {
		return false
	}
	return s.Firing()
}

func (m *Mapping) Up() bool {
	return m.Firing(ControlUp)
}

func (m *Mapping) Down() bool {
	return m.Firing(ControlDown)
}

func (m *Mapping) Left() bool {
	return m.Firing(ControlLeft)
}

func (m *Mapping) Right() bool {
	return m.Firing(ControlRight)
}

// Button reports the action buttons. Buttons 0, 1 and 2 are attack, jump
// and tongue. Any other button is never pressed.
func (m *Mapping) Button(n int) bool {
	switch n {
	case 0:
		return m.Firing(ControlAttack)
	case 1:
		return m.Firing(ControlJump)
	case 2:
		return m.Firing(ControlTongue)
	}
	return false
}
