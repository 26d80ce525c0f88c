package joystick

import "log"

// Input is the joystick context for the single local player: one Registry,
// one Mapping and at most one Configurator session. It is owned by the input
// loop and is not safe for concurrent use.
type Input struct {
	Registry *Registry
	Mapping  *Mapping

	prefs        Preferences
	configurator *Configurator

	// when silent the control queries always return false. direct use of
	// Mapping is unaffected.
	silent bool
}

// NewInput creates the context and runs the registry's initial setup.
func NewInput(hw Hardware, prefs Preferences, rumble bool) *Input {
	m := NewMapping(prefs)
	inp := &Input{
		Registry: NewRegistry(hw, m, rumble),
		Mapping:  m,
		prefs:    prefs,
	}
	inp.Registry.InitialSetup(prefs)
	return inp
}

// SetSilent turns silent mode on or off.
func (inp *Input) SetSilent(on bool) {
	inp.silent = on
}

// Silent reports whether silent mode is on.
func (inp *Input) Silent() bool {
	return inp.silent
}

func (inp *Input) live() bool {
	if inp.silent {
		return false
	}
	return inp.prefs == nil || inp.prefs.UseJoystick()
}

// Firing reports whether control c is pressed, honouring silent mode and the
// use_joystick preference.
func (inp *Input) Firing(c Control) bool {
	mustBeControl(c)
	if !inp.live() {
		return false
	}
	return inp.Mapping.Firing(c)
}

func (inp *Input) Up() bool {
	return inp.Firing(ControlUp)
}

func (inp *Input) Down() bool {
	return inp.Firing(ControlDown)
}

func (inp *Input) Left() bool {
	return inp.Firing(ControlLeft)
}

func (inp *Input) Right() bool {
	return inp.Firing(ControlRight)
}

// Button reports attack (0), jump (1) and tongue (2).
func (inp *Input) Button(n int) bool {
	if !inp.live() {
		return false
	}
	return inp.Mapping.Button(n)
}

// Snapshot returns the state of every control in table order.
func (inp *Input) Snapshot() [NumControls]bool {
	var s [NumControls]bool
	for _, c := range Controls() {
		s[c] = inp.Firing(c)
	}
	return s
}

// HandleEvent passes hardware events to the registry. See
// Registry.HandleEvent.
func (inp *Input) HandleEvent(ev Event, claimed bool) bool {
	if inp.configurator != nil && ev.Kind == EventRemoved && inp.configurator.Device().InstanceID() == ev.ID {
		log.Printf("Device being configured was removed, abandoning configuration")
		inp.configurator = nil
	}
	return inp.Registry.HandleEvent(ev, claimed)
}

// Synchronize brings the registry up to date with the hardware. Any
// configuration session for a device that has gone away is abandoned.
func (inp *Input) Synchronize() bool {
	changed := inp.Registry.Synchronize()
	if inp.configurator != nil && inp.Registry.find(inp.configurator.Device().InstanceID()) < 0 {
		inp.configurator = nil
	}
	return changed
}

// StartConfigurer begins a configuration session for the player's device.
// Returns nil if no device is in use. Any existing session is discarded.
func (inp *Input) StartConfigurer() *Configurator {
	inp.configurator = nil
	d := inp.Mapping.Device()
	if d == nil {
		return nil
	}
	inp.configurator = NewConfigurator(d)
	return inp.configurator
}

// Configurer returns the active session, or nil.
func (inp *Input) Configurer() *Configurator {
	return inp.configurator
}

// StopConfigurer ends the session. Safe to call without one.
func (inp *Input) StopConfigurer() {
	inp.configurator = nil
}

// ApplyConfiguration installs the finished session's mapping, records it in
// preferences and saves them. Panics if there is no finished session.
func (inp *Input) ApplyConfiguration() error {
	if inp.configurator == nil {
		panic("joystick: no configuration session to apply")
	}
	inp.configurator.Apply(inp.Mapping)
	return inp.SetConfigurationPreferences()
}

// SetSelectionPreferences records the player's choice of device, or the
// choice of no device, and saves preferences.
func (inp *Input) SetSelectionPreferences() error {
	if inp.prefs == nil {
		return nil
	}
	if d := inp.Mapping.Device(); d != nil {
		inp.prefs.SetUseJoystick(true)
		inp.prefs.SetChosen(d.GUID(), d.Name())
	} else {
		inp.prefs.SetUseJoystick(false)
	}
	return inp.prefs.Save()
}

// SetConfigurationPreferences records the current mapping as the stored
// configuration and saves preferences.
func (inp *Input) SetConfigurationPreferences() error {
	if inp.prefs == nil || inp.Mapping.Device() == nil {
		return nil
	}
	inp.Mapping.SavePreferences()
	return inp.prefs.Save()
}

// Close releases every device.
func (inp *Input) Close() {
	inp.configurator = nil
	inp.Registry.Close()
}
