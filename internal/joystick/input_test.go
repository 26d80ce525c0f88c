package joystick_test

import (
	"errors"
	"testing"

	"github.com/soar/joymap/internal/joystick"
	"github.com/soar/joymap/internal/joystick/joysticktest"
	"github.com/soar/joymap/internal/test"
)

func TestInputSilentAndDisabled(t *testing.T) {
	hw := &joysticktest.Hardware{}
	hw.Plug(joysticktest.NewGamepad(1, "pad"))
	prefs := joysticktest.NewPrefs()
	inp := joystick.NewInput(hw, prefs, false)

	held := hw.Opened[0]
	held.Buttons[joystick.GamepadButtonSouth] = true
	held.Buttons[joystick.GamepadButtonDpadUp] = true
	test.ExpectSuccess(t, inp.Button(0))
	test.ExpectSuccess(t, inp.Up())

	inp.SetSilent(true)
	test.ExpectSuccess(t, inp.Silent())
	test.ExpectEquality(t, inp.Snapshot(), [joystick.NumControls]bool{})
	test.ExpectFailure(t, inp.Button(0))

	// the mapping itself is unaffected
	test.ExpectSuccess(t, inp.Mapping.Button(0))

	inp.SetSilent(false)
	prefs.Use = false
	test.ExpectFailure(t, inp.Up())
	test.ExpectFailure(t, inp.Button(0))

	prefs.Use = true
	test.ExpectEquality(t, inp.Snapshot(), [joystick.NumControls]bool{true, false, false, false, true, false, false})
}

func TestInputConfigurer(t *testing.T) {
	hw := &joysticktest.Hardware{}
	inp := joystick.NewInput(hw, joysticktest.NewPrefs(), false)

	if inp.StartConfigurer() != nil {
		t.Fatalf("expected no configuration session without a device")
	}
	inp.StopConfigurer()
	test.ExpectPanic(t, func() { _ = inp.ApplyConfiguration() })

	slot := hw.Plug(joysticktest.NewJoystick(7, "stick", 2, 8, 0))
	inp.HandleEvent(joystick.Event{Kind: joystick.EventAdded, Slot: slot}, false)
	inp.Registry.ChangeDevice(0)

	c := inp.StartConfigurer()
	if c == nil {
		t.Fatalf("expected a configuration session")
	}
	if inp.Configurer() != c {
		t.Errorf("Configurer does not return the active session")
	}

	// removal of the device abandons the session
	hw.Unplug(7)
	inp.HandleEvent(joystick.Event{Kind: joystick.EventRemoved, ID: 7}, false)
	if inp.Configurer() != nil {
		t.Errorf("session survived removal of its device")
	}
}

func TestInputApplyConfiguration(t *testing.T) {
	hw := &joysticktest.Hardware{}
	hw.Plug(joysticktest.NewJoystick(3, "stick", 2, 8, 0))
	prefs := joysticktest.NewPrefs()
	inp := joystick.NewInput(hw, prefs, false)
	d := hw.Opened[0]

	c := inp.StartConfigurer()
	for b := range joystick.NumControls {
		d.Buttons[b] = true
		c.Listen()
		d.Release()
	}
	test.ExpectSuccess(t, c.Finished())
	test.ExpectSuccess(t, inp.ApplyConfiguration())

	test.ExpectEquality(t, prefs.Saves, 1)
	test.ExpectEquality(t, prefs.Configured, "stick")
	test.ExpectEquality(t, prefs.Part(joystick.ControlTongue), joystick.Part{Kind: joystick.PartButton, ID: 6})

	d.Buttons[3] = true
	test.ExpectSuccess(t, inp.Right())
}

func TestInputSelectionPreferences(t *testing.T) {
	hw := &joysticktest.Hardware{}
	hw.Plug(joysticktest.NewJoystick(3, "stick", 2, 8, 0))
	prefs := joysticktest.NewPrefs()
	inp := joystick.NewInput(hw, prefs, false)

	test.ExpectSuccess(t, inp.SetSelectionPreferences())
	test.ExpectEquality(t, prefs.Chosen, "stick")
	test.ExpectEquality(t, prefs.ChosenLabel, "Test Joystick 3")
	test.ExpectSuccess(t, prefs.Use)

	inp.Registry.ChangeDevice(joystick.NoDevice)
	prefs.SaveErr = errors.New("disk full")
	test.ExpectFailure(t, inp.SetSelectionPreferences())
	test.ExpectFailure(t, prefs.Use)
	test.ExpectEquality(t, prefs.Saves, 2)
}

func TestInputClose(t *testing.T) {
	hw := &joysticktest.Hardware{}
	hw.Plug(joysticktest.NewJoystick(3, "stick", 2, 8, 0))
	inp := joystick.NewInput(hw, nil, false)
	inp.StartConfigurer()

	inp.Close()
	test.ExpectEquality(t, hw.OpenCount(3), 0)
	if inp.Configurer() != nil {
		t.Errorf("session survived Close")
	}
	test.ExpectFailure(t, inp.Up())
}
