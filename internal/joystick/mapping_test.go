package joystick_test

import (
	"testing"

	"github.com/soar/joymap/internal/joystick"
	"github.com/soar/joymap/internal/joystick/joysticktest"
	"github.com/soar/joymap/internal/test"
)

func TestMappingWithoutDevice(t *testing.T) {
	m := joystick.NewMapping(joysticktest.NewPrefs())
	for _, c := range joystick.Controls() {
		test.ExpectFailure(t, m.Firing(c))
	}
	test.ExpectFailure(t, m.Button(0))
	if m.Parts() != nil {
		t.Errorf("expected no parts without a device")
	}

	// these do nothing without a device
	m.ConfigureBlind()
	m.UseDefaultConfig()
	m.ConfigureFromPreferences()
	test.ExpectFailure(t, m.CanUsePreferences())
	test.ExpectEquality(t, m.Device(), joystick.Device(nil))
}

func TestMappingControlOutOfRange(t *testing.T) {
	m := joystick.NewMapping(nil)
	m.ChangeDevice(joysticktest.NewGamepad(0, "pad"))
	test.ExpectPanic(t, func() { m.Firing(joystick.NumControls) })
	test.ExpectPanic(t, func() { m.Firing(-1) })
	test.ExpectFailure(t, m.Button(3))
	test.ExpectFailure(t, m.Button(-1))
}

func TestConfigureBlindCanonical(t *testing.T) {
	d := joysticktest.NewGamepad(1, "gamepad-guid")
	m := joystick.NewMapping(joysticktest.NewPrefs())
	m.ChangeDevice(d)
	test.ExpectSuccess(t, m.UsingDefault())

	// the canonical branch is chosen from the mode alone
	test.ExpectEquality(t, d.HatQueries, 0)
	test.ExpectEquality(t, d.AxisQueries, 0)

	tests := []struct {
		name    string
		press   func()
		control joystick.Control
	}{
		{"dpad up", func() { d.Buttons[joystick.GamepadButtonDpadUp] = true }, joystick.ControlUp},
		{"left stick up", func() { d.Axes[joystick.GamepadAxisLeftY] = -32768 }, joystick.ControlUp},
		{"right stick up", func() { d.Axes[joystick.GamepadAxisRightY] = -20000 }, joystick.ControlUp},
		{"dpad down", func() { d.Buttons[joystick.GamepadButtonDpadDown] = true }, joystick.ControlDown},
		{"right stick down", func() { d.Axes[joystick.GamepadAxisRightY] = 20000 }, joystick.ControlDown},
		{"left stick left", func() { d.Axes[joystick.GamepadAxisLeftX] = -joystick.SmallMag }, joystick.ControlLeft},
		{"dpad right", func() { d.Buttons[joystick.GamepadButtonDpadRight] = true }, joystick.ControlRight},
		{"right stick right", func() { d.Axes[joystick.GamepadAxisRightX] = 32767 }, joystick.ControlRight},
		{"south", func() { d.Buttons[joystick.GamepadButtonSouth] = true }, joystick.ControlAttack},
		{"east", func() { d.Buttons[joystick.GamepadButtonEast] = true }, joystick.ControlJump},
		{"north", func() { d.Buttons[joystick.GamepadButtonNorth] = true }, joystick.ControlTongue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.Release()
			tt.press()
			for _, c := range joystick.Controls() {
				test.ExpectEquality(t, m.Firing(c), c == tt.control)
			}
		})
	}

	// west and the dead zone map to nothing
	d.Release()
	d.Buttons[joystick.GamepadButtonWest] = true
	d.Axes[joystick.GamepadAxisLeftX] = joystick.SmallMag - 1
	for _, c := range joystick.Controls() {
		test.ExpectFailure(t, m.Firing(c))
	}

	parts := m.Parts()
	test.ExpectEquality(t, parts[joystick.ControlUp], joystick.Part{Kind: joystick.PartButton, ID: joystick.GamepadButtonDpadUp})
	test.ExpectEquality(t, parts[joystick.ControlTongue], joystick.Part{Kind: joystick.PartButton, ID: joystick.GamepadButtonNorth})
}

func TestConfigureBlindHat(t *testing.T) {
	d := joysticktest.NewJoystick(2, "hat-guid", 2, 4, 1)
	m := joystick.NewMapping(nil)
	m.ChangeDevice(d)

	d.Hats[0] = joystick.HatLeftUp
	test.ExpectSuccess(t, m.Up())
	test.ExpectSuccess(t, m.Left())
	test.ExpectFailure(t, m.Down())
	test.ExpectFailure(t, m.Right())

	// axes are ignored when a hat is present
	d.Release()
	d.Axes[1] = -32768
	test.ExpectFailure(t, m.Up())

	for b := range 3 {
		d.Release()
		d.Buttons[b] = true
		test.ExpectSuccess(t, m.Button(b))
	}
	d.Release()
	d.Buttons[3] = true
	for b := range 3 {
		test.ExpectFailure(t, m.Button(b))
	}
}

func TestConfigureBlindAxial(t *testing.T) {
	d := joysticktest.NewJoystick(3, "axial-guid", 2, 3, 0)
	m := joystick.NewMapping(nil)
	m.ChangeDevice(d)

	d.Axes[1] = -32768
	test.ExpectSuccess(t, m.Up())
	d.Axes[1] = 32767
	test.ExpectSuccess(t, m.Down())
	d.Axes[0] = -32768
	test.ExpectSuccess(t, m.Left())
	d.Axes[0] = 32767
	test.ExpectSuccess(t, m.Right())
	test.ExpectFailure(t, m.Left())

	d.Buttons[2] = true
	test.ExpectSuccess(t, m.Button(2))
}

func TestMappingPreferencesRoundTrip(t *testing.T) {
	prefs := joysticktest.NewPrefs()
	d := joysticktest.NewJoystick(4, "model-a", 2, 8, 1)

	m := joystick.NewMapping(prefs)
	m.ChangeDevice(d)
	test.ExpectFailure(t, m.CanUsePreferences())

	kinds := [joystick.NumControls]int{0, 0, 2, 2, 1, 1, 1}
	ids := [joystick.NumControls]int{1, 1, 0, 0, 7, 6, 5}
	data0 := [joystick.NumControls]int{-joystick.LargeMag, 9000, int(joystick.HatLeft), int(joystick.HatRight), 0, 0, 0}
	data1 := [joystick.NumControls]int{-9000, joystick.LargeMag, 0, 0, 0, 0, 0}
	m.ChangeMapping(kinds, ids, data0, data1)
	m.SavePreferences()

	test.ExpectEquality(t, prefs.Configured, "model-a")
	test.ExpectEquality(t, prefs.ConfiguredLabel, d.Name())
	expected := m.Parts()

	// another pad of the same model picks up the stored table
	d2 := joysticktest.NewJoystick(5, "model-a", 2, 8, 1)
	m2 := joystick.NewMapping(prefs)
	m2.ChangeDevice(d2)
	test.ExpectSuccess(t, m2.CanUsePreferences())
	test.ExpectFailure(t, m2.UsingDefault())
	for i, p := range m2.Parts() {
		test.ExpectEquality(t, p, expected[i])
	}

	d2.Buttons[6] = true
	test.ExpectSuccess(t, m2.Button(1))

	// a different model gets the blind configuration
	d3 := joysticktest.NewJoystick(6, "model-b", 2, 8, 1)
	m2.ChangeDevice(d3)
	test.ExpectFailure(t, m2.CanUsePreferences())
	test.ExpectSuccess(t, m2.UsingDefault())

	// but the stored table can still be forced onto it
	m2.ConfigureFromPreferences()
	test.ExpectFailure(t, m2.UsingDefault())
	test.ExpectEquality(t, m2.Parts()[joystick.ControlAttack], expected[joystick.ControlAttack])

	m2.UseDefaultConfig()
	test.ExpectSuccess(t, m2.UsingDefault())
}

func TestSavePreferencesRealizesUnions(t *testing.T) {
	prefs := joysticktest.NewPrefs()
	m := joystick.NewMapping(prefs)
	m.ChangeDevice(joysticktest.NewGamepad(0, "pad"))
	m.SavePreferences()

	test.ExpectEquality(t, prefs.Part(joystick.ControlLeft), joystick.Part{Kind: joystick.PartButton, ID: joystick.GamepadButtonDpadLeft})
	test.ExpectEquality(t, prefs.Part(joystick.ControlJump), joystick.Part{Kind: joystick.PartButton, ID: joystick.GamepadButtonEast})
}
