package engine_test

import (
	"errors"
	"testing"

	"github.com/soar/joymap/internal/engine"
	"github.com/soar/joymap/internal/joystick"
	"github.com/soar/joymap/internal/joystick/joysticktest"
	"github.com/soar/joymap/internal/test"
	"github.com/soar/joymap/internal/wizard"
)

func newEngine() (*engine.Engine, *joysticktest.Hardware, *joysticktest.Prefs) {
	hw := &joysticktest.Hardware{}
	hw.Plug(joysticktest.NewGamepad(1, "pad"))
	hw.Plug(joysticktest.NewJoystick(2, "stick", 2, 4, 1))
	prefs := joysticktest.NewPrefs()
	return engine.New(joystick.NewInput(hw, prefs, false)), hw, prefs
}

func TestEngineState(t *testing.T) {
	e, hw, _ := newEngine()

	s := e.State()
	test.ExpectSuccess(t, s.Connected)
	test.ExpectEquality(t, s.GUID, "pad")
	test.ExpectEquality(t, s.Selected, 0)
	test.ExpectSuccess(t, s.UsingDefault)
	test.ExpectFailure(t, s.CanUseSaved)
	test.ExpectEquality(t, len(s.Devices), 2)
	test.ExpectEquality(t, s.Devices[1], engine.DeviceInfo{Name: "Test Joystick 2", GUID: "stick", ID: 2, Mode: "joystick"})
	if s.Wizard != nil {
		t.Errorf("unexpected wizard status")
	}

	hw.Opened[0].Buttons[joystick.GamepadButtonEast] = true
	test.ExpectEquality(t, e.State().Controls, engine.ControlState{Jump: true})
}

func TestEngineSelectDevice(t *testing.T) {
	e, _, prefs := newEngine()

	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.SelectDevice, Position: 1}))
	test.ExpectEquality(t, e.State().GUID, "stick")
	test.ExpectEquality(t, prefs.Chosen, "stick")

	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.SelectDevice, Position: -1}))
	s := e.State()
	test.ExpectFailure(t, s.Connected)
	test.ExpectEquality(t, s.Selected, -1)
	test.ExpectFailure(t, prefs.Use)

	err := e.Execute(engine.Command{Kind: engine.SelectDevice, Position: 2})
	test.ExpectSuccess(t, errors.Is(err, engine.ErrBadPosition))
	err = e.Execute(engine.Command{Kind: engine.SelectDevice, Position: -2})
	test.ExpectSuccess(t, errors.Is(err, engine.ErrBadPosition))
}

func TestEngineConfigure(t *testing.T) {
	e, hw, prefs := newEngine()
	d := hw.Opened[0]

	err := e.Execute(engine.Command{Kind: engine.ConfigureApply})
	test.ExpectSuccess(t, errors.Is(err, engine.ErrNoSession))

	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.ConfigureStart}))
	err = e.Execute(engine.Command{Kind: engine.UseDefault})
	test.ExpectSuccess(t, errors.Is(err, engine.ErrBusy))

	// input stays silenced while the wizard listens
	err = e.Execute(engine.Command{Kind: engine.SetSilent, On: false})
	test.ExpectSuccess(t, errors.Is(err, engine.ErrBusy))
	test.ExpectSuccess(t, e.State().Silent)

	s := e.State()
	test.ExpectSuccess(t, s.Silent)
	if s.Wizard == nil {
		t.Fatalf("expected wizard status")
	}
	test.ExpectEquality(t, s.Wizard.State, "welcome")

	for range wizard.WelcomeTicks {
		e.Tick()
	}
	buttons := []int{11, 12, 13, 14, 0, 1, 3}
	for _, b := range buttons {
		d.Release()
		e.Tick()
		d.Buttons[b] = true
		e.Tick()
		for range wizard.ConfirmTicks {
			e.Tick()
		}
	}
	d.Release()
	test.ExpectEquality(t, e.State().Wizard.State, "finished")

	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.ConfigureApply}))
	s = e.State()
	if s.Wizard != nil {
		t.Errorf("wizard still running after apply")
	}
	test.ExpectFailure(t, s.Silent)
	test.ExpectFailure(t, s.UsingDefault)
	test.ExpectSuccess(t, s.CanUseSaved)
	test.ExpectEquality(t, prefs.Saves, 1)

	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.UseDefault}))
	test.ExpectSuccess(t, e.State().UsingDefault)
	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.UseSaved}))
	test.ExpectFailure(t, e.State().UsingDefault)
}

func TestEngineUseSavedNeedsMatchingModel(t *testing.T) {
	e, _, prefs := newEngine()

	err := e.Execute(engine.Command{Kind: engine.UseSaved})
	test.ExpectSuccess(t, errors.Is(err, engine.ErrNoSavedConfig))
	test.ExpectSuccess(t, e.State().UsingDefault)

	// saved for the other controller
	prefs.SetConfigured("stick", "Test Joystick 2")
	err = e.Execute(engine.Command{Kind: engine.UseSaved})
	test.ExpectSuccess(t, errors.Is(err, engine.ErrNoSavedConfig))

	prefs.SetConfigured("pad", "Test Gamepad 1")
	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.UseSaved}))
	test.ExpectFailure(t, e.State().UsingDefault)
}

func TestEngineSilentRestoredAfterWizard(t *testing.T) {
	e, _, _ := newEngine()
	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.SetSilent, On: true}))
	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.ConfigureStart}))
	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.ConfigureCancel}))
	test.ExpectSuccess(t, e.State().Silent)
}

func TestEngineRescansPeriodically(t *testing.T) {
	e, hw, _ := newEngine()
	test.ExpectEquality(t, len(e.State().Devices), 2)

	// nobody tells the engine
	hw.Unplug(2)
	hw.Plug(joysticktest.NewJoystick(3, "wheel", 3, 8, 0))

	for range engine.SyncTicks - 1 {
		e.Tick()
	}
	test.ExpectEquality(t, e.State().Devices[1].GUID, "stick")

	e.Tick()
	s := e.State()
	test.ExpectEquality(t, len(s.Devices), 2)
	test.ExpectEquality(t, s.Devices[1].GUID, "wheel")
	test.ExpectEquality(t, s.Devices[1].ID, int32(3))
}

func TestEngineNoRescanDuringWizard(t *testing.T) {
	e, hw, _ := newEngine()
	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.ConfigureStart}))

	hw.Plug(joysticktest.NewJoystick(3, "wheel", 3, 8, 0))
	for range engine.SyncTicks * 2 {
		e.Tick()
	}
	test.ExpectEquality(t, len(e.State().Devices), 2)

	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.ConfigureCancel}))
	for range engine.SyncTicks {
		e.Tick()
	}
	test.ExpectEquality(t, len(e.State().Devices), 3)
}

func TestEngineCancel(t *testing.T) {
	e, _, _ := newEngine()
	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.ConfigureStart}))
	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.ConfigureBack}))
	test.ExpectSuccess(t, e.Execute(engine.Command{Kind: engine.ConfigureCancel}))
	if e.State().Wizard != nil {
		t.Errorf("wizard still running after cancel")
	}

	err := e.Execute(engine.Command{Kind: "dance"})
	test.ExpectSuccess(t, errors.Is(err, engine.ErrUnknownCommand))
}

func TestComputeDelta(t *testing.T) {
	old := engine.State{Connected: true, Name: "pad", Devices: []engine.DeviceInfo{{Name: "pad"}}}

	d := engine.ComputeDelta(old, old)
	test.ExpectSuccess(t, d.IsEmpty())

	next := old
	next.Controls.Left = true
	d = engine.ComputeDelta(old, next)
	test.ExpectFailure(t, d.IsEmpty())
	if d.Controls == nil || !d.Controls.Left {
		t.Errorf("controls change missing from delta")
	}
	if d.Name != nil || d.Devices != nil {
		t.Errorf("unchanged fields in delta")
	}

	next = old
	next.Devices = nil
	d = engine.ComputeDelta(old, next)
	if d.Devices == nil || len(*d.Devices) != 0 {
		t.Errorf("expected an empty device list in delta")
	}

	withWizard := old
	withWizard.Wizard = &wizard.Status{State: "listening"}
	d = engine.ComputeDelta(old, withWizard)
	if d.Wizard == nil {
		t.Errorf("wizard start missing from delta")
	}
	d = engine.ComputeDelta(withWizard, old)
	test.ExpectSuccess(t, d.WizardClosed)

	same := withWizard
	same.Wizard = &wizard.Status{State: "listening"}
	test.ExpectSuccess(t, engine.ComputeDelta(withWizard, same).IsEmpty())
}
