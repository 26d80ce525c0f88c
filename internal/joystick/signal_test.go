package joystick_test

import (
	"testing"

	"github.com/soar/joymap/internal/joystick"
	"github.com/soar/joymap/internal/joystick/joysticktest"
	"github.com/soar/joymap/internal/test"
)

func TestAxisSignalBounds(t *testing.T) {
	d := joysticktest.NewJoystick(0, "axis", 2, 0, 0)
	neg := joystick.MakeSignal(d, joystick.PartAxis, 1, -joystick.LargeMag, -joystick.SmallMag)
	pos := joystick.MakeSignal(d, joystick.PartAxis, 1, joystick.SmallMag, joystick.LargeMag)

	tests := []struct {
		value int16
		neg   bool
		pos   bool
	}{
		{-32768, true, false},
		{-joystick.SmallMag, true, false},
		{-joystick.SmallMag + 1, false, false},
		{0, false, false},
		{joystick.SmallMag - 1, false, false},
		{joystick.SmallMag, false, true},
		{32767, false, true},
	}

	for _, tt := range tests {
		d.Axes[1] = tt.value
		if neg.Firing() != tt.neg {
			t.Errorf("negative signal at %d: got %v", tt.value, neg.Firing())
		}
		if pos.Firing() != tt.pos {
			t.Errorf("positive signal at %d: got %v", tt.value, pos.Firing())
		}
	}

	// the other axis is not watched
	d.Axes[1] = 0
	d.Axes[0] = 32767
	test.ExpectFailure(t, pos.Firing())
}

func TestButtonSignal(t *testing.T) {
	d := joysticktest.NewJoystick(0, "button", 0, 4, 0)
	s := joystick.MakeSignal(d, joystick.PartButton, 2, 99, 99)
	test.ExpectFailure(t, s.Firing())
	d.Buttons[2] = true
	test.ExpectSuccess(t, s.Firing())
	test.ExpectEquality(t, s.Part(), joystick.Part{Kind: joystick.PartButton, ID: 2})
}

func TestUnionSignal(t *testing.T) {
	d := joysticktest.NewJoystick(0, "union", 2, 2, 0)
	u := joystick.Union(
		joystick.MakeSignal(d, joystick.PartButton, 1, 0, 0),
		joystick.MakeSignal(d, joystick.PartAxis, 0, joystick.SmallMag, joystick.LargeMag),
		joystick.MakeSignal(d, joystick.PartButton, 0, 0, 0),
	)

	test.ExpectFailure(t, u.Firing())

	d.Buttons[0] = true
	test.ExpectSuccess(t, u.Firing())
	d.Release()

	d.Axes[0] = 10000
	test.ExpectSuccess(t, u.Firing())
	d.Release()

	// persisted form is always the left-most leaf
	test.ExpectEquality(t, u.Part(), joystick.Part{Kind: joystick.PartButton, ID: 1})
}

func TestMakeSignalUnknownKind(t *testing.T) {
	d := joysticktest.NewJoystick(0, "bad", 1, 1, 1)
	if s := joystick.MakeSignal(d, joystick.PartKind(7), 0, 0, 0); s != nil {
		t.Errorf("expected no signal for unknown kind, got %v", s)
	}
}

func TestHatSignalOutOfRange(t *testing.T) {
	d := joysticktest.NewJoystick(0, "hat", 0, 0, 1)

	// 0x101 would read as up if cut down to a byte
	for _, data0 := range []int{0x101, -1, 0x104, 0} {
		s := joystick.MakeSignal(d, joystick.PartHat, 0, data0, 0)
		test.ExpectEquality(t, s.Part(), joystick.Part{Kind: joystick.PartHat, ID: 0, Data0: int(joystick.HatLeft)})
	}

	s := joystick.MakeSignal(d, joystick.PartHat, 0, 0x101, 0)
	d.Hats[0] = joystick.HatUp
	test.ExpectFailure(t, s.Firing())
	d.Hats[0] = joystick.HatLeft
	test.ExpectSuccess(t, s.Firing())
}

func TestPartString(t *testing.T) {
	tests := []struct {
		part     joystick.Part
		expected string
	}{
		{joystick.Part{Kind: joystick.PartAxis, ID: 1, Data0: -joystick.LargeMag, Data1: -joystick.SmallMag}, "axis 1 [-1000000,-4096]"},
		{joystick.Part{Kind: joystick.PartButton, ID: 3}, "button 3"},
		{joystick.Part{Kind: joystick.PartHat, ID: 0, Data0: int(joystick.HatUp)}, "hat 0 up"},
	}
	for _, tt := range tests {
		test.ExpectEquality(t, tt.part.String(), tt.expected)
	}
}
