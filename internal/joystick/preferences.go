package joystick

import "fmt"

// Preferences is the flat key/value store holding the joystick settings.
//
// Only one custom configuration is kept. ConfiguredGUID names the model of
// controller it was made for, and does not say which joystick was last used;
// that is the job of the chosen device settings, written when the player
// picks a controller.
type Preferences interface {
	// UseJoystick says whether the joystick drives gameplay at all.
	UseJoystick() bool
	SetUseJoystick(bool)

	ChosenGUID() string
	ChosenName() string
	SetChosen(guid string, name string)

	ConfiguredGUID() string
	ConfiguredName() string
	SetConfigured(guid string, name string)

	// Part returns the stored part for the control, already validated and
	// with defaults filled in for anything missing.
	Part(c Control) Part
	SetPart(c Control, p Part)

	// Save persists the store.
	Save() error
}

// The Validate functions make sure values read back from preferences are in
// legal ranges for their data type. Each returns its argument if it is
// valid, otherwise an arbitrary valid value.

// ValidateKind returns kind if it is a known PartKind, otherwise PartButton.
func ValidateKind(kind int) int {
	switch PartKind(kind) {
	case PartAxis, PartButton, PartHat:
		return kind
	}
	return int(PartButton)
}

// ValidateID returns id if it is in the range [0, 255], otherwise 0.
func ValidateID(id int) int {
	if id < 0 || id > 255 {
		return 0
	}
	return id
}

// ValidateData0 checks data0 against an already validated kind. Axis and
// button values pass through, hat values must be one of the eight off-centre
// positions and are otherwise replaced by right.
func ValidateData0(data0 int, kind int) int {
	switch PartKind(kind) {
	case PartAxis, PartButton:
		return data0
	case PartHat:
		if data0 >= 0 && data0 <= 0xff && HatPosition(data0).Valid() {
			return data0
		}
		return int(HatRight)
	}
	panic(fmt.Sprintf("joystick: kind %d out of range when validating data0", kind))
}

// ValidateData1 accepts any value.
func ValidateData1(data1 int) int {
	return data1
}

// ValidatePart applies every Validate function to p.
func ValidatePart(p Part) Part {
	kind := ValidateKind(int(p.Kind))
	return Part{
		Kind:  PartKind(kind),
		ID:    ValidateID(p.ID),
		Data0: ValidateData0(p.Data0, kind),
		Data1: ValidateData1(p.Data1),
	}
}

// The Default functions return values for filling in incomplete
// preferences, usually the result of someone editing the file by hand. There
// is no guarantee the defaults interact sensibly with whatever settings
// remain.

// DefaultKind is an axis for the directions and a button for the actions.
func DefaultKind(c Control) int {
	mustBeControl(c)
	switch c {
	case ControlUp, ControlDown, ControlLeft, ControlRight:
		return int(PartAxis)
	}
	return int(PartButton)
}

// DefaultID returns the default component id for the control given its kind.
func DefaultID(c Control, kind int) int {
	mustBeControl(c)
	switch PartKind(kind) {
	case PartAxis:
		return [NumControls]int{1, 1, 0, 0, 2, 3, 4}[c]
	case PartButton:
		return [NumControls]int{3, 4, 5, 6, 0, 1, 2}[c]
	case PartHat:
		return [NumControls]int{0, 0, 0, 0, 1, 1, 1}[c]
	}
	panic(fmt.Sprintf("joystick: kind %d out of range", kind))
}

// DefaultData0 returns the default low value (axis) or position (hat).
func DefaultData0(c Control, kind int) int {
	mustBeControl(c)
	switch PartKind(kind) {
	case PartAxis:
		return [NumControls]int{-LargeMag, SmallMag, -LargeMag, SmallMag, -LargeMag, -LargeMag, -LargeMag}[c]
	case PartButton:
		return 0
	case PartHat:
		return int([NumControls]HatPosition{HatUp, HatDown, HatLeft, HatRight, HatDown, HatRight, HatUp}[c])
	}
	panic(fmt.Sprintf("joystick: kind %d out of range", kind))
}

// DefaultData1 returns the default high value (axis), zero otherwise.
func DefaultData1(c Control, kind int) int {
	mustBeControl(c)
	switch PartKind(kind) {
	case PartAxis:
		return [NumControls]int{-SmallMag, LargeMag, -SmallMag, LargeMag, -SmallMag, -SmallMag, -SmallMag}[c]
	case PartButton, PartHat:
		return 0
	}
	panic(fmt.Sprintf("joystick: kind %d out of range", kind))
}

// DefaultPart is the part used for a control with nothing stored.
func DefaultPart(c Control) Part {
	kind := DefaultKind(c)
	return Part{
		Kind:  PartKind(kind),
		ID:    DefaultID(c, kind),
		Data0: DefaultData0(c, kind),
		Data1: DefaultData1(c, kind),
	}
}
