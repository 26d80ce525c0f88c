package joystick

import "fmt"

// HatPosition is a hat (d-pad) reading, using the SDL bit encoding.
type HatPosition uint8

const (
	HatCentered  HatPosition = 0x00
	HatUp        HatPosition = 0x01
	HatRight     HatPosition = 0x02
	HatDown      HatPosition = 0x04
	HatLeft      HatPosition = 0x08
	HatRightUp               = HatRight | HatUp
	HatRightDown             = HatRight | HatDown
	HatLeftUp                = HatLeft | HatUp
	HatLeftDown              = HatLeft | HatDown
)

// clockwise order round the hat, starting at right.
var hatClockwise = [8]HatPosition{
	HatRight, HatRightDown, HatDown, HatLeftDown,
	HatLeft, HatLeftUp, HatUp, HatRightUp,
}

// Valid reports whether p is one of the eight off-centre positions.
func (p HatPosition) Valid() bool {
	return p.clockwiseIndex() >= 0
}

func (p HatPosition) clockwiseIndex() int {
	for i, q := range hatClockwise {
		if p == q {
			return i
		}
	}
	return -1
}

// Front returns the position one step clockwise of p. For example the front
// of up is right-up. Panics if p is not an off-centre position.
func (p HatPosition) Front() HatPosition {
	i := p.clockwiseIndex()
	if i < 0 {
		panic(fmt.Sprintf("joystick: hat position %#02x has no front", uint8(p)))
	}
	return hatClockwise[(i+1)%len(hatClockwise)]
}

// Back returns the position one step anticlockwise of p. For example the back
// of up is left-up. Panics if p is not an off-centre position.
func (p HatPosition) Back() HatPosition {
	i := p.clockwiseIndex()
	if i < 0 {
		panic(fmt.Sprintf("joystick: hat position %#02x has no back", uint8(p)))
	}
	return hatClockwise[(i+len(hatClockwise)-1)%len(hatClockwise)]
}

func (p HatPosition) String() string {
	switch p {
	case HatCentered:
		return "centered"
	case HatUp:
		return "up"
	case HatRight:
		return "right"
	case HatDown:
		return "down"
	case HatLeft:
		return "left"
	case HatRightUp:
		return "right-up"
	case HatRightDown:
		return "right-down"
	case HatLeftUp:
		return "left-up"
	case HatLeftDown:
		return "left-down"
	}
	return fmt.Sprintf("hat(%#02x)", uint8(p))
}
