package joystick

import (
	"fmt"
	"log"
	"math"
)

// Part is the persisted form of a signal: which component of the controller,
// and how it is used. For an axis Data0 and Data1 are the inclusive low and
// high bounds, for a hat Data0 is the middle position and Data1 is unused,
// for a button both are unused and zero.
type Part struct {
	Kind  PartKind
	ID    int
	Data0 int
	Data1 int
}

func (p Part) String() string {
	switch p.Kind {
	case PartAxis:
		return fmt.Sprintf("axis %d [%d,%d]", p.ID, p.Data0, p.Data1)
	case PartButton:
		return fmt.Sprintf("button %d", p.ID)
	case PartHat:
		return fmt.Sprintf("hat %d %s", p.ID, HatPosition(p.Data0))
	}
	return fmt.Sprintf("%s %d (%d,%d)", p.Kind, p.ID, p.Data0, p.Data1)
}

// Signal answers the question "is the player pressing this control on this
// device right now". Signals reference their device but never own it.
type Signal interface {
	// Firing reads the device live. No state is kept between calls.
	Firing() bool

	// Part returns the persistable form of the signal. Union signals report
	// their left-most leaf.
	Part() Part
}

// AxisSignal fires when an axis reads within [low, high] inclusive. Our idea
// of the axis is digital but the hardware reports it as analogue, so one
// physical axis gives two signals, one for each direction.
type AxisSignal struct {
	device Device
	id     int
	low    int
	high   int
}

func (s *AxisSignal) Firing() bool {
	v := int(s.device.Axis(s.id))
	return s.low <= v && v <= s.high
}

func (s *AxisSignal) Part() Part {
	return Part{Kind: PartAxis, ID: s.id, Data0: s.low, Data1: s.high}
}

// ButtonSignal fires while a button is held down.
type ButtonSignal struct {
	device Device
	id     int
}

func (s *ButtonSignal) Firing() bool {
	return s.device.Button(s.id)
}

func (s *ButtonSignal) Part() Part {
	return Part{Kind: PartButton, ID: s.id}
}

// HatSignal fires when a hat is pressed in one direction.
//
// A hat reports diagonals as atomic positions, mutually exclusive with the
// straight ones: up-left is neither up nor left. Players think of a d-pad as
// two digital axes, so to decide whether the hat is "left" we accept left,
// left-up and left-down. Looking round the hat clockwise we call the wanted
// position middle, the one after it front and the one before it back.
type HatSignal struct {
	device Device
	id     int
	front  HatPosition
	middle HatPosition
	back   HatPosition
}

func newHatSignal(d Device, id int, data0 int) *HatSignal {
	middle := HatPosition(data0)
	if data0 < 0 || data0 > math.MaxUint8 || !middle.Valid() {
		log.Printf("Warning: hat position %d is not a valid signal, using left", data0)
		middle = HatLeft
	}
	return &HatSignal{
		device: d,
		id:     id,
		front:  middle.Front(),
		middle: middle,
		back:   middle.Back(),
	}
}

func (s *HatSignal) Firing() bool {
	p := s.device.Hat(s.id)
	return p == s.front || p == s.middle || p == s.back
}

func (s *HatSignal) Part() Part {
	return Part{Kind: PartHat, ID: s.id, Data0: int(s.middle)}
}

// UnionSignal fires when either of its signals fires. Unions only appear in
// generated default mappings and are never persisted directly: Part always
// resolves to the primary side.
type UnionSignal struct {
	Primary   Signal
	Secondary Signal
}

func (s *UnionSignal) Firing() bool {
	return s.Primary.Firing() || s.Secondary.Firing()
}

func (s *UnionSignal) Part() Part {
	return s.Primary.Part()
}

// Union combines signals left to right. The first signal is the one reported
// by Part.
func Union(first Signal, rest ...Signal) Signal {
	s := first
	for _, r := range rest {
		s = &UnionSignal{Primary: s, Secondary: r}
	}
	return s
}

// MakeSignal creates the signal for the component with the given kind and
// id. Returns nil if kind is out of range.
func MakeSignal(d Device, kind PartKind, id int, data0 int, data1 int) Signal {
	switch kind {
	case PartAxis:
		return &AxisSignal{device: d, id: id, low: data0, high: data1}
	case PartButton:
		return &ButtonSignal{device: d, id: id}
	case PartHat:
		return newHatSignal(d, id, data0)
	}
	log.Printf("Warning: part kind %d is out of range", int(kind))
	return nil
}

// MakeSignalFromPart is MakeSignal for a Part.
func MakeSignalFromPart(d Device, p Part) Signal {
	return MakeSignal(d, p.Kind, p.ID, p.Data0, p.Data1)
}
