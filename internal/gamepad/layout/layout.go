// Package layout reads a raw joystick through SDL gamepad bindings, so a
// pad SDL recognises can be presented in the canonical layout without the
// gamepad state functions. It also parses gamepad mapping databases and
// derives stable device ids. It does not import SDL.
package layout

import (
	"bufio"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"strings"
)

// Source is the kind of raw input a binding reads, or the kind of canonical
// output it drives.
type Source int

const (
	None Source = iota
	Button
	Axis
	Hat
)

// Binding connects one raw joystick input to one canonical output. For an
// axis input InMin and InMax give the raw range, which may be reversed. For
// a hat input HatMask selects the direction. For an axis output OutMin and
// OutMax give the range the input is scaled onto.
type Binding struct {
	In      Source
	InIndex int
	InMin   int
	InMax   int
	HatMask int

	Out      Source
	OutIndex int
	OutMin   int
	OutMax   int
}

// Raw reads the underlying joystick.
type Raw interface {
	Axis(i int) int16
	Button(i int) bool
	Hat(i int) uint8
}

// Layout is the set of bindings of one gamepad.
type Layout struct {
	bindings []Binding
}

func New(bindings []Binding) *Layout {
	return &Layout{bindings: bindings}
}

// Len returns the number of bindings.
func (l *Layout) Len() int {
	return len(l.bindings)
}

func inRange(v, lo, hi int) bool {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo <= v && v <= hi
}

// Axis returns canonical axis i. Where several bindings drive the axis the
// one furthest from rest wins.
func (l *Layout) Axis(raw Raw, i int) int16 {
	result := 0
	for _, b := range l.bindings {
		if b.Out != Axis || b.OutIndex != i {
			continue
		}

		v := 0
		switch b.In {
		case Axis:
			v = int(raw.Axis(b.InIndex))
			if !inRange(v, b.InMin, b.InMax) {
				v = 0
			} else if b.InMin != b.OutMin || b.InMax != b.OutMax {
				f := float64(v-b.InMin) / float64(b.InMax-b.InMin)
				v = b.OutMin + int(f*float64(b.OutMax-b.OutMin))
			}
		case Button:
			if raw.Button(b.InIndex) {
				v = b.OutMax
			}
		case Hat:
			if int(raw.Hat(b.InIndex))&b.HatMask != 0 {
				v = b.OutMax
			}
		}

		if abs(v) > abs(result) {
			result = v
		}
	}
	return int16(min(max(result, math.MinInt16), math.MaxInt16))
}

// Button returns canonical button i. An axis input presses the button past
// the middle of its range.
func (l *Layout) Button(raw Raw, i int) bool {
	for _, b := range l.bindings {
		if b.Out != Button || b.OutIndex != i {
			continue
		}

		switch b.In {
		case Axis:
			v := int(raw.Axis(b.InIndex))
			if !inRange(v, b.InMin, b.InMax) {
				continue
			}
			threshold := b.InMin + (b.InMax-b.InMin)/2
			if b.InMin < b.InMax && v >= threshold || b.InMin > b.InMax && v <= threshold {
				return true
			}
		case Button:
			if raw.Button(b.InIndex) {
				return true
			}
		case Hat:
			if int(raw.Hat(b.InIndex))&b.HatMask != 0 {
				return true
			}
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// StableID identifies a controller model across sessions. USB vendor,
// product and version are used when the driver reports them, otherwise a
// checksum of the name.
func StableID(vendor, product, version uint16, name string) string {
	if vendor != 0 || product != 0 {
		return fmt.Sprintf("%04x%04x%04x", vendor, product, version)
	}
	return fmt.Sprintf("name-%08x", crc32.ChecksumIEEE([]byte(name)))
}

// ReadDB returns the mapping lines of a gamecontrollerdb file. Blank lines
// and comments are dropped. Lines that do not start with a 32 digit hex
// GUID followed by a name are counted in skipped.
func ReadDB(r io.Reader) (mappings []string, skipped int, err error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !validMapping(line) {
			skipped++
			continue
		}
		mappings = append(mappings, line)
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, err
	}
	return mappings, skipped, nil
}

func validMapping(line string) bool {
	fields := strings.SplitN(line, ",", 3)
	if len(fields) < 3 || len(fields[0]) != 32 || fields[1] == "" {
		return false
	}
	for _, c := range fields[0] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
