package joystick

import (
	"fmt"
	"log"
	"time"
)

// NoDevice is the device position meaning "no joystick".
const NoDevice = -2

// Registry keeps the list of open devices and owns them: a device is closed
// exactly when the registry drops it. The player's Mapping borrows from this
// list.
type Registry struct {
	hw      Hardware
	mapping *Mapping
	devices []Device

	// buzz devices as they are opened by InitialSetup
	rumble bool
}

// NewRegistry creates an empty registry. Call InitialSetup to open devices.
func NewRegistry(hw Hardware, mapping *Mapping, rumble bool) *Registry {
	return &Registry{
		hw:      hw,
		mapping: mapping,
		rumble:  rumble,
	}
}

// InitialSetup opens every attached device and picks one for the player: the
// chosen device from preferences if attached, else the model the stored
// configuration was made for, else the first device.
func (r *Registry) InitialSetup(prefs Preferences) {
	for _, slot := range r.hw.Slots() {
		d, err := r.hw.Open(slot)
		if err != nil {
			log.Printf("Warning: could not open device in slot %d: %v", slot, err)
			continue
		}
		if r.find(d.InstanceID()) >= 0 {
			d.Close()
			continue
		}
		r.devices = append(r.devices, d)

		if r.rumble {
			if rd, ok := d.(Rumbler); ok {
				if !rd.Rumble(0.5, time.Second) {
					log.Printf("Failed to play a simple rumble effect on %s", d.Name())
				}
			}
		}
	}

	log.Printf("Initialized %d joysticks", len(r.devices))

	var chosen Device
	if prefs != nil {
		for _, guid := range []string{prefs.ChosenGUID(), prefs.ConfiguredGUID()} {
			if guid == "" {
				continue
			}
			for _, d := range r.devices {
				if d.GUID() == guid {
					chosen = d
					break
				}
			}
			if chosen != nil {
				break
			}
		}
	}
	if chosen == nil && len(r.devices) > 0 {
		chosen = r.devices[0]
	}
	if chosen != nil {
		r.mapping.ChangeDevice(chosen)
	}
}

// Devices returns the open devices. Positions match Names and IDs.
func (r *Registry) Devices() []Device {
	return r.devices
}

// Names returns a human readable name for every open device, "???" where no
// name is known.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.devices))
	for _, d := range r.devices {
		n := d.Name()
		if n == "" {
			n = "???"
		}
		names = append(names, n)
	}
	return names
}

// IDs returns the instance id of every open device.
func (r *Registry) IDs() []InstanceID {
	ids := make([]InstanceID, 0, len(r.devices))
	for _, d := range r.devices {
		ids = append(ids, d.InstanceID())
	}
	return ids
}

// ChangeDevice gives the player the device at position in Devices. NoDevice
// selects no device. Any other position outside the list panics.
func (r *Registry) ChangeDevice(position int) {
	if position == NoDevice {
		r.mapping.ChangeDevice(nil)
		return
	}
	if position < 0 || position >= len(r.devices) {
		panic(fmt.Sprintf("joystick: device position %d out of range [0,%d)", position, len(r.devices)))
	}
	r.mapping.ChangeDevice(r.devices[position])
}

// CurrentID returns the instance id of the player's device, or NoID.
func (r *Registry) CurrentID() InstanceID {
	if d := r.mapping.Device(); d != nil {
		return d.InstanceID()
	}
	return NoID
}

// CurrentPosition returns the position of the player's device in Devices,
// or NoDevice.
func (r *Registry) CurrentPosition() int {
	if d := r.mapping.Device(); d != nil {
		if i := r.find(d.InstanceID()); i >= 0 {
			return i
		}
	}
	return NoDevice
}

func (r *Registry) find(id InstanceID) int {
	for i, d := range r.devices {
		if d.InstanceID() == id {
			return i
		}
	}
	return -1
}

// drop closes and removes the device at index i, taking it away from the
// player first if necessary. Returns whether it was in use.
func (r *Registry) drop(i int) bool {
	d := r.devices[i]
	inUse := r.mapping.Device() == d
	if inUse {
		r.mapping.ChangeDevice(nil)
	}
	r.devices = append(r.devices[:i], r.devices[i+1:]...)
	d.Close()
	return inUse
}

// Synchronize brings the device list up to date with the hardware and
// reports whether it changed. Hot-plug events are not completely reliable
// so this should be called before showing the player a list of devices.
func (r *Registry) Synchronize() bool {
	changed := false

	// chuck anything no longer attached
	for i := 0; i < len(r.devices); {
		if !r.devices[i].Attached() {
			r.drop(i)
			changed = true
			continue
		}
		i++
	}

	// unless the hardware can say which device is in a slot, open it
	// (again) and compare instance ids
	for _, slot := range r.hw.Slots() {
		if r.openSlot(slot) {
			changed = true
		}
	}

	return changed
}

// openSlot opens the device in slot and adds it unless it is already in the
// list. Returns whether it was added.
func (r *Registry) openSlot(slot Slot) bool {
	if si, ok := r.hw.(SlotIdentifier); ok {
		if id, known := si.SlotID(slot); known && r.find(id) >= 0 {
			return false
		}
	}

	d, err := r.hw.Open(slot)
	if err != nil {
		log.Printf("Warning: could not open device in slot %d: %v", slot, err)
		return false
	}
	if r.find(d.InstanceID()) >= 0 {
		d.Close()
		return false
	}
	r.devices = append(r.devices, d)
	log.Printf("Added controller %s (ID=%d) from slot %d", d.Name(), d.InstanceID(), slot)
	return true
}

// HandleEvent responds to device added and removed events. If claimed is
// already true the event is not examined. Otherwise added and removed events
// are processed and claimed, and anything else is left unclaimed.
func (r *Registry) HandleEvent(ev Event, claimed bool) bool {
	if claimed {
		return true
	}

	switch ev.Kind {
	case EventAdded:
		r.openSlot(ev.Slot)
		return true

	case EventRemoved:
		i := r.find(ev.ID)
		if i < 0 {
			log.Printf("Warning: tried to remove controller ID=%d, but it is not open", ev.ID)
			return true
		}
		if r.drop(i) {
			log.Printf("Removed controller ID=%d, which was in use", ev.ID)
		} else {
			log.Printf("Removed controller ID=%d (not in use)", ev.ID)
		}
		return true
	}

	return false
}

// Close closes every device. It must be called before the hardware layer
// shuts down.
func (r *Registry) Close() {
	r.mapping.ChangeDevice(nil)
	for _, d := range r.devices {
		d.Close()
	}
	r.devices = nil
}
