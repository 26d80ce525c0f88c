package engine

import (
	"slices"

	"github.com/soar/joymap/internal/wizard"
)

// ControlState is the live reading of the seven logical controls.
type ControlState struct {
	Up     bool `json:"up"`
	Down   bool `json:"down"`
	Left   bool `json:"left"`
	Right  bool `json:"right"`
	Attack bool `json:"attack"`
	Jump   bool `json:"jump"`
	Tongue bool `json:"tongue"`
}

// DeviceInfo describes one open controller.
type DeviceInfo struct {
	Name string `json:"name"`
	GUID string `json:"guid"`
	ID   int32  `json:"id"`
	Mode string `json:"mode"`
}

// State is a snapshot of the player's input for display.
type State struct {
	Connected    bool           `json:"connected"`
	Name         string         `json:"name"`
	GUID         string         `json:"guid"`
	ID           int32          `json:"id"`
	Selected     int            `json:"selected"` // position in Devices, -1 for none
	UsingDefault bool           `json:"usingDefault"`
	CanUseSaved  bool           `json:"canUseSaved"`
	Silent       bool           `json:"silent"`
	Controls     ControlState   `json:"controls"`
	Devices      []DeviceInfo   `json:"devices"`
	Wizard       *wizard.Status `json:"wizard,omitempty"`
}

// DeltaChanges holds the fields that differ between two states.
type DeltaChanges struct {
	Connected    *bool          `json:"connected,omitempty"`
	Name         *string        `json:"name,omitempty"`
	GUID         *string        `json:"guid,omitempty"`
	ID           *int32         `json:"id,omitempty"`
	Selected     *int           `json:"selected,omitempty"`
	UsingDefault *bool          `json:"usingDefault,omitempty"`
	CanUseSaved  *bool          `json:"canUseSaved,omitempty"`
	Silent       *bool          `json:"silent,omitempty"`
	Controls     *ControlState  `json:"controls,omitempty"`
	Devices      *[]DeviceInfo  `json:"devices,omitempty"`
	Wizard       *wizard.Status `json:"wizard,omitempty"`

	// set when a wizard session ends, since a nil Wizard means unchanged
	WizardClosed bool `json:"wizardClosed,omitempty"`
}

func (d *DeltaChanges) IsEmpty() bool {
	return d.Connected == nil &&
		d.Name == nil &&
		d.GUID == nil &&
		d.ID == nil &&
		d.Selected == nil &&
		d.UsingDefault == nil &&
		d.CanUseSaved == nil &&
		d.Silent == nil &&
		d.Controls == nil &&
		d.Devices == nil &&
		d.Wizard == nil &&
		!d.WizardClosed
}

func ComputeDelta(old, new_ State) *DeltaChanges {
	d := &DeltaChanges{}

	if old.Connected != new_.Connected {
		d.Connected = &new_.Connected
	}
	if old.Name != new_.Name {
		d.Name = &new_.Name
	}
	if old.GUID != new_.GUID {
		d.GUID = &new_.GUID
	}
	if old.ID != new_.ID {
		d.ID = &new_.ID
	}
	if old.Selected != new_.Selected {
		d.Selected = &new_.Selected
	}
	if old.UsingDefault != new_.UsingDefault {
		d.UsingDefault = &new_.UsingDefault
	}
	if old.CanUseSaved != new_.CanUseSaved {
		d.CanUseSaved = &new_.CanUseSaved
	}
	if old.Silent != new_.Silent {
		d.Silent = &new_.Silent
	}
	if old.Controls != new_.Controls {
		d.Controls = &new_.Controls
	}
	if !slices.Equal(old.Devices, new_.Devices) {
		devices := slices.Clone(new_.Devices)
		if devices == nil {
			devices = []DeviceInfo{}
		}
		d.Devices = &devices
	}

	switch {
	case new_.Wizard == nil:
		d.WizardClosed = old.Wizard != nil
	case old.Wizard == nil || *old.Wizard != *new_.Wizard:
		d.Wizard = new_.Wizard
	}

	return d
}
