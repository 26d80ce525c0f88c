package engine

import "fmt"

// CommandKind names a request from a client. The values are the wire names.
type CommandKind string

const (
	SelectDevice    CommandKind = "select_device"
	UseDefault      CommandKind = "use_default"
	UseSaved        CommandKind = "use_saved"
	Rescan          CommandKind = "rescan"
	ConfigureStart  CommandKind = "configure_start"
	ConfigureBack   CommandKind = "configure_back"
	ConfigureApply  CommandKind = "configure_apply"
	ConfigureCancel CommandKind = "configure_cancel"
	SetSilent       CommandKind = "silent"
)

// Command is a request to change the input state. Commands are executed on
// the input loop. If Reply is not nil the result is sent on it; it should
// be buffered.
type Command struct {
	Kind     CommandKind
	Position int // for SelectDevice, -1 selects no device
	On       bool
	Reply    chan error
}

func (c Command) String() string {
	switch c.Kind {
	case SelectDevice:
		return fmt.Sprintf("%s %d", c.Kind, c.Position)
	case SetSilent:
		return fmt.Sprintf("%s %v", c.Kind, c.On)
	}
	return string(c.Kind)
}

// Valid reports whether the command kind is known.
func (c Command) Valid() bool {
	switch c.Kind {
	case SelectDevice, UseDefault, UseSaved, Rescan, ConfigureStart,
		ConfigureBack, ConfigureApply, ConfigureCancel, SetSilent:
		return true
	}
	return false
}
