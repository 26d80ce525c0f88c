// Package wizard runs the interactive remap procedure: the player is asked
// to press the button, hat or axis direction for each logical control in
// turn. A Session is advanced one tick at a time by the input loop and
// reports what the player should be told through Status.
package wizard

import (
	"errors"
	"fmt"
	"log"

	"github.com/soar/joymap/internal/joystick"
)

// Tick counts for the timed states.
const (
	WelcomeTicks     = 50
	CalibrateTicks   = 30
	UnsteadyTicks    = 60
	AlreadyUsedTicks = 60
	ConfirmTicks     = 30
	BlinkTicks       = 10
)

var (
	ErrNoDevice    = errors.New("wizard: no controller to configure")
	ErrNotFinished = errors.New("wizard: configuration is not finished")
	ErrEnded       = errors.New("wizard: session has ended")
)

// State is the step the session is at.
type State int

const (
	Welcome State = iota

	// Calibrating samples the resting axis values. The player must leave
	// the controller alone.
	Calibrating

	// Unsteady tells the player the controller moved while calibrating.
	// Calibration starts again afterwards.
	Unsteady

	// Listening waits for the player to press something for the current
	// control.
	Listening

	// AlreadyUsed tells the player their press was assigned to an earlier
	// control.
	AlreadyUsed

	// Confirming tells the player their press was accepted.
	Confirming

	// Finished waits for Apply or Cancel.
	Finished

	// Ended means the session was applied, cancelled or abandoned because
	// its device went away.
	Ended
)

var stateNames = [...]string{"welcome", "calibrating", "unsteady", "listening", "already_used", "confirming", "finished", "ended"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Status is a snapshot of the session for display.
type Status struct {
	State   string `json:"state"`
	Control string `json:"control,omitempty"`
	Message string `json:"message"`
	CanBack bool   `json:"canBack"`
	CanOkay bool   `json:"canOkay"`
	Blink   bool   `json:"blink"`
}

// Session is one run of the remap procedure for the player's current
// device. Joystick input is silenced for the duration. Not safe for
// concurrent use.
type Session struct {
	input *joystick.Input
	conf  *joystick.Configurator

	state State
	tick  int

	// control named by the Confirming message
	got joystick.Control

	blinkTick int
	blink     bool

	// wait for everything to be let go before listening again
	waitRelease bool

	// silent mode to restore when the session ends
	wasSilent bool
}

// Start begins a session on the player's current device.
func Start(inp *joystick.Input) (*Session, error) {
	conf := inp.StartConfigurer()
	if conf == nil {
		return nil, ErrNoDevice
	}
	s := &Session{input: inp, conf: conf, wasSilent: inp.Silent()}
	inp.SetSilent(true)

	s.enter(Welcome)
	log.Printf("Configuring controller %s", conf.Device().Name())
	return s, nil
}

// State returns the current step.
func (s *Session) State() State {
	return s.state
}

// Done is true once the session has ended for whatever reason.
func (s *Session) Done() bool {
	return s.state == Ended
}

func (s *Session) enter(st State) {
	s.state = st
	s.tick = 0
	switch st {
	case Welcome:
		s.tick = WelcomeTicks
	case Calibrating:
		s.tick = CalibrateTicks
		s.conf.ClearNeutralZones()
	case Unsteady:
		s.tick = UnsteadyTicks
	case Listening:
		s.blinkTick = BlinkTicks
		s.blink = true
	case AlreadyUsed:
		s.tick = AlreadyUsedTicks
	case Confirming:
		s.tick = ConfirmTicks
	case Finished:
		log.Printf("Configuration finished, waiting for confirmation")
	}
}

// next is the state a timed state moves to when its ticks run out.
func (s *Session) next() {
	switch s.state {
	case Welcome:
		if joystick.KnowsNeutralPoints(s.conf.Device()) {
			s.conf.UseDefaultNeutralZones()
			s.enter(Listening)
			return
		}
		s.enter(Calibrating)
	case Calibrating:
		if s.conf.NeutralZonesDangerous() {
			log.Printf("Warning: controller moved during calibration, trying again")
			s.enter(Unsteady)
			return
		}
		s.enter(Listening)
	case Unsteady:
		s.enter(Calibrating)
	case AlreadyUsed:
		s.waitRelease = true
		s.enter(Listening)
	case Confirming:
		if s.conf.Finished() {
			s.enter(Finished)
			return
		}
		s.waitRelease = true
		s.enter(Listening)
	}
}

// Tick advances the session by one refresh cycle.
func (s *Session) Tick() {
	if s.state == Ended {
		return
	}
	if s.input.Configurer() != s.conf {
		log.Printf("Configuration abandoned")
		s.end()
		return
	}

	if s.tick > 0 {
		if s.state == Calibrating {
			s.conf.TickNeutralZones()
		}
		s.tick--
		if s.tick == 0 {
			s.next()
		}
		return
	}

	if s.state != Listening {
		return
	}

	s.blinkTick--
	if s.blinkTick <= 0 {
		s.blinkTick = BlinkTicks
		s.blink = !s.blink
	}

	if s.waitRelease {
		if !s.conf.Idle() {
			return
		}
		s.waitRelease = false
	}

	current := s.conf.Current()
	switch s.conf.Listen() {
	case joystick.Duplicate:
		s.enter(AlreadyUsed)
	case joystick.KeepGoing, joystick.Finished:
		s.got = current
		s.enter(Confirming)
	}
}

// Back goes back one control so it can be pressed again. Returns false if
// there is nothing to go back to.
func (s *Session) Back() bool {
	switch s.state {
	case Listening, AlreadyUsed, Confirming, Finished:
	default:
		return false
	}
	if !s.conf.Retreat() {
		return false
	}
	s.waitRelease = true
	s.enter(Listening)
	return true
}

// Apply installs the new configuration and saves it to preferences. The
// session ends even if saving fails.
func (s *Session) Apply() error {
	switch s.state {
	case Ended:
		return ErrEnded
	case Finished:
	default:
		return ErrNotFinished
	}
	err := s.input.ApplyConfiguration()
	s.end()
	if err != nil {
		return fmt.Errorf("wizard: saving configuration: %w", err)
	}
	return nil
}

// Cancel abandons the session, leaving the mapping as it was.
func (s *Session) Cancel() {
	if s.state == Ended {
		return
	}
	log.Printf("Configuration cancelled")
	s.end()
}

func (s *Session) end() {
	if s.input.Configurer() == s.conf {
		s.input.StopConfigurer()
	}
	s.input.SetSilent(s.wasSilent)
	s.state = Ended
}

// Status describes the session for the player.
func (s *Session) Status() Status {
	st := Status{State: s.state.String()}

	switch s.state {
	case Welcome:
		st.Message = "...Starting..."
	case Calibrating:
		st.Message = "Leave the controller alone for a moment"
	case Unsteady:
		st.Message = "The controller moved. Let go of everything and we will try again"
	case Listening:
		st.Control = s.conf.Current().String()
		st.Message = fmt.Sprintf("Please press [%s]", st.Control)
		st.CanBack = s.conf.Current() > joystick.ControlUp
		st.Blink = s.blink
	case AlreadyUsed:
		st.Control = s.conf.Current().String()
		st.Message = "You have already used that."
	case Confirming:
		st.Control = s.got.String()
		st.Message = fmt.Sprintf("Got action for [%s]", st.Control)
	case Finished:
		st.Message = "All done! Press Okay to save."
		st.CanBack = true
		st.CanOkay = true
	case Ended:
		st.Message = "Configuration closed"
	}

	return st
}
