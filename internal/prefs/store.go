// Package prefs stores the player's joystick preferences in a YAML file.
//
// The store is a flat set of keys, matching the layout the game has always
// used:
//
//	use_joystick
//	chosen_joystick_guid, chosen_joystick_name
//	joystick_guid, joystick_name
//	joystick_<control>_part_kind, _part_id, _part_data0, _part_data1
//
// where <control> is one of up, down, left, right, attack, jump, tongue.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/soar/joymap/internal/joystick"
)

const (
	keyUseJoystick = "use_joystick"
	keyChosenGUID  = "chosen_joystick_guid"
	keyChosenName  = "chosen_joystick_name"
	keyGUID        = "joystick_guid"
	keyName        = "joystick_name"
)

func partKey(c joystick.Control, field string) string {
	return fmt.Sprintf("joystick_%s_part_%s", c, field)
}

// Store implements joystick.Preferences.
type Store struct {
	v    *viper.Viper
	path string
}

// New creates an empty store that saves to path.
func New(path string) *Store {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(keyUseJoystick, true)
	return &Store{v: v, path: path}
}

// Load creates a store from the file at path. A missing file is not an
// error, the store simply starts empty.
func Load(path string) (*Store, error) {
	s := New(path)
	if err := s.v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("No preferences at %s, starting afresh", path)
			return s, nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return s, nil
		}
		return nil, fmt.Errorf("prefs: reading %s: %w", path, err)
	}
	log.Printf("Loaded preferences from %s", path)
	return s, nil
}

// Path returns the file the store saves to.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) UseJoystick() bool {
	return s.v.GetBool(keyUseJoystick)
}

func (s *Store) SetUseJoystick(on bool) {
	s.v.Set(keyUseJoystick, on)
}

func (s *Store) ChosenGUID() string {
	return s.v.GetString(keyChosenGUID)
}

func (s *Store) ChosenName() string {
	return s.v.GetString(keyChosenName)
}

func (s *Store) SetChosen(guid string, name string) {
	s.v.Set(keyChosenGUID, guid)
	s.v.Set(keyChosenName, name)
}

func (s *Store) ConfiguredGUID() string {
	return s.v.GetString(keyGUID)
}

func (s *Store) ConfiguredName() string {
	return s.v.GetString(keyName)
}

func (s *Store) SetConfigured(guid string, name string) {
	s.v.Set(keyGUID, guid)
	s.v.Set(keyName, name)
}

// Part reads the stored part for c. Missing fields are filled with the
// defaults for the control and everything is validated, so a hand edited
// file never produces an illegal signal.
func (s *Store) Part(c joystick.Control) joystick.Part {
	kind := joystick.DefaultKind(c)
	if k := partKey(c, "kind"); s.v.IsSet(k) {
		kind = joystick.ValidateKind(s.v.GetInt(k))
	}

	id := joystick.DefaultID(c, kind)
	if k := partKey(c, "id"); s.v.IsSet(k) {
		id = s.v.GetInt(k)
	}

	data0 := joystick.DefaultData0(c, kind)
	if k := partKey(c, "data0"); s.v.IsSet(k) {
		data0 = s.v.GetInt(k)
	}

	data1 := joystick.DefaultData1(c, kind)
	if k := partKey(c, "data1"); s.v.IsSet(k) {
		data1 = s.v.GetInt(k)
	}

	return joystick.ValidatePart(joystick.Part{
		Kind:  joystick.PartKind(kind),
		ID:    id,
		Data0: data0,
		Data1: data1,
	})
}

func (s *Store) SetPart(c joystick.Control, p joystick.Part) {
	s.v.Set(partKey(c, "kind"), int(p.Kind))
	s.v.Set(partKey(c, "id"), p.ID)
	s.v.Set(partKey(c, "data0"), p.Data0)
	s.v.Set(partKey(c, "data1"), p.Data1)
}

// Save writes the store to its file, creating the directory if necessary.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("prefs: writing %s: %w", s.path, err)
	}
	return nil
}
