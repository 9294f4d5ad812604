// Package config defines the service configuration: strafing angles, key
// bindings and feature flags. It also provides a hot-swappable store for it.
package config

import (
	"errors"
	"fmt"

	"github.com/dmove/dmove/driver"
	"github.com/dmove/dmove/stick"
)

// ErrConfigParse wraps every decoding and validation failure.
var ErrConfigParse = errors.New("invalid service configuration")

// Virtual-key codes of the default WASD bindings.
const (
	KeyW uint8 = 0x57
	KeyA uint8 = 0x41
	KeyS uint8 = 0x53
	KeyD uint8 = 0x44
)

// StrafingAngles tunes the diagonal shaping. All angles are fractions in
// (0,1].
type StrafingAngles struct {
	UpDiagonalAngle     float64    `json:"upDiagonalAngle"`
	LeftUpDiagonalAngle *float64   `json:"leftUpDiagonalAngle,omitempty"`
	LeftRightAngle      float64    `json:"leftRightAngle"`
	AnalogRange         [2]float64 `json:"analogRange"`
}

// JoystickKeyMapping binds up to two key codes per direction. A nil code is
// unbound.
type JoystickKeyMapping struct {
	Up       *uint8 `json:"up"`
	UpTwo    *uint8 `json:"upTwo"`
	Down     *uint8 `json:"down"`
	DownTwo  *uint8 `json:"downTwo"`
	Left     *uint8 `json:"left"`
	LeftTwo  *uint8 `json:"leftTwo"`
	Right    *uint8 `json:"right"`
	RightTwo *uint8 `json:"rightTwo"`
}

type KeyMapping struct {
	LeftJoystick JoystickKeyMapping `json:"leftJoystick"`
}

// Configuration is the full service configuration.
type Configuration struct {
	LeftJoystickStrafingAngles StrafingAngles `json:"leftJoystickStrafingAngles"`
	KeyMapping                 KeyMapping     `json:"keyMapping"`
	UseAnalogInput             bool           `json:"useAnalogInput"`
	AdvancedStrafeEnabled      bool           `json:"advancedStrafeEnabled"`
	Profile                    string         `json:"profile,omitempty"`
}

func key(c uint8) *uint8 { return &c }

// Default returns the stock configuration: WASD bindings, default angles and
// the full analog range.
func Default() Configuration {
	return Configuration{
		LeftJoystickStrafingAngles: StrafingAngles{
			UpDiagonalAngle: stick.DefaultDiagonalFraction,
			LeftRightAngle:  stick.DefaultSingleKeyFraction,
			AnalogRange:     [2]float64{0, 1},
		},
		KeyMapping: KeyMapping{
			LeftJoystick: JoystickKeyMapping{
				Up:    key(KeyW),
				Down:  key(KeyS),
				Left:  key(KeyA),
				Right: key(KeyD),
			},
		},
		Profile: driver.Xbox360.Name,
	}
}

// Validate checks value ranges.
func (c Configuration) Validate() error {
	a := c.LeftJoystickStrafingAngles
	if err := checkFraction("upDiagonalAngle", a.UpDiagonalAngle); err != nil {
		return err
	}
	if a.LeftUpDiagonalAngle != nil {
		if err := checkFraction("leftUpDiagonalAngle", *a.LeftUpDiagonalAngle); err != nil {
			return err
		}
	}
	if err := checkFraction("leftRightAngle", a.LeftRightAngle); err != nil {
		return err
	}
	r := a.AnalogRange
	if r[0] < 0 || r[1] > 1 || r[0] >= r[1] {
		return fmt.Errorf("%w: analogRange must satisfy 0 <= start < end <= 1, got [%v, %v]", ErrConfigParse, r[0], r[1])
	}
	if _, err := driver.ProfileByName(c.Profile); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigParse, err)
	}
	return nil
}

func checkFraction(name string, v float64) error {
	if !(v > 0 && v <= 1) {
		return fmt.Errorf("%w: %s must be in (0,1], got %v", ErrConfigParse, name, v)
	}
	return nil
}

// Shaping returns the vector shaping parameters.
func (c Configuration) Shaping() stick.Shaping {
	a := c.LeftJoystickStrafingAngles
	s := stick.Shaping{
		UpDiagonal:     a.UpDiagonalAngle,
		SingleKey:      a.LeftRightAngle,
		AdvancedStrafe: c.AdvancedStrafeEnabled,
	}
	if a.LeftUpDiagonalAngle != nil {
		s.LeftUpDiagonal = *a.LeftUpDiagonalAngle
	}
	return s
}

// ActivationRange returns the analog actuation window. Digital input ignores
// it.
func (c Configuration) ActivationRange() stick.ActivationRange {
	r := c.LeftJoystickStrafingAngles.AnalogRange
	return stick.ActivationRange{Start: r[0], End: r[1]}
}

// Bindings returns the left stick key bindings.
func (c Configuration) Bindings() stick.Bindings {
	m := c.KeyMapping.LeftJoystick
	return stick.Bindings{
		stick.Up:    {Primary: m.Up, Secondary: m.UpTwo},
		stick.Down:  {Primary: m.Down, Secondary: m.DownTwo},
		stick.Left:  {Primary: m.Left, Secondary: m.LeftTwo},
		stick.Right: {Primary: m.Right, Secondary: m.RightTwo},
	}
}

// ControllerProfile resolves the configured virtual pad profile.
func (c Configuration) ControllerProfile() driver.Profile {
	p, err := driver.ProfileByName(c.Profile)
	if err != nil {
		return driver.Xbox360
	}
	return p
}
