package driver

import (
	"fmt"
	"strings"

	"github.com/dmove/dmove/axis"
	"github.com/dmove/dmove/device/ds4"
	"github.com/dmove/dmove/device/xbox360"
	"github.com/dmove/dmove/stick"
)

// Width is the native axis encoding of a profile.
type Width int

const (
	Signed16 Width = iota
	Unsigned8
)

// Profile identifies one supported virtual pad model.
type Profile struct {
	Name      string
	VendorID  uint16
	ProductID uint16
	Width     Width
}

var (
	Xbox360 = Profile{
		Name:      "xbox360",
		VendorID:  xbox360.VendorID,
		ProductID: xbox360.ProductID,
		Width:     Signed16,
	}
	DualShock4 = Profile{
		Name:      "ds4",
		VendorID:  ds4.VendorID,
		ProductID: ds4.ProductID,
		Width:     Unsigned8,
	}
)

// Profiles lists every supported profile.
var Profiles = []Profile{Xbox360, DualShock4}

// ProfileByName looks up a profile case-insensitively. An empty name selects
// Xbox360.
func ProfileByName(name string) (Profile, error) {
	if name == "" {
		return Xbox360, nil
	}
	for _, p := range Profiles {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("unknown controller profile: %s", name)
}

func (p Profile) String() string {
	return fmt.Sprintf("%s (%04x:%04x)", p.Name, p.VendorID, p.ProductID)
}

// Report holds the four stick axes in the owning profile's native units.
type Report struct {
	LeftX, LeftY   int32
	RightX, RightY int32
}

// Encode converts a left stick vector into a report. The right stick is
// always neutral. DualShock 4 Y grows downward, so Y is negated before
// encoding to keep the neutral value at the centre.
func (p Profile) Encode(v stick.Vector) Report {
	switch p.Width {
	case Unsigned8:
		return Report{
			LeftX:  int32(axis.ToUnsigned8(v.X)),
			LeftY:  int32(axis.ToUnsigned8(-v.Y)),
			RightX: ds4.AxisCenter,
			RightY: ds4.AxisCenter,
		}
	default:
		return Report{
			LeftX: int32(axis.ToSigned16(v.X)),
			LeftY: int32(axis.ToSigned16(v.Y)),
		}
	}
}

// Neutral returns the report for a centred stick.
func (p Profile) Neutral() Report {
	return p.Encode(stick.Zero)
}

// Xbox360State converts r to the xbox360 stream packet.
func (r Report) Xbox360State() xbox360.InputState {
	return xbox360.Sticks(int16(r.LeftX), int16(r.LeftY), int16(r.RightX), int16(r.RightY))
}

// DS4State converts r to the ds4 stream packet.
func (r Report) DS4State() ds4.InputState {
	s := ds4.Neutral()
	s.LX, s.LY = uint8(r.LeftX), uint8(r.LeftY)
	s.RX, s.RY = uint8(r.RightX), uint8(r.RightY)
	return s
}

// MarshalFor encodes r in the stream packet format of p.
func (r Report) MarshalFor(p Profile) ([]byte, error) {
	if p.Width == Unsigned8 {
		return r.DS4State().MarshalBinary()
	}
	return r.Xbox360State().MarshalBinary()
}

// Normalized maps r back to [-1,1] floats with Y positive forward.
func (r Report) Normalized(p Profile) stick.Vector {
	if p.Width == Unsigned8 {
		return stick.Vector{
			X: unit((float64(r.LeftX) - ds4.AxisCenter) / 127),
			Y: unit((ds4.AxisCenter - float64(r.LeftY)) / 127),
		}
	}
	return stick.Vector{
		X: unit(float64(r.LeftX) / axis.Signed16Max),
		Y: unit(float64(r.LeftY) / axis.Signed16Max),
	}
}

func unit(v float64) float64 {
	return max(-1, min(1, v))
}
