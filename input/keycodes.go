package input

import (
	"fmt"
	"strconv"
	"strings"
)

// Virtual-key codes for keys that are commonly bound to movement.
const (
	VKSpace  uint8 = 0x20
	VKLeft   uint8 = 0x25
	VKUp     uint8 = 0x26
	VKRight  uint8 = 0x27
	VKDown   uint8 = 0x28
	VKLShift uint8 = 0xA0
	VKLCtrl  uint8 = 0xA2
)

var keyNames = map[string]uint8{
	"SPACE":  VKSpace,
	"LEFT":   VKLeft,
	"UP":     VKUp,
	"RIGHT":  VKRight,
	"DOWN":   VKDown,
	"LSHIFT": VKLShift,
	"LCTRL":  VKLCtrl,
}

// ParseKey resolves a key name ("W", "up", "lshift") or a decimal/hex code
// ("87", "0x57") to a virtual-key code.
func ParseKey(s string) (uint8, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	if len(u) == 1 && (u[0] >= 'A' && u[0] <= 'Z' || u[0] >= '0' && u[0] <= '9') {
		return u[0], nil
	}
	if c, ok := keyNames[u]; ok {
		return c, nil
	}
	n, err := strconv.ParseUint(strings.ToLower(u), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown key: %s", s)
	}
	return uint8(n), nil
}

// linuxKeys maps Linux input event codes (KEY_*) to virtual-key codes.
var linuxKeys = map[uint16]uint8{
	2: '1', 3: '2', 4: '3', 5: '4', 6: '5', 7: '6', 8: '7', 9: '8', 10: '9', 11: '0',
	16: 'Q', 17: 'W', 18: 'E', 19: 'R', 20: 'T', 21: 'Y', 22: 'U', 23: 'I', 24: 'O', 25: 'P',
	30: 'A', 31: 'S', 32: 'D', 33: 'F', 34: 'G', 35: 'H', 36: 'J', 37: 'K', 38: 'L',
	44: 'Z', 45: 'X', 46: 'C', 47: 'V', 48: 'B', 49: 'N', 50: 'M',
	29:  VKLCtrl,
	42:  VKLShift,
	57:  VKSpace,
	103: VKUp,
	105: VKLeft,
	106: VKRight,
	108: VKDown,
}

// LinuxKeyToVK translates a Linux KEY_* code.
func LinuxKeyToVK(code uint16) (uint8, bool) {
	vk, ok := linuxKeys[code]
	return vk, ok
}
