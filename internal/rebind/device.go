// Package rebind validates proposed key bindings: device restrictions,
// black and white lists, and collisions between actions that share an input
// group. It also drives the interactive rebind flow.
package rebind

import (
	"fmt"
	"strings"
)

// Device is the kind of input device a key comes from.
type Device int

const (
	DeviceNone Device = iota
	DeviceKeyboard
	DeviceMouse
	DeviceGamepad
)

func (d Device) String() string {
	switch d {
	case DeviceKeyboard:
		return "keyboard"
	case DeviceMouse:
		return "mouse"
	case DeviceGamepad:
		return "gamepad"
	default:
		return "none"
	}
}

// Classify returns the device of a key name. Mouse buttons are named
// "mouse-<button>" and wheel motion "wheel-<dir>"; gamepad keys carry a
// "pad-" or "gamepad-" prefix. Every other non-empty name is a keyboard key.
func Classify(key string) Device {
	switch {
	case key == "":
		return DeviceNone
	case strings.HasPrefix(key, "mouse-"), strings.HasPrefix(key, "wheel-"):
		return DeviceMouse
	case strings.HasPrefix(key, "pad-"), strings.HasPrefix(key, "gamepad-"):
		return DeviceGamepad
	default:
		return DeviceKeyboard
	}
}

// Restriction limits the devices a key column accepts.
type Restriction int

const (
	RestrictionNone Restriction = iota
	RestrictionKeyboard
	RestrictionMouse
	RestrictionKeyboardMouse
	RestrictionGamepad
)

func (r Restriction) String() string {
	switch r {
	case RestrictionKeyboard:
		return "keyboard"
	case RestrictionMouse:
		return "mouse"
	case RestrictionKeyboardMouse:
		return "keyboard_mouse"
	case RestrictionGamepad:
		return "gamepad"
	default:
		return "none"
	}
}

// ParseRestriction parses a restriction name. Both "keyboard_mouse" and
// "keyboard+mouse" name RestrictionKeyboardMouse.
func ParseRestriction(s string) (Restriction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return RestrictionNone, nil
	case "keyboard":
		return RestrictionKeyboard, nil
	case "mouse":
		return RestrictionMouse, nil
	case "keyboard_mouse", "keyboard+mouse", "keyboardmouse":
		return RestrictionKeyboardMouse, nil
	case "gamepad":
		return RestrictionGamepad, nil
	default:
		return RestrictionNone, fmt.Errorf("unknown input restriction %q", s)
	}
}

// RespectsRestriction reports whether key may be bound under r.
func RespectsRestriction(key string, r Restriction) bool {
	d := Classify(key)
	switch r {
	case RestrictionNone:
		return true
	case RestrictionKeyboard:
		return d != DeviceGamepad && d != DeviceMouse
	case RestrictionMouse:
		return d == DeviceMouse
	case RestrictionKeyboardMouse:
		return d != DeviceGamepad
	case RestrictionGamepad:
		return d == DeviceGamepad
	default:
		return false
	}
}
