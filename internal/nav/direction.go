package nav

import (
	"fmt"
	"strings"
)

// Direction is one of the four focus movement directions.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

// Directions lists the four movement directions in entry order.
var Directions = []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	default:
		return DirectionNone
	}
}

// ParseDirection parses "up", "down", "left" or "right" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirectionUp, nil
	case "down":
		return DirectionDown, nil
	case "left":
		return DirectionLeft, nil
	case "right":
		return DirectionRight, nil
	default:
		return DirectionNone, fmt.Errorf("unknown direction %q", s)
	}
}
