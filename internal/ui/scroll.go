package ui

import "strings"

// ZoneOf returns the zone of element index.
func ZoneOf(zones []Zone, index int) (Zone, bool) {
	for _, z := range zones {
		if z.Index == index {
			return z, true
		}
	}
	return Zone{}, false
}

// Follow returns the first line to show of a body total lines tall, seen
// height lines at a time, so that z is in view. It moves as little as
// possible from offset, except that scrolling up returns to the top once z
// fits the first page. A zone taller than the window shows its top.
func Follow(offset int, z Zone, height, total int) int {
	if height <= 0 {
		return 0
	}
	if z.Y+z.Height > offset+height {
		offset = z.Y + z.Height - height
	}
	if z.Y < offset {
		offset = z.Y
		if z.Y+z.Height <= height {
			offset = 0
		}
	}
	return max(min(offset, total-height), 0)
}

// Window returns height lines of body starting at line offset.
func Window(body string, offset, height int) string {
	lines := strings.Split(body, "\n")
	offset = min(max(offset, 0), len(lines))
	end := min(offset+max(height, 0), len(lines))
	return strings.Join(lines[offset:end], "\n")
}
