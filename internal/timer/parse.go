package timer

import (
	"strconv"
	"strings"
)

const (
	prefixTimer = "Timer:"
	prefixTotal = "TOTAL:"
)

// Line is a parsed report line.
type Line struct {
	Total bool
	Slot  Slot
}

// ParseLine parses a "Timer:" or "TOTAL:" report line.
func ParseLine(line string) (Line, bool) {
	line = strings.TrimSpace(line)
	var out Line
	switch {
	case strings.HasPrefix(line, prefixTimer):
		line = strings.TrimPrefix(line, prefixTimer)
	case strings.HasPrefix(line, prefixTotal):
		line = strings.TrimPrefix(line, prefixTotal)
		out.Total = true
	default:
		return Line{}, false
	}
	parts := strings.Split(strings.TrimSpace(line), "-")
	if len(parts) != 4 {
		return Line{}, false
	}
	fields := []*int64{&out.Slot.Hours, &out.Slot.Minutes, &out.Slot.Seconds, &out.Slot.Micros}
	units := []string{"H", "M", "S", "us"}
	for i, part := range parts {
		digits, ok := strings.CutSuffix(part, units[i])
		if !ok {
			return Line{}, false
		}
		v, err := strconv.ParseInt(digits, 10, 64)
		if err != nil || v < 0 {
			return Line{}, false
		}
		*fields[i] = v
	}
	return out, true
}
