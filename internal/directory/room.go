package directory

import (
	"strings"
	"unicode"
)

// Room is a parsed office location. The zero value means the location is
// unknown; ParseRoom returns it for anything it cannot read. Text and JSON
// encodings use the String form.
type Room struct {
	Building string
	Floor    string
	Number   string
}

// ParseRoom reads either the canonical "BUILDING, FLOOR, ROOM" form or the
// two token form used on directory pages ("270G JSB" or "JSB 270G").
func ParseRoom(text string) Room {
	text = strings.TrimSpace(text)
	if text == "" {
		return Room{}
	}

	if strings.Contains(text, ",") {
		parts := strings.Split(text, ",")
		if len(parts) != 3 {
			return Room{}
		}
		room := Room{
			Building: strings.TrimSpace(parts[0]),
			Floor:    strings.TrimSpace(parts[1]),
			Number:   strings.TrimSpace(parts[2]),
		}
		if room.Building == "" || room.Number == "" {
			return Room{}
		}
		return room
	}

	fields := strings.Fields(text)
	if len(fields) != 2 {
		return Room{}
	}
	building, number := fields[1], fields[0]
	if isBuildingCode(number) && isRoomNumber(building) {
		building, number = number, building
	}
	if !isBuildingCode(building) || !isRoomNumber(number) {
		return Room{}
	}
	return Room{
		Building: building,
		Floor:    number[:1],
		Number:   number,
	}
}

// String renders the canonical comma form; the empty Room renders as "".
func (r Room) String() string {
	if r.IsZero() {
		return ""
	}
	return r.Building + ", " + r.Floor + ", " + r.Number
}

// IsZero reports whether r is the unknown location
func (r Room) IsZero() bool {
	return r == Room{}
}

// MarshalText encodes the room in its string form
func (r Room) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses text with ParseRoom; unreadable text yields the empty Room
func (r *Room) UnmarshalText(text []byte) error {
	*r = ParseRoom(string(text))
	return nil
}

func isBuildingCode(s string) bool {
	if len(s) < 2 || len(s) > 6 {
		return false
	}
	for _, c := range s {
		if c > unicode.MaxASCII || !unicode.IsLetter(c) {
			return false
		}
	}
	return true
}

func isRoomNumber(s string) bool {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return false
	}
	for _, c := range s {
		if c > unicode.MaxASCII || !(unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-') {
			return false
		}
	}
	return true
}
