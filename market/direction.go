package market

import (
	"fmt"
	"strings"
)

// Direction is a directional opinion or order side.
type Direction int

const (
	Flat Direction = iota
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	default:
		return "FLAT"
	}
}

// Opposite returns the other side. Flat has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	default:
		return Flat
	}
}

// ParseDirection accepts UP/DOWN/FLAT as well as the CALL/PUT and BUY/SELL
// spellings brokers use for the same sides.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP", "CALL", "BUY", "LONG":
		return Up, nil
	case "DOWN", "PUT", "SELL", "SHORT":
		return Down, nil
	case "FLAT", "HOLD", "":
		return Flat, nil
	}
	return Flat, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
