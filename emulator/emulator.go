// Package emulator defines the narrow contract the learning core has
// with the machine running the game. The real PSX core lives in a
// separate process/project; everything here depends only on these
// three methods.
package emulator

import (
	"image"
	"strconv"
	"strings"
)

// Pad is one controller input sample, a bitmask of pressed buttons.
type Pad uint16

const (
	PadNone     Pad = 0
	PadUp       Pad = 1 << 0
	PadDown     Pad = 1 << 1
	PadLeft     Pad = 1 << 2
	PadRight    Pad = 1 << 3
	PadCross    Pad = 1 << 4
	PadCircle   Pad = 1 << 5
	PadSquare   Pad = 1 << 6
	PadTriangle Pad = 1 << 7
)

var padNames = []struct {
	bit  Pad
	name string
}{
	{PadUp, "Up"},
	{PadDown, "Down"},
	{PadLeft, "Left"},
	{PadRight, "Right"},
	{PadCross, "Cross"},
	{PadCircle, "Circle"},
	{PadSquare, "Square"},
	{PadTriangle, "Triangle"},
}

func (p Pad) String() string {
	if p == PadNone {
		return "NoOp"
	}
	parts := make([]string, 0, 2)
	for _, pn := range padNames {
		if p&pn.bit != 0 {
			parts = append(parts, pn.name)
		}
	}
	if len(parts) == 0 {
		return "Pad(" + strconv.Itoa(int(p)) + ")"
	}
	return strings.Join(parts, "+")
}

// Emulator is a synchronous, stateful resource: exactly one training
// loop drives it at a time.
type Emulator interface {
	// Step presses the pad for one frame, advances the machine and
	// returns the resulting video frame.
	Step(Pad) (*image.RGBA, error)
	// SaveState snapshots the full machine state.
	SaveState() ([]byte, error)
	// LoadState restores a snapshot produced by SaveState.
	LoadState([]byte) error
}
