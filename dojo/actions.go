package dojo

import (
	"github.com/dojoenv/dojo-rl/emulator"
	"github.com/dojoenv/dojo-rl/types"
)

// PadAction wraps one controller sample as an RL action. Index is the
// position in the fixed action set and gives actions a stable total
// order for tie-breaking.
type PadAction struct {
	Pad   emulator.Pad
	Index int
}

var _ types.Action = &PadAction{}

func (a *PadAction) Hash() string {
	return a.Pad.String()
}

// The fixed action set: a no-op, the four directions, two attacks, and
// the attack-while-moving combinations. Order is part of the learned
// policy's identity and never changes.
var AllActions = []types.Action{
	&PadAction{emulator.PadNone, 0},
	&PadAction{emulator.PadLeft, 1},
	&PadAction{emulator.PadRight, 2},
	&PadAction{emulator.PadUp, 3},
	&PadAction{emulator.PadDown, 4},
	&PadAction{emulator.PadSquare, 5},
	&PadAction{emulator.PadCross, 6},
	&PadAction{emulator.PadLeft | emulator.PadSquare, 7},
	&PadAction{emulator.PadRight | emulator.PadSquare, 8},
	&PadAction{emulator.PadLeft | emulator.PadCross, 9},
	&PadAction{emulator.PadRight | emulator.PadCross, 10},
}
