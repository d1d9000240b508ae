package dojo

import (
	"fmt"
	"image"

	"github.com/dojoenv/dojo-rl/emulator"
	"github.com/dojoenv/dojo-rl/types"
	"github.com/dojoenv/dojo-rl/vision"
)

// FightEnv drives the emulator and runs the vision pipeline over its
// frames. It is the single owner of the emulator: the training loop is
// strictly sequential, one Step at a time.
type FightEnv struct {
	emu     emulator.Emulator
	params  vision.Params
	catalog *SnapshotCatalog

	// machine state at construction time, used to reset episodes when
	// no snapshot catalog is configured
	initial []byte
}

var _ types.Environment = &FightEnv{}

func NewFightEnv(emu emulator.Emulator, params vision.Params) (*FightEnv, error) {
	initial, err := emu.SaveState()
	if err != nil {
		return nil, fmt.Errorf("capturing initial state: %w", err)
	}
	return &FightEnv{
		emu:     emu,
		params:  params,
		initial: initial,
	}, nil
}

// WithSnapshots makes episodes start from the catalog's save-state
// files instead of the construction-time state.
func (e *FightEnv) WithSnapshots(catalog *SnapshotCatalog) *FightEnv {
	e.catalog = catalog
	return e
}

func (e *FightEnv) Reset() (types.State, error) {
	blob := e.initial
	if e.catalog != nil {
		snapshot := e.catalog.Next()
		bs, err := snapshot.Read()
		if err != nil {
			return nil, fmt.Errorf("reading snapshot %s: %w", snapshot.Matchup(), err)
		}
		blob = bs
	}
	if err := e.emu.LoadState(blob); err != nil {
		return nil, fmt.Errorf("loading episode state: %w", err)
	}
	// advance one no-op frame to have something to observe
	frame, err := e.emu.Step(emulator.PadNone)
	if err != nil {
		return nil, err
	}
	return e.observe(frame)
}

func (e *FightEnv) Step(a types.Action) (types.State, error) {
	pad, ok := a.(*PadAction)
	if !ok {
		return nil, fmt.Errorf("unexpected action type %T", a)
	}
	frame, err := e.emu.Step(pad.Pad)
	if err != nil {
		return nil, err
	}
	return e.observe(frame)
}

// observe runs the full frame-to-state pipeline. A malformed frame is
// fatal to the step; a frame with no detections is not, it degrades to
// the fallback features.
func (e *FightEnv) observe(frame *image.RGBA) (types.State, error) {
	filtered, err := vision.Preprocess(frame, e.params)
	if err != nil {
		return nil, err
	}
	seg := vision.Segment(filtered, e.params)
	life1, life2 := vision.ReadLifeBars(frame, e.params)
	features := vision.ExtractFeatures(seg, life1, life2, e.params)
	return NewFightState(features), nil
}
