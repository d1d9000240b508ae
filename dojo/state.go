package dojo

import (
	"fmt"

	"github.com/dojoenv/dojo-rl/types"
	"github.com/dojoenv/dojo-rl/vision"
)

// FightState is one observed game situation. Its identity is the
// fingerprint of its quantized features: any two frames landing in the
// same quantization buckets are the same state.
type FightState struct {
	Features    vision.FeatureVector
	fingerprint string
}

var _ types.State = &FightState{}

func NewFightState(features vision.FeatureVector) *FightState {
	return &FightState{
		Features:    features,
		fingerprint: Fingerprint(features),
	}
}

func (s *FightState) Hash() string {
	return s.fingerprint
}

func (s *FightState) Actions() []types.Action {
	return AllActions
}

// Fingerprint reduces a feature vector to its canonical state id. It
// is a pure function of the quantized fields only: the raw life ratios
// are deliberately excluded so pixel-level noise inside a bucket
// collapses to a single id.
func Fingerprint(v vision.FeatureVector) string {
	return fmt.Sprintf("c1:%d,%d|c2:%d,%d|seen:%s%s|life:%d,%d|ko:%s%s",
		v.Char1X, v.Char1Y,
		v.Char2X, v.Char2Y,
		boolMark(v.Char1Seen), boolMark(v.Char2Seen),
		v.Life1, v.Life2,
		boolMark(v.Life1Zero), boolMark(v.Life2Zero),
	)
}

func boolMark(b bool) string {
	if b {
		return "y"
	}
	return "n"
}
