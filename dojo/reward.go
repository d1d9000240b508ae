package dojo

import (
	"github.com/dojoenv/dojo-rl/types"
	"github.com/dojoenv/dojo-rl/vision"
)

// RewardExtractor turns the life-bar movement between two consecutive
// feature vectors into a scalar reward: damage dealt minus damage
// taken, clipped so a single-frame reading glitch cannot destabilize
// the value estimates.
type RewardExtractor struct {
	Clip float64
}

func NewRewardExtractor(clip float64) *RewardExtractor {
	return &RewardExtractor{Clip: clip}
}

// Extract computes the reward for the transition prev -> next and
// reports whether next is terminal (either life bar at zero).
func (r *RewardExtractor) Extract(prev, next vision.FeatureVector) (float64, bool) {
	opponentLost := prev.Life2Ratio - next.Life2Ratio
	ownLost := prev.Life1Ratio - next.Life1Ratio
	reward := opponentLost - ownLost
	if reward > r.Clip {
		reward = r.Clip
	}
	if reward < -r.Clip {
		reward = -r.Clip
	}
	return reward, next.Terminal()
}

// Func adapts the extractor to the generic reward hook. States that
// are not fight states yield zero reward and no terminal.
func (r *RewardExtractor) Func() types.RewardFunc {
	return func(prev, next types.State) (float64, bool) {
		p, ok1 := prev.(*FightState)
		n, ok2 := next.(*FightState)
		if !ok1 || !ok2 {
			return 0, false
		}
		return r.Extract(p.Features, n.Features)
	}
}
