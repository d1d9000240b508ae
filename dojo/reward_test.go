package dojo

import (
	"testing"

	"github.com/dojoenv/dojo-rl/vision"
)

func vectorWithLife(own, opponent float64) vision.FeatureVector {
	return vision.FeatureVector{
		Life1Ratio: own, Life2Ratio: opponent,
		Life1Zero: own == 0, Life2Zero: opponent == 0,
	}
}

func TestRewardDamageDealt(t *testing.T) {
	r := NewRewardExtractor(0.25)
	prev := vectorWithLife(1.0, 1.0)
	next := vectorWithLife(1.0, 0.9)
	reward, terminal := r.Extract(prev, next)
	if reward < 0.099 || reward > 0.101 {
		t.Errorf("reward = %v, want 0.1", reward)
	}
	if terminal {
		t.Errorf("no life bar at zero, must not be terminal")
	}
}

func TestRewardDamageTaken(t *testing.T) {
	r := NewRewardExtractor(0.25)
	reward, _ := r.Extract(vectorWithLife(1.0, 1.0), vectorWithLife(0.8, 1.0))
	if reward > -0.199 || reward < -0.201 {
		t.Errorf("reward = %v, want -0.2", reward)
	}
}

func TestRewardClipped(t *testing.T) {
	r := NewRewardExtractor(0.25)
	// a single-frame artifact wiping the whole bar clips to the bound
	reward, _ := r.Extract(vectorWithLife(1.0, 1.0), vectorWithLife(1.0, 0.0))
	if reward != 0.25 {
		t.Errorf("reward = %v, want clip 0.25", reward)
	}
	reward, _ = r.Extract(vectorWithLife(1.0, 1.0), vectorWithLife(0.0, 1.0))
	if reward != -0.25 {
		t.Errorf("reward = %v, want clip -0.25", reward)
	}
}

func TestTerminalDetection(t *testing.T) {
	r := NewRewardExtractor(0.25)
	_, terminal := r.Extract(vectorWithLife(1.0, 0.05), vectorWithLife(1.0, 0.0))
	if !terminal {
		t.Errorf("opponent knockout must end the episode")
	}
	_, terminal = r.Extract(vectorWithLife(0.05, 1.0), vectorWithLife(0.0, 1.0))
	if !terminal {
		t.Errorf("own knockout must end the episode")
	}
}

func TestRewardFuncNonFightStates(t *testing.T) {
	r := NewRewardExtractor(0.25)
	fn := r.Func()
	reward, terminal := fn(nil, nil)
	if reward != 0 || terminal {
		t.Errorf("non-fight states must yield zero reward, got %v %v", reward, terminal)
	}
}
