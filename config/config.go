package config

import (
	"fmt"
	"os"

	"github.com/dojoenv/dojo-rl/vision"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Vision    vision.Params `yaml:"vision"`
	Agent     AgentConfig   `yaml:"agent"`
	Server    ServerConfig  `yaml:"server"`
	Snapshots string        `yaml:"snapshots"`
}

// AgentConfig defines the learning parameters
type AgentConfig struct {
	Hyperparams Hyperparams `yaml:"hyperparams"`
	RewardClip  float64     `yaml:"reward_clip"`
	Episodes    int         `yaml:"episodes"`
	Horizon     int         `yaml:"horizon"`
}

// Hyperparams are the Q-learning knobs with their declared ranges:
// alpha in (0,1], gamma in [0,1), epsilon in [0,1].
type Hyperparams struct {
	Alpha   float64 `yaml:"alpha" json:"alpha"`
	Gamma   float64 `yaml:"gamma" json:"gamma"`
	Epsilon float64 `yaml:"epsilon" json:"epsilon"`
}

// Validate rejects out-of-range values. Callers keep the previous
// valid values when this fails.
func (h Hyperparams) Validate() error {
	if h.Alpha <= 0 || h.Alpha > 1 {
		return fmt.Errorf("alpha %v out of range (0, 1]", h.Alpha)
	}
	if h.Gamma < 0 || h.Gamma >= 1 {
		return fmt.Errorf("gamma %v out of range [0, 1)", h.Gamma)
	}
	if h.Epsilon < 0 || h.Epsilon > 1 {
		return fmt.Errorf("epsilon %v out of range [0, 1]", h.Epsilon)
	}
	return nil
}

// ServerConfig defines the control/telemetry surface
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	RedisAddr    string `yaml:"redis_addr"`
	RedisChannel string `yaml:"redis_channel"`
}

func Default() Config {
	return Config{
		Vision: vision.DefaultParams(),
		Agent: AgentConfig{
			Hyperparams: Hyperparams{
				Alpha:   0.5,
				Gamma:   0.9,
				Epsilon: 0.1,
			},
			RewardClip: 0.25,
			Episodes:   1000,
			Horizon:    2000,
		},
		Server: ServerConfig{
			Addr:         ":8090",
			RedisChannel: "dojo.telemetry",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Agent.Hyperparams.Validate(); err != nil {
		return err
	}
	if c.Agent.RewardClip <= 0 {
		return fmt.Errorf("reward_clip %v must be positive", c.Agent.RewardClip)
	}
	v := c.Vision
	if v.FrameWidth <= 0 || v.FrameHeight <= 0 {
		return fmt.Errorf("frame dimensions %dx%d invalid", v.FrameWidth, v.FrameHeight)
	}
	if v.XBuckets <= 0 || v.YBuckets <= 0 || v.LifeBuckets <= 0 {
		return fmt.Errorf("quantization buckets must be positive")
	}
	if v.LifeBarY < 0 || v.LifeBarY >= v.FrameHeight {
		return fmt.Errorf("life_bar_y %d outside frame", v.LifeBarY)
	}
	for _, span := range [][2]int{v.Player1Bar, v.Player2Bar} {
		if span[0] < 0 || span[1] > v.FrameWidth || span[0] >= span[1] {
			return fmt.Errorf("life bar span [%d, %d) outside frame width %d", span[0], span[1], v.FrameWidth)
		}
	}
	return nil
}
