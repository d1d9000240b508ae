package emulator

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Synthetic is a deterministic toy fighter implementing the Emulator
// contract. Two bright silhouettes on a uniform stage, life bars drawn
// in the HUD row; positions and life respond to pad input. It exists so
// the whole learning stack can run and be tested without a PSX core.
type Synthetic struct {
	width, height int

	p1X, p2X int
	floorY   int
	life1    float64
	life2    float64
	tick     int
}

const (
	synCharWidth   = 36
	synCharHeight  = 80
	synMoveStep    = 8
	synAttackRange = 50
	synHitP2       = 0.05
	synHitP1       = 0.03

	synLifeBarY = 54
	synP1BarLo  = 12
	synP1BarHi  = 164
	synP2BarLo  = 204
	synP2BarHi  = 356
)

func NewSynthetic() *Synthetic {
	s := &Synthetic{width: 368, height: 480}
	s.reset()
	return s
}

func (s *Synthetic) reset() {
	s.p1X = 80
	s.p2X = 280
	s.floorY = 320
	s.life1 = 1.0
	s.life2 = 1.0
	s.tick = 0
}

func (s *Synthetic) Step(pad Pad) (*image.RGBA, error) {
	if s.life1 > 0 && s.life2 > 0 {
		s.apply(pad)
	}
	s.tick++
	return s.render(), nil
}

func (s *Synthetic) apply(pad Pad) {
	if pad&PadLeft != 0 {
		s.p1X -= synMoveStep
	}
	if pad&PadRight != 0 {
		s.p1X += synMoveStep
	}
	s.p1X = clampInt(s.p1X, synCharWidth/2, s.width-synCharWidth/2)

	inRange := absInt(s.p1X-s.p2X) < synAttackRange
	if pad&(PadSquare|PadCross) != 0 && inRange {
		s.life2 -= synHitP2
		if s.life2 < 0 {
			s.life2 = 0
		}
	}

	// scripted opponent: close the distance, strike when adjacent
	if s.p2X > s.p1X+synAttackRange/2 {
		s.p2X -= synMoveStep / 2
	} else if s.p2X < s.p1X-synAttackRange/2 {
		s.p2X += synMoveStep / 2
	} else if s.tick%4 == 0 {
		s.life1 -= synHitP1
		if s.life1 < 0 {
			s.life1 = 0
		}
	}
	s.p2X = clampInt(s.p2X, synCharWidth/2, s.width-synCharWidth/2)
}

func (s *Synthetic) render() *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	// stage background sits inside the default contrast windows
	draw.Draw(frame, frame.Bounds(), image.NewUniform(color.RGBA{70, 70, 70, 255}), image.Point{}, draw.Src)

	s.drawLifeBar(frame, synP1BarLo, synP1BarHi, s.life1)
	s.drawLifeBar(frame, synP2BarLo, synP2BarHi, s.life2)

	s.drawCharacter(frame, s.p1X, color.RGBA{220, 220, 220, 255})
	s.drawCharacter(frame, s.p2X, color.RGBA{200, 200, 200, 255})
	return frame
}

func (s *Synthetic) drawLifeBar(frame *image.RGBA, lo, hi int, life float64) {
	filled := lo + int(life*float64(hi-lo))
	for x := lo; x < hi; x++ {
		c := color.RGBA{40, 40, 40, 255} // life taken
		if x < filled {
			c = color.RGBA{150, 150, 150, 255} // life remaining
		}
		for y := synLifeBarY - 3; y <= synLifeBarY+3; y++ {
			frame.SetRGBA(x, y, c)
		}
	}
}

func (s *Synthetic) drawCharacter(frame *image.RGBA, cx int, c color.RGBA) {
	r := image.Rect(cx-synCharWidth/2, s.floorY-synCharHeight, cx+synCharWidth/2, s.floorY)
	draw.Draw(frame, r, image.NewUniform(c), image.Point{}, draw.Src)
}

type syntheticState struct {
	P1X   int     `json:"p1x"`
	P2X   int     `json:"p2x"`
	Life1 float64 `json:"life1"`
	Life2 float64 `json:"life2"`
	Tick  int     `json:"tick"`
}

func (s *Synthetic) SaveState() ([]byte, error) {
	return json.Marshal(syntheticState{
		P1X: s.p1X, P2X: s.p2X,
		Life1: s.life1, Life2: s.life2,
		Tick: s.tick,
	})
}

func (s *Synthetic) LoadState(bs []byte) error {
	st := syntheticState{}
	if err := json.Unmarshal(bs, &st); err != nil {
		return fmt.Errorf("parsing synthetic state: %w", err)
	}
	s.p1X, s.p2X = st.P1X, st.P2X
	s.life1, s.life2 = st.Life1, st.Life2
	s.tick = st.Tick
	return nil
}

var _ Emulator = &Synthetic{}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
