package vision

import "image"

// Life bar pixels fall into three gray bands: dark where life has been
// taken, mid where life remains, bright during the hit flash.
const (
	lifeTakenMax     = 100
	lifeRemainingMax = 200
)

// LifeInfo is a life bar reading: both fields are ratios in [0, 1]
// over the bar's width.
type LifeInfo struct {
	Life   float64
	Damage float64
}

// ReadLifeBars samples the life bar row of the raw (uncropped) frame
// and returns the reading for both players.
func ReadLifeBars(frame *image.RGBA, p Params) (LifeInfo, LifeInfo) {
	p1 := readLifeBar(frame, p.LifeBarY, p.Player1Bar)
	p2 := readLifeBar(frame, p.LifeBarY, p.Player2Bar)
	return p1, p2
}

func readLifeBar(frame *image.RGBA, y int, span [2]int) LifeInfo {
	b := frame.Bounds()
	lifeCount := 0
	damageCount := 0
	for x := span[0]; x < span[1]; x++ {
		i := frame.PixOffset(b.Min.X+x, b.Min.Y+y)
		luma := (299*int(frame.Pix[i]) + 587*int(frame.Pix[i+1]) + 114*int(frame.Pix[i+2])) / 1000
		switch {
		case luma <= lifeTakenMax:
		case luma <= lifeRemainingMax:
			lifeCount++
		default:
			damageCount++
		}
	}
	total := float64(span[1] - span[0])
	return LifeInfo{
		Life:   float64(lifeCount) / total,
		Damage: float64(damageCount) / total,
	}
}
