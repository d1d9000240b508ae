package vision

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// ErrBadFrame marks a frame whose dimensions do not match the
// configured capture size. The step that produced it cannot continue.
var ErrBadFrame = errors.New("malformed frame")

// Preprocess validates and filters a raw frame into the image the
// segmentation stage works on: HUD band cropped off, background
// suppressed by the per-channel contrast windows, optionally
// downscaled. Deterministic and side-effect free; the input frame is
// not modified.
func Preprocess(frame *image.RGBA, p Params) (*image.RGBA, error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrBadFrame)
	}
	b := frame.Bounds()
	if b.Dx() != p.FrameWidth || b.Dy() != p.FrameHeight {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrBadFrame, b.Dx(), b.Dy(), p.FrameWidth, p.FrameHeight)
	}

	top := 0
	if p.CropHUD {
		top = p.HUDBandHeight
	}
	cropped := image.NewRGBA(image.Rect(0, 0, p.FrameWidth, p.FrameHeight-top))

	for y := top; y < p.FrameHeight; y++ {
		for x := 0; x < p.FrameWidth; x++ {
			i := frame.PixOffset(b.Min.X+x, b.Min.Y+y)
			r := keepOutsideWindow(frame.Pix[i], p.RedWindow)
			g := keepOutsideWindow(frame.Pix[i+1], p.GreenWindow)
			bl := keepOutsideWindow(frame.Pix[i+2], p.BlueWindow)
			o := cropped.PixOffset(x, y-top)
			cropped.Pix[o] = r
			cropped.Pix[o+1] = g
			cropped.Pix[o+2] = bl
			cropped.Pix[o+3] = 0xff
		}
	}

	if p.Downscale > 1 {
		w := cropped.Bounds().Dx() / p.Downscale
		h := cropped.Bounds().Dy() / p.Downscale
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), cropped, cropped.Bounds(), draw.Src, nil)
		return scaled, nil
	}
	return cropped, nil
}

// A channel survives the filter when it falls outside the window; the
// stage background sits inside it and is zeroed out.
func keepOutsideWindow(v uint8, window [2]uint8) uint8 {
	if v < window[0] || v > window[1] {
		return v
	}
	return 0
}
