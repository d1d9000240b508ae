package vision

import (
	"image"
)

type RegionLabel int

const (
	LabelUnknown RegionLabel = iota
	LabelCharacter1
	LabelCharacter2
	LabelHUD
)

func (l RegionLabel) String() string {
	switch l {
	case LabelCharacter1:
		return "character1"
	case LabelCharacter2:
		return "character2"
	case LabelHUD:
		return "hud"
	}
	return "unknown"
}

// Region is a connected component of foreground pixels.
type Region struct {
	Bounds   image.Rectangle
	Centroid image.Point
	Pixels   int
	Label    RegionLabel
}

// Segmentation is the output of one pass over a filtered frame. Empty
// is set when no foreground at all was found (scene transitions, fade
// outs); downstream stages treat that as a distinct stable state, not
// as an error.
type Segmentation struct {
	Mask    *image.Gray
	Regions []Region
	Empty   bool
}

// Region lookup by label; ok is false when the label was not assigned
// this frame.
func (s *Segmentation) Find(label RegionLabel) (Region, bool) {
	for _, r := range s.Regions {
		if r.Label == label {
			return r, true
		}
	}
	return Region{}, false
}

// Segment thresholds the filtered image into a foreground mask,
// dilates it, labels its connected components, merges fragments of the
// same entity and assigns character/HUD labels by position.
func Segment(filtered *image.RGBA, p Params) Segmentation {
	mask := binarize(filtered, p.MaskThreshold)
	mask = dilateL1(mask, p.DilateRadius)

	regions := connectedComponents(mask)
	regions = filterSmall(regions, p.MinRegionPixels)
	regions = mergeClose(regions, p.MergeDistance)
	labelRegions(regions, p, filtered.Bounds())

	return Segmentation{
		Mask:    mask,
		Regions: regions,
		Empty:   len(regions) == 0,
	}
}

func binarize(img *image.RGBA, threshold uint8) *image.Gray {
	b := img.Bounds()
	mask := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			// integer BT.601 luma
			luma := (299*int(img.Pix[i]) + 587*int(img.Pix[i+1]) + 114*int(img.Pix[i+2])) / 1000
			if luma > int(threshold) {
				mask.Pix[mask.PixOffset(x, y)] = 0xff
			}
		}
	}
	return mask
}

// dilateL1 grows the foreground by radius steps of the diamond
// structuring element, closing small gaps inside silhouettes.
func dilateL1(mask *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		return mask
	}
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	cur := mask
	for step := 0; step < radius; step++ {
		next := image.NewGray(b)
		copy(next.Pix, cur.Pix)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if cur.Pix[cur.PixOffset(x, y)] == 0 {
					continue
				}
				if x > 0 {
					next.Pix[next.PixOffset(x-1, y)] = 0xff
				}
				if x < w-1 {
					next.Pix[next.PixOffset(x+1, y)] = 0xff
				}
				if y > 0 {
					next.Pix[next.PixOffset(x, y-1)] = 0xff
				}
				if y < h-1 {
					next.Pix[next.PixOffset(x, y+1)] = 0xff
				}
			}
		}
		cur = next
	}
	return cur
}

// connectedComponents labels 4-connected foreground components with a
// BFS flood fill and computes their bounding boxes and centroids.
func connectedComponents(mask *image.Gray) []Region {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	visited := make([]bool, w*h)
	regions := make([]Region, 0)

	queue := make([]image.Point, 0)
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			if visited[sy*w+sx] || mask.Pix[mask.PixOffset(sx, sy)] == 0 {
				continue
			}
			minX, minY := sx, sy
			maxX, maxY := sx, sy
			sumX, sumY, count := 0, 0, 0

			queue = queue[:0]
			queue = append(queue, image.Pt(sx, sy))
			visited[sy*w+sx] = true
			for len(queue) > 0 {
				pt := queue[0]
				queue = queue[1:]
				sumX += pt.X
				sumY += pt.Y
				count++
				if pt.X < minX {
					minX = pt.X
				}
				if pt.Y < minY {
					minY = pt.Y
				}
				if pt.X > maxX {
					maxX = pt.X
				}
				if pt.Y > maxY {
					maxY = pt.Y
				}
				for _, d := range [4]image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
					nx, ny := pt.X+d.X, pt.Y+d.Y
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					if visited[ny*w+nx] || mask.Pix[mask.PixOffset(nx, ny)] == 0 {
						continue
					}
					visited[ny*w+nx] = true
					queue = append(queue, image.Pt(nx, ny))
				}
			}

			regions = append(regions, Region{
				Bounds:   image.Rect(minX, minY, maxX+1, maxY+1),
				Centroid: image.Pt(sumX/count, sumY/count),
				Pixels:   count,
			})
		}
	}
	return regions
}

func filterSmall(regions []Region, minPixels int) []Region {
	kept := regions[:0]
	for _, r := range regions {
		if r.Pixels >= minPixels {
			kept = append(kept, r)
		}
	}
	return kept
}

// mergeClose repeatedly folds together regions whose bounding boxes
// are within dist pixels of each other, until no pair qualifies.
func mergeClose(regions []Region, dist int) []Region {
	for {
		merged := false
		for i := 0; i < len(regions) && !merged; i++ {
			for j := i + 1; j < len(regions); j++ {
				if boxGap(regions[i].Bounds, regions[j].Bounds) > dist {
					continue
				}
				regions[i] = mergeRegions(regions[i], regions[j])
				regions = append(regions[:j], regions[j+1:]...)
				merged = true
				break
			}
		}
		if !merged {
			return regions
		}
	}
}

// boxGap is the larger of the horizontal and vertical gaps between two
// rectangles; zero when they touch or overlap.
func boxGap(a, b image.Rectangle) int {
	dx := maxInt(maxInt(b.Min.X-a.Max.X, a.Min.X-b.Max.X), 0)
	dy := maxInt(maxInt(b.Min.Y-a.Max.Y, a.Min.Y-b.Max.Y), 0)
	return maxInt(dx, dy)
}

func mergeRegions(a, b Region) Region {
	total := a.Pixels + b.Pixels
	return Region{
		Bounds: a.Bounds.Union(b.Bounds),
		Centroid: image.Pt(
			(a.Centroid.X*a.Pixels+b.Centroid.X*b.Pixels)/total,
			(a.Centroid.Y*a.Pixels+b.Centroid.Y*b.Pixels)/total,
		),
		Pixels: total,
	}
}

// labelRegions assigns the two largest regions to the characters,
// leftmost centroid first. When the HUD band was not cropped off,
// regions inside it are HUD elements, never characters.
func labelRegions(regions []Region, p Params, bounds image.Rectangle) {
	char1, char2 := -1, -1
	for i := range regions {
		if !p.CropHUD && regions[i].Bounds.Max.Y <= p.HUDBandHeight {
			regions[i].Label = LabelHUD
			continue
		}
		if char1 == -1 || regions[i].Pixels > regions[char1].Pixels {
			char2 = char1
			char1 = i
		} else if char2 == -1 || regions[i].Pixels > regions[char2].Pixels {
			char2 = i
		}
	}
	if char1 != -1 && char2 != -1 {
		if regions[char1].Centroid.X > regions[char2].Centroid.X {
			char1, char2 = char2, char1
		}
		regions[char1].Label = LabelCharacter1
		regions[char2].Label = LabelCharacter2
	} else if char1 != -1 {
		// single blob: assign by which half of the screen it sits in
		if regions[char1].Centroid.X < bounds.Dx()/2 {
			regions[char1].Label = LabelCharacter1
		} else {
			regions[char1].Label = LabelCharacter2
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
