package vision

import (
	"image"
	"image/color"
	"testing"
)

// filteredImage builds an already-filtered frame: black background,
// bright rectangles as foreground.
func filteredImage(w, h int, blobs ...image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for _, b := range blobs {
		fillRect(img, b, color.RGBA{220, 220, 220, 255})
	}
	return img
}

func TestSegmentFindsTwoCharacters(t *testing.T) {
	p := DefaultParams()
	img := filteredImage(368, 380,
		image.Rect(40, 200, 80, 300),
		image.Rect(260, 210, 300, 310),
	)
	seg := Segment(img, p)
	if seg.Empty {
		t.Fatalf("expected detections")
	}
	c1, ok := seg.Find(LabelCharacter1)
	if !ok {
		t.Fatalf("character1 not found")
	}
	c2, ok := seg.Find(LabelCharacter2)
	if !ok {
		t.Fatalf("character2 not found")
	}
	if c1.Centroid.X >= c2.Centroid.X {
		t.Errorf("character1 must be the leftmost, got %d >= %d", c1.Centroid.X, c2.Centroid.X)
	}
}

func TestSegmentEmptyFrame(t *testing.T) {
	p := DefaultParams()
	img := filteredImage(368, 380)
	seg := Segment(img, p)
	if !seg.Empty {
		t.Errorf("expected an explicit no-detection result")
	}
	if len(seg.Regions) != 0 {
		t.Errorf("expected zero regions, got %d", len(seg.Regions))
	}
}

func TestSegmentMergesCloseFragments(t *testing.T) {
	p := DefaultParams()
	// two fragments of one character, gap smaller than MergeDistance
	img := filteredImage(368, 380,
		image.Rect(40, 200, 80, 240),
		image.Rect(40, 240+p.MergeDistance-2, 80, 300),
	)
	seg := Segment(img, p)
	if len(seg.Regions) != 1 {
		t.Fatalf("expected fragments to merge into one region, got %d", len(seg.Regions))
	}
}

func TestSegmentKeepsDistantRegionsApart(t *testing.T) {
	p := DefaultParams()
	p.DilateRadius = 0
	img := filteredImage(368, 380,
		image.Rect(40, 200, 80, 300),
		image.Rect(80+p.MergeDistance+20, 200, 120+p.MergeDistance+20, 300),
	)
	seg := Segment(img, p)
	if len(seg.Regions) != 2 {
		t.Fatalf("expected two distinct regions, got %d", len(seg.Regions))
	}
}

func TestSegmentDropsNoise(t *testing.T) {
	p := DefaultParams()
	p.DilateRadius = 0
	// a couple of pixels of noise, way below MinRegionPixels
	img := filteredImage(368, 380, image.Rect(10, 10, 12, 12))
	seg := Segment(img, p)
	if !seg.Empty {
		t.Errorf("noise below MinRegionPixels must not produce regions")
	}
}

func TestSegmentSingleBlobLabeledBySide(t *testing.T) {
	p := DefaultParams()
	left := filteredImage(368, 380, image.Rect(40, 200, 80, 300))
	seg := Segment(left, p)
	if _, ok := seg.Find(LabelCharacter1); !ok {
		t.Errorf("left-half blob should be character1")
	}
	right := filteredImage(368, 380, image.Rect(280, 200, 320, 300))
	seg = Segment(right, p)
	if _, ok := seg.Find(LabelCharacter2); !ok {
		t.Errorf("right-half blob should be character2")
	}
}
