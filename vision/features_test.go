package vision

import (
	"image"
	"testing"
)

func TestExtractFeaturesQuantizes(t *testing.T) {
	p := DefaultParams()
	img := filteredImage(368, 380,
		image.Rect(40, 200, 80, 300),
		image.Rect(260, 210, 300, 310),
	)
	seg := Segment(img, p)
	v := ExtractFeatures(seg, LifeInfo{Life: 1.0}, LifeInfo{Life: 0.6}, p)

	if !v.Char1Seen || !v.Char2Seen {
		t.Fatalf("both characters should be seen: %+v", v)
	}
	if v.Char1X < 0 || v.Char1X >= p.XBuckets {
		t.Errorf("char1 x bucket %d out of range", v.Char1X)
	}
	if v.Life1 != p.LifeBuckets {
		t.Errorf("full bar should use the top bucket, got %d", v.Life1)
	}
	if v.Life2 >= v.Life1 {
		t.Errorf("life buckets should order with the ratios: %d >= %d", v.Life2, v.Life1)
	}
}

// Pixel-level noise inside a quantization bucket must not change the
// vector.
func TestExtractFeaturesCollapsesNoise(t *testing.T) {
	p := DefaultParams()
	base := filteredImage(368, 380,
		image.Rect(40, 200, 80, 300),
		image.Rect(260, 210, 300, 310),
	)
	// same scene, silhouettes jittered by a pixel
	jittered := filteredImage(368, 380,
		image.Rect(41, 201, 81, 301),
		image.Rect(261, 209, 301, 309),
	)
	life1, life2 := LifeInfo{Life: 0.8}, LifeInfo{Life: 0.8}

	a := ExtractFeatures(Segment(base, p), life1, life2, p)
	b := ExtractFeatures(Segment(jittered, p), life1, life2, p)
	if a != b {
		t.Errorf("vectors differ across in-bucket noise:\n%+v\n%+v", a, b)
	}
}

func TestExtractFeaturesFallback(t *testing.T) {
	p := DefaultParams()
	seg := Segment(filteredImage(368, 380), p)
	v := ExtractFeatures(seg, LifeInfo{Life: 1.0}, LifeInfo{Life: 1.0}, p)

	if v.Char1Seen || v.Char2Seen {
		t.Errorf("no characters should be seen on an empty frame")
	}
	if v.Char1X != FallbackBucket || v.Char2X != FallbackBucket {
		t.Errorf("expected fallback buckets, got %+v", v)
	}
	// with full bars the result is exactly the designated fallback
	if v != FallbackVector(p) {
		t.Errorf("no-detection vector must be the designated fallback, got %+v", v)
	}
	// the fallback vector is stable: producing it twice gives the same value
	v2 := ExtractFeatures(seg, LifeInfo{Life: 1.0}, LifeInfo{Life: 1.0}, p)
	if v != v2 {
		t.Errorf("fallback vector not stable")
	}
}

func TestTerminal(t *testing.T) {
	p := DefaultParams()
	seg := Segment(filteredImage(368, 380), p)
	v := ExtractFeatures(seg, LifeInfo{Life: 0}, LifeInfo{Life: 0.4}, p)
	if !v.Terminal() {
		t.Errorf("zero life bar must be terminal")
	}
	v = ExtractFeatures(seg, LifeInfo{Life: 0.4}, LifeInfo{Life: 0.4}, p)
	if v.Terminal() {
		t.Errorf("non-zero life bars must not be terminal")
	}
}
