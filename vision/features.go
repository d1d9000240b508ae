package vision

// FallbackBucket is the sentinel bucket for a character that could not
// be located this frame. It is a valid, stable feature value: frames
// with an occluded character all land in the same state rather than
// producing an error.
const FallbackBucket = -1

// FeatureVector is the fixed-arity, quantized reduction of one frame.
// The quantized fields have the same resolution on every frame of a
// run, so identical game situations yield identical vectors.
//
// Life1Ratio and Life2Ratio carry the raw life readings for the reward
// extractor; they are not part of the state fingerprint.
type FeatureVector struct {
	Char1X, Char1Y int
	Char2X, Char2Y int
	Char1Seen      bool
	Char2Seen      bool

	Life1, Life2         int
	Life1Zero, Life2Zero bool

	Life1Ratio, Life2Ratio float64
}

// FallbackVector is the designated vector for a frame with no usable
// detections at all.
func FallbackVector(p Params) FeatureVector {
	return FeatureVector{
		Char1X: FallbackBucket, Char1Y: FallbackBucket,
		Char2X: FallbackBucket, Char2Y: FallbackBucket,
		Life1: p.LifeBuckets, Life2: p.LifeBuckets,
		Life1Ratio: 1.0, Life2Ratio: 1.0,
	}
}

// ExtractFeatures quantizes the segmentation and life readings into a
// feature vector. It starts from the fallback vector and fills in
// whatever was detected, so missing character regions degrade to the
// fallback sentinel instead of failing; the life fields always come
// from the readings.
func ExtractFeatures(seg Segmentation, life1, life2 LifeInfo, p Params) FeatureVector {
	v := FallbackVector(p)

	if !seg.Empty {
		w := seg.Mask.Bounds().Dx()
		h := seg.Mask.Bounds().Dy()
		if r, ok := seg.Find(LabelCharacter1); ok {
			v.Char1Seen = true
			v.Char1X = bucket(r.Centroid.X, w, p.XBuckets)
			v.Char1Y = bucket(r.Centroid.Y, h, p.YBuckets)
		}
		if r, ok := seg.Find(LabelCharacter2); ok {
			v.Char2Seen = true
			v.Char2X = bucket(r.Centroid.X, w, p.XBuckets)
			v.Char2Y = bucket(r.Centroid.Y, h, p.YBuckets)
		}
	}

	v.Life1 = bucketRatio(life1.Life, p.LifeBuckets)
	v.Life2 = bucketRatio(life2.Life, p.LifeBuckets)
	v.Life1Zero = life1.Life == 0
	v.Life2Zero = life2.Life == 0
	v.Life1Ratio = life1.Life
	v.Life2Ratio = life2.Life

	return v
}

// Terminal reports whether either life bar has reached zero.
func (v FeatureVector) Terminal() bool {
	return v.Life1Zero || v.Life2Zero
}

func bucket(coord, extent, buckets int) int {
	if extent <= 0 {
		return FallbackBucket
	}
	b := coord * buckets / extent
	if b < 0 {
		b = 0
	}
	if b >= buckets {
		b = buckets - 1
	}
	return b
}

// bucketRatio maps [0, 1] onto [0, buckets]; a completely full bar
// gets its own bucket so that 7.9/8 and 8/8 are distinct.
func bucketRatio(ratio float64, buckets int) int {
	b := int(ratio * float64(buckets))
	if b < 0 {
		b = 0
	}
	if b > buckets {
		b = buckets
	}
	return b
}
