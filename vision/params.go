package vision

// Params holds every pixel heuristic of the pipeline as a named,
// documented parameter. Defaults match the 368x480 PSX frame of the
// original capture setup. All values are configuration: the pipeline
// never derives thresholds at runtime, so two runs over the same
// frames produce the same features.
type Params struct {
	// Expected frame dimensions. Frames of any other size are a
	// malformed-input error.
	FrameWidth  int `yaml:"frame_width"`
	FrameHeight int `yaml:"frame_height"`

	// HUDBandHeight is the screen-relative band at the top of the
	// frame holding life bars and timers. It is cropped off before
	// character segmentation.
	HUDBandHeight int  `yaml:"hud_band_height"`
	CropHUD       bool `yaml:"crop_hud"`

	// Contrast filter: a channel value is kept when it falls outside
	// [low, high], zeroed otherwise. The windows are tuned so that the
	// comparatively uniform stage background lands inside them while
	// character silhouettes fall outside.
	RedWindow   [2]uint8 `yaml:"red_window"`
	GreenWindow [2]uint8 `yaml:"green_window"`
	BlueWindow  [2]uint8 `yaml:"blue_window"`

	// Downscale factor applied after filtering; 1 disables scaling.
	Downscale int `yaml:"downscale"`

	// MaskThreshold is the luma cutoff turning the filtered image
	// into a foreground mask.
	MaskThreshold uint8 `yaml:"mask_threshold"`
	// DilateRadius of the L1 (diamond) dilation closing silhouette
	// gaps before labeling.
	DilateRadius int `yaml:"dilate_radius"`

	// Components whose bounding boxes are closer than MergeDistance
	// pixels are fragments of the same entity and get merged.
	MergeDistance int `yaml:"merge_distance"`
	// Components smaller than MinRegionPixels are noise and dropped.
	MinRegionPixels int `yaml:"min_region_pixels"`

	// Life bar geometry, in raw frame coordinates.
	LifeBarY   int    `yaml:"life_bar_y"`
	Player1Bar [2]int `yaml:"player1_bar"`
	Player2Bar [2]int `yaml:"player2_bar"`

	// Quantization resolution of the feature vector. Fixed per run;
	// this is the primary knob bounding state-space growth.
	XBuckets    int `yaml:"x_buckets"`
	YBuckets    int `yaml:"y_buckets"`
	LifeBuckets int `yaml:"life_buckets"`
}

func DefaultParams() Params {
	return Params{
		FrameWidth:      368,
		FrameHeight:     480,
		HUDBandHeight:   100,
		CropHUD:         true,
		RedWindow:       [2]uint8{40, 110},
		GreenWindow:     [2]uint8{40, 110},
		BlueWindow:      [2]uint8{40, 110},
		Downscale:       1,
		MaskThreshold:   24,
		DilateRadius:    2,
		MergeDistance:   12,
		MinRegionPixels: 40,
		LifeBarY:        54,
		Player1Bar:      [2]int{12, 164},
		Player2Bar:      [2]int{204, 356},
		XBuckets:        16,
		YBuckets:        12,
		LifeBuckets:     8,
	}
}
