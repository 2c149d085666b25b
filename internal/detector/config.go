package detector

// Config holds the fixed detector constants. None of these are tunable
// at call time; they are the model's contract, not user preferences.
type Config struct {
	ModelPath string

	// LimitSideLen bounds the longer resized side.
	LimitSideLen int
	// Thresh binarizes the probability map.
	Thresh float32
	// BoxThresh is the minimum mean probability inside a candidate box.
	BoxThresh float64
	// UnclipRatio is the outward expansion factor applied to detected boxes.
	UnclipRatio float64
	// MinSize is the minimum shorter side of the expanded rectangle, in
	// resized-image pixels.
	MinSize float64
	// MaxCandidates caps the number of components retained by pixel count.
	MaxCandidates int

	NumThreads int
	UseGPU     bool
}

// DefaultConfig returns the fixed detector configuration with modelPath
// filled in.
func DefaultConfig(modelPath string) Config {
	return Config{
		ModelPath:     modelPath,
		LimitSideLen:  960,
		Thresh:        0.30,
		BoxThresh:     0.60,
		UnclipRatio:   1.5,
		MinSize:       3,
		MaxCandidates: 1000,
	}
}
