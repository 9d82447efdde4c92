package model

// DefaultRevealDelay is the reveal delay in milliseconds used when the caller
// does not supply one.
const DefaultRevealDelay float64 = 200

// Axis3 holds a rotation in degrees per axis.
type Axis3 struct {
	X float64
	Y float64
	Z float64
}

// ViewOffset shrinks the viewport container on each side, in pixels.
type ViewOffset struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// RevealConfig holds the options passed to the scroll-reveal helper when an
// element is registered for reveal.
type RevealConfig struct {
	Origin     string
	Distance   string // CSS length
	Duration   int    // milliseconds
	Delay      float64
	Rotate     Axis3
	Opacity    float64
	Scale      float64
	Easing     string // CSS timing function
	Mobile     bool
	Reset      bool
	UseDelay   string
	ViewFactor float64 // 0..1 share of the element that must be visible
	ViewOffset ViewOffset
}

// BuildRevealConfig returns the fixed reveal options with Delay set to delay.
// The delay is not validated.
func BuildRevealConfig(delay float64) RevealConfig {
	return RevealConfig{
		Origin:     "bottom",
		Distance:   "20px",
		Duration:   500,
		Delay:      delay,
		Rotate:     Axis3{},
		Opacity:    0,
		Scale:      1,
		Easing:     "cubic-bezier(0.645, 0.045, 0.355, 1)",
		Mobile:     true,
		Reset:      false,
		UseDelay:   "always",
		ViewFactor: 0.25,
		ViewOffset: ViewOffset{},
	}
}

// DefaultRevealConfig is BuildRevealConfig(DefaultRevealDelay).
func DefaultRevealConfig() RevealConfig {
	return BuildRevealConfig(DefaultRevealDelay)
}
