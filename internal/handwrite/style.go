package handwrite

import (
	"math"
	"math/rand"
)

// Style is the per-document bundle of randomized handwriting
// parameters. It is sampled once per build and held constant so a
// single document stays visually self-consistent; per-character
// variation happens inside the envelope it defines.
type Style struct {
	// Slant is the dominant letter slant in degrees. Negative leans
	// left.
	Slant float64

	// SizeVariation multiplies the nominal glyph size; per-character
	// jitter is applied around it.
	SizeVariation float64

	// SpacingVariation stretches or squeezes character and word
	// advances.
	SpacingVariation float64

	// BaselineVariation is the vertical wobble amplitude in
	// millimetres.
	BaselineVariation float64

	// HandBias drifts line starts horizontally, signed by the dominant
	// hand, in millimetres.
	HandBias float64

	// FatigueRate scales how quickly rendering variance widens as words
	// accumulate.
	FatigueRate float64

	// Speed in [0,1] drives the probability of cursive joins between
	// adjacent characters.
	Speed float64

	// InkR, InkG, InkB is the base ink color.
	InkR, InkG, InkB int
}

// SampleStyle draws a document style from rng. Ranges mirror what a
// handwriting-sample analysis would plausibly produce.
func SampleStyle(rng *rand.Rand) Style {
	bias := 0.3 + rng.Float64()*0.9
	if rng.Float64() < 0.12 { // left-handed drift
		bias = -bias
	}
	return Style{
		Slant:             rng.Float64()*5 - 2.5,
		SizeVariation:     0.85 + rng.Float64()*0.3,
		SpacingVariation:  0.8 + rng.Float64()*0.4,
		BaselineVariation: 0.5 + rng.Float64()*2.0,
		HandBias:          bias,
		FatigueRate:       0.15 + rng.Float64()*0.3,
		Speed:             0.2 + rng.Float64()*0.7,
		InkR:              20 + rng.Intn(20),
		InkG:              20 + rng.Intn(20),
		InkB:              60 + rng.Intn(40),
	}
}

// Fatigue returns the variance multiplier after the given number of
// rendered words. It is a pure, monotonically non-decreasing function
// of the running word count rather than the page number, so it carries
// across page breaks. It starts at 1 and saturates.
func Fatigue(rate float64, words int) float64 {
	if words < 0 {
		words = 0
	}
	return 1 + rate*math.Min(float64(words)/800.0, 2.5)
}
