package scene

import (
	"fmt"
	"strings"
)

// ShadingMode selects what a path records at its first hit
type ShadingMode int

const (
	// ShadingPathTrace runs the full bounce policy
	ShadingPathTrace ShadingMode = iota
	// ShadingNormals colors the first hit by its surface normal
	ShadingNormals
)

// SkyMode selects the background returned for escaping paths
type SkyMode int

const (
	// SkyGradient is a vertical blue-to-white gradient
	SkyGradient SkyMode = iota
	// SkySpace is a near-black starfield
	SkySpace
)

// RouletteCompensation selects how surviving paths are reweighted
type RouletteCompensation int

const (
	// CompensateSurvival divides throughput by the survival probability
	CompensateSurvival RouletteCompensation = iota
	// CompensateDepth divides by lambda*(1-lambda)^bounces, which reproduces
	// older renders but does not match the survival probability
	CompensateDepth
)

// Options configures a built scene
type Options struct {
	Shading      ShadingMode
	Sky          SkyMode
	Roulette     float64 // Probability a path survives each hit
	Compensation RouletteCompensation

	StarSeed      int64   // Seed of the starfield noise
	StarDensity   float64 // Fraction of the sky covered by stars
	StarFrequency float64 // Noise frequency across the sky sphere
}

// DefaultOptions returns path tracing under the gradient sky
func DefaultOptions() Options {
	return Options{
		Shading:       ShadingPathTrace,
		Sky:           SkyGradient,
		Roulette:      0.8,
		Compensation:  CompensateSurvival,
		StarSeed:      1,
		StarDensity:   0.03,
		StarFrequency: 100,
	}
}

func (m ShadingMode) String() string {
	switch m {
	case ShadingPathTrace:
		return "path"
	case ShadingNormals:
		return "normal"
	}
	return fmt.Sprintf("ShadingMode(%d)", int(m))
}

// ParseShadingMode accepts "path" or "normal"
func ParseShadingMode(s string) (ShadingMode, error) {
	switch strings.ToLower(s) {
	case "", "path":
		return ShadingPathTrace, nil
	case "normal", "normals":
		return ShadingNormals, nil
	}
	return 0, fmt.Errorf("unknown shading mode %q", s)
}

func (m SkyMode) String() string {
	switch m {
	case SkyGradient:
		return "gradient"
	case SkySpace:
		return "space"
	}
	return fmt.Sprintf("SkyMode(%d)", int(m))
}

// ParseSkyMode accepts "gradient" or "space"
func ParseSkyMode(s string) (SkyMode, error) {
	switch strings.ToLower(s) {
	case "", "gradient":
		return SkyGradient, nil
	case "space", "stars":
		return SkySpace, nil
	}
	return 0, fmt.Errorf("unknown sky %q", s)
}

func (o Options) validate() error {
	if !(o.Roulette > 0 && o.Roulette <= 1) {
		return fmt.Errorf("roulette survival probability %g outside (0, 1]", o.Roulette)
	}
	if o.Compensation == CompensateDepth && o.Roulette == 1 {
		return fmt.Errorf("depth compensation needs a survival probability below 1")
	}
	return nil
}
