package core

// SequenceSampler replays a fixed list of numbers. Get2D consumes two values.
// Intended for tests that need to steer individual stochastic decisions.
type SequenceSampler struct {
	values []float64
	index  int
}

// NewSequenceSampler creates a sampler that returns values in order
func NewSequenceSampler(values ...float64) *SequenceSampler {
	return &SequenceSampler{values: values}
}

// Get1D returns the next predetermined value
func (s *SequenceSampler) Get1D() float64 {
	if s.index >= len(s.values) {
		panic("SequenceSampler ran out of values")
	}
	val := s.values[s.index]
	s.index++
	return val
}

// Get2D returns the next two predetermined values
func (s *SequenceSampler) Get2D() Vec2 {
	x := s.Get1D()
	return NewVec2(x, s.Get1D())
}

// Remaining returns how many values have not been consumed yet
func (s *SequenceSampler) Remaining() int {
	return len(s.values) - s.index
}
