package region

import (
	"fmt"
	"strings"
)

// RealPoint is a mutable point backed by a float64 slice.
type RealPoint struct {
	coords []float64
}

// Compile-time interface check.
var _ RealLocalizable = (*RealPoint)(nil)

// NewRealPoint returns a point with a copy of the given coordinates.
func NewRealPoint(coords ...float64) *RealPoint {
	c := make([]float64, len(coords))
	copy(c, coords)
	return &RealPoint{coords: c}
}

// NumDimensions returns the number of coordinates.
func (p *RealPoint) NumDimensions() int {
	return len(p.coords)
}

// Position returns the coordinate along axis d. It panics if d is out of
// range, like a slice index.
func (p *RealPoint) Position(d int) float64 {
	return p.coords[d]
}

// SetPosition sets the coordinate along axis d.
func (p *RealPoint) SetPosition(d int, v float64) error {
	if d < 0 || d >= len(p.coords) {
		return fmt.Errorf("set position axis %d of %d-d point: %w", d, len(p.coords), ErrOutOfBounds)
	}
	p.coords[d] = v
	return nil
}

// Coords returns a copy of the coordinates.
func (p *RealPoint) Coords() []float64 {
	c := make([]float64, len(p.coords))
	copy(c, p.coords)
	return c
}

func (p *RealPoint) String() string {
	parts := make([]string, len(p.coords))
	for i, v := range p.coords {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Coordinates copies the position of any RealLocalizable into a slice.
func Coordinates(p RealLocalizable) []float64 {
	n := p.NumDimensions()
	c := make([]float64, n)
	for d := 0; d < n; d++ {
		c[d] = p.Position(d)
	}
	return c
}
