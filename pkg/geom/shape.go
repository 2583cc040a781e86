package geom

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/roi/pkg/region"
)

// sphereExponent is the exponent of the sphere/ellipsoid family.
const sphereExponent = 2.0

// SuperEllipsoid is a mutable n-dimensional shape defined by a center,
// per-axis semi-axis lengths and an exponent.
type SuperEllipsoid interface {
	region.Region
	region.RealInterval

	BoundaryType() region.BoundaryType

	Center() []float64
	SetCenter(c []float64) error

	SemiAxisLength(d int) (float64, error)
	SetSemiAxisLength(d int, v float64) error

	Exponent() float64
	// SetExponent changes the exponent. Shapes whose exponent is fixed
	// return region.ErrUnsupported.
	SetExponent(v float64) error

	// RadialDistance returns the normalized distance sum compared to 1 by
	// Contains.
	RadialDistance(p region.RealLocalizable) (float64, error)
}

// Sphere is a SuperEllipsoid with a radius view over its semi-axes.
type Sphere interface {
	SuperEllipsoid
	Radius() float64
	SetRadius(v float64) error
}

// sphereShape holds the storage and mutation logic shared by every
// variant. Only the boundary comparison differs between variants.
type sphereShape struct {
	center   []float64
	semiAxes []float64 // own count, not resized with center
}

func newSphereShape(center, semiAxes []float64) (sphereShape, error) {
	if len(center) == 0 {
		return sphereShape{}, fmt.Errorf("empty center: %w", region.ErrIllegalValue)
	}
	if len(semiAxes) != len(center) {
		return sphereShape{}, fmt.Errorf("%d semi-axes for %d-d center: %w",
			len(semiAxes), len(center), region.ErrDimensionMismatch)
	}
	for d, v := range semiAxes {
		if err := checkLength(v); err != nil {
			return sphereShape{}, fmt.Errorf("semi-axis %d: %w", d, err)
		}
	}
	s := sphereShape{
		center:   make([]float64, len(center)),
		semiAxes: make([]float64, len(semiAxes)),
	}
	copy(s.center, center)
	copy(s.semiAxes, semiAxes)
	return s, nil
}

func uniformAxes(n int, radius float64) []float64 {
	axes := make([]float64, n)
	for d := range axes {
		axes[d] = radius
	}
	return axes
}

// checkLength rejects negative and NaN lengths.
func checkLength(v float64) error {
	if v < 0 || math.IsNaN(v) {
		return fmt.Errorf("length %g must be non-negative: %w", v, region.ErrIllegalValue)
	}
	return nil
}

// NumDimensions returns the current length of the center.
func (s *sphereShape) NumDimensions() int {
	return len(s.center)
}

// Center returns a copy of the center coordinates.
func (s *sphereShape) Center() []float64 {
	c := make([]float64, len(s.center))
	copy(c, s.center)
	return c
}

// SetCenter replaces the center. A center shorter than the current one is
// rejected; a longer one grows the dimensionality. Semi-axis storage is left
// as is, so axes beyond its count have no length until a new shape is built.
func (s *sphereShape) SetCenter(c []float64) error {
	if len(c) < len(s.center) {
		return fmt.Errorf("set center: %d coordinates for %d-d shape: %w",
			len(c), len(s.center), region.ErrOutOfBounds)
	}
	if len(c) != len(s.center) {
		s.center = make([]float64, len(c))
	}
	copy(s.center, c)
	return nil
}

// SemiAxisLength returns the semi-axis length along axis d.
func (s *sphereShape) SemiAxisLength(d int) (float64, error) {
	if err := s.checkAxis(d); err != nil {
		return 0, err
	}
	return s.semiAxes[d], nil
}

// SetSemiAxisLength sets the semi-axis length along axis d only.
func (s *sphereShape) SetSemiAxisLength(d int, v float64) error {
	if err := checkLength(v); err != nil {
		return fmt.Errorf("set semi-axis %d: %w", d, err)
	}
	if err := s.checkAxis(d); err != nil {
		return err
	}
	s.semiAxes[d] = v
	return nil
}

func (s *sphereShape) checkAxis(d int) error {
	if d < 0 || d >= len(s.semiAxes) {
		return fmt.Errorf("axis %d outside %d stored semi-axes: %w", d, len(s.semiAxes), region.ErrOutOfBounds)
	}
	return nil
}

// Radius returns the semi-axis length along axis 0. It is only meaningful
// when all semi-axes are equal.
func (s *sphereShape) Radius() float64 {
	return s.semiAxes[0]
}

// SetRadius sets every semi-axis to v.
func (s *sphereShape) SetRadius(v float64) error {
	if err := checkLength(v); err != nil {
		return fmt.Errorf("set radius: %w", err)
	}
	for d := range s.semiAxes {
		s.semiAxes[d] = v
	}
	return nil
}

// Exponent returns 2.
func (s *sphereShape) Exponent() float64 {
	return sphereExponent
}

// SetExponent always fails: the exponent is fixed for this family.
func (s *sphereShape) SetExponent(v float64) error {
	return fmt.Errorf("set exponent to %g: exponent is fixed at %g: %w", v, sphereExponent, region.ErrUnsupported)
}

// RealMin returns the lower bound of the shape along axis d.
func (s *sphereShape) RealMin(d int) (float64, error) {
	if err := s.checkBoundsAxis(d); err != nil {
		return 0, err
	}
	return s.center[d] - s.semiAxes[d], nil
}

// RealMax returns the upper bound of the shape along axis d.
func (s *sphereShape) RealMax(d int) (float64, error) {
	if err := s.checkBoundsAxis(d); err != nil {
		return 0, err
	}
	return s.center[d] + s.semiAxes[d], nil
}

func (s *sphereShape) checkBoundsAxis(d int) error {
	if d < 0 || d >= len(s.center) {
		return fmt.Errorf("axis %d outside %d dimensions: %w", d, len(s.center), region.ErrOutOfBounds)
	}
	return s.checkAxis(d)
}

// RadialDistance computes sum over d of (|p[d]-c[d]| / a[d])^2. Only the
// first NumDimensions coordinates of p are read.
func (s *sphereShape) RadialDistance(p region.RealLocalizable) (float64, error) {
	n := len(s.center)
	if p.NumDimensions() < n {
		return 0, fmt.Errorf("%d-d point in %d-d shape: %w", p.NumDimensions(), n, region.ErrDimensionMismatch)
	}
	if len(s.semiAxes) < n {
		return 0, fmt.Errorf("axis %d outside %d stored semi-axes: %w", len(s.semiAxes), len(s.semiAxes), region.ErrOutOfBounds)
	}

	var sum float64
	for d := 0; d < n; d++ {
		diff := math.Abs(p.Position(d) - s.center[d])
		a := s.semiAxes[d]
		if a == 0 {
			// A flat axis admits only the center coordinate; avoid 0/0.
			if diff == 0 {
				continue
			}
			return math.Inf(1), nil
		}
		r := diff / a
		sum += r * r
	}
	return sum, nil
}

func (s *sphereShape) format(kind string) string {
	return fmt.Sprintf("%s center=%s semi-axes=%s", kind, formatCoords(s.center), formatCoords(s.semiAxes))
}

func formatCoords(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%g", x)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
