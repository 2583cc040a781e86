package geom

import (
	"fmt"

	"github.com/chazu/roi/pkg/region"
)

// Compile-time interface checks.
var (
	_ Sphere = (*OpenSphere)(nil)
	_ Sphere = (*ClosedSphere)(nil)
)

// OpenSphere is an n-ball that excludes its boundary.
type OpenSphere struct {
	OpenEllipsoid
}

// NewOpenSphere returns an open sphere around center. The center is copied.
func NewOpenSphere(center []float64, radius float64) (*OpenSphere, error) {
	if err := checkLength(radius); err != nil {
		return nil, fmt.Errorf("new open sphere: radius: %w", err)
	}
	s, err := newSphereShape(center, uniformAxes(len(center), radius))
	if err != nil {
		return nil, fmt.Errorf("new open sphere: %w", err)
	}
	return &OpenSphere{OpenEllipsoid{sphereShape: s}}, nil
}

// SetSemiAxisLength sets the radius: a sphere has one length on every axis.
// d must still name a stored axis.
func (s *OpenSphere) SetSemiAxisLength(d int, v float64) error {
	return s.setBallAxis(d, v)
}

func (s *OpenSphere) String() string {
	return s.format("open sphere")
}

// ClosedSphere is an n-ball that includes its boundary.
type ClosedSphere struct {
	ClosedEllipsoid
}

// NewClosedSphere returns a closed sphere around center. The center is
// copied.
func NewClosedSphere(center []float64, radius float64) (*ClosedSphere, error) {
	if err := checkLength(radius); err != nil {
		return nil, fmt.Errorf("new closed sphere: radius: %w", err)
	}
	s, err := newSphereShape(center, uniformAxes(len(center), radius))
	if err != nil {
		return nil, fmt.Errorf("new closed sphere: %w", err)
	}
	return &ClosedSphere{ClosedEllipsoid{sphereShape: s}}, nil
}

// SetSemiAxisLength sets the radius: a sphere has one length on every axis.
// d must still name a stored axis.
func (s *ClosedSphere) SetSemiAxisLength(d int, v float64) error {
	return s.setBallAxis(d, v)
}

func (s *ClosedSphere) String() string {
	return s.format("closed sphere")
}

func (s *sphereShape) setBallAxis(d int, v float64) error {
	if err := checkLength(v); err != nil {
		return fmt.Errorf("set semi-axis %d: %w", d, err)
	}
	if err := s.checkAxis(d); err != nil {
		return err
	}
	return s.SetRadius(v)
}

// New returns an open or closed sphere depending on b.
func New(b region.BoundaryType, center []float64, radius float64) (Sphere, error) {
	switch b {
	case region.Open:
		s, err := NewOpenSphere(center, radius)
		if err != nil {
			return nil, err
		}
		return s, nil
	case region.Closed:
		s, err := NewClosedSphere(center, radius)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("new sphere: boundary %s: %w", b, region.ErrIllegalValue)
}

// NewEllipsoid returns an open or closed ellipsoid depending on b.
func NewEllipsoid(b region.BoundaryType, center, semiAxes []float64) (Sphere, error) {
	switch b {
	case region.Open:
		e, err := NewOpenEllipsoid(center, semiAxes)
		if err != nil {
			return nil, err
		}
		return e, nil
	case region.Closed:
		e, err := NewClosedEllipsoid(center, semiAxes)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, fmt.Errorf("new ellipsoid: boundary %s: %w", b, region.ErrIllegalValue)
}
