package geom

import "github.com/chazu/roi/pkg/region"

// Compile-time interface checks.
var (
	_ Sphere = (*OpenEllipsoid)(nil)
	_ Sphere = (*ClosedEllipsoid)(nil)
)

// OpenEllipsoid is an axis-aligned ellipsoid that excludes its boundary.
// Semi-axes are set independently.
type OpenEllipsoid struct {
	sphereShape
}

// NewOpenEllipsoid returns an open ellipsoid with one semi-axis length per
// center coordinate. Both slices are copied.
func NewOpenEllipsoid(center, semiAxes []float64) (*OpenEllipsoid, error) {
	s, err := newSphereShape(center, semiAxes)
	if err != nil {
		return nil, err
	}
	return &OpenEllipsoid{sphereShape: s}, nil
}

// Contains reports whether p lies strictly inside the ellipsoid.
func (e *OpenEllipsoid) Contains(p region.RealLocalizable) bool {
	return e.contains(p, region.Open)
}

// BoundaryType returns region.Open.
func (e *OpenEllipsoid) BoundaryType() region.BoundaryType {
	return region.Open
}

func (e *OpenEllipsoid) String() string {
	return e.format("open ellipsoid")
}

// ClosedEllipsoid is an axis-aligned ellipsoid that includes its boundary.
type ClosedEllipsoid struct {
	sphereShape
}

// NewClosedEllipsoid returns a closed ellipsoid with one semi-axis length
// per center coordinate. Both slices are copied.
func NewClosedEllipsoid(center, semiAxes []float64) (*ClosedEllipsoid, error) {
	s, err := newSphereShape(center, semiAxes)
	if err != nil {
		return nil, err
	}
	return &ClosedEllipsoid{sphereShape: s}, nil
}

// Contains reports whether p lies inside or on the ellipsoid.
func (e *ClosedEllipsoid) Contains(p region.RealLocalizable) bool {
	return e.contains(p, region.Closed)
}

// BoundaryType returns region.Closed.
func (e *ClosedEllipsoid) BoundaryType() region.BoundaryType {
	return region.Closed
}

func (e *ClosedEllipsoid) String() string {
	return e.format("closed ellipsoid")
}
