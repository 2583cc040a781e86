// Package region defines the abstract region-of-interest contracts.
// Concrete shapes (spheres, ellipsoids) implement these interfaces so that
// callers can query containment without knowing the shape behind them.
package region

import "fmt"

// RealLocalizable is a point in n-dimensional real space.
type RealLocalizable interface {
	NumDimensions() int
	// Position returns the coordinate along axis d.
	Position(d int) float64
}

// Region is a predicate over n-dimensional real space.
type Region interface {
	NumDimensions() int
	// Contains reports whether p lies inside the region.
	Contains(p RealLocalizable) bool
}

// RealInterval is an axis-aligned box bounding a region.
type RealInterval interface {
	NumDimensions() int
	RealMin(d int) (float64, error)
	RealMax(d int) (float64, error)
}

// BoundaryType tells whether points exactly on a region's boundary are
// inside it.
type BoundaryType int

const (
	Unspecified BoundaryType = iota
	Open                     // boundary excluded
	Closed                   // boundary included
)

func (b BoundaryType) String() string {
	switch b {
	case Unspecified:
		return "unspecified"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("BoundaryType(%d)", int(b))
	}
}

// ParseBoundaryType converts "open" or "closed" to a BoundaryType.
func ParseBoundaryType(s string) (BoundaryType, error) {
	switch s {
	case "open":
		return Open, nil
	case "closed":
		return Closed, nil
	}
	return Unspecified, fmt.Errorf("invalid boundary type %q, expected open or closed", s)
}
