package geom

import "github.com/chazu/roi/pkg/region"

// inside compares a radial distance against the unit boundary. This is the
// only place open and closed shapes differ.
func inside(sum float64, b region.BoundaryType) bool {
	switch b {
	case region.Open:
		return sum < 1
	case region.Closed:
		return sum <= 1
	default:
		return false
	}
}

// contains evaluates p against s with boundary behaviour b. Points that
// cannot be measured (too few coordinates, missing semi-axes) are outside.
func (s *sphereShape) contains(p region.RealLocalizable, b region.BoundaryType) bool {
	// An open shape with a zero-length axis has no interior.
	if b == region.Open && s.hasFlatAxis() {
		return false
	}
	sum, err := s.RadialDistance(p)
	if err != nil {
		return false
	}
	return inside(sum, b)
}

func (s *sphereShape) hasFlatAxis() bool {
	for _, a := range s.semiAxes {
		if a == 0 {
			return true
		}
	}
	return false
}
