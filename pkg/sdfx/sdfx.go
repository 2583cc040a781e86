// Package sdfx connects regions to the github.com/deadsy/sdfx SDF-based CAD
// library. sdfx vectors can be used as query points, and 2-D/3-D shapes can
// be handed to sdfx as signed distance functions.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/roi/pkg/geom"
	"github.com/chazu/roi/pkg/region"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface checks.
var (
	_ region.RealLocalizable = Vec2{}
	_ region.RealLocalizable = Vec3{}
	_ sdf.SDF2               = (*shapeSDF2)(nil)
	_ sdf.SDF3               = (*shapeSDF3)(nil)
)

// Vec2 wraps a v2.Vec as a 2-d query point.
type Vec2 struct {
	v2.Vec
}

// NumDimensions returns 2.
func (v Vec2) NumDimensions() int { return 2 }

// Position returns X for axis 0 and Y for axis 1.
func (v Vec2) Position(d int) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	panic(fmt.Sprintf("sdfx.Vec2: axis %d out of range", d))
}

// Vec3 wraps a v3.Vec as a 3-d query point.
type Vec3 struct {
	v3.Vec
}

// NumDimensions returns 3.
func (v Vec3) NumDimensions() int { return 3 }

// Position returns X, Y or Z for axes 0, 1 and 2.
func (v Vec3) Position(d int) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("sdfx.Vec3: axis %d out of range", d))
}

// shapeSDF2 exposes a 2-d shape as an sdf.SDF2.
type shapeSDF2 struct {
	s  geom.SuperEllipsoid
	bb sdf.Box2
}

// NewSDF2 returns a signed distance view of a 2-d shape. The view reads the
// shape on every call, so later mutations are visible in both Evaluate and
// BoundingBox.
func NewSDF2(s geom.SuperEllipsoid) (sdf.SDF2, error) {
	bb, err := Box2(s)
	if err != nil {
		return nil, err
	}
	return &shapeSDF2{s: s, bb: bb}, nil
}

// Evaluate returns a distance estimate: negative inside, zero on the
// boundary, positive outside. It is exact for circles.
func (f *shapeSDF2) Evaluate(p v2.Vec) float64 {
	return estimateDistance(f.s, Vec2{p})
}

// BoundingBox returns the axis-aligned bounding box of the shape as it is
// now. If the shape can no longer be bounded in 2-d the last good box is
// returned.
func (f *shapeSDF2) BoundingBox() sdf.Box2 {
	if bb, err := Box2(f.s); err == nil {
		f.bb = bb
	}
	return f.bb
}

// shapeSDF3 exposes a 3-d shape as an sdf.SDF3.
type shapeSDF3 struct {
	s  geom.SuperEllipsoid
	bb sdf.Box3
}

// NewSDF3 returns a signed distance view of a 3-d shape. Like NewSDF2, it
// tracks later mutations.
func NewSDF3(s geom.SuperEllipsoid) (sdf.SDF3, error) {
	bb, err := Box3(s)
	if err != nil {
		return nil, err
	}
	return &shapeSDF3{s: s, bb: bb}, nil
}

// Evaluate returns a distance estimate: negative inside, zero on the
// boundary, positive outside. It is exact for spheres.
func (f *shapeSDF3) Evaluate(p v3.Vec) float64 {
	return estimateDistance(f.s, Vec3{p})
}

// BoundingBox returns the current axis-aligned bounding box, or the last
// good one.
func (f *shapeSDF3) BoundingBox() sdf.Box3 {
	if bb, err := Box3(f.s); err == nil {
		f.bb = bb
	}
	return f.bb
}

// estimateDistance scales (sqrt(sum) - 1) by the shortest non-zero
// semi-axis. For a ball this is |p - c| - r; for an ellipsoid the sign is
// exact and the magnitude is an estimate. Zero axes only admit points on the
// center plane, which RadialDistance already enforces. Unmeasurable points
// are reported far outside.
func estimateDistance(s geom.SuperEllipsoid, p region.RealLocalizable) float64 {
	sum, err := s.RadialDistance(p)
	if err != nil || math.IsInf(sum, 1) {
		return math.MaxFloat64
	}
	minAxis := math.Inf(1)
	for d := 0; d < s.NumDimensions(); d++ {
		a, err := s.SemiAxisLength(d)
		if err != nil {
			return math.MaxFloat64
		}
		if a > 0 {
			minAxis = math.Min(minAxis, a)
		}
	}
	if math.IsInf(minAxis, 1) {
		// Every axis is flat: only the center has a finite sum.
		if sum > 1 {
			return math.MaxFloat64
		}
		return 0
	}
	return (math.Sqrt(sum) - 1) * minAxis
}

// Box2 returns the bounding box of a 2-d interval.
func Box2(iv region.RealInterval) (sdf.Box2, error) {
	min, max, err := bounds(iv, 2)
	if err != nil {
		return sdf.Box2{}, err
	}
	return sdf.Box2{
		Min: v2.Vec{X: min[0], Y: min[1]},
		Max: v2.Vec{X: max[0], Y: max[1]},
	}, nil
}

// Box3 returns the bounding box of a 3-d interval.
func Box3(iv region.RealInterval) (sdf.Box3, error) {
	min, max, err := bounds(iv, 3)
	if err != nil {
		return sdf.Box3{}, err
	}
	return sdf.Box3{
		Min: v3.Vec{X: min[0], Y: min[1], Z: min[2]},
		Max: v3.Vec{X: max[0], Y: max[1], Z: max[2]},
	}, nil
}

func bounds(iv region.RealInterval, n int) (min, max []float64, err error) {
	if iv.NumDimensions() != n {
		return nil, nil, fmt.Errorf("sdfx: %d-d shape, want %d-d: %w", iv.NumDimensions(), n, region.ErrDimensionMismatch)
	}
	min = make([]float64, n)
	max = make([]float64, n)
	for d := 0; d < n; d++ {
		if min[d], err = iv.RealMin(d); err != nil {
			return nil, nil, fmt.Errorf("sdfx: %w", err)
		}
		if max[d], err = iv.RealMax(d); err != nil {
			return nil, nil, fmt.Errorf("sdfx: %w", err)
		}
	}
	return min, max, nil
}
