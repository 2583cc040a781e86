// Package geom implements n-dimensional ellipsoid and sphere regions of
// interest.
//
// Every shape stores a center, one semi-axis length per axis and the fixed
// exponent 2. A point p is inside when
//
//	sum over d of (|p[d] - center[d]| / semiAxis[d])^2
//
// is below 1 (open shapes) or at most 1 (closed shapes). The open/closed
// choice is made by picking a type and never changes afterwards.
//
// Shapes are plain mutable values with no internal locking. Callers sharing
// one shape between goroutines must synchronize access themselves.
package geom
