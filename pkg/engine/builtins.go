package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/roi/pkg/geom"
	"github.com/chazu/roi/pkg/region"
	"github.com/chazu/roi/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPoint wraps a query point.
type sexpPoint struct {
	p *region.RealPoint
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return "(point " + strings.ReplaceAll(strings.Trim(p.p.String(), "()"), ",", "") + ")"
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpShape wraps a shape. name is set once the shape is registered with
// defregion or fetched with region.
type sexpShape struct {
	s    geom.Sphere
	name string
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	if s.name != "" {
		return fmt.Sprintf("(region %q)", s.name)
	}
	return fmt.Sprintf("(%v)", s.s)
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string and returns its
// name without the prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func describe(s zygo.Sexp) string {
	return fmt.Sprintf("%T (%s)", s, s.SexpString(nil))
}

// toFloat64 extracts a float64 from a SexpInt or SexpFloat.
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", describe(s))
}

// toInt extracts an axis index from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %s", describe(s))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %s", describe(s))
}

// toFloats extracts coordinates from an array, a list or a point.
func toFloats(s zygo.Sexp) ([]float64, error) {
	var items []zygo.Sexp
	switch v := s.(type) {
	case *sexpPoint:
		return v.p.Coords(), nil
	case *zygo.SexpArray:
		items = v.Val
	case *zygo.SexpPair:
		arr, err := zygo.ListToArray(v)
		if err != nil {
			return nil, err
		}
		items = arr
	default:
		return nil, fmt.Errorf("expected coordinates, got %s", describe(s))
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, err := toFloat64(item)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// toPoint extracts a query point from a point or a coordinate array.
func toPoint(s zygo.Sexp) (*region.RealPoint, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.p, nil
	}
	c, err := toFloats(s)
	if err != nil {
		return nil, err
	}
	return region.NewRealPoint(c...), nil
}

// toShape extracts a shape from a sexpShape.
func toShape(s zygo.Sexp) (*sexpShape, error) {
	if v, ok := s.(*sexpShape); ok {
		return v, nil
	}
	return nil, fmt.Errorf("expected region, got %s", describe(s))
}

func boolSexp(b bool) zygo.Sexp {
	return &zygo.SexpBool{Val: b}
}

func floatSexp(f float64) zygo.Sexp {
	return &zygo.SexpFloat{Val: f}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the ROI builtins into a zygomys environment.
// The builtins populate sc during evaluation.
//
// Source must be run through preprocessSource first so that :keyword tokens
// and kebab-case names match what is registered here.
func registerBuiltins(env *zygo.Zlisp, sc *scene.Scene) {

	// (point 12 9)
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("point requires at least one coordinate")
		}
		coords := make([]float64, len(args))
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("point: coordinate %d: %w", i, err)
			}
			coords[i] = f
		}
		return &sexpPoint{p: region.NewRealPoint(coords...)}, nil
	})

	// (open-sphere :center [10 10] :radius 8)
	// (closed-sphere :center [0 0 0] :semi-axes [1 2 3])
	env.AddFunction("open_sphere", shapeBuiltin(region.Open))
	env.AddFunction("closed_sphere", shapeBuiltin(region.Closed))

	// (sphere :boundary :closed :center [0 0] :radius 1)
	env.AddFunction("sphere", sphereBuiltin)

	// (defregion "cell" (closed-sphere ...))
	env.AddFunction("defregion", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defregion requires a name and a region expression")
		}
		regionName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defregion: name: %w", err)
		}
		sh, err := toShape(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defregion: %w", err)
		}
		if _, err := sc.Define(regionName, sh.s); err != nil {
			return zygo.SexpNull, fmt.Errorf("defregion: %w", err)
		}
		return &sexpShape{s: sh.s, name: regionName}, nil
	})

	// (region "cell")
	env.AddFunction("region", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("region requires a name argument")
		}
		regionName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("region: name: %w", err)
		}
		e := sc.Lookup(regionName)
		if e == nil {
			return zygo.SexpNull, fmt.Errorf("region: no region named %q", regionName)
		}
		return &sexpShape{s: e.Shape, name: regionName}, nil
	})

	// (contains r (point 1 2))
	env.AddFunction("contains", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("contains requires a region and a point")
		}
		sh, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains: %w", err)
		}
		p, err := toPoint(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains: point: %w", err)
		}
		return boolSexp(sh.s.Contains(p)), nil
	})

	// (probe "label" r (point 1 2))
	env.AddFunction("probe", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("probe requires a label, a region and a point")
		}
		label, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("probe: label: %w", err)
		}
		sh, err := toShape(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("probe %q: %w", label, err)
		}
		p, err := toPoint(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("probe %q: point: %w", label, err)
		}
		inside := sh.s.Contains(p)
		sc.Record(scene.Probe{
			Label:  label,
			Region: sh.name,
			Point:  region.Coordinates(p),
			Inside: inside,
		})
		return boolSexp(inside), nil
	})

	// (set-center r [1 2 3])
	env.AddFunction("set_center", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("set-center requires a region and coordinates")
		}
		sh, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-center: %w", err)
		}
		c, err := toFloats(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-center: center: %w", err)
		}
		if err := sh.s.SetCenter(c); err != nil {
			return zygo.SexpNull, fmt.Errorf("set-center: %w", err)
		}
		return sh, nil
	})

	// (set-radius r 8)
	env.AddFunction("set_radius", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("set-radius requires a region and a radius")
		}
		sh, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-radius: %w", err)
		}
		r, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-radius: radius: %w", err)
		}
		if err := sh.s.SetRadius(r); err != nil {
			return zygo.SexpNull, fmt.Errorf("set-radius: %w", err)
		}
		return sh, nil
	})

	// (set-semi-axis r 1 8)
	env.AddFunction("set_semi_axis", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("set-semi-axis requires a region, an axis and a length")
		}
		sh, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-semi-axis: %w", err)
		}
		d, err := toInt(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-semi-axis: axis: %w", err)
		}
		v, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-semi-axis: length: %w", err)
		}
		if err := sh.s.SetSemiAxisLength(d, v); err != nil {
			return zygo.SexpNull, fmt.Errorf("set-semi-axis: %w", err)
		}
		return sh, nil
	})

	// (set-exponent r 3) always fails for spheres and ellipsoids.
	env.AddFunction("set_exponent", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("set-exponent requires a region and an exponent")
		}
		sh, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-exponent: %w", err)
		}
		v, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-exponent: exponent: %w", err)
		}
		if err := sh.s.SetExponent(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("set-exponent: %w", err)
		}
		return sh, nil
	})

	// (radius r), (exponent r), (num-dims r), (semi-axis r 0)
	env.AddFunction("radius", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		sh, err := singleShape("radius", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return floatSexp(sh.s.Radius()), nil
	})
	env.AddFunction("exponent", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		sh, err := singleShape("exponent", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return floatSexp(sh.s.Exponent()), nil
	})
	env.AddFunction("num_dims", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		sh, err := singleShape("num-dims", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpInt{Val: int64(sh.s.NumDimensions())}, nil
	})
	env.AddFunction("semi_axis", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("semi-axis requires a region and an axis")
		}
		sh, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("semi-axis: %w", err)
		}
		d, err := toInt(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("semi-axis: axis: %w", err)
		}
		v, err := sh.s.SemiAxisLength(d)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("semi-axis: %w", err)
		}
		return floatSexp(v), nil
	})
}

func singleShape(builtin string, args []zygo.Sexp) (*sexpShape, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s requires exactly one region argument, got %d", builtin, len(args))
	}
	sh, err := toShape(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", builtin, err)
	}
	return sh, nil
}

// shapeBuiltin returns the constructor builtin for boundary b. It accepts
// :center with either :radius or :semi-axes, or the positional form
// (open-sphere [cx cy] r).
func shapeBuiltin(b region.BoundaryType) zygo.ZlispUserFunction {
	label := b.String() + "-sphere"
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return buildShape(label, b, parseArgs(args))
	}
}

// sphereBuiltin implements (sphere :boundary :open ...), which takes the
// boundary as a keyword or string and otherwise the same arguments as
// open-sphere.
func sphereBuiltin(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	arg, ok := pa.kw["boundary"]
	if !ok {
		return zygo.SexpNull, fmt.Errorf("sphere: :boundary is required")
	}
	b, err := toBoundary(arg)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
	}
	return buildShape("sphere", b, pa)
}

// toBoundary accepts :open, :closed, "open" or "closed".
func toBoundary(s zygo.Sexp) (region.BoundaryType, error) {
	str, ok := isKW(s)
	if !ok {
		var err error
		if str, err = toString(s); err != nil {
			return region.Unspecified, fmt.Errorf("boundary: %w", err)
		}
	}
	return region.ParseBoundaryType(str)
}

func buildShape(label string, b region.BoundaryType, pa kwArgs) (zygo.Sexp, error) {
	centerArg, hasCenter := pa.kw["center"]
	radiusArg, hasRadius := pa.kw["radius"]
	axesArg, hasAxes := pa.kw["semi-axes"]
	if !hasCenter && len(pa.positional) == 2 {
		centerArg, radiusArg = pa.positional[0], pa.positional[1]
		hasCenter, hasRadius = true, true
	}

	if !hasCenter {
		return zygo.SexpNull, fmt.Errorf("%s: :center is required", label)
	}
	if hasRadius == hasAxes {
		return zygo.SexpNull, fmt.Errorf("%s: exactly one of :radius or :semi-axes is required", label)
	}

	center, err := toFloats(centerArg)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: center: %w", label, err)
	}

	var s geom.Sphere
	if hasRadius {
		r, err := toFloat64(radiusArg)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: radius: %w", label, err)
		}
		s, err = geom.New(b, center, r)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", label, err)
		}
	} else {
		axes, err := toFloats(axesArg)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: semi-axes: %w", label, err)
		}
		s, err = geom.NewEllipsoid(b, center, axes)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", label, err)
		}
	}
	return &sexpShape{s: s}, nil
}
