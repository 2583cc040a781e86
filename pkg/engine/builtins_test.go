package engine

import (
	"strings"
	"testing"

	"github.com/chazu/roi/pkg/geom"
	"github.com/chazu/roi/pkg/region"
	"github.com/chazu/roi/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(open-sphere :radius 8)`,
			expect: `(open_sphere "__kw_radius" 8)`,
		},
		{
			name:   "multiple keywords",
			input:  `(closed-sphere :center [0 0] :radius 1)`,
			expect: `(closed_sphere "__kw_center" [0 0] "__kw_radius" 1)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "escaped quote in string",
			input:  `"a \" :b" :c`,
			expect: `"a \" :b" "__kw_c"`,
		},
		{
			name:   "backtick string preserved",
			input:  "`raw :kw set-center`",
			expect: "`raw :kw set-center`",
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(set-semi-axis c 1 8)`,
			expect: `(set_semi_axis c 1 8)`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:semi-axes`,
			expect: `"__kw_semi-axes"`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative literal preserved",
			input:  `[-10 10]`,
			expect: `[-10 10]`,
		},
		{
			name:   "subtraction without spaces preserved",
			input:  `(def y x-1)`,
			expect: `(def y x-1)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  "; simple comment\n(point 1 2)",
			expect: "// simple comment\n(point 1 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func mustEvaluate(t *testing.T, source string) *scene.Scene {
	t.Helper()
	sc, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if sc == nil {
		t.Fatal("expected non-nil scene")
	}
	return sc
}

func evalFailure(t *testing.T, source string) string {
	t.Helper()
	sc, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if sc != nil {
		t.Fatal("expected nil scene on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error")
	}
	return evalErrs[0].Message
}

func probeResults(sc *scene.Scene) map[string]bool {
	out := make(map[string]bool, len(sc.Probes))
	for _, p := range sc.Probes {
		out[p.Label] = p.Inside
	}
	return out
}

func checkProbes(t *testing.T, sc *scene.Scene, want map[string]bool) {
	t.Helper()
	got := probeResults(sc)
	if len(got) != len(want) {
		t.Fatalf("got %d probes, want %d: %v", len(got), len(want), got)
	}
	for label, inside := range want {
		g, ok := got[label]
		if !ok {
			t.Errorf("probe %q not recorded", label)
			continue
		}
		if g != inside {
			t.Errorf("probe %q inside = %v, want %v", label, g, inside)
		}
	}
}

// ---------------------------------------------------------------------------
// Circle scenarios
// ---------------------------------------------------------------------------

const circleProbes = `
(probe "left" c (point 2 10))
(probe "right" c (point 18 10))
(probe "near" c (point 12 9))
(probe "far" c (point 20 1))
`

func TestOpenCircleScript(t *testing.T) {
	sc := mustEvaluate(t, `(defregion "c" (open-sphere :center [10 10] :radius 8))
(def c (region "c"))`+circleProbes)

	checkProbes(t, sc, map[string]bool{
		"left":  false,
		"right": false,
		"near":  true,
		"far":   false,
	})

	e := sc.Lookup("c")
	if e == nil {
		t.Fatal("expected region c")
	}
	if got := e.Shape.BoundaryType(); got != region.Open {
		t.Errorf("BoundaryType() = %s, want open", got)
	}
	if got := e.Shape.Radius(); got != 8 {
		t.Errorf("Radius() = %g, want 8", got)
	}
	for d := 0; d < 2; d++ {
		if v, err := e.Shape.SemiAxisLength(d); err != nil || v != 8 {
			t.Errorf("SemiAxisLength(%d) = %g, %v, want 8", d, v, err)
		}
	}
	for _, p := range sc.Probes {
		if p.Region != "c" {
			t.Errorf("probe %q region = %q, want c", p.Label, p.Region)
		}
	}
}

func TestClosedCircleScript(t *testing.T) {
	sc := mustEvaluate(t, `(def c (defregion "c" (closed-sphere :center [10 10] :radius 8)))`+circleProbes)

	checkProbes(t, sc, map[string]bool{
		"left":  true,
		"right": true,
		"near":  true,
		"far":   false,
	})
	if got := sc.Lookup("c").Shape.BoundaryType(); got != region.Closed {
		t.Errorf("BoundaryType() = %s, want closed", got)
	}
}

func TestPositionalConstructor(t *testing.T) {
	sc := mustEvaluate(t, `(defregion "c" (closed-sphere [0 0 0] 2))`)

	s := sc.Lookup("c").Shape
	if s.NumDimensions() != 3 {
		t.Errorf("NumDimensions() = %d, want 3", s.NumDimensions())
	}
	if s.Radius() != 2 {
		t.Errorf("Radius() = %g, want 2", s.Radius())
	}
}

func TestSphereWithBoundary(t *testing.T) {
	sc := mustEvaluate(t, `
(def a (defregion "a" (sphere :boundary :open :center [0 0] :radius 1)))
(def b (defregion "b" (sphere :boundary "closed" :center [0 0] :semi-axes [1 1])))
(probe "a-edge" a (point 1 0))
(probe "b-edge" b (point 1 0))
`)
	checkProbes(t, sc, map[string]bool{"a-edge": false, "b-edge": true})
	if got := sc.Lookup("a").Shape.BoundaryType(); got != region.Open {
		t.Errorf("a BoundaryType() = %s, want open", got)
	}
	if got := sc.Lookup("b").Shape.BoundaryType(); got != region.Closed {
		t.Errorf("b BoundaryType() = %s, want closed", got)
	}

	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{"missing boundary", `(sphere :center [0] :radius 1)`, ":boundary is required"},
		{"unknown boundary", `(sphere :boundary :fuzzy :center [0] :radius 1)`, "invalid boundary type"},
		{"non-string boundary", `(sphere :boundary 3 :center [0] :radius 1)`, "expected string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := evalFailure(t, tt.source)
			if !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestEllipsoidScript(t *testing.T) {
	sc := mustEvaluate(t, `
(def e (closed-sphere :center [0 0] :semi-axes [4 2]))
(probe "x-edge" e (point 4 0))
(probe "y-edge" e (point 0 2))
(probe "past-y" e (point 0 3))
(set-semi-axis e 1 3)
(probe "past-y-after" e [0 3])
(defregion "e" e)
`)
	checkProbes(t, sc, map[string]bool{
		"x-edge":       true,
		"y-edge":       true,
		"past-y":       false,
		"past-y-after": true,
	})

	// Ellipsoids update a single axis in place.
	s := sc.Lookup("e").Shape
	if v, _ := s.SemiAxisLength(0); v != 4 {
		t.Errorf("SemiAxisLength(0) = %g, want 4", v)
	}
	if v, _ := s.SemiAxisLength(1); v != 3 {
		t.Errorf("SemiAxisLength(1) = %g, want 3", v)
	}
	for _, p := range sc.Probes {
		if p.Region != "" {
			t.Errorf("anonymous probe %q region = %q, want empty", p.Label, p.Region)
		}
	}
}

// ---------------------------------------------------------------------------
// Mutation
// ---------------------------------------------------------------------------

func TestMutationScript(t *testing.T) {
	sc := mustEvaluate(t, `
(def s (defregion "s" (open-sphere :center [3 2] :radius 5)))
(probe "a0" s (point 6.5 2.25))
(probe "b0" s (point -9.5 11.125))
(set-center s [-10 10])
(probe "a1" s (point 6.5 2.25))
(probe "b1" s (point -9.5 11.125))
(set-semi-axis s 1 8)
`)
	checkProbes(t, sc, map[string]bool{
		"a0": true,
		"b0": false,
		"a1": false,
		"b1": true,
	})

	s := sc.Lookup("s").Shape
	if s.Radius() != 8 {
		t.Errorf("Radius() = %g, want 8", s.Radius())
	}
	for d := 0; d < 2; d++ {
		if v, _ := s.SemiAxisLength(d); v != 8 {
			t.Errorf("SemiAxisLength(%d) = %g, want 8", d, v)
		}
	}
	if c := s.Center(); c[0] != -10 || c[1] != 10 {
		t.Errorf("Center() = %v, want [-10 10]", c)
	}
}

func TestProbeRecordsPointSnapshot(t *testing.T) {
	sc := mustEvaluate(t, `
(def s (closed-sphere :center [0 0] :radius 1))
(probe "before" s (point 2 0))
(set-radius s 3)
(probe "after" s (point 2 0))
`)
	checkProbes(t, sc, map[string]bool{"before": false, "after": true})

	p := sc.Probes[0]
	if len(p.Point) != 2 || p.Point[0] != 2 || p.Point[1] != 0 {
		t.Errorf("probe point = %v, want [2 0]", p.Point)
	}
}

func TestAccessorsScript(t *testing.T) {
	sc := mustEvaluate(t, `
(def s (closed-sphere :center [0 0 0] :semi-axes [1 2 3]))
(defregion "s" s)
(def rad (radius s))
(def ax (semi-axis s 2))
(def ex (exponent s))
(def nd (num-dims s))
(def hit (contains s (point 0 0 2.5)))
(probe "via-array" s [0 0 2.5])
`)
	if sc.Lookup("s") == nil {
		t.Fatal("expected region s")
	}
	checkProbes(t, sc, map[string]bool{"via-array": true})
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{
			name:    "set exponent",
			source:  `(def s (open-sphere :center [0 0] :radius 1)) (set-exponent s 3)`,
			wantMsg: "unsupported",
		},
		{
			name:    "negative radius",
			source:  `(open-sphere :center [3 2] :radius -5)`,
			wantMsg: "illegal value",
		},
		{
			name:    "set negative radius",
			source:  `(def s (closed-sphere :center [0 0] :radius 1)) (set-radius s -2)`,
			wantMsg: "illegal value",
		},
		{
			name:    "short center",
			source:  `(def s (closed-sphere :center [0 0 0] :radius 1)) (set-center s [1 1])`,
			wantMsg: "out of bounds",
		},
		{
			name:    "semi-axis out of range",
			source:  `(def s (closed-sphere :center [0 0] :radius 1)) (semi-axis s 5)`,
			wantMsg: "out of bounds",
		},
		{
			name:    "mismatched semi-axes",
			source:  `(closed-sphere :center [0 0] :semi-axes [1 2 3])`,
			wantMsg: "dimension mismatch",
		},
		{
			name:    "missing center",
			source:  `(closed-sphere :radius 1)`,
			wantMsg: ":center is required",
		},
		{
			name:    "radius and semi-axes",
			source:  `(closed-sphere :center [0] :radius 1 :semi-axes [1])`,
			wantMsg: "exactly one of",
		},
		{
			name:    "non-numeric coordinate",
			source:  `(point 1 "two")`,
			wantMsg: "expected number",
		},
		{
			name:    "unknown region",
			source:  `(region "nope")`,
			wantMsg: "no region named",
		},
		{
			name:    "duplicate region",
			source:  `(defregion "a" (closed-sphere [0] 1)) (defregion "a" (closed-sphere [1] 1))`,
			wantMsg: "defregion",
		},
		{
			name:    "contains on non-region",
			source:  `(contains 5 (point 0))`,
			wantMsg: "expected region",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := evalFailure(t, tt.source)
			if !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", msg, tt.wantMsg)
			}
			for _, internal := range []string{"set_", "semi_axis", "open_sphere", "closed_sphere"} {
				if strings.Contains(msg, internal) {
					t.Errorf("message = %q exposes internal name %q", msg, internal)
				}
			}
		})
	}
}

func TestFailedSetExponentLeavesExponent(t *testing.T) {
	sc := mustEvaluate(t, `(defregion "s" (open-sphere :center [0 0] :radius 1))`)
	s := sc.Lookup("s").Shape
	if err := s.SetExponent(3); err == nil {
		t.Fatal("SetExponent(3) succeeded, want error")
	}
	if s.Exponent() != 2 {
		t.Errorf("Exponent() = %g, want 2", s.Exponent())
	}
}

// ---------------------------------------------------------------------------
// Argument helpers
// ---------------------------------------------------------------------------

func TestParseArgs(t *testing.T) {
	args := []zygo.Sexp{
		&zygo.SexpStr{S: kwPrefix + "center"},
		&zygo.SexpInt{Val: 1},
		&zygo.SexpFloat{Val: 2.5},
		&zygo.SexpStr{S: kwPrefix + "radius"},
	}
	pa := parseArgs(args)

	if got, err := toFloat64(pa.kw["center"]); err != nil || got != 1 {
		t.Errorf("center = %g, %v, want 1", got, err)
	}
	if pa.kw["radius"] != zygo.SexpNull {
		t.Errorf("trailing keyword = %v, want SexpNull", pa.kw["radius"])
	}
	if len(pa.positional) != 1 {
		t.Fatalf("got %d positional args, want 1", len(pa.positional))
	}
	if got, err := toFloat64(pa.positional[0]); err != nil || got != 2.5 {
		t.Errorf("positional = %g, %v, want 2.5", got, err)
	}
}

func TestToFloats(t *testing.T) {
	arr := &zygo.SexpArray{Val: []zygo.Sexp{&zygo.SexpInt{Val: 3}, &zygo.SexpFloat{Val: -1.5}}}
	got, err := toFloats(arr)
	if err != nil {
		t.Fatalf("toFloats: %v", err)
	}
	if len(got) != 2 || got[0] != 3 || got[1] != -1.5 {
		t.Errorf("toFloats = %v, want [3 -1.5]", got)
	}

	pt := &sexpPoint{p: region.NewRealPoint(4, 5)}
	if got, err := toFloats(pt); err != nil || len(got) != 2 || got[1] != 5 {
		t.Errorf("toFloats(point) = %v, %v, want [4 5]", got, err)
	}

	bad := &zygo.SexpArray{Val: []zygo.Sexp{&zygo.SexpStr{S: "x"}}}
	if _, err := toFloats(bad); err == nil {
		t.Error("toFloats with a string element succeeded, want error")
	}
	if _, err := toFloats(&zygo.SexpStr{S: "x"}); err == nil {
		t.Error("toFloats(string) succeeded, want error")
	}
}

func TestSexpString(t *testing.T) {
	shape, err := geom.NewClosedSphere([]float64{0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	sh := &sexpShape{s: shape, name: "unit"}
	if got := sh.SexpString(nil); got != `(region "unit")` {
		t.Errorf("SexpString() = %q, want %q", got, `(region "unit")`)
	}
	pt := &sexpPoint{p: region.NewRealPoint(1.5, -2)}
	if got := pt.SexpString(nil); got != "(point 1.5 -2)" {
		t.Errorf("SexpString() = %q, want %q", got, "(point 1.5 -2)")
	}
}
