package scene

import (
	"strings"
	"testing"

	"github.com/chazu/roi/pkg/geom"
)

func mustSphere(t *testing.T, center []float64, r float64) geom.Sphere {
	t.Helper()
	s, err := geom.NewClosedSphere(center, r)
	if err != nil {
		t.Fatalf("NewClosedSphere() error = %v", err)
	}
	return s
}

func TestNewEntryIDDeterministic(t *testing.T) {
	a := NewEntryID("cell")
	b := NewEntryID("cell")
	if a != b {
		t.Errorf("NewEntryID not deterministic: %s != %s", a, b)
	}
	if a == NewEntryID("nucleus") {
		t.Error("different names produced the same ID")
	}
	if len(a.Short()) != 8 {
		t.Errorf("Short() = %q, want 8 characters", a.Short())
	}
	if !ZeroID.IsZero() || a.IsZero() {
		t.Error("IsZero() mismatch")
	}
}

func TestDefineAndLookup(t *testing.T) {
	s := New()
	e, err := s.Define("cell", mustSphere(t, []float64{0, 0}, 5))
	if err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if got := s.Lookup("cell"); got != e {
		t.Errorf("Lookup(cell) = %v, want %v", got, e)
	}
	if got := s.Get(e.ID); got != e {
		t.Errorf("Get(id) = %v, want %v", got, e)
	}
	if s.Lookup("missing") != nil {
		t.Error("Lookup(missing) should return nil")
	}
}

func TestDefineRejectsDuplicatesAndEmptyNames(t *testing.T) {
	s := New()
	if _, err := s.Define("cell", mustSphere(t, []float64{0}, 1)); err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	if _, err := s.Define("cell", mustSphere(t, []float64{0}, 2)); err == nil {
		t.Error("Define(duplicate) should fail")
	}
	if _, err := s.Define("", mustSphere(t, []float64{0}, 2)); err == nil {
		t.Error("Define(empty name) should fail")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestOrderedFollowsDefinition(t *testing.T) {
	s := New()
	names := []string{"c", "a", "b"}
	for _, n := range names {
		if _, err := s.Define(n, mustSphere(t, []float64{0}, 1)); err != nil {
			t.Fatalf("Define(%s) error = %v", n, err)
		}
	}
	got := s.Ordered()
	for i, e := range got {
		if e.Name != names[i] {
			t.Errorf("Ordered()[%d] = %s, want %s", i, e.Name, names[i])
		}
	}
}

// --- Validation ---

func TestValidateCleanScene(t *testing.T) {
	s := New()
	_, _ = s.Define("cell", mustSphere(t, []float64{0, 0}, 5))
	s.Record(Probe{Label: "p1", Region: "cell", Point: []float64{1, 1}, Inside: true})

	res := ValidateAll(s)
	if !res.OK() {
		t.Errorf("ValidateAll() errors = %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("ValidateAll() warnings = %v", res.Warnings)
	}
}

func TestValidateUndefinedProbeRegion(t *testing.T) {
	s := New()
	s.Record(Probe{Label: "p1", Region: "ghost", Point: []float64{0}})

	errs := Validate(s)
	if len(errs) != 1 {
		t.Fatalf("Validate() = %v, want 1 error", errs)
	}
	if errs[0].Severity != SeverityError {
		t.Errorf("severity = %s, want error", errs[0].Severity)
	}
	if !strings.Contains(errs[0].Error(), "ghost") {
		t.Errorf("Error() = %q, want mention of region name", errs[0].Error())
	}
}

func TestValidateDuplicateProbeLabel(t *testing.T) {
	s := New()
	s.Record(Probe{Label: "p", Point: []float64{0}})
	s.Record(Probe{Label: "p", Point: []float64{1}})

	res := ValidateAll(s)
	if !res.OK() {
		t.Errorf("duplicate labels should not be errors, got %v", res.Errors)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("warnings = %v, want 1", res.Warnings)
	}
}

func TestValidateNilShape(t *testing.T) {
	s := New()
	_, _ = s.Define("empty", nil)
	errs := Validate(s)
	if len(errs) != 1 || errs[0].EntryID != NewEntryID("empty") {
		t.Errorf("Validate() = %v, want one error for region empty", errs)
	}
}

func TestValidateBrokenIndex(t *testing.T) {
	s := New()
	s.NameIndex["dangling"] = NewEntryID("dangling")
	errs := Validate(s)
	if len(errs) != 1 {
		t.Fatalf("Validate() = %v, want 1 error", errs)
	}
}

func TestValidateGeometryWarnings(t *testing.T) {
	s := New()

	flat, _ := geom.NewOpenEllipsoid([]float64{0, 0}, []float64{1, 0})
	_, _ = s.Define("flat", flat)

	grown := mustSphere(t, []float64{0, 0}, 1)
	if err := grown.SetCenter([]float64{0, 0, 0}); err != nil {
		t.Fatalf("SetCenter() error = %v", err)
	}
	_, _ = s.Define("grown", grown)

	res := ValidateAll(s)
	if !res.OK() {
		t.Fatalf("ValidateAll() errors = %v", res.Errors)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0].Message, "empty") {
		t.Errorf("flat warning = %q, want mention that the open region is empty", res.Warnings[0].Message)
	}
	if !strings.Contains(res.Warnings[1].Message, "no semi-axis for axis 2") {
		t.Errorf("grown warning = %q, want missing semi-axis", res.Warnings[1].Message)
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Message: "scene-level", Severity: SeverityWarning}
	if got := e.Error(); got != "[warning] scene-level" {
		t.Errorf("Error() = %q", got)
	}
	id := NewEntryID("x")
	e2 := ValidationError{EntryID: id, Message: "bad", Severity: SeverityError}
	if got := e2.Error(); got != "[error] region "+id.Short()+": bad" {
		t.Errorf("Error() = %q", got)
	}
	if got := ValidationSeverity(7).String(); got != "ValidationSeverity(7)" {
		t.Errorf("String() = %q", got)
	}
}
