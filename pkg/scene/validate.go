package scene

import (
	"errors"
	"fmt"

	"github.com/chazu/roi/pkg/region"
)

// ValidationSeverity indicates whether a validation finding blocks use of
// the scene or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks use
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	EntryID  EntryID            // which entry has the problem (zero if scene-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.EntryID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] region %s: %s", e.Severity, e.EntryID.Short(), e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	EntryID EntryID
	Message string
}

// ValidationResult bundles errors (blocking) and warnings (advisory).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether the result holds no errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs the structural checks and returns their findings. An empty
// slice means the scene is consistent. Validate never mutates the scene.
func Validate(s *Scene) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateIndex(s)...)
	errs = append(errs, validateShapes(s)...)
	errs = append(errs, validateProbes(s)...)
	return errs
}

// ValidateAll runs the structural and geometric checks and separates errors
// from warnings.
func ValidateAll(s *Scene) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(s) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{EntryID: e.EntryID, Message: e.Message})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}
	result.Warnings = append(result.Warnings, validateGeometry(s)...)
	return result
}

// validateIndex checks that the name index and entries agree.
func validateIndex(s *Scene) []ValidationError {
	var errs []ValidationError
	for name, id := range s.NameIndex {
		e := s.Entries[id]
		if e == nil {
			errs = append(errs, ValidationError{
				EntryID:  id,
				Message:  fmt.Sprintf("name %q points at a missing entry", name),
				Severity: SeverityError,
			})
			continue
		}
		if e.Name != name {
			errs = append(errs, ValidationError{
				EntryID:  id,
				Message:  fmt.Sprintf("name %q indexes entry named %q", name, e.Name),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateShapes checks that every entry carries a shape.
func validateShapes(s *Scene) []ValidationError {
	var errs []ValidationError
	for _, e := range s.Ordered() {
		if e.Shape == nil {
			errs = append(errs, ValidationError{
				EntryID:  e.ID,
				Message:  fmt.Sprintf("region %q has no shape", e.Name),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateProbes checks that named probes refer to defined regions and
// that labels are unique.
func validateProbes(s *Scene) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for _, p := range s.Probes {
		if p.Region != "" && s.Lookup(p.Region) == nil {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("probe %q refers to undefined region %q", p.Label, p.Region),
				Severity: SeverityError,
			})
		}
		if seen[p.Label] {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("probe label %q used more than once", p.Label),
				Severity: SeverityWarning,
			})
		}
		seen[p.Label] = true
	}
	return errs
}

// validateGeometry reports shapes whose containment is degenerate or
// partly undefined.
func validateGeometry(s *Scene) []ValidationWarning {
	var warnings []ValidationWarning
	for _, e := range s.Ordered() {
		if e.Shape == nil {
			continue
		}
		n := e.Shape.NumDimensions()
		for d := 0; d < n; d++ {
			a, err := e.Shape.SemiAxisLength(d)
			if errors.Is(err, region.ErrOutOfBounds) {
				warnings = append(warnings, ValidationWarning{
					EntryID: e.ID,
					Message: fmt.Sprintf("region %q has %d dimensions but no semi-axis for axis %d; it contains no points", e.Name, n, d),
				})
				break
			}
			if a == 0 {
				msg := fmt.Sprintf("region %q has a zero semi-axis on axis %d", e.Name, d)
				if e.Shape.BoundaryType() == region.Open {
					msg += "; an open region with a flat axis is empty"
				}
				warnings = append(warnings, ValidationWarning{EntryID: e.ID, Message: msg})
			}
		}
	}
	return warnings
}
