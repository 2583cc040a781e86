package main

import (
	"log"

	"github.com/chazu/roi/pkg/engine"
	"github.com/chazu/roi/pkg/scene"
	"github.com/chazu/roi/pkg/sdfx"
)

// App ties the script engine to scene validation. It is the layer the CLI
// drives; library packages below it do not log.
type App struct {
	engine *engine.Engine
	cfg    Config
}

// RegionData is the JSON-serializable summary of a named region.
type RegionData struct {
	Name     string    `json:"name"`
	ID       string    `json:"id"`
	Boundary string    `json:"boundary"`
	Center   []float64 `json:"center"`
	SemiAxes []float64 `json:"semiAxes"`
	// BoundsMin and BoundsMax are set for 2-d and 3-d regions only.
	BoundsMin []float64 `json:"boundsMin,omitempty"`
	BoundsMax []float64 `json:"boundsMax,omitempty"`
}

// ProbeData is a JSON-serializable containment result.
type ProbeData struct {
	Label  string    `json:"label"`
	Region string    `json:"region,omitempty"`
	Point  []float64 `json:"point"`
	Inside bool      `json:"inside"`
}

// EvalErrorData is a JSON-serializable eval error or finding.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of evaluating one script.
type EvalResult struct {
	Regions  []RegionData    `json:"regions"`
	Probes   []ProbeData     `json:"probes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// OK reports whether the evaluation produced no errors.
func (r EvalResult) OK() bool {
	return len(r.Errors) == 0
}

// NewApp creates a new App configured by cfg.
func NewApp(cfg Config) *App {
	return &App{
		engine: engine.NewEngine(engine.WithTimeout(cfg.EvalTimeout)),
		cfg:    cfg,
	}
}

// Evaluate takes script source and returns regions, probes and findings.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Regions:  []RegionData{},
		Probes:   []ProbeData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the script into a scene.
	sc, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 3: Validate the scene.
	vr := scene.ValidateAll(sc)
	for _, e := range vr.Errors {
		result.Errors = append(result.Errors, EvalErrorData{Message: e.Error()})
	}
	for _, w := range vr.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.Message})
	}

	// Step 4: Summarize regions and probes.
	for _, e := range sc.Ordered() {
		if e.Shape == nil {
			continue
		}
		result.Regions = append(result.Regions, a.regionData(e))
	}
	for _, p := range sc.Probes {
		result.Probes = append(result.Probes, ProbeData{
			Label:  p.Label,
			Region: p.Region,
			Point:  p.Point,
			Inside: p.Inside,
		})
	}

	if a.cfg.Debug() {
		log.Printf("scene v%d: %d regions, %d probes, %d warnings",
			sc.Version, sc.Len(), len(result.Probes), len(result.Warnings))
	}
	return result
}

func (a *App) regionData(e *scene.Entry) RegionData {
	rd := RegionData{
		Name:     e.Name,
		ID:       e.ID.Short(),
		Boundary: e.Shape.BoundaryType().String(),
		Center:   e.Shape.Center(),
	}
	for d := 0; ; d++ {
		v, err := e.Shape.SemiAxisLength(d)
		if err != nil {
			break
		}
		rd.SemiAxes = append(rd.SemiAxes, v)
	}
	rd.BoundsMin, rd.BoundsMax = a.bounds(e)
	return rd
}

// bounds computes the box of a 2-d or 3-d region through its sdfx view.
func (a *App) bounds(e *scene.Entry) (min, max []float64) {
	switch e.Shape.NumDimensions() {
	case 2:
		s, err := sdfx.NewSDF2(e.Shape)
		if err != nil {
			a.debugf("region %q: no 2-d bounds: %v", e.Name, err)
			return nil, nil
		}
		bb := s.BoundingBox()
		return []float64{bb.Min.X, bb.Min.Y}, []float64{bb.Max.X, bb.Max.Y}
	case 3:
		s, err := sdfx.NewSDF3(e.Shape)
		if err != nil {
			a.debugf("region %q: no 3-d bounds: %v", e.Name, err)
			return nil, nil
		}
		bb := s.BoundingBox()
		return []float64{bb.Min.X, bb.Min.Y, bb.Min.Z}, []float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	}
	return nil, nil
}

func (a *App) debugf(format string, args ...any) {
	if a.cfg.Debug() {
		log.Printf(format, args...)
	}
}
