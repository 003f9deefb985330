// Command validate performs integrity checks on the ground-motion model:
// coefficient table shape and finiteness, variance decomposition, reference
// scenario recomputation, and optionally fixture cross-checks against the
// output of genscenarios.
//
// Usage:
//
//	go run ./cmd/validate \
//	  [-scenarios-json data/mock/vrancea_scenarios.json] \
//	  [-fields-json data/mock/vrancea_fields.json]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/seismolab/vrancea-gmm/internal/gmm"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	scenariosJSON := flag.String("scenarios-json", "", "path to scenario request fixture (optional)")
	fieldsJSON := flag.String("fields-json", "", "path to ground-motion field fixture (optional)")
	flag.Parse()

	if code := run(*scenariosJSON, *fieldsJSON); code != 0 {
		os.Exit(code)
	}
}

func run(scenariosPath, fieldsPath string) int {
	fmt.Println("=== Ground-Motion Model Integrity Validation ===")
	fmt.Println()

	phases := []*phase{
		validateCoefficientTable(),
		validateVarianceDecomposition(),
		validateReferenceScenarios(),
	}

	if scenariosPath != "" && fieldsPath != "" {
		p, err := validateFixtures(scenariosPath, fieldsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load fixtures: %v\n", err)
			return 1
		}
		phases = append(phases, p)
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-46s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Coefficient Table ──
// Validates the published table shape: PGA plus 19 spectral periods, all
// values finite, with the expected signs on the distance and arc slopes.

func validateCoefficientTable() *phase {
	p := &phase{name: "Phase 1: Coefficient Table"}

	periods := gmm.SupportedPeriods()
	if len(periods) != 19 {
		p.errorf("expected 19 spectral periods, got %d", len(periods))
	}
	for i := 1; i < len(periods); i++ {
		if periods[i] <= periods[i-1] {
			p.errorf("periods not strictly ascending at index %d: %g <= %g", i, periods[i], periods[i-1])
		}
	}
	if len(periods) > 0 {
		if periods[0] != 0.1 {
			p.errorf("first period: expected 0.1, got %g", periods[0])
		}
		if periods[len(periods)-1] != 4.0 {
			p.errorf("last period: expected 4.0, got %g", periods[len(periods)-1])
		}
	}

	imts := []gmm.IMT{gmm.PGA()}
	for _, per := range periods {
		imts = append(imts, gmm.SA(per))
	}
	for _, imt := range imts {
		c, err := gmm.LookupCoeffs(imt)
		if err != nil {
			p.errorf("%s: lookup failed: %v", imt, err)
			continue
		}
		for name, v := range map[string]float64{
			"c1": c.C1, "c2": c.C2, "c3": c.C3, "c4": c.C4, "c5": c.C5,
			"c6": c.C6, "c7": c.C7, "c8": c.C8, "c9": c.C9, "c10": c.C10,
			"sigma_t": c.SigmaT, "tau": c.Tau, "sigma": c.Sigma,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				p.errorf("%s: %s is not finite", imt, name)
			}
		}
		if c.C4 >= 0 {
			p.errorf("%s: geometric spreading slope c4 should be negative, got %g", imt, c.C4)
		}
		if c.C5 >= 0 || c.C6 >= 0 {
			p.errorf("%s: anelastic slopes should be negative, got c5=%g c6=%g", imt, c.C5, c.C6)
		}
		if c.SigmaT <= 0 || c.Tau <= 0 || c.Sigma <= 0 {
			p.errorf("%s: dispersions must be positive", imt)
		}
	}

	return p
}

// ── Phase 2: Variance Decomposition ──
// The published total dispersion must match its inter/intra components.

func validateVarianceDecomposition() *phase {
	p := &phase{name: "Phase 2: Variance Decomposition"}

	imts := []gmm.IMT{gmm.PGA()}
	for _, per := range gmm.SupportedPeriods() {
		imts = append(imts, gmm.SA(per))
	}
	for _, imt := range imts {
		c, err := gmm.LookupCoeffs(imt)
		if err != nil {
			p.errorf("%s: lookup failed: %v", imt, err)
			continue
		}
		composed := math.Sqrt(c.Tau*c.Tau + c.Sigma*c.Sigma)
		if math.Abs(composed-c.SigmaT) > 0.005 {
			p.errorf("%s: sqrt(tau^2+sigma^2)=%.4f but sigma_t=%.4f", imt, composed, c.SigmaT)
		}
	}

	return p
}

// ── Phase 3: Reference Scenarios ──
// Recomputes hand-checked scenarios directly from the functional form.

func validateReferenceScenarios() *phase {
	p := &phase{name: "Phase 3: Reference Scenarios"}

	// Fore-arc PGA at M6: the magnitude polynomial vanishes and only the
	// path, depth, and site terms remain.
	pred, err := gmm.Predict(
		gmm.PGA(),
		gmm.Rupture{Mag: 6.0, HypoDepth: 100},
		gmm.Sites{Vs30: []float64{400}, Backarc: []bool{false}},
		gmm.Distances{Rhypo: []float64{50}},
		[]gmm.StdDevKind{gmm.StdDevTotal},
	)
	if err != nil {
		p.errorf("reference predict failed: %v", err)
		return p
	}

	want := 9.6231 - 1.1316*math.Log(50) - 0.0024*50 - 0.0007*100 - 0.0835
	if math.Abs(pred.Mean[0]-want) > 1e-9 {
		p.errorf("fore-arc PGA mean: expected %.6f, got %.6f", want, pred.Mean[0])
	}
	if math.Abs(pred.StdDevs[0][0]-0.698) > 1e-9 {
		p.errorf("PGA total stddev: expected 0.698, got %.6f", pred.StdDevs[0][0])
	}

	// Flipping a site to the back-arc swaps the anelastic slope only.
	flipped, err := gmm.Predict(
		gmm.PGA(),
		gmm.Rupture{Mag: 6.0, HypoDepth: 100},
		gmm.Sites{Vs30: []float64{400}, Backarc: []bool{true}},
		gmm.Distances{Rhypo: []float64{50}},
		[]gmm.StdDevKind{gmm.StdDevTotal},
	)
	if err != nil {
		p.errorf("back-arc predict failed: %v", err)
		return p
	}
	wantDelta := (-0.0114 - (-0.0024)) * 50
	if math.Abs((flipped.Mean[0]-pred.Mean[0])-wantDelta) > 1e-9 {
		p.errorf("back-arc delta: expected %.6f, got %.6f", wantDelta, flipped.Mean[0]-pred.Mean[0])
	}

	return p
}

// ── Phase 4: Fixture Cross-Check ──
// Re-runs prediction on the scenario fixture and compares against the
// pre-computed field fixture.

func validateFixtures(scenariosPath, fieldsPath string) (*phase, error) {
	p := &phase{name: "Phase 4: Fixture Cross-Check"}

	scenarios, err := loadJSON[gmm.ScenarioRequest](scenariosPath)
	if err != nil {
		return nil, fmt.Errorf("scenarios: %w", err)
	}
	fields, err := loadJSON[gmm.HazardResult](fieldsPath)
	if err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}

	if len(scenarios) != len(fields) {
		p.errorf("count mismatch: %d scenarios, %d fields", len(scenarios), len(fields))
		return p, nil
	}

	// Fix the clock to match genscenarios for reproducible timestamps.
	gmm.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC),
	))
	defer gmm.SetClock(nil)

	fieldsByID := map[string]*gmm.HazardResult{}
	for i := range fields {
		fieldsByID[fields[i].ScenarioID] = &fields[i]
	}

	for i := range scenarios {
		req := scenarios[i]
		field, ok := fieldsByID[req.ID]
		if !ok {
			p.errorf("scenario %s: no matching field", req.ID)
			continue
		}

		imt, rup, sites, dists, kinds, err := req.Inputs()
		if err != nil {
			p.errorf("scenario %s: %v", req.ID, err)
			continue
		}
		pred, err := gmm.Predict(imt, rup, sites, dists, kinds)
		if err != nil {
			p.errorf("scenario %s: predict: %v", req.ID, err)
			continue
		}

		if len(pred.Mean) != len(field.Mean) {
			p.errorf("scenario %s: mean length: expected %d, got %d", req.ID, len(pred.Mean), len(field.Mean))
			continue
		}
		for j := range pred.Mean {
			if math.Abs(pred.Mean[j]-field.Mean[j]) > 1e-9 {
				p.errorf("scenario %s site %d: mean: expected %.6f, got %.6f", req.ID, j, pred.Mean[j], field.Mean[j])
			}
		}
		for k, kind := range kinds {
			if k >= len(field.StdDevs) || field.StdDevs[k].Kind != kind {
				p.errorf("scenario %s: stddev kind order mismatch at %d", req.ID, k)
				break
			}
			for j := range pred.StdDevs[k] {
				if math.Abs(pred.StdDevs[k][j]-field.StdDevs[k].Values[j]) > 1e-9 {
					p.errorf("scenario %s site %d: %s stddev mismatch", req.ID, j, kind)
				}
			}
		}
	}

	return p, nil
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
