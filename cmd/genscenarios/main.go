// Command genscenarios generates deterministic scenario-request and
// ground-motion-field fixtures over a magnitude/distance grid. It runs the
// actual prediction package so the fixture fields match real pipeline output.
//
// Usage:
//
//	go run ./cmd/genscenarios \
//	  -scenarios-out data/mock/vrancea_scenarios.json \
//	  -fields-out data/mock/vrancea_fields.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/seismolab/vrancea-gmm/internal/gmm"
)

var (
	gridMags   = []float64{6.0, 6.5, 7.0, 7.5, 8.0}
	gridRhypos = []float64{40, 80, 120, 180, 250}
	gridDepths = []float64{80, 110, 150}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	scenariosOut := flag.String("scenarios-out", "", "output path for scenario request fixture")
	fieldsOut := flag.String("fields-out", "", "output path for computed ground-motion field fixture")
	flag.Parse()

	if *scenariosOut == "" || *fieldsOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -scenarios-out, -fields-out")
	}

	// Fix the clock for reproducible ComputedAt timestamps.
	gmm.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC),
	))
	defer gmm.SetClock(nil)

	scenarios, fields, err := generateGrid()
	if err != nil {
		return err
	}

	log.Printf("generated %d scenarios", len(scenarios))

	if err := writeJSON(*scenariosOut, scenarios); err != nil {
		return fmt.Errorf("writing scenario fixture: %w", err)
	}
	log.Printf("wrote scenario fixture: %s", *scenariosOut)

	if err := writeJSON(*fieldsOut, fields); err != nil {
		return fmt.Errorf("writing field fixture: %w", err)
	}
	log.Printf("wrote field fixture: %s", *fieldsOut)

	printStats(fields)
	return nil
}

// generateGrid sweeps magnitude, distance, and depth over every supported
// period plus PGA, pairing each scenario with its computed field.
func generateGrid() ([]gmm.ScenarioRequest, []gmm.HazardResult, error) {
	imts := []gmm.IMT{gmm.PGA()}
	for _, p := range gmm.SupportedPeriods() {
		imts = append(imts, gmm.SA(p))
	}

	var scenarios []gmm.ScenarioRequest
	var fields []gmm.HazardResult

	n := 0
	for _, imt := range imts {
		for _, mag := range gridMags {
			for _, depth := range gridDepths {
				req := gmm.ScenarioRequest{
					ID:          fmt.Sprintf("scn-grid-%04d", n),
					IMT:         string(imt.Type),
					Period:      imt.Period,
					Mag:         mag,
					HypoDepth:   depth,
					StdDevKinds: []string{"total", "inter_event", "intra_event"},
				}
				for i, r := range gridRhypos {
					req.Sites = append(req.Sites, gmm.ScenarioSite{
						ID:      fmt.Sprintf("site-%d", i),
						Vs30:    400,
						Backarc: i%2 == 1,
						Rhypo:   r,
					})
				}
				n++

				parsedIMT, rup, sites, dists, kinds, err := req.Inputs()
				if err != nil {
					return nil, nil, fmt.Errorf("scenario %s: %w", req.ID, err)
				}
				pred, err := gmm.Predict(parsedIMT, rup, sites, dists, kinds)
				if err != nil {
					return nil, nil, fmt.Errorf("predict %s: %w", req.ID, err)
				}

				scenarios = append(scenarios, req)
				fields = append(fields, gmm.NewHazardResult(req, pred, kinds, gmm.Vs30SourceMessage))
			}
		}
	}

	return scenarios, fields, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(fields []gmm.HazardResult) {
	byIMT := map[string]int{}
	maxMean, minMean := math.Inf(-1), math.Inf(1)
	for i := range fields {
		f := &fields[i]
		byIMT[f.IMT]++
		for _, m := range f.Mean {
			maxMean = math.Max(maxMean, m)
			minMean = math.Min(minMean, m)
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total fields: %d\n", len(fields))
	fmt.Printf("By IMT: PGA=%d, SA=%d\n", byIMT["PGA"], byIMT["SA"])
	fmt.Printf("Mean ln-intensity range: [%.4f, %.4f]\n", minMean, maxMean)
}
