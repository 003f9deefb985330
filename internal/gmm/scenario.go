package gmm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// RawScenario represents an unprocessed message from the scenario topic.
type RawScenario struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ScenarioSite is one observation site within a scenario request. Vs30 may
// be omitted when coordinates are present; the pipeline can then fill it
// from a site-conditions provider.
type ScenarioSite struct {
	ID      string  `json:"id,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lon     float64 `json:"lon,omitempty"`
	Vs30    float64 `json:"vs30,omitempty"` // m/s
	Backarc bool    `json:"backarc"`
	Rhypo   float64 `json:"rhypo"` // hypocentral distance, km
}

// ScenarioRequest is the deserialized form of a rupture-scenario message
// requesting a ground-motion field.
type ScenarioRequest struct {
	ID          string         `json:"id,omitempty"`
	IMT         string         `json:"imt"`              // "PGA" or "SA"
	Period      float64        `json:"period,omitempty"` // seconds, SA only
	Mag         float64        `json:"mag"`
	HypoDepth   float64        `json:"hypo_depth"` // km
	Sites       []ScenarioSite `json:"sites"`
	StdDevKinds []string       `json:"stddev_kinds,omitempty"`
}

// ParseScenario deserializes a raw scenario message. Missing IDs are filled
// with a deterministic hash of the key fields so replays produce the same
// result ID downstream. Model preconditions are checked later by Predict.
func ParseScenario(raw RawScenario) (ScenarioRequest, error) {
	var req ScenarioRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return ScenarioRequest{}, fmt.Errorf("parse scenario: %w", err)
	}
	if len(req.Sites) == 0 {
		return ScenarioRequest{}, fmt.Errorf("parse scenario: no sites")
	}
	if req.ID == "" {
		req.ID = generateScenarioID(req)
	}
	return req, nil
}

// MissingVs30 returns the indices of sites that need site-conditions
// enrichment before the model can run.
func (s ScenarioRequest) MissingVs30() []int {
	var idx []int
	for i, site := range s.Sites {
		if site.Vs30 <= 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// Inputs converts the wire-form request into model inputs. It rejects
// unknown IMT types and stddev kinds and sites still lacking vs30; array
// length and distance positivity stay with Predict.
func (s ScenarioRequest) Inputs() (IMT, Rupture, Sites, Distances, []StdDevKind, error) {
	imt, err := ParseIMT(s.IMT, s.Period)
	if err != nil {
		return IMT{}, Rupture{}, Sites{}, Distances{}, nil, err
	}

	kinds := make([]StdDevKind, 0, len(s.StdDevKinds))
	for _, k := range s.StdDevKinds {
		kind, err := ParseStdDevKind(k)
		if err != nil {
			return IMT{}, Rupture{}, Sites{}, Distances{}, nil, err
		}
		kinds = append(kinds, kind)
	}

	sites := Sites{
		Vs30:    make([]float64, len(s.Sites)),
		Backarc: make([]bool, len(s.Sites)),
	}
	dists := Distances{Rhypo: make([]float64, len(s.Sites))}
	for i, site := range s.Sites {
		if site.Vs30 <= 0 {
			return IMT{}, Rupture{}, Sites{}, Distances{}, nil,
				fmt.Errorf("site %d: vs30 not set and not enriched", i)
		}
		sites.Vs30[i] = site.Vs30
		sites.Backarc[i] = site.Backarc
		dists.Rhypo[i] = site.Rhypo
	}

	rup := Rupture{Mag: s.Mag, HypoDepth: s.HypoDepth}
	return imt, rup, sites, dists, kinds, nil
}

// generateScenarioID produces a deterministic ID from the scenario's key
// fields, so reprocessing the same message yields the same ID.
func generateScenarioID(req ScenarioRequest) string {
	input := fmt.Sprintf("%s|%g|%g|%g|%d", req.IMT, req.Period, req.Mag, req.HypoDepth, len(req.Sites))
	for _, s := range req.Sites {
		input += fmt.Sprintf("|%g,%g,%g,%t,%g", s.Lat, s.Lon, s.Vs30, s.Backarc, s.Rhypo)
	}
	hash := sha256.Sum256([]byte(input))
	return "scn-" + hex.EncodeToString(hash[:8])
}
