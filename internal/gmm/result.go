package gmm

import (
	"encoding/json"
	"fmt"
	"time"
)

// StdDevArray is one requested standard-deviation kind with its per-site
// values, preserving request order in the serialized result.
type StdDevArray struct {
	Kind   StdDevKind `json:"kind"`
	Values []float64  `json:"values"`
}

// HazardResult is a computed ground-motion field for one scenario: the
// natural-log mean per site plus the requested dispersions.
type HazardResult struct {
	ScenarioID string  `json:"scenario_id"`
	IMT        string  `json:"imt"`
	Period     float64 `json:"period,omitempty"`

	SiteIDs []string      `json:"site_ids,omitempty"`
	Mean    []float64     `json:"mean"` // ln intensity units
	StdDevs []StdDevArray `json:"stddevs,omitempty"`

	// Vs30Source records where the site velocities came from:
	// "message", "provider", or "mixed".
	Vs30Source string `json:"vs30_source,omitempty"`

	ComputedAt time.Time `json:"computed_at"`

	RawPayload []byte `json:"-"`
}

// OutputMessage is the serialized form destined for the sink topic.
type OutputMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// NewHazardResult assembles a result from a scenario and its prediction,
// stamping ComputedAt from the package clock.
func NewHazardResult(req ScenarioRequest, pred Prediction, kinds []StdDevKind, vs30Source string) HazardResult {
	stddevs := make([]StdDevArray, 0, len(kinds))
	for i, k := range kinds {
		stddevs = append(stddevs, StdDevArray{Kind: k, Values: pred.StdDevs[i]})
	}

	var siteIDs []string
	for _, s := range req.Sites {
		if s.ID != "" {
			siteIDs = append(siteIDs, s.ID)
		}
	}
	if len(siteIDs) != len(req.Sites) {
		siteIDs = nil // only attach IDs when every site carries one
	}

	return HazardResult{
		ScenarioID: req.ID,
		IMT:        req.IMT,
		Period:     req.Period,
		SiteIDs:    siteIDs,
		Mean:       pred.Mean,
		StdDevs:    stddevs,
		Vs30Source: vs30Source,
		ComputedAt: clock.Now(),
	}
}

// SerializeResult marshals a HazardResult into a keyed output message.
func SerializeResult(result HazardResult) (OutputMessage, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return OutputMessage{}, fmt.Errorf("serialize hazard result: %w", err)
	}
	return OutputMessage{
		Key:   []byte(result.ScenarioID),
		Value: data,
		Headers: map[string]string{
			"imt":         result.IMT,
			"computed_at": result.ComputedAt.Format(time.RFC3339),
		},
	}, nil
}
