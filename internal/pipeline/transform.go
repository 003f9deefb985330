package pipeline

import (
	"context"
	"log/slog"

	"github.com/seismolab/vrancea-gmm/internal/gmm"
)

// ScenarioTransformer implements Transformer: parse a scenario, fill in
// missing site conditions, run the ground-motion model, serialize the field.
type ScenarioTransformer struct {
	provider gmm.SiteConditionsProvider
	logger   *slog.Logger
}

// NewTransformer creates a ScenarioTransformer. Pass a nil provider to
// disable Vs30 enrichment; scenarios must then carry vs30 for every site.
func NewTransformer(provider gmm.SiteConditionsProvider, logger *slog.Logger) *ScenarioTransformer {
	return &ScenarioTransformer{
		provider: provider,
		logger:   logger,
	}
}

func (t *ScenarioTransformer) Transform(ctx context.Context, raw gmm.RawScenario) (gmm.OutputMessage, error) {
	req, err := gmm.ParseScenario(raw)
	if err != nil {
		return gmm.OutputMessage{}, err
	}

	req, vs30Source, err := gmm.EnrichWithSiteConditions(ctx, req, t.provider, t.logger)
	if err != nil {
		return gmm.OutputMessage{}, err
	}

	imt, rup, sites, dists, kinds, err := req.Inputs()
	if err != nil {
		return gmm.OutputMessage{}, err
	}

	pred, err := gmm.Predict(imt, rup, sites, dists, kinds)
	if err != nil {
		return gmm.OutputMessage{}, err
	}

	result := gmm.NewHazardResult(req, pred, kinds, vs30Source)
	result.RawPayload = raw.Value
	return gmm.SerializeResult(result)
}
