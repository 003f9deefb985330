package gmm

import (
	"context"
	"fmt"
	"log/slog"
)

// Vs30Result is a site velocity returned by a site-conditions provider.
type Vs30Result struct {
	Vs30   float64 // m/s
	Source string  // where the value came from, see the Vs30Source labels
}

// SiteConditionsProvider resolves Vs30 for a coordinate. Implementations
// live in the adapter layer.
type SiteConditionsProvider interface {
	Vs30(ctx context.Context, lat, lon float64) (Vs30Result, error)
}

// Vs30 source labels recorded on results.
const (
	Vs30SourceMessage  = "message"
	Vs30SourceProvider = "provider"
	Vs30SourceMixed    = "mixed"
)

// EnrichWithSiteConditions fills in missing site velocities from an external
// provider. Unlike optional enrichments, vs30 is a required model input, so
// a provider failure or a missing-coordinate site fails the whole scenario.
// Returns the enriched request and the vs30 source label for the result.
func EnrichWithSiteConditions(ctx context.Context, req ScenarioRequest, provider SiteConditionsProvider, logger *slog.Logger) (ScenarioRequest, string, error) {
	missing := req.MissingVs30()
	if len(missing) == 0 {
		return req, Vs30SourceMessage, nil
	}
	if provider == nil {
		return req, "", fmt.Errorf("scenario %s: %d sites lack vs30 and no site-conditions provider is configured",
			req.ID, len(missing))
	}

	for _, i := range missing {
		site := req.Sites[i]
		if site.Lat == 0 && site.Lon == 0 {
			return req, "", fmt.Errorf("scenario %s: site %d lacks both vs30 and coordinates", req.ID, i)
		}

		result, err := provider.Vs30(ctx, site.Lat, site.Lon)
		if err != nil {
			logger.Warn("site-conditions lookup failed",
				"scenario_id", req.ID,
				"site", i,
				"lat", site.Lat,
				"lon", site.Lon,
				"error", err,
			)
			return req, "", fmt.Errorf("scenario %s: site %d vs30 lookup: %w", req.ID, i, err)
		}
		if result.Vs30 <= 0 {
			return req, "", fmt.Errorf("scenario %s: site %d: provider returned vs30=%g", req.ID, i, result.Vs30)
		}
		req.Sites[i].Vs30 = result.Vs30
	}

	if len(missing) == len(req.Sites) {
		return req, Vs30SourceProvider, nil
	}
	return req, Vs30SourceMixed, nil
}
