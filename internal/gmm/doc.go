// Package gmm implements the Vacareanu et al. (2015) fore-arc / back-arc
// ground-motion model for the Vrancea intermediate-depth seismic source,
// published as "Fore-Arc and Back-Arc Ground Motion Model for Vrancea
// Intermediate Depth Seismic Source" (Journal of Earthquake Engineering, 2015).
//
// # Functional form
//
// The natural-log mean intensity is the sum of four terms evaluated from one
// row of period-dependent coefficients (Table 4 of the paper):
//
//	magnitude:  c1 + c2·(M−6) + c3·(M−6)²
//	distance:   c4·ln(Rhypo) + c5·backarc·Rhypo + c6·(1−backarc)·Rhypo
//	depth:      c7·Hdepth
//	site:       c8·siteB + c9·siteC + c10·siteS
//
// The distance term is the model's signature feature: anelastic attenuation
// differs between the fore-arc and back-arc sides of the subduction
// interface, so the linear slope (c5 or c6) is chosen per site from the
// backarc indicator. Unknown sites count as fore-arc.
//
// # Site classification
//
// Site classes follow EN 1998-1, derived from Vs30 clipped to [180, 800] m/s:
// clipped values at or below 360 m/s are class C, everything above is class
// B. The published coefficient table also carries a class S column (c10); the
// paper's classification never assigns class S, and that behavior is kept
// as-is rather than inventing a third condition.
//
// # Coefficient table
//
// The table ships as embedded text transcribed from the paper. The source
// typography uses U+2212 MINUS SIGN for negative values; the parser
// normalizes it to ASCII before numeric conversion, since a stray glyph
// would otherwise silently produce parse failures or wrong-sign
// coefficients. Period 0.0 indexes PGA; spectral acceleration is tabulated
// at 19 discrete periods from 0.1 s to 4.0 s. No interpolation is performed
// for untabulated periods: that is the calling framework's responsibility,
// and an untabulated request is a lookup failure.
//
// # Standard deviations
//
// Three dispersion values accompany each row: sigma_t (total), tau
// (inter-event), and sigma (intra-event), with sigma_t² ≈ tau² + sigma² in
// well-formed data. Callers request any subset; values are site-invariant
// and broadcast to the site count.
//
// # Scenario messages
//
// The model runs inside a hazard pipeline that delivers rupture scenarios as
// JSON messages. Scenario IDs are deterministic SHA-256 hashes of the key
// fields, so replaying the same scenario produces the same ID downstream.
// See [ParseScenario] and [SerializeResult].
//
// Everything in this package is immutable after init and safe for
// concurrent use; Predict is a pure function of its inputs.
package gmm
