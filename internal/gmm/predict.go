package gmm

import (
	"fmt"
	"math"
)

// Vs30 clipping bounds for the EN 1998-1 site classes used by the model.
const (
	vs30Floor   = 180.0 // class C lower bound, m/s
	vs30Ceiling = 800.0 // class B upper bound, m/s
	vs30ClassBC = 360.0 // B/C boundary, m/s
)

// Rupture describes one earthquake source, shared by all sites in a call.
type Rupture struct {
	Mag       float64 // moment magnitude
	HypoDepth float64 // hypocentral depth, km
}

// Sites holds the per-site observation parameters. Backarc marks sites on
// the back-arc side of the subduction interface; false means fore-arc or
// unknown.
type Sites struct {
	Vs30    []float64 // shear-wave velocity, m/s
	Backarc []bool
}

// Distances holds the per-site hypocentral distances in km. All values must
// be strictly positive.
type Distances struct {
	Rhypo []float64
}

// Prediction is the model output: the natural-log mean intensity per site
// and one standard-deviation array per requested kind, in request order.
// Standard deviations do not vary by site; they are broadcast to the site
// count for the caller's convenience.
type Prediction struct {
	Mean    []float64
	StdDevs [][]float64
}

// Predict evaluates the ground-motion model for one rupture over a batch of
// sites. It fails fast on any precondition violation and never returns
// partial results.
func Predict(imt IMT, rup Rupture, sites Sites, dists Distances, kinds []StdDevKind) (Prediction, error) {
	c, err := LookupCoeffs(imt)
	if err != nil {
		return Prediction{}, err
	}

	// Validate the requested kinds before any computation so an unsupported
	// kind can never yield a value.
	for _, k := range kinds {
		switch k {
		case StdDevTotal, StdDevInterEvent, StdDevIntraEvent:
		default:
			return Prediction{}, fmt.Errorf("%q: %w", k, ErrUnsupportedStdDev)
		}
	}

	n := len(dists.Rhypo)
	if len(sites.Vs30) != n || len(sites.Backarc) != n {
		return Prediction{}, fmt.Errorf("vs30=%d backarc=%d rhypo=%d: %w",
			len(sites.Vs30), len(sites.Backarc), n, ErrMismatchedLengths)
	}
	for i, r := range dists.Rhypo {
		if r <= 0 {
			return Prediction{}, fmt.Errorf("rhypo[%d]=%g: %w", i, r, ErrInvalidDistance)
		}
	}

	magTerm := magnitudeTerm(c, rup.Mag)
	depthTerm := focalDepthTerm(c, rup.HypoDepth)

	mean := make([]float64, n)
	for i := 0; i < n; i++ {
		mean[i] = magTerm +
			distanceArcTerm(c, dists.Rhypo[i], sites.Backarc[i]) +
			depthTerm +
			siteResponseTerm(c, sites.Vs30[i])
	}

	stddevs := make([][]float64, 0, len(kinds))
	for _, k := range kinds {
		var v float64
		switch k {
		case StdDevTotal:
			v = c.SigmaT
		case StdDevInterEvent:
			v = c.Tau
		case StdDevIntraEvent:
			v = c.Sigma
		}
		arr := make([]float64, n)
		for i := range arr {
			arr[i] = v
		}
		stddevs = append(stddevs, arr)
	}

	return Prediction{Mean: mean, StdDevs: stddevs}, nil
}

// magnitudeTerm is the quadratic magnitude scaling, centered at M6.
func magnitudeTerm(c Coeffs, mag float64) float64 {
	dm := mag - 6
	return c.C1 + c.C2*dm + c.C3*dm*dm
}

// distanceArcTerm combines logarithmic geometric spreading with linear
// anelastic attenuation whose slope depends on which side of the arc the
// site sits: c5 for back-arc, c6 for fore-arc or unknown.
func distanceArcTerm(c Coeffs, rhypo float64, backarc bool) float64 {
	slope := c.C6
	if backarc {
		slope = c.C5
	}
	return c.C4*math.Log(rhypo) + slope*rhypo
}

func focalDepthTerm(c Coeffs, hypoDepth float64) float64 {
	return c.C7 * hypoDepth
}

// siteResponseTerm scales by EN 1998-1 site class, derived from Vs30 clipped
// to [180, 800] m/s. The classification only ever assigns class B or C; the
// class S column (c10) exists in the published table but is never selected,
// and that is kept as-is.
func siteResponseTerm(c Coeffs, vs30 float64) float64 {
	var siteB, siteC, siteS float64

	vsStar := vs30
	if vsStar > vs30Ceiling {
		vsStar = vs30Ceiling
	}
	if vsStar < vs30Floor {
		vsStar = vs30Floor
	}

	if vsStar <= vs30ClassBC {
		siteC = 1
	} else {
		siteB = 1
	}

	return c.C8*siteB + c.C9*siteC + c.C10*siteS
}
