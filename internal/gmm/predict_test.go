package gmm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRupture() Rupture {
	return Rupture{Mag: 7.2, HypoDepth: 110}
}

func testSites(n int) (Sites, Distances) {
	sites := Sites{Vs30: make([]float64, n), Backarc: make([]bool, n)}
	dists := Distances{Rhypo: make([]float64, n)}
	for i := 0; i < n; i++ {
		sites.Vs30[i] = 300 + 50*float64(i)
		sites.Backarc[i] = i%2 == 1
		dists.Rhypo[i] = 40 + 10*float64(i)
	}
	return sites, dists
}

func TestPredict_OutputLengths(t *testing.T) {
	sites, dists := testSites(5)
	kinds := []StdDevKind{StdDevTotal, StdDevInterEvent, StdDevIntraEvent}

	for _, imt := range []IMT{PGA(), SA(0.2), SA(4.0)} {
		pred, err := Predict(imt, testRupture(), sites, dists, kinds)
		require.NoError(t, err, "%s", imt)

		assert.Len(t, pred.Mean, 5)
		require.Len(t, pred.StdDevs, 3)
		for i, arr := range pred.StdDevs {
			assert.Len(t, arr, 5, "stddev array %d", i)
		}
	}
}

func TestPredict_ReferenceScenario(t *testing.T) {
	// PGA, M6, depth 100 km, one fore-arc site with Vs30 400 (class B,
	// clipping leaves it unchanged), rhypo 50 km. Term values from the
	// period-0.0 coefficient row.
	sites := Sites{Vs30: []float64{400}, Backarc: []bool{false}}
	dists := Distances{Rhypo: []float64{50}}
	rup := Rupture{Mag: 6.0, HypoDepth: 100}

	pred, err := Predict(PGA(), rup, sites, dists, []StdDevKind{StdDevTotal})
	require.NoError(t, err)

	magnitude := 9.6231 // c1, quadratic vanishes at M6
	distance := -1.1316*math.Log(50) - 0.0024*50
	depth := -0.0007 * 100
	site := -0.0835 // c8, class B

	require.Len(t, pred.Mean, 1)
	assert.InDelta(t, magnitude+distance+depth+site, pred.Mean[0], 1e-12)

	require.Len(t, pred.StdDevs, 1)
	assert.Equal(t, []float64{0.698}, pred.StdDevs[0])
}

func TestPredict_StdDevSelection(t *testing.T) {
	sites, dists := testSites(3)
	c, err := LookupCoeffs(SA(0.5))
	require.NoError(t, err)

	tests := []struct {
		name  string
		kinds []StdDevKind
		want  []float64
	}{
		{"total only", []StdDevKind{StdDevTotal}, []float64{c.SigmaT}},
		{"inter then intra", []StdDevKind{StdDevInterEvent, StdDevIntraEvent}, []float64{c.Tau, c.Sigma}},
		{"request order preserved", []StdDevKind{StdDevIntraEvent, StdDevTotal, StdDevInterEvent}, []float64{c.Sigma, c.SigmaT, c.Tau}},
		{"none requested", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := Predict(SA(0.5), testRupture(), sites, dists, tt.kinds)
			require.NoError(t, err)

			require.Len(t, pred.StdDevs, len(tt.want))
			for i, v := range tt.want {
				assert.Equal(t, []float64{v, v, v}, pred.StdDevs[i])
			}
		})
	}
}

func TestPredict_UnsupportedStdDevKind(t *testing.T) {
	sites, dists := testSites(2)

	_, err := Predict(PGA(), testRupture(), sites, dists, []StdDevKind{StdDevTotal, "geometric"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedStdDev)
}

func TestPredict_UnsupportedIMT(t *testing.T) {
	sites, dists := testSites(1)

	_, err := Predict(SA(0.25), testRupture(), sites, dists, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedIMT)
}

func TestPredict_MismatchedArrayLengths(t *testing.T) {
	tests := []struct {
		name  string
		sites Sites
		dists Distances
	}{
		{
			"short vs30",
			Sites{Vs30: []float64{400}, Backarc: []bool{false, true}},
			Distances{Rhypo: []float64{50, 60}},
		},
		{
			"short backarc",
			Sites{Vs30: []float64{400, 500}, Backarc: []bool{false}},
			Distances{Rhypo: []float64{50, 60}},
		},
		{
			"short rhypo",
			Sites{Vs30: []float64{400, 500}, Backarc: []bool{false, true}},
			Distances{Rhypo: []float64{50}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Predict(PGA(), testRupture(), tt.sites, tt.dists, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMismatchedLengths)
		})
	}
}

func TestPredict_InvalidDistance(t *testing.T) {
	sites := Sites{Vs30: []float64{400, 500}, Backarc: []bool{false, false}}

	for _, bad := range []float64{0, -10} {
		dists := Distances{Rhypo: []float64{50, bad}}
		_, err := Predict(PGA(), testRupture(), sites, dists, nil)
		require.Error(t, err, "rhypo=%g", bad)
		assert.ErrorIs(t, err, ErrInvalidDistance)
	}
}

func TestSiteResponseTerm_Classification(t *testing.T) {
	c, err := LookupCoeffs(PGA())
	require.NoError(t, err)

	tests := []struct {
		name string
		vs30 float64
		want float64
	}{
		{"below floor clips to class C", 100, c.C9},
		{"class C lower bound", 180, c.C9},
		{"class C interior", 250, c.C9},
		{"B/C boundary is class C", 360, c.C9},
		{"just above boundary is class B", 360.01, c.C8},
		{"class B interior", 400, c.C8},
		{"class B upper bound", 800, c.C8},
		{"above ceiling clips to class B", 1200, c.C8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, siteResponseTerm(c, tt.vs30))
		})
	}
}

func TestPredict_ClassificationIsPerSite(t *testing.T) {
	// Mixed-class batch: a scalar class decision would give every site the
	// same site term.
	sites := Sites{Vs30: []float64{200, 700}, Backarc: []bool{false, false}}
	dists := Distances{Rhypo: []float64{50, 50}}

	pred, err := Predict(PGA(), testRupture(), sites, dists, nil)
	require.NoError(t, err)

	c, _ := LookupCoeffs(PGA())
	assert.InDelta(t, c.C9-c.C8, pred.Mean[0]-pred.Mean[1], 1e-12)
}

func TestPredict_BackarcSplitIsPerSite(t *testing.T) {
	sites := Sites{Vs30: []float64{400, 400, 400}, Backarc: []bool{false, false, false}}
	dists := Distances{Rhypo: []float64{30, 60, 90}}
	rup := testRupture()

	base, err := Predict(SA(1.0), rup, sites, dists, nil)
	require.NoError(t, err)

	// Flip only the middle site to back-arc.
	sites.Backarc[1] = true
	flipped, err := Predict(SA(1.0), rup, sites, dists, nil)
	require.NoError(t, err)

	c, _ := LookupCoeffs(SA(1.0))
	assert.Equal(t, base.Mean[0], flipped.Mean[0], "fore-arc site 0 unchanged")
	assert.Equal(t, base.Mean[2], flipped.Mean[2], "fore-arc site 2 unchanged")
	assert.InDelta(t, (c.C5-c.C6)*60, flipped.Mean[1]-base.Mean[1], 1e-12)
}

func TestMagnitudeTerm_QuadraticScaling(t *testing.T) {
	c, err := LookupCoeffs(SA(0.4))
	require.NoError(t, err)

	for _, dm := range []float64{-1.5, -0.5, 0, 0.7, 1.3, 2} {
		got := magnitudeTerm(c, 6+dm)
		assert.InDelta(t, c.C1+c.C2*dm+c.C3*dm*dm, got, 1e-12, "dm=%g", dm)
	}
}

func TestDistanceArcTerm_Scaling(t *testing.T) {
	c, err := LookupCoeffs(PGA())
	require.NoError(t, err)

	t.Run("doubling distance shifts log sub-term by c4*ln2", func(t *testing.T) {
		r := 45.0
		diff := distanceArcTerm(c, 2*r, false) - distanceArcTerm(c, r, false)
		assert.InDelta(t, c.C4*math.Ln2+c.C6*r, diff, 1e-12)
	})

	t.Run("back-arc uses c5 slope", func(t *testing.T) {
		r := 80.0
		assert.InDelta(t, (c.C5-c.C6)*r, distanceArcTerm(c, r, true)-distanceArcTerm(c, r, false), 1e-12)
	})
}

func TestPredict_Deterministic(t *testing.T) {
	sites, dists := testSites(4)
	kinds := []StdDevKind{StdDevTotal, StdDevIntraEvent}

	a, err := Predict(SA(2.0), testRupture(), sites, dists, kinds)
	require.NoError(t, err)
	b, err := Predict(SA(2.0), testRupture(), sites, dists, kinds)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
