package gmm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCoeffs_PGA(t *testing.T) {
	c, err := LookupCoeffs(PGA())
	require.NoError(t, err)

	assert.Equal(t, 9.6231, c.C1)
	assert.Equal(t, 1.4232, c.C2)
	// Negative values exercise the U+2212 glyph normalization; a missed
	// glyph would fail the parse or flip a sign.
	assert.Equal(t, -0.1555, c.C3)
	assert.Equal(t, -1.1316, c.C4)
	assert.Equal(t, -0.0114, c.C5)
	assert.Equal(t, -0.0024, c.C6)
	assert.Equal(t, -0.0007, c.C7)
	assert.Equal(t, -0.0835, c.C8)
	assert.Equal(t, 0.1589, c.C9)
	assert.Equal(t, 0.0488, c.C10)
	assert.Equal(t, 0.698, c.SigmaT)
	assert.Equal(t, 0.406, c.Tau)
	assert.Equal(t, 0.568, c.Sigma)
}

func TestLookupCoeffs_SpectralRows(t *testing.T) {
	tests := []struct {
		period float64
		c1     float64
		c10    float64
		sigmaT float64
	}{
		{0.1, 9.6981, 0.0020, 0.806},
		{0.3, 10.7033, 0.0991, 0.783},
		{0.8, 9.0835, -0.1019, 0.726},
		{2.5, 4.4248, -0.0177, 0.750},
		{4.0, 4.4928, -0.1428, 0.792},
	}

	for _, tt := range tests {
		c, err := LookupCoeffs(SA(tt.period))
		require.NoError(t, err, "period %g", tt.period)
		assert.Equal(t, tt.c1, c.C1, "c1 at %g s", tt.period)
		assert.Equal(t, tt.c10, c.C10, "c10 at %g s", tt.period)
		assert.Equal(t, tt.sigmaT, c.SigmaT, "sigma_t at %g s", tt.period)
	}
}

func TestLookupCoeffs_TotalOverDeclaredSet(t *testing.T) {
	periods := SupportedPeriods()
	require.Len(t, periods, 19)
	assert.Equal(t, 0.1, periods[0])
	assert.Equal(t, 4.0, periods[len(periods)-1])

	for _, p := range periods {
		c, err := LookupCoeffs(SA(p))
		require.NoError(t, err, "period %g", p)
		assert.False(t, math.IsNaN(c.C1), "period %g", p)
	}
}

func TestLookupCoeffs_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		imt  IMT
	}{
		{"untabulated period", SA(0.15)},
		{"SA at zero is not PGA", SA(0)},
		{"interpolation candidate", SA(1.1)},
		{"beyond table", SA(5.0)},
		{"unknown type", IMT{Type: "PGV"}},
		{"zero value", IMT{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LookupCoeffs(tt.imt)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedIMT)
		})
	}
}

func TestLookupCoeffs_Deterministic(t *testing.T) {
	a, err := LookupCoeffs(SA(1.0))
	require.NoError(t, err)
	b, err := LookupCoeffs(SA(1.0))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSigmaDecomposition(t *testing.T) {
	// Well-formed rows satisfy sigma_t² ≈ tau² + sigma². The published
	// values are rounded to three decimals, so the tolerance is loose.
	for imt, c := range coeffs {
		assert.InDelta(t, c.SigmaT*c.SigmaT, c.Tau*c.Tau+c.Sigma*c.Sigma, 0.005, "%s", imt)
	}
}

func TestParseCoeffsTable_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		table string
	}{
		{"wrong column count", "0.0 1.0 2.0"},
		{"non-numeric value", "0.0 a 1 1 1 1 1 1 1 1 1 1 1 1"},
		{"wrong row count", "0.0 1 1 1 1 1 1 1 1 1 1 1 1 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Panics(t, func() { mustParseCoeffsTable(tt.table) })
		})
	}
}
