package gmm

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Coeffs is one row of the period-dependent coefficient table: ten
// regression coefficients and the three dispersion values from Table 4.
type Coeffs struct {
	C1, C2, C3, C4, C5, C6, C7, C8, C9, C10 float64

	SigmaT float64 // total
	Tau    float64 // inter-event
	Sigma  float64 // intra-event
}

// coeffsTable is the published Table 4, transcribed verbatim. Period 0.0 is
// PGA. The transcription keeps the paper's U+2212 minus glyphs; see
// parseCoeffsTable.
const coeffsTable = `
imt      c1     c2      c3      c4      c5      c6      c7      c8     c9     c10 sigma_t   tau sigma
0.0  9.6231 1.4232 −0.1555 −1.1316 −0.0114 −0.0024 −0.0007 −0.0835 0.1589  0.0488   0.698 0.406 0.568
0.1  9.6981 1.3679 −0.1423 −0.9889 −0.0135 −0.0026 −0.0017 −0.1965 0.1670  0.0020   0.806 0.468 0.656
0.2 10.0090 1.3620 −0.1138 −1.0371 −0.0127 −0.0032 −0.0004 −0.1547 0.2861  0.0860   0.792 0.469 0.638
0.3 10.7033 1.4580 −0.1187 −1.2340 −0.0106 −0.0026  0.0000 −0.1014 0.2659  0.0991   0.783 0.480 0.619
0.4 10.7701 1.5748 −0.1439 −1.3207 −0.0093 −0.0022  0.0005 −0.1076 0.3062  0.1183   0.810 0.519 0.622
0.5  9.2327 1.6739 −0.1664 −1.0022 −0.0100 −0.0041  0.0007 −0.0259 0.2576  0.0722   0.767 0.461 0.613
0.6  8.6445 1.7672 −0.1925 −0.8938 −0.0099 −0.0045 −0.0004 −0.1038 0.2181  0.0179   0.740 0.429 0.603
0.7  8.7134 1.8500 −0.1990 −0.9780 −0.0088 −0.0039  0.0002 −0.1867 0.1564  0.0006   0.735 0.426 0.599
0.8  9.0835 1.9066 −0.2022 −1.1044 −0.0078 −0.0031  0.0005 −0.2901 0.0546 −0.1019   0.726 0.417 0.594
0.9  9.1274 1.9662 −0.2465 −1.1437 −0.0074 −0.0031  0.0001 −0.2804 0.0884 −0.0790   0.719 0.403 0.596
1.0  8.9987 1.9964 −0.2658 −1.1226 −0.0071 −0.0031 −0.0009 −0.2992 0.0739 −0.0955   0.715 0.400 0.592
1.2  8.0465 2.0432 −0.2241 −0.9654 −0.0072 −0.0041 −0.0013 −0.2681 0.1476 −0.0412   0.713 0.392 0.595
1.4  7.0585 2.1148 −0.2167 −0.8011 −0.0078 −0.0049 −0.0013 −0.2566 0.2009 −0.0068   0.714 0.392 0.597
1.6  6.8329 2.1668 −0.2418 −0.8036 −0.0075 −0.0047 −0.0018 −0.2268 0.2272  0.0211   0.732 0.418 0.601
1.8  6.4292 2.1988 −0.2468 −0.7625 −0.0073 −0.0047 −0.0020 −0.2464 0.2200  0.0082   0.745 0.427 0.611
2.0  6.3876 2.2151 −0.2289 −0.8004 −0.0066 −0.0043 −0.0024 −0.2767 0.2134 −0.0091   0.744 0.425 0.611
2.5  4.4248 2.2541 −0.2144 −0.4280 −0.0079 −0.0061 −0.0031 −0.2924 0.2108 −0.0177   0.750 0.420 0.622
3.0  4.5395 2.2812 −0.2256 −0.5340 −0.0072 −0.0054 −0.0034 −0.3066 0.1840 −0.0387   0.765 0.436 0.629
3.5  4.7407 2.2803 −0.2456 −0.6250 −0.0065 −0.0045 −0.0041 −0.3728 0.0918 −0.1192   0.778 0.436 0.645
4.0  4.4928 2.2796 −0.2580 −0.6215 −0.0062 −0.0041 −0.0048 −0.3763 0.0512 −0.1428   0.792 0.443 0.657
`

// coeffs maps each supported intensity measure to its row. Built once at
// package init and never mutated, so lookups need no locking.
var coeffs = mustParseCoeffsTable(coeffsTable)

// LookupCoeffs resolves the coefficient row for an intensity measure.
// Unsupported types and untabulated SA periods fail with ErrUnsupportedIMT;
// no interpolation is attempted.
func LookupCoeffs(imt IMT) (Coeffs, error) {
	c, ok := coeffs[imt]
	if !ok {
		return Coeffs{}, fmt.Errorf("%s: %w", imt, ErrUnsupportedIMT)
	}
	return c, nil
}

// SupportedPeriods returns the tabulated SA periods in ascending order.
func SupportedPeriods() []float64 {
	periods := make([]float64, 0, len(coeffs)-1)
	for imt := range coeffs {
		if imt.Type == TypeSA {
			periods = append(periods, imt.Period)
		}
	}
	sort.Float64s(periods)
	return periods
}

// mustParseCoeffsTable parses the embedded table text. The table is static
// domain data, so a malformed row is a programming error and panics at init.
func mustParseCoeffsTable(table string) map[IMT]Coeffs {
	// The paper's typography uses U+2212 MINUS SIGN; strconv only accepts
	// ASCII hyphen-minus.
	table = strings.ReplaceAll(table, "−", "-")

	rows := make(map[IMT]Coeffs)
	for _, line := range strings.Split(table, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] == "imt" {
			continue
		}
		if len(fields) != 14 {
			panic(fmt.Sprintf("gmm: coefficient row has %d columns, want 14: %q", len(fields), line))
		}

		vals := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				panic(fmt.Sprintf("gmm: bad coefficient %q: %v", f, err))
			}
			vals[i] = v
		}

		key := SA(vals[0])
		if vals[0] == 0 {
			key = PGA()
		}
		if _, dup := rows[key]; dup {
			panic(fmt.Sprintf("gmm: duplicate coefficient row for %s", key))
		}
		rows[key] = Coeffs{
			C1: vals[1], C2: vals[2], C3: vals[3], C4: vals[4], C5: vals[5],
			C6: vals[6], C7: vals[7], C8: vals[8], C9: vals[9], C10: vals[10],
			SigmaT: vals[11], Tau: vals[12], Sigma: vals[13],
		}
	}

	if len(rows) != 20 {
		panic(fmt.Sprintf("gmm: parsed %d coefficient rows, want 20", len(rows)))
	}
	return rows
}
