package gmm

import (
	"errors"
	"fmt"
	"strconv"
)

// IMTType identifies an intensity measure family.
type IMTType string

const (
	// TypePGA is peak ground acceleration.
	TypePGA IMTType = "PGA"
	// TypeSA is spectral acceleration at a fixed period.
	TypeSA IMTType = "SA"
)

// IMT is an intensity measure key: PGA, or SA at a specific period in
// seconds. PGA carries period 0.
type IMT struct {
	Type   IMTType
	Period float64
}

// PGA returns the peak ground acceleration key.
func PGA() IMT {
	return IMT{Type: TypePGA}
}

// SA returns the spectral acceleration key for the given period in seconds.
func SA(period float64) IMT {
	return IMT{Type: TypeSA, Period: period}
}

func (m IMT) String() string {
	if m.Type == TypeSA {
		return "SA(" + strconv.FormatFloat(m.Period, 'g', -1, 64) + ")"
	}
	return string(m.Type)
}

// StdDevKind selects one of the model's dispersion values.
type StdDevKind string

const (
	StdDevTotal      StdDevKind = "total"
	StdDevInterEvent StdDevKind = "inter_event"
	StdDevIntraEvent StdDevKind = "intra_event"
)

// Precondition failures. All are deterministic functions of the input and
// surface immediately; no partial results are produced.
var (
	// ErrUnsupportedIMT is returned when the requested intensity measure
	// type or period has no coefficient row.
	ErrUnsupportedIMT = errors.New("unsupported intensity measure")

	// ErrUnsupportedStdDev is returned when a requested standard-deviation
	// kind is outside {total, inter_event, intra_event}.
	ErrUnsupportedStdDev = errors.New("unsupported standard deviation kind")

	// ErrMismatchedLengths is returned when the per-site input arrays
	// disagree in length.
	ErrMismatchedLengths = errors.New("mismatched site array lengths")

	// ErrInvalidDistance is returned for a non-positive hypocentral
	// distance, which has no logarithm.
	ErrInvalidDistance = errors.New("hypocentral distance must be positive")
)

// ParseIMT converts the wire form ("PGA", or "SA" plus a period) into an IMT
// key. It validates the type only; whether the period is tabulated is
// decided by LookupCoeffs.
func ParseIMT(typ string, period float64) (IMT, error) {
	switch IMTType(typ) {
	case TypePGA:
		return PGA(), nil
	case TypeSA:
		return SA(period), nil
	default:
		return IMT{}, fmt.Errorf("%q: %w", typ, ErrUnsupportedIMT)
	}
}

// ParseStdDevKind validates the wire form of a standard-deviation kind.
func ParseStdDevKind(kind string) (StdDevKind, error) {
	switch k := StdDevKind(kind); k {
	case StdDevTotal, StdDevInterEvent, StdDevIntraEvent:
		return k, nil
	default:
		return "", fmt.Errorf("%q: %w", kind, ErrUnsupportedStdDev)
	}
}
