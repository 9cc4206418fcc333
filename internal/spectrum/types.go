package spectrum

import (
	"errors"
	"fmt"
	"math"
)

// Params are the inputs of the NEC-SE-DS elastic design spectrum
// (Section 3.3.1) and its reduction to the inelastic design spectrum
// (Section 6.3).
type Params struct {
	Z   float64 // Zone factor (g)
	Fa  float64 // Short-period site amplification
	Fd  float64 // Displacement amplification
	Fs  float64 // Nonlinear soil behaviour
	Eta float64 // Region amplification ratio η
	Exp float64 // Decay exponent r

	R    float64 // Response reduction factor
	I    float64 // Importance factor
	PhiP float64 // Plan irregularity factor φP
	PhiE float64 // Elevation irregularity factor φE
}

// StructuralFactors are the user supplied factors of the building.
type StructuralFactors struct {
	R    float64 `json:"r"`
	I    float64 `json:"i"`
	PhiP float64 `json:"phi_p"`
	PhiE float64 `json:"phi_e"`
}

// Validate rejects non-positive factors and a vanishing reduction
// denominator R·φP·φE.
func (f StructuralFactors) Validate() error {
	checks := []struct {
		field string
		value float64
	}{
		{"R", f.R},
		{"I", f.I},
		{"φP", f.PhiP},
		{"φE", f.PhiE},
	}
	for _, c := range checks {
		if !(c.value > 0) || math.IsInf(c.value, 0) {
			return &FactorError{Field: c.field, Value: c.value}
		}
	}
	d := f.R * f.PhiP * f.PhiE
	if !(d > 0) || math.IsInf(d, 0) {
		return &FactorError{Field: "R·φP·φE", Value: d}
	}
	return nil
}

// Domain is a uniform period sampling range, both ends included.
type Domain struct {
	Start   float64 `json:"start"`   // s
	End     float64 `json:"end"`     // s
	Samples int     `json:"samples"` // number of periods
}

// DefaultDomain samples 0-6 s at 1000 points.
func DefaultDomain() Domain {
	return Domain{Start: 0, End: 6, Samples: 1000}
}

// Validate checks that the domain is non-empty, non-negative and yields
// strictly increasing periods.
func (d Domain) Validate() error {
	switch {
	case d.Samples < 1:
		return &DomainError{Reason: fmt.Sprintf("sample count must be at least 1, got %d", d.Samples)}
	case math.IsNaN(d.Start) || math.IsInf(d.Start, 0) || math.IsNaN(d.End) || math.IsInf(d.End, 0):
		return &DomainError{Reason: "period bounds must be finite"}
	case d.Start < 0 || d.End < 0:
		return &DomainError{Reason: fmt.Sprintf("periods must be non-negative, got [%g, %g]", d.Start, d.End)}
	case d.End < d.Start:
		return &DomainError{Reason: fmt.Sprintf("end period %g precedes start period %g", d.End, d.Start)}
	case d.End == d.Start && d.Samples > 1:
		return &DomainError{Reason: fmt.Sprintf("%d samples over an empty range at %g s", d.Samples, d.Start)}
	}
	return d.checkSpacing()
}

// checkSpacing walks the sampled periods as Periods computes them and
// rejects ranges too narrow for float64 to keep every sample distinct.
func (d Domain) checkSpacing() error {
	if d.Samples < 2 {
		return nil
	}
	step := (d.End - d.Start) / float64(d.Samples-1)
	prev := d.Start
	for i := 1; i < d.Samples; i++ {
		t := d.Start + float64(i)*step
		if i == d.Samples-1 {
			t = d.End
		}
		if !(t > prev) {
			return &DomainError{Reason: fmt.Sprintf("%d samples over [%g, %g] s repeat period %g", d.Samples, d.Start, d.End, t)}
		}
		prev = t
	}
	return nil
}

// Periods returns the sampled periods. The last sample is pinned to End.
func (d Domain) Periods() []float64 {
	t := make([]float64, d.Samples)
	if d.Samples == 1 {
		t[0] = d.Start
		return t
	}
	step := (d.End - d.Start) / float64(d.Samples-1)
	for i := range t {
		t[i] = d.Start + float64(i)*step
	}
	t[len(t)-1] = d.End
	return t
}

// Curve is a sampled design spectrum. Accelerations are in g.
type Curve struct {
	Periods []float64 `json:"periods"`
	Sa      []float64 `json:"sa"` // Elastic spectral acceleration
	Se      []float64 `json:"se"` // Elastic spectrum, equal to Sa
	Si      []float64 `json:"si"` // Inelastic design spectrum

	T0 float64 `json:"t0"` // End of the ascending branch (s)
	Tc float64 `json:"tc"` // End of the plateau (s)
	TL float64 `json:"tl"` // Long-period limit (s)
}

// Len returns the number of samples.
func (c *Curve) Len() int {
	return len(c.Periods)
}

// Peak returns the largest sampled Sa and its period.
func (c *Curve) Peak() (period, sa float64) {
	for i, v := range c.Sa {
		if i == 0 || v > sa {
			period, sa = c.Periods[i], v
		}
	}
	return period, sa
}

var (
	// ErrInvalidStructuralFactor is matched by every FactorError.
	ErrInvalidStructuralFactor = errors.New("invalid structural factor")

	// ErrDomain is matched by every DomainError.
	ErrDomain = errors.New("invalid period domain")
)

// FactorError reports a structural factor that cannot be used.
type FactorError struct {
	Field string
	Value float64
}

func (e *FactorError) Error() string {
	return fmt.Sprintf("%s must be positive and finite, got %g", e.Field, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidStructuralFactor.
func (e *FactorError) Unwrap() error {
	return ErrInvalidStructuralFactor
}

// DomainError reports an unusable period sampling domain.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string {
	return "invalid period domain: " + e.Reason
}

// Unwrap lets errors.Is match ErrDomain.
func (e *DomainError) Unwrap() error {
	return ErrDomain
}
