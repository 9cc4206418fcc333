package spectrum

import (
	"math"

	"github.com/alexiusacademia/gospectra/internal/nec"
)

// Characteristic period coefficients (NEC-SE-DS Section 3.3.1)
const (
	T0Coefficient = 0.10 // T0 = 0.10·Fs·Fd/Fa
	TcCoefficient = 0.55 // Tc = 0.55·Fs·Fd/Fa
	TLCoefficient = 2.4  // TL = 2.4·Fd
)

// NewParams combines a resolved site with the structural factors.
func NewParams(site nec.Site, f StructuralFactors) Params {
	return Params{
		Z:    site.Z,
		Fa:   site.Amp.Fa,
		Fd:   site.Amp.Fd,
		Fs:   site.Amp.Fs,
		Eta:  site.Eta,
		Exp:  site.Amp.R,
		R:    f.R,
		I:    f.I,
		PhiP: f.PhiP,
		PhiE: f.PhiE,
	}
}

// Factors returns the structural factors carried by p.
func (p Params) Factors() StructuralFactors {
	return StructuralFactors{R: p.R, I: p.I, PhiP: p.PhiP, PhiE: p.PhiE}
}

// CharacteristicPeriods returns T0, Tc and TL in seconds.
func CharacteristicPeriods(fa, fd, fs float64) (t0, tc, tl float64) {
	t0 = T0Coefficient * fs * fd / fa
	tc = TcCoefficient * fs * fd / fa
	tl = TLCoefficient * fd
	return t0, tc, tl
}

// Acceleration returns the elastic spectral acceleration Sa (g) at period t.
//
//	t = 0:         Sa = Z·Fa
//	0 < t <= T0:   Sa = Z·Fa·(1 + (η-1)·t/T0)
//	T0 < t <= Tc:  Sa = η·Z·Fa
//	t > Tc:        Sa = η·Z·Fa·(Tc/t)^r
//
// The descending branch continues past TL; there is no long-period plateau.
func Acceleration(p Params, t float64) float64 {
	t0, tc, _ := CharacteristicPeriods(p.Fa, p.Fd, p.Fs)
	return acceleration(p, t0, tc, t)
}

func acceleration(p Params, t0, tc, t float64) float64 {
	peak := p.Eta * p.Z * p.Fa
	switch {
	case t == 0:
		return p.Z * p.Fa
	case t <= t0:
		return p.Z * p.Fa * (1 + (p.Eta-1)*t/t0)
	case t <= tc:
		return peak
	}
	return peak * math.Pow(tc/t, p.Exp)
}

// ReductionRatio returns Si/Sa = I/(R·φP·φE).
func (p Params) ReductionRatio() float64 {
	return p.I / (p.R * p.PhiP * p.PhiE)
}

// Generate samples the elastic and inelastic design spectra over d.
func Generate(p Params, d Domain) (*Curve, error) {
	if err := p.Factors().Validate(); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	t0, tc, tl := CharacteristicPeriods(p.Fa, p.Fd, p.Fs)
	periods := d.Periods()
	n := len(periods)

	c := &Curve{
		Periods: periods,
		Sa:      make([]float64, n),
		Se:      make([]float64, n),
		Si:      make([]float64, n),
		T0:      t0,
		Tc:      tc,
		TL:      tl,
	}

	denom := p.R * p.PhiP * p.PhiE
	for i, t := range periods {
		sa := acceleration(p, t0, tc, t)
		c.Sa[i] = sa
		c.Se[i] = sa
		c.Si[i] = p.I * sa / denom
	}

	return c, nil
}
