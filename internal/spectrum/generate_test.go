package spectrum

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/alexiusacademia/gospectra/internal/nec"
)

const tol = 1e-12

func near(a, b float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Abs(b))
}

// soil A, zone I, Costa
func costaRock() Params {
	return Params{Z: 0.15, Fa: 0.9, Fd: 0.9, Fs: 0.75, Eta: 1.8, Exp: 1, R: 3.0, I: 1.5, PhiP: 1.0, PhiE: 1.0}
}

func TestCharacteristicPeriods(t *testing.T) {
	t0, tc, tl := CharacteristicPeriods(0.9, 0.9, 0.75)
	if !near(t0, 0.075) {
		t.Errorf("expected T0=0.075, got %v", t0)
	}
	if !near(tc, 0.4125) {
		t.Errorf("expected Tc=0.4125, got %v", tc)
	}
	if !near(tl, 2.16) {
		t.Errorf("expected TL=2.16, got %v", tl)
	}
}

func TestGenerateCostaRockScenario(t *testing.T) {
	p := costaRock()
	c, err := Generate(p, DefaultDomain())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Len() != 1000 {
		t.Fatalf("expected 1000 samples, got %d", c.Len())
	}
	if c.Periods[0] != 0 || c.Periods[c.Len()-1] != 6 {
		t.Fatalf("expected domain [0, 6], got [%v, %v]", c.Periods[0], c.Periods[c.Len()-1])
	}
	if !near(c.Sa[0], 0.135) || c.Sa[0] != p.Z*p.Fa {
		t.Fatalf("expected Sa(0)=0.135, got %v", c.Sa[0])
	}

	plateau := p.Eta * p.Z * p.Fa
	if !near(plateau, 0.243) {
		t.Fatalf("expected plateau 0.243, got %v", plateau)
	}
	for i, period := range c.Periods {
		if period > c.T0 && period <= c.Tc {
			if c.Sa[i] != plateau {
				t.Fatalf("T=%v: expected plateau %v, got %v", period, plateau, c.Sa[i])
			}
			if !near(c.Si[i], 0.1215) {
				t.Fatalf("T=%v: expected Si=0.1215, got %v", period, c.Si[i])
			}
		}
	}
}

func TestAccelerationBranches(t *testing.T) {
	p := costaRock()
	t0, tc, _ := CharacteristicPeriods(p.Fa, p.Fd, p.Fs)
	peak := p.Eta * p.Z * p.Fa

	if got := Acceleration(p, 0); got != p.Z*p.Fa {
		t.Errorf("Sa(0): expected %v, got %v", p.Z*p.Fa, got)
	}
	if got := Acceleration(p, t0/2); !near(got, p.Z*p.Fa*(1+(p.Eta-1)*0.5)) {
		t.Errorf("Sa(T0/2): unexpected %v", got)
	}
	if got := Acceleration(p, tc); got != peak {
		t.Errorf("Sa(Tc): expected exactly %v, got %v", peak, got)
	}
	if got := Acceleration(p, 2*tc); !near(got, peak/2) {
		t.Errorf("Sa(2Tc): expected %v, got %v", peak/2, got)
	}
}

func TestContinuityAtBreakpoints(t *testing.T) {
	for _, soil := range nec.SoilTypes {
		site, err := nec.Resolve(soil, nec.ZoneIV, nec.Sierra)
		if err != nil {
			t.Fatal(err)
		}
		p := NewParams(site, StructuralFactors{R: 6, I: 1, PhiP: 1, PhiE: 1})
		t0, tc, _ := CharacteristicPeriods(p.Fa, p.Fd, p.Fs)
		peak := p.Eta * p.Z * p.Fa

		below := Acceleration(p, t0*(1-1e-9))
		above := Acceleration(p, t0*(1+1e-9))
		if math.Abs(below-peak) > 1e-6 || above != peak {
			t.Errorf("soil %s: discontinuity at T0: %v / %v vs %v", soil, below, above, peak)
		}
		if got := Acceleration(p, t0); !near(got, peak) {
			t.Errorf("soil %s: Sa(T0)=%v, expected %v", soil, got, peak)
		}
		after := Acceleration(p, tc*(1+1e-9))
		if math.Abs(after-peak) > 1e-6 {
			t.Errorf("soil %s: discontinuity at Tc: %v vs %v", soil, after, peak)
		}
	}
}

func TestCharacteristicPeriodsOrderedForAllTables(t *testing.T) {
	for _, soil := range nec.SoilTypes {
		for _, zone := range nec.Zones {
			amp, err := nec.SiteCoefficients(soil, zone)
			if err != nil {
				t.Fatal(err)
			}
			t0, tc, tl := CharacteristicPeriods(amp.Fa, amp.Fd, amp.Fs)
			if !(0 < t0 && t0 < tc && tc < tl) {
				t.Errorf("%s/%s: expected 0 < T0 < Tc < TL, got %v %v %v", soil, zone, t0, tc, tl)
			}
		}
	}
}

func TestDecayIsMonotonicAndContinuesPastTL(t *testing.T) {
	site, err := nec.Resolve(nec.SoilE, nec.ZoneII, nec.Oriente)
	if err != nil {
		t.Fatal(err)
	}
	p := NewParams(site, StructuralFactors{R: 8, I: 1.3, PhiP: 0.9, PhiE: 0.9})
	c, err := Generate(p, Domain{Start: 0, End: 10, Samples: 2001})
	if err != nil {
		t.Fatal(err)
	}

	var prev float64
	var seen bool
	for i, period := range c.Periods {
		if period <= c.Tc {
			continue
		}
		if seen && c.Sa[i] > prev {
			t.Fatalf("Sa increased after Tc at T=%v: %v > %v", period, c.Sa[i], prev)
		}
		if period > c.TL && seen && c.Sa[i] == prev {
			t.Fatalf("Sa held constant past TL at T=%v", period)
		}
		prev, seen = c.Sa[i], true
	}

	peak := p.Eta * p.Z * p.Fa
	want := peak * math.Pow(c.Tc/10, 1.5)
	if !near(c.Sa[c.Len()-1], want) {
		t.Fatalf("Sa(10): expected %v, got %v", want, c.Sa[c.Len()-1])
	}
}

func TestPositivityAndReductionRatio(t *testing.T) {
	f := StructuralFactors{R: 5, I: 1.3, PhiP: 0.9, PhiE: 0.8}
	ratio := f.I / (f.R * f.PhiP * f.PhiE)

	for _, soil := range nec.SoilTypes {
		for _, zone := range nec.Zones {
			for _, region := range nec.Regions {
				res, err := Compute(Input{Soil: soil, Zone: zone, Region: region, Factors: f, Domain: DefaultDomain()})
				if err != nil {
					t.Fatal(err)
				}
				c := res.Curve
				for i := range c.Periods {
					if !(c.Sa[i] > 0) {
						t.Fatalf("%s/%s/%s: Sa[%d]=%v not positive", soil, zone, region, i, c.Sa[i])
					}
					if c.Se[i] != c.Sa[i] {
						t.Fatalf("%s/%s/%s: Se differs from Sa at %d", soil, zone, region, i)
					}
					if !near(c.Si[i]/c.Se[i], ratio) {
						t.Fatalf("%s/%s/%s: Si/Se=%v, expected %v", soil, zone, region, c.Si[i]/c.Se[i], ratio)
					}
				}
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := costaRock()
	a, err := Generate(p, DefaultDomain())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(p, DefaultDomain())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs produced different curves")
	}
	if &a.Sa[0] == &a.Se[0] {
		t.Fatal("Se must not alias Sa")
	}
}

func TestGenerateRejectsBadFactors(t *testing.T) {
	cases := []struct {
		name  string
		tweak func(*Params)
		field string
	}{
		{"zero R", func(p *Params) { p.R = 0 }, "R"},
		{"negative I", func(p *Params) { p.I = -1 }, "I"},
		{"zero phiP", func(p *Params) { p.PhiP = 0 }, "φP"},
		{"NaN phiE", func(p *Params) { p.PhiE = math.NaN() }, "φE"},
		{"underflowing denominator", func(p *Params) { p.R, p.PhiP, p.PhiE = 1e-200, 1e-200, 1e-200 }, "R·φP·φE"},
	}

	for _, tc := range cases {
		p := costaRock()
		tc.tweak(&p)
		_, err := Generate(p, DefaultDomain())
		if !errors.Is(err, ErrInvalidStructuralFactor) {
			t.Fatalf("%s: expected ErrInvalidStructuralFactor, got %v", tc.name, err)
		}
		var fe *FactorError
		if !errors.As(err, &fe) || fe.Field != tc.field {
			t.Fatalf("%s: expected FactorError on %s, got %v", tc.name, tc.field, err)
		}
	}
}

func TestGenerateRejectsBadDomain(t *testing.T) {
	cases := map[string]Domain{
		"empty":          {Start: 0, End: 6, Samples: 0},
		"negative start": {Start: -1, End: 6, Samples: 10},
		"reversed":       {Start: 4, End: 2, Samples: 10},
		"degenerate":     {Start: 2, End: 2, Samples: 5},
		"infinite":       {Start: 0, End: math.Inf(1), Samples: 5},
		"too fine":       {Start: 1, End: 1 + 1e-13, Samples: 1000},
	}
	for name, d := range cases {
		_, err := Generate(costaRock(), d)
		if !errors.Is(err, ErrDomain) {
			t.Errorf("%s: expected ErrDomain, got %v", name, err)
		}
	}
}

func TestDomainPeriods(t *testing.T) {
	got := Domain{Start: 1, End: 2, Samples: 5}.Periods()
	want := []float64{1, 1.25, 1.5, 1.75, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	single := Domain{Start: 0.5, End: 0.5, Samples: 1}
	if err := single.Validate(); err != nil {
		t.Fatalf("single sample domain rejected: %v", err)
	}
	if p := single.Periods(); len(p) != 1 || p[0] != 0.5 {
		t.Fatalf("unexpected single sample periods %v", p)
	}

	narrow := Domain{Start: 1, End: 1 + 1e-13, Samples: 1000}
	if err := narrow.Validate(); !errors.Is(err, ErrDomain) {
		t.Fatalf("expected ErrDomain for repeated periods, got %v", err)
	}
	tight := Domain{Start: 1, End: 1 + 1e-9, Samples: 1000}
	if err := tight.Validate(); err != nil {
		t.Fatalf("resolvable narrow domain rejected: %v", err)
	}
	p := tight.Periods()
	for i := 1; i < len(p); i++ {
		if !(p[i] > p[i-1]) {
			t.Fatalf("narrow periods not strictly increasing at %d", i)
		}
	}

	d := DefaultDomain().Periods()
	for i := 1; i < len(d); i++ {
		if !(d[i] > d[i-1]) {
			t.Fatalf("periods not strictly increasing at %d", i)
		}
	}
}

func TestPeak(t *testing.T) {
	p := costaRock()
	c, err := Generate(p, DefaultDomain())
	if err != nil {
		t.Fatal(err)
	}
	period, sa := c.Peak()
	if sa != p.Eta*p.Z*p.Fa {
		t.Fatalf("expected peak %v, got %v", p.Eta*p.Z*p.Fa, sa)
	}
	if period <= c.T0 || period > c.Tc {
		t.Fatalf("peak period %v outside plateau", period)
	}
}
