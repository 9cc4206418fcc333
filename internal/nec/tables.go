package nec

import "fmt"

// NEC-SE-DS 2015 (Norma Ecuatoriana de la Construcción, Peligro Sísmico)
// site coefficients. Rows are soil types A-E, columns are zones I-VI.

// Table 3 - Fa, short-period site amplification
var faTable = [5][6]float64{
	{0.90, 0.90, 0.90, 0.90, 0.90, 0.90},
	{1.00, 1.00, 1.00, 1.00, 1.00, 1.00},
	{1.40, 1.30, 1.25, 1.23, 1.20, 1.18},
	{1.60, 1.40, 1.30, 1.25, 1.20, 1.12},
	{1.80, 1.40, 1.25, 1.10, 1.00, 0.85},
}

// Table 4 - Fd, amplification of the displacement spectrum ordinates
var fdTable = [5][6]float64{
	{0.90, 0.90, 0.90, 0.90, 0.90, 0.90},
	{1.00, 1.00, 1.00, 1.00, 1.00, 1.00},
	{1.36, 1.28, 1.19, 1.15, 1.11, 1.06},
	{1.62, 1.45, 1.36, 1.28, 1.19, 1.11},
	{2.10, 1.75, 1.70, 1.65, 1.60, 1.50},
}

// Table 5 - Fs, nonlinear soil behaviour
var fsTable = [5][6]float64{
	{0.75, 0.75, 0.75, 0.75, 0.75, 0.75},
	{0.75, 0.75, 0.75, 0.75, 0.75, 0.75},
	{0.85, 0.94, 1.02, 1.06, 1.11, 1.23},
	{1.02, 1.06, 1.11, 1.19, 1.28, 1.40},
	{1.50, 1.60, 1.70, 1.80, 1.90, 2.00},
}

// Table 1 - zone factor Z (fraction of g)
var zTable = [6]float64{0.15, 0.25, 0.30, 0.35, 0.40, 0.50}

// Section 3.3.1 - spectral amplification ratio η by region
var etaTable = [3]float64{1.80, 2.48, 2.60}

// Amplification holds the site coefficients for a soil type and zone.
type Amplification struct {
	Fa float64 `json:"fa"` // Short-period amplification
	Fd float64 `json:"fd"` // Displacement amplification
	Fs float64 `json:"fs"` // Nonlinear soil behaviour
	R  float64 `json:"r"`  // Decay exponent of the descending branch
}

// Site is the resolved seismic hazard for a location.
type Site struct {
	Soil   SoilType      `json:"soil"`
	Zone   Zone          `json:"zone"`
	Region Region        `json:"region"`
	Amp    Amplification `json:"amplification"`
	Eta    float64       `json:"eta"` // Region amplification ratio η
	Z      float64       `json:"z"`   // Zone factor (g)
}

// DecayExponent returns r of Section 3.3.1: 1.5 for soil type E, 1 otherwise.
func DecayExponent(soil SoilType) float64 {
	if soil == SoilE {
		return 1.5
	}
	return 1.0
}

// ZoneFactor returns Z for a seismic zone.
func ZoneFactor(zone Zone) (float64, error) {
	if !zone.Valid() {
		return 0, invalidCategory("seismic zone", fmt.Sprint(int(zone)))
	}
	return zTable[zone], nil
}

// Eta returns the spectral amplification ratio for a region.
func Eta(region Region) (float64, error) {
	if !region.Valid() {
		return 0, invalidCategory("region", fmt.Sprint(int(region)))
	}
	return etaTable[region], nil
}

// SiteCoefficients looks up Fa, Fd, Fs and r for a soil type and zone.
func SiteCoefficients(soil SoilType, zone Zone) (Amplification, error) {
	if !soil.Valid() {
		return Amplification{}, invalidCategory("soil type", fmt.Sprint(int(soil)))
	}
	if !zone.Valid() {
		return Amplification{}, invalidCategory("seismic zone", fmt.Sprint(int(zone)))
	}
	return Amplification{
		Fa: faTable[soil][zone],
		Fd: fdTable[soil][zone],
		Fs: fsTable[soil][zone],
		R:  DecayExponent(soil),
	}, nil
}

// Resolve returns the site coefficients, η and Z for the given categories.
func Resolve(soil SoilType, zone Zone, region Region) (Site, error) {
	amp, err := SiteCoefficients(soil, zone)
	if err != nil {
		return Site{}, err
	}
	eta, err := Eta(region)
	if err != nil {
		return Site{}, err
	}
	z, _ := ZoneFactor(zone)

	return Site{
		Soil:   soil,
		Zone:   zone,
		Region: region,
		Amp:    amp,
		Eta:    eta,
		Z:      z,
	}, nil
}
