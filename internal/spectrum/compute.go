package spectrum

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexiusacademia/gospectra/internal/nec"
)

// Input is a complete spectrum request.
type Input struct {
	Name    string
	Soil    nec.SoilType
	Zone    nec.Zone
	Region  nec.Region
	Factors StructuralFactors
	Domain  Domain
}

// Result is a computed spectrum together with the values it was derived from.
type Result struct {
	Name   string   `json:"name,omitempty"`
	Site   nec.Site `json:"site"`
	Params Params   `json:"-"`
	Curve  *Curve   `json:"curve"`

	Factors StructuralFactors `json:"factors"`
	Domain  Domain            `json:"domain"`
}

// Compute resolves the site coefficients and generates the spectrum.
func Compute(in Input) (*Result, error) {
	if err := in.Factors.Validate(); err != nil {
		return nil, err
	}
	if err := in.Domain.Validate(); err != nil {
		return nil, err
	}

	site, err := nec.Resolve(in.Soil, in.Zone, in.Region)
	if err != nil {
		return nil, err
	}

	params := NewParams(site, in.Factors)
	curve, err := Generate(params, in.Domain)
	if err != nil {
		return nil, err
	}

	return &Result{
		Name:    in.Name,
		Site:    site,
		Params:  params,
		Curve:   curve,
		Factors: in.Factors,
		Domain:  in.Domain,
	}, nil
}

// inputFile is the JSON project file layout. Categories are labels so
// selector text can be pasted as is.
type inputFile struct {
	Name   string   `json:"name"`
	Soil   string   `json:"soil"`
	Zone   string   `json:"zone"`
	Region string   `json:"region"`
	R      float64  `json:"r"`
	I      float64  `json:"i"`
	PhiP   *float64 `json:"phi_p,omitempty"`
	PhiE   *float64 `json:"phi_e,omitempty"`
	Domain *Domain  `json:"domain,omitempty"`
}

// LoadInput reads a spectrum request from a JSON file.
//
// Example:
//
//	{
//	  "name": "Hospital block B",
//	  "soil": "D",
//	  "zone": "V (0.40g)",
//	  "region": "Sierra",
//	  "r": 8, "i": 1.5, "phi_p": 0.9, "phi_e": 1.0,
//	  "domain": {"start": 0, "end": 4, "samples": 400}
//	}
//
// φP and φE default to 1.0 (regular structure) and the domain to
// DefaultDomain when omitted.
func LoadInput(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, err
	}
	return ParseInput(data)
}

// ParseInput decodes a JSON project file.
func ParseInput(data []byte) (Input, error) {
	var f inputFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Input{}, fmt.Errorf("decode input: %w", err)
	}

	in := Input{
		Name:    f.Name,
		Factors: StructuralFactors{R: f.R, I: f.I, PhiP: 1.0, PhiE: 1.0},
		Domain:  DefaultDomain(),
	}

	var err error
	if in.Soil, err = nec.ParseSoilType(f.Soil); err != nil {
		return Input{}, err
	}
	if in.Zone, err = nec.ParseZone(f.Zone); err != nil {
		return Input{}, err
	}
	if in.Region, err = nec.ParseRegion(f.Region); err != nil {
		return Input{}, err
	}
	if f.PhiP != nil {
		in.Factors.PhiP = *f.PhiP
	}
	if f.PhiE != nil {
		in.Factors.PhiE = *f.PhiE
	}
	if f.Domain != nil {
		in.Domain = *f.Domain
	}

	if err := in.Factors.Validate(); err != nil {
		return Input{}, err
	}
	if err := in.Domain.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}
