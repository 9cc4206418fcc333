package nec

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseSoilType(t *testing.T) {
	cases := map[string]SoilType{
		"A":                                   SoilA,
		"b":                                   SoilB,
		"C - Suelos muy densos o roca blanda": SoilC,
		"  D - Suelos rígidos":                SoilD,
		"E Suelo":                             SoilE,
	}
	for label, want := range cases {
		got, err := ParseSoilType(label)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", label, err)
		}
		if got != want {
			t.Errorf("%q: expected %s, got %s", label, want, got)
		}
	}
}

func TestParseSoilTypeRejectsF(t *testing.T) {
	for _, label := range []string{"F", "F - Site specific", "", "AB"} {
		_, err := ParseSoilType(label)
		if !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("%q: expected ErrInvalidCategory, got %v", label, err)
		}
	}
}

func TestParseZone(t *testing.T) {
	cases := map[string]Zone{
		"I (0.15g)":   ZoneI,
		"ii":          ZoneII,
		"III (0.30g)": ZoneIII,
		"IV":          ZoneIV,
		"V (0.40g)":   ZoneV,
		"VI (0.50g)":  ZoneVI,
	}
	for label, want := range cases {
		got, err := ParseZone(label)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", label, err)
		}
		if got != want {
			t.Errorf("%q: expected %s, got %s", label, want, got)
		}
	}

	if _, err := ParseZone("VII"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory for VII, got %v", err)
	}
}

func TestParseRegion(t *testing.T) {
	cases := map[string]Region{
		"Costa":                         Costa,
		"Costa (Excepto Esmeralda)":     Costa,
		"Sierra, Esmeralda y Galapagos": Sierra,
		"sierra":                        Sierra,
		"Galápagos":                     Sierra,
		"ESMERALDAS":                    Sierra,
		"Oriente":                       Oriente,
	}
	for label, want := range cases {
		got, err := ParseRegion(label)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", label, err)
		}
		if got != want {
			t.Errorf("%q: expected %s, got %s", label, want, got)
		}
	}

	if _, err := ParseRegion("Amazonia"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestParseFactor(t *testing.T) {
	v, err := ParseFactor("8.0 - Pórticos especiales sismo resistentes")
	if err != nil || v != 8.0 {
		t.Fatalf("expected 8.0, got %v (err %v)", v, err)
	}
	v, err = ParseFactor("1.5 Factor")
	if err != nil || v != 1.5 {
		t.Fatalf("expected 1.5, got %v (err %v)", v, err)
	}
	if _, err := ParseFactor("Essential"); err == nil {
		t.Fatal("expected error for non-numeric label")
	}
}

func TestFactorOptionsParseBack(t *testing.T) {
	for _, opt := range append(append([]FactorOption{}, ReductionOptions...), ImportanceOptions...) {
		v, err := ParseFactor(opt.Label())
		if err != nil {
			t.Fatalf("%q: %v", opt.Label(), err)
		}
		if v != opt.Value {
			t.Errorf("%q: expected %v, got %v", opt.Label(), opt.Value, v)
		}
	}
}

func TestCategoriesJSON(t *testing.T) {
	var in struct {
		Soil   SoilType `json:"soil"`
		Zone   Zone     `json:"zone"`
		Region Region   `json:"region"`
	}
	data := []byte(`{"soil": "D - Suelos rígidos", "zone": "V (0.40g)", "region": "Oriente"}`)
	if err := json.Unmarshal(data, &in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Soil != SoilD || in.Zone != ZoneV || in.Region != Oriente {
		t.Fatalf("unexpected decode: %+v", in)
	}

	out, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"soil":"D","zone":"V","region":"Oriente"}` {
		t.Fatalf("unexpected encode: %s", out)
	}

	bad := []byte(`{"soil": "F"}`)
	if err := json.Unmarshal(bad, &in); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}
