package nec

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Selector labels carry the canonical code as their first whitespace
// delimited token, e.g. "C - Suelos muy densos o roca blanda",
// "V (0.40g)" or "8.0 - Pórticos especiales sismo resistentes".

// fold upper-cases s and strips diacritics so "Galápagos" matches "GALAPAGOS".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(out)
}

// firstToken returns the leading code of a selector label.
func firstToken(label string) string {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimRight(fields[0], ",;:-(")
}

// ParseSoilType parses a soil type code or label.
func ParseSoilType(label string) (SoilType, error) {
	code := fold(firstToken(label))
	for _, s := range SoilTypes {
		if code == s.String() {
			return s, nil
		}
	}
	return 0, invalidCategory("soil type", strings.TrimSpace(label))
}

// ParseZone parses a roman-numeral zone code or label.
func ParseZone(label string) (Zone, error) {
	code := fold(firstToken(label))
	for _, z := range Zones {
		if code == z.String() {
			return z, nil
		}
	}
	return 0, invalidCategory("seismic zone", strings.TrimSpace(label))
}

// ParseRegion parses a region name or label. Esmeraldas and Galápagos
// resolve to Sierra.
func ParseRegion(label string) (Region, error) {
	switch fold(firstToken(label)) {
	case "COSTA":
		return Costa, nil
	case "SIERRA", "ESMERALDA", "ESMERALDAS", "GALAPAGOS":
		return Sierra, nil
	case "ORIENTE":
		return Oriente, nil
	}
	return 0, invalidCategory("region", strings.TrimSpace(label))
}

// ParseFactor extracts the numeric value of an R or I selector label.
func ParseFactor(label string) (float64, error) {
	code := firstToken(label)
	v, err := strconv.ParseFloat(code, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid factor label %q", strings.TrimSpace(label))
	}
	return v, nil
}

// FactorOption is a selectable structural factor value.
type FactorOption struct {
	Value       float64
	Description string
}

// Label renders the option the way selectors display it.
func (o FactorOption) Label() string {
	return fmt.Sprintf("%.1f - %s", o.Value, o.Description)
}

// ReductionOptions lists response reduction factors R by structural system
// (NEC-SE-DS Section 6.3.4, Table 15).
var ReductionOptions = []FactorOption{
	{8.0, "Special moment-resisting frames"},
	{7.0, "Frames with band beams"},
	{6.0, "Intermediate moment frames"},
	{5.0, "Ductile structural walls"},
	{4.0, "Moment-resisting frames"},
	{3.0, "Reinforced masonry"},
	{2.5, "Cold-formed steel structures"},
	{1.5, "Unreinforced concrete walls"},
	{1.0, "Unreinforced masonry"},
}

// ImportanceOptions lists importance factors I by occupancy category
// (NEC-SE-DS Section 4.1, Table 6).
var ImportanceOptions = []FactorOption{
	{1.0, "Common structures"},
	{1.3, "Special occupancy structures"},
	{1.5, "Essential facilities"},
}
