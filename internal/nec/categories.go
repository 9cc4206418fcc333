package nec

// SoilType is the NEC-SE-DS site classification (Section 3.2.1, Table 2).
// Type F requires a site-specific study and is not tabulated.
type SoilType int

const (
	SoilA SoilType = iota // Competent rock
	SoilB                 // Rock of medium stiffness
	SoilC                 // Very dense soil or soft rock
	SoilD                 // Stiff soil
	SoilE                 // Soft soil
)

var soilNames = [...]string{"A", "B", "C", "D", "E"}

// SoilTypes lists every tabulated soil type in table order.
var SoilTypes = []SoilType{SoilA, SoilB, SoilC, SoilD, SoilE}

// Valid reports whether s is a tabulated soil type.
func (s SoilType) Valid() bool {
	return s >= SoilA && s <= SoilE
}

func (s SoilType) String() string {
	if !s.Valid() {
		return "SoilType(?)"
	}
	return soilNames[s]
}

// Description returns the NEC profile description of the soil type.
func (s SoilType) Description() string {
	switch s {
	case SoilA:
		return "Competent rock"
	case SoilB:
		return "Rock of medium stiffness"
	case SoilC:
		return "Very dense soil or soft rock"
	case SoilD:
		return "Stiff soil"
	case SoilE:
		return "Soft soil"
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (s SoilType) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, invalidCategory("soil type", s.String())
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts UI labels
// such as "C - Suelos muy densos o roca blanda".
func (s *SoilType) UnmarshalText(text []byte) error {
	v, err := ParseSoilType(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Zone is the seismic zone of the NEC hazard map (Section 3.1.1, Table 1).
type Zone int

const (
	ZoneI Zone = iota
	ZoneII
	ZoneIII
	ZoneIV
	ZoneV
	ZoneVI
)

var zoneNames = [...]string{"I", "II", "III", "IV", "V", "VI"}

// Zones lists every seismic zone in table order.
var Zones = []Zone{ZoneI, ZoneII, ZoneIII, ZoneIV, ZoneV, ZoneVI}

// Valid reports whether z is a tabulated zone.
func (z Zone) Valid() bool {
	return z >= ZoneI && z <= ZoneVI
}

func (z Zone) String() string {
	if !z.Valid() {
		return "Zone(?)"
	}
	return zoneNames[z]
}

// MarshalText implements encoding.TextMarshaler.
func (z Zone) MarshalText() ([]byte, error) {
	if !z.Valid() {
		return nil, invalidCategory("seismic zone", z.String())
	}
	return []byte(z.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts UI labels
// such as "V (0.40g)".
func (z *Zone) UnmarshalText(text []byte) error {
	v, err := ParseZone(string(text))
	if err != nil {
		return err
	}
	*z = v
	return nil
}

// Region selects the spectral amplification ratio η (Section 3.3.1).
// Esmeraldas and Galápagos share the Sierra ratio.
type Region int

const (
	Costa Region = iota
	Sierra
	Oriente
)

var regionNames = [...]string{"Costa", "Sierra", "Oriente"}

// Regions lists every region in table order.
var Regions = []Region{Costa, Sierra, Oriente}

// Valid reports whether r is a known region.
func (r Region) Valid() bool {
	return r >= Costa && r <= Oriente
}

func (r Region) String() string {
	if !r.Valid() {
		return "Region(?)"
	}
	return regionNames[r]
}

// Label returns the long form used on the region selector.
func (r Region) Label() string {
	switch r {
	case Costa:
		return "Costa (except Esmeraldas)"
	case Sierra:
		return "Sierra, Esmeraldas and Galápagos"
	case Oriente:
		return "Oriente"
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (r Region) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, invalidCategory("region", r.String())
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Region) UnmarshalText(text []byte) error {
	v, err := ParseRegion(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
