// Package region defines the closed set of geographic regions aircraft are
// routed into, and the pure classifier that maps a geocode resolution onto it.
package region

// Code identifies one geographic region. The set is closed; lists in the
// remote store exist per real region and are never created at runtime.
type Code string

const (
	// Unknown is the sentinel: over water, unresolved coordinates, or a
	// country outside the static table. It is never a persisted authoritative
	// region once a real region has been established, and has no remote list.
	Unknown Code = "XX"

	NorthAmerica   Code = "NA"
	CentralAmerica Code = "CA"
	SouthAmerica   Code = "SA"
	Europe         Code = "EU"
	Africa         Code = "AF"
	MiddleEast     Code = "ME"
	Asia           Code = "AS"
	Oceania        Code = "OC"
	Antarctica     Code = "AN"
)

// All lists every real region, excluding the sentinel.
var All = []Code{
	NorthAmerica,
	CentralAmerica,
	SouthAmerica,
	Europe,
	Africa,
	MiddleEast,
	Asia,
	Oceania,
	Antarctica,
}

// IsReal reports whether c is a member of the closed region set.
func (c Code) IsReal() bool {
	switch c {
	case NorthAmerica, CentralAmerica, SouthAmerica, Europe, Africa, MiddleEast, Asia, Oceania, Antarctica:
		return true
	}
	return false
}

func (c Code) String() string {
	return string(c)
}

// Resolution is the outcome of reverse-geocoding one coordinate pair. At most
// one of CountryCode and Water is meaningfully populated; both empty means the
// lookup failed or hit unclaimed territory.
type Resolution struct {
	// CountryCode is an ISO 3166-1 alpha-2 code when the position resolves to
	// political geography.
	CountryCode string
	// CountryName is display-only and never drives classification.
	CountryName string
	// Water names the body of water under the position when no country
	// applies.
	Water string
}

// OverWater reports whether the resolution identified open water rather than
// a country.
func (r Resolution) OverWater() bool {
	return r.CountryCode == "" && r.Water != ""
}
