package region

import "strings"

// Classify maps a geocode resolution onto the closed region set. It is total
// and pure: any resolution that does not name a country in the static table
// yields Unknown, whether that is open water, unclaimed territory, or a
// country the table deliberately omits.
func Classify(geo Resolution) Code {
	code := strings.ToUpper(strings.TrimSpace(geo.CountryCode))
	if code == "" {
		return Unknown
	}
	if r, ok := countryRegions[code]; ok {
		return r
	}
	return Unknown
}
