package region

// countryRegions partitions ISO 3166-1 alpha-2 country codes into regions.
// The table is deliberately not exhaustive: a country absent here classifies
// to Unknown, exactly like unresolved coordinates. Unmapped countries must
// never be silently defaulted to a neighboring region.
var countryRegions = map[string]Code{
	// North America
	"US": NorthAmerica, "CA": NorthAmerica, "MX": NorthAmerica,
	"GL": NorthAmerica, "BM": NorthAmerica, "PM": NorthAmerica,

	// Central America & Caribbean
	"GT": CentralAmerica, "BZ": CentralAmerica, "SV": CentralAmerica,
	"HN": CentralAmerica, "NI": CentralAmerica, "CR": CentralAmerica,
	"PA": CentralAmerica, "CU": CentralAmerica, "JM": CentralAmerica,
	"HT": CentralAmerica, "DO": CentralAmerica, "PR": CentralAmerica,
	"BS": CentralAmerica, "BB": CentralAmerica, "TT": CentralAmerica,
	"KY": CentralAmerica, "AG": CentralAmerica, "LC": CentralAmerica,
	"GD": CentralAmerica, "VC": CentralAmerica, "DM": CentralAmerica,
	"KN": CentralAmerica, "AW": CentralAmerica, "CW": CentralAmerica,

	// South America
	"BR": SouthAmerica, "AR": SouthAmerica, "CL": SouthAmerica,
	"CO": SouthAmerica, "PE": SouthAmerica, "VE": SouthAmerica,
	"EC": SouthAmerica, "BO": SouthAmerica, "PY": SouthAmerica,
	"UY": SouthAmerica, "GY": SouthAmerica, "SR": SouthAmerica,
	"GF": SouthAmerica, "FK": SouthAmerica,

	// Europe
	"GB": Europe, "IE": Europe, "FR": Europe, "DE": Europe, "ES": Europe,
	"PT": Europe, "IT": Europe, "NL": Europe, "BE": Europe, "LU": Europe,
	"CH": Europe, "AT": Europe, "DK": Europe, "NO": Europe, "SE": Europe,
	"FI": Europe, "IS": Europe, "PL": Europe, "CZ": Europe, "SK": Europe,
	"HU": Europe, "RO": Europe, "BG": Europe, "GR": Europe, "HR": Europe,
	"SI": Europe, "RS": Europe, "BA": Europe, "ME": Europe, "MK": Europe,
	"AL": Europe, "EE": Europe, "LV": Europe, "LT": Europe, "BY": Europe,
	"UA": Europe, "MD": Europe, "RU": Europe, "MT": Europe, "CY": Europe,
	"AD": Europe, "MC": Europe, "LI": Europe, "SM": Europe, "VA": Europe,
	"GI": Europe, "FO": Europe, "JE": Europe, "GG": Europe, "IM": Europe,
	"AX": Europe, "XK": Europe,

	// Africa
	"MA": Africa, "DZ": Africa, "TN": Africa, "LY": Africa, "EG": Africa,
	"SD": Africa, "SS": Africa, "ET": Africa, "ER": Africa, "DJ": Africa,
	"SO": Africa, "KE": Africa, "UG": Africa, "TZ": Africa, "RW": Africa,
	"BI": Africa, "CD": Africa, "CG": Africa, "GA": Africa, "GQ": Africa,
	"CM": Africa, "CF": Africa, "TD": Africa, "NE": Africa, "NG": Africa,
	"BJ": Africa, "TG": Africa, "GH": Africa, "CI": Africa, "LR": Africa,
	"SL": Africa, "GN": Africa, "GW": Africa, "SN": Africa, "GM": Africa,
	"ML": Africa, "BF": Africa, "MR": Africa, "CV": Africa, "ST": Africa,
	"AO": Africa, "ZM": Africa, "MW": Africa, "MZ": Africa, "ZW": Africa,
	"BW": Africa, "NA": Africa, "SZ": Africa, "LS": Africa, "ZA": Africa,
	"MG": Africa, "MU": Africa, "SC": Africa, "KM": Africa, "RE": Africa,

	// Middle East
	"TR": MiddleEast, "SY": MiddleEast, "LB": MiddleEast, "IL": MiddleEast,
	"PS": MiddleEast, "JO": MiddleEast, "IQ": MiddleEast, "IR": MiddleEast,
	"SA": MiddleEast, "YE": MiddleEast, "OM": MiddleEast, "AE": MiddleEast,
	"QA": MiddleEast, "BH": MiddleEast, "KW": MiddleEast,

	// Asia
	"AF": Asia, "PK": Asia, "IN": Asia, "NP": Asia, "BT": Asia, "BD": Asia,
	"LK": Asia, "MV": Asia, "MM": Asia, "TH": Asia, "LA": Asia, "KH": Asia,
	"VN": Asia, "MY": Asia, "SG": Asia, "BN": Asia, "ID": Asia, "TL": Asia,
	"PH": Asia, "CN": Asia, "HK": Asia, "MO": Asia, "TW": Asia, "JP": Asia,
	"KR": Asia, "KP": Asia, "MN": Asia, "KZ": Asia, "KG": Asia, "TJ": Asia,
	"TM": Asia, "UZ": Asia, "GE": Asia, "AM": Asia, "AZ": Asia,

	// Oceania
	"AU": Oceania, "NZ": Oceania, "PG": Oceania, "FJ": Oceania,
	"SB": Oceania, "VU": Oceania, "NC": Oceania, "PF": Oceania,
	"WS": Oceania, "TO": Oceania, "TV": Oceania, "KI": Oceania,
	"NR": Oceania, "PW": Oceania, "FM": Oceania, "MH": Oceania,
	"GU": Oceania, "CK": Oceania,

	// Antarctica
	"AQ": Antarctica,
}

// CountryCount reports the size of the static country table. Exposed for
// configuration sanity checks and tests.
func CountryCount() int {
	return len(countryRegions)
}
