package slug

import "strings"

// StateCodes maps canonical state names to their two-letter postal codes.
var StateCodes = map[string]string{
	"Alabama":        "AL",
	"Alaska":         "AK",
	"Arizona":        "AZ",
	"Arkansas":       "AR",
	"California":     "CA",
	"Colorado":       "CO",
	"Connecticut":    "CT",
	"Delaware":       "DE",
	"Florida":        "FL",
	"Georgia":        "GA",
	"Hawaii":         "HI",
	"Idaho":          "ID",
	"Illinois":       "IL",
	"Indiana":        "IN",
	"Iowa":           "IA",
	"Kansas":         "KS",
	"Kentucky":       "KY",
	"Louisiana":      "LA",
	"Maine":          "ME",
	"Maryland":       "MD",
	"Massachusetts":  "MA",
	"Michigan":       "MI",
	"Minnesota":      "MN",
	"Mississippi":    "MS",
	"Missouri":       "MO",
	"Montana":        "MT",
	"Nebraska":       "NE",
	"Nevada":         "NV",
	"New Hampshire":  "NH",
	"New Jersey":     "NJ",
	"New Mexico":     "NM",
	"New York":       "NY",
	"North Carolina": "NC",
	"North Dakota":   "ND",
	"Ohio":           "OH",
	"Oklahoma":       "OK",
	"Oregon":         "OR",
	"Pennsylvania":   "PA",
	"Rhode Island":   "RI",
	"South Carolina": "SC",
	"South Dakota":   "SD",
	"Tennessee":      "TN",
	"Texas":          "TX",
	"Utah":           "UT",
	"Vermont":        "VT",
	"Virginia":       "VA",
	"Washington":     "WA",
	"West Virginia":  "WV",
	"Wisconsin":      "WI",
	"Wyoming":        "WY",
}

// StateNames is the reverse mapping, code to canonical name.
var StateNames = func() map[string]string {
	names := make(map[string]string, len(StateCodes))
	for name, code := range StateCodes {
		names[code] = name
	}
	return names
}()

// StateNameFromCode returns the canonical name for a two-letter code, or ""
// when the code is unknown.
func StateNameFromCode(code string) string {
	return StateNames[strings.ToUpper(code)]
}

// StateCodeFromSlug resolves a URL segment to a state code. It accepts both
// hyphenated state names ("new-york") and bare codes ("ny", "NY"). Returns
// "" when the segment matches neither.
func StateCodeFromSlug(s string) string {
	if code, ok := StateCodes[SlugToName(s)]; ok {
		return code
	}
	upper := strings.ToUpper(s)
	if _, ok := StateNames[upper]; ok {
		return upper
	}
	return ""
}

// ValidStateCode reports whether code is a recognized two-letter state code.
func ValidStateCode(code string) bool {
	_, ok := StateNames[strings.ToUpper(code)]
	return ok
}
