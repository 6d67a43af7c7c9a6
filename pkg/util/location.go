package util

import "strings"

// locationPatches fixes raw launch sites whose country suffix is missing.
// Keys must match the raw value exactly.
var locationPatches = map[string]string{
	"LP-41, Kauai, Pacific Missile Range Facility":        "LP-41, Kauai, Pacific Missile Range Facility, USA",
	"Launch Plateform, Shahrud Missile Test Site":         "Launch Plateform, Shahrud Missile Test Site, Iran",
	"Stargazer, Base Aerea de Gando, Gran Canaria":        "Stargazer, Base Aerea de Gando, Gran Canaria, Spain",
	"Vertical Launch Area, Spaceport America, New Mexico": "Vertical Launch Area, Spaceport America, New Mexico, USA",
}

// PatchLocation returns the corrected location string, or the input unchanged.
func PatchLocation(location string) string {
	if patched, ok := locationPatches[location]; ok {
		return patched
	}
	return location
}

// NeedsPatch reports whether the location is one of the known malformed sites.
func NeedsPatch(location string) bool {
	_, ok := locationPatches[location]
	return ok
}

// CountryOf derives the country label from a launch site: the text after the
// last comma with one leading space removed. Every caller that needs a country
// must go through this function.
func CountryOf(location string) string {
	country := location
	if i := strings.LastIndex(location, ","); i >= 0 {
		country = location[i+1:]
	}
	return strings.TrimPrefix(country, " ")
}
