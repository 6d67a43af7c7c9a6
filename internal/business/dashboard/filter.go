package dashboard

import (
	"fmt"
	"strings"

	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
	"github.com/weiwei-tsao/space-missions-dashboard/pkg/util"
)

// Matcher decides whether a launch site belongs to the selected country.
type Matcher func(location, country string) bool

// MatchSubstring keeps every location that contains the country label. A
// country whose name is part of another location string will also match it.
func MatchSubstring(location, country string) bool {
	return strings.Contains(location, country)
}

// MatchExact keeps locations whose derived country equals the label.
func MatchExact(location, country string) bool {
	return util.CountryOf(location) == country
}

// ParseMatcher maps a config value to a Matcher.
func ParseMatcher(mode string) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "substring":
		return MatchSubstring, nil
	case "exact":
		return MatchExact, nil
	default:
		return nil, fmt.Errorf("unknown country match mode %q", mode)
	}
}

// Filter returns the records of the selected country in a new slice. The
// placeholder selects nothing.
func Filter(records []model.MissionRecord, sel model.Selection, match Matcher) []model.MissionRecord {
	if sel.IsPlaceholder() {
		return nil
	}
	if match == nil {
		match = MatchSubstring
	}
	country := string(sel)
	var out []model.MissionRecord
	for _, r := range records {
		if match(r.Location, country) {
			out = append(out, r)
		}
	}
	return out
}
