package dataset

import (
	"slices"

	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
	"github.com/weiwei-tsao/space-missions-dashboard/pkg/util"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Dataset is the joined record set. It is never mutated after construction;
// accessors hand out copies.
type Dataset struct {
	records   []model.MissionRecord
	countries []string
}

func newDataset(records []model.MissionRecord) *Dataset {
	return &Dataset{
		records:   records,
		countries: Countries(records),
	}
}

// FromRecords builds a Dataset from already joined records.
func FromRecords(records []model.MissionRecord) *Dataset {
	return newDataset(slices.Clone(records))
}

// Records returns a copy of every record.
func (d *Dataset) Records() []model.MissionRecord {
	return slices.Clone(d.records)
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Countries returns the sorted selector domain.
func (d *Dataset) Countries() []string {
	return slices.Clone(d.countries)
}

// HasCountry reports whether the label is part of the selector domain.
func (d *Dataset) HasCountry(country string) bool {
	return slices.Contains(d.countries, country)
}

// Countries derives the distinct country labels of records, sorted for display.
func Countries(records []model.MissionRecord) []string {
	seen := make(map[string]struct{})
	var countries []string
	for _, r := range records {
		c := util.CountryOf(r.Location)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		countries = append(countries, c)
	}
	SortCountries(countries)
	return countries
}

// SortCountries orders labels the way a reader scans a dropdown.
func SortCountries(countries []string) {
	collate.New(language.English, collate.Loose).SortStrings(countries)
}

// SelectorOptions converts country labels into dropdown options.
func SelectorOptions(countries []string) []model.Option {
	opts := make([]model.Option, 0, len(countries))
	for _, c := range countries {
		opts = append(opts, model.Option{Label: c, Value: c})
	}
	return opts
}
