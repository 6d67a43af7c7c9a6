package dataset

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
	"github.com/weiwei-tsao/space-missions-dashboard/pkg/util"
)

var datumLayouts = []string{
	"Mon Jan 02, 2006 15:04 MST",
	"Mon Jan 02, 2006",
}

// LoadStats summarises one load for startup logging.
type LoadStats struct {
	Missions    int `json:"missions"`
	Coordinates int `json:"coordinates"`
	Patched     int `json:"patched"`
	Joined      int `json:"joined"`
	Dropped     int `json:"dropped"`
	Backfilled  int `json:"backfilled"`
	Undated     int `json:"undated"`
}

// Load reads both tables from src, patches malformed locations, inner-joins
// coordinates by exact location and back-fills missing fields with the sentinel.
// Missions whose location has no coordinate row are dropped.
func Load(ctx context.Context, src Source) (*Dataset, LoadStats, error) {
	var stats LoadStats

	missions, err := src.FetchMissions(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("load missions: %w", err)
	}
	coords, err := src.FetchCoordinates(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("load coordinates: %w", err)
	}
	stats.Missions = len(missions)
	stats.Coordinates = len(coords)

	// Duplicates resolve by row index, not by the order a source returns rows in.
	missions = slices.Clone(missions)
	coords = slices.Clone(coords)
	slices.SortStableFunc(missions, func(a, b model.MissionRecord) int { return cmp.Compare(a.Index, b.Index) })
	slices.SortStableFunc(coords, func(a, b model.LocationCoordinate) int { return cmp.Compare(a.Index, b.Index) })

	// First row wins on duplicate locations.
	lookup := make(map[string]model.LocationCoordinate, len(coords))
	for _, c := range coords {
		if _, dup := lookup[c.Location]; !dup {
			lookup[c.Location] = c
		}
	}

	records := make([]model.MissionRecord, 0, len(missions))
	for _, m := range missions {
		if util.NeedsPatch(m.Location) {
			m.Location = util.PatchLocation(m.Location)
			stats.Patched++
		}
		c, ok := lookup[m.Location]
		if !ok {
			stats.Dropped++
			continue
		}
		m.Lat, m.Long = c.Lat, c.Long
		if backfill(&m) {
			stats.Backfilled++
		}
		m.LaunchedAt = ParseDatum(m.Datum)
		if m.LaunchedAt.IsZero() {
			stats.Undated++
		}
		records = append(records, m)
	}
	stats.Joined = len(records)

	return newDataset(records), stats, nil
}

// ParseDatum parses the launch timestamp, returning the zero time when the
// value matches no known layout.
func ParseDatum(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range datumLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// backfill replaces every missing field with the sentinel and reports whether
// anything was filled.
func backfill(m *model.MissionRecord) bool {
	filled := false
	for _, s := range []*string{&m.Company, &m.Rocket, &m.Location, &m.Datum, &m.Detail, &m.StatusRocket, &m.StatusMission} {
		if strings.TrimSpace(*s) == "" {
			*s = model.SentinelString
			filled = true
		}
	}
	for _, f := range []*float64{&m.Lat, &m.Long} {
		if math.IsNaN(*f) || math.IsInf(*f, 0) {
			*f = model.Sentinel
			filled = true
		}
	}
	return filled
}
