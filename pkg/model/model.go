package model

import (
	"strings"
	"time"
)

// PlaceholderSelection is the dropdown value shown before a country is chosen.
const PlaceholderSelection = "Select a location"

// Sentinel replaces any field still missing after the coordinate join.
// Consumers must read it as "unknown", never as a real magnitude.
const (
	Sentinel       = 5.0
	SentinelString = "5"
)

// MissionRecord is one launch attempt from the mission table, enriched with
// the coordinates of its launch site. Index is the row position in the source
// table and decides which row wins on duplicates.
type MissionRecord struct {
	Index         int       `json:"index" firestore:"index"`
	Company       string    `json:"company" firestore:"company"`
	Rocket        string    `json:"rocket" firestore:"rocket"`
	Location      string    `json:"location" firestore:"location"`
	Datum         string    `json:"datum" firestore:"datum"`
	LaunchedAt    time.Time `json:"launchedAt,omitempty" firestore:"-"`
	Detail        string    `json:"detail,omitempty" firestore:"detail,omitempty"`
	StatusRocket  string    `json:"statusRocket" firestore:"statusRocket"`
	StatusMission string    `json:"statusMission" firestore:"statusMission"`
	Lat           float64   `json:"lat" firestore:"-"`
	Long          float64   `json:"long" firestore:"-"`
}

// LocationCoordinate maps a launch site string to its position.
type LocationCoordinate struct {
	Index    int     `json:"index" firestore:"index"`
	Location string  `json:"location" firestore:"location"`
	Lat      float64 `json:"lat" firestore:"lat"`
	Long     float64 `json:"long" firestore:"long"`
}

// Selection is the country currently driving every view.
type Selection string

// IsPlaceholder reports whether no country has been chosen yet.
func (s Selection) IsPlaceholder() bool {
	v := strings.TrimSpace(string(s))
	return v == "" || v == PlaceholderSelection
}

func (s Selection) String() string { return string(s) }

// Option is one selector entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// RocketStatus is one bar of the rocket status chart.
type RocketStatus struct {
	Rocket  string `json:"rocket"`
	Country string `json:"country"`
	Status  string `json:"status"`
}

// RocketStatusView lists each rocket of the selected country once.
type RocketStatusView struct {
	Rockets  []RocketStatus `json:"rockets"`
	Statuses []string       `json:"statuses"`
}

// CompanyShare is one slice of the company pie.
type CompanyShare struct {
	Company  string  `json:"company"`
	Launches int     `json:"launches"`
	Share    float64 `json:"share"`
}

// CompanyShareView is ordered by descending launch count.
type CompanyShareView struct {
	Companies []CompanyShare `json:"companies"`
	Total     int            `json:"total"`
}

// YearlyOutcomeView holds two series aligned on Years.
type YearlyOutcomeView struct {
	Years   []int `json:"years"`
	Success []int `json:"success"`
	Failure []int `json:"failure"`
}

// LeaderboardEntry is one country bar.
type LeaderboardEntry struct {
	Country     string `json:"country"`
	Launches    int    `json:"launches"`
	Highlighted bool   `json:"highlighted"`
}

// Highlight points at the selected country in a leaderboard, if present.
type Highlight struct {
	Found bool `json:"found"`
	Index int  `json:"index"`
}

// LeaderboardView is ordered by ascending launch count.
type LeaderboardView struct {
	Entries   []LeaderboardEntry `json:"entries"`
	Highlight Highlight          `json:"highlight"`
}

// GeoPoint is one marker on the map.
type GeoPoint struct {
	Lat   float64 `json:"lat"`
	Long  float64 `json:"long"`
	Label string  `json:"label"`
}

// GeoGroup holds every marker sharing a mission status.
type GeoGroup struct {
	Status string     `json:"status"`
	Code   int        `json:"code"`
	Points []GeoPoint `json:"points"`
}

// GeoView is ordered by Code.
type GeoView struct {
	Groups []GeoGroup `json:"groups"`
}

// SlotError records an aggregator that failed while the others completed.
type SlotError struct {
	Slot   string `json:"slot"`
	Reason string `json:"reason"`
}

// DashboardView is the result of one selection event. UnknownCountry is set
// when the selection is not one of the selector options.
type DashboardView struct {
	RequestID      string         `json:"requestId,omitempty"`
	Selection      string         `json:"selection"`
	State          string         `json:"state"`
	UnknownCountry bool           `json:"unknownCountry,omitempty"`
	Slots          map[string]any `json:"slots"`
	Errors         []SlotError    `json:"errors,omitempty"`
}
