package dashboard

import (
	"slices"
	"testing"
	"time"

	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
)

func mission(company, rocket, location, status, rocketStatus string, year int) model.MissionRecord {
	var launched time.Time
	if year > 0 {
		launched = time.Date(year, time.March, 1, 12, 0, 0, 0, time.UTC)
	}
	return model.MissionRecord{
		Company:       company,
		Rocket:        rocket,
		Location:      location,
		StatusMission: status,
		StatusRocket:  rocketStatus,
		LaunchedAt:    launched,
		Lat:           10,
		Long:          20,
	}
}

func sampleRecords() []model.MissionRecord {
	return []model.MissionRecord{
		mission("SpaceX", "50.0", "LC-39A, Kennedy Space Center, Florida, USA", "Success", "StatusActive", 2020),
		mission("SpaceX", "50.0", "SLC-40, Cape Canaveral AFS, Florida, USA", "Success", "StatusActive", 2019),
		mission("ULA", "109.0", "SLC-41, Cape Canaveral AFS, Florida, USA", "Failure", "StatusActive", 2019),
		mission("US Navy", "5", "LC-18A, Cape Canaveral AFS, Florida, USA", "Partial Failure", "StatusRetired", 1958),
		mission("CASC", "29.75", "Site 9401 (SLS-2), Jiuquan Satellite Launch Center, China", "Success", "StatusActive", 2020),
		mission("CASC", "29.15", "LC-3, Xichang Satellite Launch Center, China", "Prelaunch Failure", "StatusActive", 2020),
		mission("RVSN USSR", "5", "Site 1/5, Baikonur Cosmodrome, Kazakhstan", "Success", "StatusRetired", 1957),
		mission("Roscosmos", "65.0", "Site 200/39, Baikonur Cosmodrome, Kazakhstan", "Success", "StatusActive", 0),
	}
}

func TestFilter(t *testing.T) {
	records := sampleRecords()

	if got := Filter(records, "USA", MatchSubstring); len(got) != 4 {
		t.Errorf("substring USA = %d records, want 4", len(got))
	}
	if got := Filter(records, "Florida", MatchSubstring); len(got) != 4 {
		t.Errorf("substring match should hit inner segments, got %d", len(got))
	}
	if got := Filter(records, "Florida", MatchExact); len(got) != 0 {
		t.Errorf("exact match should only use the country, got %d", len(got))
	}
	if got := Filter(records, "China", nil); len(got) != 2 {
		t.Errorf("nil matcher should default to substring, got %d", len(got))
	}
	for _, sel := range []model.Selection{"", "  ", model.PlaceholderSelection} {
		if got := Filter(records, sel, MatchSubstring); len(got) != 0 {
			t.Errorf("placeholder %q should select nothing, got %d", sel, len(got))
		}
	}
}

func TestParseMatcher(t *testing.T) {
	for _, mode := range []string{"", "substring", "EXACT"} {
		if _, err := ParseMatcher(mode); err != nil {
			t.Errorf("ParseMatcher(%q): %v", mode, err)
		}
	}
	if _, err := ParseMatcher("fuzzy"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}

func TestRocketStatus(t *testing.T) {
	view := RocketStatus(sampleRecords(), "USA", MatchSubstring)

	want := []model.RocketStatus{
		{Rocket: "50.0", Country: "USA", Status: "StatusActive"},
		{Rocket: "109.0", Country: "USA", Status: "StatusActive"},
		{Rocket: "5", Country: "USA", Status: "StatusRetired"},
	}
	if !slices.Equal(view.Rockets, want) {
		t.Fatalf("Rockets = %+v, want %+v", view.Rockets, want)
	}
	if !slices.Equal(view.Statuses, []string{"StatusActive", "StatusRetired"}) {
		t.Errorf("Statuses = %v", view.Statuses)
	}
}

func TestRocketStatusFirstOccurrenceWins(t *testing.T) {
	records := []model.MissionRecord{
		mission("A", "R1", "Pad, USA", "Success", "StatusRetired", 2000),
		mission("B", "R1", "Pad, USA", "Success", "StatusActive", 2001),
	}
	view := RocketStatus(records, "USA", MatchSubstring)
	if len(view.Rockets) != 1 || view.Rockets[0].Status != "StatusRetired" {
		t.Fatalf("Rockets = %+v", view.Rockets)
	}
}

func TestCompanyShare(t *testing.T) {
	view := CompanyShare(sampleRecords(), "USA", MatchSubstring)

	if view.Total != 4 {
		t.Fatalf("Total = %d, want 4", view.Total)
	}
	wantOrder := []string{"SpaceX", "ULA", "US Navy"}
	sum := 0
	for i, c := range view.Companies {
		if c.Company != wantOrder[i] {
			t.Errorf("Companies[%d] = %q, want %q", i, c.Company, wantOrder[i])
		}
		if i > 0 && c.Launches > view.Companies[i-1].Launches {
			t.Errorf("order not non-increasing at %d", i)
		}
		sum += c.Launches
	}
	if sum != view.Total {
		t.Errorf("sum of launches = %d, want %d", sum, view.Total)
	}
	if view.Companies[0].Share != 0.5 {
		t.Errorf("SpaceX share = %v, want 0.5", view.Companies[0].Share)
	}
}

func TestYearlyOutcome(t *testing.T) {
	view := YearlyOutcome(sampleRecords(), "USA", MatchSubstring)

	if !slices.Equal(view.Years, []int{1958, 2019, 2020}) {
		t.Fatalf("Years = %v", view.Years)
	}
	if !slices.Equal(view.Success, []int{0, 1, 1}) {
		t.Errorf("Success = %v", view.Success)
	}
	if !slices.Equal(view.Failure, []int{1, 1, 0}) {
		t.Errorf("Failure = %v", view.Failure)
	}
}

func TestYearlyOutcomeThreeRecordScenario(t *testing.T) {
	records := []model.MissionRecord{
		mission("A", "1", "X, USA", "Success", "StatusActive", 2001),
		mission("A", "1", "X, USA", "Failure", "StatusActive", 2001),
		mission("A", "1", "X, USA", "Failure", "StatusActive", 2001),
	}
	view := YearlyOutcome(records, "USA", MatchSubstring)
	if !slices.Equal(view.Years, []int{2001}) || !slices.Equal(view.Success, []int{1}) || !slices.Equal(view.Failure, []int{2}) {
		t.Fatalf("view = %+v", view)
	}
}

func TestYearlyOutcomeCountsRecognisedStatuses(t *testing.T) {
	records := sampleRecords()
	records = append(records, mission("X", "1", "Pad, Kazakhstan", "Unknown", "StatusActive", 1999))

	view := YearlyOutcome(records, "Kazakhstan", MatchSubstring)
	total := 0
	for i := range view.Years {
		total += view.Success[i] + view.Failure[i]
	}
	// One Kazakhstan record is undated and one has an unrecognised status.
	if total != 1 {
		t.Fatalf("total = %d, want 1 (%+v)", total, view)
	}
	if slices.Contains(view.Years, 1999) {
		t.Errorf("year with only unrecognised statuses should be absent: %v", view.Years)
	}
}

func TestLeaderboard(t *testing.T) {
	records := sampleRecords()
	view := Leaderboard(records, "China")

	wantCountries := []string{"China", "Kazakhstan", "USA"}
	sum := 0
	for i, e := range view.Entries {
		if e.Country != wantCountries[i] {
			t.Errorf("Entries[%d] = %q, want %q", i, e.Country, wantCountries[i])
		}
		if i > 0 && e.Launches < view.Entries[i-1].Launches {
			t.Errorf("order not ascending at %d", i)
		}
		sum += e.Launches
	}
	if sum != len(records) {
		t.Errorf("sum = %d, want %d", sum, len(records))
	}
	if view.Highlight != (model.Highlight{Found: true, Index: 0}) || !view.Entries[0].Highlighted {
		t.Errorf("Highlight = %+v entries=%+v", view.Highlight, view.Entries)
	}
	for _, e := range view.Entries[1:] {
		if e.Highlighted {
			t.Errorf("%s should not be highlighted", e.Country)
		}
	}
}

func TestLeaderboardWithoutMatch(t *testing.T) {
	for _, sel := range []model.Selection{model.PlaceholderSelection, "", "Atlantis", "Florida"} {
		view := Leaderboard(sampleRecords(), sel)
		if view.Highlight.Found {
			t.Errorf("selection %q should not highlight", sel)
		}
		if len(view.Entries) != 3 {
			t.Errorf("selection %q changed the leaderboard: %+v", sel, view.Entries)
		}
		for _, e := range view.Entries {
			if e.Highlighted {
				t.Errorf("selection %q highlighted %s", sel, e.Country)
			}
		}
	}
}

func TestGeo(t *testing.T) {
	view := Geo(sampleRecords(), "USA", MatchSubstring)

	wantStatuses := []string{"Failure", "Partial Failure", "Success"}
	if len(view.Groups) != len(wantStatuses) {
		t.Fatalf("Groups = %+v", view.Groups)
	}
	points := 0
	for i, g := range view.Groups {
		if g.Status != wantStatuses[i] || g.Code != i {
			t.Errorf("Groups[%d] = %s/%d, want %s/%d", i, g.Status, g.Code, wantStatuses[i], i)
		}
		points += len(g.Points)
	}
	if points != 4 {
		t.Errorf("points = %d, want 4", points)
	}
	if got := view.Groups[2].Points[0]; got.Label != "LC-39A, Kennedy Space Center, Florida, USA" || got.Lat != 10 || got.Long != 20 {
		t.Errorf("first success point = %+v", got)
	}
}

func TestAggregatorsOnEmptySelection(t *testing.T) {
	records := sampleRecords()
	for _, sel := range []model.Selection{model.PlaceholderSelection, "Atlantis"} {
		if v := RocketStatus(records, sel, MatchSubstring); v.Rockets == nil || len(v.Rockets) != 0 || v.Statuses == nil {
			t.Errorf("RocketStatus(%q) = %+v", sel, v)
		}
		if v := CompanyShare(records, sel, MatchSubstring); v.Companies == nil || len(v.Companies) != 0 || v.Total != 0 {
			t.Errorf("CompanyShare(%q) = %+v", sel, v)
		}
		if v := YearlyOutcome(records, sel, MatchSubstring); v.Years == nil || len(v.Years) != 0 || v.Success == nil || v.Failure == nil {
			t.Errorf("YearlyOutcome(%q) = %+v", sel, v)
		}
		if v := Geo(records, sel, MatchSubstring); v.Groups == nil || len(v.Groups) != 0 {
			t.Errorf("Geo(%q) = %+v", sel, v)
		}
	}
}

func TestAggregatorsDoNotMutateInput(t *testing.T) {
	records := sampleRecords()
	before := slices.Clone(records)

	RocketStatus(records, "USA", MatchSubstring)
	CompanyShare(records, "USA", MatchSubstring)
	YearlyOutcome(records, "USA", MatchSubstring)
	Leaderboard(records, "USA")
	Geo(records, "USA", MatchSubstring)

	if !slices.Equal(records, before) {
		t.Fatalf("aggregators modified their input")
	}
}
