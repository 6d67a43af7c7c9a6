package dashboard

import (
	"sort"
	"strings"

	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
)

// Status substrings. Matching is by containment, so "Partial Failure" and
// "Prelaunch Failure" count as failures.
const (
	successMarker = "Success"
	failureMarker = "Failure"
)

// YearlyOutcome bins successful and failed missions by launch year. Both
// series cover the union of years and are zero-filled. Records without a
// parseable launch date are skipped.
func YearlyOutcome(records []model.MissionRecord, sel model.Selection, match Matcher) model.YearlyOutcomeView {
	success := make(map[int]int)
	failure := make(map[int]int)
	years := make(map[int]struct{})

	for _, r := range Filter(records, sel, match) {
		if r.LaunchedAt.IsZero() {
			continue
		}
		year := r.LaunchedAt.Year()
		recognised := false
		if strings.Contains(r.StatusMission, successMarker) {
			success[year]++
			recognised = true
		}
		if strings.Contains(r.StatusMission, failureMarker) {
			failure[year]++
			recognised = true
		}
		if recognised {
			years[year] = struct{}{}
		}
	}

	view := model.YearlyOutcomeView{
		Years:   make([]int, 0, len(years)),
		Success: make([]int, 0, len(years)),
		Failure: make([]int, 0, len(years)),
	}
	for y := range years {
		view.Years = append(view.Years, y)
	}
	sort.Ints(view.Years)
	for _, y := range view.Years {
		view.Success = append(view.Success, success[y])
		view.Failure = append(view.Failure, failure[y])
	}
	return view
}
