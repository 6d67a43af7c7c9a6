package dashboard

import (
	"sort"

	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
	"github.com/weiwei-tsao/space-missions-dashboard/pkg/util"
)

// Leaderboard counts launches per country over the whole dataset, least active
// first. The selection only marks its own entry; a selection that is not in
// the list leaves Highlight.Found false.
func Leaderboard(records []model.MissionRecord, sel model.Selection) model.LeaderboardView {
	counts := make(map[string]int)
	for _, r := range records {
		counts[util.CountryOf(r.Location)]++
	}

	view := model.LeaderboardView{
		Entries: make([]model.LeaderboardEntry, 0, len(counts)),
	}
	for country, n := range counts {
		view.Entries = append(view.Entries, model.LeaderboardEntry{Country: country, Launches: n})
	}
	sort.Slice(view.Entries, func(i, j int) bool {
		a, b := view.Entries[i], view.Entries[j]
		if a.Launches != b.Launches {
			return a.Launches < b.Launches
		}
		return a.Country < b.Country
	})

	view.Highlight = findHighlight(view.Entries, sel)
	if view.Highlight.Found {
		view.Entries[view.Highlight.Index].Highlighted = true
	}
	return view
}

func findHighlight(entries []model.LeaderboardEntry, sel model.Selection) model.Highlight {
	if sel.IsPlaceholder() {
		return model.Highlight{}
	}
	for i, e := range entries {
		if e.Country == string(sel) {
			return model.Highlight{Found: true, Index: i}
		}
	}
	return model.Highlight{}
}
