package dashboard

import (
	"sort"

	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
	"github.com/weiwei-tsao/space-missions-dashboard/pkg/util"
)

// RocketStatus lists each rocket of the selected country once with its status.
// The first record of a rocket wins.
func RocketStatus(records []model.MissionRecord, sel model.Selection, match Matcher) model.RocketStatusView {
	view := model.RocketStatusView{
		Rockets:  []model.RocketStatus{},
		Statuses: []string{},
	}

	seen := make(map[string]struct{})
	statuses := make(map[string]struct{})
	for _, r := range Filter(records, sel, match) {
		if _, ok := seen[r.Rocket]; ok {
			continue
		}
		seen[r.Rocket] = struct{}{}
		view.Rockets = append(view.Rockets, model.RocketStatus{
			Rocket:  r.Rocket,
			Country: util.CountryOf(r.Location),
			Status:  r.StatusRocket,
		})
		if _, ok := statuses[r.StatusRocket]; !ok {
			statuses[r.StatusRocket] = struct{}{}
			view.Statuses = append(view.Statuses, r.StatusRocket)
		}
	}
	sort.Strings(view.Statuses)
	return view
}
