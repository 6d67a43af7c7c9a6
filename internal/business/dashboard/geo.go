package dashboard

import (
	"sort"

	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
)

// Geo groups the selected launch sites by mission status. Codes follow the
// sorted order of the statuses present in this call.
func Geo(records []model.MissionRecord, sel model.Selection, match Matcher) model.GeoView {
	byStatus := make(map[string][]model.GeoPoint)
	for _, r := range Filter(records, sel, match) {
		byStatus[r.StatusMission] = append(byStatus[r.StatusMission], model.GeoPoint{
			Lat:   r.Lat,
			Long:  r.Long,
			Label: r.Location,
		})
	}

	statuses := make([]string, 0, len(byStatus))
	for s := range byStatus {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)

	view := model.GeoView{Groups: make([]model.GeoGroup, 0, len(statuses))}
	for code, s := range statuses {
		view.Groups = append(view.Groups, model.GeoGroup{
			Status: s,
			Code:   code,
			Points: byStatus[s],
		})
	}
	return view
}
