package dashboard

import (
	"sort"

	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
)

// CompanyShare counts launches per company within the selection, most active
// first. Ties are broken by company name.
func CompanyShare(records []model.MissionRecord, sel model.Selection, match Matcher) model.CompanyShareView {
	filtered := Filter(records, sel, match)

	counts := make(map[string]int)
	for _, r := range filtered {
		counts[r.Company]++
	}

	view := model.CompanyShareView{
		Companies: make([]model.CompanyShare, 0, len(counts)),
		Total:     len(filtered),
	}
	for company, n := range counts {
		view.Companies = append(view.Companies, model.CompanyShare{
			Company:  company,
			Launches: n,
			Share:    float64(n) / float64(view.Total),
		})
	}
	sort.Slice(view.Companies, func(i, j int) bool {
		a, b := view.Companies[i], view.Companies[j]
		if a.Launches != b.Launches {
			return a.Launches > b.Launches
		}
		return a.Company < b.Company
	})
	return view
}
