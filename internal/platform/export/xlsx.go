package export

import (
	"fmt"
	"io"

	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names, one per dashboard chart plus a summary.
const (
	SheetSummary       = "Summary"
	SheetRocketStatus  = "Rocket Status"
	SheetCompanyShare  = "Company Share"
	SheetYearlyOutcome = "Yearly Outcome"
	SheetLeaderboard   = "Leaderboard"
	SheetGeo           = "Geo"
)

// Views bundles the payloads written to a workbook.
type Views struct {
	Selection     string
	RocketStatus  model.RocketStatusView
	CompanyShare  model.CompanyShareView
	YearlyOutcome model.YearlyOutcomeView
	Leaderboard   model.LeaderboardView
	Geo           model.GeoView
	Errors        []model.SlotError
}

// WriteWorkbook streams every view into its own sheet and writes the XLSX to w.
func WriteWorkbook(w io.Writer, v Views) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name   string
		header []interface{}
		rows   [][]interface{}
	}{
		{SheetSummary, []interface{}{"Field", "Value"}, summaryRows(v)},
		{SheetRocketStatus, []interface{}{"Rocket", "Country", "Status Rocket"}, rocketRows(v.RocketStatus)},
		{SheetCompanyShare, []interface{}{"Company Name", "Launches", "Share"}, companyRows(v.CompanyShare)},
		{SheetYearlyOutcome, []interface{}{"Year", "Successful", "Failed"}, yearlyRows(v.YearlyOutcome)},
		{SheetLeaderboard, []interface{}{"Country", "Launches", "Selected"}, leaderboardRows(v.Leaderboard)},
		{SheetGeo, []interface{}{"Status Mission", "Code", "Lat", "Long", "Location"}, geoRows(v.Geo)},
	}

	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s.name, s.header, s.rows); err != nil {
			return fmt.Errorf("write sheet %s: %w", s.name, err)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	if index, err := f.GetSheetIndex(SheetSummary); err == nil {
		f.SetActiveSheet(index)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func summaryRows(v Views) [][]interface{} {
	rows := [][]interface{}{
		{"Selection", v.Selection},
		{"Rockets", len(v.RocketStatus.Rockets)},
		{"Launches", v.CompanyShare.Total},
		{"Countries", len(v.Leaderboard.Entries)},
	}
	for _, e := range v.Errors {
		rows = append(rows, []interface{}{"Error " + e.Slot, e.Reason})
	}
	return rows
}

func rocketRows(v model.RocketStatusView) [][]interface{} {
	rows := make([][]interface{}, 0, len(v.Rockets))
	for _, r := range v.Rockets {
		rows = append(rows, []interface{}{r.Rocket, r.Country, r.Status})
	}
	return rows
}

func companyRows(v model.CompanyShareView) [][]interface{} {
	rows := make([][]interface{}, 0, len(v.Companies))
	for _, c := range v.Companies {
		rows = append(rows, []interface{}{c.Company, c.Launches, c.Share})
	}
	return rows
}

func yearlyRows(v model.YearlyOutcomeView) [][]interface{} {
	rows := make([][]interface{}, 0, len(v.Years))
	for i, y := range v.Years {
		rows = append(rows, []interface{}{y, v.Success[i], v.Failure[i]})
	}
	return rows
}

func leaderboardRows(v model.LeaderboardView) [][]interface{} {
	rows := make([][]interface{}, 0, len(v.Entries))
	for _, e := range v.Entries {
		rows = append(rows, []interface{}{e.Country, e.Launches, e.Highlighted})
	}
	return rows
}

func geoRows(v model.GeoView) [][]interface{} {
	var rows [][]interface{}
	for _, g := range v.Groups {
		for _, p := range g.Points {
			rows = append(rows, []interface{}{g.Status, g.Code, p.Lat, p.Long, p.Label})
		}
	}
	return rows
}
