package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
)

// Source yields the raw mission and coordinate tables. Numeric fields that are
// missing in the source are reported as NaN.
type Source interface {
	FetchMissions(ctx context.Context) ([]model.MissionRecord, error)
	FetchCoordinates(ctx context.Context) ([]model.LocationCoordinate, error)
}

// Mission table headers. The rocket column carries a leading space in the
// published dataset and must be matched as is.
const (
	ColCompany       = "Company Name"
	ColLocation      = "Location"
	ColDatum         = "Datum"
	ColDetail        = "Detail"
	ColStatusRocket  = "Status Rocket"
	ColRocket        = " Rocket"
	ColStatusMission = "Status Mission"
)

var requiredMissionColumns = []string{ColCompany, ColLocation, ColDatum, ColStatusRocket, ColRocket, ColStatusMission}

// Row index columns written by the export; the first present wins. Without
// one the row position is used.
var missionIndexHeaders = []string{"Unnamed: 0", ""}

// Coordinate table header aliases; the exported dataset has an unnamed index column.
var (
	locationHeaders = []string{"", "Unnamed: 0", "Location"}
	latHeaders      = []string{"0", "Lat"}
	longHeaders     = []string{"1", "Long"}
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing column")

// CSVSource reads both tables from CSV files on disk.
type CSVSource struct {
	MissionsPath string
	LatLongPath  string
}

func NewCSVSource(missionsPath, latLongPath string) *CSVSource {
	return &CSVSource{MissionsPath: missionsPath, LatLongPath: latLongPath}
}

func (s *CSVSource) FetchMissions(ctx context.Context) ([]model.MissionRecord, error) {
	f, err := os.Open(s.MissionsPath)
	if err != nil {
		return nil, fmt.Errorf("open missions csv: %w", err)
	}
	defer f.Close()
	return ReadMissions(f)
}

func (s *CSVSource) FetchCoordinates(ctx context.Context) ([]model.LocationCoordinate, error) {
	f, err := os.Open(s.LatLongPath)
	if err != nil {
		return nil, fmt.Errorf("open coordinates csv: %w", err)
	}
	defer f.Close()
	return ReadCoordinates(f)
}

// ReadMissions parses the mission table.
func ReadMissions(r io.Reader) ([]model.MissionRecord, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read missions: %w", err)
	}
	idx := indexHeader(header)
	for _, col := range requiredMissionColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missions: %w %q", ErrMissingColumn, col)
		}
	}

	indexCol, hasIndex := firstColumn(idx, missionIndexHeaders)

	missions := make([]model.MissionRecord, 0, len(rows))
	for i, row := range rows {
		index := i
		if hasIndex {
			if n, err := strconv.Atoi(strings.TrimSpace(field(row, idx, indexCol))); err == nil {
				index = n
			}
		}
		missions = append(missions, model.MissionRecord{
			Index:         index,
			Company:       field(row, idx, ColCompany),
			Rocket:        strings.TrimSpace(field(row, idx, ColRocket)),
			Location:      field(row, idx, ColLocation),
			Datum:         field(row, idx, ColDatum),
			Detail:        field(row, idx, ColDetail),
			StatusRocket:  field(row, idx, ColStatusRocket),
			StatusMission: field(row, idx, ColStatusMission),
			Lat:           math.NaN(),
			Long:          math.NaN(),
		})
	}
	return missions, nil
}

// ReadCoordinates parses the location lookup table.
func ReadCoordinates(r io.Reader) ([]model.LocationCoordinate, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read coordinates: %w", err)
	}
	idx := indexHeader(header)
	locCol, ok := firstColumn(idx, locationHeaders)
	if !ok {
		return nil, fmt.Errorf("coordinates: %w %q", ErrMissingColumn, "Location")
	}
	latCol, ok := firstColumn(idx, latHeaders)
	if !ok {
		return nil, fmt.Errorf("coordinates: %w %q", ErrMissingColumn, "Lat")
	}
	longCol, ok := firstColumn(idx, longHeaders)
	if !ok {
		return nil, fmt.Errorf("coordinates: %w %q", ErrMissingColumn, "Long")
	}

	coords := make([]model.LocationCoordinate, 0, len(rows))
	for i, row := range rows {
		coords = append(coords, model.LocationCoordinate{
			Index:    i,
			Location: field(row, idx, locCol),
			Lat:      parseFloat(field(row, idx, latCol)),
			Long:     parseFloat(field(row, idx, longCol)),
		})
	}
	return coords, nil
}

func readTable(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.New("empty table")
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header, records[1:], nil
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

func firstColumn(idx map[string]int, names []string) (string, bool) {
	for _, n := range names {
		if _, ok := idx[n]; ok {
			return n, true
		}
	}
	return "", false
}

func field(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
