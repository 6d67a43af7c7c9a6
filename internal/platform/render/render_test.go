package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		payload any
	}{
		{
			name: "rocket status",
			payload: model.RocketStatusView{
				Rockets:  []model.RocketStatus{{Rocket: "50.0", Country: "USA", Status: "StatusActive"}, {Rocket: "5", Country: "USA", Status: "StatusRetired"}},
				Statuses: []string{"StatusActive", "StatusRetired"},
			},
		},
		{
			name: "company share",
			payload: model.CompanyShareView{
				Companies: []model.CompanyShare{{Company: "SpaceX", Launches: 3, Share: 0.75}, {Company: "ULA", Launches: 1, Share: 0.25}},
				Total:     4,
			},
		},
		{
			name:    "yearly outcome",
			payload: model.YearlyOutcomeView{Years: []int{2019, 2020}, Success: []int{3, 4}, Failure: []int{1, 0}},
		},
		{
			name:    "yearly outcome single year",
			payload: model.YearlyOutcomeView{Years: []int{2001}, Success: []int{1}, Failure: []int{2}},
		},
		{
			name: "leaderboard",
			payload: model.LeaderboardView{
				Entries:   []model.LeaderboardEntry{{Country: "China", Launches: 2}, {Country: "USA", Launches: 4, Highlighted: true}},
				Highlight: model.Highlight{Found: true, Index: 1},
			},
		},
		{
			name: "geo",
			payload: model.GeoView{Groups: []model.GeoGroup{
				{Status: "Failure", Code: 0, Points: []model.GeoPoint{{Lat: 28.4, Long: -80.5, Label: "Cape Canaveral"}}},
				{Status: "Success", Code: 1, Points: []model.GeoPoint{{Lat: 45.9, Long: 63.5, Label: "Baikonur"}, {Lat: 40.9, Long: 100.2, Label: "Jiuquan"}}},
			}},
		},
		{name: "empty rocket status", payload: model.RocketStatusView{}},
		{name: "empty company share", payload: model.CompanyShareView{}},
		{name: "empty yearly outcome", payload: model.YearlyOutcomeView{}},
		{name: "empty leaderboard", payload: model.LeaderboardView{}},
		{name: "empty geo", payload: model.GeoView{}},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := r.Render(&buf, tt.payload); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
				t.Fatalf("output is not a PNG (%d bytes)", buf.Len())
			}
		})
	}
}

func TestRenderUnsupported(t *testing.T) {
	var buf bytes.Buffer
	if err := New().Render(&buf, "not a chart"); !errors.Is(err, ErrUnsupportedPayload) {
		t.Fatalf("err = %v, want ErrUnsupportedPayload", err)
	}
}
