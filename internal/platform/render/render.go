// Package render draws dashboard payloads as PNG charts for clients that
// cannot run the browser charting layer.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
)

// ErrUnsupportedPayload is returned for payload types without a chart.
var ErrUnsupportedPayload = errors.New("unsupported payload")

// magma mirrors the sequential palette of the web dashboard.
var magma = []drawing.Color{
	drawing.ColorFromHex("000004"),
	drawing.ColorFromHex("180f3d"),
	drawing.ColorFromHex("440f76"),
	drawing.ColorFromHex("721f81"),
	drawing.ColorFromHex("9e2f7f"),
	drawing.ColorFromHex("cd4071"),
	drawing.ColorFromHex("f1605d"),
	drawing.ColorFromHex("fd9668"),
	drawing.ColorFromHex("feca8d"),
	drawing.ColorFromHex("fcfdbf"),
}

const (
	defaultWidth  = 800
	defaultHeight = 450
	barWidth      = 28
	barSpacing    = 8
)

// Renderer draws chart payloads.
type Renderer struct {
	Width  int
	Height int
}

func New() *Renderer {
	return &Renderer{Width: defaultWidth, Height: defaultHeight}
}

// Render writes a PNG for payload. Empty payloads produce an empty-state chart.
func (r *Renderer) Render(w io.Writer, payload any) error {
	switch v := payload.(type) {
	case model.RocketStatusView:
		return r.rocketStatus(w, v)
	case model.CompanyShareView:
		return r.companyShare(w, v)
	case model.YearlyOutcomeView:
		return r.yearlyOutcome(w, v)
	case model.LeaderboardView:
		return r.leaderboard(w, v)
	case model.GeoView:
		return r.geo(w, v)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedPayload, payload)
	}
}

func (r *Renderer) rocketStatus(w io.Writer, v model.RocketStatusView) error {
	const title = "Status of Country's Rockets"
	if len(v.Rockets) == 0 {
		return r.empty(w, title)
	}
	colors := make(map[string]drawing.Color, len(v.Statuses))
	for i, s := range v.Statuses {
		colors[s] = magma[(2+i*3)%len(magma)]
	}
	bars := make([]chart.Value, 0, len(v.Rockets))
	for _, rk := range v.Rockets {
		bars = append(bars, chart.Value{
			Label: rk.Rocket,
			Value: 1,
			Style: chart.Style{FillColor: colors[rk.Status], StrokeColor: colors[rk.Status]},
		})
	}
	return r.bars(w, title, bars, 1)
}

func (r *Renderer) companyShare(w io.Writer, v model.CompanyShareView) error {
	const title = "Mission Companies"
	if len(v.Companies) == 0 {
		return r.empty(w, title)
	}
	values := make([]chart.Value, 0, len(v.Companies))
	for i, c := range v.Companies {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.0f%%", c.Company, c.Share*100),
			Value: float64(c.Launches),
			Style: chart.Style{FillColor: magma[i%len(magma)]},
		})
	}
	pie := chart.PieChart{
		Title:  title,
		Width:  r.Height,
		Height: r.Height,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

func (r *Renderer) yearlyOutcome(w io.Writer, v model.YearlyOutcomeView) error {
	const title = "Successful and Failed Space Missions Per Year"
	if len(v.Years) == 0 {
		return r.empty(w, title)
	}
	xs := make([]float64, len(v.Years))
	success := make([]float64, len(v.Years))
	failure := make([]float64, len(v.Years))
	maxY := 1.0
	for i, y := range v.Years {
		xs[i] = float64(y)
		success[i] = float64(v.Success[i])
		failure[i] = float64(v.Failure[i])
		maxY = max(maxY, success[i], failure[i])
	}

	ch := chart.Chart{
		Title:  title,
		Width:  r.Width,
		Height: r.Height,
		XAxis: chart.XAxis{
			Name:           "Year",
			Range:          &chart.ContinuousRange{Min: xs[0] - 1, Max: xs[len(xs)-1] + 1},
			ValueFormatter: yearFormatter,
		},
		YAxis: chart.YAxis{
			Name:  "Number of Space Missions",
			Range: &chart.ContinuousRange{Min: 0, Max: maxY},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Successful", XValues: xs, YValues: success, Style: chart.Style{StrokeColor: magma[8], StrokeWidth: 2}},
			chart.ContinuousSeries{Name: "Failed", XValues: xs, YValues: failure, Style: chart.Style{StrokeColor: magma[4], StrokeWidth: 2}},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

func (r *Renderer) leaderboard(w io.Writer, v model.LeaderboardView) error {
	const title = "Space Race Leading Countries"
	if len(v.Entries) == 0 {
		return r.empty(w, title)
	}
	maxY := 1.0
	bars := make([]chart.Value, 0, len(v.Entries))
	for _, e := range v.Entries {
		color := magma[3]
		if e.Highlighted {
			color = magma[5]
		}
		bars = append(bars, chart.Value{
			Label: e.Country,
			Value: float64(e.Launches),
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
		maxY = max(maxY, float64(e.Launches))
	}
	return r.bars(w, title, bars, maxY)
}

func (r *Renderer) geo(w io.Writer, v model.GeoView) error {
	const title = "Geographical Locations of Missions"
	if len(v.Groups) == 0 {
		return r.empty(w, title)
	}
	series := make([]chart.Series, 0, len(v.Groups))
	for _, g := range v.Groups {
		xs := make([]float64, 0, len(g.Points))
		ys := make([]float64, 0, len(g.Points))
		for _, p := range g.Points {
			xs = append(xs, p.Long)
			ys = append(ys, p.Lat)
		}
		color := magma[(4+g.Code)%len(magma)]
		series = append(series, chart.ContinuousSeries{
			Name:    g.Status,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    float64(4 + g.Code),
				DotColor:    color,
			},
		})
	}
	ch := chart.Chart{
		Title:  title,
		Width:  r.Width,
		Height: r.Height,
		XAxis:  chart.XAxis{Name: "Longitude", Range: &chart.ContinuousRange{Min: -180, Max: 180}},
		YAxis:  chart.YAxis{Name: "Latitude", Range: &chart.ContinuousRange{Min: -90, Max: 90}},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

func (r *Renderer) bars(w io.Writer, title string, bars []chart.Value, maxY float64) error {
	width := max(r.Width, len(bars)*(barWidth+barSpacing)+120)
	bc := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     r.Height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Bottom: 80}},
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: maxY}},
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}

// empty draws a single zero-height bar so clients always receive an image.
func (r *Renderer) empty(w io.Writer, title string) error {
	return r.bars(w, title+" (no data)", []chart.Value{{Label: "no data", Value: 0}}, 1)
}

func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(f))
	}
	return ""
}
