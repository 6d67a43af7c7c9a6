package http

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/business/dashboard"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/business/dataset"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/platform/export"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/platform/ratelimit"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/platform/render"
	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
)

const requestIDKey = "requestId"

// Options tunes the router middleware. Limiter, when set, replaces the one
// built from RateLimitRPS and RateLimitBurst; the caller owns its Stop.
type Options struct {
	AllowedOrigins string
	RateLimitRPS   float64
	RateLimitBurst int
	Limiter        *ratelimit.KeyedLimiter
}

// Router wires HTTP handlers.
type Router struct {
	dashboard *dashboard.Controller
	renderer  *render.Renderer
	limiter   *ratelimit.KeyedLimiter
	origins   string
}

type selectionQuery struct {
	Country string `form:"country" binding:"max=128"`
}

func NewRouter(ctrl *dashboard.Controller, renderer *render.Renderer, opts Options) *gin.Engine {
	limiter := opts.Limiter
	if limiter == nil {
		limiter = ratelimit.New(opts.RateLimitRPS, opts.RateLimitBurst)
	}
	r := &Router{
		dashboard: ctrl,
		renderer:  renderer,
		limiter:   limiter,
		origins:   opts.AllowedOrigins,
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), r.requestIDMiddleware(), r.corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "records": r.dashboard.Dataset().Len()})
	})

	api := router.Group("/api", r.rateLimitMiddleware())
	{
		api.GET("/countries", r.listCountries)
		api.GET("/state", r.getState)
		api.GET("/dashboard", r.selectCountry)
		api.GET("/views/:slot", r.getView)
		api.GET("/charts/:file", r.getChart)
		api.GET("/export.xlsx", r.exportWorkbook)
		api.GET("/export/leaderboard.csv", r.exportLeaderboard)
	}

	return router
}

func (r *Router) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (r *Router) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	origins := strings.Split(r.origins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		if allowed := allowOrigin(trimmed, c.GetHeader("Origin")); allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
		}
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or ""
// when the origin is not on a configured list. An empty list allows any origin.
func allowOrigin(allowed []string, origin string) string {
	if len(allowed) == 0 {
		return "*"
	}
	for _, o := range allowed {
		if o == "*" || (origin != "" && o == origin) {
			if origin == "" {
				return "*"
			}
			return origin
		}
	}
	return ""
}

// selection binds the country query parameter. A missing value is the placeholder.
func (r *Router) selection(c *gin.Context) (model.Selection, bool) {
	var q selectionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid country: " + err.Error()})
		return "", false
	}
	if q.Country == "" {
		return model.PlaceholderSelection, true
	}
	return model.Selection(q.Country), true
}

func (r *Router) listCountries(c *gin.Context) {
	countries := r.dashboard.Dataset().Countries()
	c.JSON(http.StatusOK, gin.H{
		"items":       dataset.SelectorOptions(countries),
		"placeholder": model.PlaceholderSelection,
	})
}

func (r *Router) getState(c *gin.Context) {
	state, sel := r.dashboard.State()
	c.JSON(http.StatusOK, gin.H{"state": state.String(), "selection": sel})
}

func (r *Router) selectCountry(c *gin.Context) {
	sel, ok := r.selection(c)
	if !ok {
		return
	}
	view := r.dashboard.Select(sel)
	view.RequestID = c.GetString(requestIDKey)
	c.JSON(http.StatusOK, view)
}

func (r *Router) getView(c *gin.Context) {
	sel, ok := r.selection(c)
	if !ok {
		return
	}
	payload, err := r.dashboard.View(c.Param("slot"), sel)
	if err != nil {
		c.JSON(slotErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (r *Router) getChart(c *gin.Context) {
	slot, isPNG := strings.CutSuffix(c.Param("file"), ".png")
	if !isPNG {
		c.JSON(http.StatusNotFound, gin.H{"error": "charts are served as .png"})
		return
	}
	sel, ok := r.selection(c)
	if !ok {
		return
	}
	payload, err := r.dashboard.View(slot, sel)
	if err != nil {
		c.JSON(slotErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := r.renderer.Render(&buf, payload); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render chart: " + err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (r *Router) exportWorkbook(c *gin.Context) {
	sel, ok := r.selection(c)
	if !ok {
		return
	}
	view := r.dashboard.Snapshot(sel)

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, workbookViews(view)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=space-missions.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (r *Router) exportLeaderboard(c *gin.Context) {
	sel, ok := r.selection(c)
	if !ok {
		return
	}
	board := dashboard.Leaderboard(r.dashboard.Dataset().Records(), sel)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=leaderboard.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	if err := writer.Write([]string{"country", "launches", "selected"}); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	for _, e := range board.Entries {
		if err := writer.Write([]string{e.Country, strconv.Itoa(e.Launches), strconv.FormatBool(e.Highlighted)}); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
	}
}

func slotErrorStatus(err error) int {
	if errors.Is(err, dashboard.ErrUnknownSlot) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func workbookViews(view model.DashboardView) export.Views {
	v := export.Views{Selection: view.Selection, Errors: view.Errors}
	v.RocketStatus, _ = view.Slots[dashboard.SlotRocketStatus].(model.RocketStatusView)
	v.CompanyShare, _ = view.Slots[dashboard.SlotCompanyShare].(model.CompanyShareView)
	v.YearlyOutcome, _ = view.Slots[dashboard.SlotYearlyOutcome].(model.YearlyOutcomeView)
	v.Leaderboard, _ = view.Slots[dashboard.SlotLeaderboard].(model.LeaderboardView)
	v.Geo, _ = view.Slots[dashboard.SlotGeo].(model.GeoView)
	return v
}
