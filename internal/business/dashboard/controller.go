package dashboard

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/weiwei-tsao/space-missions-dashboard/internal/business/dataset"
	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
)

// Slot names, one per chart.
const (
	SlotRocketStatus  = "rocket-status"
	SlotCompanyShare  = "company-share"
	SlotYearlyOutcome = "yearly-outcome"
	SlotLeaderboard   = "leaderboard"
	SlotGeo           = "geo"
)

// ErrUnknownSlot is returned for a slot name that is not in the dispatch table.
var ErrUnknownSlot = errors.New("unknown slot")

// State of the selector.
type State int

const (
	Idle State = iota
	Selected
)

func (s State) String() string {
	if s == Selected {
		return "selected"
	}
	return "idle"
}

// Handler turns the dataset and a selection into one chart payload. Handlers
// must not modify records.
type Handler func(records []model.MissionRecord, sel model.Selection) any

// Slot routes one handler's output to its chart.
type Slot struct {
	Name    string
	Handler Handler
}

// DefaultSlots is the dispatch table of the five dashboard charts.
func DefaultSlots(match Matcher) []Slot {
	return []Slot{
		{Name: SlotRocketStatus, Handler: func(r []model.MissionRecord, s model.Selection) any { return RocketStatus(r, s, match) }},
		{Name: SlotCompanyShare, Handler: func(r []model.MissionRecord, s model.Selection) any { return CompanyShare(r, s, match) }},
		{Name: SlotYearlyOutcome, Handler: func(r []model.MissionRecord, s model.Selection) any { return YearlyOutcome(r, s, match) }},
		{Name: SlotLeaderboard, Handler: func(r []model.MissionRecord, s model.Selection) any { return Leaderboard(r, s) }},
		{Name: SlotGeo, Handler: func(r []model.MissionRecord, s model.Selection) any { return Geo(r, s, match) }},
	}
}

// Controller fans a selection event out to every slot.
type Controller struct {
	data  *dataset.Dataset
	slots []Slot
	index map[string]int

	mu        sync.RWMutex
	state     State
	selection model.Selection
}

func NewController(data *dataset.Dataset, slots []Slot) *Controller {
	index := make(map[string]int, len(slots))
	for i, s := range slots {
		index[s.Name] = i
	}
	return &Controller{
		data:  data,
		slots: slots,
		index: index,
	}
}

// Dataset exposes the read-only dataset behind the controller.
func (c *Controller) Dataset() *dataset.Dataset { return c.data }

// SlotNames lists the dispatch table in order.
func (c *Controller) SlotNames() []string {
	names := make([]string, 0, len(c.slots))
	for _, s := range c.slots {
		names = append(names, s.Name)
	}
	return names
}

// State returns the current selector state and the last selection.
func (c *Controller) State() (State, model.Selection) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state, c.selection
}

// Select records the selection and runs every slot.
func (c *Controller) Select(sel model.Selection) model.DashboardView {
	return c.fanOut(c.transition(sel), sel)
}

// Snapshot runs every slot without changing the selector state. A slot that
// panics is reported in Errors while the others still produce their payloads.
func (c *Controller) Snapshot(sel model.Selection) model.DashboardView {
	state, _ := c.State()
	return c.fanOut(state, sel)
}

// fanOut gives each slot its own copy of the records so a failed slot cannot
// leak writes into the next one.
func (c *Controller) fanOut(state State, sel model.Selection) model.DashboardView {
	view := model.DashboardView{
		Selection: string(sel),
		State:     state.String(),
		Slots:     make(map[string]any, len(c.slots)),
	}
	if !sel.IsPlaceholder() && !c.data.HasCountry(string(sel)) {
		view.UnknownCountry = true
	}
	for _, s := range c.slots {
		payload, err := run(s, c.data.Records(), sel)
		if err != nil {
			log.Printf("dashboard slot %s failed for %q: %v", s.Name, sel, err)
			view.Errors = append(view.Errors, model.SlotError{Slot: s.Name, Reason: err.Error()})
			continue
		}
		view.Slots[s.Name] = payload
	}
	return view
}

// View runs a single slot without touching the selector state.
func (c *Controller) View(name string, sel model.Selection) (any, error) {
	i, ok := c.index[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSlot, name)
	}
	return run(c.slots[i], c.data.Records(), sel)
}

func (c *Controller) transition(sel model.Selection) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sel.IsPlaceholder() {
		c.state = Idle
	} else {
		c.state = Selected
	}
	c.selection = sel
	return c.state
}

func run(s Slot, records []model.MissionRecord, sel model.Selection) (payload any, err error) {
	defer func() {
		if r := recover(); r != nil {
			payload = nil
			err = fmt.Errorf("slot %s panicked: %v", s.Name, r)
		}
	}()
	return s.Handler(records, sel), nil
}
