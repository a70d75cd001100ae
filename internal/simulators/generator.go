package simulators

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"rx-analytics/internal/models"
	"rx-analytics/internal/shared/ulid"

	"github.com/shopspring/decimal"
)

// Mode selects how a report absorbs a tick.
type Mode string

const (
	// ModeDeltas applies a handful of new events to the report's live tally.
	ModeDeltas Mode = "deltas"
	// ModeReplaceToday supersedes every event of today with a freshly generated list.
	ModeReplaceToday Mode = "replace_today"
)

// Break statuses carried in the status tag.
const (
	StatusOnBreak  = "on_break"
	StatusReturned = "returned"
)

const (
	workdayStartHour = 9
	workdayEndHour   = 18
	baseOnBreakRatio = 0.2
	maxDeltasPerTick = 3
)

// Target describes one report the simulator feeds.
type Target struct {
	Report string           `json:"report"`
	Kind   models.EventKind `json:"kind"`
	Mode   Mode             `json:"mode"`
}

// Tick is what one simulation period produces for a report.
type Tick struct {
	Report string
	Mode   Mode
	At     time.Time
	Events []*models.Event
}

// Generator manufactures synthetic floor events. It is safe for concurrent use; all randomness
// comes from one seeded source so a fixed seed replays the same roster and history.
type Generator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	roster []Employee
	hints  map[string]int
	loc    *time.Location
	newID  func() string
}

func NewGenerator(seed int64, employees int, loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	return &Generator{
		rng:    rng,
		roster: NewRoster(rng, max(employees, 1)),
		hints:  make(map[string]int),
		loc:    loc,
		newID:  ulid.NewULID,
	}
}

func (g *Generator) Roster() []Employee {
	out := make([]Employee, len(g.roster))
	copy(out, g.roster)
	return out
}

// SetOnBreakHint records a desired on-break count for report. A negative n clears the hint.
func (g *Generator) SetOnBreakHint(report string, n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n < 0 {
		delete(g.hints, report)
		return
	}
	g.hints[report] = n
}

func (g *Generator) OnBreakHint(report string) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.hints[report]
	return n, ok
}

// Next produces the tick for target at now.
func (g *Generator) Next(target Target, now time.Time) Tick {
	g.mu.Lock()
	defer g.mu.Unlock()

	tick := Tick{Report: target.Report, Mode: target.Mode, At: now}
	switch target.Mode {
	case ModeReplaceToday:
		tick.Events = g.breaksToday(target.Report, now)
	default:
		n := 1 + g.rng.IntN(maxDeltasPerTick)
		tick.Events = make([]*models.Event, 0, n)
		for i := 0; i < n; i++ {
			employee := g.roster[g.rng.IntN(len(g.roster))]
			tick.Events = append(tick.Events, g.event(target.Kind, employee, now))
		}
	}
	return tick
}

// History generates events of kind for every day of dateRange, about perDay per employee per
// day, all received before now.
func (g *Generator) History(kind models.EventKind, dateRange models.DateRange, now time.Time, perDay int) []*models.Event {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]*models.Event, 0)
	for _, day := range dateRange.Days() {
		day = models.StartOfDay(day, g.loc)
		for _, employee := range g.roster {
			n := g.rng.IntN(2*perDay + 1)
			for i := 0; i < n; i++ {
				at := g.workTime(day)
				if !at.Before(now) {
					continue
				}
				out = append(out, g.event(kind, employee, at))
			}
		}
	}
	return out
}

func (g *Generator) event(kind models.EventKind, employee Employee, at time.Time) *models.Event {
	var minutes float64
	payloads := map[string]decimal.Decimal{}
	switch kind {
	case models.EventBreak:
		minutes = 5 + g.rng.Float64()*70
	case models.EventCall:
		minutes = g.rng.ExpFloat64() * 2
	default:
		// mostly a few minutes, with a long tail past the overflow buckets
		minutes = 0.2 + g.rng.ExpFloat64()*3
		payloads[models.PayloadSaleValue] = decimal.NewFromInt(int64(50_00 + g.rng.IntN(2450_00))).Shift(-2)
		payloads[models.PayloadAccuracy] = decimal.NewFromFloat(80 + g.rng.Float64()*20).Round(1)
	}
	minutes = math.Round(minutes*100) / 100

	completed := at.Add(time.Duration(minutes * float64(time.Minute)))
	return &models.Event{
		ID:              g.newID(),
		Kind:            kind,
		ReceivedAt:      at,
		CompletedAt:     &completed,
		DurationMinutes: minutes,
		Tags:            employeeTags(employee),
		Payloads:        payloads,
	}
}

// breaksToday lists the breaks taken so far today. The share of employees currently on break
// leans toward the report's hint without being pinned to it.
func (g *Generator) breaksToday(report string, now time.Time) []*models.Event {
	today := models.StartOfDay(now, g.loc)
	ratio := baseOnBreakRatio
	if hint, ok := g.hints[report]; ok {
		hinted := math.Min(float64(hint)/float64(len(g.roster)), 1)
		ratio = (baseOnBreakRatio + hinted) / 2
	}

	out := make([]*models.Event, 0, len(g.roster))
	for _, employee := range g.roster {
		for i := g.rng.IntN(3); i > 0; i-- {
			at := g.workTime(today)
			if !at.Before(now) {
				continue
			}
			e := g.event(models.EventBreak, employee, at)
			if e.CompletedAt.After(now) {
				continue
			}
			e.Tags[models.TagStatus] = StatusReturned
			out = append(out, e)
		}
		if g.rng.Float64() >= ratio {
			continue
		}
		elapsed := math.Round(g.rng.Float64()*45*100) / 100
		start := now.Add(-time.Duration(elapsed * float64(time.Minute)))
		if start.Before(today) {
			start = today
			elapsed = math.Round(now.Sub(today).Minutes()*100) / 100
		}
		tags := employeeTags(employee)
		tags[models.TagStatus] = StatusOnBreak
		out = append(out, &models.Event{
			ID:              g.newID(),
			Kind:            models.EventBreak,
			ReceivedAt:      start,
			DurationMinutes: elapsed,
			Tags:            tags,
		})
	}
	return out
}

func (g *Generator) workTime(day time.Time) time.Time {
	span := (workdayEndHour - workdayStartHour) * 60 * 60
	return day.Add(time.Duration(workdayStartHour)*time.Hour + time.Duration(g.rng.IntN(span))*time.Second)
}

func employeeTags(e Employee) map[string]string {
	return map[string]string{
		models.TagEmployeeID:   e.ID,
		models.TagEmployeeName: e.Name,
		models.TagLocation:     e.Location,
		models.TagChannel:      e.Channel,
		models.TagState:        e.State,
		models.TagCity:         e.City,
		models.TagStoreID:      e.StoreID,
		models.TagClient:       e.Client,
	}
}
