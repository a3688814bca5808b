// Package ledger owns the authoritative nutrition state: the food log,
// daily totals, goals, favorites, weight history and per-day aggregates.
// Every mutation is written back to the store on the same call path.
package ledger

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"caloriescan/internal/model"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Store is the persistence boundary the ledger writes through.
type Store interface {
	Load() (model.AppState, error)
	Save(model.AppState) error
}

// Ledger is the single writer of all persisted entities. A mutex
// serializes access so callers may share one instance across goroutines.
type Ledger struct {
	mu     sync.Mutex
	store  Store
	log    *zap.Logger
	now    func() time.Time
	state  model.AppState
	lastID int64
}

// Open rehydrates the ledger from the store.
func Open(st Store, log *zap.Logger) (*Ledger, error) {
	state, err := st.Load()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	l := &Ledger{store: st, log: log, now: time.Now, state: state}
	for _, entry := range state.FoodItems {
		if entry.ID > l.lastID {
			l.lastID = entry.ID
		}
	}
	return l, nil
}

// AddEntry scales the product's per-100g values to the serving, appends
// the entry, updates the daily totals and merges it into today's
// historical record.
func (l *Ledger) AddEntry(p model.Product, servingG int, meal model.Meal) (model.FoodLogEntry, bool) {
	if servingG <= 0 || !model.ValidMeal(meal) {
		l.log.Debug("rejected log entry",
			zap.Int("serving_g", servingG),
			zap.String("meal", string(meal)))
		return model.FoodLogEntry{}, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry := model.FoodLogEntry{
		ID:       l.nextID(now),
		Name:     p.Name,
		Brand:    p.Brand,
		Calories: scaleToServing(p.Calories, servingG),
		ProteinG: scaleToServing(p.ProteinG, servingG),
		CarbsG:   scaleToServing(p.CarbsG, servingG),
		FatG:     scaleToServing(p.FatG, servingG),
		ServingG: servingG,
		Meal:     meal,
		AddedAt:  now.Format(timeLayout),
		Date:     now.Format(dateLayout),
	}

	l.state.FoodItems = append(l.state.FoodItems, entry)
	l.state.DailyCalories += entry.Calories
	l.state.DailyProtein += entry.ProteinG
	l.state.DailyCarbs += entry.CarbsG
	l.state.DailyFat += entry.FatG

	day := l.state.HistoricalData[entry.Date]
	day.Calories += entry.Calories
	day.ProteinG += entry.ProteinG
	day.CarbsG += entry.CarbsG
	day.FatG += entry.FatG
	day.Entries = append(day.Entries, entry)
	l.state.HistoricalData[entry.Date] = day

	l.persist()
	return entry, true
}

// RemoveEntry deletes the entry with the given id and subtracts its
// values from the daily totals. The historical record for the entry's
// date is left untouched; see DayDrift. Unknown ids are a no-op.
func (l *Ledger) RemoveEntry(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, entry := range l.state.FoodItems {
		if entry.ID != id {
			continue
		}
		l.state.FoodItems = append(l.state.FoodItems[:i], l.state.FoodItems[i+1:]...)
		l.state.DailyCalories -= entry.Calories
		l.state.DailyProtein -= entry.ProteinG
		l.state.DailyCarbs -= entry.CarbsG
		l.state.DailyFat -= entry.FatG
		l.persist()
		return true
	}
	return false
}

// ResetDay clears the food log and zeroes the daily totals. Historical
// records stay as recorded.
func (l *Ledger) ResetDay() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.FoodItems = []model.FoodLogEntry{}
	l.state.DailyCalories = 0
	l.state.DailyProtein = 0
	l.state.DailyCarbs = 0
	l.state.DailyFat = 0
	l.persist()
}

// AddFavorite snapshots the product into the favorites list.
func (l *Ledger) AddFavorite(p model.Product) model.Favorite {
	l.mu.Lock()
	defer l.mu.Unlock()

	fav := model.Favorite{ID: uuid.NewString(), Product: p}
	l.state.Favorites = append(l.state.Favorites, fav)
	l.persist()
	return fav
}

// AddWeightEntry parses raw as a weight value and appends it. A
// non-numeric or non-positive value is dropped silently.
func (l *Ledger) AddWeightEntry(raw string, date string) (model.WeightEntry, bool) {
	weight, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || weight <= 0 {
		l.log.Debug("dropped weight entry", zap.String("raw", raw))
		return model.WeightEntry{}, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if strings.TrimSpace(date) == "" {
		date = now.Format(dateLayout)
	}
	entry := model.WeightEntry{
		ID:         uuid.NewString(),
		Weight:     weight,
		Date:       date,
		RecordedAt: now,
	}
	l.state.WeightEntries = append(l.state.WeightEntries, entry)
	l.persist()
	return entry, true
}

// SetGoals replaces all four targets. Values are taken as given.
func (l *Ledger) SetGoals(calories, proteinG, carbsG, fatG int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.CalorieGoal = calories
	l.state.ProteinGoal = proteinG
	l.state.CarbGoal = carbsG
	l.state.FatGoal = fatG
	l.persist()
}

func (l *Ledger) SetDarkMode(dark bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.DarkMode = dark
	l.persist()
}

func (l *Ledger) Totals() model.DailyTotals {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Totals()
}

func (l *Ledger) Goals() model.Goals {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.GoalSet()
}

func (l *Ledger) DarkMode() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.DarkMode
}

func (l *Ledger) Entries() []model.FoodLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.FoodLogEntry, len(l.state.FoodItems))
	copy(out, l.state.FoodItems)
	return out
}

func (l *Ledger) Favorites() []model.Favorite {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Favorite, len(l.state.Favorites))
	copy(out, l.state.Favorites)
	return out
}

func (l *Ledger) WeightEntries() []model.WeightEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.WeightEntry, len(l.state.WeightEntries))
	copy(out, l.state.WeightEntries)
	return out
}

// History returns a copy of the per-day aggregate map.
func (l *Ledger) History() map[string]model.DayRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]model.DayRecord, len(l.state.HistoricalData))
	for date, rec := range l.state.HistoricalData {
		out[date] = rec
	}
	return out
}

// DayRecord returns the historical aggregate for one date.
func (l *Ledger) DayRecord(date string) (model.DayRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.state.HistoricalData[date]
	return rec, ok
}

// Drift pairs the live food-log sums for a date with the totals the
// historical record holds for it.
type Drift struct {
	Date     string            `json:"date"`
	Live     model.DailyTotals `json:"live"`
	Recorded model.DailyTotals `json:"recorded"`
}

// Diverged reports whether the two sides disagree.
func (d Drift) Diverged() bool {
	return d.Live != d.Recorded
}

// DayDrift exposes the divergence between the live log and the
// historical record for a date. Removing a same-day entry subtracts
// from the live totals but not from the record, so the two can differ;
// callers decide how to reconcile.
func (l *Ledger) DayDrift(date string) Drift {
	l.mu.Lock()
	defer l.mu.Unlock()

	var live model.DailyTotals
	for _, entry := range l.state.FoodItems {
		if entry.Date != date {
			continue
		}
		live.Calories += entry.Calories
		live.ProteinG += entry.ProteinG
		live.CarbsG += entry.CarbsG
		live.FatG += entry.FatG
	}
	rec := l.state.HistoricalData[date]
	return Drift{
		Date: date,
		Live: live,
		Recorded: model.DailyTotals{
			Calories: rec.Calories,
			ProteinG: rec.ProteinG,
			CarbsG:   rec.CarbsG,
			FatG:     rec.FatG,
		},
	}
}

// Today returns the current calendar date the ledger logs against.
func (l *Ledger) Today() string {
	return l.now().Format(dateLayout)
}

// nextID hands out creation-time ids that stay strictly increasing even
// when two entries land in the same millisecond. Callers hold l.mu.
func (l *Ledger) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return id
}

// persist writes the snapshot through synchronously. A failed write is
// logged, not raised; the in-memory state stays authoritative.
func (l *Ledger) persist() {
	if err := l.store.Save(l.state); err != nil {
		l.log.Warn("persist snapshot", zap.Error(err))
	}
}

func scaleToServing(per100, servingG int) int {
	return int(math.Round(float64(per100) * float64(servingG) / 100))
}
