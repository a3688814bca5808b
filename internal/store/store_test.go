package store_test

import (
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"caloriescan/internal/model"
	"caloriescan/internal/store"
)

func openTestStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "caloriescan.db")
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st, path
}

func TestLoadMissingSnapshotReturnsDefaults(t *testing.T) {
	st, _ := openTestStore(t)

	state, err := st.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state.CalorieGoal != model.DefaultCalorieGoal ||
		state.ProteinGoal != model.DefaultProteinGoal ||
		state.CarbGoal != model.DefaultCarbGoal ||
		state.FatGoal != model.DefaultFatGoal {
		t.Fatalf("unexpected default goals: %+v", state)
	}
	if len(state.FoodItems) != 0 || state.DarkMode {
		t.Fatalf("expected empty default state, got %+v", state)
	}
	if state.HistoricalData == nil {
		t.Fatal("historical map not initialized")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st, _ := openTestStore(t)

	now := time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC)
	want := model.AppState{
		FoodItems: []model.FoodLogEntry{
			{
				ID:       now.UnixMilli(),
				Name:     "Apple",
				Brand:    "Orchard",
				Calories: 78,
				ProteinG: 0,
				CarbsG:   21,
				FatG:     0,
				ServingG: 150,
				Meal:     model.MealSnacks,
				AddedAt:  now.Format(time.RFC3339),
				Date:     "2026-08-29",
			},
		},
		DailyCalories: 78,
		DailyCarbs:    21,
		CalorieGoal:   1800,
		ProteinGoal:   140,
		CarbGoal:      200,
		FatGoal:       60,
		Favorites: []model.Favorite{
			{ID: "fav-1", Product: model.Product{Name: "Apple", Brand: "Orchard", Calories: 52, CarbsG: 14}},
		},
		WeightEntries: []model.WeightEntry{
			{ID: "w-1", Weight: 72.5, Date: "2026-08-01", RecordedAt: now},
		},
		HistoricalData: map[string]model.DayRecord{
			"2026-08-29": {
				Calories: 78,
				CarbsG:   21,
				Entries: []model.FoodLogEntry{
					{ID: now.UnixMilli(), Name: "Apple", Calories: 78, CarbsG: 21, ServingG: 150, Meal: model.MealSnacks, Date: "2026-08-29"},
				},
			},
		},
		DarkMode: true,
	}

	if err := st.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := st.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	st, _ := openTestStore(t)

	first := model.DefaultState()
	first.DailyCalories = 100
	if err := st.Save(first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := model.DefaultState()
	second.DailyCalories = 250
	if err := st.Save(second); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := st.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DailyCalories != 250 {
		t.Fatalf("daily calories = %d, want 250", got.DailyCalories)
	}
}

func TestCorruptSnapshotDegradesToDefaults(t *testing.T) {
	st, path := openTestStore(t)
	if err := st.Save(model.DefaultState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec(`UPDATE app_state SET value = 'not json{{' WHERE key = 'calorieAppData'`); err != nil {
		t.Fatalf("corrupt snapshot: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw db: %v", err)
	}

	st2, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer st2.Close()

	state, err := st2.Load()
	if err != nil {
		t.Fatalf("load corrupt snapshot: %v", err)
	}
	if state.CalorieGoal != model.DefaultCalorieGoal || len(state.FoodItems) != 0 {
		t.Fatalf("corrupt snapshot did not degrade to defaults: %+v", state)
	}
}

func TestPartialSnapshotBackfillsCollections(t *testing.T) {
	st, path := openTestStore(t)
	if err := st.Save(model.DefaultState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec(`UPDATE app_state SET value = '{"calorieGoal": 1900}' WHERE key = 'calorieAppData'`); err != nil {
		t.Fatalf("write partial snapshot: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw db: %v", err)
	}

	st2, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer st2.Close()

	state, err := st2.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state.CalorieGoal != 1900 {
		t.Fatalf("calorie goal = %d, want 1900", state.CalorieGoal)
	}
	if state.FoodItems == nil || state.Favorites == nil || state.WeightEntries == nil || state.HistoricalData == nil {
		t.Fatalf("collections not backfilled: %+v", state)
	}
}
