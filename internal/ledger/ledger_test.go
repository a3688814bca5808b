package ledger_test

import (
	"path/filepath"
	"testing"

	"caloriescan/internal/ledger"
	"caloriescan/internal/model"
	"caloriescan/internal/store"
)

func newTestLedger(t *testing.T) (*ledger.Ledger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "caloriescan.db")
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	led, err := ledger.Open(st, nil)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	return led, path
}

var apple = model.Product{Name: "Apple", Brand: "Orchard", Calories: 52, ProteinG: 0, CarbsG: 14, FatG: 0}

func TestAddEntryScalesToServing(t *testing.T) {
	led, _ := newTestLedger(t)

	entry, ok := led.AddEntry(apple, 150, model.MealSnacks)
	if !ok {
		t.Fatal("add entry rejected")
	}
	if entry.Calories != 78 || entry.CarbsG != 21 || entry.ProteinG != 0 || entry.FatG != 0 {
		t.Fatalf("unexpected scaled entry: %+v", entry)
	}
	if entry.ServingG != 150 || entry.Meal != model.MealSnacks {
		t.Fatalf("unexpected entry fields: %+v", entry)
	}
	if got := led.Totals().Calories; got != 78 {
		t.Fatalf("daily calories = %d, want 78", got)
	}
}

func TestAddEntryRejectsBadInput(t *testing.T) {
	led, _ := newTestLedger(t)

	if _, ok := led.AddEntry(apple, 0, model.MealSnacks); ok {
		t.Fatal("zero serving accepted")
	}
	if _, ok := led.AddEntry(apple, 100, model.Meal("brunch")); ok {
		t.Fatal("unknown meal accepted")
	}
	if len(led.Entries()) != 0 {
		t.Fatal("rejected adds changed the log")
	}
}

func TestRemoveEntryIsInverseOfAdd(t *testing.T) {
	led, _ := newTestLedger(t)

	before := led.Totals()
	entry, _ := led.AddEntry(apple, 150, model.MealLunch)
	if !led.RemoveEntry(entry.ID) {
		t.Fatal("remove reported no-op for existing entry")
	}
	if got := led.Totals(); got != before {
		t.Fatalf("totals after add+remove = %+v, want %+v", got, before)
	}
	if len(led.Entries()) != 0 {
		t.Fatal("entry still present after removal")
	}
}

func TestRemoveFirstOfTwoEntries(t *testing.T) {
	led, _ := newTestLedger(t)

	first, _ := led.AddEntry(apple, 150, model.MealSnacks) // 78 cal
	second, _ := led.AddEntry(model.Product{Name: "Pizza Slice", Calories: 250}, 100, model.MealDinner)

	if !led.RemoveEntry(first.ID) {
		t.Fatal("remove failed")
	}
	if got := led.Totals().Calories; got != 250 {
		t.Fatalf("daily calories = %d, want 250", got)
	}
	entries := led.Entries()
	if len(entries) != 1 || entries[0].ID != second.ID {
		t.Fatalf("unexpected remaining entries: %+v", entries)
	}
}

func TestRemoveEntryUnknownIDIsNoop(t *testing.T) {
	led, _ := newTestLedger(t)

	led.AddEntry(apple, 100, model.MealBreakfast)
	before := led.Totals()
	if led.RemoveEntry(12345) {
		t.Fatal("removal of unknown id reported success")
	}
	if led.Totals() != before {
		t.Fatal("totals changed on unknown-id removal")
	}
}

func TestEntryIDsStrictlyIncrease(t *testing.T) {
	led, _ := newTestLedger(t)

	var last int64
	for i := 0; i < 5; i++ {
		entry, _ := led.AddEntry(apple, 100, model.MealSnacks)
		if entry.ID <= last {
			t.Fatalf("id %d not greater than previous %d", entry.ID, last)
		}
		last = entry.ID
	}
}

func TestResetDayKeepsHistory(t *testing.T) {
	led, _ := newTestLedger(t)

	led.AddEntry(apple, 150, model.MealSnacks)
	today := led.Today()
	led.ResetDay()

	if got := led.Totals(); got != (model.DailyTotals{}) {
		t.Fatalf("totals after reset = %+v, want zeros", got)
	}
	if len(led.Entries()) != 0 {
		t.Fatal("log not cleared by reset")
	}
	rec, ok := led.DayRecord(today)
	if !ok || rec.Calories != 78 {
		t.Fatalf("historical record lost by reset: %+v ok=%v", rec, ok)
	}
}

func TestDayDriftAfterSameDayRemoval(t *testing.T) {
	led, _ := newTestLedger(t)

	entry, _ := led.AddEntry(apple, 150, model.MealSnacks)
	led.RemoveEntry(entry.ID)

	drift := led.DayDrift(led.Today())
	if !drift.Diverged() {
		t.Fatal("expected divergence after same-day removal")
	}
	if drift.Live.Calories != 0 || drift.Recorded.Calories != 78 {
		t.Fatalf("unexpected drift: %+v", drift)
	}
}

func TestAddWeightEntryDropsBadInput(t *testing.T) {
	led, _ := newTestLedger(t)

	for _, raw := range []string{"abc", "-2", "0", ""} {
		if _, ok := led.AddWeightEntry(raw, ""); ok {
			t.Fatalf("weight input %q accepted", raw)
		}
	}
	if len(led.WeightEntries()) != 0 {
		t.Fatal("bad weight inputs were recorded")
	}

	entry, ok := led.AddWeightEntry(" 72.5 ", "2026-08-01")
	if !ok || entry.Weight != 72.5 || entry.Date != "2026-08-01" || entry.ID == "" {
		t.Fatalf("unexpected weight entry: %+v ok=%v", entry, ok)
	}
}

func TestSetGoalsTakesValuesAsGiven(t *testing.T) {
	led, _ := newTestLedger(t)

	led.SetGoals(-100, 0, 300, 70)
	goals := led.Goals()
	if goals.Calories != -100 || goals.ProteinG != 0 || goals.CarbsG != 300 || goals.FatG != 70 {
		t.Fatalf("unexpected goals: %+v", goals)
	}
}

func TestAddFavoriteSnapshotsProduct(t *testing.T) {
	led, _ := newTestLedger(t)

	fav := led.AddFavorite(apple)
	if fav.ID == "" || fav.Name != "Apple" {
		t.Fatalf("unexpected favorite: %+v", fav)
	}
	favorites := led.Favorites()
	if len(favorites) != 1 || favorites[0].Product != apple {
		t.Fatalf("unexpected favorites list: %+v", favorites)
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caloriescan.db")

	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	led, err := ledger.Open(st, nil)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	entry, _ := led.AddEntry(apple, 150, model.MealSnacks)
	led.SetGoals(1800, 140, 200, 60)
	led.AddFavorite(apple)
	led.AddWeightEntry("71", "")
	led.SetDarkMode(true)
	if err := st.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	st2, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer st2.Close()
	led2, err := ledger.Open(st2, nil)
	if err != nil {
		t.Fatalf("reopen ledger: %v", err)
	}

	entries := led2.Entries()
	if len(entries) != 1 || entries[0] != entry {
		t.Fatalf("entries did not survive reopen: %+v", entries)
	}
	if led2.Totals().Calories != 78 {
		t.Fatalf("totals did not survive reopen: %+v", led2.Totals())
	}
	if goals := led2.Goals(); goals.Calories != 1800 {
		t.Fatalf("goals did not survive reopen: %+v", goals)
	}
	if len(led2.Favorites()) != 1 || len(led2.WeightEntries()) != 1 {
		t.Fatal("favorites or weights did not survive reopen")
	}
	if !led2.DarkMode() {
		t.Fatal("theme flag did not survive reopen")
	}
}
