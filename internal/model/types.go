package model

import "time"

// Meal is the log category an entry is recorded against.
type Meal string

const (
	MealBreakfast Meal = "breakfast"
	MealLunch     Meal = "lunch"
	MealDinner    Meal = "dinner"
	MealSnacks    Meal = "snacks"
)

// ValidMeal reports whether m is one of the four known meal categories.
func ValidMeal(m Meal) bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnacks:
		return true
	}
	return false
}

// Product is a transient lookup result. All nutrient values are per 100 g.
type Product struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Calories int    `json:"calories"`
	ProteinG int    `json:"protein"`
	CarbsG   int    `json:"carbs"`
	FatG     int    `json:"fat"`
	Barcode  string `json:"barcode,omitempty"`
	ImageURL string `json:"image,omitempty"`
}

// FoodLogEntry is one recorded consumption event. Nutrient values are
// already scaled to the logged serving. Immutable once created.
type FoodLogEntry struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Calories int    `json:"calories"`
	ProteinG int    `json:"protein"`
	CarbsG   int    `json:"carbs"`
	FatG     int    `json:"fat"`
	ServingG int    `json:"serving"`
	Meal     Meal   `json:"meal"`
	AddedAt  string `json:"addedAt"`
	Date     string `json:"date"`
}

// Favorite is a Product snapshot kept indefinitely by user action.
type Favorite struct {
	ID string `json:"id"`
	Product
}

type WeightEntry struct {
	ID         string    `json:"id"`
	Weight     float64   `json:"weight"`
	Date       string    `json:"date"`
	RecordedAt time.Time `json:"recordedAt"`
}

// DailyTotals are running sums over the current day's food log.
type DailyTotals struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein"`
	CarbsG   int `json:"carbs"`
	FatG     int `json:"fat"`
}

// DayRecord is the historical aggregate for one calendar date.
type DayRecord struct {
	Calories int            `json:"calories"`
	ProteinG int            `json:"protein"`
	CarbsG   int            `json:"carbs"`
	FatG     int            `json:"fat"`
	Entries  []FoodLogEntry `json:"entries"`
}

type Goals struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein"`
	CarbsG   int `json:"carbs"`
	FatG     int `json:"fat"`
}

const (
	DefaultCalorieGoal = 2000
	DefaultProteinGoal = 150
	DefaultCarbGoal    = 250
	DefaultFatGoal     = 65
)

// AppState is the full persisted snapshot. It round-trips losslessly
// through the store as a single JSON value.
type AppState struct {
	FoodItems      []FoodLogEntry       `json:"foodItems"`
	DailyCalories  int                  `json:"dailyCalories"`
	DailyProtein   int                  `json:"dailyProtein"`
	DailyCarbs     int                  `json:"dailyCarbs"`
	DailyFat       int                  `json:"dailyFat"`
	CalorieGoal    int                  `json:"calorieGoal"`
	ProteinGoal    int                  `json:"proteinGoal"`
	CarbGoal       int                  `json:"carbGoal"`
	FatGoal        int                  `json:"fatGoal"`
	Favorites      []Favorite           `json:"favorites"`
	WeightEntries  []WeightEntry        `json:"weightEntries"`
	HistoricalData map[string]DayRecord `json:"historicalData"`
	DarkMode       bool                 `json:"darkMode"`
}

// DefaultState is the state used on first run and whenever the stored
// snapshot is absent or unreadable.
func DefaultState() AppState {
	return AppState{
		FoodItems:      []FoodLogEntry{},
		CalorieGoal:    DefaultCalorieGoal,
		ProteinGoal:    DefaultProteinGoal,
		CarbGoal:       DefaultCarbGoal,
		FatGoal:        DefaultFatGoal,
		Favorites:      []Favorite{},
		WeightEntries:  []WeightEntry{},
		HistoricalData: map[string]DayRecord{},
	}
}

// Totals returns the running daily sums as one value.
func (s AppState) Totals() DailyTotals {
	return DailyTotals{
		Calories: s.DailyCalories,
		ProteinG: s.DailyProtein,
		CarbsG:   s.DailyCarbs,
		FatG:     s.DailyFat,
	}
}

// GoalSet returns the four goal targets as one value.
func (s AppState) GoalSet() Goals {
	return Goals{
		Calories: s.CalorieGoal,
		ProteinG: s.ProteinGoal,
		CarbsG:   s.CarbGoal,
		FatG:     s.FatGoal,
	}
}
