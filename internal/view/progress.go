package view

import (
	"math"
	"time"

	"caloriescan/internal/model"
)

const dateLayout = "2006-01-02"

// ProgressReport holds percentage-of-goal values, each capped at 100.
type ProgressReport struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein"`
	CarbsG   int `json:"carbs"`
	FatG     int `json:"fat"`
}

// Progress derives capped goal percentages from the daily totals.
func Progress(totals model.DailyTotals, goals model.Goals) ProgressReport {
	return ProgressReport{
		Calories: percentOfGoal(totals.Calories, goals.Calories),
		ProteinG: percentOfGoal(totals.ProteinG, goals.ProteinG),
		CarbsG:   percentOfGoal(totals.CarbsG, goals.CarbsG),
		FatG:     percentOfGoal(totals.FatG, goals.FatG),
	}
}

func percentOfGoal(value, goal int) int {
	if goal <= 0 {
		if value <= 0 {
			return 0
		}
		return 100
	}
	pct := int(math.Round(float64(value) / float64(goal) * 100))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// DayPoint is one date in a trailing series.
type DayPoint struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
	ProteinG int    `json:"protein"`
	CarbsG   int    `json:"carbs"`
	FatG     int    `json:"fat"`
}

// WeeklySeries builds the 7-day trailing series ending at today,
// oldest first. Dates without a historical record are all-zero.
func WeeklySeries(history map[string]model.DayRecord, today time.Time) []DayPoint {
	return TrailingSeries(history, today, 7)
}

// TrailingSeries is WeeklySeries for an arbitrary day count.
func TrailingSeries(history map[string]model.DayRecord, today time.Time, days int) []DayPoint {
	if days <= 0 {
		return nil
	}
	out := make([]DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(dateLayout)
		point := DayPoint{Date: date}
		if rec, ok := history[date]; ok {
			point.Calories = rec.Calories
			point.ProteinG = rec.ProteinG
			point.CarbsG = rec.CarbsG
			point.FatG = rec.FatG
		}
		out = append(out, point)
	}
	return out
}

// MacroSplit is the share of calories contributed by each macro, in
// percent. Zero totals yield a zero split.
type MacroSplit struct {
	ProteinPct int `json:"protein_pct"`
	CarbsPct   int `json:"carbs_pct"`
	FatPct     int `json:"fat_pct"`
}

// Macros converts gram totals into a calorie-share split at 4/4/9 kcal
// per gram.
func Macros(totals model.DailyTotals) MacroSplit {
	proteinCal := float64(totals.ProteinG) * 4
	carbsCal := float64(totals.CarbsG) * 4
	fatCal := float64(totals.FatG) * 9
	sum := proteinCal + carbsCal + fatCal
	if sum <= 0 {
		return MacroSplit{}
	}
	return MacroSplit{
		ProteinPct: int(math.Round(proteinCal / sum * 100)),
		CarbsPct:   int(math.Round(carbsCal / sum * 100)),
		FatPct:     int(math.Round(fatCal / sum * 100)),
	}
}
