// Package view derives presentation values from ledger state: goal
// progress, trailing series, macro split, screen state and transient
// notifications. It never mutates the ledger.
package view

import "caloriescan/internal/model"

// Screen is the active UI state. Each variant carries exactly the data
// it needs, so states like "add with no pending product" cannot exist.
type Screen interface {
	screen()
}

type Dashboard struct{}

type Scan struct{}

type Search struct {
	Query   string
	Results []model.Product
}

// Add holds the product pending confirmation before it is logged.
type Add struct {
	Product model.Product
}

func (Dashboard) screen() {}
func (Scan) screen()      {}
func (Search) screen()    {}
func (Add) screen()       {}
