package models

import "github.com/shopspring/decimal"

// LibraryStats is the aggregate shown on the reports page.
type LibraryStats struct {
	Authors          int             `json:"authors"`
	Genres           int             `json:"genres"`
	Books            int             `json:"books"`
	Borrows          int             `json:"borrows"`
	AvailableCopies  int             `json:"available_copies"`
	Outstanding      int             `json:"outstanding"`
	Overdue          int             `json:"overdue"`
	FinesOutstanding decimal.Decimal `json:"fines_outstanding"`
}

// ChartSlice is one entry of the data-distribution chart.
type ChartSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Distribution returns the per-resource counts in display order.
func (s LibraryStats) Distribution() []ChartSlice {
	return []ChartSlice{
		{Name: "Authors", Value: s.Authors},
		{Name: "Genres", Value: s.Genres},
		{Name: "Books", Value: s.Books},
		{Name: "Borrows", Value: s.Borrows},
	}
}
