// Package fine computes what a borrower owes for a loan: the agreed base
// charge plus a fixed per-day fine for every day kept beyond the rental period.
//
// It is the only place the fine formula lives. The borrow records list and
// the reports view both go through Calculator so their figures cannot drift.
package fine

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"library-admin/internal/timeutil"
)

// DefaultPerDay is the fine charged for each overdue day.
var DefaultPerDay = decimal.NewFromInt(10)

// Input holds the four loan fields the calculation depends on.
type Input struct {
	BorrowedOn *time.Time
	ReturnDate *time.Time
	RentedDays int
	BaseCharge decimal.Decimal
}

// Result is the derived, never-stored view of a loan's charges.
type Result struct {
	// Known is false when the loan has no start date and nothing could be computed.
	Known bool `json:"known"`
	// Outstanding is true when no return date was given and "now" was used instead.
	Outstanding bool `json:"outstanding"`
	// ReturnBeforeBorrow flags a return date earlier than the borrow date.
	// DaysTaken is then negative and left unclamped.
	ReturnBeforeBorrow bool `json:"return_before_borrow"`

	DaysTaken   int             `json:"days_taken"`
	OverdueDays int             `json:"overdue_days"`
	Fine        decimal.Decimal `json:"fine"`
	TotalCharge decimal.Decimal `json:"total_charge"`
}

// IsOverdue reports whether any overdue days accrued.
func (r Result) IsOverdue() bool {
	return r.OverdueDays > 0
}

// DaysTakenLabel renders days taken for display, "—" when unknown.
func (r Result) DaysTakenLabel() string {
	if !r.Known {
		return "—"
	}
	return strconv.Itoa(r.DaysTaken)
}

// Calculator applies a fixed per-day fine rate.
type Calculator struct {
	PerDay decimal.Decimal
}

// NewCalculator returns a Calculator charging perDay for each overdue day.
func NewCalculator(perDay decimal.Decimal) *Calculator {
	return &Calculator{PerDay: perDay}
}

// Calculate derives days taken, overdue days and the total charge.
// now stands in for the return date of a loan that is still outstanding;
// the calculator never reads the clock itself.
func (c *Calculator) Calculate(in Input, now time.Time) Result {
	base := in.BaseCharge.Round(2)
	if in.BorrowedOn == nil {
		return Result{Fine: decimal.Zero, TotalCharge: base}
	}

	res := Result{Known: true}
	end := now
	if in.ReturnDate != nil {
		end = *in.ReturnDate
	} else {
		res.Outstanding = true
	}

	res.DaysTaken = timeutil.CeilDays(*in.BorrowedOn, end)
	res.ReturnBeforeBorrow = end.Before(*in.BorrowedOn)

	if res.DaysTaken > in.RentedDays {
		res.OverdueDays = res.DaysTaken - in.RentedDays
	}

	res.Fine = c.PerDay.Mul(decimal.NewFromInt(int64(res.OverdueDays)))
	res.TotalCharge = in.BaseCharge.Add(res.Fine).Round(2)
	return res
}
