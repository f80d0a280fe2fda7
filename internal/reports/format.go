// Package reports renders the borrowers & dues report for download.
package reports

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"library-admin/internal/fine"
	"library-admin/internal/models"
	"library-admin/internal/timeutil"
)

const notReturned = "Not returned"

// Money formats an amount with two decimals behind the currency symbol.
func Money(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}

// OverdueLabel renders overdue days as "+N", or "0" when on time.
func OverdueLabel(r fine.Result) string {
	if !r.IsOverdue() {
		return "0"
	}
	return "+" + strconv.Itoa(r.OverdueDays)
}

// DisplayDate formats a date for tables, "—" when absent.
func DisplayDate(d models.Date) string {
	if d.IsZero() {
		return "—"
	}
	return d.In(timeutil.Location).Format(timeutil.DisplayLayout)
}

// ReturnLabel is the return date or "Not returned".
func ReturnLabel(rec *models.BorrowRecord) string {
	if !rec.Returned() {
		return notReturned
	}
	return DisplayDate(rec.ReturnDate)
}

// Filename names an export generated at t.
func Filename(ext string, t time.Time) string {
	return fmt.Sprintf("borrows-report-%s.%s", t.In(timeutil.Location).Format("20060102-150405"), ext)
}
