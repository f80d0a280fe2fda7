package reports

import (
	"encoding/csv"
	"io"
	"strconv"

	"library-admin/internal/services"
)

var csvHeader = []string{
	"ID", "Book", "Borrower", "Borrowed On", "Return Date", "Rented Days",
	"Days Taken", "Overdue Days", "Base Charge", "Fine", "Total Charge",
}

// WriteCSV writes one line per borrow record. Amounts are plain numbers so
// spreadsheets can sum them.
func WriteCSV(w io.Writer, report *services.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, row := range report.Rows {
		rec := row.Record
		returned := notReturned
		if rec.Returned() {
			returned = rec.ReturnDate.String()
		}
		if err := cw.Write([]string{
			strconv.Itoa(rec.ID),
			rec.BookTitle(),
			rec.BorrowerName,
			rec.BorrowedOn.String(),
			returned,
			strconv.Itoa(rec.RentedDays),
			row.Charge.DaysTakenLabel(),
			strconv.Itoa(row.Charge.OverdueDays),
			rec.Charges.StringFixed(2),
			row.Charge.Fine.StringFixed(2),
			row.Charge.TotalCharge.StringFixed(2),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
