package reports

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/shopspring/decimal"

	"library-admin/internal/services"
	"library-admin/internal/timeutil"
)

// pdfCurrency maps symbols the core PDF fonts cannot draw.
func pdfCurrency(symbol string) string {
	switch symbol {
	case "₹":
		return "Rs. "
	case "":
		return ""
	}
	return symbol
}

// RenderPDF lays out the summary cards and the dues table on A4 landscape.
func RenderPDF(report *services.Report, currency string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	cur := tr(pdfCurrency(currency))
	money := func(d decimal.Decimal) string { return cur + d.StringFixed(2) }

	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, "Library - Borrowers & Due Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.In(timeutil.Location).Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Summary
	stats := report.Stats
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 11)
	labels := []string{"Authors", "Genres", "Books", "Borrow Records", "Available Copies", "Overdue", "Fines Outstanding"}
	values := []string{
		strconv.Itoa(stats.Authors),
		strconv.Itoa(stats.Genres),
		strconv.Itoa(stats.Books),
		strconv.Itoa(stats.Borrows),
		strconv.Itoa(stats.AvailableCopies),
		strconv.Itoa(stats.Overdue),
		money(stats.FinesOutstanding),
	}
	cardWidth := 277.0 / float64(len(labels))
	for _, l := range labels {
		pdf.CellFormat(cardWidth, 7, l, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	for _, v := range values {
		pdf.CellFormat(cardWidth, 8, v, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(12)

	// Table
	widths := []float64{12, 60, 45, 26, 26, 18, 18, 18, 18, 36}
	headers := []string{"#", "Book", "Borrower", "Borrowed On", "Returned", "Rented", "Taken", "Overdue", "Fine", "Total"}
	drawHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(200, 200, 200)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	drawHeader()

	pdf.SetFont("Arial", "", 9)
	if len(report.Rows) == 0 {
		pdf.CellFormat(277, 8, "No borrow records found.", "1", 1, "C", false, 0, "")
	}
	for _, row := range report.Rows {
		if pdf.GetY() > 190 {
			pdf.AddPage()
			drawHeader()
			pdf.SetFont("Arial", "", 9)
		}
		rec := row.Record
		cells := []string{
			strconv.Itoa(rec.ID),
			tr(rec.BookTitle()),
			tr(rec.BorrowerName),
			dashless(DisplayDate(rec.BorrowedOn)),
			ReturnLabel(&rec),
			strconv.Itoa(rec.RentedDays),
			dashless(row.Charge.DaysTakenLabel()),
			OverdueLabel(row.Charge),
			money(row.Charge.Fine),
			money(row.Charge.TotalCharge),
		}
		if row.Charge.IsOverdue() {
			pdf.SetTextColor(180, 0, 0)
		}
		for i, c := range cells {
			align := "L"
			if i != 1 && i != 2 {
				align = "C"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// dashless swaps the em dash, which the core fonts lack, for a hyphen.
func dashless(s string) string {
	if s == "—" {
		return "-"
	}
	return s
}
