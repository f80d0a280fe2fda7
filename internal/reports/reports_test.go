package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin/internal/fine"
	"library-admin/internal/models"
	"library-admin/internal/services"
	"library-admin/internal/timeutil"
)

func sampleReport(t *testing.T) *services.Report {
	t.Helper()
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, timeutil.Location)
	calc := fine.NewCalculator(fine.DefaultPerDay)

	records := []models.BorrowRecord{
		{
			ID:           5,
			Book:         &models.Book{ID: 3, Title: "Dune"},
			BorrowerName: "Asha",
			BorrowedOn:   models.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, timeutil.Location)),
			ReturnDate:   models.NewDate(time.Date(2024, 1, 10, 0, 0, 0, 0, timeutil.Location)),
			RentedDays:   5,
			Charges:      decimal.NewFromInt(100),
		},
		{
			ID:           6,
			BorrowerName: "Ravi",
			RentedDays:   3,
			Charges:      decimal.RequireFromString("40.5"),
		},
	}

	rows := make([]services.BorrowView, 0, len(records))
	for i := range records {
		rows = append(rows, services.BorrowView{Record: records[i], Charge: calc.Calculate(services.FineInput(&records[i]), now)})
	}
	return &services.Report{
		Stats:       models.LibraryStats{Authors: 1, Genres: 1, Books: 1, Borrows: 2, AvailableCopies: 4, FinesOutstanding: decimal.Zero},
		Rows:        rows,
		GeneratedAt: now,
	}
}

func Test_WriteCSV(t *testing.T) {
	// arrange
	var buf bytes.Buffer

	// act
	err := WriteCSV(&buf, sampleReport(t))

	// assert
	require.NoError(t, err)
	lines, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, csvHeader, lines[0])
	assert.Equal(t, []string{"5", "Dune", "Asha", "2024-01-01", "2024-01-10", "5", "9", "4", "100.00", "40.00", "140.00"}, lines[1])
	assert.Equal(t, []string{"6", "N/A", "Ravi", "", "Not returned", "3", "—", "0", "40.50", "0.00", "40.50"}, lines[2])
}

func Test_RenderPDF(t *testing.T) {
	data, err := RenderPDF(sampleReport(t), "₹")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func Test_Labels(t *testing.T) {
	assert.Equal(t, "₹140.00", Money("₹", decimal.NewFromInt(140)))
	assert.Equal(t, "+4", OverdueLabel(fine.Result{Known: true, OverdueDays: 4}))
	assert.Equal(t, "0", OverdueLabel(fine.Result{Known: true}))
	assert.Equal(t, "—", DisplayDate(models.Date{}))
	assert.Equal(t, "Not returned", ReturnLabel(&models.BorrowRecord{}))
	assert.Equal(t, "borrows-report-20240112-000000.csv",
		Filename("csv", time.Date(2024, 1, 12, 0, 0, 0, 0, timeutil.Location)))
}
