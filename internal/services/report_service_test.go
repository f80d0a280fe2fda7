package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin/internal/backend"
	"library-admin/internal/models"
)

func reportRoutes() map[string]cannedResponse {
	return map[string]cannedResponse{
		"GET /api/authors/": {Status: http.StatusOK, Body: `[{"id":1,"name":"Le Guin","biography":"-"},{"id":2,"name":"Austen","biography":"-"}]`},
		"GET /api/genres/":  {Status: http.StatusOK, Body: `[{"id":1,"name":"Fantasy"}]`},
		"GET /api/books/":   {Status: http.StatusOK, Body: `[{"id":3,"title":"Dune","available_copies":2},{"id":4,"title":"Emma","available_copies":3}]`},
		"GET /api/borrows/": {Status: http.StatusOK, Body: `[
			{"id":5,"book":{"id":3,"title":"Dune"},"borrower_name":"Asha","borrowed_on":"2024-01-01","return_date":"2024-01-10","rented_days":5,"charges":"100.00"},
			{"id":6,"book":{"id":4,"title":"Emma"},"borrower_name":"Ravi","borrowed_on":"2023-12-20","return_date":null,"rented_days":7,"charges":"50.00"},
			{"id":7,"book":{"id":4,"title":"Emma"},"borrower_name":"Mina","borrowed_on":"2024-01-02","return_date":null,"rented_days":7,"charges":"20.00"}
		]`},
	}
}

func Test_ReportService_Summary_AggregatesCollections(t *testing.T) {
	// arrange
	f := newFixture(t, reportRoutes())

	// act
	report, err := f.reports.Summary(context.Background())

	// assert
	require.NoError(t, err)
	stats := report.Stats
	assert.Equal(t, 2, stats.Authors)
	assert.Equal(t, 1, stats.Genres)
	assert.Equal(t, 2, stats.Books)
	assert.Equal(t, 3, stats.Borrows)
	assert.Equal(t, 5, stats.AvailableCopies)
	assert.Equal(t, 2, stats.Outstanding)
	// Ravi: 14 days taken, 7 rented, 7 overdue
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, "70.00", stats.FinesOutstanding.StringFixed(2))

	assert.Equal(t, []models.ChartSlice{
		{Name: "Authors", Value: 2},
		{Name: "Genres", Value: 1},
		{Name: "Books", Value: 2},
		{Name: "Borrows", Value: 3},
	}, report.Distribution)
	assert.Equal(t, testNow, report.GeneratedAt)
}

func Test_ReportService_RowsMatchBorrowList(t *testing.T) {
	// arrange
	f := newFixture(t, reportRoutes())

	// act
	report, err := f.reports.Summary(context.Background())
	require.NoError(t, err)
	views, err := f.borrows.ListWithCharges(context.Background())
	require.NoError(t, err)

	// assert
	assert.Equal(t, views, report.Rows)
}

func Test_ReportService_Summary_ReturnsBackendError(t *testing.T) {
	// arrange
	routes := reportRoutes()
	routes["GET /api/genres/"] = cannedResponse{Status: http.StatusServiceUnavailable, Body: `down`}
	f := newFixture(t, routes)

	// act
	report, err := f.reports.Summary(context.Background())

	// assert
	assert.Nil(t, report)
	var se *backend.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, backend.ResourceGenres, se.Resource)
}
