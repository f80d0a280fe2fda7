package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin/internal/models"
	"library-admin/internal/services"
	"library-admin/internal/timeutil"
)

func validBook() models.BookInput {
	return models.BookInput{
		Title:           "A Wizard of Earthsea",
		AuthorID:        1,
		GenreID:         2,
		PublishedDate:   models.NewDate(time.Date(1968, 11, 1, 0, 0, 0, 0, timeutil.Location)),
		AvailableCopies: models.DefaultAvailableCopies,
	}
}

func Test_BookService_Create_ValidatesEveryRequiredField(t *testing.T) {
	// arrange
	f := newFixture(t, nil)

	// act
	_, err := f.books.Create(context.Background(), models.BookInput{})

	// assert
	ve, ok := services.IsValidation(err)
	require.True(t, ok)
	for _, field := range []string{"title", "author_id", "genre_id", "published_date", "available_copies"} {
		assert.Contains(t, ve.Fields, field)
	}
	assert.Empty(t, f.backend.requests())
}

func Test_BookService_Create_SendsRelationsByID(t *testing.T) {
	// arrange
	f := newFixture(t, map[string]cannedResponse{
		"POST /api/books/": {Status: http.StatusCreated, Body: `{"id":8,"title":"A Wizard of Earthsea","author":{"id":1,"name":"Le Guin"},"genre":null,"published_date":"1968-11-01","available_copies":1}`},
	})

	// act
	book, err := f.books.Create(context.Background(), validBook())

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Le Guin", book.AuthorName())
	assert.Equal(t, "N/A", book.GenreName())

	reqs := f.backend.requests()
	require.Len(t, reqs, 1)
	assert.JSONEq(t,
		`{"title":"A Wizard of Earthsea","author_id":1,"genre_id":2,"published_date":"1968-11-01","available_copies":1}`,
		reqs[0].Body)
}

func Test_BookService_Update_AllowsZeroCopies(t *testing.T) {
	f := newFixture(t, map[string]cannedResponse{
		"PUT /api/books/8/": {Status: http.StatusOK, Body: `{"id":8,"title":"A Wizard of Earthsea","available_copies":0}`},
	})
	in := validBook()
	in.AvailableCopies = 0

	_, err := f.books.Update(context.Background(), 8, in)

	assert.NoError(t, err)
}
