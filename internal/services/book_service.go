package services

import (
	"context"
	"fmt"
	"strings"

	"library-admin/internal/backend"
	"library-admin/internal/models"
)

type BookService struct {
	Books   *backend.Resource[models.Book, models.BookInput]
	Changes *ChangeLog
}

func NewBookService(lib *backend.Library, changes *ChangeLog) *BookService {
	return &BookService{Books: lib.Books, Changes: changes}
}

// validateBook checks the payload. New books need at least one copy;
// an edit may bring the count down to zero.
func validateBook(in *models.BookInput, creating bool) error {
	in.Title = strings.TrimSpace(in.Title)

	f := fieldErrors{}
	f.required("title", in.Title)
	f.check(in.AuthorID > 0, "author_id", msgRequired)
	f.check(in.GenreID > 0, "genre_id", msgRequired)
	f.check(!in.PublishedDate.IsZero(), "published_date", msgRequired)
	if creating {
		f.check(in.AvailableCopies >= 1, "available_copies", "Ensure this value is greater than or equal to 1.")
	} else {
		f.check(in.AvailableCopies >= 0, "available_copies", "Ensure this value is greater than or equal to 0.")
	}
	return f.err()
}

func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	return cachedList(ctx, backend.ResourceBooks, s.Books.List)
}

func (s *BookService) Create(ctx context.Context, in models.BookInput) (*models.Book, error) {
	if err := validateBook(&in, true); err != nil {
		return nil, err
	}

	book, err := s.Books.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.Changes.Record(ctx, backend.ResourceBooks, models.ActionCreate, book.ID,
		fmt.Sprintf("Added book %q", book.Title), in)
	return book, nil
}

func (s *BookService) Update(ctx context.Context, id int, in models.BookInput) (*models.Book, error) {
	if err := validateBook(&in, false); err != nil {
		return nil, err
	}

	book, err := s.Books.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.Changes.Record(ctx, backend.ResourceBooks, models.ActionUpdate, id,
		fmt.Sprintf("Updated book %q", book.Title), in)
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, id int) error {
	if err := s.Books.Delete(ctx, id); err != nil {
		return err
	}

	s.Changes.Record(ctx, backend.ResourceBooks, models.ActionDelete, id,
		fmt.Sprintf("Deleted book #%d", id), nil)
	return nil
}
