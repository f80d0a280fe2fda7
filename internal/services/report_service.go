package services

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"library-admin/internal/models"
)

// Report is everything the reports page and the exports show.
type Report struct {
	Stats        models.LibraryStats `json:"stats"`
	Distribution []models.ChartSlice `json:"distribution"`
	Rows         []BorrowView        `json:"rows"`
	GeneratedAt  time.Time           `json:"generated_at"`
}

type ReportService struct {
	Authors *AuthorService
	Genres  *GenreService
	Books   *BookService
	Borrows *BorrowService
}

func NewReportService(authors *AuthorService, genres *GenreService, books *BookService, borrows *BorrowService) *ReportService {
	return &ReportService{Authors: authors, Genres: genres, Books: books, Borrows: borrows}
}

// Summary fetches the four collections concurrently and aggregates them.
// It waits for every fetch and returns the first error.
func (s *ReportService) Summary(ctx context.Context) (*Report, error) {
	var (
		wg      sync.WaitGroup
		authors []models.Author
		genres  []models.Genre
		books   []models.Book
		borrows []models.BorrowRecord
		errs    = make([]error, 4)
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		authors, errs[0] = s.Authors.List(ctx)
	}()
	go func() {
		defer wg.Done()
		genres, errs[1] = s.Genres.List(ctx)
	}()
	go func() {
		defer wg.Done()
		books, errs[2] = s.Books.List(ctx)
	}()
	go func() {
		defer wg.Done()
		borrows, errs[3] = s.Borrows.List(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	now := s.Borrows.Clock.Now()
	rows := s.Borrows.WithCharges(borrows, now)

	stats := models.LibraryStats{
		Authors:          len(authors),
		Genres:           len(genres),
		Books:            len(books),
		Borrows:          len(borrows),
		FinesOutstanding: decimal.Zero,
	}
	for _, b := range books {
		stats.AvailableCopies += b.AvailableCopies
	}
	for _, row := range rows {
		if row.Record.Returned() {
			continue
		}
		stats.Outstanding++
		if row.Charge.IsOverdue() {
			stats.Overdue++
			stats.FinesOutstanding = stats.FinesOutstanding.Add(row.Charge.Fine)
		}
	}

	return &Report{
		Stats:        stats,
		Distribution: stats.Distribution(),
		Rows:         rows,
		GeneratedAt:  now,
	}, nil
}
