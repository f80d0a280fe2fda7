package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"library-admin/internal/backend"
	"library-admin/internal/fine"
	"library-admin/internal/models"
	"library-admin/internal/timeutil"
)

// BorrowView pairs a record with the charges derived from it.
type BorrowView struct {
	Record models.BorrowRecord `json:"record"`
	Charge fine.Result         `json:"charge"`
}

type BorrowService struct {
	Borrows    *backend.Resource[models.BorrowRecord, models.BorrowInput]
	Calculator *fine.Calculator
	Clock      timeutil.Clock
	Changes    *ChangeLog
}

func NewBorrowService(lib *backend.Library, calc *fine.Calculator, clock timeutil.Clock, changes *ChangeLog) *BorrowService {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &BorrowService{Borrows: lib.Borrows, Calculator: calc, Clock: clock, Changes: changes}
}

// FineInput maps a record onto the calculator's input.
func FineInput(rec *models.BorrowRecord) fine.Input {
	return fine.Input{
		BorrowedOn: rec.BorrowedOn.Ptr(),
		ReturnDate: rec.ReturnDate.Ptr(),
		RentedDays: rec.RentedDays,
		BaseCharge: rec.Charges,
	}
}

// returnsBeforeBorrow compares calendar days in the business time zone.
func returnsBeforeBorrow(borrowedOn, returned time.Time) bool {
	return timeutil.StartOfDay(returned).Before(timeutil.StartOfDay(borrowedOn))
}

func validateBorrow(in *models.BorrowInput) error {
	in.BorrowerName = strings.TrimSpace(in.BorrowerName)
	if in.ReturnDate != nil && in.ReturnDate.IsZero() {
		in.ReturnDate = nil
	}
	if in.BorrowedOn != nil && in.BorrowedOn.IsZero() {
		in.BorrowedOn = nil
	}

	f := fieldErrors{}
	f.required("borrower_name", in.BorrowerName)
	f.check(in.BookID > 0, "book_id", msgRequired)
	f.check(in.RentedDays >= 1, "rented_days", "Ensure this value is greater than or equal to 1.")
	f.check(!in.Charges.IsNegative(), "charges", "Ensure this value is greater than or equal to 0.")
	if in.BorrowedOn != nil && in.ReturnDate != nil {
		f.check(!returnsBeforeBorrow(in.BorrowedOn.Time, in.ReturnDate.Time), "return_date",
			"Return date cannot be before the borrowed date.")
	}
	return f.err()
}

func (s *BorrowService) List(ctx context.Context) ([]models.BorrowRecord, error) {
	return cachedList(ctx, backend.ResourceBorrows, s.Borrows.List)
}

// Charge runs the fine calculator for one record at the service clock's now.
func (s *BorrowService) Charge(rec *models.BorrowRecord, now time.Time) fine.Result {
	return s.Calculator.Calculate(FineInput(rec), now)
}

// WithCharges attaches calculator results to records, all at the same now.
func (s *BorrowService) WithCharges(records []models.BorrowRecord, now time.Time) []BorrowView {
	views := make([]BorrowView, 0, len(records))
	for i := range records {
		views = append(views, BorrowView{Record: records[i], Charge: s.Charge(&records[i], now)})
	}
	return views
}

// ListWithCharges returns every borrow record with its days taken, overdue
// days and total charge.
func (s *BorrowService) ListWithCharges(ctx context.Context) ([]BorrowView, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.WithCharges(records, s.Clock.Now()), nil
}

// Find looks a record up in the current list; the backend has no item GET.
func (s *BorrowService) Find(ctx context.Context, id int) (*models.BorrowRecord, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("borrow %d: %w", id, ErrNotFound)
}

func (s *BorrowService) Create(ctx context.Context, in models.BorrowInput) (*models.BorrowRecord, error) {
	// borrowed_on is assigned by the backend on create
	in.BorrowedOn = nil
	if err := validateBorrow(&in); err != nil {
		return nil, err
	}

	rec, err := s.Borrows.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.Changes.Record(ctx, backend.ResourceBorrows, models.ActionCreate, rec.ID,
		fmt.Sprintf("Lent %q to %s", rec.BookTitle(), rec.BorrowerName), in)
	return rec, nil
}

func (s *BorrowService) Update(ctx context.Context, id int, in models.BorrowInput) (*models.BorrowRecord, error) {
	if err := validateBorrow(&in); err != nil {
		return nil, err
	}

	// A return date can only be checked against borrowed_on when the form
	// did not carry it; fetch the stored value in that case.
	if in.ReturnDate != nil && in.BorrowedOn == nil {
		current, err := s.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		if !current.BorrowedOn.IsZero() {
			borrowedOn := current.BorrowedOn
			in.BorrowedOn = &borrowedOn
			if err := validateBorrow(&in); err != nil {
				return nil, err
			}
		}
	}

	rec, err := s.Borrows.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.Changes.Record(ctx, backend.ResourceBorrows, models.ActionUpdate, id,
		fmt.Sprintf("Updated borrow of %q by %s", rec.BookTitle(), rec.BorrowerName), in)
	return rec, nil
}

// MarkReturned sets the return date with a full update carrying the record's
// other values. A zero date means today.
func (s *BorrowService) MarkReturned(ctx context.Context, id int, returned models.Date) (*models.BorrowRecord, error) {
	current, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if returned.IsZero() {
		returned = models.NewDate(timeutil.StartOfDay(s.Clock.Now()))
	}

	in := models.InputFromRecord(current)
	in.ReturnDate = &returned
	if err := validateBorrow(&in); err != nil {
		return nil, err
	}

	rec, err := s.Borrows.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.Changes.Record(ctx, backend.ResourceBorrows, models.ActionUpdate, id,
		fmt.Sprintf("Marked %q returned by %s on %s", rec.BookTitle(), rec.BorrowerName, returned.String()), in)
	return rec, nil
}

func (s *BorrowService) Delete(ctx context.Context, id int) error {
	if err := s.Borrows.Delete(ctx, id); err != nil {
		return err
	}

	s.Changes.Record(ctx, backend.ResourceBorrows, models.ActionDelete, id,
		fmt.Sprintf("Deleted borrow record #%d", id), nil)
	return nil
}
