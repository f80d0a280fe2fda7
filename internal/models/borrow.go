package models

import "github.com/shopspring/decimal"

// BorrowRecord is a loan of one book copy to one borrower.
// Days taken, overdue days and the total charge are never stored here;
// they are derived on demand by the fine calculator.
type BorrowRecord struct {
	ID           int             `json:"id"`
	Book         *Book           `json:"book"`
	BorrowerName string          `json:"borrower_name"`
	BorrowedOn   Date            `json:"borrowed_on"`
	ReturnDate   Date            `json:"return_date"`
	RentedDays   int             `json:"rented_days"`
	Charges      decimal.Decimal `json:"charges"`
}

// BookTitle returns the nested book's title or "N/A".
func (b *BorrowRecord) BookTitle() string {
	if b.Book == nil || b.Book.Title == "" {
		return "N/A"
	}
	return b.Book.Title
}

// BookID returns the nested book's ID, or 0 when the book is missing.
func (b *BorrowRecord) BookID() int {
	if b.Book == nil {
		return 0
	}
	return b.Book.ID
}

// Returned reports whether the record has a return date.
func (b *BorrowRecord) Returned() bool {
	return !b.ReturnDate.IsZero()
}

// BorrowInput is the create/update payload for a borrow record.
// BorrowedOn is assigned by the backend on create and only sent on update.
type BorrowInput struct {
	BorrowerName string          `json:"borrower_name"`
	BookID       int             `json:"book_id"`
	RentedDays   int             `json:"rented_days"`
	Charges      decimal.Decimal `json:"charges"`
	BorrowedOn   *Date           `json:"borrowed_on,omitempty"`
	ReturnDate   *Date           `json:"return_date"`
}

// InputFromRecord builds a full-update payload carrying the record's current values.
func InputFromRecord(rec *BorrowRecord) BorrowInput {
	in := BorrowInput{
		BorrowerName: rec.BorrowerName,
		BookID:       rec.BookID(),
		RentedDays:   rec.RentedDays,
		Charges:      rec.Charges,
	}
	if !rec.BorrowedOn.IsZero() {
		borrowedOn := rec.BorrowedOn
		in.BorrowedOn = &borrowedOn
	}
	if rec.Returned() {
		returned := rec.ReturnDate
		in.ReturnDate = &returned
	}
	return in
}
