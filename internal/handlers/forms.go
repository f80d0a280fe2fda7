package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"library-admin/internal/models"
	"library-admin/internal/services"
)

// formReader collects parse failures so every bad field is reported at once.
type formReader struct {
	r      *http.Request
	fields map[string]string
}

func newFormReader(r *http.Request) *formReader {
	r.ParseForm()
	return &formReader{r: r, fields: map[string]string{}}
}

func (f *formReader) text(name string) string {
	return strings.TrimSpace(f.r.PostFormValue(name))
}

// intValue returns def for an empty field.
func (f *formReader) intValue(name string, def int) int {
	v := f.text(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.fields[name] = "A valid integer is required."
		return def
	}
	return n
}

func (f *formReader) decimalValue(name string) decimal.Decimal {
	v := f.text(name)
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		f.fields[name] = "A valid number is required."
		return decimal.Zero
	}
	return d
}

func (f *formReader) dateValue(name string) models.Date {
	d, err := models.ParseDate(f.text(name))
	if err != nil {
		f.fields[name] = "Date has wrong format. Use YYYY-MM-DD."
		return models.Date{}
	}
	return d
}

func (f *formReader) err() error {
	if len(f.fields) == 0 {
		return nil
	}
	return &services.ValidationError{Fields: f.fields}
}

func parseAuthorForm(r *http.Request) models.AuthorInput {
	f := newFormReader(r)
	return models.AuthorInput{Name: f.text("name"), Biography: f.text("biography")}
}

func parseGenreForm(r *http.Request) models.GenreInput {
	f := newFormReader(r)
	return models.GenreInput{Name: f.text("name")}
}

func parseBookForm(r *http.Request) (models.BookInput, error) {
	f := newFormReader(r)
	in := models.BookInput{
		Title:           f.text("title"),
		AuthorID:        f.intValue("author_id", 0),
		GenreID:         f.intValue("genre_id", 0),
		PublishedDate:   f.dateValue("published_date"),
		AvailableCopies: f.intValue("available_copies", models.DefaultAvailableCopies),
	}
	return in, f.err()
}

func parseBorrowForm(r *http.Request) (models.BorrowInput, error) {
	f := newFormReader(r)
	in := models.BorrowInput{
		BorrowerName: f.text("borrower_name"),
		BookID:       f.intValue("book_id", 0),
		RentedDays:   f.intValue("rented_days", 0),
		Charges:      f.decimalValue("charges"),
	}
	if f.text("borrowed_on") != "" {
		borrowedOn := f.dateValue("borrowed_on")
		in.BorrowedOn = &borrowedOn
	}
	if f.text("return_date") != "" {
		returned := f.dateValue("return_date")
		in.ReturnDate = &returned
	}
	return in, f.err()
}
