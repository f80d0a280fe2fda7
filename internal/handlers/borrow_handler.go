package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"library-admin/internal/models"
	"library-admin/internal/services"
	"library-admin/pkg/utils"
)

type BorrowHandler struct {
	Service *services.BorrowService
	Books   *services.BookService
	Pages   *PageHandler
}

func NewBorrowHandler(s *services.BorrowService, books *services.BookService, pages *PageHandler) *BorrowHandler {
	return &BorrowHandler{Service: s, Books: books, Pages: pages}
}

type borrowsPage struct {
	Rows       []services.BorrowView
	Books      []models.Book
	Edit       *models.BorrowRecord
	Today      string
	FinePerDay decimal.Decimal
}

// Page lists borrow records with their computed days taken, overdue days and
// total charge.
func (h *BorrowHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := h.Pages.newPage(w, r, "Borrow Records", "borrows")
	view := borrowsPage{
		Today:      models.NewDate(h.Service.Clock.Now()).String(),
		FinePerDay: h.Service.Calculator.PerDay,
	}

	rows, err := h.Service.ListWithCharges(r.Context())
	if err == nil {
		view.Books, err = h.Books.List(r.Context())
	}

	if err != nil {
		data.LoadError = borrowNotices.LoadFailed
	} else {
		view.Rows = rows
		if id := editID(r); id > 0 {
			for i := range rows {
				if rows[i].Record.ID == id {
					view.Edit = &rows[i].Record
				}
			}
		}
	}

	data.Data = view
	h.Pages.Render(w, http.StatusOK, "borrows", data)
}

func (h *BorrowHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := parseBorrowForm(r)
	if err == nil {
		_, err = h.Service.Create(r.Context(), in)
	}
	afterMutation(w, r, "/borrows", err, borrowNotices.Added, borrowNotices.Missing, borrowNotices.AddFailed)
}

func (h *BorrowHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	in, err := parseBorrowForm(r)
	if err == nil {
		_, err = h.Service.Update(r.Context(), id, in)
	}
	afterMutation(w, r, "/borrows", err, borrowNotices.Updated, borrowNotices.Missing, borrowNotices.UpdateFailed)
}

// MarkReturned records today's date (or the posted return_date) as the return.
func (h *BorrowHandler) MarkReturned(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	f := newFormReader(r)
	returned := f.dateValue("return_date")
	if err = f.err(); err == nil {
		_, err = h.Service.MarkReturned(r.Context(), id, returned)
	}
	afterMutation(w, r, "/borrows", err,
		Flash{Kind: FlashSuccess, Title: "Returned", Text: "Book marked as returned."},
		borrowNotices.Missing, "Could not mark the book as returned.")
}

func (h *BorrowHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	err = h.Service.Delete(r.Context(), id)
	afterMutation(w, r, "/borrows", err, borrowNotices.Deleted, "", borrowNotices.DeleteFailed)
}

// ListJSON returns every record with its derived charges.
func (h *BorrowHandler) ListJSON(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListWithCharges(r.Context())
	if err != nil {
		writeAPIError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, rows)
}

type returnRequest struct {
	ReturnDate models.Date `json:"return_date"`
}

// ReturnJSON handles POST /api/borrows/{id}/return. An empty body means today.
func (h *BorrowHandler) ReturnJSON(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var req returnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.Service.MarkReturned(r.Context(), id, req.ReturnDate)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, services.BorrowView{Record: *rec, Charge: h.Service.Charge(rec, h.Service.Clock.Now())})
}
