package handlers

import (
	"net/http"

	"library-admin/internal/models"
	"library-admin/internal/services"
)

type BookHandler struct {
	Service *services.BookService
	Authors *services.AuthorService
	Genres  *services.GenreService
	Pages   *PageHandler
}

func NewBookHandler(s *services.BookService, authors *services.AuthorService, genres *services.GenreService, pages *PageHandler) *BookHandler {
	return &BookHandler{Service: s, Authors: authors, Genres: genres, Pages: pages}
}

type booksPage struct {
	Books         []models.Book
	Authors       []models.Author
	Genres        []models.Genre
	Edit          *models.Book
	EditAuthorID  int
	EditGenreID   int
	DefaultCopies int
}

func (h *BookHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := h.Pages.newPage(w, r, "Book Management", "books")
	view := booksPage{DefaultCopies: models.DefaultAvailableCopies}

	books, err := h.Service.List(r.Context())
	if err == nil {
		view.Authors, err = h.Authors.List(r.Context())
	}
	if err == nil {
		view.Genres, err = h.Genres.List(r.Context())
	}

	if err != nil {
		data.LoadError = bookNotices.LoadFailed
	} else {
		view.Books = books
		if id := editID(r); id > 0 {
			for i := range books {
				if books[i].ID == id {
					view.Edit = &books[i]
					if books[i].Author != nil {
						view.EditAuthorID = books[i].Author.ID
					}
					if books[i].Genre != nil {
						view.EditGenreID = books[i].Genre.ID
					}
				}
			}
		}
	}

	data.Data = view
	h.Pages.Render(w, http.StatusOK, "books", data)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := parseBookForm(r)
	if err == nil {
		_, err = h.Service.Create(r.Context(), in)
	}
	afterMutation(w, r, "/books", err, bookNotices.Added, bookNotices.Missing, bookNotices.AddFailed)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	in, err := parseBookForm(r)
	if err == nil {
		_, err = h.Service.Update(r.Context(), id, in)
	}
	afterMutation(w, r, "/books", err, bookNotices.Updated, bookNotices.Missing, bookNotices.UpdateFailed)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	err = h.Service.Delete(r.Context(), id)
	afterMutation(w, r, "/books", err, bookNotices.Deleted, "", bookNotices.DeleteFailed)
}
