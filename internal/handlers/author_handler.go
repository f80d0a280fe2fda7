package handlers

import (
	"net/http"

	"library-admin/internal/models"
	"library-admin/internal/services"
)

type AuthorHandler struct {
	Service *services.AuthorService
	Pages   *PageHandler
}

func NewAuthorHandler(s *services.AuthorService, pages *PageHandler) *AuthorHandler {
	return &AuthorHandler{Service: s, Pages: pages}
}

type authorsPage struct {
	Authors []models.Author
	Edit    *models.Author
}

// Page lists authors with the create form, or the edit form for ?edit=ID.
func (h *AuthorHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := h.Pages.newPage(w, r, "Author Management", "authors")
	view := authorsPage{}

	authors, err := h.Service.List(r.Context())
	if err != nil {
		data.LoadError = authorNotices.LoadFailed
	} else {
		view.Authors = authors
		if id := editID(r); id > 0 {
			for i := range authors {
				if authors[i].ID == id {
					view.Edit = &authors[i]
				}
			}
		}
	}

	data.Data = view
	h.Pages.Render(w, http.StatusOK, "authors", data)
}

func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, err := h.Service.Create(r.Context(), parseAuthorForm(r))
	afterMutation(w, r, "/authors", err, authorNotices.Added, authorNotices.Missing, authorNotices.AddFailed)
}

func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	_, err = h.Service.Update(r.Context(), id, parseAuthorForm(r))
	afterMutation(w, r, "/authors", err, authorNotices.Updated, "Both fields are required!", authorNotices.UpdateFailed)
}

func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	err = h.Service.Delete(r.Context(), id)
	afterMutation(w, r, "/authors", err, authorNotices.Deleted, "", authorNotices.DeleteFailed)
}
