package handlers

import (
	"net/http"

	"library-admin/internal/models"
	"library-admin/internal/services"
)

type GenreHandler struct {
	Service *services.GenreService
	Pages   *PageHandler
}

func NewGenreHandler(s *services.GenreService, pages *PageHandler) *GenreHandler {
	return &GenreHandler{Service: s, Pages: pages}
}

type genresPage struct {
	Genres []models.Genre
	Edit   *models.Genre
}

func (h *GenreHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := h.Pages.newPage(w, r, "Genre Management", "genres")
	view := genresPage{}

	genres, err := h.Service.List(r.Context())
	if err != nil {
		data.LoadError = genreNotices.LoadFailed
	} else {
		view.Genres = genres
		if id := editID(r); id > 0 {
			for i := range genres {
				if genres[i].ID == id {
					view.Edit = &genres[i]
				}
			}
		}
	}

	data.Data = view
	h.Pages.Render(w, http.StatusOK, "genres", data)
}

func (h *GenreHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, err := h.Service.Create(r.Context(), parseGenreForm(r))
	afterMutation(w, r, "/genres", err, genreNotices.Added, genreNotices.Missing, genreNotices.AddFailed)
}

func (h *GenreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	_, err = h.Service.Update(r.Context(), id, parseGenreForm(r))
	afterMutation(w, r, "/genres", err, genreNotices.Updated, genreNotices.Missing, genreNotices.UpdateFailed)
}

func (h *GenreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	err = h.Service.Delete(r.Context(), id)
	afterMutation(w, r, "/genres", err, genreNotices.Deleted, "", genreNotices.DeleteFailed)
}
