package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"library-admin/pkg/utils"
)

type crudService[T any, In any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id int, in In) (*T, error)
	Delete(ctx context.Context, id int) error
}

// ResourceAPI serves the JSON API of one collection through its service.
type ResourceAPI[T any, In any] struct {
	Service crudService[T, In]
	// NewInput seeds create payloads with defaults before decoding.
	NewInput func() In
}

func NewResourceAPI[T any, In any](service crudService[T, In], newInput func() In) *ResourceAPI[T, In] {
	return &ResourceAPI[T, In]{Service: service, NewInput: newInput}
}

func (h *ResourceAPI[T, In]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		writeAPIError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, items)
}

func (h *ResourceAPI[T, In]) Create(w http.ResponseWriter, r *http.Request) {
	var in In
	if h.NewInput != nil {
		in = h.NewInput()
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.Service.Create(r.Context(), in)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, created)
}

func (h *ResourceAPI[T, In]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var in In
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.Service.Update(r.Context(), id, in)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, updated)
}

func (h *ResourceAPI[T, In]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeAPIError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
