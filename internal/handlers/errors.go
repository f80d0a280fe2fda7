package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"

	"library-admin/internal/backend"
	"library-admin/internal/services"
	"library-admin/pkg/utils"
)

const (
	msgMissingFields = "Please fill in all required fields."
	msgUnreachable   = "Could not reach the library backend."
)

// writeAPIError maps service and backend errors onto JSON responses:
// 400 for validation, 404 for unknown records, 502 for backend failures.
func writeAPIError(w http.ResponseWriter, err error) {
	if ve, ok := services.IsValidation(err); ok {
		utils.RespondValidation(w, msgMissingFields, ve.Fields)
		return
	}
	if errors.Is(err, services.ErrNotFound) || backend.IsNotFound(err) {
		utils.RespondError(w, http.StatusNotFound, "Record not found")
		return
	}

	var se *backend.StatusError
	if errors.As(err, &se) {
		if se.StatusCode == http.StatusBadRequest {
			utils.RespondValidation(w, "The library backend rejected the request.", se.FieldErrors())
			return
		}
		utils.RespondError(w, http.StatusBadGateway, fmt.Sprintf("Library backend answered %d", se.StatusCode))
		return
	}

	utils.RespondError(w, http.StatusBadGateway, msgUnreachable)
}

// failureFlash turns an error into the notification shown on a page.
// fallback is the action-specific text, e.g. "Could not add author.".
func failureFlash(err error, missing, fallback string) Flash {
	if ve, ok := services.IsValidation(err); ok {
		if msg, ok := ve.Fields["return_date"]; ok {
			return Flash{Kind: FlashWarning, Title: "Invalid Date", Text: msg}
		}
		names := make([]string, 0, len(ve.Fields))
		for name := range ve.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if msg := ve.Fields[name]; msg != "This field is required." {
				return Flash{Kind: FlashWarning, Title: "Invalid Value", Text: msg}
			}
		}
		return Flash{Kind: FlashWarning, Title: "Missing Fields", Text: missing}
	}

	var se *backend.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusBadRequest {
		return Flash{Kind: FlashError, Title: "Failed", Text: fallback + " " + se.Summary()}
	}
	return Flash{Kind: FlashError, Title: "Failed", Text: fallback}
}

// pathID reads the {id} route variable.
func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
