package handlers

import (
	"context"
	"net/http"
	"strconv"

	"library-admin/internal/models"
	"library-admin/pkg/utils"
)

// ActionLogLister reads the audit log.
type ActionLogLister interface {
	ListRecent(ctx context.Context, targetType string, limit int) ([]*models.AdminActionLog, error)
}

type AdminActionLogHandler struct {
	// Repo is nil when the audit database is disabled.
	Repo  ActionLogLister
	Pages *PageHandler
}

func NewAdminActionLogHandler(repo ActionLogLister, pages *PageHandler) *AdminActionLogHandler {
	return &AdminActionLogHandler{Repo: repo, Pages: pages}
}

type activityPage struct {
	Enabled bool
	Filter  string
	Logs    []*models.AdminActionLog
}

func (h *AdminActionLogHandler) filters(r *http.Request) (string, int) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return r.URL.Query().Get("type"), limit
}

// Page handles GET /activity
func (h *AdminActionLogHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := h.Pages.newPage(w, r, "Activity", "activity")
	targetType, limit := h.filters(r)
	view := activityPage{Enabled: h.Repo != nil, Filter: targetType}

	if h.Repo != nil {
		logs, err := h.Repo.ListRecent(r.Context(), targetType, limit)
		if err != nil {
			data.LoadError = "Failed to retrieve admin action logs"
		}
		view.Logs = logs
	}

	data.Data = view
	h.Pages.Render(w, http.StatusOK, "activity", data)
}

// ListActionLogs handles GET /api/activity
func (h *AdminActionLogHandler) ListActionLogs(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		utils.RespondError(w, http.StatusNotFound, "Audit log is disabled")
		return
	}

	targetType, limit := h.filters(r)
	logs, err := h.Repo.ListRecent(r.Context(), targetType, limit)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve admin action logs")
		return
	}
	utils.JSON(w, http.StatusOK, logs)
}
