package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"library-admin/internal/reports"
	"library-admin/internal/services"
	"library-admin/pkg/utils"
)

// Archiver stores a copy of an exported report.
type Archiver interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}

type ReportHandler struct {
	Service *services.ReportService
	Pages   *PageHandler
	// Archive is nil when no bucket is configured.
	Archive Archiver
}

func NewReportHandler(service *services.ReportService, pages *PageHandler, archive Archiver) *ReportHandler {
	return &ReportHandler{Service: service, Pages: pages, Archive: archive}
}

type reportsPage struct {
	Report         *services.Report
	MaxCount       int
	ArchiveEnabled bool
}

// Page shows the count cards, the distribution bars and the dues table.
func (h *ReportHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := h.Pages.newPage(w, r, "Library Reports", "reports")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	report, err := h.Service.Summary(ctx)
	if err != nil {
		log.Printf("[Reports] Failed to build summary: %v", err)
		data.LoadError = "Failed to fetch data from backend."
		h.Pages.Render(w, http.StatusOK, "reports", data)
		return
	}

	view := reportsPage{Report: report, ArchiveEnabled: h.Archive != nil}
	for _, slice := range report.Distribution {
		if slice.Value > view.MaxCount {
			view.MaxCount = slice.Value
		}
	}
	data.Data = view
	h.Pages.Render(w, http.StatusOK, "reports", data)
}

// Summary handles GET /api/reports/summary
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	report, err := h.Service.Summary(ctx)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, report)
}

// BorrowsCSV handles GET /reports/borrows.csv
func (h *ReportHandler) BorrowsCSV(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.Summary(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get data: %v", err), http.StatusBadGateway)
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteCSV(&buf, report); err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate CSV: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", reports.Filename("csv", report.GeneratedAt)))
	w.Write(buf.Bytes())
}

// BorrowsPDF handles GET /reports/borrows.pdf
func (h *ReportHandler) BorrowsPDF(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.Summary(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get data: %v", err), http.StatusBadGateway)
		return
	}

	pdfData, err := reports.RenderPDF(report, h.Pages.Currency)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", reports.Filename("pdf", report.GeneratedAt)))
	w.Write(pdfData)
}

// ArchiveReports handles POST /reports/archive: both exports go to the bucket.
func (h *ReportHandler) ArchiveReports(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		redirectWith(w, r, "/reports", Flash{Kind: FlashWarning, Title: "Archive Disabled", Text: "No archive bucket is configured."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	report, err := h.Service.Summary(ctx)
	if err != nil {
		redirectWith(w, r, "/reports", Flash{Kind: FlashError, Title: "Failed", Text: "Failed to fetch data from backend."})
		return
	}

	var csvBuf bytes.Buffer
	if err := reports.WriteCSV(&csvBuf, report); err != nil {
		redirectWith(w, r, "/reports", Flash{Kind: FlashError, Title: "Failed", Text: "Could not generate the CSV report."})
		return
	}
	pdfData, err := reports.RenderPDF(report, h.Pages.Currency)
	if err != nil {
		redirectWith(w, r, "/reports", Flash{Kind: FlashError, Title: "Failed", Text: "Could not generate the PDF report."})
		return
	}

	files := []struct {
		name, contentType string
		data              []byte
	}{
		{reports.Filename("csv", report.GeneratedAt), "text/csv", csvBuf.Bytes()},
		{reports.Filename("pdf", report.GeneratedAt), "application/pdf", pdfData},
	}
	for _, f := range files {
		if _, err := h.Archive.Upload(ctx, f.name, f.contentType, f.data); err != nil {
			log.Printf("[Archive] %v", err)
			redirectWith(w, r, "/reports", Flash{Kind: FlashError, Title: "Failed", Text: "Could not archive the reports."})
			return
		}
	}

	redirectWith(w, r, "/reports", Flash{Kind: FlashSuccess, Title: "Archived", Text: "Reports saved to the archive."})
}
