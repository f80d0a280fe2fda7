package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"library-admin/internal/auth"
	"library-admin/internal/models"
	"library-admin/internal/reports"
)

const layoutTemplate = "layout.html"

// PageData is what every page template receives.
type PageData struct {
	Title           string
	Active          string
	Flash           *Flash
	Currency        string
	Actor           string
	AuthEnabled     bool
	ActivityEnabled bool
	// LoadError replaces the table when the backend could not be read.
	LoadError string
	Data      interface{}
}

// PageHandler renders the HTML pages. Each page template is parsed together
// with the shared layout.
type PageHandler struct {
	pages           map[string]*template.Template
	Currency        string
	AuthEnabled     bool
	ActivityEnabled bool
}

func NewPageHandler(fsys fs.FS, currency string) (*PageHandler, error) {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return reports.Money(currency, d)
		},
		"displayDate":  reports.DisplayDate,
		"overdueLabel": reports.OverdueLabel,
		"returnLabel": func(rec models.BorrowRecord) string {
			return reports.ReturnLabel(&rec)
		},
		"inputDate": func(d models.Date) string {
			return d.String()
		},
		"percent": func(value, max int) int {
			if max <= 0 {
				return 0
			}
			return value * 100 / max
		},
		"inc": func(i int) int {
			return i + 1
		},
	}

	names, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == layoutTemplate {
			continue
		}
		t, err := template.New(name).Funcs(funcs).ParseFS(fsys, layoutTemplate, name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, ".html")] = t
	}

	return &PageHandler{pages: pages, Currency: currency}, nil
}

// newPage fills the fields shared by every page and consumes the flash cookie.
func (h *PageHandler) newPage(w http.ResponseWriter, r *http.Request, title, active string) *PageData {
	return &PageData{
		Title:           title,
		Active:          active,
		Flash:           popFlash(w, r),
		Currency:        h.Currency,
		Actor:           auth.ActorFromContext(r.Context()),
		AuthEnabled:     h.AuthEnabled,
		ActivityEnabled: h.ActivityEnabled,
	}
}

// Render executes the page into a buffer first so a template error never
// leaves a half-written page.
func (h *PageHandler) Render(w http.ResponseWriter, status int, page string, data *PageData) {
	t, ok := h.pages[page]
	if !ok {
		log.Printf("[HTTP] Unknown page template %q", page)
		http.Error(w, "Page not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("[HTTP] Failed to render %s: %v", page, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// redirectWith stores a notification and sends the browser back to path.
func redirectWith(w http.ResponseWriter, r *http.Request, path string, f Flash) {
	setFlash(w, f)
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// afterMutation answers a form post: success or failure notification, then
// back to the list.
func afterMutation(w http.ResponseWriter, r *http.Request, back string, err error, success Flash, missing, failure string) {
	if err != nil {
		redirectWith(w, r, back, failureFlash(err, missing, failure))
		return
	}
	redirectWith(w, r, back, success)
}

// editID reads the optional ?edit= query parameter.
func editID(r *http.Request) int {
	id, err := strconv.Atoi(r.URL.Query().Get("edit"))
	if err != nil {
		return 0
	}
	return id
}
