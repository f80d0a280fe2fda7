package services_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"library-admin/internal/backend"
	"library-admin/internal/fine"
	"library-admin/internal/models"
	"library-admin/internal/realtime"
	"library-admin/internal/services"
	"library-admin/internal/timeutil"
)

type cannedResponse struct {
	Status int
	Body   string
}

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

// fakeBackend answers "METHOD /path" keys with canned bodies and records
// every request it sees. Unknown routes answer 404.
type fakeBackend struct {
	mu     sync.Mutex
	routes map[string]cannedResponse
	seen   []recordedRequest
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.seen = append(f.seen, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
	resp, ok := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Not found."}`)
		return
	}
	w.WriteHeader(resp.Status)
	io.WriteString(w, resp.Body)
}

func (f *fakeBackend) requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.seen...)
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []*models.AdminActionLog
}

func (a *fakeAudit) CreateActionLog(_ context.Context, entry *models.AdminActionLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	return nil
}

type fakeEvents struct {
	events []realtime.Event
}

func (e *fakeEvents) Publish(ev realtime.Event) {
	e.events = append(e.events, ev)
}

type fixture struct {
	backend *fakeBackend
	audit   *fakeAudit
	events  *fakeEvents
	authors *services.AuthorService
	genres  *services.GenreService
	books   *services.BookService
	borrows *services.BorrowService
	reports *services.ReportService
}

var testNow = time.Date(2024, 1, 3, 0, 0, 0, 0, timeutil.Location)

func newFixture(t *testing.T, routes map[string]cannedResponse) *fixture {
	t.Helper()
	fb := &fakeBackend{routes: routes}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	lib := backend.NewLibrary(backend.NewClient(srv.URL+"/api/", 2*time.Second))
	audit := &fakeAudit{}
	events := &fakeEvents{}
	changes := services.NewChangeLog(audit, events)

	f := &fixture{
		backend: fb,
		audit:   audit,
		events:  events,
		authors: services.NewAuthorService(lib, changes),
		genres:  services.NewGenreService(lib, changes),
		books:   services.NewBookService(lib, changes),
		borrows: services.NewBorrowService(lib, fine.NewCalculator(fine.DefaultPerDay), timeutil.FixedClock(testNow), changes),
	}
	f.reports = services.NewReportService(f.authors, f.genres, f.books, f.borrows)
	return f
}
