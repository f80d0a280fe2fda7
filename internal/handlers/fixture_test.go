package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"library-admin/internal/backend"
	"library-admin/internal/fine"
	"library-admin/internal/services"
	"library-admin/internal/timeutil"
	"library-admin/templates"
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

// fakeBackend answers "METHOD /path" keys with canned bodies. Unknown routes
// answer 404.
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

// writes returns the non-GET requests the backend received.
func (f *fakeBackend) writes() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedRequest
	for _, req := range f.seen {
		if req.Method != http.MethodGet {
			out = append(out, req)
		}
	}
	return out
}

var testNow = time.Date(2024, 1, 3, 0, 0, 0, 0, timeutil.Location)

type env struct {
	backend *fakeBackend
	pages   *PageHandler
	authors *services.AuthorService
	genres  *services.GenreService
	books   *services.BookService
	borrows *services.BorrowService
	reports *services.ReportService
}

func newEnv(t *testing.T, routes map[string]cannedResponse) *env {
	t.Helper()
	fb := &fakeBackend{routes: routes}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	pages, err := NewPageHandler(templates.FS, "₹")
	require.NoError(t, err)

	lib := backend.NewLibrary(backend.NewClient(srv.URL+"/api/", 2*time.Second))
	e := &env{
		backend: fb,
		pages:   pages,
		authors: services.NewAuthorService(lib, nil),
		genres:  services.NewGenreService(lib, nil),
		books:   services.NewBookService(lib, nil),
		borrows: services.NewBorrowService(lib, fine.NewCalculator(fine.DefaultPerDay), timeutil.FixedClock(testNow), nil),
	}
	e.reports = services.NewReportService(e.authors, e.genres, e.books, e.borrows)
	return e
}

func formRequest(method, target string, form map[string]string, vars map[string]string) *http.Request {
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

// flashFrom decodes the notification cookie set on a redirect.
func flashFrom(t *testing.T, rec *httptest.ResponseRecorder) Flash {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie && c.Value != "" {
			data, err := base64.RawURLEncoding.DecodeString(c.Value)
			require.NoError(t, err)
			var f Flash
			require.NoError(t, json.Unmarshal(data, &f))
			return f
		}
	}
	t.Fatal("no flash cookie set")
	return Flash{}
}
