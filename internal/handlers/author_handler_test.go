package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_AuthorHandler_Page_ListsAuthors(t *testing.T) {
	// arrange
	e := newEnv(t, map[string]cannedResponse{
		"GET /api/authors/": {Status: http.StatusOK, Body: `[{"id":1,"name":"Ursula K. Le Guin","biography":"Earthsea"}]`},
	})
	h := NewAuthorHandler(e.authors, e.pages)
	rec := httptest.NewRecorder()

	// act
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/authors", nil))

	// assert
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ursula K. Le Guin")
	assert.Contains(t, body, "Add New Author")
	assert.Contains(t, body, `action="/authors/1/delete"`)
}

func Test_AuthorHandler_Page_EmptyState(t *testing.T) {
	// arrange
	e := newEnv(t, map[string]cannedResponse{
		"GET /api/authors/": {Status: http.StatusOK, Body: `[]`},
	})
	h := NewAuthorHandler(e.authors, e.pages)
	rec := httptest.NewRecorder()

	// act
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/authors", nil))

	// assert
	assert.Contains(t, rec.Body.String(), "No authors found. Add one above.")
}

func Test_AuthorHandler_Page_ShowsLoadError_WhenBackendFails(t *testing.T) {
	// arrange
	e := newEnv(t, map[string]cannedResponse{
		"GET /api/authors/": {Status: http.StatusInternalServerError, Body: `{}`},
	})
	h := NewAuthorHandler(e.authors, e.pages)
	rec := httptest.NewRecorder()

	// act
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/authors", nil))

	// assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not load authors.")
}

func Test_AuthorHandler_Page_PrefillsEditForm(t *testing.T) {
	// arrange
	e := newEnv(t, map[string]cannedResponse{
		"GET /api/authors/": {Status: http.StatusOK, Body: `[{"id":7,"name":"Octavia Butler","biography":"Kindred"}]`},
	})
	h := NewAuthorHandler(e.authors, e.pages)
	rec := httptest.NewRecorder()

	// act
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/authors?edit=7", nil))

	// assert
	body := rec.Body.String()
	assert.Contains(t, body, "Edit Author")
	assert.Contains(t, body, `action="/authors/7"`)
	assert.Contains(t, body, `value="Octavia Butler"`)
}

func Test_AuthorHandler_Create_MissingFields(t *testing.T) {
	// arrange
	e := newEnv(t, nil)
	h := NewAuthorHandler(e.authors, e.pages)
	rec := httptest.NewRecorder()

	// act
	h.Create(rec, formRequest(http.MethodPost, "/authors", map[string]string{"name": "Le Guin"}, nil))

	// assert
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/authors", rec.Header().Get("Location"))
	f := flashFrom(t, rec)
	assert.Equal(t, "Missing Fields", f.Title)
	assert.Equal(t, "Please fill in both fields.", f.Text)
	assert.Empty(t, e.backend.writes())
}

func Test_AuthorHandler_Create_Success(t *testing.T) {
	// arrange
	e := newEnv(t, map[string]cannedResponse{
		"POST /api/authors/": {Status: http.StatusCreated, Body: `{"id":3,"name":"Le Guin","biography":"Earthsea"}`},
	})
	h := NewAuthorHandler(e.authors, e.pages)
	rec := httptest.NewRecorder()

	// act
	h.Create(rec, formRequest(http.MethodPost, "/authors", map[string]string{"name": "Le Guin", "biography": "Earthsea"}, nil))

	// assert
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Author Added", flashFrom(t, rec).Title)
	writes := e.backend.writes()
	require.Len(t, writes, 1)
	assert.JSONEq(t, `{"name":"Le Guin","biography":"Earthsea"}`, writes[0].Body)
}

func Test_AuthorHandler_Delete_Failure(t *testing.T) {
	// arrange
	e := newEnv(t, nil)
	h := NewAuthorHandler(e.authors, e.pages)
	rec := httptest.NewRecorder()

	// act
	h.Delete(rec, formRequest(http.MethodPost, "/authors/9/delete", nil, map[string]string{"id": "9"}))

	// assert
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	f := flashFrom(t, rec)
	assert.Equal(t, FlashError, f.Kind)
	assert.Equal(t, "Could not delete author.", f.Text)
}

func Test_PageHandler_ShowsFlashOnce(t *testing.T) {
	// arrange
	e := newEnv(t, map[string]cannedResponse{
		"GET /api/genres/": {Status: http.StatusOK, Body: `[]`},
	})
	h := NewGenreHandler(e.genres, e.pages)

	posted := httptest.NewRecorder()
	setFlash(posted, genreNotices.Added)
	req := httptest.NewRequest(http.MethodGet, "/genres", nil)
	for _, c := range posted.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()

	// act
	h.Page(rec, req)

	// assert
	assert.Contains(t, rec.Body.String(), "New genre has been added successfully.")
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "flash cookie must be cleared after display")
}
