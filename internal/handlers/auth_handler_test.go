package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin/internal/auth"
	"library-admin/internal/config"
	"library-admin/internal/middleware"
)

func newStaff(t *testing.T, totpSecret string) *auth.Staff {
	t.Helper()
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "library-admin"
	cfg.JWT.ExpirationHours = 2
	cfg.Auth.Username = "admin"
	cfg.Auth.PasswordHash = hash
	cfg.Auth.TOTPSecret = totpSecret
	return auth.NewStaff(cfg, auth.NewJWTManager(cfg))
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func Test_SafeNext(t *testing.T) {
	assert.Equal(t, "/books?edit=2", safeNext("/books?edit=2"))
	assert.Equal(t, "/", safeNext(""))
	assert.Equal(t, "/", safeNext("https://evil.example"))
	assert.Equal(t, "/", safeNext("//evil.example"))
	assert.Equal(t, "/", safeNext("/login?next=/books"))
}

func Test_AuthHandler_Login_SetsSessionCookie(t *testing.T) {
	// arrange
	e := newEnv(t, nil)
	h := NewAuthHandler(newStaff(t, ""), e.pages)
	rec := httptest.NewRecorder()
	form := map[string]string{"username": "admin", "password": "s3cret", "next": "/borrows"}

	// act
	h.Login(rec, formRequest(http.MethodPost, "/login", form, nil))

	// assert
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/borrows", rec.Header().Get("Location"))
	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, int((2 * time.Hour).Seconds()), c.MaxAge)

	claims, err := h.Staff.Tokens.ValidateToken(c.Value)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func Test_AuthHandler_Login_WrongPassword(t *testing.T) {
	// arrange
	e := newEnv(t, nil)
	h := NewAuthHandler(newStaff(t, ""), e.pages)
	rec := httptest.NewRecorder()

	// act
	h.Login(rec, formRequest(http.MethodPost, "/login", map[string]string{"username": "admin", "password": "nope"}, nil))

	// assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username or password.")
	assert.Nil(t, sessionCookie(rec))
}

func Test_AuthHandler_TwoStepLogin(t *testing.T) {
	// arrange
	secret, _, err := auth.GenerateTOTP("library-admin", "admin")
	require.NoError(t, err)
	e := newEnv(t, nil)
	h := NewAuthHandler(newStaff(t, secret), e.pages)

	// act: password step
	first := httptest.NewRecorder()
	h.Login(first, formRequest(http.MethodPost, "/login", map[string]string{"username": "admin", "password": "s3cret"}, nil))

	// assert
	require.Equal(t, http.StatusOK, first.Code)
	assert.Nil(t, sessionCookie(first), "no session before the code step")
	assert.Contains(t, first.Body.String(), `action="/login/verify"`)

	tempToken, err := h.Staff.Tokens.GenerateTempToken("admin")
	require.NoError(t, err)
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	// act: code step
	second := httptest.NewRecorder()
	h.VerifyCode(second, formRequest(http.MethodPost, "/login/verify", map[string]string{"temp_token": tempToken, "code": code}, nil))

	// assert
	assert.Equal(t, http.StatusSeeOther, second.Code)
	assert.Equal(t, "/", second.Header().Get("Location"))
	assert.NotNil(t, sessionCookie(second))
}

func Test_AuthHandler_LoginPage_RedirectsWhenDisabled(t *testing.T) {
	// arrange
	e := newEnv(t, nil)
	h := NewAuthHandler(nil, e.pages)
	rec := httptest.NewRecorder()

	// act
	h.LoginPage(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	// assert
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func Test_AuthHandler_Logout_ClearsCookie(t *testing.T) {
	// arrange
	e := newEnv(t, nil)
	h := NewAuthHandler(newStaff(t, ""), e.pages)
	rec := httptest.NewRecorder()

	// act
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	// assert
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Less(t, c.MaxAge, 0)
}

func Test_AuthHandler_LoginJSON(t *testing.T) {
	// arrange
	e := newEnv(t, nil)
	h := NewAuthHandler(newStaff(t, ""), e.pages)
	rec := httptest.NewRecorder()

	// act
	h.LoginJSON(rec, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"admin","password":"s3cret"}`)))

	// assert
	require.Equal(t, http.StatusOK, rec.Code)
	var body loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)
	assert.False(t, body.Pending)
}

func Test_AuthHandler_LoginJSON_BadCredentials(t *testing.T) {
	// arrange
	e := newEnv(t, nil)
	h := NewAuthHandler(newStaff(t, ""), e.pages)
	rec := httptest.NewRecorder()

	// act
	h.LoginJSON(rec, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"admin","password":"x"}`)))

	// assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
