package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"library-admin/internal/auth"
	"library-admin/internal/middleware"
	"library-admin/pkg/utils"
)

type AuthHandler struct {
	Staff *auth.Staff
	Pages *PageHandler
	// SecureCookie marks the session cookie Secure (HTTPS deployments).
	SecureCookie bool
}

func NewAuthHandler(staff *auth.Staff, pages *PageHandler) *AuthHandler {
	return &AuthHandler{Staff: staff, Pages: pages}
}

type loginPage struct {
	Next      string
	Pending   bool
	TempToken string
	Error     string
}

// safeNext only allows local paths as the post-login destination.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/login") {
		return "/"
	}
	return next
}

func (h *AuthHandler) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Staff.Tokens.Lifetime().Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, view loginPage) {
	data := h.Pages.newPage(w, r, "Staff Login", "login")
	data.Data = view
	h.Pages.Render(w, status, "login", data)
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if !h.Staff.Enabled() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, loginPage{Next: safeNext(r.URL.Query().Get("next"))})
}

// Login handles POST /login (password step)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.Staff.Enabled() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	r.ParseForm()
	next := safeNext(r.PostFormValue("next"))

	res, err := h.Staff.Login(r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		log.Printf("[Auth] Failed login from %s", middleware.ClientIP(r))
		h.renderLogin(w, r, http.StatusUnauthorized, loginPage{Next: next, Error: "Invalid username or password."})
		return
	}

	if res.Pending {
		h.renderLogin(w, r, http.StatusOK, loginPage{Next: next, Pending: true, TempToken: res.Token})
		return
	}

	h.setSession(w, res.Token)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// VerifyCode handles POST /login/verify (authenticator step)
func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	next := safeNext(r.PostFormValue("next"))
	tempToken := r.PostFormValue("temp_token")

	token, err := h.Staff.VerifyCode(tempToken, r.PostFormValue("code"))
	if err != nil {
		h.renderLogin(w, r, http.StatusUnauthorized, loginPage{
			Next:      next,
			Pending:   true,
			TempToken: tempToken,
			Error:     "Invalid verification code.",
		})
		return
	}

	h.setSession(w, token)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type loginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Code      string `json:"code"`
	TempToken string `json:"temp_token"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Pending bool   `json:"pending,omitempty"`
}

// LoginJSON handles POST /api/login for API clients. With TOTP enabled the
// first call returns a pending temp token; post it back with the code.
func (h *AuthHandler) LoginJSON(w http.ResponseWriter, r *http.Request) {
	if !h.Staff.Enabled() {
		utils.RespondError(w, http.StatusNotFound, "Login is disabled")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.TempToken != "" {
		token, err := h.Staff.VerifyCode(req.TempToken, req.Code)
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, loginResponse{Token: token})
		return
	}

	res, err := h.Staff.Login(req.Username, req.Password)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, auth.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
		utils.RespondError(w, status, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, loginResponse{Token: res.Token, Pending: res.Pending})
}
