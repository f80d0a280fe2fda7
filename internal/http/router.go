package http

import (
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"library-admin/internal/handlers"
	"library-admin/internal/middleware"
	"library-admin/internal/models"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Authors  *handlers.AuthorHandler
	Genres   *handlers.GenreHandler
	Books    *handlers.BookHandler
	Borrows  *handlers.BorrowHandler
	Reports  *handlers.ReportHandler
	Fine     *handlers.FineHandler
	Activity *handlers.AdminActionLogHandler
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	// Realtime serves the websocket change feed.
	Realtime http.HandlerFunc
}

func NewRouter(h Handlers, authMiddleware *middleware.AuthMiddleware, static fs.FS) *mux.Router {
	r := mux.NewRouter()

	// Serve static files
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// Public routes
	r.HandleFunc("/health", h.Health.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", h.Health.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", h.Health.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/login", h.Auth.LoginPage).Methods("GET")
	r.HandleFunc("/login", h.Auth.Login).Methods("POST")
	r.HandleFunc("/login/verify", h.Auth.VerifyCode).Methods("POST")
	r.HandleFunc("/logout", h.Auth.Logout).Methods("GET", "POST")
	r.HandleFunc("/api/login", h.Auth.LoginJSON).Methods("POST")

	// Protected API routes
	authorsAPI := handlers.NewResourceAPI[models.Author, models.AuthorInput](h.Authors.Service, nil)
	genresAPI := handlers.NewResourceAPI[models.Genre, models.GenreInput](h.Genres.Service, nil)
	booksAPI := handlers.NewResourceAPI[models.Book, models.BookInput](h.Books.Service, func() models.BookInput {
		return models.BookInput{AvailableCopies: models.DefaultAvailableCopies}
	})
	borrowsAPI := handlers.NewResourceAPI[models.BorrowRecord, models.BorrowInput](h.Borrows.Service, nil)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/authors", authorsAPI.List).Methods("GET")
	api.HandleFunc("/authors", authorsAPI.Create).Methods("POST")
	api.HandleFunc("/authors/{id:[0-9]+}", authorsAPI.Update).Methods("PUT")
	api.HandleFunc("/authors/{id:[0-9]+}", authorsAPI.Delete).Methods("DELETE")

	api.HandleFunc("/genres", genresAPI.List).Methods("GET")
	api.HandleFunc("/genres", genresAPI.Create).Methods("POST")
	api.HandleFunc("/genres/{id:[0-9]+}", genresAPI.Update).Methods("PUT")
	api.HandleFunc("/genres/{id:[0-9]+}", genresAPI.Delete).Methods("DELETE")

	api.HandleFunc("/books", booksAPI.List).Methods("GET")
	api.HandleFunc("/books", booksAPI.Create).Methods("POST")
	api.HandleFunc("/books/{id:[0-9]+}", booksAPI.Update).Methods("PUT")
	api.HandleFunc("/books/{id:[0-9]+}", booksAPI.Delete).Methods("DELETE")

	// Borrow listings carry the derived charge next to each record
	api.HandleFunc("/borrows", h.Borrows.ListJSON).Methods("GET")
	api.HandleFunc("/borrows", borrowsAPI.Create).Methods("POST")
	api.HandleFunc("/borrows/{id:[0-9]+}", borrowsAPI.Update).Methods("PUT")
	api.HandleFunc("/borrows/{id:[0-9]+}", borrowsAPI.Delete).Methods("DELETE")
	api.HandleFunc("/borrows/{id:[0-9]+}/return", h.Borrows.ReturnJSON).Methods("POST")

	api.HandleFunc("/reports/summary", h.Reports.Summary).Methods("GET")
	api.HandleFunc("/fine", h.Fine.Calculate).Methods("GET")
	api.HandleFunc("/activity", h.Activity.ListActionLogs).Methods("GET")

	// Protected HTML pages and form posts
	// Registered after /api so API paths never fall into the page subrouter
	pages := r.PathPrefix("/").Subrouter()
	pages.Use(authMiddleware.Authenticate)

	pages.HandleFunc("/", h.Authors.Page).Methods("GET")
	pages.HandleFunc("/authors", h.Authors.Page).Methods("GET")
	pages.HandleFunc("/authors", h.Authors.Create).Methods("POST")
	pages.HandleFunc("/authors/{id:[0-9]+}", h.Authors.Update).Methods("POST")
	pages.HandleFunc("/authors/{id:[0-9]+}/delete", h.Authors.Delete).Methods("POST")

	pages.HandleFunc("/genres", h.Genres.Page).Methods("GET")
	pages.HandleFunc("/genres", h.Genres.Create).Methods("POST")
	pages.HandleFunc("/genres/{id:[0-9]+}", h.Genres.Update).Methods("POST")
	pages.HandleFunc("/genres/{id:[0-9]+}/delete", h.Genres.Delete).Methods("POST")

	pages.HandleFunc("/books", h.Books.Page).Methods("GET")
	pages.HandleFunc("/books", h.Books.Create).Methods("POST")
	pages.HandleFunc("/books/{id:[0-9]+}", h.Books.Update).Methods("POST")
	pages.HandleFunc("/books/{id:[0-9]+}/delete", h.Books.Delete).Methods("POST")

	pages.Handle("/borrow", http.RedirectHandler("/borrows", http.StatusMovedPermanently)).Methods("GET")
	pages.HandleFunc("/borrows", h.Borrows.Page).Methods("GET")
	pages.HandleFunc("/borrows", h.Borrows.Create).Methods("POST")
	pages.HandleFunc("/borrows/{id:[0-9]+}", h.Borrows.Update).Methods("POST")
	pages.HandleFunc("/borrows/{id:[0-9]+}/return", h.Borrows.MarkReturned).Methods("POST")
	pages.HandleFunc("/borrows/{id:[0-9]+}/delete", h.Borrows.Delete).Methods("POST")

	pages.HandleFunc("/reports", h.Reports.Page).Methods("GET")
	pages.HandleFunc("/reports/borrows.csv", h.Reports.BorrowsCSV).Methods("GET")
	pages.HandleFunc("/reports/borrows.pdf", h.Reports.BorrowsPDF).Methods("GET")
	pages.HandleFunc("/reports/archive", h.Reports.ArchiveReports).Methods("POST")

	pages.HandleFunc("/activity", h.Activity.Page).Methods("GET")
	pages.HandleFunc("/ws", h.Realtime).Methods("GET")

	return r
}
