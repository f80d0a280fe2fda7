package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"library-admin/internal/archive"
	"library-admin/internal/auth"
	"library-admin/internal/backend"
	"library-admin/internal/cache"
	"library-admin/internal/config"
	"library-admin/internal/database"
	"library-admin/internal/db"
	"library-admin/internal/fine"
	"library-admin/internal/handlers"
	"library-admin/internal/health"
	h "library-admin/internal/http"
	"library-admin/internal/middleware"
	"library-admin/internal/realtime"
	"library-admin/internal/repositories"
	"library-admin/internal/services"
	"library-admin/internal/timeutil"
	"library-admin/migrations"
	"library-admin/static"
	"library-admin/templates"
)

// runHashPassword reads a password from stdin and prints its bcrypt hash for auth.password_hash
func runHashPassword() {
	fmt.Print("Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		log.Fatalf("Failed to read password: %v", err)
	}
	hash, err := auth.HashPassword(strings.TrimRight(line, "\r\n"))
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Println(hash)
}

// runNewTOTP prints a fresh authenticator secret for auth.totp_secret
func runNewTOTP(cfg *config.Config) {
	secret, url, err := auth.GenerateTOTP(cfg.JWT.Issuer, cfg.Auth.Username)
	if err != nil {
		log.Fatalf("Failed to generate TOTP secret: %v", err)
	}
	fmt.Println("Secret:", secret)
	fmt.Println("Scan URL:", url)
}

// connectAudit opens the optional audit database and applies migrations.
// Any failure leaves the audit log disabled.
func connectAudit(ctx context.Context, cfg *config.Config) *pgxpool.Pool {
	if !cfg.Database.Enabled {
		log.Println("[Audit] Disabled (database.enabled is false)")
		return nil
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Printf("[Audit] Database unavailable: %v (continuing without audit log)", err)
		return nil
	}

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(migrateCtx); err != nil {
		log.Printf("[Audit] Migrations failed: %v (continuing without audit log)", err)
		pool.Close()
		return nil
	}

	log.Printf("[Audit] Connected to %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	return pool
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	hashPassword := flag.Bool("hash-password", false, "Read a password from stdin and print its bcrypt hash")
	newTOTP := flag.Bool("new-totp", false, "Print a new authenticator secret for the staff account")
	flag.Parse()

	if *hashPassword {
		runHashPassword()
		return
	}

	// Load configuration
	cfg := config.Load()

	if *newTOTP {
		runNewTOTP(cfg)
		return
	}

	if *port != 0 {
		cfg.Server.Port = *port
	}

	if err := timeutil.SetLocation(cfg.Display.Timezone); err != nil {
		log.Printf("[Config] Unknown timezone %q, keeping %s: %v", cfg.Display.Timezone, timeutil.Location, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if cfg.Redis.Enabled {
		if err := cache.Init(cfg); err != nil {
			log.Printf("[Redis] Cache unavailable: %v (lists will be read from the backend)", err)
		} else {
			log.Println("[Redis] Cache connected successfully")
			cache.FlushLists(ctx)
			defer cache.Close()
		}
	}

	pool := connectAudit(ctx, cfg)
	if pool != nil {
		defer pool.Close()
	}

	// Realtime change feed
	hub := realtime.NewHub()
	go hub.Run(ctx)

	// Backend client and services
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.BackendTimeout())
	library := backend.NewLibrary(client)

	var changes *services.ChangeLog
	var activityRepo handlers.ActionLogLister
	if pool != nil {
		repo := repositories.NewAdminActionLogRepository(pool)
		changes = services.NewChangeLog(repo, hub)
		activityRepo = repo
	} else {
		changes = services.NewChangeLog(nil, hub)
	}

	calculator := fine.NewCalculator(cfg.FinePerDay())
	clock := timeutil.SystemClock{}

	authorService := services.NewAuthorService(library, changes)
	genreService := services.NewGenreService(library, changes)
	bookService := services.NewBookService(library, changes)
	borrowService := services.NewBorrowService(library, calculator, clock, changes)
	reportService := services.NewReportService(authorService, genreService, bookService, borrowService)

	// Optional report archive
	var archiver handlers.Archiver
	if cfg.Archive.Enabled {
		uploader, err := archive.New(ctx, cfg)
		if err != nil {
			log.Printf("[Archive] Disabled: %v", err)
		} else {
			archiver = uploader
			log.Printf("[Archive] Reports will be stored in bucket %s", cfg.Archive.Bucket)
		}
	}

	// Staff login
	jwtManager := auth.NewJWTManager(cfg)
	staff := auth.NewStaff(cfg, jwtManager)
	if staff.Enabled() {
		log.Printf("[Auth] Login required for %s (2FA: %t)", staff.Username, staff.TOTPSecret != "")
	} else {
		log.Println("[Auth] Login disabled (auth.password_hash is empty)")
	}

	pageHandler, err := handlers.NewPageHandler(templates.FS, cfg.Display.Currency)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}
	pageHandler.AuthEnabled = staff.Enabled()
	pageHandler.ActivityEnabled = activityRepo != nil

	authHandler := handlers.NewAuthHandler(staff, pageHandler)
	authHandler.SecureCookie = os.Getenv("COOKIE_SECURE") == "true"

	router := h.NewRouter(h.Handlers{
		Authors:  handlers.NewAuthorHandler(authorService, pageHandler),
		Genres:   handlers.NewGenreHandler(genreService, pageHandler),
		Books:    handlers.NewBookHandler(bookService, authorService, genreService, pageHandler),
		Borrows:  handlers.NewBorrowHandler(borrowService, bookService, pageHandler),
		Reports:  handlers.NewReportHandler(reportService, pageHandler, archiver),
		Fine:     handlers.NewFineHandler(calculator, clock),
		Activity: handlers.NewAdminActionLogHandler(activityRepo, pageHandler),
		Auth:     authHandler,
		Health:   handlers.NewHealthHandler(health.NewHealthChecker(client, pool)),
		Realtime: hub.ServeWS,
	}, middleware.NewAuthMiddleware(staff), static.FS)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.RequestLogger(middleware.MetricsMiddleware(corsMiddleware(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Server running on %s (backend: %s)", addr, cfg.Backend.BaseURL)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
