// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/estofamais/internal/auth"
	"github.com/olegiv/estofamais/internal/catalog"
	"github.com/olegiv/estofamais/internal/config"
	"github.com/olegiv/estofamais/internal/content"
	"github.com/olegiv/estofamais/internal/geoip"
	"github.com/olegiv/estofamais/internal/handler"
	"github.com/olegiv/estofamais/internal/handler/api"
	"github.com/olegiv/estofamais/internal/i18n"
	"github.com/olegiv/estofamais/internal/kv"
	"github.com/olegiv/estofamais/internal/logging"
	"github.com/olegiv/estofamais/internal/media"
	"github.com/olegiv/estofamais/internal/middleware"
	"github.com/olegiv/estofamais/internal/notify"
	"github.com/olegiv/estofamais/internal/quote"
	"github.com/olegiv/estofamais/internal/render"
	"github.com/olegiv/estofamais/internal/scheduler"
	"github.com/olegiv/estofamais/internal/session"
	"github.com/olegiv/estofamais/internal/version"
	"github.com/olegiv/estofamais/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// Request limits.
const (
	formRequests = 10
	formWindow   = time.Minute
	apiRequests  = 120
	apiWindow    = time.Minute
	journalSize  = 500
)

// crudHandlers defines the standard CRUD handler methods.
type crudHandlers struct {
	List       http.HandlerFunc
	NewForm    http.HandlerFunc
	Create     http.HandlerFunc
	EditForm   http.HandlerFunc
	Update     http.HandlerFunc
	DeleteForm http.HandlerFunc
	Delete     http.HandlerFunc
}

// registerCRUD registers standard CRUD routes for a resource.
// Routes: GET /, GET /novo, POST /, GET /{id}/editar, POST /{id},
// GET /{id}/excluir, POST /{id}/excluir
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	baseID := base + handler.RouteParamID
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base, h.Create)
	r.Get(baseID+handler.RouteSuffixEdit, h.EditForm)
	r.Post(baseID, h.Update)
	r.Get(baseID+handler.RouteSuffixDelete, h.DeleteForm)
	r.Post(baseID+handler.RouteSuffixDelete, h.Delete)
}

// registerSettingsRoutes registers a settings page with Get and Post.
func registerSettingsRoutes(r chi.Router, route string, get, update http.HandlerFunc) {
	r.Get(route, get)
	r.Post(route, update)
}

// resourceHandlers adapts an admin record editor to crudHandlers.
func resourceHandlers[T interface {
	List(http.ResponseWriter, *http.Request)
	NewForm(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	EditForm(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	DeleteForm(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}](res T) crudHandlers {
	return crudHandlers{
		List: res.List, NewForm: res.NewForm, Create: res.Create,
		EditForm: res.EditForm, Update: res.Update,
		DeleteForm: res.DeleteForm, Delete: res.Delete,
	}
}

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Estofamais - upholstery workshop website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTOFA_SESSION_SECRET  Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTOFA_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTOFA_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTOFA_STORAGE         User storage: memory|sqlite|mysql|redis (default: memory)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTOFA_CLOUDINARY_URL  Store photos in Cloudinary instead of ESTOFA_UPLOADS_DIR\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTOFA_SMTP_HOST       Mail server for quote and contact notifications\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTOFA_AMQP_URL        RabbitMQ URL for publishing site events\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTOFA_GEOIP_DB_PATH   MaxMind country database (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("estofamais %s\n", version.Resolve(appVersion, appGitCommit, appBuildTime))
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// printBanner writes the startup summary to stderr.
func printBanner(cfg *config.Config, info version.Info) {
	title := color.New(color.FgHiYellow, color.Bold)
	key := color.New(color.FgCyan)
	_, _ = title.Fprintf(os.Stderr, "Estofamais %s\n", info.Version)
	_, _ = key.Fprint(os.Stderr, "  listen   ")
	_, _ = fmt.Fprintf(os.Stderr, "http://%s\n", cfg.ServerAddr())
	_, _ = key.Fprint(os.Stderr, "  env      ")
	_, _ = fmt.Fprintln(os.Stderr, cfg.Env)
	_, _ = key.Fprint(os.Stderr, "  storage  ")
	_, _ = fmt.Fprintln(os.Stderr, cfg.Storage)
	if cfg.IsDevelopment() {
		_, _ = color.New(color.FgYellow).Fprintf(os.Stderr, "  admin    %s / %s\n", auth.DefaultAdminEmail, auth.DefaultAdminPassword)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.Resolve(appVersion, appGitCommit, appBuildTime)

	// Setup logger: warnings and errors also go to the admin event journal
	logLevel := logging.ParseLevel(cfg.LogLevel)
	journal := logging.NewJournal(journalSize)
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(logging.NewJournalHandler(textHandler, journal))
	slog.SetDefault(logger)

	printBanner(cfg, versionInfo)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}
	slog.Info("i18n system initialized")

	ctx := context.Background()

	// Key/value storage for registered users
	slog.Info("opening storage", "backend", cfg.Storage)
	store, err := kv.Open(ctx, kv.Options{
		Backend:  cfg.Storage,
		DBPath:   cfg.DBPath,
		MySQLDSN: cfg.MySQLDSN,
		RedisURL: cfg.RedisURL,
		Prefix:   cfg.KVPrefix,
	})
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("error closing storage", "error", err)
		}
	}()

	// Sessions share the SQLite database when there is one
	var sessionDB *sql.DB
	if sqlStore, ok := store.(*kv.SQLStore); ok && sqlStore.Dialect() == kv.DialectSQLite {
		sessionDB = sqlStore.DB()
	}
	sessionManager := session.New(sessionDB, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	contentRenderer, err := content.NewRenderer(content.DefaultCacheSize)
	if err != nil {
		return fmt.Errorf("initializing content renderer: %w", err)
	}

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		Content:        contentRenderer,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	siteStore := catalog.NewStore(catalog.SeedData())

	// Notifications
	var notifiers []notify.Notifier
	if cfg.SMTPEnabled() {
		notifiers = append(notifiers, notify.NewMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			To:       cfg.NotifyEmails,
		}))
		slog.Info("mail notifications enabled", "host", cfg.SMTPHost, "recipients", len(cfg.NotifyEmails))
	}
	if cfg.AMQPEnabled() {
		publisher, err := notify.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			slog.Warn("event publisher unavailable", "error", err)
		} else {
			defer func() { _ = publisher.Close() }()
			notifiers = append(notifiers, publisher)
			slog.Info("event publisher enabled", "exchange", cfg.AMQPExchange)
		}
	}
	notifier := notify.Combine(notifiers...)

	// Photo storage
	var uploader media.Uploader = media.NewLocalUploader(cfg.UploadsDir, "/uploads")
	if cfg.CloudinaryEnabled() {
		cu, err := media.NewCloudinaryUploader(cfg.CloudinaryURL, "estofamais")
		if err != nil {
			return fmt.Errorf("initializing cloudinary: %w", err)
		}
		uploader = cu
		slog.Info("photo storage", "backend", "cloudinary")
	} else {
		slog.Info("photo storage", "backend", "local", "dir", cfg.UploadsDir)
	}

	locator, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("geoip database unavailable", "path", cfg.GeoIPDBPath, "error", err)
	}
	defer func() { _ = locator.Close() }()

	desk := quote.NewDesk(quote.Config{
		Store:    siteStore,
		Uploader: uploader,
		Notifier: notifier,
		Locator:  locator,
		Delay:    cfg.SubmitLatency,
		Logger:   logger,
	})

	// Authentication
	users := auth.NewUsers(store)
	authService := auth.NewService(users, session.NewUserStore(sessionManager), cfg.AuthLatency)
	tokens := auth.NewTokens(cfg.TokenSecret(), cfg.JWTTTL)
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized")

	// Maintenance jobs
	sched := scheduler.New(logger)
	maintenance := scheduler.Maintenance{
		Drafts:   desk,
		Previews: desk,
		DraftTTL: cfg.DraftTTL,
		Lockouts: loginProtection,
	}
	if cfg.GeoIPEnabled() {
		maintenance.GeoIP = locator
	}
	for _, job := range maintenance.Jobs(logger) {
		if err := sched.Add(job); err != nil {
			return fmt.Errorf("registering job: %w", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	// Initialize handlers
	frontendHandler := handler.NewFrontendHandler(siteStore, renderer, sessionManager, logger)
	quoteHandler := handler.NewQuoteHandler(siteStore, renderer, sessionManager, desk)
	contactHandler := handler.NewContactHandler(siteStore, renderer, sessionManager, notifier)
	blogHandler := handler.NewBlogHandler(siteStore, renderer, sessionManager, contentRenderer)
	authHandler := handler.NewAuthHandler(siteStore, renderer, sessionManager, authService, loginProtection)
	adminHandler := handler.NewAdminHandler(siteStore, renderer, sessionManager, users, desk, journal)
	schedulerHandler := handler.NewSchedulerHandler(siteStore, renderer, sessionManager, sched)
	healthHandler := handler.NewHealthHandler(store, cfg.UploadsDir, versionInfo)
	seoHandler := handler.NewSEOHandler(siteStore, cfg.SiteURL, cfg.IsDevelopment())

	materialsAdmin := handler.NewMaterialsAdmin(siteStore, renderer, sessionManager)
	galleryAdmin := handler.NewGalleryAdmin(siteStore, renderer, sessionManager, uploader)
	servicesAdmin := handler.NewServicesAdmin(siteStore, renderer, sessionManager)
	postsAdmin := handler.NewPostsAdmin(siteStore, renderer, sessionManager)

	apiHandler := api.NewHandler(api.Config{
		Store:           siteStore,
		Desk:            desk,
		Auth:            authService,
		Tokens:          tokens,
		Content:         contentRenderer,
		LoginProtection: loginProtection,
		Notifier:        notifier,
	})

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()))
	formLimit := middleware.FormLimit(formRequests, formWindow)

	// Create router
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(chimw.StripSlashes)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	// Health check routes (public, details for administrators)
	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(middleware.LoadUser(session.NewUserStore(sessionManager)))
		r.Get(handler.RouteHealth, healthHandler.Health)
	})
	r.Get(handler.RouteHealth+"/live", healthHandler.Liveness)
	r.Get(handler.RouteHealth+"/ready", healthHandler.Readiness)

	r.Get("/robots.txt", seoHandler.Robots)
	r.Get("/sitemap.xml", seoHandler.Sitemap)

	// Site routes share sessions, CSRF and the language of the visitor
	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(csrfMiddleware)
		r.Use(middleware.LoadUser(session.NewUserStore(sessionManager)))
		r.Use(middleware.Language)

		// Public pages
		r.Get(handler.RouteRoot, frontendHandler.Home)
		r.Get(handler.RouteServices, frontendHandler.Services)
		r.Get(handler.RouteGallery, frontendHandler.Gallery)
		r.Get(handler.RouteMaterials, frontendHandler.Materials)
		r.Get(handler.RouteAbout, frontendHandler.About)
		r.Get(handler.RouteBlog, blogHandler.List)
		r.Get(handler.RouteBlogPost, blogHandler.Show)

		// Quote request flow
		r.Get(handler.RouteQuote, quoteHandler.Form)
		r.Get(handler.RouteQuotePhotos+handler.RouteParamID, quoteHandler.Preview)
		r.Group(func(r chi.Router) {
			r.Use(formLimit)
			r.Post(handler.RouteQuote, quoteHandler.Submit)
			r.Post(handler.RouteQuotePhotos, quoteHandler.AddImage)
			r.Post(handler.RouteQuotePhotos+handler.RouteParamID+handler.RouteSuffixRemove, quoteHandler.RemoveImage)
			r.Post(handler.RouteQuoteMaterials, quoteHandler.AddMaterial)
			r.Post(handler.RouteQuoteMaterials+handler.RouteParamID+handler.RouteSuffixRemove, quoteHandler.RemoveMaterial)
			r.Post(handler.RouteQuoteReset, quoteHandler.Reset)

			r.Get(handler.RouteContact, contactHandler.Form)
			r.Post(handler.RouteContact, contactHandler.Submit)

			r.Post(handler.RouteBlogComments, blogHandler.Comment)
			r.Post(handler.RouteBlogLike, blogHandler.Like)
		})

		// Authentication
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteRegister, authHandler.RegisterForm)
		r.With(formLimit).Post(handler.RouteRegister, authHandler.Register)
		r.Post(handler.RouteLogout, authHandler.Logout)

		// Admin panel
		r.Route(handler.RouteAdmin, func(r chi.Router) {
			r.Use(middleware.RequireAdmin(sessionManager))

			r.Get(handler.RouteRoot, adminHandler.Dashboard)

			registerCRUD(r, handler.RouteMaterials, resourceHandlers(materialsAdmin))
			registerCRUD(r, handler.RouteGallery, resourceHandlers(galleryAdmin))
			registerCRUD(r, handler.RouteServices, resourceHandlers(servicesAdmin))
			registerCRUD(r, handler.RouteBlog, resourceHandlers(postsAdmin))

			r.Get(handler.RouteQuotes, adminHandler.Quotes)
			r.Get(handler.RouteQuotesID, adminHandler.Quote)
			r.Post(handler.RouteQuotesID+"/status", adminHandler.UpdateQuoteStatus)
			r.Get(handler.RouteQuotesID+handler.RouteSuffixDelete, adminHandler.DeleteQuoteForm)
			r.Post(handler.RouteQuotesID+handler.RouteSuffixDelete, adminHandler.DeleteQuote)

			r.Get(handler.RouteComments, adminHandler.Comments)
			r.Post(handler.RouteCommentsID+"/visibilidade", adminHandler.ToggleComment)

			r.Get(handler.RouteMessages, adminHandler.Messages)
			r.Post(handler.RouteMessagesID+"/lida", adminHandler.MarkMessage)
			r.Get(handler.RouteMessagesID+handler.RouteSuffixDelete, adminHandler.DeleteMessageForm)
			r.Post(handler.RouteMessagesID+handler.RouteSuffixDelete, adminHandler.DeleteMessage)

			r.Get(handler.RouteUsers, adminHandler.Users)
			registerSettingsRoutes(r, handler.RouteSettings, adminHandler.Settings, adminHandler.UpdateSettings)

			r.Get(handler.RouteEvents, adminHandler.Events)
			r.Post(handler.RouteEvents+"/limpar", adminHandler.ClearEvents)

			r.Get(handler.RouteJobs, schedulerHandler.List)
			r.Post(handler.RouteJobRun, schedulerHandler.Trigger)
		})
	})

	// REST API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.CORSOrigins))
		r.Use(middleware.APILimit(apiRequests, apiWindow))
		r.Use(middleware.BearerAuth(tokens))

		// Public endpoints
		r.Get("/status", apiHandler.Status)
		r.Post("/auth/token", apiHandler.IssueToken)
		r.Get("/settings", apiHandler.GetSettings)
		r.Post("/contact", apiHandler.CreateContact)
		r.Post("/quotes", apiHandler.CreateQuote)

		materials, gallery, services, posts := apiHandler.Materials(), apiHandler.Gallery(), apiHandler.Services(), apiHandler.Posts()
		r.Get("/materials", materials.List)
		r.Get("/materials/{id}", materials.Get)
		r.Get("/gallery", gallery.List)
		r.Get("/gallery/{id}", gallery.Get)
		r.Get("/services", services.List)
		r.Get("/services/{id}", services.Get)
		r.Get("/posts", posts.List)
		r.Get("/posts/{id}", posts.Get)
		r.Get("/posts/{id}/comments", apiHandler.ListComments)

		// Any signed-in user
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAPIUser)
			r.Post("/posts/{id}/comments", apiHandler.CreateComment)
			r.Post("/posts/{id}/like", apiHandler.ToggleLike)
		})

		// Administrators
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAPIAdmin)

			r.Post("/materials", materials.Create)
			r.Put("/materials/{id}", materials.Update)
			r.Delete("/materials/{id}", materials.Delete)
			r.Post("/gallery", gallery.Create)
			r.Put("/gallery/{id}", gallery.Update)
			r.Delete("/gallery/{id}", gallery.Delete)
			r.Post("/services", services.Create)
			r.Put("/services/{id}", services.Update)
			r.Delete("/services/{id}", services.Delete)
			r.Post("/posts", posts.Create)
			r.Put("/posts/{id}", posts.Update)
			r.Delete("/posts/{id}", posts.Delete)

			r.Patch("/comments/{id}/visibility", apiHandler.SetCommentVisibility)

			r.Get("/quotes", apiHandler.ListQuotes)
			r.Get("/quotes/{id}", apiHandler.GetQuote)
			r.Patch("/quotes/{id}/status", apiHandler.UpdateQuoteStatus)
			r.Delete("/quotes/{id}", apiHandler.DeleteQuote)

			r.Put("/settings", apiHandler.UpdateSettings)
		})
	})
	slog.Info("REST API v1 mounted at /api/v1")

	// Static file serving
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Photos uploaded to the local disk
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	// 404 Not Found handler
	r.With(sessionManager.LoadAndSave, middleware.LoadUser(session.NewUserStore(sessionManager)), middleware.Language).
		NotFound(frontendHandler.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
