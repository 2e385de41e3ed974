package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"luman/internal/auth"
	"luman/internal/config"
	"luman/internal/handler"
	"luman/internal/httputil"
	"luman/internal/middleware"
	"luman/internal/repository/postgres"
	"luman/internal/service"
	chatSvc "luman/internal/service/chat"
	"luman/internal/storage"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Apply pending schema migrations before serving traffic
	if err := postgres.Migrate(cfg.DatabaseURL, "file://migrations", logger); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create JWT verifier for GoTrue-issued tokens
	jwtVerifier, err := auth.NewJWTVerifier(cfg.AuthJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		DB:     pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	orgRepo := postgres.NewOrganizationRepository(repoConfig)
	memberRepo := postgres.NewMemberRepository(repoConfig)
	workspaceRepo := postgres.NewWorkspaceRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	noteRepo := postgres.NewNoteRepository(repoConfig)
	taskRepo := postgres.NewTaskRepository(repoConfig)
	eventRepo := postgres.NewEventRepository(repoConfig)
	chatRepo := postgres.NewChatRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// External clients
	authProvider := auth.NewGoTrueClient(cfg.AuthURL, cfg.AuthAnonKey)
	blobClient := storage.NewBlobClient(cfg.BlobStoreURL, cfg.BlobStoreToken)

	// Create services
	memberships := service.NewMembershipService(memberRepo, logger)
	orgService := service.NewOrganizationService(orgRepo, memberRepo, memberships, authProvider, logger)
	accountService := service.NewAccountService(orgRepo, memberRepo, authProvider, logger)
	workspaceService := service.NewWorkspaceService(workspaceRepo, memberships, logger)
	folderService := service.NewFolderService(folderRepo, logger)
	noteService := service.NewNoteService(noteRepo, logger)
	taskService := service.NewTaskService(taskRepo, txManager, logger)
	eventService := service.NewEventService(eventRepo, logger)

	toolbox := chatSvc.NewToolbox(noteService, eventService, logger)
	chatService := chatSvc.NewService(chatSvc.Config{
		APIKey:  cfg.OpenRouterAPIKey,
		BaseURL: cfg.OpenRouterURL,
		Model:   cfg.ChatModel,
		SiteURL: cfg.SiteURL,
	}, chatRepo, toolbox, logger)

	// Create handlers
	authHandler := handler.NewAuthHandler(orgService, accountService, logger)
	memberHandler := handler.NewMemberHandler(orgService, logger)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	noteHandler := handler.NewNoteHandler(noteService, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)
	eventHandler := handler.NewEventHandler(eventService, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)
	uploadHandler := handler.NewUploadHandler(blobClient, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Organization onboarding and account routes
	mux.HandleFunc("POST /api/auth/org", authHandler.CreateOrg)
	mux.HandleFunc("GET /api/auth/org", authHandler.ListOrgs)
	mux.HandleFunc("GET /api/auth/org/{slug}", authHandler.GetOrgBySlug)
	mux.HandleFunc("POST /api/auth/verify-invite", authHandler.VerifyInvite)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/set-role", authHandler.SetRole)
	mux.HandleFunc("GET /api/auth/session", authHandler.Session)
	mux.HandleFunc("PATCH /api/user", authHandler.UpdateProfile)

	// Member routes
	mux.HandleFunc("GET /api/organization/members", memberHandler.List)
	mux.HandleFunc("PATCH /api/organization/members", memberHandler.UpdateRole)

	// Workspace routes
	mux.HandleFunc("GET /api/workspaces", workspaceHandler.List)
	mux.HandleFunc("POST /api/workspaces", workspaceHandler.Create)
	mux.HandleFunc("PATCH /api/workspaces/{id}", workspaceHandler.Update)
	mux.HandleFunc("DELETE /api/workspaces/{id}", workspaceHandler.Delete)

	// Folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.List)
	mux.HandleFunc("POST /api/folders", folderHandler.Create)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.Delete)

	// Note routes
	mux.HandleFunc("GET /api/notes", noteHandler.List)
	mux.HandleFunc("POST /api/notes", noteHandler.Create)
	mux.HandleFunc("GET /api/notes/{id}", noteHandler.Get)
	mux.HandleFunc("PUT /api/notes/{id}", noteHandler.Save)
	mux.HandleFunc("DELETE /api/notes/{id}", noteHandler.Delete)
	mux.HandleFunc("PATCH /api/notes/{id}/tags", noteHandler.UpdateTags)

	// Task routes
	mux.HandleFunc("POST /api/tasks", taskHandler.Sync)
	mux.HandleFunc("GET /api/tasks", taskHandler.List)

	// Event and calendar routes
	mux.HandleFunc("GET /api/events", eventHandler.List)
	mux.HandleFunc("POST /api/events", eventHandler.Create)
	mux.HandleFunc("GET /api/events/{id}", eventHandler.Get)
	mux.HandleFunc("PUT /api/events/{id}", eventHandler.Update)
	mux.HandleFunc("DELETE /api/events/{id}", eventHandler.Delete)
	mux.HandleFunc("GET /api/calendar/organization", eventHandler.OrganizationCalendar)

	// Chat routes (streaming)
	mux.HandleFunc("POST /api/chat", chatHandler.Send)
	mux.HandleFunc("GET /api/chat/{noteId}", chatHandler.History)

	// Upload route
	mux.HandleFunc("POST /api/upload", uploadHandler.Upload)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.Auth(jwtVerifier, logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Upload-Filename"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived chat streams
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
