package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/study-link/studylink/internal/api/http"
	"github.com/study-link/studylink/internal/auth"
	"github.com/study-link/studylink/internal/config"
	"github.com/study-link/studylink/internal/db"
	"github.com/study-link/studylink/internal/eventlog"
	"github.com/study-link/studylink/internal/genai"
	"github.com/study-link/studylink/internal/homework"
	"github.com/study-link/studylink/internal/library"
	"github.com/study-link/studylink/internal/rbac"
	"github.com/study-link/studylink/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	if err := db.Seed(ctx, dbh); err != nil {
		log.Fatalf("db seed failed: %v", err)
	}

	assignments := homework.NewSQLAssignmentStore(dbh)
	grades := homework.NewSQLGradeStore(dbh)
	sessions := homework.NewSessions()
	books := library.NewRepo(dbh)
	events := eventlog.NewRepo(dbh)

	gen := genai.NewClient(genai.Config{
		APIKey:  cfg.GenAI.APIKey,
		Model:   cfg.GenAI.Model,
		BaseURL: cfg.GenAI.BaseURL,
	})

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	// Protected API (JWT → claims in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// Assignments
		pr.With(rbac.Require("assignment:view")).
			Get("/assignments", api.ListAssignmentsHandler(assignments, grades))
		pr.With(rbac.Require("assignment:view")).
			Get("/assignments/{assignmentID}", api.GetAssignmentHandler(assignments))
		pr.With(rbac.Require("assignment:create")).
			Post("/assignments", api.PublishAssignmentHandler(assignments, events))
		pr.With(rbac.Require("assignment:generate")).
			Post("/assignments/generate", api.GenerateExercisesHandler(gen))

		// Player flow
		pr.With(rbac.Require("player:open")).
			Post("/assignments/{assignmentID}/player", api.OpenPlayerHandler(assignments, grades, sessions))
		pr.With(rbac.Require("player:answer")).
			Put("/player/{sessionID}/answers", api.RecordAnswerHandler(sessions))
		pr.With(rbac.Require("attempt:submit")).
			Post("/player/{sessionID}/submit", api.SubmitHandler(grades, sessions, events))
		pr.With(rbac.Require("player:open")).
			Delete("/player/{sessionID}", api.ClosePlayerHandler(sessions))

		// Gradebook
		pr.With(rbac.RequireAny("grades:view-own", "grades:view-all")).
			Get("/grades", api.ListGradesHandler(grades))

		// Users and groups
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("users:create")).
			Post("/users", api.CreateUserHandler(dbh, events))
		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))
		pr.With(rbac.Require("groups:list")).
			Get("/groups", api.ListGroupsHandler(dbh))
		pr.With(rbac.Require("groups:create")).
			Post("/groups", api.CreateGroupHandler(dbh))

		// Library and flashcards
		pr.With(rbac.Require("books:view")).
			Get("/books", api.ListBooksHandler(books))
		pr.With(rbac.Require("books:view")).
			Get("/books/categories", api.ListBookCategoriesHandler(books))
		pr.With(rbac.Require("flashcards:view")).
			Get("/flashcards", api.FlashcardsHandler(dbh))

		// Tutor chat
		pr.With(rbac.Require("tutor:chat")).
			Post("/tutor/chat", api.TutorChatHandler(gen))

		// Audit log (admin only via the wildcard permission)
		pr.With(rbac.Require("events:view")).
			Get("/events", api.ListEventsHandler(events))

		// Media
		pr.Route("/assets", func(ar chi.Router) {
			api.MountAssets(ar, bs)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
