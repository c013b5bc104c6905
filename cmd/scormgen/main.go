package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/v-scorm/scormgen/internal/api/http"
	auth "github.com/v-scorm/scormgen/internal/auth/middleware"
	"github.com/v-scorm/scormgen/internal/config"
	"github.com/v-scorm/scormgen/internal/course"
	"github.com/v-scorm/scormgen/internal/db"
	"github.com/v-scorm/scormgen/internal/gen"
	"github.com/v-scorm/scormgen/internal/media"
	"github.com/v-scorm/scormgen/internal/rbac"
	"github.com/v-scorm/scormgen/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := course.NewSQLStore(dbh, cfg.DBDriver)

	// --- Blob store ---
	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Quiz generation collaborator ---
	provider, err := gen.NewProvider(ctx, gen.Config{
		Provider: cfg.LLMProvider,
		Gemini:   gen.GeminiConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel},
		OpenAI:   gen.OpenAIConfig{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBase},
	})
	if err != nil {
		log.Fatalf("llm provider: %v", err)
	}

	// Metadata extraction runs in the authoring front end; the server only
	// falls back to this when the upload carries no duration.
	var prober media.Prober = media.StaticProber{Err: media.ErrExtractFailed}

	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.AdminUser, cfg.AdminPassHash)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.Route("/assets", func(ar chi.Router) {
			api.MountAssets(ar, bs)
		})

		pr.With(rbac.Require("course:create")).
			Post("/courses", api.CreateCourseHandler(store))
		pr.With(rbac.Require("course:view")).
			Get("/courses", api.ListCoursesHandler(store))
		pr.With(rbac.Require("course:view")).
			Get("/courses/{courseID}", api.GetCourseHandler(store))
		pr.With(rbac.Require("course:delete")).
			Delete("/courses/{courseID}", api.DeleteCourseHandler(store, bs))

		pr.With(rbac.Require("course:edit")).
			Post("/courses/{courseID}/video", api.UploadVideoHandler(store, bs, prober))
		pr.With(rbac.Require("course:edit")).
			Post("/courses/{courseID}/generate", api.GenerateQuizHandler(store, provider))
		pr.With(rbac.Require("course:edit")).
			Put("/courses/{courseID}/quiz", api.UpdateQuizHandler(store))
		pr.With(rbac.Require("course:edit")).
			Put("/courses/{courseID}/settings", api.UpdateSettingsHandler(store))

		pr.With(rbac.Require("course:export")).
			Get("/courses/{courseID}/package", api.PackageHandler(store, bs))
		pr.With(rbac.RequireAny("course:preview", "course:export")).
			Get("/courses/{courseID}/preview", api.PreviewHandler(store))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, llm=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.LLMProvider)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
