package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/quizsystem/quizsystem-backend/internal/api/http"
	"github.com/quizsystem/quizsystem-backend/internal/auth"
	"github.com/quizsystem/quizsystem-backend/internal/config"
	"github.com/quizsystem/quizsystem-backend/internal/db"
	"github.com/quizsystem/quizsystem-backend/internal/quiz"
)

func main() {
	_ = godotenv.Load()

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

	verifier, err := auth.VerifierForScheme(cfg.AuthScheme)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}
	gate := auth.NewGate(auth.NewSQLStore(dbh), verifier, cfg.DefaultStudentPassword)
	store := quiz.NewSQLStore(dbh)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Route("/auth", func(rr chi.Router) { api.MountAuth(rr, gate) })
		ar.Route("/student", func(rr chi.Router) { api.MountStudent(rr, store) })
		ar.Route("/instructor", func(rr chi.Router) { api.MountInstructor(rr, store) })
		ar.Route("/admin", func(rr chi.Router) {
			api.MountAdmin(rr, dbh, verifier, cfg.DefaultStudentPassword)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Welcome to the Quiz System API"}`))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, auth=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.AuthScheme)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
