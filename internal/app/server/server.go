// Package server wires the stores, services and HTTP surface together
// and runs the process.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studioplan/internal/domain/assistant"
	"studioplan/internal/domain/auth"
	"studioplan/internal/domain/planning"
	"studioplan/internal/domain/project"
	"studioplan/internal/domain/scope"
	"studioplan/internal/domain/settings"
	"studioplan/internal/platform/config"
	"studioplan/internal/platform/db"
	"studioplan/internal/platform/metrics"
	"studioplan/internal/transport/http/api"
	alertshandler "studioplan/internal/transport/http/handlers/alerts"
	assistanthandler "studioplan/internal/transport/http/handlers/assistant"
	authhandler "studioplan/internal/transport/http/handlers/auth"
	kpihandler "studioplan/internal/transport/http/handlers/kpi"
	planninghandler "studioplan/internal/transport/http/handlers/planning"
	projecthandler "studioplan/internal/transport/http/handlers/projects"
	reportshandler "studioplan/internal/transport/http/handlers/reports"
	scopehandler "studioplan/internal/transport/http/handlers/scope"
	settingshandler "studioplan/internal/transport/http/handlers/settings"
	"studioplan/internal/transport/http/middleware"
)

// stores bundles the per-domain persistence backends. Either every
// store is Postgres-backed or, when DATABASE_URL is empty, everything
// runs in memory for local work.
type stores struct {
	projects project.Store
	planning planning.Store
	scope    scope.Store
	settings settings.Store
}

func memoryStores() stores {
	return stores{
		projects: project.NewMemoryStore(),
		planning: planning.NewMemoryStore(),
		scope:    scope.NewMemoryStore(),
		settings: settings.NewMemoryStore(),
	}
}

func postgresStores(pool *pgxpool.Pool) stores {
	return stores{
		projects: project.NewPostgresStore(pool),
		planning: planning.NewPostgresStore(pool),
		scope:    scope.NewPostgresStore(pool),
		settings: settings.NewPostgresStore(pool),
	}
}

// App is the assembled application: configuration, the optional
// database pool, and the HTTP router ready to serve.
type App struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Router http.Handler
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

// New assembles the application from configuration. With an empty
// DATABASE_URL everything runs on in-memory stores.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var (
		pool *pgxpool.Pool
		st   stores
	)
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, using in-memory stores")
		st = memoryStores()
	} else {
		var err error
		pool, err = db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect failed: %w", err)
		}

		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, "migrations"); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations failed: %w", err)
			}
		}
		st = postgresStores(pool)
	}

	verifier, err := auth.NewVerifier(cfg.LoginUser, cfg.LoginPassword, cfg.AdminKey, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, fmt.Errorf("auth setup failed: %w", err)
	}

	projectSvc := project.NewService(st.projects)
	planningSvc := planning.NewService(st.planning, projectSvc)
	scopeSvc := scope.NewService(st.scope)
	settingsSvc := settings.NewService(st.settings, cfg.BaseDesignCost)
	assistantSvc := assistant.NewService()

	if cfg.RunSeed {
		if err := settingsSvc.EnsureDefaults(ctx); err != nil {
			if pool != nil {
				pool.Close()
			}
			return nil, fmt.Errorf("settings seed failed: %w", err)
		}
	}

	collector := metrics.New()
	adminGate := middleware.RequireAdminKey(verifier)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recover)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(verifier))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if pool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := pool.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metricsz", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(verifier).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			projecthandler.NewHandler(projectSvc, settingsSvc).RegisterRoutes(r, adminGate)
			planninghandler.NewHandler(planningSvc, projectSvc, scopeSvc).RegisterRoutes(r, adminGate)
			kpihandler.NewHandler(projectSvc, planningSvc, settingsSvc).RegisterRoutes(r, adminGate)
			alertshandler.NewHandler(projectSvc, planningSvc).RegisterRoutes(r)
			assistanthandler.NewHandler(assistantSvc, projectSvc, planningSvc).RegisterRoutes(r)
			scopehandler.NewHandler(scopeSvc).RegisterRoutes(r, adminGate)
			settingshandler.NewHandler(settingsSvc).RegisterRoutes(r)
			reportshandler.NewHandler(projectSvc, planningSvc, settingsSvc).RegisterRoutes(r)
		})
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return &App{Config: cfg, Pool: pool, Router: router}, nil
}

// Run loads configuration, assembles the app and serves until the
// process exits.
func Run() {
	cfg := config.Load()

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	log.Printf("studioplan server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// spaHandler serves the built front end, falling back to index.html so
// client-side routes deep-link correctly.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
