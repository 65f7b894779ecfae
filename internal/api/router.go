package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/promptsmith/promptsmith/internal/api/handlers"
	"github.com/promptsmith/promptsmith/internal/api/middleware"
	"github.com/promptsmith/promptsmith/internal/audit"
	"github.com/promptsmith/promptsmith/internal/auth"
	"github.com/promptsmith/promptsmith/internal/cache"
	"github.com/promptsmith/promptsmith/internal/config"
	"github.com/promptsmith/promptsmith/internal/llm"
	"github.com/promptsmith/promptsmith/internal/optimize"
	"github.com/promptsmith/promptsmith/internal/prompt"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
	jwt   *auth.JWTMiddleware
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
		jwt:   auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Services
	promptSvc := prompt.NewService(prompt.NewPostgresStore(rt.db))
	auditSvc := audit.NewService(rt.db)
	optimizeSvc := optimize.NewService(
		newProvider(rt.cfg.AI),
		rt.cfg.AI.Model,
		cache.NewCache(rt.redis),
	)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.jwt.Authenticate)

		promptH := handlers.NewPromptHandler(promptSvc, auditSvc)
		r.Route("/prompts", func(r chi.Router) {
			r.Post("/", promptH.Create)
			r.Get("/", promptH.List)
			r.Get("/{id}", promptH.Get)
			r.Put("/{id}", promptH.Update)
			r.Delete("/{id}", promptH.Delete)
			r.Post("/{id}/duplicate", promptH.Duplicate)
			r.Post("/{id}/versions", promptH.CreateVersion)
			r.Post("/{id}/render", promptH.Render)
		})
		r.Post("/versions/{id}/restore", promptH.RestoreVersion)

		optimizeH := handlers.NewOptimizeHandler(optimizeSvc)
		r.Post("/optimize", optimizeH.Optimize)

		diffH := handlers.NewDiffHandler()
		r.Post("/diff", diffH.Diff)

		auditH := handlers.NewAuditHandler(auditSvc)
		r.Get("/audit", auditH.List)
	})

	return r
}

// newProvider picks the configured text-generation backend. A missing
// credential yields nil, which the optimize service reports as
// not-configured instead of failing at startup.
func newProvider(cfg config.AIConfig) llm.Provider {
	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicKey != "" {
			return llm.NewAnthropicProvider(cfg.AnthropicKey)
		}
	default:
		if cfg.OpenAIKey != "" {
			return llm.NewOpenAIProvider(cfg.OpenAIKey)
		}
	}
	return nil
}
