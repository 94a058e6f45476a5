package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/singerjob/singerjob/internal/auth"
	"github.com/singerjob/singerjob/internal/config"
	"github.com/singerjob/singerjob/internal/directory"
	"github.com/singerjob/singerjob/internal/filestore"
	"github.com/singerjob/singerjob/internal/http/handlers"
	"github.com/singerjob/singerjob/internal/http/middlewares"
	"github.com/singerjob/singerjob/internal/observability"
	"github.com/singerjob/singerjob/internal/recommend"
	"github.com/singerjob/singerjob/internal/saved"
	"github.com/singerjob/singerjob/internal/store"
)

// Deps carries everything the router wires into handlers. Constructed
// in main; nothing here reads ambient globals.
type Deps struct {
	Cfg      config.Config
	Log      *slog.Logger
	Store    store.Store
	Ping     func() error
	Storage  filestore.Storage
	Registry *prometheus.Registry
}

func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(d.Log))
	r.Use(otelgin.Middleware("singerjob"))

	if d.Registry != nil {
		prom := observability.NewProm(d.Registry)
		r.Use(prom.GinHandleMiddleware())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
		d.Store = store.WithMetrics(d.Store, prom)
	}

	if len(d.Cfg.AllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(d.Cfg.AllowedOrigins))
	}

	// health
	h := handlers.NewHealthHandler(d.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// wire up services over the store
	accounts := auth.NewService(d.Store, auth.Options{
		EmailUniqueAcrossTypes: d.Cfg.EmailUniqueAcrossTypes,
	})
	jwtManager := auth.NewManager(d.Cfg.JWTSecret, d.Cfg.AccessTTL, d.Cfg.RefreshTTL)

	artistsDir := directory.NewArtists(d.Store)
	oppsDir := directory.NewOpportunities(d.Store)
	savedSvc := saved.NewService(d.Store)
	engine := recommend.NewEngine(d.Store, oppsDir)

	// wire up handlers
	authHandler := handlers.NewAuthHandler(accounts, jwtManager)
	artistsHandler := handlers.NewArtistsHandler(artistsDir, d.Log)
	oppsHandler := handlers.NewOpportunitiesHandler(oppsDir, savedSvc, d.Log)
	recsHandler := handlers.NewRecommendationsHandler(engine, d.Log)
	profileHandler := handlers.NewProfileHandler(accounts)
	uploadHandler := handlers.NewUploadHandler(d.Storage, d.Log)

	requireAuth := middlewares.NewAuthMiddleware(jwtManager).RequireAuth()
	authLimiter := middlewares.NewRateLimiter(10, time.Minute).Middleware()

	// auth
	r.POST("/auth/register", authLimiter, authHandler.Register)
	r.POST("/auth/login", authLimiter, authHandler.Login)
	r.POST("/auth/refresh", authLimiter, authHandler.Refresh)
	r.POST("/auth/logout", authHandler.Logout)

	// directories
	r.GET("/artists", artistsHandler.List)
	r.GET("/opportunities", oppsHandler.List)

	// saved opportunities
	r.GET("/opportunities/saved", requireAuth, oppsHandler.ListSaved)
	r.POST("/opportunities/:id/save", requireAuth, oppsHandler.ToggleSaved)

	// recommendations
	r.GET("/recommendations", requireAuth, recsHandler.Personal)
	r.GET("/recommendations/latest", recsHandler.Latest)

	// profile
	r.GET("/profile", requireAuth, profileHandler.Get)
	r.PUT("/profile", requireAuth, profileHandler.Update)

	// uploads
	if d.Storage != nil {
		r.POST("/upload", requireAuth, uploadHandler.Upload)
	}

	return r
}
