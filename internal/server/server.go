// Package server assembles the HTTP router and server.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"marketplace/internal/audit"
	"marketplace/internal/config"
	"marketplace/internal/domain"
	"marketplace/internal/middleware"
	"marketplace/internal/modules/admin"
	"marketplace/internal/modules/auth"
	"marketplace/internal/modules/booking"
	"marketplace/internal/modules/catalog"
	"marketplace/internal/modules/payment"
	"marketplace/internal/modules/provider"
	"marketplace/internal/modules/review"
	"marketplace/internal/modules/wallet"
	"marketplace/internal/pkg/jwt"
	"marketplace/internal/pkg/metrics"
	"marketplace/internal/pkg/response"
	"marketplace/internal/pkg/validator"
	"marketplace/internal/repository"
)

// Deps are the long-lived collaborators the router is built from.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Logger   *zap.Logger
	Registry *prometheus.Registry
}

// NewRouter wires every module onto a gin engine. Routes under /api need a
// resolved tenant; the session is optional until a group requires it.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	validator.Install()

	r := gin.New()
	r.Use(
		middleware.RequestLogger(d.Logger),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
		if d.Registry != nil {
			metrics.Register(d.Registry)
			r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)
	rec := audit.NewSink(d.DB)
	cookie := middleware.CookieOptions{
		Secure:   cfg.CookieSecure,
		Domain:   cfg.CookieDomain,
		SameSite: middleware.ParseSameSite(cfg.CookieSameSite),
	}
	loginLimit := middleware.RateLimit(middleware.NewIPRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst))

	services := repository.NewServiceRepository(d.DB)

	authService := auth.NewService(repository.NewUserRepository(d.DB), tokens, cfg.JWTTTL, rec)
	bookingService := booking.NewService(repository.NewBookingRepository(d.DB), services, rec)
	paymentService := payment.NewService(d.DB, rec)

	authHandler := auth.NewHandler(authService, cookie)
	catalogHandler := catalog.NewHandler(catalog.NewService(
		repository.NewTenantRepository(d.DB),
		services,
		repository.NewCategoryRepository(d.DB),
		repository.NewProviderRepository(d.DB),
		repository.NewReviewRepository(d.DB),
	))
	reviewHandler := review.NewHandler(review.NewService(d.DB, rec))
	bookingHandler := booking.NewHandler(bookingService)
	paymentHandler := payment.NewHandler(paymentService)
	walletHandler := wallet.NewHandler(wallet.NewService(d.DB, rec))
	providerHandler := provider.NewHandler(provider.NewService(d.DB, bookingService, rec))
	adminHandler := admin.NewHandler(admin.NewService(d.DB, bookingService, paymentService, rec))

	api := r.Group("/api")
	api.Use(
		middleware.Tenant(repository.NewTenantRepository(d.DB), cfg.BaseDomain),
		middleware.Authenticate(tokens),
	)

	// public
	authHandler.RegisterPublicRoutes(api, loginLimit)
	catalogHandler.RegisterRoutes(api)
	reviewHandler.RegisterRoutes(api, nil)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth())
	{
		authHandler.RegisterProtectedRoutes(protected)
		reviewHandler.RegisterRoutes(nil, protected)
		paymentHandler.RegisterRoutes(protected)
		providerHandler.RegisterRoutes(protected)
		adminHandler.RegisterRoutes(protected)

		customer := protected.Group("", middleware.RequireRole(domain.RoleCustomer))
		bookingHandler.RegisterRoutes(customer)
		walletHandler.RegisterRoutes(customer)
	}

	return r
}

// New returns an http.Server with the configured timeouts.
func New(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}
}
