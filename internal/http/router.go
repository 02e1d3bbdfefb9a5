// Package httpapi wires the HTTP transport (Gin) to the contact manager's
// services. It owns middleware ordering, CORS and security posture, the
// operational endpoints (/health, /metrics, /swagger) and the versioned API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/neolink-backend/docs"
	"github.com/tbourn/neolink-backend/internal/config"
	"github.com/tbourn/neolink-backend/internal/http/handlers"
	"github.com/tbourn/neolink-backend/internal/http/middleware"
	"github.com/tbourn/neolink-backend/internal/repo"
)

// maxBodyBytes caps request bodies. Photos travel as URLs or data URIs, so
// the cap leaves room for a small inline image.
const maxBodyBytes = 2 << 20

// Services bundles the application services served over HTTP.
type Services struct {
	Contacts handlers.ContactStore
	Gate     handlers.AccessGate
	Theme    handlers.ThemeSettings
}

// exposed lists the response headers browser clients may read.
var exposed = []string{
	"X-Request-ID",
	"ETag",
	"Location",
	handlers.HeaderPersistWarning,
	"Idempotency-Replayed",
}

// RegisterRoutes attaches middleware and endpoints to r.
//
// Middleware order:
//  1. OpenTelemetry
//  2. RequestID
//  3. RedactingLogger
//  4. Recovery
//  5. body size limit, gzip
//  6. Metrics
//  7. Idempotency validator (before the limiter so replays bypass it)
//  8. Rate limiter
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, svc Services, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
		MaskParams:  []string{"q"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		func(ctx context.Context, scope, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, scope, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			// A replay is only servable while the contact still exists.
			_, ok := svc.Contacts.Get(rec.ContactID)
			return ok, nil
		},
	))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIPAndMethod())
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		Revalidate:   true,
		EnablePolicy: true,
		Expose:       exposed,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(svc.Contacts, svc.Gate, svc.Theme, handlers.Options{
		Stats:          repo.NewBlobStore(db),
		StoreKey:       cfg.StoreKey,
		Idempotency:    repo.NewIdempotencyStore(db),
		IdempotencyTTL: cfg.IdempotencyTTL,
		Locale:         cfg.SortLocale,
	})

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/contacts", h.ListContacts)
		api.GET("/contacts/all", h.ListAllContacts)
		api.GET("/contacts/favorites", h.ListFavorites)
		api.GET("/contacts/:id", h.GetContact)
		api.POST("/contacts", h.AddContact)
		api.PUT("/contacts/:id", h.UpdateContact)
		api.DELETE("/contacts/:id", h.DeleteContact)
		api.POST("/contacts/:id/favorite", h.ToggleFavorite)

		api.GET("/gate", h.GetGate)
		api.POST("/gate/lock", h.LockGate)
		api.POST("/gate/unlock", h.UnlockGate)

		api.GET("/settings/theme", h.GetTheme)
		api.PUT("/settings/theme", h.PutTheme)

		api.GET("/departments", h.ListDepartments)
		api.GET("/stats", h.Stats)
	}
}

// corsMiddleware allows every origin when none are configured, otherwise
// only the allowlist. Credentials are never allowed.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "If-None-Match",
			middleware.HeaderIdempotencyKey, "X-Request-ID",
		},
		ExposeHeaders:    append([]string{"Content-Length"}, exposed...),
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		base.AllowAllOrigins = true
		return []gin.HandlerFunc{
			// ACAO on every response, including requests without Origin.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	base.AllowOrigins = origins
	return []gin.HandlerFunc{cors.New(base)}
}

// limitBody caps request bodies at maxBytes; reads past it fail.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
