package v1

import (
	authapi "bidtrack/api/v1/auth"
	"bidtrack/api/v1/bids"
	"bidtrack/api/v1/envvars"
	"bidtrack/api/v1/middleware"
	"bidtrack/internal/config"
	"bidtrack/internal/envcache"
	"bidtrack/internal/envstore"
	"bidtrack/internal/envsync"
	"bidtrack/internal/httpx"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// SetupRouter sets up the API v1 routes
func SetupRouter(r *gin.Engine, db *gorm.DB, cfg *config.Config, engine *envsync.Engine) {
	r.Use(middleware.CORS(cfg.CORSOrigin))

	envHandler := envvars.NewHandler(engine)
	bidHandler := bids.NewHandler(db)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/ping", pingHandler)
		v1.GET("/health/db", dbHealthHandler(db))

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authapi.LoginHandler(db, cfg))
		}

		// Read endpoints are public, like the original service
		envGroup := v1.Group("/env-vars")
		{
			envGroup.GET("", envHandler.List)
			envGroup.GET("/stats", envHandler.Stats)
			envGroup.GET("/:key", envHandler.Get)

			protected := envGroup.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", envHandler.Create)
				protected.POST("/bulk", envHandler.BulkSet)
				protected.PUT("/:key", envHandler.Set)
				protected.DELETE("/cache", envHandler.ClearCache)
				protected.DELETE("/:key", envHandler.Delete)
				protected.POST("/sync/store-to-cache", envHandler.SyncStoreToCache)
				protected.POST("/sync/cache-to-store", envHandler.SyncCacheToStore)
			}
		}

		bidGroup := v1.Group("/bids")
		{
			bidGroup.GET("", bidHandler.List)
			bidGroup.GET("/search", bidHandler.Search)
			bidGroup.GET("/statistics", bidHandler.Statistics)
			bidGroup.GET("/filters/organizations", bidHandler.Organizations)
			bidGroup.GET("/filters/industries", bidHandler.Industries)
			bidGroup.GET("/filters/regions", bidHandler.Regions)
			bidGroup.GET("/number/:number", bidHandler.GetByNumber)
			bidGroup.GET("/uploads", bidHandler.Uploads)
			bidGroup.GET("/:id", bidHandler.Get)

			protected := bidGroup.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", bidHandler.Create)
				protected.POST("/upload", bidHandler.Upload)
				protected.PUT("/:id", bidHandler.Update)
				protected.DELETE("/:id", bidHandler.Delete)
			}
		}
	}
}

// NewEngine wires the env var sync engine from the shared handles
func NewEngine(db *gorm.DB, rdb *redis.Client) *envsync.Engine {
	return envsync.New(envstore.New(db), envcache.New(rdb), nil)
}

// pingHandler handles the ping request using unified response
func pingHandler(c *gin.Context) {
	httpx.OK(c, gin.H{
		"pong": true,
	})
}

// dbHealthHandler checks database connectivity
func dbHealthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			httpx.FailErr(c, httpx.ErrDatabaseError("database unreachable", err))
			return
		}
		httpx.OK(c, gin.H{"database": "connected"})
	}
}
