package main

import (
	"context"
	"flag"
	"os"

	v1 "bidtrack/api/v1"
	"bidtrack/internal/auth"
	"bidtrack/internal/cache"
	"bidtrack/internal/config"
	"bidtrack/internal/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to INI config file (optional)")
	flag.Parse()

	// 1. Load configuration (ENV > INI > default)
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromINI(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}
	logrus.Info("✓ Configuration loaded")

	// 2. Initialize MySQL
	if err := db.InitMySQL(cfg.MySQL.DSN); err != nil {
		logrus.Fatalf("Failed to initialize MySQL: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Migrate {
		if err := db.Migrate(db.DB); err != nil {
			logrus.Fatalf("Failed to migrate database: %v", err)
			os.Exit(1)
		}
	}

	// 3. Initialize auth
	auth.InitJWT(cfg.JWT.Secret)
	if err := auth.EnsureAdmin(db.DB, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		logrus.Fatalf("Failed to bootstrap admin user: %v", err)
		os.Exit(1)
	}

	// 4. Initialize Redis
	if err := cache.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		logrus.Fatalf("Failed to initialize Redis: %v", err)
		os.Exit(1)
	}
	defer cache.Close()

	// 5. Warm the env var cache from the durable store. A failure here
	// is logged but not fatal: reads fall back to MySQL with read-repair.
	engine := v1.NewEngine(db.DB, cache.Client)
	if count, err := engine.LoadStoreToCache(context.Background()); err != nil {
		logrus.Errorf("✗ Failed to warm env var cache: %v", err)
	} else {
		logrus.Infof("✓ Env var cache warmed (%d entries)", count)
	}

	// 6. Initialize Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	v1.SetupRouter(r, db.DB, cfg, engine)

	logrus.Infof("✓ Server starting on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
