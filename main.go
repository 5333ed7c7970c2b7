package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/mapkadev/mapka/config"
	"github.com/mapkadev/mapka/db"
	"github.com/mapkadev/mapka/geocode"
	"github.com/mapkadev/mapka/handlers"
	applog "github.com/mapkadev/mapka/logger"
	mw "github.com/mapkadev/mapka/middleware"
	"github.com/mapkadev/mapka/snapshot"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	snaps, err := snapshot.NewStore(cfg.StaticClubsDir, logger)
	if err != nil {
		logger.Fatal("snapshot store init failed", zap.Error(err))
	}

	geo := geocode.New(geocode.Options{
		Endpoint:  cfg.GeocoderURL,
		APIKey:    cfg.GeocoderAPIKey,
		UserAgent: cfg.GeocoderUserAgent,
		TTL:       cfg.GeocodeTTL,
	}, logger)

	h := handlers.New(bdb, cfg, geo, snaps, logger)

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Session
	e.POST("/admin/login", h.Login)
	e.GET("/admin/logout", h.Logout)
	e.GET("/admin", h.AdminCheck)

	// Public reads
	e.GET("/api/clubs", h.ListClubs)
	e.GET("/api/clubs/:id", h.GetClub)
	e.GET("/api/clubs/:id/reviews", h.ListReviews)
	e.POST("/api/clubs/:id/reviews", h.CreateReview)
	e.GET("/api/blog", h.ListPosts)
	e.GET("/api/blog/:id", h.GetPost)
	e.GET("/api/teachers", h.ListTeachers)
	e.GET("/club/:slug", h.ClubPage)
	e.GET("/robots.txt", h.Robots)
	e.GET("/sitemap.xml", h.Sitemap)
	e.Static("/media", cfg.MediaDir)

	// Admin-panel writes – always require a staff session
	staff := e.Group("", mw.Session(cfg.CookieName, cfg.JWTKey()), mw.RequireStaff)
	staff.POST("/api/clubs", h.CreateClub)
	staff.PUT("/api/clubs/:id", h.UpdateClub)
	// Legacy admin panels update over POST as well
	staff.POST("/api/clubs/:id", h.UpdateClub)
	staff.DELETE("/api/clubs/:id", h.DeleteClub)
	staff.POST("/api/clubs/:id/images", h.UploadImage)
	staff.POST("/api/blog", h.CreatePost)
	staff.PUT("/api/blog/:id", h.UpdatePost)
	staff.DELETE("/api/blog/:id", h.DeletePost)
	staff.POST("/api/teachers", h.CreateTeacher)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
