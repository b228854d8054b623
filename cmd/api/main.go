package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"pet-care-tracker/internal/adapters/auth/jwtauth"
	"pet-care-tracker/internal/adapters/storage/sqlite"
	"pet-care-tracker/internal/config"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/router"
)

func main() {
	cfg := config.FromEnv()
	log := logger.NewFromEnv()

	var db *sql.DB
	if cfg.DBPath != "" {
		var err error
		db, err = sqlite.Open(cfg.DBPath)
		if err != nil {
			log.Error("no se pudo abrir la base", map[string]any{"path": cfg.DBPath, "error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		log.Info("sqlite listo", map[string]any{"path": cfg.DBPath})
	} else {
		log.Info("storage en memoria", nil)
	}

	manager := jwtauth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	handler := router.New(router.Options{
		Verifier: manager,
		Issuer:   manager,
		DB:       db,
		Logger:   log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("escuchando", map[string]any{"addr": cfg.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("el servidor se cayó", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
