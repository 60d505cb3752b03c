package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	_ "vetco-api/docs"
	"vetco-api/internal/adapters/auth/jwtauth"
	"vetco-api/internal/config"
	"vetco-api/internal/ports/auth"
	"vetco-api/internal/router"
)

// @title VetCo API
// @version 1.0
// @description Backend de salud de mascotas: perfiles, mediciones respiratorias, pautas de medicación vía QR y mensajería dueño-veterinario.
// @BasePath /
func main() {
	// .env es opcional; en prod las vars vienen del entorno.
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}

	cfg := config.Load()

	// Sin JWT_SECRET queda el modo dev (X-Debug-User-ID / X-Debug-Vet-ID).
	var verifier auth.AuthVerifier
	if cfg.JWTSecret != "" {
		v, err := jwtauth.NewVerifier(cfg.JWTSecret)
		if err != nil {
			log.Fatalf("jwt verifier: %v", err)
		}
		verifier = v
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Cfg:          &cfg,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("starting server on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
