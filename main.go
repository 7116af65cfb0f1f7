package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"golang.org/x/crypto/acme/autocert"

	"brewbliss/app"
	"brewbliss/config"
	"brewbliss/middleware"
	"brewbliss/routes"
)

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(a *app.App) (*httprouter.Router, error) {
	router := httprouter.New()
	router.GET("/health", Index)
	if err := routes.RoutesWrapper(router, a); err != nil {
		return nil, err
	}
	return router, nil
}

func newHandler(a *app.App, router http.Handler) http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   a.Config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	return middleware.Logging(a.Logger)(middleware.SecurityHeaders(corsHandler))
}

// bootstrap connects the backends, starts the store and builds the handler chain.
func bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*app.App, http.Handler, error) {
	a := app.Build(ctx, cfg, logger)
	a.Store.Initialize()

	router, err := setupRouter(a)
	if err != nil {
		a.Close(ctx)
		return nil, nil, err
	}
	return a, newHandler(a, router), nil
}

func main() {
	logger := log.New(os.Stdout, "[brewbliss] ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	a, handler, err := bootstrap(startCtx, cfg, logger)
	cancelStart()
	if err != nil {
		logger.Fatalf("router: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		ErrorLog:          logger,
	}

	// With a domain the site answers on :443 with Let's Encrypt certificates
	// and :80 only serves ACME challenges and redirects.
	var redirect *http.Server
	if cfg.Domain != "" {
		manager := &autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(cfg.Domain, "www."+cfg.Domain),
			Cache:      autocert.DirCache(cfg.CertCacheDir),
		}
		server.Addr = ":443"
		server.TLSConfig = manager.TLSConfig()
		redirect = &http.Server{
			Addr:              ":80",
			Handler:           manager.HTTPHandler(nil),
			ReadHeaderTimeout: 2 * time.Second,
		}
		go func() {
			if err := redirect.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("HTTP redirect listener: %v", err)
			}
		}()
	}

	go func() {
		logger.Printf("Server listening on %s", server.Addr)
		var err error
		if server.TLSConfig != nil {
			err = server.ListenAndServeTLS("", "")
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Println("Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if redirect != nil {
		redirect.Shutdown(ctx)
	}
	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("Graceful shutdown failed: %v", err)
	}
	a.Close(ctx)

	logger.Println("Server stopped cleanly")
}
