package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/business/dashboard"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/business/dataset"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/platform/config"
	firestoreclient "github.com/weiwei-tsao/space-missions-dashboard/internal/platform/firestore"
	apirouter "github.com/weiwei-tsao/space-missions-dashboard/internal/platform/http"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/platform/ratelimit"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/platform/render"
	"github.com/weiwei-tsao/space-missions-dashboard/internal/repository"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	matcher, err := dashboard.ParseMatcher(cfg.CountryMatch)
	if err != nil {
		log.Fatalf("country match: %v", err)
	}

	source, closeSource := openSource(ctx, cfg)
	defer closeSource()

	data, stats, err := dataset.Load(ctx, source)
	if err != nil {
		log.Fatalf("dataset load: %v", err)
	}
	log.Printf("loaded %d missions (%d read, %d patched, %d dropped without coordinates, %d back-filled, %d undated) across %d countries",
		stats.Joined, stats.Missions, stats.Patched, stats.Dropped, stats.Backfilled, stats.Undated, len(data.Countries()))

	limiter := ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Stop()

	ctrl := dashboard.NewController(data, dashboard.DefaultSlots(matcher))
	router := apirouter.NewRouter(ctrl, render.New(), apirouter.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Limiter:        limiter,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on :%s", cfg.Port)

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	log.Println("server exited")
}

// openSource returns the configured dataset source and a cleanup func.
func openSource(ctx context.Context, cfg config.Config) (dataset.Source, func()) {
	if cfg.DatasetSource != config.SourceFirestore {
		log.Printf("reading dataset from %s and %s", cfg.MissionsCSV, cfg.LatLongCSV)
		return dataset.NewCSVSource(cfg.MissionsCSV, cfg.LatLongCSV), func() {}
	}

	client, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		log.Fatalf("firestore init: %v", err)
	}
	if err := firestoreclient.Ping(ctx, client); err != nil {
		log.Fatalf("firestore ping: %v", err)
	}
	log.Printf("reading dataset from Firestore project %s using %s credentials", cfg.FirebaseProjectID, credsSource)
	return repository.NewMissionRepository(client), func() { client.Close() }
}
