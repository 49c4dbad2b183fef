package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"rewardmax-server/src/api"
	"rewardmax-server/src/config"
	"rewardmax-server/src/db"
	"rewardmax-server/src/engine"
	"rewardmax-server/src/insight"
	"rewardmax-server/src/middleware"
	"rewardmax-server/src/providers"
	"rewardmax-server/src/refresh"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.InitSchema(ctx, pool); err != nil {
		log.Fatalf("Schema init failed: %v", err)
	}
	db.InitCache()

	// Community insight cache: Redis when configured, in-process otherwise.
	var insightCache insight.Cache
	if cfg.RedisAddr != "" {
		insightCache = insight.NewRedisCache(cfg.RedisAddr)
		log.Println("INFO: Using Redis insight cache at", cfg.RedisAddr)
	} else {
		insightCache = insight.NewMemoryCache()
		log.Println("INFO: Using in-memory insight cache")
	}
	scanner := insight.NewSocialScanner(insightCache)
	refiner := insight.NewRefiner()

	offerProviders := buildProviders(cfg)
	if len(offerProviders) > 0 {
		go refresh.Daemon(ctx, pool, offerProviders, time.Duration(cfg.RefreshInterval)*time.Hour)
	} else {
		log.Println("INFO: No offer providers configured, refresh daemon disabled")
	}

	e := engine.New(db.NewStore(pool))

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, time.Minute)
	defer limiter.Stop()

	router := api.NewRouter(pool, e, scanner, refiner, offerProviders, limiter)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Println("INFO: API server running on port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("INFO: Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server shutdown failed: %v", err)
	}
}

func buildProviders(cfg config.Config) []providers.OfferProvider {
	var list []providers.OfferProvider
	if cfg.BankOffersFile != "" {
		list = append(list, providers.NewJSONFileProvider("bank_file", cfg.BankOffersFile))
	}
	if cfg.SocialOffersFile != "" {
		list = append(list, providers.NewJSONFileProvider("social_file", cfg.SocialOffersFile))
	}
	if cfg.BankOffersURL != "" {
		list = append(list, providers.NewRemoteFeedProvider("bank_feed", cfg.BankOffersURL))
	}
	return list
}
