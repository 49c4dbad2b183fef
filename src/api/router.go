package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rewardmax-server/src/engine"
	"rewardmax-server/src/handlers"
	"rewardmax-server/src/insight"
	"rewardmax-server/src/middleware"
	"rewardmax-server/src/providers"
)

func NewRouter(
	pool *pgxpool.Pool,
	e *engine.Engine,
	scanner *insight.SocialScanner,
	refiner *insight.Refiner,
	offerProviders []providers.OfferProvider,
	limiter *middleware.RateLimiter,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		// Cards
		r.Get("/cards", handlers.GetCards(pool))
		r.Post("/cards", handlers.CreateCard(pool))
		r.Post("/cards/upload", handlers.UploadCards(pool))
		r.Delete("/cards/{card_id}", handlers.DeleteCard(pool))

		// Recommendation fans out to community sites, so it sits behind
		// the per-IP limiter.
		r.With(middleware.RateLimitMiddleware(limiter)).
			Post("/recommend", handlers.Recommend(e, scanner, refiner))

		// Expenses
		r.Post("/expenses", handlers.RecordExpense(e))
		r.Get("/expenses", handlers.GetExpenses(pool))

		// Offers
		r.Get("/offers", handlers.GetOffers(pool))
		r.Post("/refresh", handlers.TriggerRefresh(pool, offerProviders))
		r.Get("/refresh/log", handlers.GetRefreshLog(pool))

		// Setup and reports
		r.Get("/setup-status", handlers.SetupStatus(pool))
		r.Post("/lifestyle-report/run", handlers.RunLifestyleReport(pool))
		r.Get("/lifestyle-report", handlers.GetLifestyleReport(pool))
	})

	return r
}
