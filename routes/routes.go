package routes

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/Dosada05/bracket-engine/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed docs/swagger.json
var swaggerDoc []byte

type Handlers struct {
	Bracket   *handlers.BracketHandler
	Standings *handlers.StandingsHandler
	Snapshot  *handlers.SnapshotHandler
	WebSocket *handlers.WebSocketHandler
	Health    *handlers.HealthHandler
	Metrics   http.Handler
}

func SetupRoutes(router *chi.Mux, h Handlers, allowedOrigins []string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", h.Health.HealthzHandler)
	router.Handle("/metrics", h.Metrics)

	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(swaggerDoc)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Route("/tournaments/{tournamentID}", func(r chi.Router) {
			r.Get("/brackets/{bracketType}/layout", h.Bracket.LayoutHandler)
			r.Get("/standings", h.Standings.TournamentStandingsHandler)
			r.Post("/snapshots", h.Snapshot.PublishHandler)
		})

		r.Get("/groups/{groupID}/standings", h.Standings.GroupStandingsHandler)

		r.Post("/preview/bracket", h.Bracket.PreviewHandler)
		r.Post("/standings/resolve", h.Standings.ResolveHandler)
	})
}
