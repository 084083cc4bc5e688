package routes

import (
	"github.com/alienigenasfc/pelada-system/handlers"
	"github.com/alienigenasfc/pelada-system/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

// SetupRoutes wires the full HTTP surface. Reads are public so the
// matchday screen works without an account; every mutation sits behind
// JWT auth, with the fine-grained role checks in the service layer.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	playerHandler *handlers.PlayerHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	statsHandler *handlers.StatsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/users", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", userHandler.List)
		r.Patch("/{userID}/role", userHandler.ChangeRole)
		r.Delete("/{userID}", userHandler.Delete)
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", playerHandler.Create)
			r.Delete("/{playerID}", playerHandler.Delete)
		})
	})

	router.Route("/tournament", func(r chi.Router) {
		r.Get("/", tournamentHandler.Get)
		r.Get("/standings", statsHandler.Standings)
		r.Get("/standings/{teamAID}/vs/{teamBID}", statsHandler.HeadToHead)
		r.Get("/scorers", statsHandler.TopScorers)
		r.Get("/goalkeepers", statsHandler.Goalkeepers)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", tournamentHandler.Create)
			r.Delete("/", tournamentHandler.Reset)
			r.Post("/start", tournamentHandler.Start)
			r.Patch("/teams/{teamID}", tournamentHandler.UpdateTeam)
			r.Post("/teams/{teamID}/players", tournamentHandler.AssignPlayer)
			r.Delete("/teams/{teamID}/players/{playerID}", tournamentHandler.RemovePlayer)

			r.Post("/round-one", matchHandler.SelectRoundOne)
			r.Post("/stay-team", matchHandler.ChooseStay)
			r.Post("/goals", matchHandler.AddGoal)
			r.Delete("/matches/{matchIndex}/goals/{goalIndex}", matchHandler.RemoveGoal)
			r.Put("/matches/{matchIndex}/goalkeepers", matchHandler.SetGoalkeepers)
			r.Post("/matches/{matchIndex}/end", matchHandler.End)
		})
	})

	router.Route("/stats", func(r chi.Router) {
		r.Get("/history", statsHandler.History)
		r.Get("/champions", statsHandler.AllTimeChampions)
		r.Get("/scorers", statsHandler.AllTimeTopScorers)
		r.Get("/goalkeepers", statsHandler.AllTimeGoalkeepers)
		r.Get("/games-played", statsHandler.AllTimeGamesPlayed)
	})

	router.Get("/ws/live", webSocketHandler.ServeWs)
}
