package app

import (
	"net/http"

	"github.com/vancomm/minesweeper-core/internal/handlers"
	"github.com/vancomm/minesweeper-core/internal/middleware"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.store, a.tickets, a.ws, a.config.Game.Params(),
	)
	auth := middleware.Auth(a.log, a.tickets)
	withTicket := func(h http.HandlerFunc) http.Handler {
		return middleware.Wrap(h, auth)
	}

	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.Handle("GET /v1/game/{id}", withTicket(game.Fetch))
	a.router.Handle("DELETE /v1/game/{id}", withTicket(game.Delete))
	a.router.Handle("POST /v1/game/{id}/open", withTicket(game.Open))
	a.router.Handle("POST /v1/game/{id}/flag", withTicket(game.Flag))
	a.router.Handle("POST /v1/game/{id}/reset", withTicket(game.Reset))
	a.router.Handle("POST /v1/game/{id}/batch", withTicket(game.Batch))
	a.router.Handle("GET /v1/game/{id}/connect", withTicket(game.ConnectWS))
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.log),
		middleware.Cors(a.config.Server.AllowedOrigins),
	)
}
