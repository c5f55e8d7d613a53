package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/checkers-backend/internal/usecase"
)

// NewRouter wires the game API routes.
func NewRouter(logger *slog.Logger, gameUseCase usecase.GameUseCase) http.Handler {
	r := chi.NewRouter()

	ping := NewPingHandler()
	h := &gameHandlers{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}

	r.Get("/ping", ping.PingHandler)

	r.Route("/games", func(r chi.Router) {
		r.Post("/", h.newGame)
		r.Post("/load/{id}", h.loadGame)
		r.Delete("/saved/{id}", h.deleteSavedGame)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getGame)
			r.Put("/", h.updateGame)
			r.Delete("/", h.endGame)

			r.Post("/select", h.selectPiece)
			r.Delete("/select", h.cancelSelection)
			r.Get("/moves", h.legalMoves)
			r.Post("/moves", h.makeMove)
			r.Post("/bot", h.botTurn)
			r.Post("/save", h.saveGame)
		})
	})

	return r
}
