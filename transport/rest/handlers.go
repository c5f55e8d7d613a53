package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/checkers"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
	"github.com/rocketscienceinc/checkers-backend/internal/usecase"
	"github.com/rocketscienceinc/checkers-backend/transport/view"
)

type gameHandlers struct {
	logger      *slog.Logger
	gameUseCase usecase.GameUseCase
}

func (that *gameHandlers) newGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			that.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	state, err := that.gameUseCase.NewGame(r.Context(), req.Name)
	if err != nil {
		that.handleError(w, "newGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, view.NewGame(state))
}

func (that *gameHandlers) getGame(w http.ResponseWriter, r *http.Request) {
	state, err := that.gameUseCase.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.handleError(w, "getGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.NewGame(state))
}

func (that *gameHandlers) endGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.EndGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.handleError(w, "endGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandlers) selectPiece(w http.ResponseWriter, r *http.Request) {
	var pos entity.Position
	if err := json.NewDecoder(r.Body).Decode(&pos); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := that.gameUseCase.Select(r.Context(), chi.URLParam(r, "id"), pos)
	if err != nil {
		that.handleError(w, "selectPiece", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.NewGame(state))
}

func (that *gameHandlers) cancelSelection(w http.ResponseWriter, r *http.Request) {
	state, err := that.gameUseCase.CancelSelection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.handleError(w, "cancelSelection", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.NewGame(state))
}

func (that *gameHandlers) legalMoves(w http.ResponseWriter, r *http.Request) {
	moves, err := that.gameUseCase.LegalMoves(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.handleError(w, "legalMoves", err)
		return
	}

	if moves == nil {
		moves = []checkers.MoveRequest{}
	}

	that.writeJSON(w, http.StatusOK, moves)
}

func (that *gameHandlers) makeMove(w http.ResponseWriter, r *http.Request) {
	var req checkers.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := that.gameUseCase.MakeMove(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		that.handleError(w, "makeMove", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.NewTurn(result))
}

func (that *gameHandlers) botTurn(w http.ResponseWriter, r *http.Request) {
	result, err := that.gameUseCase.BotTurn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.handleError(w, "botTurn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.NewTurn(result))
}

func (that *gameHandlers) saveGame(w http.ResponseWriter, r *http.Request) {
	storedID, err := that.gameUseCase.SaveGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.handleError(w, "saveGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, savedView{ID: storedID})
}

func (that *gameHandlers) updateGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.UpdateGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.handleError(w, "updateGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandlers) loadGame(w http.ResponseWriter, r *http.Request) {
	state, err := that.gameUseCase.LoadGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.handleError(w, "loadGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.NewGame(state))
}

func (that *gameHandlers) deleteSavedGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.DeleteSavedGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.handleError(w, "deleteSavedGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleError maps use case errors onto HTTP status codes.
func (that *gameHandlers) handleError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	} else {
		that.logger.Debug("request rejected", "method", method, "error", err)
	}

	that.writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidSelection),
		errors.Is(err, apperror.ErrNoSelection),
		errors.Is(err, apperror.ErrIllegalDestination):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameAlreadyExists),
		errors.Is(err, apperror.ErrNoAvailableMoves):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *gameHandlers) writeError(w http.ResponseWriter, status int, msg string) {
	that.writeJSON(w, status, errorView{Error: msg})
}

func (that *gameHandlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
