// Package server exposes the game engine over HTTP: JSON command
// endpoints for clients and a websocket endpoint for the event stream.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/krutagidon/krutagidon-server-go/internal/game"
	"github.com/krutagidon/krutagidon-server-go/internal/notify"
)

// Server routes client commands to the engine and upgrades event-stream
// subscriptions onto the hub.
type Server struct {
	engine *game.Engine
	hub    *notify.Hub
	logger *zap.Logger
	mux    *http.ServeMux
}

func New(engine *game.Engine, hub *notify.Hub, logger *zap.Logger) *Server {
	s := &Server{
		engine: engine,
		hub:    hub,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/games", s.handleCreateGame)
	s.mux.HandleFunc("GET /api/games/{id}/selection-options", s.handleSelectionOptions)
	s.mux.HandleFunc("POST /api/games/{id}/select-loadout", s.handleSelectLoadout)
	s.mux.HandleFunc("POST /api/games/{id}/play", s.handlePlayCard)
	s.mux.HandleFunc("POST /api/games/{id}/attack-target", s.handleAttackTarget)
	s.mux.HandleFunc("POST /api/games/{id}/cancel-attack-target", s.handleCancelAttackTarget)
	s.mux.HandleFunc("POST /api/games/{id}/defense", s.handleDefense)
	s.mux.HandleFunc("POST /api/games/{id}/buy", s.handleBuyCard)
	s.mux.HandleFunc("POST /api/games/{id}/start-turn", s.handleStartTurn)
	s.mux.HandleFunc("POST /api/games/{id}/end-turn", s.handleEndTurn)
	s.mux.HandleFunc("POST /api/games/{id}/destroy-from-discard", s.handleDestroyFromDiscard)
	s.mux.HandleFunc("POST /api/games/{id}/top-deck", s.handleTopDeck)
	s.mux.HandleFunc("POST /api/games/{id}/top-deck-verdicts", s.handleTopDeckVerdicts)
	s.mux.HandleFunc("POST /api/games/{id}/destroy-selection", s.handleDestroySelection)
	s.mux.HandleFunc("POST /api/games/{id}/enemy-selection", s.handleEnemySelection)
	s.mux.HandleFunc("GET /ws", s.handleWS)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	if gameID == "" {
		http.Error(w, "gameId is required", http.StatusBadRequest)
		return
	}
	s.hub.ServeWS(w, r, gameID, r.URL.Query().Get("playerId"))
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InvitationID string `json:"invitationId"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.engine.CreateGame(r.Context(), req.InvitationID)
	s.respond(w, st, "", err)
}

func (s *Server) handleSelectionOptions(w http.ResponseWriter, r *http.Request) {
	options, err := s.engine.GetSelectionOptions(r.Context(), r.PathValue("id"), r.URL.Query().Get("playerId"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, options)
}

func (s *Server) handleSelectLoadout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID string             `json:"playerId"`
		Choice   game.LoadoutChoice `json:"choice"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.engine.SelectLoadout(r.Context(), r.PathValue("id"), req.PlayerID, req.Choice)
	s.respond(w, st, req.PlayerID, err)
}

func (s *Server) handlePlayCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID   string `json:"playerId"`
		CardID     string `json:"cardId"`
		OpponentID string `json:"opponentId"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.engine.PlayCard(r.Context(), r.PathValue("id"), req.PlayerID, req.CardID, req.OpponentID)
	s.respond(w, st, req.PlayerID, err)
}

func (s *Server) handleAttackTarget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID   string `json:"playerId"`
		OpponentID string `json:"opponentId"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.engine.ResolveAttackTarget(r.Context(), r.PathValue("id"), req.PlayerID, req.OpponentID)
	s.respond(w, st, req.PlayerID, err)
}

func (s *Server) handleCancelAttackTarget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID string `json:"playerId"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.engine.CancelAttackTargetSelection(r.Context(), r.PathValue("id"), req.PlayerID)
	s.respond(w, st, req.PlayerID, err)
}

func (s *Server) handleDefense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID      string `json:"playerId"`
		DefenseCardID string `json:"defenseCardId"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.engine.ResolveDefense(r.Context(), r.PathValue("id"), req.PlayerID, req.DefenseCardID)
	s.respond(w, st, req.PlayerID, err)
}

func (s *Server) handleBuyCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID string         `json:"playerId"`
		CardID   string         `json:"cardId"`
		Source   game.BuySource `json:"source"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.Source == "" {
		req.Source = game.BuyMarketplace
	}
	st, err := s.engine.BuyCard(r.Context(), r.PathValue("id"), req.PlayerID, req.CardID, req.Source)
	s.respond(w, st, req.PlayerID, err)
}

func (s *Server) handleStartTurn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID string `json:"playerId"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.engine.StartTurn(r.Context(), r.PathValue("id"), req.PlayerID)
	s.respond(w, st, req.PlayerID, err)
}

func (s *Server) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID string `json:"playerId"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.engine.EndTurn(r.Context(), r.PathValue("id"), req.PlayerID)
	s.respond(w, st, req.PlayerID, err)
}

func (s *Server) handleDestroyFromDiscard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID string `json:"playerId"`
		CardID   string `json:"cardId"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.engine.DestroyCardFromDiscard(r.Context(), r.PathValue("id"), req.PlayerID, req.CardID)
	s.respond(w, st, req.PlayerID, err)
}

func (s *Server) handleTopDeck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID string             `json:"playerId"`
		CardID   string             `json:"cardId"`
		Action   game.TopDeckAction `json:"action"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.engine.HandleTopDeckSelection(r.Context(), r.PathValue("id"), req.PlayerID, req.CardID, req.Action)
	s.respond(w, st, req.PlayerID, err)
}

func (s *Server) handleTopDeckVerdicts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID string                `json:"playerId"`
		Verdicts []game.TopDeckVerdict `json:"verdicts"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.engine.ResolveTopDeckSelection(r.Context(), r.PathValue("id"), req.PlayerID, req.Verdicts)
	s.respond(w, st, req.PlayerID, err)
}

func (s *Server) handleDestroySelection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID string `json:"playerId"`
		CardID   string `json:"cardId"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.engine.ResolveDestroyCardSelection(r.Context(), r.PathValue("id"), req.PlayerID, req.CardID)
	s.respond(w, st, req.PlayerID, err)
}

func (s *Server) handleEnemySelection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID string `json:"playerId"`
		EnemyID  string `json:"enemyId"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.engine.ResolveEnemySelection(r.Context(), r.PathValue("id"), req.PlayerID, req.EnemyID)
	s.respond(w, st, req.PlayerID, err)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// respond renders the command result as the caller's redacted view.
func (s *Server) respond(w http.ResponseWriter, st *game.State, playerID string, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, game.ViewFor(st, playerID))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response not written", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var gameErr *game.Error
	if errors.As(err, &gameErr) {
		switch {
		case game.IsValidation(err):
			status = http.StatusUnprocessableEntity
		case game.IsStateMachine(err):
			status = http.StatusConflict
		case game.IsNotFound(err):
			status = http.StatusNotFound
		}
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
