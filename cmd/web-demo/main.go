// Command web-demo runs a self-contained Krutagidon table for local
// playtesting: an in-memory store, a seeded invitation and an already
// created game, exposed over the regular HTTP and websocket API. No
// database or invitation service is needed.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
	"github.com/krutagidon/krutagidon-server-go/internal/game"
	"github.com/krutagidon/krutagidon-server-go/internal/notify"
	"github.com/krutagidon/krutagidon-server-go/internal/server"
	"github.com/krutagidon/krutagidon-server-go/internal/store"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	players := flag.Int("players", 2, "number of seats at the demo table (2-5)")
	seed := flag.Int64("seed", 0, "shuffle seed, 0 for random")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if *players < game.MinPlayers || *players > game.MaxPlayers {
		logger.Fatal("player count out of range",
			zap.Int("players", *players),
			zap.Int("min", game.MinPlayers),
			zap.Int("max", game.MaxPlayers))
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	memory := store.NewMemory()
	invitation := &game.Invitation{ID: "demo", Status: game.InvitationAccepted}
	for i := 0; i < *players; i++ {
		invitation.Players = append(invitation.Players, game.InvitedPlayer{
			ID:       fmt.Sprintf("player-%d", i+1),
			Username: fmt.Sprintf("wizard%d", i+1),
		})
	}
	memory.AddInvitation(invitation)

	hub := notify.NewHub(logger)
	engine := game.NewEngine(memory, memory, hub, catalog.New(), logger, rng, game.Options{
		PendingTTL: game.DefaultPendingTTL,
	})

	state, err := engine.CreateGame(context.Background(), invitation.ID)
	if err != nil {
		logger.Fatal("demo game not created", zap.Error(err))
	}

	logger.Info("demo table ready",
		zap.String("addr", *addr),
		zap.String("game_id", state.ID),
		zap.Int("players", *players),
		zap.Int64("seed", *seed))
	for _, p := range invitation.Players {
		logger.Info("seat",
			zap.String("player_id", p.ID),
			zap.String("ws", fmt.Sprintf("ws://localhost%s/ws?gameId=%s&playerId=%s", *addr, state.ID, p.ID)))
	}

	srv := server.New(engine, hub, logger)
	if err := http.ListenAndServe(*addr, srv); err != nil {
		logger.Fatal("demo server stopped", zap.Error(err))
	}
}
