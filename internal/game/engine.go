package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
)

// DefaultPendingTTL is how long an unanswered prompt survives before the
// next command on the game auto-resolves it.
const DefaultPendingTTL = 2 * time.Minute

// Options tunes engine behavior.
type Options struct {
	// StrictEffects makes a card property without a registered handler an
	// error instead of a logged no-op.
	StrictEffects bool
	// PendingTTL bounds how long a pending interaction may block a game.
	// Zero disables expiry.
	PendingTTL time.Duration
}

// Engine is the server-authoritative game orchestrator. Every command
// follows the same shape: lock the game, load, validate, mutate, persist,
// notify. Commands for the same game are serialized; state is never
// mutated outside a held lock.
type Engine struct {
	store    Store
	invites  InvitationSource
	notifier Notifier
	catalog  *catalog.Catalog
	logger   *zap.Logger
	rng      *rand.Rand
	opts     Options
	locks    *gameLocks

	combat *CombatEngine
	props  *PropertyResolver
	turns  *TurnEngine
}

// NewEngine wires the orchestrator and its sub-engines. The rng is the
// single source of shuffle order; tests pass a seeded one.
func NewEngine(store Store, invites InvitationSource, notifier Notifier, cat *catalog.Catalog, logger *zap.Logger, rng *rand.Rand, opts Options) *Engine {
	c := &core{
		notifier: notifier,
		logger:   logger,
		rng:      rng,
		catalog:  cat,
		strict:   opts.StrictEffects,
	}
	combat := newCombatEngine(c)
	props := newPropertyResolver(c, combat)
	e := &Engine{
		store:    store,
		invites:  invites,
		notifier: notifier,
		catalog:  cat,
		logger:   logger,
		rng:      rng,
		opts:     opts,
		locks:    newGameLocks(),
		combat:   combat,
		props:    props,
		turns:    newTurnEngine(c, combat, props),
	}
	return e
}

func (e *Engine) loadGame(ctx context.Context, gameID string) (*State, error) {
	s, err := e.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, notFoundf("game %s not found", gameID)
	}
	return s, nil
}

func (e *Engine) loadActiveGame(ctx context.Context, gameID string) (*State, error) {
	s, err := e.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if s.Status != StatusActive {
		return nil, statef("game %s is %s, not active", gameID, s.Status)
	}
	return s, nil
}

func (e *Engine) persist(ctx context.Context, s *State) error {
	s.UpdatedAt = time.Now().UTC()
	if err := e.store.SaveGame(ctx, s); err != nil {
		return err
	}
	e.notifier.Broadcast(s.ID, EventGameUpdate, s)
	return nil
}

func (e *Engine) recordMove(ctx context.Context, s *State, playerID, kind string, data map[string]any) {
	if err := e.store.RecordMove(ctx, s.ID, playerID, kind, data); err != nil {
		e.logger.Warn("move not recorded",
			zap.String("game_id", s.ID),
			zap.String("player_id", playerID),
			zap.String("kind", kind),
			zap.Error(err))
	}
}

// expirePending auto-resolves an interaction that has outlived its TTL so
// an absent player cannot wedge the game. An expired defense prompt
// resolves as "no defense"; an expired target prompt cancels the play;
// other prompts simply lapse.
func (e *Engine) expirePending(ctx context.Context, s *State) error {
	if !s.pendingExpired(e.opts.PendingTTL, time.Now().UTC()) {
		return nil
	}
	expired := s.Pending
	e.logger.Info("pending interaction expired",
		zap.String("game_id", s.ID),
		zap.String("kind", string(expired.Kind)))

	switch expired.Kind {
	case PendingDefense:
		d := expired.Defense
		attacker := s.PlayerByID(d.AttackerID)
		card := FindCard(attacker.PlayArea, d.CardID)
		if card == nil {
			s.clearPending()
			return nil
		}
		return e.applyCardEffect(ctx, s, attacker, card, d.OpponentID, "")
	default:
		s.clearPending()
		return nil
	}
}

// newCard stamps a catalog definition into a unique in-game instance.
func newCard(def *catalog.CardDef) *Card {
	return &Card{InstanceID: uuid.NewString(), CardDef: *def}
}

func instantiate(defs []*catalog.CardDef) []*Card {
	cards := make([]*Card, len(defs))
	for i, d := range defs {
		cards[i] = newCard(d)
	}
	return cards
}
