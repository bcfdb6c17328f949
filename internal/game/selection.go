package game

import (
	"context"

	"go.uber.org/zap"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
)

const offersPerCategory = 2

// SelectionOptions is the loadout offer made to one player: two wizard
// property tokens, two familiars, and two play-area boards to choose from.
type SelectionOptions struct {
	Tokens    []catalog.WizardPropertyToken `json:"tokens"`
	Familiars []*catalog.CardDef            `json:"familiars"`
	Boards    []catalog.PlayAreaBoard       `json:"boards"`
}

// LoadoutChoice is the player's answer to a SelectionOptions offer.
type LoadoutChoice struct {
	TokenID      int    `json:"tokenId"`
	FamiliarName string `json:"familiarName"`
	BoardID      int    `json:"boardId"`
}

// GetSelectionOptions returns the player's loadout offer, generating and
// caching it on first call so re-fetching after a reconnect sees the same
// offer. Options already selected by or proposed to other players are
// excluded from the pool.
func (e *Engine) GetSelectionOptions(ctx context.Context, gameID, playerID string) (*SelectionOptions, error) {
	unlock := e.locks.lock(gameID)
	defer unlock()

	s, err := e.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if s.Status != StatusPending {
		return nil, statef("loadout selection is closed for game %s", gameID)
	}
	if s.PlayerByID(playerID) == nil {
		return nil, notFoundf("player %s not in game", playerID)
	}

	options, generated, err := e.ensureOffers(s, playerID)
	if err != nil {
		return nil, err
	}
	if generated {
		if err := e.persist(ctx, s); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// SelectLoadout commits the queue-head player's loadout choice and
// advances the draft. When the last player finishes, the game flips to
// active.
func (e *Engine) SelectLoadout(ctx context.Context, gameID, playerID string, choice LoadoutChoice) (*State, error) {
	unlock := e.locks.lock(gameID)
	defer unlock()

	s, err := e.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if s.Status != StatusPending {
		return nil, statef("loadout selection is closed for game %s", gameID)
	}
	player := s.PlayerByID(playerID)
	if player == nil {
		return nil, notFoundf("player %s not in game", playerID)
	}
	if player.SelectionCompleted {
		return nil, validationf("player %s already selected a loadout", playerID)
	}
	if s.SelectionIndex >= len(s.SelectionQueue) || s.SelectionQueue[s.SelectionIndex] != playerID {
		return nil, validationf("it is not player %s's turn to select", playerID)
	}

	if _, _, err := e.ensureOffers(s, playerID); err != nil {
		return nil, err
	}
	if !containsInt(s.ProposedTokens[playerID], choice.TokenID) {
		return nil, validationf("token %d was not offered to player %s", choice.TokenID, playerID)
	}
	if !containsString(s.ProposedFamiliars[playerID], choice.FamiliarName) {
		return nil, validationf("familiar %q was not offered to player %s", choice.FamiliarName, playerID)
	}
	if !containsInt(s.ProposedBoards[playerID], choice.BoardID) {
		return nil, validationf("board %d was not offered to player %s", choice.BoardID, playerID)
	}

	player.WizardPropertyToken = e.tokenByID(choice.TokenID)
	player.PlayAreaBoard = e.boardByID(choice.BoardID)
	if def, ok := e.catalog.ByName(choice.FamiliarName); ok {
		player.Familiar = newCard(def)
	}
	player.SelectionCompleted = true
	s.SelectionIndex++

	e.notifier.Broadcast(s.ID, EventSelectionUpdated, map[string]any{
		"playerId":     playerID,
		"tokenId":      choice.TokenID,
		"familiarName": choice.FamiliarName,
		"boardId":      choice.BoardID,
	})

	if s.SelectionIndex < len(s.SelectionQueue) {
		e.notifier.ToPlayer(s.ID, s.SelectionQueue[s.SelectionIndex], EventSelectionRequired, SelectionPrompt{
			Action: "loadout",
		})
	} else {
		s.Status = StatusActive
		e.logger.Info("loadout draft complete, game active",
			zap.String("game_id", s.ID))
	}

	e.recordMove(ctx, s, playerID, "selectLoadout", map[string]any{
		"tokenId":      choice.TokenID,
		"familiarName": choice.FamiliarName,
		"boardId":      choice.BoardID,
	})
	if err := e.persist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureOffers builds and caches the player's offer if absent. It reports
// whether anything new was generated (and so needs persisting). Offer maps
// may come back nil from a deserialized snapshot.
func (e *Engine) ensureOffers(s *State, playerID string) (*SelectionOptions, bool, error) {
	generated := false
	if s.ProposedTokens == nil {
		s.ProposedTokens = make(map[string][]int)
	}
	if s.ProposedFamiliars == nil {
		s.ProposedFamiliars = make(map[string][]string)
	}
	if s.ProposedBoards == nil {
		s.ProposedBoards = make(map[string][]int)
	}

	if _, ok := s.ProposedTokens[playerID]; !ok {
		pool := e.availableTokenIDs(s)
		if len(pool) < offersPerCategory {
			return nil, false, statef("not enough wizard property tokens left to offer")
		}
		catalog.Shuffle(e.rng, pool)
		s.ProposedTokens[playerID] = pool[:offersPerCategory]
		generated = true
	}
	if _, ok := s.ProposedFamiliars[playerID]; !ok {
		pool := e.availableFamiliars(s)
		if len(pool) < offersPerCategory {
			return nil, false, statef("not enough familiars left to offer")
		}
		catalog.Shuffle(e.rng, pool)
		s.ProposedFamiliars[playerID] = pool[:offersPerCategory]
		generated = true
	}
	if _, ok := s.ProposedBoards[playerID]; !ok {
		pool := e.availableBoardIDs(s)
		if len(pool) < offersPerCategory {
			return nil, false, statef("not enough play area boards left to offer")
		}
		catalog.Shuffle(e.rng, pool)
		s.ProposedBoards[playerID] = pool[:offersPerCategory]
		generated = true
	}

	options := &SelectionOptions{}
	for _, id := range s.ProposedTokens[playerID] {
		if t := e.tokenByID(id); t != nil {
			options.Tokens = append(options.Tokens, *t)
		}
	}
	for _, name := range s.ProposedFamiliars[playerID] {
		if def, ok := e.catalog.ByName(name); ok {
			options.Familiars = append(options.Familiars, def)
		}
	}
	for _, id := range s.ProposedBoards[playerID] {
		if b := e.boardByID(id); b != nil {
			options.Boards = append(options.Boards, *b)
		}
	}
	return options, generated, nil
}

func (e *Engine) availableTokenIDs(s *State) []int {
	taken := make(map[int]bool)
	for _, p := range s.Players {
		if p.WizardPropertyToken != nil {
			taken[p.WizardPropertyToken.ID] = true
		}
	}
	for _, ids := range s.ProposedTokens {
		for _, id := range ids {
			taken[id] = true
		}
	}
	var pool []int
	for _, t := range e.catalog.WizardPropertyTokens() {
		if !taken[t.ID] {
			pool = append(pool, t.ID)
		}
	}
	return pool
}

func (e *Engine) availableFamiliars(s *State) []string {
	taken := make(map[string]bool)
	for _, p := range s.Players {
		if p.Familiar != nil {
			taken[p.Familiar.Name] = true
		}
	}
	for _, names := range s.ProposedFamiliars {
		for _, name := range names {
			taken[name] = true
		}
	}
	var pool []string
	for _, def := range e.catalog.Familiars() {
		if !taken[def.Name] {
			pool = append(pool, def.Name)
		}
	}
	return pool
}

func (e *Engine) availableBoardIDs(s *State) []int {
	taken := make(map[int]bool)
	for _, p := range s.Players {
		if p.PlayAreaBoard != nil {
			taken[p.PlayAreaBoard.ID] = true
		}
	}
	for _, ids := range s.ProposedBoards {
		for _, id := range ids {
			taken[id] = true
		}
	}
	var pool []int
	for _, b := range e.catalog.PlayAreaBoards() {
		if !taken[b.ID] {
			pool = append(pool, b.ID)
		}
	}
	return pool
}

func (e *Engine) tokenByID(id int) *catalog.WizardPropertyToken {
	for _, t := range e.catalog.WizardPropertyTokens() {
		if t.ID == id {
			return &t
		}
	}
	return nil
}

func (e *Engine) boardByID(id int) *catalog.PlayAreaBoard {
	for _, b := range e.catalog.PlayAreaBoards() {
		if b.ID == id {
			return &b
		}
	}
	return nil
}

func containsInt(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsString(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}
