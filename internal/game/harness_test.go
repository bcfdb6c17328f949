package game

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
)

// fakeStore keeps serialized snapshots like the real stores do, so a
// state read back never aliases the one a command mutated.
type fakeStore struct {
	mu    sync.Mutex
	games map[string][]byte
	moves []recordedMove
}

type recordedMove struct {
	GameID   string
	PlayerID string
	Kind     string
	Data     map[string]any
}

func newFakeStore() *fakeStore {
	return &fakeStore{games: make(map[string][]byte)}
}

func (f *fakeStore) CreateGame(_ context.Context, s *State) error { return f.save(s) }
func (f *fakeStore) SaveGame(_ context.Context, s *State) error   { return f.save(s) }

func (f *fakeStore) save(s *State) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.games[s.ID] = blob
	f.mu.Unlock()
	return nil
}

func (f *fakeStore) GetGame(_ context.Context, gameID string) (*State, error) {
	f.mu.Lock()
	blob, ok := f.games[gameID]
	f.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var s State
	if err := json.Unmarshal(blob, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (f *fakeStore) RecordMove(_ context.Context, gameID, playerID, kind string, data map[string]any) error {
	f.mu.Lock()
	f.moves = append(f.moves, recordedMove{GameID: gameID, PlayerID: playerID, Kind: kind, Data: data})
	f.mu.Unlock()
	return nil
}

func (f *fakeStore) movesOfKind(kind string) []recordedMove {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedMove
	for _, m := range f.moves {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

type fakeInvites struct {
	invitations map[string]*Invitation
}

func (f *fakeInvites) Invitation(_ context.Context, id string) (*Invitation, error) {
	return f.invitations[id], nil
}

type capturedEvent struct {
	PlayerID string // empty for broadcasts
	Event    string
	Payload  any
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (f *fakeNotifier) Broadcast(_, event string, payload any) {
	f.mu.Lock()
	f.events = append(f.events, capturedEvent{Event: event, Payload: payload})
	f.mu.Unlock()
}

func (f *fakeNotifier) ToPlayer(_, playerID, event string, payload any) {
	f.mu.Lock()
	f.events = append(f.events, capturedEvent{PlayerID: playerID, Event: event, Payload: payload})
	f.mu.Unlock()
}

func (f *fakeNotifier) named(event string) []capturedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []capturedEvent
	for _, e := range f.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeNotifier) reset() {
	f.mu.Lock()
	f.events = nil
	f.mu.Unlock()
}

func newTestEngine(t *testing.T, st Store, invites InvitationSource, notifier Notifier, cat *catalog.Catalog, opts Options) *Engine {
	t.Helper()
	return NewEngine(st, invites, notifier, cat,
		zaptest.NewLogger(t), rand.New(rand.NewSource(42)), opts)
}

// harness spins up an engine over fakes and drives a game to any phase a
// test needs.
type harness struct {
	t        *testing.T
	ctx      context.Context
	engine   *Engine
	store    *fakeStore
	notifier *fakeNotifier
	catalog  *catalog.Catalog
	gameID   string
	players  []string
}

func newHarness(t *testing.T, playerCount int, opts Options) *harness {
	t.Helper()
	cat := catalog.New()
	st := newFakeStore()
	notifier := &fakeNotifier{}
	invites := &fakeInvites{invitations: make(map[string]*Invitation)}

	var invited []InvitedPlayer
	var players []string
	for i := 0; i < playerCount; i++ {
		id := fmt.Sprintf("player-%d", i+1)
		invited = append(invited, InvitedPlayer{ID: id, Username: fmt.Sprintf("wizard%d", i+1)})
		players = append(players, id)
	}
	invites.invitations["inv-1"] = &Invitation{ID: "inv-1", Status: InvitationAccepted, Players: invited}

	engine := NewEngine(st, invites, notifier, cat,
		zaptest.NewLogger(t), rand.New(rand.NewSource(42)), opts)

	h := &harness{
		t:        t,
		ctx:      context.Background(),
		engine:   engine,
		store:    st,
		notifier: notifier,
		catalog:  cat,
		players:  players,
	}

	s, err := engine.CreateGame(h.ctx, "inv-1")
	require.NoError(t, err)
	h.gameID = s.ID
	return h
}

// newActiveHarness additionally completes the loadout draft.
func newActiveHarness(t *testing.T, playerCount int, opts Options) *harness {
	t.Helper()
	h := newHarness(t, playerCount, opts)
	h.completeDraft()
	return h
}

func (h *harness) completeDraft() {
	h.t.Helper()
	s := h.state()
	for _, playerID := range s.SelectionQueue {
		options, err := h.engine.GetSelectionOptions(h.ctx, h.gameID, playerID)
		require.NoError(h.t, err)
		_, err = h.engine.SelectLoadout(h.ctx, h.gameID, playerID, LoadoutChoice{
			TokenID:      options.Tokens[0].ID,
			FamiliarName: options.Familiars[0].Name,
			BoardID:      options.Boards[0].ID,
		})
		require.NoError(h.t, err)
	}
	require.Equal(h.t, StatusActive, h.state().Status)
}

func (h *harness) state() *State {
	h.t.Helper()
	s, err := h.store.GetGame(h.ctx, h.gameID)
	require.NoError(h.t, err)
	require.NotNil(h.t, s)
	return s
}

// mutate applies a direct state edit through the store, the way tests
// arrange scenarios the command surface cannot reach quickly.
func (h *harness) mutate(fn func(s *State)) {
	h.t.Helper()
	s := h.state()
	fn(s)
	require.NoError(h.t, h.store.SaveGame(h.ctx, s))
}

// card mints a fresh instance of a named catalog card.
func (h *harness) card(name string) *Card {
	h.t.Helper()
	def, ok := h.catalog.ByName(name)
	require.Truef(h.t, ok, "card %q not in catalog", name)
	return newCard(def)
}

// giveHand replaces a player's hand with fresh instances of named cards
// and returns them in order.
func (h *harness) giveHand(playerID string, names ...string) []*Card {
	h.t.Helper()
	cards := make([]*Card, len(names))
	for i, name := range names {
		cards[i] = h.card(name)
	}
	h.mutate(func(s *State) {
		p := s.PlayerByID(playerID)
		require.NotNil(h.t, p)
		p.Hand = cards
	})
	return cards
}

func (h *harness) setCurrent(playerID string) {
	h.t.Helper()
	h.mutate(func(s *State) { s.CurrentPlayerID = playerID })
}

func (h *harness) current() string {
	return h.state().CurrentPlayerID
}

func (h *harness) playerState(playerID string) *Player {
	h.t.Helper()
	p := h.state().PlayerByID(playerID)
	require.NotNil(h.t, p)
	return p
}

// zoneCensus counts every card instance across all zones of the game,
// for conservation checks.
func zoneCensus(s *State) map[string]int {
	census := make(map[string]int)
	add := func(cards []*Card) {
		for _, c := range cards {
			census[c.InstanceID]++
		}
	}
	for _, p := range s.Players {
		add(p.Deck)
		add(p.Hand)
		add(p.PlayArea)
		add(p.Discard)
		if p.Familiar != nil {
			census[p.Familiar.InstanceID]++
		}
	}
	add(s.Marketplace)
	add(s.MarketplaceReserve)
	add(s.LegendaryMarketplace)
	add(s.LegendaryReserve)
	add(s.StrayMagicDeck)
	add(s.SluggishSticksDeck)
	add(s.ChaosDiscard)
	add(s.DestroyedCards)
	return census
}
