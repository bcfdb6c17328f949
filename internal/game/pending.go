package game

import "time"

// PendingKind tags the single in-flight interaction a game may hold.
type PendingKind string

const (
	PendingAttackTarget    PendingKind = "awaitingAttackTarget"
	PendingDefense         PendingKind = "awaitingDefense"
	PendingTopDeckReveal   PendingKind = "awaitingTopDeckReveal"
	PendingDestroyFromHand PendingKind = "awaitingDestroyFromHand"
	PendingEnemySelection  PendingKind = "awaitingEnemySelection"
)

// PendingInteraction is the tagged variant recording the one unresolved
// prompt in a game. Exactly the payload matching Kind is non-nil.
type PendingInteraction struct {
	Kind      PendingKind `json:"kind"`
	CreatedAt time.Time   `json:"createdAt"`

	AttackTarget *AttackTargetState `json:"attackTarget,omitempty"`
	Defense      *DefenseState      `json:"defense,omitempty"`
	TopDeck      *TopDeckState      `json:"topDeck,omitempty"`
	Destroy      *DestroyState      `json:"destroy,omitempty"`
	EnemySelect  *EnemySelectState  `json:"enemySelect,omitempty"`
}

// AttackTargetState: an attack card was played without a target and its
// owner must pick one or cancel.
type AttackTargetState struct {
	PlayerID string `json:"playerId"`
	CardID   string `json:"cardId"`
}

// DefenseState: an attack is declared and the opponent must answer with a
// defense card or take it.
type DefenseState struct {
	AttackerID string `json:"attackerId"`
	OpponentID string `json:"opponentId"`
	CardID     string `json:"cardId"`
	Damage     int    `json:"damage"`
}

// RevealedTopCard is one enemy's revealed deck top awaiting the
// attacker's verdict.
type RevealedTopCard struct {
	EnemyID string `json:"enemyId"`
	Card    *Card  `json:"card"`
}

// TopDeckState: enemy deck tops are face up and the prompted player
// decides each card's fate.
type TopDeckState struct {
	PlayerID string            `json:"playerId"`
	Revealed []RevealedTopCard `json:"revealed"`
}

// DestroyState: the prompted player may destroy one card from their hand.
type DestroyState struct {
	PlayerID string `json:"playerId"`
}

// EnemySelectState: the prompted player must pick one enemy for the named
// action.
type EnemySelectState struct {
	PlayerID string   `json:"playerId"`
	Action   string   `json:"action"`
	Targets  []string `json:"targets"`
}

// Actions for EnemySelectState.
const (
	EnemyActionGiveDeadWizard = "giveDeadWizard"
)

// beginPending installs a new interaction. Starting one while another is
// active is a state-machine error; the engine never stacks prompts.
func (s *State) beginPending(p *PendingInteraction) error {
	if s.Pending != nil {
		return statef("interaction %s already pending", s.Pending.Kind)
	}
	p.CreatedAt = time.Now().UTC()
	s.Pending = p
	return nil
}

func (s *State) clearPending() {
	s.Pending = nil
}

// pendingExpired reports whether the active interaction has outlived ttl.
// A ttl of zero disables expiry.
func (s *State) pendingExpired(ttl time.Duration, now time.Time) bool {
	if s.Pending == nil || ttl <= 0 {
		return false
	}
	return now.Sub(s.Pending.CreatedAt) > ttl
}
