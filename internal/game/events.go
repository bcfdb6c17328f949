package game

// Event names pushed to clients. Room-wide events go out via
// Notifier.Broadcast, per-player prompts via Notifier.ToPlayer.
const (
	EventGameUpdate               = "gameUpdate"
	EventMoveMade                 = "moveMade"
	EventSelectionRequired        = "selectionRequired"
	EventSelectionUpdated         = "selectionUpdated"
	EventAttackTargetRequired     = "attackTargetRequired"
	EventAttackTargetNotification = "attackTargetNotification"
	EventDefenseRequired          = "defenseRequired"
	EventAttackNotification       = "attackNotification"
	EventAttackRequired           = "attackRequired"
	EventLegendaryCardRevealed    = "legendaryCardRevealed"
	EventTopDeckReveal            = "topDeckReveal"
	EventTopCardRevealed          = "topCardRevealed"
	EventHandRevealed             = "handRevealed"
	EventDestroyCardRequired      = "destroyCardRequired"
	EventSelectEnemyRequired      = "selectEnemyRequired"
	EventGameFinished             = "gameFinished"
)

// Notifier pushes events to connected clients. The zero implementation in
// tests records events; the production implementation fans out over
// websocket rooms.
type Notifier interface {
	Broadcast(gameID, event string, payload any)
	ToPlayer(gameID, playerID, event string, payload any)
}

// AttackTargetPrompt asks the attacker to pick a target for an attack card
// that was played without one.
type AttackTargetPrompt struct {
	CardID  string   `json:"cardId"`
	Targets []string `json:"targets"`
}

// DefensePrompt asks the attacked player whether to respond with a defense
// card before the attack resolves.
type DefensePrompt struct {
	AttackerID string `json:"attackerId"`
	CardID     string `json:"cardId"`
	Damage     int    `json:"damage"`
}

// AttackNotice tells the room an attack has been declared.
type AttackNotice struct {
	AttackerID string `json:"attackerId"`
	OpponentID string `json:"opponentId"`
	CardID     string `json:"cardId"`
}

// AcquireAttackPrompt tells a player that a permanent lets them attack
// because a card just entered their possession.
type AcquireAttackPrompt struct {
	CardID  string   `json:"cardId"`
	Damage  int      `json:"damage"`
	Targets []string `json:"targets"`
}

// SelectionPrompt carries a mid-effect choice to a single player.
type SelectionPrompt struct {
	Action  string   `json:"action"`
	CardID  string   `json:"cardId,omitempty"`
	Options []string `json:"options,omitempty"`
}

// MoveNotice describes a completed move for the room history feed.
type MoveNotice struct {
	PlayerID string `json:"playerId"`
	Kind     string `json:"kind"`
	CardID   string `json:"cardId,omitempty"`
}
