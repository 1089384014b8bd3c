package app

import "bridge/internal/domain"

// EventKind identifies outbound events broadcast to the room channel. The
// names are the wire-level event names clients subscribe to.
type EventKind string

const (
	EventGameStatus EventKind = "game-status-event"
	EventGameInit   EventKind = "game-init-event"
	EventGameTurn   EventKind = "game-turn-event"
)

// Game status values carried by EventGameStatus.
const (
	StatusStarted = "started"
	StatusResumed = "resumed"
)

// Event is a domain event produced by a state transition, to be broadcast
// on the owning room's channel.
type Event struct {
	Kind    EventKind
	Payload any
}

type GameStatusPayload struct {
	Status string `json:"status"`
}

// GameInitPayload carries the full snapshot of a freshly created or resumed
// game. GameID is filled by the transport layer once the record id is known.
type GameInitPayload struct {
	GameID   string       `json:"gameId,omitempty"`
	GameData *domain.Game `json:"gameData"`
}

type GameTurnPayload struct {
	GameData *domain.Game `json:"gameData"`
}
