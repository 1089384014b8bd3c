package domain

// Phase represents the lifecycle stage of a game. Transitions are strictly
// forward; dealing happens synchronously inside game creation and has no
// externally observable phase.
type Phase string

const (
	// PhaseBidding is the opening auction for trump and level.
	PhaseBidding Phase = "bidding"
	// PhasePartnerSelection is the bid winner's secret partner nomination.
	PhasePartnerSelection Phase = "partner_selection"
	// PhasePlaying is trick-by-trick card play.
	PhasePlaying Phase = "playing"
	// PhaseRoundComplete is the state after the last trick is resolved.
	PhaseRoundComplete Phase = "round_complete"
)

// Partner is the secretly nominated ally, identified by whoever holds the
// nominated card at resolution time (the bid winner itself, if
// self-nominated).
type Partner struct {
	PlayerID string `json:"userId"`
	Card     Card   `json:"card"`
}

// PlayerData holds one seated player's state. Seat order is the slice order
// in Game.Players; positions are derived from player identity, never stored.
type PlayerData struct {
	UserID   string         `json:"userId"`
	Username string         `json:"username,omitempty"`
	Hand     []Card         `json:"hand"`
	Tricks   [][]PlayedCard `json:"tricks"`
}

// Game is the authoritative aggregate for one room. Exactly one live game
// exists per room; it is persisted externally by identifier.
type Game struct {
	RoomID          string        `json:"roomId"`
	Players         []*PlayerData `json:"players"`
	CurrentPosition int           `json:"currentPosition"`
	Trump           Suit          `json:"trump,omitempty"`
	Level           int32         `json:"level,omitempty"`
	LatestBid       *Bid          `json:"latestBid,omitempty"`
	BidSequence     []Bid         `json:"bidSequence"`
	Phase           Phase         `json:"phase"`
	Partner         *Partner      `json:"partner,omitempty"`
	IsPartnerChosen bool          `json:"isPartnerChosen"`
	IsTrumpBroken   bool          `json:"isTrumpBroken"`
	CurrentTrick    []PlayedCard  `json:"currentTrick"`
	RoundNo         int           `json:"roundNo"`
}

// PositionOf returns the seat index of a player id, or -1 if not seated.
func (g *Game) PositionOf(userID string) int {
	for i, p := range g.Players {
		if p.UserID == userID {
			return i
		}
	}
	return -1
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *PlayerData {
	return g.Players[g.CurrentPosition]
}

// HolderOf returns the player whose hand contains the card, or nil.
func (g *Game) HolderOf(card Card) *PlayerData {
	for _, p := range g.Players {
		for _, c := range p.Hand {
			if c == card {
				return p
			}
		}
	}
	return nil
}

// RemoveCard removes one instance of card from the hand, reporting whether
// it was present.
func RemoveCard(hand []Card, card Card) ([]Card, bool) {
	for i, c := range hand {
		if c == card {
			return append(hand[:i:i], hand[i+1:]...), true
		}
	}
	return hand, false
}

// AllHandsEmpty reports whether every seated player has played out.
func (g *Game) AllHandsEmpty() bool {
	for _, p := range g.Players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// CardCount sums cards across hands, the current trick and all collected
// tricks. It equals 52 at every point after dealing.
func (g *Game) CardCount() int {
	n := len(g.CurrentTrick)
	for _, p := range g.Players {
		n += len(p.Hand)
		for _, trick := range p.Tricks {
			n += len(trick)
		}
	}
	return n
}
