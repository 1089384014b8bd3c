package domain

// Bid is one entry in the append-only bidding log. A pass keeps the player
// id but leaves trump and level at their zero values; it is a distinguished
// variant, never a nil entry.
type Bid struct {
	PlayerID string `json:"userId"`
	Trump    Suit   `json:"trump,omitempty"`
	Level    int32  `json:"level,omitempty"`
}

// Pass returns the declination entry for a player's bidding turn.
func Pass(playerID string) Bid {
	return Bid{PlayerID: playerID}
}

// IsPass reports whether the entry declines to bid.
func (b Bid) IsPass() bool {
	return b.Trump == "" && b.Level == 0
}

// ResolveBidding decides whether bidding is still open and, once closed,
// which bid won. Bidding closes when the three most recent entries are all
// passes and a real bid sits at the fourth-from-last position; that bid
// wins. A sequence of nothing but passes never closes: the game requires at
// least one real bid.
func ResolveBidding(seq []Bid) (*Bid, bool) {
	if len(seq) < NumPlayers {
		return nil, true
	}
	last := len(seq) - 1
	for i := last; i > last-3; i-- {
		if !seq[i].IsPass() {
			return nil, true
		}
	}
	winning := seq[last-3]
	if winning.IsPass() {
		return nil, true
	}
	return &winning, false
}
