package bot

import (
	"fmt"

	"bridge/internal/domain"
)

// Agent is an autonomous seat occupant. It produces moves that are legal
// under the engine's checks from the game snapshot alone; it holds no state
// between turns.
type Agent struct {
	ID   string
	Name string
}

// NewAgent builds an agent for a rostered bot id.
func NewAgent(userID string) (*Agent, error) {
	identity, ok := identityMap[userID]
	if !ok {
		return nil, fmt.Errorf("unknown bot id: %s", userID)
	}
	return &Agent{ID: userID, Name: identity.Username}, nil
}

// Bid opens the auction with the minimum contract when nobody has bid yet,
// and passes otherwise. One real bid is all the table needs for the auction
// to converge.
func (a *Agent) Bid(game *domain.Game) domain.Bid {
	for _, b := range game.BidSequence {
		if !b.IsPass() {
			return domain.Pass(a.ID)
		}
	}
	return domain.Bid{PlayerID: a.ID, Trump: domain.SuitClubs, Level: 1}
}

// PartnerCard nominates the highest outstanding card of the trump suit
// (spades under no-trump) that the agent does not hold itself.
func (a *Agent) PartnerCard(game *domain.Game) domain.Card {
	suit := game.Trump
	if suit == domain.SuitNoTrump || suit == "" {
		suit = domain.SuitSpades
	}

	hand := a.hand(game)
	for r := domain.RankAce; r >= 2; r-- {
		card := domain.Card{Suit: suit, Rank: r}
		if !contains(hand, card) {
			return card
		}
	}
	// Unreachable with a 13-card hand, but keep the move legal regardless.
	return domain.Card{Suit: suit, Rank: domain.RankAce}
}

// Play picks a card for the agent's turn: follow the led suit low when
// possible; when leading, avoid trump until it is broken; otherwise shed
// the weakest card.
func (a *Agent) Play(game *domain.Game) (domain.Card, error) {
	hand := a.hand(game)
	if len(hand) == 0 {
		return domain.Card{}, fmt.Errorf("bot %s has no cards to play", a.ID)
	}

	if len(game.CurrentTrick) > 0 {
		led := game.CurrentTrick[0].Card.Suit
		if card, ok := lowestOfSuit(hand, led); ok {
			return card, nil
		}
		return lowest(hand), nil
	}

	if game.Trump != domain.SuitNoTrump && !game.IsTrumpBroken {
		if card, ok := lowestAvoiding(hand, game.Trump); ok {
			return card, nil
		}
	}
	return lowest(hand), nil
}

func (a *Agent) hand(game *domain.Game) []domain.Card {
	for _, p := range game.Players {
		if p.UserID == a.ID {
			return p.Hand
		}
	}
	return nil
}

func contains(hand []domain.Card, card domain.Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}

func lowest(hand []domain.Card) domain.Card {
	best := hand[0]
	for _, c := range hand[1:] {
		if domain.RankValue(c) < domain.RankValue(best) {
			best = c
		}
	}
	return best
}

func lowestOfSuit(hand []domain.Card, suit domain.Suit) (domain.Card, bool) {
	var best domain.Card
	found := false
	for _, c := range hand {
		if c.Suit != suit {
			continue
		}
		if !found || domain.RankValue(c) < domain.RankValue(best) {
			best = c
			found = true
		}
	}
	return best, found
}

func lowestAvoiding(hand []domain.Card, suit domain.Suit) (domain.Card, bool) {
	var best domain.Card
	found := false
	for _, c := range hand {
		if c.Suit == suit {
			continue
		}
		if !found || domain.RankValue(c) < domain.RankValue(best) {
			best = c
			found = true
		}
	}
	return best, found
}
