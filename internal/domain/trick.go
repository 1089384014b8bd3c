package domain

// PlayedCard records who put a card into the current trick.
type PlayedCard struct {
	PlayerID string `json:"playedBy"`
	Card     Card   `json:"card"`
}

// ResolveTrick selects the winner of a completed trick. If any trump card
// was played and the contract is not no-trump, the highest trump wins;
// otherwise the highest card of the led suit wins. Pure: the input is not
// mutated.
func ResolveTrick(played []PlayedCard, trump Suit) PlayedCard {
	if trump != SuitNoTrump && trump != "" {
		if best, ok := highestOfSuit(played, trump); ok {
			return best
		}
	}
	best, _ := highestOfSuit(played, played[0].Card.Suit)
	return best
}

func highestOfSuit(played []PlayedCard, suit Suit) (PlayedCard, bool) {
	var best PlayedCard
	found := false
	for _, pc := range played {
		if pc.Card.Suit != suit {
			continue
		}
		if !found || RankValue(pc.Card) > RankValue(best.Card) {
			best = pc
			found = true
		}
	}
	return best, found
}
