package domain

import (
	"errors"
	"math/rand"
)

// NumPlayers is the fixed table size for a game of floating bridge.
const NumPlayers = 4

// MinHandScore is the honor-point floor below which a hand may demand a
// redeal.
const MinHandScore = 4

// ErrDealingExhausted reports that no playable deal was found within a
// configured attempt cap.
var ErrDealingExhausted = errors.New("no playable deal found within attempt limit")

// NewDeck returns all 52 cards in suit-major, rank-minor order.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range Suits {
		for r := Rank(2); r <= RankAce; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle returns a uniformly shuffled copy of the given deck.
func Shuffle(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal splits a shuffled deck round-robin into n hands of len(deck)/n cards.
func Deal(deck []Card, n int) [][]Card {
	hands := make([][]Card, n)
	for i := range hands {
		hands[i] = make([]Card, 0, len(deck)/n)
	}
	for i, c := range deck {
		hands[i%n] = append(hands[i%n], c)
	}
	return hands
}

// HandScore is the honor-point heuristic: A=4, K=3, Q=2, J=1, plus one point
// for every suit holding five or more cards.
func HandScore(hand []Card) int {
	score := 0
	suitCounts := make(map[Suit]int, len(Suits))
	for _, c := range hand {
		switch c.Rank {
		case RankAce:
			score += 4
		case RankKing:
			score += 3
		case RankQueen:
			score += 2
		case RankJack:
			score++
		}
		suitCounts[c.Suit]++
	}
	for _, n := range suitCounts {
		if n >= 5 {
			score++
		}
	}
	return score
}

// IsPlayable reports whether a hand is strong enough to keep the deal.
func IsPlayable(hand []Card) bool {
	return HandScore(hand) >= MinHandScore
}

// DealValidHands shuffles and deals until all four hands are playable.
// A single deal fails only when some hand scores below the floor, so the
// rejection loop terminates quickly in practice; maxAttempts == 0 keeps it
// unbounded. A positive cap turns exhaustion into ErrDealingExhausted.
func DealValidHands(rng *rand.Rand, maxAttempts int) ([][]Card, error) {
	deck := NewDeck()
	for attempt := 0; maxAttempts == 0 || attempt < maxAttempts; attempt++ {
		hands := Deal(Shuffle(rng, deck), NumPlayers)
		if allPlayable(hands) {
			for _, hand := range hands {
				SortHand(hand)
			}
			return hands, nil
		}
	}
	return nil, ErrDealingExhausted
}

func allPlayable(hands [][]Card) bool {
	for _, hand := range hands {
		if !IsPlayable(hand) {
			return false
		}
	}
	return true
}

// AssignToPlayers pairs each player id, in the given order, with one dealt
// hand. Position in the input order becomes the player's seat.
func AssignToPlayers(playerIDs []string, hands [][]Card) []*PlayerData {
	players := make([]*PlayerData, len(playerIDs))
	for i, id := range playerIDs {
		players[i] = &PlayerData{UserID: id, Hand: hands[i]}
	}
	return players
}
