package domain

import "sort"

// Suit identifies one of the four French suits. The extra no-trump value is
// only legal on bids, where it declares a contract without a trump suit.
type Suit string

const (
	SuitClubs    Suit = "c"
	SuitDiamonds Suit = "d"
	SuitHearts   Suit = "h"
	SuitSpades   Suit = "s"
	SuitNoTrump  Suit = "n"
)

// Suits enumerates the dealable suits in deck order.
var Suits = [4]Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}

// Rank is the face value of a card: 2..10 plus the honors below.
type Rank int32

const (
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
	RankAce   Rank = 14
)

// Card is a single playing card. Immutable value type; a deck holds 52
// distinct values with no duplicates.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// RankValue is the total order for comparing two cards of the same suit:
// 2..10 map to themselves, J=11, Q=12, K=13, A=14.
func RankValue(c Card) int32 {
	return int32(c.Rank)
}

// CardPower adds a coarse suit offset to the rank value. It only
// disambiguates sort order across mixed collections; cross-suit comparison
// during play is meaningless outside ResolveTrick.
func CardPower(c Card) int32 {
	return suitOffset(c.Suit) + RankValue(c)
}

func suitOffset(s Suit) int32 {
	switch s {
	case SuitClubs:
		return 10
	case SuitDiamonds:
		return 100
	case SuitHearts:
		return 1000
	case SuitSpades:
		return 10000
	default:
		return 0
	}
}

// SortHand orders a hand by ascending power for display.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return CardPower(cards[i]) < CardPower(cards[j])
	})
}
