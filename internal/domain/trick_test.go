package domain

import "testing"

func TestResolveTrick(t *testing.T) {
	play := func(player string, suit Suit, rank Rank) PlayedCard {
		return PlayedCard{PlayerID: player, Card: Card{Suit: suit, Rank: rank}}
	}

	tests := []struct {
		name   string
		played []PlayedCard
		trump  Suit
		winner string
	}{
		{
			name: "any trump beats any non-trump",
			played: []PlayedCard{
				play("a", SuitSpades, 2),
				play("b", SuitHearts, RankAce),
				play("c", SuitHearts, RankKing),
				play("d", SuitSpades, 3),
			},
			trump:  SuitSpades,
			winner: "d",
		},
		{
			name: "no-trump falls back to led suit",
			played: []PlayedCard{
				play("a", SuitHearts, 2),
				play("b", SuitHearts, RankKing),
				play("c", SuitClubs, 5),
				play("d", SuitHearts, 9),
			},
			trump:  SuitNoTrump,
			winner: "b",
		},
		{
			name: "led suit wins when no trump played",
			played: []PlayedCard{
				play("a", SuitDiamonds, 10),
				play("b", SuitDiamonds, RankJack),
				play("c", SuitClubs, RankAce),
				play("d", SuitDiamonds, 4),
			},
			trump:  SuitSpades,
			winner: "b",
		},
		{
			name: "highest of multiple trumps wins",
			played: []PlayedCard{
				play("a", SuitHearts, RankAce),
				play("b", SuitClubs, 2),
				play("c", SuitClubs, RankQueen),
				play("d", SuitHearts, 3),
			},
			trump:  SuitClubs,
			winner: "c",
		},
		{
			name: "trump led counts as trump",
			played: []PlayedCard{
				play("a", SuitSpades, 5),
				play("b", SuitSpades, RankAce),
				play("c", SuitHearts, RankKing),
				play("d", SuitSpades, 7),
			},
			trump:  SuitSpades,
			winner: "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTrick(tt.played, tt.trump)
			if got.PlayerID != tt.winner {
				t.Fatalf("winner = %s, want %s", got.PlayerID, tt.winner)
			}
		})
	}
}

func TestResolveTrickDoesNotMutateInput(t *testing.T) {
	played := []PlayedCard{
		{PlayerID: "a", Card: Card{Suit: SuitHearts, Rank: 2}},
		{PlayerID: "b", Card: Card{Suit: SuitHearts, Rank: 3}},
		{PlayerID: "c", Card: Card{Suit: SuitHearts, Rank: 4}},
		{PlayerID: "d", Card: Card{Suit: SuitHearts, Rank: 5}},
	}
	snapshot := make([]PlayedCard, len(played))
	copy(snapshot, played)

	ResolveTrick(played, SuitSpades)

	for i := range played {
		if played[i] != snapshot[i] {
			t.Fatalf("input mutated at %d: %+v", i, played[i])
		}
	}
}

func TestRankValue(t *testing.T) {
	tests := []struct {
		rank Rank
		want int32
	}{
		{rank: 2, want: 2},
		{rank: 10, want: 10},
		{rank: RankJack, want: 11},
		{rank: RankQueen, want: 12},
		{rank: RankKing, want: 13},
		{rank: RankAce, want: 14},
	}
	for _, tt := range tests {
		if got := RankValue(Card{Suit: SuitClubs, Rank: tt.rank}); got != tt.want {
			t.Fatalf("RankValue(%d) = %d, want %d", tt.rank, got, tt.want)
		}
	}
}
