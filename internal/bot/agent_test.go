package bot

import (
	"testing"

	"bridge/internal/domain"
)

func init() {
	SetIdentities([]Identity{
		{UserID: "bot-1", Username: "Rook", DisplayName: "Rook"},
		{UserID: "bot-2", Username: "Pawn", DisplayName: "Pawn"},
	})
}

func testGame(botHand []domain.Card) *domain.Game {
	return &domain.Game{
		Players: []*domain.PlayerData{
			{UserID: "u1"},
			{UserID: "bot-1", Hand: botHand},
			{UserID: "u2"},
			{UserID: "u3"},
		},
		Phase: domain.PhasePlaying,
	}
}

func TestNewAgentRequiresRosteredID(t *testing.T) {
	if _, err := NewAgent("bot-1"); err != nil {
		t.Fatalf("rostered id should build an agent: %v", err)
	}
	if _, err := NewAgent("human"); err == nil {
		t.Fatal("unrostered id should fail")
	}
}

func TestIsBot(t *testing.T) {
	if !IsBot("bot-2") {
		t.Fatal("bot-2 should be recognised")
	}
	if IsBot("u1") {
		t.Fatal("u1 should not be recognised")
	}
}

func TestAgentBidOpensOnce(t *testing.T) {
	agent, _ := NewAgent("bot-1")
	game := testGame(nil)

	bid := agent.Bid(game)
	if bid.IsPass() {
		t.Fatal("agent should open when nobody has bid")
	}
	if bid.Trump != domain.SuitClubs || bid.Level != 1 {
		t.Fatalf("opening bid = %s%d, want c1", bid.Trump, bid.Level)
	}

	game.BidSequence = append(game.BidSequence, domain.Bid{PlayerID: "u1", Trump: domain.SuitHearts, Level: 2})
	if !agent.Bid(game).IsPass() {
		t.Fatal("agent should pass once a real bid exists")
	}
}

func TestAgentFollowsLedSuitLow(t *testing.T) {
	agent, _ := NewAgent("bot-1")
	game := testGame([]domain.Card{
		{Suit: domain.SuitHearts, Rank: domain.RankKing},
		{Suit: domain.SuitHearts, Rank: 4},
		{Suit: domain.SuitSpades, Rank: 2},
	})
	game.Trump = domain.SuitSpades
	game.CurrentTrick = []domain.PlayedCard{
		{PlayerID: "u1", Card: domain.Card{Suit: domain.SuitHearts, Rank: 9}},
	}

	card, err := agent.Play(game)
	if err != nil {
		t.Fatalf("play error: %v", err)
	}
	if card != (domain.Card{Suit: domain.SuitHearts, Rank: 4}) {
		t.Fatalf("card = %+v, want lowest heart", card)
	}
}

func TestAgentDiscardsWhenVoidInLedSuit(t *testing.T) {
	agent, _ := NewAgent("bot-1")
	game := testGame([]domain.Card{
		{Suit: domain.SuitClubs, Rank: 8},
		{Suit: domain.SuitSpades, Rank: 3},
	})
	game.Trump = domain.SuitSpades
	game.CurrentTrick = []domain.PlayedCard{
		{PlayerID: "u1", Card: domain.Card{Suit: domain.SuitHearts, Rank: 9}},
	}

	card, err := agent.Play(game)
	if err != nil {
		t.Fatalf("play error: %v", err)
	}
	if card != (domain.Card{Suit: domain.SuitSpades, Rank: 3}) {
		t.Fatalf("card = %+v, want lowest rank overall", card)
	}
}

func TestAgentAvoidsLeadingTrumpUntilBroken(t *testing.T) {
	agent, _ := NewAgent("bot-1")
	game := testGame([]domain.Card{
		{Suit: domain.SuitSpades, Rank: 2},
		{Suit: domain.SuitDiamonds, Rank: 10},
	})
	game.Trump = domain.SuitSpades

	card, err := agent.Play(game)
	if err != nil {
		t.Fatalf("play error: %v", err)
	}
	if card.Suit == domain.SuitSpades {
		t.Fatal("agent led trump before it was broken")
	}

	game.IsTrumpBroken = true
	card, err = agent.Play(game)
	if err != nil {
		t.Fatalf("play error: %v", err)
	}
	if card != (domain.Card{Suit: domain.SuitSpades, Rank: 2}) {
		t.Fatalf("card = %+v, want lowest rank once broken", card)
	}
}

func TestAgentPartnerCardNotInOwnHand(t *testing.T) {
	agent, _ := NewAgent("bot-1")
	game := testGame([]domain.Card{
		{Suit: domain.SuitHearts, Rank: domain.RankAce},
		{Suit: domain.SuitHearts, Rank: domain.RankKing},
	})
	game.Trump = domain.SuitHearts

	card := agent.PartnerCard(game)
	if card.Suit != domain.SuitHearts {
		t.Fatalf("partner card suit = %s, want trump suit", card.Suit)
	}
	if card.Rank != domain.RankQueen {
		t.Fatalf("partner card = %+v, want queen of hearts", card)
	}
}

func TestAgentPartnerCardNoTrumpFallsBackToSpades(t *testing.T) {
	agent, _ := NewAgent("bot-1")
	game := testGame(nil)
	game.Trump = domain.SuitNoTrump

	card := agent.PartnerCard(game)
	if card != (domain.Card{Suit: domain.SuitSpades, Rank: domain.RankAce}) {
		t.Fatalf("partner card = %+v, want ace of spades", card)
	}
}
