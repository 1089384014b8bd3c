package app

import (
	"errors"
	"math/rand"
	"time"

	"bridge/internal/domain"
	"bridge/internal/ports"
)

var (
	ErrInvalidPhase     = errors.New("action not valid in current phase")
	ErrOutOfTurn        = errors.New("acting player is not at current position")
	ErrCardNotInHand    = errors.New("card not in player's hand")
	ErrCardNotFound     = errors.New("nominated card not held by any player")
	ErrPlayerMismatch   = errors.New("channel members do not match seated players")
	ErrUnknownPlayer    = errors.New("player not seated in this game")
	ErrWrongPlayerCount = errors.New("game requires exactly four players")
)

// Options tune engine behaviour per deployment.
type Options struct {
	// PartnerSelection enables the explicit partner nomination phase after
	// bidding closes. When disabled the game moves straight to play.
	PartnerSelection bool
	// DealMaxAttempts caps the rejection-sampling deal loop; zero means
	// unbounded.
	DealMaxAttempts int
}

// Service contains the floating bridge use-cases operating on the Game
// aggregate. Each call is a short, synchronous transformation; on error the
// aggregate is left untouched.
type Service struct {
	rng  *rand.Rand
	opts Options
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand, opts Options) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, opts: opts}
}

// CreateGame deals valid hands to the channel members in join order and
// opens bidding at the requesting player's seat. Emits the started status
// and the full init snapshot.
func (s *Service) CreateGame(roomID string, members []ports.ChannelMember, startUserID string) (*domain.Game, []Event, error) {
	if len(members) != domain.NumPlayers {
		return nil, nil, ErrWrongPlayerCount
	}

	hands, err := domain.DealValidHands(s.rng, s.opts.DealMaxAttempts)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	players := domain.AssignToPlayers(ids, hands)
	for i, m := range members {
		players[i].Username = m.Username
	}

	game := &domain.Game{
		RoomID:  roomID,
		Players: players,
		Phase:   domain.PhaseBidding,
	}
	start := game.PositionOf(startUserID)
	if start < 0 {
		return nil, nil, ErrUnknownPlayer
	}
	game.CurrentPosition = start

	events := []Event{
		{Kind: EventGameStatus, Payload: GameStatusPayload{Status: StatusStarted}},
		{Kind: EventGameInit, Payload: GameInitPayload{GameData: game}},
	}
	return game, events, nil
}

// SubmitBid appends one bidding-log entry for the player at the current
// position. While bidding stays open the turn rotates one seat; when it
// closes the winning bid fixes trump and level and the winner's seat takes
// the turn, moving to partner selection (or straight to play when the phase
// is disabled).
func (s *Service) SubmitBid(game *domain.Game, bid domain.Bid) ([]Event, error) {
	if game.Phase != domain.PhaseBidding {
		return nil, ErrInvalidPhase
	}
	if bid.PlayerID != game.CurrentPlayer().UserID {
		return nil, ErrOutOfTurn
	}

	game.BidSequence = append(game.BidSequence, bid)
	if !bid.IsPass() {
		b := bid
		game.LatestBid = &b
	}

	winning, open := domain.ResolveBidding(game.BidSequence)
	if open {
		game.CurrentPosition = (game.CurrentPosition + 1) % len(game.Players)
	} else {
		w := *winning
		game.LatestBid = &w
		game.Trump = w.Trump
		game.Level = w.Level
		game.CurrentPosition = game.PositionOf(w.PlayerID)
		if s.opts.PartnerSelection {
			game.Phase = domain.PhasePartnerSelection
		} else {
			game.Phase = domain.PhasePlaying
		}
	}

	return []Event{turnEvent(game)}, nil
}

// ChoosePartner resolves the secret partner from the nominated card: the
// player whose hand holds it becomes the ally (including the bid winner
// itself, if self-nominated).
func (s *Service) ChoosePartner(game *domain.Game, card domain.Card) ([]Event, error) {
	if game.Phase != domain.PhasePartnerSelection {
		return nil, ErrInvalidPhase
	}
	holder := game.HolderOf(card)
	if holder == nil {
		return nil, ErrCardNotFound
	}

	game.Partner = &domain.Partner{PlayerID: holder.UserID, Card: card}
	game.IsPartnerChosen = true
	game.Phase = domain.PhasePlaying

	return []Event{turnEvent(game)}, nil
}

// PlayCard moves one card from the acting player's hand into the current
// trick. A completed trick is resolved, collected by its winner, and the
// winner's seat leads the next one; when every hand is empty the round is
// complete.
func (s *Service) PlayCard(game *domain.Game, userID string, card domain.Card) ([]Event, error) {
	if game.Phase != domain.PhasePlaying {
		return nil, ErrInvalidPhase
	}
	pos := game.PositionOf(userID)
	if pos < 0 {
		return nil, ErrUnknownPlayer
	}
	if pos != game.CurrentPosition {
		return nil, ErrOutOfTurn
	}

	player := game.Players[pos]
	hand, ok := domain.RemoveCard(player.Hand, card)
	if !ok {
		return nil, ErrCardNotInHand
	}
	player.Hand = hand

	game.CurrentTrick = append(game.CurrentTrick, domain.PlayedCard{PlayerID: userID, Card: card})
	if game.Trump != domain.SuitNoTrump && card.Suit == game.Trump {
		game.IsTrumpBroken = true
	}
	game.CurrentPosition = (game.CurrentPosition + 1) % len(game.Players)

	if len(game.CurrentTrick) == len(game.Players) {
		winner := domain.ResolveTrick(game.CurrentTrick, game.Trump)
		winnerPos := game.PositionOf(winner.PlayerID)
		game.Players[winnerPos].Tricks = append(game.Players[winnerPos].Tricks, game.CurrentTrick)
		game.CurrentTrick = nil
		game.CurrentPosition = winnerPos
		game.RoundNo++
		if game.AllHandsEmpty() {
			game.Phase = domain.PhaseRoundComplete
		}
	}

	return []Event{turnEvent(game)}, nil
}

// Resume validates that the currently connected channel members are exactly
// the seated players (order-independent) and re-broadcasts the snapshot.
func (s *Service) Resume(game *domain.Game, members []ports.ChannelMember) ([]Event, error) {
	if len(members) != len(game.Players) {
		return nil, ErrPlayerMismatch
	}
	seated := make(map[string]bool, len(game.Players))
	for _, p := range game.Players {
		seated[p.UserID] = true
	}
	for _, m := range members {
		if !seated[m.ID] {
			return nil, ErrPlayerMismatch
		}
		delete(seated, m.ID)
	}
	if len(seated) != 0 {
		return nil, ErrPlayerMismatch
	}

	return []Event{
		{Kind: EventGameStatus, Payload: GameStatusPayload{Status: StatusResumed}},
		{Kind: EventGameInit, Payload: GameInitPayload{GameData: game}},
	}, nil
}

func turnEvent(game *domain.Game) Event {
	return Event{Kind: EventGameTurn, Payload: GameTurnPayload{GameData: game}}
}
