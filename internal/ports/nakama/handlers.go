package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"bridge/internal/app"
	"bridge/internal/bot"
	"bridge/internal/domain"
	"bridge/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// maxBotTurns bounds one bot-driving burst. A full game needs at most a few
// dozen consecutive bot actions; the cap only guards against a stuck loop.
const maxBotTurns = 128

// Handlers owns the RPC surface. It talks to the engine through ports so
// tests can run the full flow against in-memory fakes.
type Handlers struct {
	svc     *app.Service
	tokens  *app.ChannelTokenService
	channel ports.ChannelPort
	games   ports.GameRepository
	events  ports.Broadcaster
	botsOn  bool
	locks   *gameLocks
}

// NewHandlers wires the RPC handlers to their collaborators.
func NewHandlers(svc *app.Service, tokens *app.ChannelTokenService, channel ports.ChannelPort, games ports.GameRepository, events ports.Broadcaster, botsOn bool) *Handlers {
	return &Handlers{
		svc:     svc,
		tokens:  tokens,
		channel: channel,
		games:   games,
		events:  events,
		botsOn:  botsOn,
		locks:   newGameLocks(),
	}
}

type createRequest struct {
	RoomID string `json:"roomId"`
}

type bidRequest struct {
	GameID string     `json:"gameId"`
	Bid    domain.Bid `json:"bid"`
}

type cardRequest struct {
	GameID string      `json:"gameId"`
	Card   domain.Card `json:"card"`
}

type gameRequest struct {
	GameID string `json:"gameId"`
}

type channelTokenRequest struct {
	Channel string `json:"channel"`
}

type gameResponse struct {
	GameID   string       `json:"gameId"`
	GameData *domain.Game `json:"gameData"`
}

// GameCreate starts a new game for the room's current channel members and
// stores it. The caller's seat opens the bidding.
//
// Payload: {"roomId": "..."}
// Returns: {"gameId": "...", "gameData": {...}}
func (h *Handlers) GameCreate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req createRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.RoomID == "" {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	channel := channelName(req.RoomID)
	members, err := h.channel.ListMembers(ctx, channel)
	if err != nil {
		logger.Error("GameCreate [Room:%s]: failed to list members: %v", req.RoomID, err)
		return "", runtime.NewError("internal error", codeInternal)
	}

	game, events, err := h.svc.CreateGame(req.RoomID, members, userID)
	if err != nil {
		return "", rpcError(err)
	}

	gameID, err := h.games.Insert(ctx, game)
	if err != nil {
		logger.Error("GameCreate [Room:%s]: failed to insert game: %v", req.RoomID, err)
		return "", rpcError(err)
	}

	if err := h.publishEvents(ctx, channel, gameID, events); err != nil {
		logger.Error("GameCreate [Game:%s]: failed to publish events: %v", gameID, err)
	}

	if h.botsOn {
		unlock := h.locks.lock(gameID)
		defer unlock()
		if err := h.driveBots(ctx, logger, gameID, channel); err != nil {
			logger.Error("GameCreate [Game:%s]: bot drive failed: %v", gameID, err)
		}
	}

	return marshalGame(gameID, game)
}

// GameBid records one bidding-log entry for the caller.
//
// Payload: {"gameId": "...", "bid": {"trump": "h", "level": 2}} (empty bid passes)
func (h *Handlers) GameBid(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req bidRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.GameID == "" {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}
	if userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string); userID != "" {
		req.Bid.PlayerID = userID
	}

	return h.apply(ctx, logger, req.GameID, func(game *domain.Game) ([]app.Event, error) {
		return h.svc.SubmitBid(game, req.Bid)
	})
}

// GamePartner nominates the secret partner card for the bid winner.
//
// Payload: {"gameId": "...", "card": {"suit": "s", "rank": 14}}
func (h *Handlers) GamePartner(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req cardRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.GameID == "" {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}

	return h.apply(ctx, logger, req.GameID, func(game *domain.Game) ([]app.Event, error) {
		return h.svc.ChoosePartner(game, req.Card)
	})
}

// GameTurn plays one card from the caller's hand.
//
// Payload: {"gameId": "...", "card": {"suit": "d", "rank": 9}}
func (h *Handlers) GameTurn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req cardRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.GameID == "" {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	return h.apply(ctx, logger, req.GameID, func(game *domain.Game) ([]app.Event, error) {
		return h.svc.PlayCard(game, userID, req.Card)
	})
}

// GameResume re-broadcasts the snapshot after the table reconnects, provided
// the channel members still match the seated players.
//
// Payload: {"gameId": "..."}
func (h *Handlers) GameResume(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req gameRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.GameID == "" {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}

	unlock := h.locks.lock(req.GameID)
	defer unlock()

	game, _, err := h.games.Load(ctx, req.GameID)
	if err != nil {
		return "", rpcError(err)
	}

	channel := channelName(game.RoomID)
	members, err := h.channel.ListMembers(ctx, channel)
	if err != nil {
		logger.Error("GameResume [Game:%s]: failed to list members: %v", req.GameID, err)
		return "", runtime.NewError("internal error", codeInternal)
	}

	events, err := h.svc.Resume(game, members)
	if err != nil {
		return "", rpcError(err)
	}

	if err := h.publishEvents(ctx, channel, req.GameID, events); err != nil {
		logger.Error("GameResume [Game:%s]: failed to publish events: %v", req.GameID, err)
	}
	return marshalGame(req.GameID, game)
}

// GameGet returns the stored snapshot without broadcasting anything.
//
// Payload: {"gameId": "..."}
func (h *Handlers) GameGet(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req gameRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.GameID == "" {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}

	game, _, err := h.games.Load(ctx, req.GameID)
	if err != nil {
		return "", rpcError(err)
	}
	return marshalGame(req.GameID, game)
}

// ChannelToken signs a channel subscription token for the caller. Presence
// channels additionally carry display info for the member list.
//
// Payload: {"channel": "presence-room42"}
// Returns: {"token": "..."}
func (h *Handlers) ChannelToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req channelTokenRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.Channel == "" {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	username, _ := ctx.Value(runtime.RUNTIME_CTX_USERNAME).(string)

	token, err := h.tokens.Authorize(req.Channel, userID, username)
	if err != nil {
		logger.Error("ChannelToken [User:%s]: failed to sign token: %v", userID, err)
		return "", runtime.NewError("failed to authorize channel", codeInternal)
	}

	res, _ := json.Marshal(map[string]string{"token": token})
	return string(res), nil
}

// apply runs one state transition under the game's lock: load, mutate, save
// conditionally, broadcast, then let bots take any turns they now hold.
func (h *Handlers) apply(ctx context.Context, logger runtime.Logger, gameID string, fn func(*domain.Game) ([]app.Event, error)) (string, error) {
	unlock := h.locks.lock(gameID)
	defer unlock()

	game, version, err := h.games.Load(ctx, gameID)
	if err != nil {
		return "", rpcError(err)
	}

	events, err := fn(game)
	if err != nil {
		return "", rpcError(err)
	}

	if _, err := h.games.Save(ctx, gameID, game, version); err != nil {
		return "", rpcError(err)
	}

	channel := channelName(game.RoomID)
	if err := h.publishEvents(ctx, channel, gameID, events); err != nil {
		logger.Error("apply [Game:%s]: failed to publish events: %v", gameID, err)
	}

	if h.botsOn {
		if err := h.driveBots(ctx, logger, gameID, channel); err != nil {
			logger.Error("apply [Game:%s]: bot drive failed: %v", gameID, err)
		}
	}
	return marshalGame(gameID, game)
}

// driveBots lets rostered bots act while one of them holds the turn. Caller
// must hold the game lock.
func (h *Handlers) driveBots(ctx context.Context, logger runtime.Logger, gameID, channel string) error {
	for i := 0; i < maxBotTurns; i++ {
		game, version, err := h.games.Load(ctx, gameID)
		if err != nil {
			return err
		}
		if game.Phase == domain.PhaseRoundComplete {
			return nil
		}

		current := game.CurrentPlayer()
		if current == nil || !bot.IsBot(current.UserID) {
			return nil
		}
		agent, err := bot.NewAgent(current.UserID)
		if err != nil {
			return err
		}

		var events []app.Event
		switch game.Phase {
		case domain.PhaseBidding:
			events, err = h.svc.SubmitBid(game, agent.Bid(game))
		case domain.PhasePartnerSelection:
			events, err = h.svc.ChoosePartner(game, agent.PartnerCard(game))
		case domain.PhasePlaying:
			var card domain.Card
			card, err = agent.Play(game)
			if err == nil {
				events, err = h.svc.PlayCard(game, agent.ID, card)
			}
		default:
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := h.games.Save(ctx, gameID, game, version); err != nil {
			return err
		}
		if err := h.publishEvents(ctx, channel, gameID, events); err != nil {
			logger.Error("driveBots [Game:%s]: failed to publish events: %v", gameID, err)
		}
	}
	return nil
}

// publishEvents broadcasts the transition's events, patching the record id
// into init snapshots now that it is known.
func (h *Handlers) publishEvents(ctx context.Context, channel, gameID string, events []app.Event) error {
	batch := make([]ports.Broadcast, 0, len(events))
	for _, e := range events {
		payload := e.Payload
		if init, ok := payload.(app.GameInitPayload); ok {
			init.GameID = gameID
			payload = init
		}
		batch = append(batch, ports.Broadcast{Channel: channel, Name: string(e.Kind), Payload: payload})
	}
	return h.events.PublishAll(ctx, batch)
}

// channelName maps a room id onto its presence channel.
func channelName(roomID string) string {
	return app.PresenceChannelPrefix + roomID
}

func marshalGame(gameID string, game *domain.Game) (string, error) {
	res, err := json.Marshal(gameResponse{GameID: gameID, GameData: game})
	if err != nil {
		return "", runtime.NewError("internal error", codeInternal)
	}
	return string(res), nil
}

// rpcError maps engine and port errors onto gRPC status codes.
func rpcError(err error) error {
	switch {
	case errors.Is(err, ports.ErrGameNotFound):
		return runtime.NewError("game not found", codeNotFound)
	case errors.Is(err, ports.ErrVersionConflict):
		return runtime.NewError("game was modified concurrently", codeAborted)
	case errors.Is(err, app.ErrWrongPlayerCount),
		errors.Is(err, app.ErrUnknownPlayer):
		return runtime.NewError(err.Error(), codeInvalidArgument)
	case errors.Is(err, app.ErrInvalidPhase),
		errors.Is(err, app.ErrOutOfTurn),
		errors.Is(err, app.ErrCardNotInHand),
		errors.Is(err, app.ErrCardNotFound),
		errors.Is(err, app.ErrPlayerMismatch),
		errors.Is(err, domain.ErrDealingExhausted):
		return runtime.NewError(err.Error(), codeFailedPrecondition)
	default:
		return runtime.NewError("internal error", codeInternal)
	}
}
