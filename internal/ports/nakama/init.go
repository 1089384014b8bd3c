package nakama

import (
	"context"
	"database/sql"

	"bridge/internal/app"
	"bridge/internal/bot"
	"bridge/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires config, services, adapters and RPCs for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	if path := env["bridge_config_path"]; path != "" {
		if err := config.LoadGameConfig(path); err != nil {
			return err
		}
	}
	cfg := config.GetGameConfig()

	if cfg.BotsEnabled {
		if err := bot.LoadIdentities(cfg.BotIdentitiesPath); err != nil {
			return err
		}
	}

	secret := env["bridge_channel_secret"]
	issuer := env["bridge_channel_issuer"]
	if secret == "" || issuer == "" {
		logger.Warn("Channel token credentials missing from env; channel_token RPC will reject requests.")
	}

	svc := app.NewService(nil, app.Options{
		PartnerSelection: cfg.PartnerSelectionEnabled,
		DealMaxAttempts:  cfg.DealMaxAttempts,
	})
	handlers := NewHandlers(
		svc,
		app.NewChannelTokenService(secret, issuer),
		NewNakamaChannelAdapter(nk),
		NewNakamaStorageAdapter(nk),
		NewNakamaBroadcastAdapter(nk),
		cfg.BotsEnabled,
	)

	rpcs := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcGameCreate:   handlers.GameCreate,
		RpcGameBid:      handlers.GameBid,
		RpcGamePartner:  handlers.GamePartner,
		RpcGameTurn:     handlers.GameTurn,
		RpcGameResume:   handlers.GameResume,
		RpcGameGet:      handlers.GameGet,
		RpcChannelToken: handlers.ChannelToken,
	}
	for id, fn := range rpcs {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return err
		}
	}

	logger.Info("Bridge Go module loaded.")
	return nil
}
