package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig tunes engine behaviour per deployment.
type GameConfig struct {
	// PartnerSelectionEnabled turns on the explicit partner nomination phase
	// after bidding closes. Some deployments skip it and go straight to play.
	PartnerSelectionEnabled bool `json:"partner_selection_enabled"`
	// DealMaxAttempts caps the redeal loop; zero keeps it unbounded.
	DealMaxAttempts int `json:"deal_max_attempts"`
	// BotsEnabled allows bot agents to occupy seats and act on their turns.
	BotsEnabled bool `json:"bots_enabled"`
	// BotIdentitiesPath points at the bot roster JSON file.
	BotIdentitiesPath string `json:"bot_identities_path"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// DefaultGameConfig returns the configuration used when no file is provided.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		PartnerSelectionEnabled: true,
		BotIdentitiesPath:       "data/bot_identities.json",
	}
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := DefaultGameConfig()
		if err := json.Unmarshal(data, c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, or the defaults when no
// file was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return DefaultGameConfig()
	}
	return cfg
}
