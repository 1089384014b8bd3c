package ports

import (
	"context"
	"errors"

	"bridge/internal/domain"
)

var (
	// ErrGameNotFound reports that no game record exists for the id.
	ErrGameNotFound = errors.New("game not found")
	// ErrVersionConflict reports a concurrent write to the same game record.
	ErrVersionConflict = errors.New("game version conflict")
)

// GameRepository persists one Game document per identifier. Each call is
// atomic; the engine never spans a transaction across calls. Save is
// conditional on the version returned by the preceding Load so that two
// near-simultaneous actions can never both succeed against the same turn.
type GameRepository interface {
	// Load returns the game and its current record version.
	Load(ctx context.Context, gameID string) (*domain.Game, string, error)
	// Save writes the game if version still matches, returning the new
	// version or ErrVersionConflict.
	Save(ctx context.Context, gameID string, game *domain.Game, version string) (string, error)
	// Insert creates a new record and returns its generated id.
	Insert(ctx context.Context, game *domain.Game) (string, error)
}
