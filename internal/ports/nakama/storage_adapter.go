package nakama

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"bridge/internal/domain"
	"bridge/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// storageAPI is the slice of runtime.NakamaModule the storage adapter needs;
// narrow so tests can fake it.
type storageAPI interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
}

// NakamaStorageAdapter implements ports.GameRepository over Nakama's storage
// engine. One game is one system-owned object; the engine's optimistic
// concurrency rides on the object version.
type NakamaStorageAdapter struct {
	nk storageAPI
}

// NewNakamaStorageAdapter creates a new storage adapter.
func NewNakamaStorageAdapter(nk storageAPI) *NakamaStorageAdapter {
	return &NakamaStorageAdapter{nk: nk}
}

// Load reads the game document and its current version.
func (a *NakamaStorageAdapter) Load(ctx context.Context, gameID string) (*domain.Game, string, error) {
	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: storageCollectionGames,
		Key:        gameID,
	}})
	if err != nil {
		return nil, "", fmt.Errorf("failed to read game %s: %w", gameID, err)
	}
	if len(objects) == 0 {
		return nil, "", ports.ErrGameNotFound
	}

	var game domain.Game
	if err := json.Unmarshal([]byte(objects[0].Value), &game); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal game %s: %w", gameID, err)
	}
	return &game, objects[0].Version, nil
}

// Save writes the game conditionally on the version read earlier. A rejected
// version check surfaces as ports.ErrVersionConflict; any other write failure
// keeps its own cause.
func (a *NakamaStorageAdapter) Save(ctx context.Context, gameID string, game *domain.Game, version string) (string, error) {
	acks, err := a.write(ctx, gameID, game, version)
	if err != nil {
		if version != "" && isVersionCheckError(err) {
			return "", fmt.Errorf("%w: game %s: %v", ports.ErrVersionConflict, gameID, err)
		}
		return "", fmt.Errorf("failed to write game %s: %w", gameID, err)
	}
	return acks[0].Version, nil
}

// isVersionCheckError recognises the storage engine's conditional-write
// rejection ("version check failed").
func isVersionCheckError(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "version check")
}

// Insert creates a new game record under a fresh id. The "*" version makes
// the write fail if the id somehow already exists.
func (a *NakamaStorageAdapter) Insert(ctx context.Context, game *domain.Game) (string, error) {
	gameID, err := newGameID()
	if err != nil {
		return "", err
	}

	if _, err := a.write(ctx, gameID, game, "*"); err != nil {
		return "", fmt.Errorf("failed to insert game %s: %w", gameID, err)
	}
	return gameID, nil
}

func (a *NakamaStorageAdapter) write(ctx context.Context, gameID string, game *domain.Game, version string) ([]*api.StorageObjectAck, error) {
	value, err := json.Marshal(game)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game %s: %w", gameID, err)
	}

	acks, err := a.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      storageCollectionGames,
		Key:             gameID,
		Value:           string(value),
		Version:         version,
		PermissionRead:  storagePermissionRead,
		PermissionWrite: storagePermissionWrite,
	}})
	if err != nil {
		return nil, err
	}
	if len(acks) == 0 {
		return nil, fmt.Errorf("storage write for game %s returned no ack", gameID)
	}
	return acks, nil
}

func newGameID() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("failed to generate game id: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}
