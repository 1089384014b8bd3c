package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Identity is one entry in the bot roster file.
type Identity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

var (
	identities  []Identity
	identityMap map[string]Identity
	loadOnce    sync.Once
	loadErr     error
)

// LoadIdentities loads the bot roster from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}

		identityMap = make(map[string]Identity, len(identities))
		for _, id := range identities {
			if id.UserID != "" {
				identityMap[id.UserID] = id
			}
		}
	})
	return loadErr
}

// SetIdentities replaces the roster directly; used by tests and embedders
// that do not read from disk.
func SetIdentities(ids []Identity) {
	loadOnce.Do(func() {})
	identities = ids
	identityMap = make(map[string]Identity, len(ids))
	for _, id := range ids {
		if id.UserID != "" {
			identityMap[id.UserID] = id
		}
	}
}

// IsBot reports whether the user id belongs to the bot roster.
func IsBot(userID string) bool {
	_, ok := identityMap[userID]
	return ok
}

// GetIdentity returns the i-th roster entry, wrapping when the roster is
// shorter than the seat count.
func GetIdentity(i int) Identity {
	if len(identities) == 0 {
		return Identity{}
	}
	return identities[i%len(identities)]
}
