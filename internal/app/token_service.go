package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// PresenceChannelPrefix marks channels whose subscribers are enumerable as
// game participants.
const PresenceChannelPrefix = "presence-"

// ChannelTokenService signs channel subscription tokens. Presence channels
// additionally carry the subscriber's display info so other members can
// render them before any game exists.
type ChannelTokenService struct {
	secret string
	issuer string
}

func NewChannelTokenService(secret, issuer string) *ChannelTokenService {
	return &ChannelTokenService{secret: secret, issuer: issuer}
}

// Authorize issues a signed subscription token for one user on one channel.
func (s *ChannelTokenService) Authorize(channel, userID, username string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("channel token service is nil")
	}
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	if channel == "" {
		return "", fmt.Errorf("channel name is required")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("channel token config is incomplete")
	}

	claims := jwt.MapClaims{
		"iss":     s.issuer,
		"sub":     userID,
		"exp":     time.Now().Add(time.Hour * 1).Unix(),
		"channel": channel,
	}
	if strings.HasPrefix(channel, PresenceChannelPrefix) {
		claims["user_info"] = map[string]any{
			"username": username,
			"color":    UserColor(userID),
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// UserColor derives a stable display color from the user id. The hash uses
// 32-bit wrap-around so ids map to the same hue across platforms.
func UserColor(id string) string {
	h := int32(0)
	for _, r := range id {
		h = (h << 5) - h + int32(r)
	}
	return fmt.Sprintf("hsl(%d,70%%,60%%)", h%360)
}
