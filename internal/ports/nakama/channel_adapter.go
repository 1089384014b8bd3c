package nakama

import (
	"context"
	"fmt"

	"bridge/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// streamLister is the slice of runtime.NakamaModule the channel adapter
// needs; narrow so tests can fake it.
type streamLister interface {
	StreamUserList(mode uint8, subject, subcontext, label string, includeHidden, includeNotHidden bool) ([]runtime.Presence, error)
}

// NakamaChannelAdapter implements ports.ChannelPort over Nakama streams.
// Each room channel is one stream keyed by its label.
type NakamaChannelAdapter struct {
	nk streamLister
}

// NewNakamaChannelAdapter creates a new channel adapter.
func NewNakamaChannelAdapter(nk streamLister) *NakamaChannelAdapter {
	return &NakamaChannelAdapter{nk: nk}
}

// ListMembers returns the channel's current subscribers in stream order,
// which Nakama keeps as join order.
func (a *NakamaChannelAdapter) ListMembers(ctx context.Context, channel string) ([]ports.ChannelMember, error) {
	presences, err := a.nk.StreamUserList(streamModeRoom, "", "", channel, true, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list stream users for %s: %w", channel, err)
	}

	members := make([]ports.ChannelMember, 0, len(presences))
	for _, p := range presences {
		members = append(members, ports.ChannelMember{
			ID:       p.GetUserId(),
			Username: p.GetUsername(),
		})
	}
	return members, nil
}
