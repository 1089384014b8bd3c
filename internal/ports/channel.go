package ports

import "context"

// ChannelMember is one subscriber of a realtime channel, in join order.
type ChannelMember struct {
	ID       string
	Username string
}

// ChannelPort enumerates the current members of a realtime channel. The
// engine consults it once at game creation to fix seat order, and on resume
// to validate membership equality.
type ChannelPort interface {
	ListMembers(ctx context.Context, channel string) ([]ChannelMember, error)
}
