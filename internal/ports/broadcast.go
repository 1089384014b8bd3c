package ports

import "context"

// Broadcast is a single named event bound for one channel.
type Broadcast struct {
	Channel string
	Name    string
	Payload any
}

// Broadcaster fans named events out to all channel subscribers. Delivery is
// fire-and-forget, at most once; the engine never awaits acknowledgement.
type Broadcaster interface {
	Publish(ctx context.Context, channel, name string, payload any) error
	PublishAll(ctx context.Context, batch []Broadcast) error
}
