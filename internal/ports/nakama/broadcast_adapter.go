package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"bridge/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// streamSender is the slice of runtime.NakamaModule the broadcast adapter
// needs; narrow so tests can fake it.
type streamSender interface {
	StreamSend(mode uint8, subject, subcontext, label, data string, presences []runtime.Presence, reliable bool) error
}

// eventEnvelope is the wire shape of every broadcast: the event name the
// client subscribes on plus its payload.
type eventEnvelope struct {
	Name string `json:"name"`
	Data any    `json:"data"`
}

// NakamaBroadcastAdapter implements ports.Broadcaster by sending named JSON
// envelopes to every subscriber of the room's stream.
type NakamaBroadcastAdapter struct {
	nk streamSender
}

// NewNakamaBroadcastAdapter creates a new broadcast adapter.
func NewNakamaBroadcastAdapter(nk streamSender) *NakamaBroadcastAdapter {
	return &NakamaBroadcastAdapter{nk: nk}
}

// Publish sends one named event to all subscribers of the channel.
func (a *NakamaBroadcastAdapter) Publish(ctx context.Context, channel, name string, payload any) error {
	data, err := json.Marshal(eventEnvelope{Name: name, Data: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", name, err)
	}

	// Nil presences targets the whole stream.
	if err := a.nk.StreamSend(streamModeRoom, "", "", channel, string(data), nil, true); err != nil {
		return fmt.Errorf("failed to send event %s to %s: %w", name, channel, err)
	}
	return nil
}

// PublishAll sends a batch of events in order. Delivery is best effort; the
// first send failure aborts the rest.
func (a *NakamaBroadcastAdapter) PublishAll(ctx context.Context, batch []ports.Broadcast) error {
	for _, b := range batch {
		if err := a.Publish(ctx, b.Channel, b.Name, b.Payload); err != nil {
			return err
		}
	}
	return nil
}
