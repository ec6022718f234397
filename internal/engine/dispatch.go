package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/dkaeza/reactobot/internal/store"
)

// dispatchTimeout bounds every outbound send so a slow network call never
// blocks other inbound message processing
const dispatchTimeout = 10 * time.Second

// Sender is the narrow connector capability the dispatcher performs
// reactions through. The Discord bot implements it; tests use a fake
type Sender interface {
	// SendReply posts text as a reply to the given message
	SendReply(ctx context.Context, channelID, messageID, text string) error

	// AddReaction attaches an emoji reaction to the given message
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
}

// Dispatcher maps a reaction's type to the concrete outbound action
type Dispatcher struct {
	sender Sender
}

// NewDispatcher creates a dispatcher performing actions through sender
func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Dispatch performs the configured action for a matched reaction. Send
// failures surface to the caller; the dispatcher never suppresses them
func (d *Dispatcher) Dispatch(ctx context.Context, reaction *store.Reaction, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	switch reaction.Type {
	case store.TypeMessage:
		return d.sender.SendReply(ctx, msg.ChannelID, msg.MessageID, reaction.Response)
	case store.TypeEmoji:
		return d.sender.AddReaction(ctx, msg.ChannelID, msg.MessageID, reaction.Response)
	case store.TypeCommand:
		// Command reactions only echo their response text
		return d.sender.SendReply(ctx, msg.ChannelID, msg.MessageID, reaction.Response)
	default:
		return fmt.Errorf("unknown reaction type %q", reaction.Type)
	}
}
