// Package engine implements the keyword-reaction matching engine: it scans
// incoming messages against the stored rule set, fires at most one reaction
// per message, and records the outcome in the event log.
package engine

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dkaeza/reactobot/internal/store"
)

// Message carries the fields of an inbound chat message the engine needs.
// It deliberately knows nothing about the underlying chat platform
type Message struct {
	ChannelID string
	MessageID string
	Content   string

	AuthorBot     bool // message was authored by a bot account
	DirectMessage bool // message arrived outside a guild channel
	CanSend       bool // the connector may post in the source channel
}

// Engine evaluates incoming messages against the reaction store
type Engine struct {
	store      store.Store
	dispatcher *Dispatcher
}

// New creates a matching engine backed by the given store and sender
func New(s store.Store, sender Sender) *Engine {
	return &Engine{
		store:      s,
		dispatcher: NewDispatcher(sender),
	}
}

// Evaluate scans the rule set against the message and fires the first rule
// whose keyword appears in the text as a case-insensitive substring. At most
// one reaction fires per message. The matched rule is returned, or nil when
// nothing fired.
//
// A dispatch failure is recorded as an error event and is not retried; the
// rule's LastTriggered timestamp reflects the attempt either way
func (e *Engine) Evaluate(ctx context.Context, msg Message) (*store.Reaction, error) {
	// Never react to other bots, DMs, or channels we cannot post in
	if msg.AuthorBot || msg.DirectMessage || !msg.CanSend {
		return nil, nil
	}

	reactions, err := e.store.Reactions()
	if err != nil {
		return nil, fmt.Errorf("failed to load reactions: %w", err)
	}

	content := strings.ToLower(msg.Content)
	for i := range reactions {
		reaction := &reactions[i]
		if !strings.Contains(content, strings.ToLower(reaction.Keyword)) {
			continue
		}

		// First match wins, in store iteration order
		if _, err := e.store.TouchReaction(reaction.ID); err != nil {
			// Rule deleted between the scan and the touch; nothing to fire
			log.Printf("[ENGINE]: could not touch reaction %d: %v", reaction.ID, err)
			return nil, nil
		}

		e.addEvent(store.EventReactionTriggered, fmt.Sprintf("Reaction %q triggered", reaction.Keyword))

		if err := e.dispatcher.Dispatch(ctx, reaction, msg); err != nil {
			e.addEvent(store.EventError, fmt.Sprintf("Failed to dispatch reaction %q: %v", reaction.Keyword, err))
		}

		return reaction, nil
	}

	return nil, nil
}

// addEvent appends an event, logging instead of failing when the store
// cannot record it
func (e *Engine) addEvent(typ, message string) {
	if _, err := e.store.AddEvent(typ, message); err != nil {
		log.Printf("[ENGINE]: could not record %s event: %v", typ, err)
	}
}
