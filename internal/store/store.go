package store

import (
	"errors"
	"fmt"
	"time"
)

// ReactionType enumerates the supported reaction behaviors
type ReactionType string

const (
	// TypeMessage sends the response as a reply to the triggering message
	TypeMessage ReactionType = "message"
	// TypeEmoji attaches the response as an emoji reaction
	TypeEmoji ReactionType = "emoji"
	// TypeCommand echoes the response as a reply (no command execution)
	TypeCommand ReactionType = "command"
)

// Valid reports whether t is one of the supported reaction types
func (t ReactionType) Valid() bool {
	switch t {
	case TypeMessage, TypeEmoji, TypeCommand:
		return true
	}
	return false
}

// Sentinel errors returned by store operations
var (
	ErrNotFound   = errors.New("record not found")
	ErrValidation = errors.New("invalid input")
)

// Reaction is a stored keyword-to-response rule. The id is assigned on
// creation and never reused; LastTriggered is bumped every time the rule
// matches an incoming message
type Reaction struct {
	ID            int          `json:"id"`
	Keyword       string       `json:"keyword"`
	Response      string       `json:"response"`
	Type          ReactionType `json:"type"`
	LastTriggered *time.Time   `json:"lastTriggered"`
}

// ReactionPatch carries a partial update for a reaction. Nil fields are
// left untouched by UpdateReaction
type ReactionPatch struct {
	Keyword  *string
	Response *string
	Type     *ReactionType
}

// Event is an append-only observability record. Events are never mutated
// or deleted after creation
type Event struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Well-known event type tags. The tag set is open; these are the ones the
// bot and API emit themselves
const (
	EventBotStart          = "bot_start"
	EventSlashCommands     = "slash_commands"
	EventMemberJoin        = "member_join"
	EventCommandUsed       = "command_used"
	EventReactionTriggered = "reaction_triggered"
	EventReactionCreated   = "reaction_created"
	EventReactionUpdated   = "reaction_updated"
	EventReactionDeleted   = "reaction_deleted"
	EventError             = "error"
)

// BotSettings is the singleton settings record driving the activity text
type BotSettings struct {
	ID             int    `json:"id"`
	ActivityPrefix string `json:"activityPrefix"`
	ActivitySuffix string `json:"activitySuffix"`
	IsOnline       bool   `json:"isOnline"`
}

// SettingsPatch carries a partial settings update. Nil fields are merged
// away, never replacing the whole record
type SettingsPatch struct {
	ActivityPrefix *string
	ActivitySuffix *string
	IsOnline       *bool
}

// DefaultEventLimit is how many events Events returns when the caller
// passes a non-positive limit
const DefaultEventLimit = 10

// Store handles storage and retrieval of reactions, events, and the bot
// settings singleton. Mutations are serialized by the implementation so the
// store is safe to share between the Discord handlers and the HTTP API.
//
// The store never writes to the event log on its own; callers append events
// after a successful mutation
type Store interface {
	// Reactions returns all reactions in insertion order
	Reactions() ([]Reaction, error)

	// Reaction returns a single reaction by id, or ErrNotFound
	Reaction(id int) (*Reaction, error)

	// CreateReaction validates the input, assigns the next id, sets
	// LastTriggered to the creation time, and stores the new rule
	CreateReaction(keyword, response string, typ ReactionType) (*Reaction, error)

	// UpdateReaction merges the provided fields into an existing reaction,
	// or returns ErrNotFound. Field-level validation is the caller's job
	UpdateReaction(id int, patch ReactionPatch) (*Reaction, error)

	// TouchReaction sets LastTriggered to the current time, or returns
	// ErrNotFound. Used by the matching engine after a rule fires
	TouchReaction(id int) (*Reaction, error)

	// DeleteReaction removes a reaction and reports whether a record was
	// actually removed
	DeleteReaction(id int) (bool, error)

	// Settings returns the settings singleton
	Settings() (*BotSettings, error)

	// UpdateSettings merges the provided fields into the settings singleton
	UpdateSettings(patch SettingsPatch) (*BotSettings, error)

	// AddEvent assigns an id and timestamp and appends a new event
	AddEvent(typ, message string) (*Event, error)

	// Events returns the most recent events, newest first, capped at limit
	Events(limit int) ([]Event, error)
}

// validateReaction checks the invariants every stored rule must satisfy
func validateReaction(keyword, response string, typ ReactionType) error {
	if keyword == "" {
		return fmt.Errorf("%w: keyword cannot be empty", ErrValidation)
	}
	if response == "" {
		return fmt.Errorf("%w: response cannot be empty", ErrValidation)
	}
	if !typ.Valid() {
		return fmt.Errorf("%w: type must be one of message, emoji, command", ErrValidation)
	}
	return nil
}
