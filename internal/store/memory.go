package store

import (
	"sync"
	"time"
)

// eventRetention caps the in-memory event log. The oldest entries are
// trimmed once the cap is exceeded so the log cannot grow without bound
const eventRetention = 1000

// MemoryStore provides an in-memory implementation of Store. It is the
// default backend when no database is configured and is also used by tests
type MemoryStore struct {
	mutex sync.RWMutex

	reactions map[int]Reaction
	order     []int // reaction ids in insertion order
	settings  BotSettings
	events    []Event

	reactionID int
	eventID    int
}

// NewMemoryStore creates a new in-memory store with default settings
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reactions: make(map[int]Reaction),
		settings: BotSettings{
			ID:             1,
			ActivityPrefix: "Regarde",
			ActivitySuffix: "sur",
			IsOnline:       true,
		},
		reactionID: 1,
		eventID:    1,
	}
}

// Reactions returns all reactions in insertion order
func (s *MemoryStore) Reactions() ([]Reaction, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	reactions := make([]Reaction, 0, len(s.order))
	for _, id := range s.order {
		reactions = append(reactions, s.reactions[id])
	}
	return reactions, nil
}

// Reaction returns a single reaction by id
func (s *MemoryStore) Reaction(id int) (*Reaction, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	reaction, exists := s.reactions[id]
	if !exists {
		return nil, ErrNotFound
	}

	// Return a copy to avoid external mutations
	return &reaction, nil
}

// CreateReaction validates the input and stores a new rule
func (s *MemoryStore) CreateReaction(keyword, response string, typ ReactionType) (*Reaction, error) {
	if err := validateReaction(keyword, response, typ); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	reaction := Reaction{
		ID:            s.reactionID,
		Keyword:       keyword,
		Response:      response,
		Type:          typ,
		LastTriggered: &now,
	}
	s.reactionID++

	s.reactions[reaction.ID] = reaction
	s.order = append(s.order, reaction.ID)

	return &reaction, nil
}

// UpdateReaction merges the provided fields into an existing reaction
func (s *MemoryStore) UpdateReaction(id int, patch ReactionPatch) (*Reaction, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	reaction, exists := s.reactions[id]
	if !exists {
		return nil, ErrNotFound
	}

	if patch.Keyword != nil {
		reaction.Keyword = *patch.Keyword
	}
	if patch.Response != nil {
		reaction.Response = *patch.Response
	}
	if patch.Type != nil {
		reaction.Type = *patch.Type
	}

	s.reactions[id] = reaction
	return &reaction, nil
}

// TouchReaction sets LastTriggered to the current time
func (s *MemoryStore) TouchReaction(id int) (*Reaction, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	reaction, exists := s.reactions[id]
	if !exists {
		return nil, ErrNotFound
	}

	now := time.Now()
	reaction.LastTriggered = &now

	s.reactions[id] = reaction
	return &reaction, nil
}

// DeleteReaction removes a reaction and reports whether one was removed
func (s *MemoryStore) DeleteReaction(id int) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.reactions[id]; !exists {
		return false, nil
	}

	delete(s.reactions, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return true, nil
}

// Settings returns the settings singleton
func (s *MemoryStore) Settings() (*BotSettings, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	settings := s.settings
	return &settings, nil
}

// UpdateSettings merges the provided fields into the settings singleton
func (s *MemoryStore) UpdateSettings(patch SettingsPatch) (*BotSettings, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if patch.ActivityPrefix != nil {
		s.settings.ActivityPrefix = *patch.ActivityPrefix
	}
	if patch.ActivitySuffix != nil {
		s.settings.ActivitySuffix = *patch.ActivitySuffix
	}
	if patch.IsOnline != nil {
		s.settings.IsOnline = *patch.IsOnline
	}

	settings := s.settings
	return &settings, nil
}

// AddEvent appends a new event, trimming the oldest entries past the
// retention cap
func (s *MemoryStore) AddEvent(typ, message string) (*Event, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	event := Event{
		ID:        s.eventID,
		Type:      typ,
		Message:   message,
		Timestamp: time.Now(),
	}
	s.eventID++

	s.events = append(s.events, event)
	if len(s.events) > eventRetention {
		s.events = s.events[len(s.events)-eventRetention:]
	}

	return &event, nil
}

// Events returns the most recent events, newest first
func (s *MemoryStore) Events(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultEventLimit
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if limit > len(s.events) {
		limit = len(s.events)
	}

	events := make([]Event, 0, limit)
	for i := len(s.events) - 1; i >= len(s.events)-limit; i-- {
		events = append(events, s.events[i])
	}
	return events, nil
}
