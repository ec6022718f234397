// Package presence tracks live guild metrics and derives the bot's
// human-readable activity text from them and the stored settings.
package presence

import (
	"fmt"
	"log"
	"sync"

	"github.com/dkaeza/reactobot/internal/store"
)

// Setter is the connector capability that displays the activity text on the
// bot account. It is attached once the connector is ready
type Setter interface {
	SetPresence(activity string) error
}

// Activity formats the displayed status string from its inputs
func Activity(settings *store.BotSettings, memberCount int, guildName string) string {
	return fmt.Sprintf("%s %d %s %s", settings.ActivityPrefix, memberCount, settings.ActivitySuffix, guildName)
}

// Tracker holds the last known guild metrics. Values are retained across
// transient disconnects rather than reset to zero
type Tracker struct {
	mu          sync.RWMutex
	memberCount int
	guildName   string
	setter      Setter
}

// NewTracker creates a tracker with no guild data yet
func NewTracker() *Tracker {
	return &Tracker{guildName: "Mon Serveur"}
}

// Attach binds the presence-setting capability. Before this is called,
// Refresh is a silent no-op
func (t *Tracker) Attach(setter Setter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setter = setter
}

// SetGuild records the latest connector-reported guild metrics
func (t *Tracker) SetGuild(memberCount int, guildName string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.memberCount = memberCount
	if guildName != "" {
		t.guildName = guildName
	}
}

// Snapshot returns the last known member count and guild name
func (t *Tracker) Snapshot() (int, string) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.memberCount, t.guildName
}

// Activity formats the displayed status string from the given settings and
// the last known guild metrics
func (t *Tracker) Activity(settings *store.BotSettings) string {
	count, name := t.Snapshot()
	return Activity(settings, count, name)
}

// Refresh recomputes the activity text and pushes it through the attached
// setter. Without a connector it does nothing
func (t *Tracker) Refresh(settings *store.BotSettings) {
	t.mu.RLock()
	setter := t.setter
	t.mu.RUnlock()

	if setter == nil {
		return
	}

	if err := setter.SetPresence(t.Activity(settings)); err != nil {
		log.Printf("[PRESENCE]: could not update activity: %v", err)
	}
}
