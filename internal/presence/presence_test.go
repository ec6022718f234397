package presence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaeza/reactobot/internal/store"
)

// fakeSetter records the last pushed activity text
type fakeSetter struct {
	last  string
	calls int
	fail  error
}

func (f *fakeSetter) SetPresence(activity string) error {
	if f.fail != nil {
		return f.fail
	}
	f.last = activity
	f.calls++
	return nil
}

func settingsFixture() *store.BotSettings {
	return &store.BotSettings{
		ID:             1,
		ActivityPrefix: "Regarde",
		ActivitySuffix: "sur",
		IsOnline:       true,
	}
}

func TestActivity(t *testing.T) {
	assert.Equal(t, "Regarde 42 sur Mon Serveur", Activity(settingsFixture(), 42, "Mon Serveur"))
}

func TestTrackerSetGuild(t *testing.T) {
	tr := NewTracker()

	t.Run("records metrics", func(t *testing.T) {
		tr.SetGuild(42, "Le Serveur")

		count, name := tr.Snapshot()
		assert.Equal(t, 42, count)
		assert.Equal(t, "Le Serveur", name)
	})

	t.Run("keeps the last known name on blank updates", func(t *testing.T) {
		tr.SetGuild(40, "")

		count, name := tr.Snapshot()
		assert.Equal(t, 40, count)
		assert.Equal(t, "Le Serveur", name)
	})
}

func TestTrackerActivity(t *testing.T) {
	tr := NewTracker()
	tr.SetGuild(7, "Test")

	assert.Equal(t, "Regarde 7 sur Test", tr.Activity(settingsFixture()))
}

func TestTrackerRefresh(t *testing.T) {
	t.Run("no-op before a connector is attached", func(t *testing.T) {
		tr := NewTracker()
		// Must not panic or block
		tr.Refresh(settingsFixture())
	})

	t.Run("pushes through the attached setter", func(t *testing.T) {
		tr := NewTracker()
		tr.SetGuild(7, "Test")

		setter := &fakeSetter{}
		tr.Attach(setter)
		tr.Refresh(settingsFixture())

		require.Equal(t, 1, setter.calls)
		assert.Equal(t, "Regarde 7 sur Test", setter.last)
	})

	t.Run("setter failure is swallowed", func(t *testing.T) {
		tr := NewTracker()
		tr.Attach(&fakeSetter{fail: errors.New("gateway down")})
		tr.Refresh(settingsFixture())
	})
}
