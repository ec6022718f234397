package sdk

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaeza/reactobot/internal/api"
	"github.com/dkaeza/reactobot/internal/presence"
	"github.com/dkaeza/reactobot/internal/store"
	"github.com/dkaeza/reactobot/pkg/utils"
)

// newTestClient spins up the dashboard API on an in-memory store and
// returns a client pointed at it
func newTestClient(t *testing.T) (*Client, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.NewMemoryStore()
	tracker := presence.NewTracker()
	tracker.SetGuild(3, "Mon Serveur")

	server := httptest.NewServer(api.New(utils.NewConfig(nil), api.Dependencies{
		Store:   s,
		Tracker: tracker,
	}))
	t.Cleanup(server.Close)

	return NewClient(server.URL), s
}

func TestClientStatus(t *testing.T) {
	client, _ := newTestClient(t)

	status, err := client.Status(context.Background())
	require.NoError(t, err)

	assert.True(t, status.IsOnline)
	assert.Equal(t, 3, status.MemberCount)
	assert.Equal(t, "Mon Serveur", status.GuildName)
	assert.Equal(t, "Regarde 3 sur Mon Serveur", status.Activity)
}

func TestClientSettings(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	settings, err := client.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Regarde", settings.ActivityPrefix)

	prefix := "Surveille"
	updated, err := client.UpdateSettings(ctx, &UpdateSettingsRequest{ActivityPrefix: &prefix})
	require.NoError(t, err)
	assert.Equal(t, "Surveille", updated.ActivityPrefix)
	assert.Equal(t, "sur", updated.ActivitySuffix)
}

func TestClientReactions(t *testing.T) {
	client, s := newTestClient(t)
	ctx := context.Background()

	created, err := client.CreateReaction(ctx, &CreateReactionRequest{
		Keyword:  "Bonjour",
		Response: "Salut !",
		Type:     "message",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	reactions, err := client.Reactions(ctx)
	require.NoError(t, err)
	require.Len(t, reactions, 1)

	keyword := "Coucou"
	updated, err := client.UpdateReaction(ctx, created.ID, &UpdateReactionRequest{Keyword: &keyword})
	require.NoError(t, err)
	assert.Equal(t, "Coucou", updated.Keyword)

	fetched, err := client.Reaction(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coucou", fetched.Keyword)

	require.NoError(t, client.DeleteReaction(ctx, created.ID))

	remaining, err := s.Reactions()
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// Deleting again surfaces the 404
	assert.Error(t, client.DeleteReaction(ctx, created.ID))
}

func TestClientEvents(t *testing.T) {
	client, s := newTestClient(t)

	for i := 0; i < 5; i++ {
		_, err := s.AddEvent(store.EventMemberJoin, "joined")
		require.NoError(t, err)
	}

	events, err := client.Events(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 5, events[0].ID)
}
