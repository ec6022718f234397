package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaeza/reactobot/internal/presence"
	"github.com/dkaeza/reactobot/internal/store"
	"github.com/dkaeza/reactobot/pkg/utils"
)

// newTestAPI builds a fresh engine backed by an in-memory store
func newTestAPI(t *testing.T) (*gin.Engine, store.Store, *presence.Tracker) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.NewMemoryStore()
	tracker := presence.NewTracker()
	cfg := utils.NewConfig(nil)

	engine := New(cfg, Dependencies{Store: s, Tracker: tracker})
	return engine, s, tracker
}

// perform runs a JSON request against the engine and returns the recorder
func perform(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewBuffer(b)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	engine, _, _ := newTestAPI(t)

	w := perform(engine, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetStatus(t *testing.T) {
	engine, _, tracker := newTestAPI(t)
	tracker.SetGuild(42, "Mon Serveur")

	w := perform(engine, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, true, body["isOnline"])
	assert.Equal(t, float64(42), body["memberCount"])
	assert.Equal(t, "Mon Serveur", body["guildName"])
	assert.Equal(t, "Regarde 42 sur Mon Serveur", body["activity"])
}

func TestSettings(t *testing.T) {
	engine, _, tracker := newTestAPI(t)
	tracker.SetGuild(10, "Test")

	t.Run("get returns the singleton", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/api/settings", nil)
		require.Equal(t, http.StatusOK, w.Code)

		settings := decode[store.BotSettings](t, w)
		assert.Equal(t, "Regarde", settings.ActivityPrefix)
	})

	t.Run("partial update flows into status", func(t *testing.T) {
		w := perform(engine, http.MethodPost, "/api/settings", gin.H{"activityPrefix": "Surveille"})
		require.Equal(t, http.StatusOK, w.Code)

		settings := decode[store.BotSettings](t, w)
		assert.Equal(t, "Surveille", settings.ActivityPrefix)
		assert.Equal(t, "sur", settings.ActivitySuffix)

		status := perform(engine, http.MethodGet, "/api/status", nil)
		body := decode[map[string]any](t, status)
		assert.Equal(t, "Surveille 10 sur Test", body["activity"])
	})
}

func TestCreateReaction(t *testing.T) {
	engine, s, _ := newTestAPI(t)

	t.Run("creates and logs an event", func(t *testing.T) {
		w := perform(engine, http.MethodPost, "/api/reactions", gin.H{
			"keyword":  "Bonjour",
			"response": "Salut !",
			"type":     "message",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		reaction := decode[store.Reaction](t, w)
		assert.Equal(t, 1, reaction.ID)
		assert.Equal(t, "Bonjour", reaction.Keyword)
		assert.NotNil(t, reaction.LastTriggered)

		events, err := s.Events(10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, store.EventReactionCreated, events[0].Type)
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		w := perform(engine, http.MethodPost, "/api/reactions", gin.H{
			"keyword":  "Oops",
			"response": "nope",
			"type":     "shout",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		reactions, err := s.Reactions()
		require.NoError(t, err)
		assert.Len(t, reactions, 1)
	})

	t.Run("rejects a missing keyword", func(t *testing.T) {
		w := perform(engine, http.MethodPost, "/api/reactions", gin.H{
			"response": "nope",
			"type":     "message",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListAndGetReactions(t *testing.T) {
	engine, s, _ := newTestAPI(t)
	created, err := s.CreateReaction("Bonjour", "Salut !", store.TypeMessage)
	require.NoError(t, err)

	t.Run("list", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/api/reactions", nil)
		require.Equal(t, http.StatusOK, w.Code)

		reactions := decode[[]store.Reaction](t, w)
		require.Len(t, reactions, 1)
		assert.Equal(t, created.ID, reactions[0].ID)
	})

	t.Run("get by id", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/api/reactions/1", nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing id is a 404", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/api/reactions/999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id is a 400", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/api/reactions/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateReaction(t *testing.T) {
	engine, s, _ := newTestAPI(t)
	_, err := s.CreateReaction("Bonjour", "Salut !", store.TypeMessage)
	require.NoError(t, err)

	t.Run("merges fields and logs an event", func(t *testing.T) {
		w := perform(engine, http.MethodPut, "/api/reactions/1", gin.H{"keyword": "Coucou"})
		require.Equal(t, http.StatusOK, w.Code)

		reaction := decode[store.Reaction](t, w)
		assert.Equal(t, "Coucou", reaction.Keyword)
		assert.Equal(t, "Salut !", reaction.Response)

		events, err := s.Events(10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, store.EventReactionUpdated, events[0].Type)
	})

	t.Run("missing id is a 404 with no event", func(t *testing.T) {
		eventsBefore, err := s.Events(100)
		require.NoError(t, err)
		reactionsBefore, err := s.Reactions()
		require.NoError(t, err)

		w := perform(engine, http.MethodPut, "/api/reactions/999", gin.H{"keyword": "Coucou"})
		assert.Equal(t, http.StatusNotFound, w.Code)

		eventsAfter, err := s.Events(100)
		require.NoError(t, err)
		reactionsAfter, err := s.Reactions()
		require.NoError(t, err)

		assert.Len(t, eventsAfter, len(eventsBefore))
		assert.Len(t, reactionsAfter, len(reactionsBefore))
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		w := perform(engine, http.MethodPut, "/api/reactions/1", gin.H{"type": "shout"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteReaction(t *testing.T) {
	engine, s, _ := newTestAPI(t)
	_, err := s.CreateReaction("Bonjour", "Salut !", store.TypeMessage)
	require.NoError(t, err)

	t.Run("deletes and logs an event", func(t *testing.T) {
		w := perform(engine, http.MethodDelete, "/api/reactions/1", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		events, err := s.Events(10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, store.EventReactionDeleted, events[0].Type)
	})

	t.Run("missing id is a 404 with no event", func(t *testing.T) {
		w := perform(engine, http.MethodDelete, "/api/reactions/1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		events, err := s.Events(10)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})
}

func TestListEvents(t *testing.T) {
	engine, s, _ := newTestAPI(t)
	for i := 0; i < 5; i++ {
		_, err := s.AddEvent(store.EventMemberJoin, "joined")
		require.NoError(t, err)
	}

	t.Run("respects the limit", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/api/events?limit=2", nil)
		require.Equal(t, http.StatusOK, w.Code)

		events := decode[[]store.Event](t, w)
		require.Len(t, events, 2)
		assert.Equal(t, 5, events[0].ID)
	})

	t.Run("defaults the limit", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/api/events", nil)
		require.Equal(t, http.StatusOK, w.Code)

		events := decode[[]store.Event](t, w)
		assert.Len(t, events, 5)
	})

	t.Run("rejects a non-numeric limit", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/api/events?limit=abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	engine, _, _ := newTestAPI(t)

	t.Run("assigns an id", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/api/health", nil)
		assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	})

	t.Run("reuses the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set(requestIDHeader, "caller-id")

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, "caller-id", w.Header().Get(requestIDHeader))
	})
}
