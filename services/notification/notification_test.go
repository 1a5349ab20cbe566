package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quickcourt/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []string
	rooms  [][]string
	err    error
}

func (r *recorder) Publish(_ context.Context, event string, _ interface{}, rooms ...string) error {
	r.events = append(r.events, event)
	r.rooms = append(r.rooms, rooms)
	return r.err
}

func TestFanoutDeliversToAllAndReportsFirstError(t *testing.T) {
	failing := &recorder{err: errors.New("boom")}
	ok := &recorder{}

	err := Fanout{failing, nil, ok}.Publish(context.Background(), models.EventOfferNew, nil, "user:1")
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{models.EventOfferNew}, ok.events)
	assert.Equal(t, [][]string{{"user:1"}}, ok.rooms)
}

func dial(t *testing.T, hub *Hub, rooms []string) *websocket.Conn {
	t.Helper()
	upgrader := Upgrader(nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Attach(conn, rooms)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubRoutesByRoom(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	owner := dial(t, hub, []string{models.RoleRoom(models.RoleOwner), models.UserRoom("o1")})
	player := dial(t, hub, []string{models.RoleRoom(models.RoleUser), models.UserRoom("u1")})

	ownerRoom := models.RoleRoom(models.RoleOwner)
	require.Eventually(t, func() bool {
		sizes := hub.Rooms(ctx)
		return sizes[ownerRoom] == 1 && sizes[models.UserRoom("u1")] == 1
	}, 2*time.Second, 20*time.Millisecond)

	offer := &models.Offer{ID: "of1", Status: models.OfferPending}
	require.NoError(t, hub.Publish(ctx, models.EventOfferNew, offer, ownerRoom))

	_ = owner.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := owner.ReadMessage()
	require.NoError(t, err)

	var env struct {
		Event string       `json:"event"`
		Data  models.Offer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, models.EventOfferNew, env.Event)
	assert.Equal(t, "of1", env.Data.ID)

	_ = player.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	_, _, err = player.ReadMessage()
	assert.Error(t, err, "user room must not receive owner broadcasts")
}

func TestHubPublishAfterClose(t *testing.T) {
	hub := NewHub()
	go hub.Run(context.Background())
	hub.Close()

	err := hub.Publish(context.Background(), models.EventOfferUpdate, nil, "user:x")
	assert.ErrorIs(t, err, ErrHubClosed)
}
