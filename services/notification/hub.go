package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"quickcourt/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

// ErrHubClosed is returned by Publish after Close.
var ErrHubClosed = errors.New("notification hub closed")

type roomMessage struct {
	rooms []string
	data  []byte
}

// Hub relays events to websocket clients grouped into rooms. The room map is
// owned by the Run goroutine; everything else talks to it over channels.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage
	sizes      chan chan map[string]int
	done       chan struct{}
	closeOnce  sync.Once

	rooms map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 64),
		sizes:      make(chan chan map[string]int),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
	}
}

// Run owns the room map until ctx is cancelled or Close is called.
func (h *Hub) Run(ctx context.Context) {
	defer h.Close()
	defer h.dropAll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			return
		case c := <-h.register:
			for _, room := range c.rooms {
				if h.rooms[room] == nil {
					h.rooms[room] = make(map[*Client]struct{})
				}
				h.rooms[room][c] = struct{}{}
			}
		case c := <-h.unregister:
			h.remove(c)
		case reply := <-h.sizes:
			out := make(map[string]int, len(h.rooms))
			for room, members := range h.rooms {
				out[room] = len(members)
			}
			reply <- out
		case msg := <-h.broadcast:
			seen := make(map[*Client]struct{})
			for _, room := range msg.rooms {
				for c := range h.rooms[room] {
					if _, ok := seen[c]; ok {
						continue
					}
					seen[c] = struct{}{}
					select {
					case c.send <- msg.data:
					default:
						// slow consumer
						h.remove(c)
					}
				}
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	removed := false
	for _, room := range c.rooms {
		if members, ok := h.rooms[room]; ok {
			if _, ok := members[c]; ok {
				delete(members, c)
				removed = true
			}
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	if removed {
		close(c.send)
	}
}

func (h *Hub) dropAll() {
	closed := make(map[*Client]struct{})
	for _, members := range h.rooms {
		for c := range members {
			if _, ok := closed[c]; !ok {
				closed[c] = struct{}{}
				close(c.send)
			}
		}
	}
	h.rooms = make(map[string]map[*Client]struct{})
}

// Close stops the hub and disconnects every client.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func (h *Hub) Publish(ctx context.Context, event string, payload interface{}, rooms ...string) error {
	if len(rooms) == 0 {
		return nil
	}
	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}
	data, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- roomMessage{rooms: rooms, data: data}:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Rooms reports the number of connected clients per room.
func (h *Hub) Rooms(ctx context.Context) map[string]int {
	reply := make(chan map[string]int, 1)
	select {
	case h.sizes <- reply:
	case <-h.done:
		return nil
	case <-ctx.Done():
		return nil
	}
	select {
	case out := <-reply:
		return out
	case <-ctx.Done():
		return nil
	}
}

// Client is one websocket connection subscribed to a fixed set of rooms.
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	rooms []string
}

// Upgrader builds the websocket upgrader, accepting only allowed origins
// unless the list is empty.
func Upgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowedOrigins) == 0 {
				return true
			}
			for _, o := range allowedOrigins {
				if o == "*" || o == origin {
					return true
				}
			}
			return false
		},
	}
}

// Attach registers conn with the hub and starts its pumps.
func (h *Hub) Attach(conn *websocket.Conn, rooms []string) *Client {
	c := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer), rooms: rooms}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return c
	}
	go c.writePump()
	go c.readPump()
	return c
}

// readPump only handles control frames; clients never publish.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.GetLogger().Debug("websocket closed", zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
