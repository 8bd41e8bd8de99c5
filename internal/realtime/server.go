package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "broadcast"

type Config struct {
	// AllowedOrigin is matched against the Origin header of websocket
	// handshakes. "*" or empty accepts any origin.
	AllowedOrigin string
	// Channel is the redis channel relayed to clients.
	Channel string
}

type Server struct {
	hub      *Hub
	rdb      *redis.Client
	channel  string
	upgrader websocket.Upgrader
}

func NewServer(hub *Hub, rdb *redis.Client, cfg Config) *Server {
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	allowed := cfg.AllowedOrigin
	return &Server{
		hub:     hub,
		rdb:     rdb,
		channel: cfg.Channel,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowed == "" || allowed == "*" {
					return true
				}
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowed
			},
		},
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/ws", s.HandleWS)

	return r
}

// RunRedisSubscriber forwards every message published on the configured
// channel to the hub until ctx is canceled.
func (s *Server) RunRedisSubscriber(ctx context.Context) error {
	sub := s.rdb.Subscribe(ctx, s.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribing to %s: %w", s.channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.hub.Broadcast([]byte(msg.Payload))
		}
	}
}

// HandleWS upgrades the request and registers the connection with the hub.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("realtime: ws upgrade: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	welcome := map[string]any{
		"type": "welcome",
		"now":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	if b, err := json.Marshal(welcome); err == nil {
		client.send <- b
	}

	if !s.hub.add(client) {
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
