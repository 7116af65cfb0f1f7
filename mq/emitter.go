package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "cafe-events"

const (
	MenuCreated     = "menu-created"
	MenuDeleted     = "menu-deleted"
	MessageReceived = "message-received"
	SessionStarted  = "session-started"
	SessionEnded    = "session-ended"
)

// Event is published after the store operation it describes has returned.
type Event struct {
	Name     string    `json:"name"`
	EntityID string    `json:"entity_id,omitempty"`
	Actor    string    `json:"actor,omitempty"`
	At       time.Time `json:"at"`
}

func NewEvent(name, entityID, actor string) Event {
	return Event{Name: name, EntityID: entityID, Actor: actor, At: time.Now().UTC()}
}

type Emitter interface {
	Emit(ctx context.Context, ev Event)
}

// RedisEmitter publishes events as JSON on a pub/sub channel.
type RedisEmitter struct {
	conn    redis.Cmdable
	channel string
	logger  *log.Logger
}

func NewRedisEmitter(conn redis.Cmdable, channel string, logger *log.Logger) *RedisEmitter {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = log.Default()
	}
	return &RedisEmitter{conn: conn, channel: channel, logger: logger}
}

func (e *RedisEmitter) Emit(ctx context.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		e.logger.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}
	if err := e.conn.Publish(ctx, e.channel, data).Err(); err != nil {
		e.logger.Printf("[Emit] Failed to publish %s to Redis: %v", ev.Name, err)
		return
	}
	e.logger.Printf("[Emit] %s published to channel '%s'", ev.Name, e.channel)
}

// LogEmitter only logs. Used when Redis is not configured.
type LogEmitter struct {
	Logger *log.Logger
}

func (e LogEmitter) Emit(_ context.Context, ev Event) {
	logger := e.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("[Emit] eventName=%s entity=%s actor=%s", ev.Name, ev.EntityID, ev.Actor)
}
