package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dojoenv/dojo-rl/engine"
)

// Publisher mirrors telemetry events onto a redis pub/sub channel so
// external plotting GUIs can subscribe without polling the HTTP
// surface.
type Publisher struct {
	client  *redis.Client
	channel string
}

func NewPublisher(addr, channel string) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return &Publisher{
		client:  client,
		channel: channel,
	}, nil
}

// Publish is best effort: a dropped event costs one plot point, it
// never stalls the telemetry pump.
func (p *Publisher) Publish(t engine.Telemetry) {
	bs, err := json.Marshal(t)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	p.client.Publish(ctx, p.channel, string(bs))
}

func (p *Publisher) Close() error {
	return p.client.Close()
}
