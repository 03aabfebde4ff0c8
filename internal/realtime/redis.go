package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/config"
)

const CatalogChannel = "catalog:updated"

func NewRedis(cfg config.Config, log *logrus.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	log.WithField("addr", cfg.RedisAddr).Info("redis client created")
	return rdb
}

// Bus publishes catalog changes to every API instance through redis and
// delivers them to the local hub. A nil redis client keeps events local.
type Bus struct {
	rdb *redis.Client
	hub *Hub
	log *logrus.Logger
}

func NewBus(rdb *redis.Client, hub *Hub, log *logrus.Logger) *Bus {
	return &Bus{rdb: rdb, hub: hub, log: log}
}

// CatalogUpdated announces that kind's catalog changed.
func (b *Bus) CatalogUpdated(ctx context.Context, kind catalog.Kind) {
	ev := Event{Type: EventCatalogUpdated, Kind: kind}
	if b.rdb == nil {
		b.hub.Broadcast(ev)
		return
	}

	payload, _ := json.Marshal(ev)
	if err := b.rdb.Publish(ctx, CatalogChannel, payload).Err(); err != nil {
		b.log.WithError(err).Warn("redis publish failed, delivering locally")
		b.hub.Broadcast(ev)
	}
}

// Listen forwards redis events to the hub until ctx is done.
func (b *Bus) Listen(ctx context.Context) {
	if b.rdb == nil {
		return
	}

	sub := b.rdb.Subscribe(ctx, CatalogChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.log.WithError(err).Warn("bad catalog event payload")
				continue
			}
			b.hub.Broadcast(ev)
		}
	}
}
