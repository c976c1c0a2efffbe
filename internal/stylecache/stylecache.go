// Package stylecache caches per-message index style resolution so the
// index view does not re-run every rule list on each frame. Entries are
// keyed by region and message ID and flushed when the rule engine
// announces a style-set change.
package stylecache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/missive/internal/log"
	"github.com/zjrosen/missive/internal/mail"
	"github.com/zjrosen/missive/internal/pubsub"
	"github.com/zjrosen/missive/internal/rules"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Resolution is one cached lookup. Misses are cached too, so messages
// matching no rule cost one walk rather than one per frame.
type Resolution struct {
	Match rules.Match
	OK    bool
}

// Cache is a read-through cache over Engine.ResolveMessage.
type Cache struct {
	engine *rules.Engine
	store  *gocache.Cache
	ttl    time.Duration
	skip   bool
}

// Config wires a Cache. Engine is required.
type Config struct {
	Engine *rules.Engine

	// TTL bounds how long a resolution stays valid without an
	// invalidation event. Zero means DefaultExpiration.
	TTL time.Duration

	// Skip bypasses the cache entirely, every Resolve hits the engine.
	Skip bool
}

// New builds a Cache over the given engine.
func New(cfg Config) *Cache {
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultExpiration
	}
	return &Cache{
		engine: cfg.Engine,
		store:  gocache.New(ttl, DefaultCleanupInterval),
		ttl:    ttl,
		skip:   cfg.Skip,
	}
}

// Resolve returns the first matching rule for the message in the given
// region, consulting the cache first.
func (c *Cache) Resolve(ctx context.Context, region rules.Region, msg mail.Summary) (rules.Match, bool) {
	if c.skip {
		return c.engine.ResolveMessage(region, msg)
	}

	key := cacheKey(region, msg.ID)
	if value, found := c.store.Get(key); found {
		res, ok := value.(Resolution)
		if !ok {
			log.Error(log.CatCache, "wrong type assertion when getting value", "key", key)
		} else {
			log.Debug(log.CatCache, "cache hit", "key", key)
			return res.Match, res.OK
		}
	}

	match, ok := c.engine.ResolveMessage(region, msg)
	c.store.Set(key, Resolution{Match: match, OK: ok}, c.ttl)
	return match, ok
}

// Invalidate drops every cached resolution for one region.
func (c *Cache) Invalidate(region rules.Region) {
	prefix := region.String() + "/"
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}
	log.Debug(log.CatCache, "region invalidated", "region", region.String())
}

// Flush drops every cached resolution.
func (c *Cache) Flush() {
	c.store.Flush()
}

// Len returns the number of live cache entries.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

// Subscribe flushes affected regions as the engine announces changes.
// The goroutine exits when ctx is cancelled or the broker closes.
func (c *Cache) Subscribe(ctx context.Context, broker *pubsub.Broker[rules.Region]) {
	ch := broker.Subscribe(ctx)
	go func() {
		for ev := range ch {
			switch ev.Type {
			case pubsub.StyleSetChangedEvent, pubsub.RulesClearedEvent:
				c.Invalidate(ev.Payload)
			}
		}
	}()
}

func cacheKey(region rules.Region, id string) string {
	return region.String() + "/" + id
}
