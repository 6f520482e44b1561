package positioninfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/logx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/metricsx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/position"
	"github.com/redis/go-redis/v9"
)

// RedisCachedDirectory caches positions in Redis in front of another
// directory. Redis failures are logged and the lookup falls through, so the
// cache never turns a readable position into an error.
type RedisCachedDirectory struct {
	next   position.Directory
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisCachedDirectory(next position.Directory, client *redis.Client, ttl time.Duration) *RedisCachedDirectory {
	return &RedisCachedDirectory{
		next:   next,
		client: client,
		ttl:    ttl,
		prefix: "position:",
	}
}

func (d *RedisCachedDirectory) key(id kernel.PositionID) string {
	return d.prefix + id.String()
}

func (d *RedisCachedDirectory) GetByID(ctx context.Context, id kernel.PositionID) (*position.Position, error) {
	if p, ok := d.lookup(ctx, id); ok {
		metricsx.PositionCacheLookups.WithLabelValues("hit").Inc()
		return p, nil
	}
	metricsx.PositionCacheLookups.WithLabelValues("miss").Inc()

	p, err := d.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := d.store(ctx, p); err != nil {
		logx.Warnf("position cache write failed for %s: %v", id, err)
	}
	return p, nil
}

func (d *RedisCachedDirectory) lookup(ctx context.Context, id kernel.PositionID) (*position.Position, bool) {
	data, err := d.client.Get(ctx, d.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logx.Warnf("position cache read failed for %s: %v", id, err)
		}
		return nil, false
	}

	var p position.Position
	if err := json.Unmarshal(data, &p); err != nil {
		logx.Warnf("position cache entry for %s is corrupt: %v", id, err)
		return nil, false
	}
	return &p, true
}

func (d *RedisCachedDirectory) store(ctx context.Context, p *position.Position) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal position %s: %w", p.ID, err)
	}
	return d.client.Set(ctx, d.key(p.ID), data, d.ttl).Err()
}
