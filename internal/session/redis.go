package session

import (
	"context"
	"encoding/json"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

// Redis es el backend distribuido. El expiry es nativo del servidor, por
// lo que SweepExpired es un no-op.
type Redis struct {
	c          *rdb.Client
	prefix     string
	defaultTTL time.Duration
}

func NewRedis(cfg Config) (*Redis, error) {
	c := rdb.NewClient(&rdb.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := c.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "fb:session:"
	}
	return &Redis{c: c, prefix: prefix, defaultTTL: ttl}, nil
}

func (r *Redis) key(id string) string { return r.prefix + id }

func (r *Redis) Get(ctx context.Context, id string) (*Session, error) {
	b, err := r.c.Get(ctx, r.key(id)).Bytes()
	if err == rdb.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Redis) Set(ctx context.Context, s *Session, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.c.Set(ctx, r.key(s.ID), b, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, id string) error {
	return r.c.Del(ctx, r.key(id)).Err()
}

func (r *Redis) SweepExpired(context.Context) (int, error) { return 0, nil }

func (r *Redis) Close() error { return r.c.Close() }
