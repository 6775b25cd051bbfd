// Package cache is a Redis backed response cache for read endpoints.
//
// Entries are keyed by a generation counter. Every successful write request
// bumps the generation, so all cached reads become unreachable at once and
// expire on their own TTL.
package cache

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	defaultPrefix = "moviehub:cache"
	HeaderCache   = "X-Cache"
)

// replayHeaders are the handler-set headers stored with a response and
// restored on a hit.
var replayHeaders = []string{"X-Total-Count", "Location"}

// Recorder receives lookup outcomes. *metrics.Metrics satisfies it.
type Recorder interface {
	CacheHit()
	CacheMiss()
	CacheError()
}

type nopRecorder struct{}

func (nopRecorder) CacheHit() {}

func (nopRecorder) CacheMiss() {}

func (nopRecorder) CacheError() {}

type Cache struct {
	rdb    redis.UniversalClient
	ttl    time.Duration
	prefix string
	rec    Recorder
	log    zerolog.Logger
}

type entry struct {
	Status      int               `json:"status"`
	ContentType string            `json:"content_type"`
	Headers     map[string]string `json:"headers,omitempty"`
	Body        []byte            `json:"body"`
}

func New(rdb redis.UniversalClient, ttl time.Duration, rec Recorder, log zerolog.Logger) *Cache {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Cache{rdb: rdb, ttl: ttl, prefix: defaultPrefix, rec: rec, log: log}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (c *Cache) generationKey() string {
	return c.prefix + ":gen"
}

func (c *Cache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *Cache) key(gen int64, r *http.Request) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:resp:%d:%x", c.prefix, gen, sum)
}

// Invalidate bumps the generation so every cached response is skipped.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, c.generationKey()).Err()
}

// captureWriter tees the response body while forwarding it to the client.
type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware serves GET requests from the cache and stores 200 responses.
// Redis errors fall through to the handler. A nil *Cache is a passthrough.
func (c *Cache) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if c == nil || ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		reqCtx := ctx.Request.Context()
		gen, err := c.generation(reqCtx)
		if err != nil {
			c.rec.CacheError()
			c.log.Warn().Err(err).Msg("cache generation lookup failed")
			ctx.Next()
			return
		}
		key := c.key(gen, ctx.Request)

		if raw, err := c.rdb.Get(reqCtx, key).Bytes(); err == nil {
			var e entry
			if json.Unmarshal(raw, &e) == nil {
				c.rec.CacheHit()
				for k, v := range e.Headers {
					ctx.Header(k, v)
				}
				ctx.Header(HeaderCache, "HIT")
				ctx.Data(e.Status, e.ContentType, e.Body)
				ctx.Abort()
				return
			}
		} else if !errors.Is(err, redis.Nil) {
			c.rec.CacheError()
			c.log.Warn().Err(err).Msg("cache read failed")
		}

		c.rec.CacheMiss()
		ctx.Header(HeaderCache, "MISS")
		cw := &captureWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = cw
		ctx.Next()

		if cw.Status() != http.StatusOK {
			return
		}
		e := entry{
			Status:      cw.Status(),
			ContentType: cw.Header().Get("Content-Type"),
			Body:        cw.buf.Bytes(),
		}
		for _, k := range replayHeaders {
			if v := cw.Header().Get(k); v != "" {
				if e.Headers == nil {
					e.Headers = make(map[string]string, len(replayHeaders))
				}
				e.Headers[k] = v
			}
		}
		payload, err := json.Marshal(e)
		if err != nil {
			return
		}
		// the request context may already be cancelled by the handler timeout
		if err := c.rdb.Set(context.WithoutCancel(reqCtx), key, payload, c.ttl).Err(); err != nil {
			c.rec.CacheError()
			c.log.Warn().Err(err).Msg("cache write failed")
		}
	}
}

// Invalidator bumps the generation after every successful non-GET request.
func (c *Cache) Invalidator() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()
		if c == nil || ctx.Request.Method == http.MethodGet || ctx.Writer.Status() >= http.StatusBadRequest {
			return
		}
		if err := c.Invalidate(context.WithoutCancel(ctx.Request.Context())); err != nil {
			c.rec.CacheError()
			c.log.Warn().Err(err).Msg("cache invalidation failed")
		}
	}
}
