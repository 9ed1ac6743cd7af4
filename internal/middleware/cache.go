package middleware

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/config"
)

// NotesCache caches the JSON body of GET /notes/ per owner. The cache
// key always includes the authenticated user's id: notes are private, so
// two owners must never observe each other's cached lists. Entries are
// dropped whenever the owner mutates any note.
type NotesCache struct {
	rdb *redis.Client
	cfg config.CacheConfig
	log *logrus.Logger
}

func NewNotesCache(rdb *redis.Client, cfg config.CacheConfig, log *logrus.Logger) *NotesCache {
	return &NotesCache{rdb: rdb, cfg: cfg, log: log}
}

func (nc *NotesCache) key(ownerID uint64) string {
	return fmt.Sprintf("%s:list:%d", nc.cfg.Prefix, ownerID)
}

// Middleware serves cached list bodies for GET requests and stores fresh
// 200 responses. It must run after JWTAuth so the owner is known. Any
// Redis failure falls through to the database; caching is best effort.
func (nc *NotesCache) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			u, ok := CurrentUser(c)
			if !ok {
				return next(c)
			}

			ctx := c.Request().Context()
			key := nc.key(u.ID)
			if body, err := nc.rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}

			cw := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK && cw.buf.Len() > 0 {
				if err := nc.rdb.Set(ctx, key, cw.buf.Bytes(), nc.cfg.TTL).Err(); err != nil {
					nc.log.WithError(err).Warn("notes cache: store failed")
				}
			}
			return nil
		}
	}
}

// bodyCapture forwards the response to the client while keeping a copy
// of the body for the cache.
type bodyCapture struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *bodyCapture) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *bodyCapture) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// Invalidate drops the owner's cached list. Called by handlers after
// every create, update or delete.
func (nc *NotesCache) Invalidate(c echo.Context, ownerID uint64) {
	if err := nc.rdb.Del(c.Request().Context(), nc.key(ownerID)).Err(); err != nil {
		nc.log.WithError(err).Warn("notes cache: invalidate failed")
	}
}
