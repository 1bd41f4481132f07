package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/color-xyz/goapi/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("key not found")

	// ErrGapTime is returned when no pool can serve the command
	ErrGapTime = errors.New("in gap time, no available pool")
)

// Service is the redis access layer
type Service interface {
	Get(context ctx.Ctx, key string) (val []byte, err error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, ks ...string) (int, error)

	// TTL returns the remaining time to live of key in seconds
	TTL(context ctx.Ctx, key string) (int64, error)

	// GetStruct unmarshals the value at key into val
	GetStruct(context ctx.Ctx, key string, val interface{}) error
	// SetStruct marshals val and stores it at key
	SetStruct(context ctx.Ctx, key string, val interface{}, expire time.Duration) error

	GetConn() (redis.Conn, error)
	Name() string
}
