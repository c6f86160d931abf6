package yacache

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
)

// Redis wraps a *redis.Client and implements the Cache interface.
//
// Example:
//
//	client := yacache.NewRedisClient("localhost", uint16(6379), "", 1, log)
//	redis := yacache.NewCache(client)
//	_ = redis.Set(ctx, "offset:123456", "42", 0)
type Redis struct {
	backendName string
	client      *redis.Client
}

// NewRedis turns an already-configured *redis.Client into a Redis cache.
// Errors are tagged DRAGONFLY when the server reports itself as Dragonfly.
//
// Example:
//
//	redis := yacache.NewRedis(redis.NewClient(&redis.Options{Addr: addr}))
func NewRedis(client *redis.Client) *Redis {
	const (
		dragonfly = "DRAGONFLY"
		server    = "server"
	)

	backendName := "REDIS"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	info, err := client.Info(ctx, server).Result()
	if err == nil && strings.Contains(info, strings.ToLower(dragonfly)) {
		backendName = dragonfly
	}

	return &Redis{
		backendName: backendName,
		client:      client,
	}
}

// NewRedisClient dials a Redis instance and performs an initial PING. On
// failure the logger's Fatalf terminates the process.
//
// Example:
//
//	client := yacache.NewRedisClient("127.0.0.1", 6379, "", 0, log)
func NewRedisClient(
	host string,
	port uint16,
	password string,
	db int,
	log yalogger.Logger,
) *redis.Client {
	redisAddr := fmt.Sprintf("%s:%s", host, strconv.Itoa(int(port)))

	if log == nil {
		log = yalogger.NewDefaultLogger()
	}

	log.Infof("Redis connecting to addr %s", redisAddr)

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}

	log.Infof("Redis connected to addr %s", redisAddr)

	return client
}

// Raw exposes the underlying *redis.Client.
func (r *Redis) Raw() *redis.Client {
	return r.client
}

// Set stores the value via SET with an optional TTL.
func (r *Redis) Set(
	ctx context.Context,
	key string,
	value string,
	ttl time.Duration,
) yaerrors.Error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToSet),
			fmt.Sprintf("[%s] failed `SET` by `%s`", r.backendName, key),
		)
	}

	return nil
}

// Get retrieves the value via GET. redis.Nil is reported as
// http.StatusNotFound wrapping ErrKeyNotFound.
func (r *Redis) Get(
	ctx context.Context,
	key string,
) (string, yaerrors.Error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", yaerrors.FromError(
			http.StatusNotFound,
			ErrKeyNotFound,
			fmt.Sprintf("[%s] failed `GET` by `%s`", r.backendName, key),
		)
	}

	if err != nil {
		return "", yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToGetValue),
			fmt.Sprintf("[%s] failed `GET` by `%s`", r.backendName, key),
		)
	}

	return value, nil
}

// Exists reports whether every key exists via EXISTS.
func (r *Redis) Exists(
	ctx context.Context,
	keys ...string,
) (bool, yaerrors.Error) {
	count, err := r.client.Exists(ctx, keys...).Result()
	if err != nil {
		return false, yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToCheck),
			fmt.Sprintf("[%s] failed `EXISTS` by `%s`", r.backendName, strings.Join(keys, ",")),
		)
	}

	return count == int64(len(keys)), nil
}

// Delete removes key through DEL.
func (r *Redis) Delete(
	ctx context.Context,
	key string,
) yaerrors.Error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToDelete),
			fmt.Sprintf("[%s] failed `DEL` by `%s`", r.backendName, key),
		)
	}

	return nil
}

// Ping sends the PING command.
func (r *Redis) Ping(ctx context.Context) yaerrors.Error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return yaerrors.FromError(
			http.StatusServiceUnavailable,
			errors.Join(err, ErrFailedToPing),
			fmt.Sprintf("[%s] failed `PING`", r.backendName),
		)
	}

	return nil
}

// Close closes the underlying connections.
func (r *Redis) Close() yaerrors.Error {
	if err := r.client.Close(); err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToClose),
			fmt.Sprintf("[%s] failed `CLOSE`", r.backendName),
		)
	}

	return nil
}
