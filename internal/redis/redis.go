package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	currentViewKey = "playback:current"
	pairingPrefix  = "pairing:"
	pairingTTL     = 5 * time.Minute
)

var Rdb *redis.Client

func InitRedis(redisAddress, redisUsername, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// StoreCurrentView caches the latest broadcast payload so the REST fallback
// endpoint can answer without recomputing. Best effort; a cache miss just
// means the endpoint computes fresh.
func StoreCurrentView(ctx context.Context, payload []byte) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Set(ctx, currentViewKey, payload, 10*time.Second).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to cache current view")
	}
}

func GetCurrentView(ctx context.Context) ([]byte, bool) {
	if Rdb == nil {
		return nil, false
	}
	data, err := Rdb.Get(ctx, currentViewKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// StorePairingCode maps a short-lived pairing code to a screen id.
func StorePairingCode(ctx context.Context, code string, screenID int) error {
	return Rdb.Set(ctx, pairingPrefix+code, screenID, pairingTTL).Err()
}

// ClaimPairingCode resolves a code to its screen id and deletes it.
func ClaimPairingCode(ctx context.Context, code string) (int, bool) {
	key := pairingPrefix + code
	id, err := Rdb.Get(ctx, key).Int()
	if err != nil {
		return 0, false
	}
	Rdb.Del(ctx, key)
	return id, true
}
