package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Lock serializes settlement of a single payment across the completion
// endpoint and the gateway webhook, which can fire for the same transaction
// concurrently.
type Lock struct {
	Client *redis.Client
}

func NewLock(client *redis.Client) *Lock {
	return &Lock{Client: client}
}

const settlementTTL = 30 * time.Second

func (l *Lock) AcquireSettlement(ctx context.Context, paymentID string) (bool, error) {
	key := "settle_lock:" + paymentID
	return l.Client.SetNX(ctx, key, paymentID, settlementTTL).Result()
}

func (l *Lock) ReleaseSettlement(ctx context.Context, paymentID string) error {
	key := "settle_lock:" + paymentID
	val, err := l.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil // already expired
	}
	if err != nil {
		return err
	}
	if val == paymentID {
		_, err := l.Client.Del(ctx, key).Result()
		return err
	}
	return nil
}
