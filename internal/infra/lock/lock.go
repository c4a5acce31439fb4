package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/solarleads/internal/usecase"
)

var ErrLockHeld = errors.New("lock already held")

const unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"

// Locker é um lock simples em redis: SetNX com TTL e liberação só pelo dono.
type Locker struct {
	client redis.UniversalClient
	key    string
	value  string
}

func NewLocker(client redis.UniversalClient, key, value string) *Locker {
	return &Locker{
		client: client,
		key:    key,
		value:  value,
	}
}

func (l *Locker) Lock(ctx context.Context, ttl time.Duration) error {
	ok, err := l.client.SetNX(ctx, l.key, l.value, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLockHeld, l.key)
	}
	return nil
}

func (l *Locker) Unlock(ctx context.Context) error {
	result, err := l.client.Eval(ctx, unlockScript, []string{l.key}, l.value).Result()
	if err != nil {
		return err
	}
	if result == int64(0) {
		return fmt.Errorf("unlock failed, either lock expired or you're not the lock holder for key %s", l.key)
	}
	return nil
}

// LeadLocker protege um lead contra duas passadas simultâneas (agendada + manual).
type LeadLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
	newID  func() string
}

func NewLeadLocker(client redis.UniversalClient, ttl time.Duration) *LeadLocker {
	return &LeadLocker{
		client: client,
		ttl:    ttl,
		newID:  func() string { return uuid.New().String() },
	}
}

func LeadKey(leadID string) string {
	return "followup:lead:" + leadID
}

func (l *LeadLocker) Acquire(ctx context.Context, leadID string) (func(), error) {
	locker := NewLocker(l.client, LeadKey(leadID), l.newID())

	if err := locker.Lock(ctx, l.ttl); err != nil {
		if errors.Is(err, ErrLockHeld) {
			return nil, fmt.Errorf("%w: %v", usecase.ErrLeadLocked, err)
		}
		return nil, err
	}

	return func() {
		// ctx do lead pode já ter expirado; a liberação usa um prazo próprio.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = locker.Unlock(ctx)
	}, nil
}
