package partner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// DefaultTTL время жизни записи о партнере в кэше
const DefaultTTL = 5 * time.Minute

const keyPrefix = "partner:"

// Source источник данных о партнерах (репозиторий)
type Source interface {
	GetByID(ctx context.Context, id int64) (*domain.Partner, error)
}

// RedisClient подмножество методов redis.Client, используемое кэшем
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache read-through кэш партнеров поверх Source.
// Ошибки Redis не прерывают запрос: данные читаются из источника.
type Cache struct {
	source Source
	client RedisClient
	ttl    time.Duration
	logger Logger
}

// NewCache создает кэш партнеров
func NewCache(source Source, client RedisClient, ttl time.Duration, logger Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		source: source,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetByID возвращает партнера из кэша или из источника с последующим сохранением в кэш
func (c *Cache) GetByID(ctx context.Context, id int64) (*domain.Partner, error) {
	key := fmt.Sprintf("%s%d", keyPrefix, id)

	data, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var p domain.Partner
		if err := json.Unmarshal([]byte(data), &p); err == nil {
			return &p, nil
		}
		c.logger.Warn("PartnerCache: corrupted entry %s, reloading", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("PartnerCache: redis get %s failed: %v", key, err)
	}

	p, err := c.source.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(p)
	if err != nil {
		c.logger.Warn("PartnerCache: failed to marshal partner id=%d: %v", id, err)
		return p, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("PartnerCache: redis set %s failed: %v", key, err)
	}

	return p, nil
}
