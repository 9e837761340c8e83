package notificationcenter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-daily-reminder/internal/domain"
	"github.com/KasumiMercury/primind-daily-reminder/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-daily-reminder/internal/observability/tracing"
)

const (
	keyPrefix = "reminder:"

	permissionGranted = "granted"
	permissionDenied  = "denied"

	deliveredTTL = 7 * 24 * time.Hour
)

type Config struct {
	Namespace         string
	DefaultPermission bool
}

type Option func(*RedisCenter)

func WithClock(now func() time.Time) Option {
	return func(c *RedisCenter) {
		c.now = now
	}
}

// RedisCenter keeps pending and delivered requests in redis hashes and hands
// every submitted request to the task queue for delivery.
type RedisCenter struct {
	client            *redis.Client
	tasks             taskqueue.TaskQueue
	namespace         string
	defaultPermission bool
	now               func() time.Time
}

var (
	_ domain.NotificationCenter = (*RedisCenter)(nil)
	_ domain.BadgeCounter       = (*RedisCenter)(nil)
)

func NewRedisCenter(client *redis.Client, tasks taskqueue.TaskQueue, cfg Config, opts ...Option) *RedisCenter {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "default"
	}
	c := &RedisCenter{
		client:            client,
		tasks:             tasks,
		namespace:         namespace,
		defaultPermission: cfg.DefaultPermission,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCenter) key(name string) string {
	return keyPrefix + c.namespace + ":" + name
}

func (c *RedisCenter) pendingKey() string    { return c.key("pending") }
func (c *RedisCenter) deliveredKey() string  { return c.key("delivered") }
func (c *RedisCenter) badgeKey() string      { return c.key("badge") }
func (c *RedisCenter) permissionKey() string { return c.key("permission") }

func (c *RedisCenter) PendingRequests(ctx context.Context) ([]domain.PendingRequest, error) {
	ctx, span := tracing.StartRedisOperationSpan(ctx, "hgetall", c.pendingKey())
	defer span.End()

	records, err := c.loadAll(ctx, c.pendingKey())
	tracing.RecordError(span, err)
	if err != nil {
		return nil, err
	}

	pending := make([]domain.PendingRequest, 0, len(records))
	for _, r := range records {
		pending = append(pending, r.pending())
	}
	return pending, nil
}

func (c *RedisCenter) DeliveredRequests(ctx context.Context) ([]domain.PendingRequest, error) {
	records, err := c.loadAll(ctx, c.deliveredKey())
	if err != nil {
		return nil, err
	}

	delivered := make([]domain.PendingRequest, 0, len(records))
	for _, r := range records {
		delivered = append(delivered, r.pending())
	}
	return delivered, nil
}

func (c *RedisCenter) loadAll(ctx context.Context, key string) ([]requestRecord, error) {
	values, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load requests from %s: %w", key, err)
	}

	records := make([]requestRecord, 0, len(values))
	for id, raw := range values {
		var record requestRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			slog.WarnContext(ctx, "skipping unreadable notification request",
				slog.String("key", key),
				slog.String("request_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		records = append(records, record)
	}
	sortBySubmission(records)

	return records, nil
}

func (c *RedisCenter) RemoveAllDelivered(ctx context.Context) error {
	ctx, span := tracing.StartRedisOperationSpan(ctx, "del", c.deliveredKey())
	defer span.End()

	err := c.client.Del(ctx, c.deliveredKey()).Err()
	tracing.RecordError(span, err)
	if err != nil {
		return fmt.Errorf("failed to remove delivered requests: %w", err)
	}
	return nil
}

func (c *RedisCenter) RemovePending(ctx context.Context, identifiers []string) error {
	if len(identifiers) == 0 {
		return nil
	}

	ctx, span := tracing.StartRedisOperationSpan(ctx, "hdel", c.pendingKey())
	defer span.End()

	values, err := c.client.HMGet(ctx, c.pendingKey(), identifiers...).Result()
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to load pending requests: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var record requestRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			continue
		}
		c.deleteTask(ctx, record)
		slog.DebugContext(ctx, "pending request removed",
			slog.String("request_id", identifiers[i]),
		)
	}

	err = c.client.HDel(ctx, c.pendingKey(), identifiers...).Err()
	tracing.RecordError(span, err)
	if err != nil {
		return fmt.Errorf("failed to remove pending requests: %w", err)
	}
	return nil
}

// Submit stores the request as pending and registers its delivery task. A
// request with an identifier already pending replaces it.
func (c *RedisCenter) Submit(ctx context.Context, req *domain.Request) error {
	if req == nil || req.Identifier == "" {
		return ErrInvalidRequestData
	}

	ctx, span := tracing.StartRedisOperationSpan(ctx, "hset", c.pendingKey())
	defer span.End()

	record := newRequestRecord(req, c.now())

	previous, err := c.client.HGet(ctx, c.pendingKey(), req.Identifier).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to load pending request: %w", err)
	}
	if err == nil {
		var old requestRecord
		if json.Unmarshal([]byte(previous), &old) == nil {
			c.deleteTask(ctx, old)
		}
	}

	if c.tasks != nil {
		record.TaskName = taskName(record.Identifier, record.AcceptedAt)
		if _, err := c.tasks.RegisterNotification(ctx, &taskqueue.NotificationTask{
			TaskName:   record.TaskName,
			RequestID:  record.Identifier,
			Namespace:  c.namespace,
			ScheduleAt: record.FireAt,
			Title:      record.Content.Title,
			Body:       record.Content.Body,
			Sound:      record.Content.Sound,
		}); err != nil {
			tracing.RecordError(span, err)
			return fmt.Errorf("failed to register delivery task: %w", err)
		}
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidRequestData
	}

	err = c.client.HSet(ctx, c.pendingKey(), record.Identifier, data).Err()
	tracing.RecordError(span, err)
	if err != nil {
		c.deleteTask(ctx, record)
		return fmt.Errorf("failed to store pending request: %w", err)
	}

	slog.InfoContext(ctx, "notification request accepted",
		slog.String("request_id", record.Identifier),
		slog.String("fire_at", record.FireAt.Format(time.RFC3339)),
	)
	return nil
}

// MarkDelivered moves a fired request from pending to delivered and bumps the
// badge.
func (c *RedisCenter) MarkDelivered(ctx context.Context, identifier string) error {
	ctx, span := tracing.StartRedisOperationSpan(ctx, "hmove", c.pendingKey())
	defer span.End()

	raw, err := c.client.HGet(ctx, c.pendingKey(), identifier).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrRequestNotFound
		}
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to load pending request: %w", err)
	}

	var record requestRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return ErrInvalidRequestData
	}
	deliveredAt := c.now()
	record.DeliveredAt = &deliveredAt

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidRequestData
	}

	pipe := c.client.TxPipeline()
	pipe.HDel(ctx, c.pendingKey(), identifier)
	pipe.HSet(ctx, c.deliveredKey(), identifier, data)
	pipe.Expire(ctx, c.deliveredKey(), deliveredTTL)
	pipe.Incr(ctx, c.badgeKey())

	_, err = pipe.Exec(ctx)
	tracing.RecordError(span, err)
	if err != nil {
		return fmt.Errorf("failed to mark request delivered: %w", err)
	}
	return nil
}

func (c *RedisCenter) RequestPermission(ctx context.Context, _ domain.AuthorizationOptions) (bool, error) {
	initial := permissionDenied
	if c.defaultPermission {
		initial = permissionGranted
	}

	if err := c.client.SetNX(ctx, c.permissionKey(), initial, 0).Err(); err != nil {
		return false, fmt.Errorf("failed to store permission: %w", err)
	}

	answer, err := c.client.Get(ctx, c.permissionKey()).Result()
	if err != nil {
		return false, fmt.Errorf("failed to load permission: %w", err)
	}
	return answer == permissionGranted, nil
}

func (c *RedisCenter) SetBadgeCount(ctx context.Context, count int) error {
	if err := c.client.Set(ctx, c.badgeKey(), count, 0).Err(); err != nil {
		return fmt.Errorf("failed to set badge count: %w", err)
	}
	return nil
}

func (c *RedisCenter) BadgeCount(ctx context.Context) (int, error) {
	count, err := c.client.Get(ctx, c.badgeKey()).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to load badge count: %w", err)
	}
	return count, nil
}

func (c *RedisCenter) deleteTask(ctx context.Context, record requestRecord) {
	if c.tasks == nil || record.TaskName == "" {
		return
	}
	if err := c.tasks.DeleteTask(ctx, record.TaskName); err != nil {
		slog.WarnContext(ctx, "failed to delete delivery task",
			slog.String("request_id", record.Identifier),
			slog.String("task_name", record.TaskName),
			slog.String("error", err.Error()),
		)
	}
}
